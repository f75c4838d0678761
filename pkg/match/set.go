package match

// Entry is one candidate from a repository tree snapshot, with a slash
// separated path relative to the repository root.
type Entry struct {
	Path  string
	IsDir bool
}

// MatchedSet computes the set of snapshot entries a pattern matches, either
// directly or by matching one of an entry's ancestor directories. The one
// tree walk that produced entries is shared across patterns; callers that
// compare many patterns cache the returned sets.
func MatchedSet(p *Pattern, entries []Entry) map[string]struct{} {
	out := make(map[string]struct{})
	for _, e := range entries {
		if p.Matches(e.Path, e.IsDir) || p.underMatchedDir(e.Path) {
			out[e.Path] = struct{}{}
		}
	}
	return out
}

// IsSubset reports whether every element of a is present in b.
func IsSubset(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// Ruleset resolves ownership for a path across an ordered pattern list with
// last-match-wins layering: a later covering pattern overrides earlier ones,
// and a later negated pattern removes coverage entirely until a still-later
// pattern claims the path again.
type Ruleset struct {
	patterns []*Pattern
}

// NewRuleset builds a ruleset over patterns in document order.
func NewRuleset(patterns []*Pattern) *Ruleset {
	return &Ruleset{patterns: patterns}
}

// Winner returns the index of the pattern that owns path, or -1 when no
// pattern covers it (or the last covering pattern was negated).
func (r *Ruleset) Winner(path string) int {
	winner := -1
	for i, p := range r.patterns {
		if !p.Covers(path) {
			continue
		}
		if p.Negated() {
			winner = -1
		} else {
			winner = i
		}
	}
	return winner
}
