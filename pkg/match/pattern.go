// Package match implements CODEOWNERS pattern matching with gitignore-derived
// semantics. Patterns compile into an ordered sequence of segment matchers
// evaluated against a path's own segments, so ** stays exact and the cost of
// a match is linear in path depth.
package match

import "strings"

type segKind uint8

const (
	segLiteral segKind = iota // exact segment text
	segSingle                 // one segment, * and ? wildcards inside
	segMulti                  // ** spanning zero or more whole segments
)

type segment struct {
	kind segKind
	text string
}

// Pattern is a compiled CODEOWNERS pattern.
type Pattern struct {
	text     string
	negated  bool
	dirOnly  bool
	anchored bool
	segs     []segment
}

// Compile builds the segment form of a pattern. Compilation is total: every
// token the parser can produce compiles, and degenerate patterns such as ""
// or "/" simply match nothing.
//
// Semantics: a leading ! negates, a trailing / restricts the pattern to
// directories, a leading / anchors it to the repository root. Unanchored
// patterns float, matching at any segment boundary, which also gives slash
// free patterns their basename-at-any-depth behavior. A trailing ** matches
// anything strictly below the preceding segments, never the directory itself.
func Compile(text string) *Pattern {
	p := &Pattern{text: text}

	body := text
	if strings.HasPrefix(body, "!") {
		p.negated = true
		body = body[1:]
	}
	if strings.HasSuffix(body, "/") {
		p.dirOnly = true
		body = strings.TrimSuffix(body, "/")
	}
	if strings.HasPrefix(body, "/") {
		p.anchored = true
		body = strings.TrimPrefix(body, "/")
	}

	if body == "" {
		return p
	}

	for _, raw := range strings.Split(body, "/") {
		if raw == "" {
			continue
		}
		seg := segment{kind: segLiteral, text: raw}
		switch {
		case raw == "**":
			seg.kind = segMulti
		case strings.ContainsAny(raw, "*?"):
			seg.kind = segSingle
		}
		// Consecutive ** collapse to one.
		if seg.kind == segMulti && len(p.segs) > 0 && p.segs[len(p.segs)-1].kind == segMulti {
			continue
		}
		p.segs = append(p.segs, seg)
	}

	if !p.anchored && len(p.segs) > 0 && p.segs[0].kind != segMulti {
		p.segs = append([]segment{{kind: segMulti}}, p.segs...)
	}

	// A trailing ** covers what lies under the prefix, not the prefix
	// itself: a/** must not match a. Requiring one more segment after the
	// ** keeps that exact.
	if n := len(p.segs); n > 0 && p.segs[n-1].kind == segMulti {
		p.segs = append(p.segs, segment{kind: segSingle, text: "*"})
	}

	return p
}

// Text returns the pattern as written, including any ! and / markers.
func (p *Pattern) Text() string { return p.text }

// Negated reports whether the pattern carries a leading !.
func (p *Pattern) Negated() bool { return p.negated }

// DirOnly reports whether the pattern carries a trailing /.
func (p *Pattern) DirOnly() bool { return p.dirOnly }

// Matches tests the pattern against a single candidate path. Directory-only
// patterns never match when isDir is false; coverage of files underneath a
// matched directory is the caller's layer (see Covers).
func (p *Pattern) Matches(path string, isDir bool) bool {
	if p.dirOnly && !isDir {
		return false
	}
	segs := splitPath(path)
	if len(segs) == 0 {
		return false
	}
	return matchSegs(p.segs, segs)
}

// Covers reports whether the pattern covers a file at path: either the
// pattern matches the path itself, or it matches one of the path's ancestor
// directories. This is the ownership question - dir and dir/ rules own
// everything below the directories they match.
func (p *Pattern) Covers(path string) bool {
	return p.Matches(path, false) || p.underMatchedDir(path)
}

// underMatchedDir reports whether some proper ancestor directory of path
// matches the pattern.
func (p *Pattern) underMatchedDir(path string) bool {
	segs := splitPath(path)
	for i := 1; i < len(segs); i++ {
		if p.Matches(strings.Join(segs[:i], "/"), true) {
			return true
		}
	}
	return false
}

func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	segs := parts[:0]
	for _, s := range parts {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// matchSegs runs the segment automaton: literals and single-segment wildcards
// consume exactly one path segment, multi wildcards consume any run. The
// last-star backtracking scheme keeps it linear for typical patterns.
func matchSegs(pat []segment, segs []string) bool {
	if len(pat) == 0 {
		return false
	}

	pi, si := 0, 0
	starPi, starSi := -1, -1
	for si < len(segs) {
		if pi < len(pat) {
			switch pat[pi].kind {
			case segMulti:
				starPi, starSi = pi, si
				pi++
				continue
			case segSingle:
				if segmentMatch(pat[pi].text, segs[si]) {
					pi++
					si++
					continue
				}
			case segLiteral:
				if pat[pi].text == segs[si] {
					pi++
					si++
					continue
				}
			}
		}
		if starPi < 0 {
			return false
		}
		starSi++
		pi = starPi + 1
		si = starSi
	}

	for pi < len(pat) && pat[pi].kind == segMulti {
		pi++
	}
	return pi == len(pat)
}

// segmentMatch matches a single segment against a glob with * and ? only.
// Character classes and escapes are not part of CODEOWNERS patterns and are
// treated as literal bytes.
func segmentMatch(pattern, name string) bool {
	px, nx := 0, 0
	starPx, starNx := -1, -1
	for nx < len(name) {
		if px < len(pattern) {
			switch pattern[px] {
			case '*':
				starPx, starNx = px, nx
				px++
				continue
			case '?':
				px++
				nx++
				continue
			default:
				if pattern[px] == name[nx] {
					px++
					nx++
					continue
				}
			}
		}
		if starPx < 0 {
			return false
		}
		starNx++
		px = starPx + 1
		nx = starNx
	}
	for px < len(pattern) && pattern[px] == '*' {
		px++
	}
	return px == len(pattern)
}
