// Package check holds the validation framework: the capability every check
// implements, the shared read-only context checks run against, and the runner
// that executes a requested subset and aggregates their findings.
package check

import (
	"context"

	"github.com/ownerlint/ownerlint/pkg/types"
)

// Check names, as requested by callers and reported in results.
const (
	NameSyntax         = "syntax"
	NameFiles          = "files"
	NameDupPatterns    = "duppatterns"
	NameOwners         = "owners"
	NameNotOwned       = "notowned"
	NameAvoidShadowing = "avoid-shadowing"
)

// DefaultNames lists the stable checks run when the caller requests nothing
// specific. Owners is excluded: it needs an identity lookup capability.
func DefaultNames() []string {
	return []string{NameSyntax, NameFiles, NameDupPatterns}
}

// ExperimentalNames lists checks that are opt-in only.
func ExperimentalNames() []string {
	return []string{NameNotOwned, NameAvoidShadowing}
}

// Config is the immutable per-run validation configuration.
type Config struct {
	// IgnoredOwners are owner texts, leading @ included, that the syntax
	// and owners checks skip. Matching is case-sensitive against the
	// verbatim token.
	IgnoredOwners []string

	// OwnersMustBeTeams makes the syntax check flag every non-team owner.
	OwnersMustBeTeams bool

	// AllowUnownedPatterns suppresses findings about rules without owners
	// and files without any winning rule.
	AllowUnownedPatterns bool

	// SkipPatterns excludes paths from the not-owned walk and patterns
	// from the files check entirely.
	SkipPatterns []string

	// Repository optionally names the org/repo this CODEOWNERS belongs to.
	Repository string
}

// IgnoresOwner reports whether the owner text is in the ignore list.
func (c Config) IgnoresOwner(text string) bool {
	for _, ignored := range c.IgnoredOwners {
		if ignored == text {
			return true
		}
	}
	return false
}

// Context is the shared read-only aggregate every check runs against. It is
// built once per run and never mutated afterwards, so checks can run
// concurrently without locking.
type Context struct {
	Document *types.Document
	RepoRoot string
	Config   Config
}

// Check is one validation over a Context. Implementations must treat the
// context as read-only and return their issues in document line order. The
// owners check is the only implementation that blocks on anything beyond the
// repository tree; ctx carries its cancellation.
type Check interface {
	Name() string
	Run(ctx context.Context, cc *Context) ([]types.Issue, error)
}
