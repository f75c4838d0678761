// Package ownerlint validates CODEOWNERS files.
//
// Ownerlint parses a CODEOWNERS file into a lossless document, then runs a
// configurable set of checks over it: syntactic validity, patterns that match
// no files, duplicated patterns, owners that do not exist, files no rule
// covers, and rules made dead by a later rule.
//
// # Basic Usage
//
// Create a validator and run it against a repository:
//
//	validator, err := ownerlint.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := validator.ValidateRepo(ctx, "/path/to/repo")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for name, issues := range result {
//	    for _, issue := range issues {
//	        fmt.Printf("[%s] %s\n", name, issue.Message)
//	    }
//	}
//
// # With Owner Verification
//
// Supply an identity lookup to verify that owners actually exist. The owners
// check joins the default selection whenever a lookup is configured:
//
//	gh, err := lookup.NewGitHub(lookup.GitHubConfig{Token: token})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	validator, err := ownerlint.New(ownerlint.WithOwnerLookup(gh))
package ownerlint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ownerlint/ownerlint/pkg/check"
	"github.com/ownerlint/ownerlint/pkg/lookup"
	"github.com/ownerlint/ownerlint/pkg/parse"
	"github.com/ownerlint/ownerlint/pkg/repo"
	"github.com/ownerlint/ownerlint/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/ownerlint/ownerlint" without subpackages.
type (
	// Document is a parsed CODEOWNERS file, one record per source line.
	Document = types.Document

	// Line is a single classified line of a Document.
	Line = types.Line

	// Owner is one owner entry of a rule: a user, a team, or an email.
	Owner = types.Owner

	// Span locates a token or line within the original source text.
	Span = types.Span

	// Issue is a single validation finding.
	Issue = types.Issue

	// Severity ranks how serious an Issue is.
	Severity = types.Severity

	// CheckConfig carries the per-run validation settings shared by all
	// checks.
	CheckConfig = check.Config
)

// Re-export severity constants.
const (
	SeverityError   = types.SeverityError
	SeverityWarning = types.SeverityWarning
)

// Result maps each requested check name to its findings. Every requested
// check is present; a check that found nothing maps to an empty list. Within
// one check, issues follow document line order.
type Result map[string][]Issue

// Count returns the total number of issues across all checks.
func (r Result) Count() int {
	n := 0
	for _, issues := range r {
		n += len(issues)
	}
	return n
}

// HasErrors reports whether any check produced an error-severity issue.
func (r Result) HasErrors() bool {
	for _, issues := range r {
		for _, issue := range issues {
			if issue.Severity == SeverityError {
				return true
			}
		}
	}
	return false
}

// HasWarnings reports whether any check produced a warning-severity issue.
func (r Result) HasWarnings() bool {
	for _, issues := range r {
		for _, issue := range issues {
			if issue.Severity == SeverityWarning {
				return true
			}
		}
	}
	return false
}

// Validator runs a fixed selection of checks. It is stateless after
// construction and safe for concurrent use.
type Validator struct {
	runner   *check.Runner
	selected []string
	config   check.Config
}

// validatorConfig holds validator configuration.
type validatorConfig struct {
	checks        []string
	experimental  []string
	config        check.Config
	lookup        lookup.Lookup
	lookupWorkers int
}

// Option configures a Validator.
type Option func(*validatorConfig)

// WithChecks selects exactly the named checks instead of the default set.
func WithChecks(names ...string) Option {
	return func(c *validatorConfig) {
		c.checks = names
	}
}

// WithExperimentalChecks adds the named experimental checks to the selection.
func WithExperimentalChecks(names ...string) Option {
	return func(c *validatorConfig) {
		c.experimental = append(c.experimental, names...)
	}
}

// WithConfig sets the per-run check configuration.
func WithConfig(cfg CheckConfig) Option {
	return func(c *validatorConfig) {
		c.config = cfg
	}
}

// WithOwnerLookup supplies the identity lookup the owners check verifies
// owners against. Configuring a lookup adds the owners check to the default
// selection.
func WithOwnerLookup(lk lookup.Lookup) Option {
	return func(c *validatorConfig) {
		c.lookup = lk
	}
}

// WithLookupWorkers sets the number of concurrent owner lookups.
// Default is 10. Only applies when a lookup is configured.
func WithLookupWorkers(workers int) Option {
	return func(c *validatorConfig) {
		c.lookupWorkers = workers
	}
}

// New creates a Validator with the given options.
//
// By default, the validator:
//   - Runs the syntax, files, and duppatterns checks
//   - Adds the owners check when WithOwnerLookup is configured
//   - Leaves the experimental notowned and avoid-shadowing checks off
func New(opts ...Option) (*Validator, error) {
	config := &validatorConfig{}
	for _, opt := range opts {
		opt(config)
	}

	checks := []check.Check{
		check.NewSyntax(),
		check.NewFiles(),
		check.NewDupPatterns(),
		check.NewNotOwned(),
		check.NewAvoidShadowing(),
	}
	if config.lookup != nil {
		checks = append(checks, check.NewOwners(check.OwnersConfig{
			Lookup:  config.lookup,
			Workers: config.lookupWorkers,
		}))
	}
	runner := check.NewRunner(checks...)

	selected := config.checks
	if selected == nil {
		selected = check.DefaultNames()
		if config.lookup != nil {
			selected = append(selected, check.NameOwners)
		}
	}
	selected = append(selected, config.experimental...)

	// Reject an unrunnable selection now rather than on first use.
	registered := make(map[string]bool, len(runner.Names()))
	for _, name := range runner.Names() {
		registered[name] = true
	}
	for _, name := range selected {
		if registered[name] {
			continue
		}
		if name == check.NameOwners {
			return nil, fmt.Errorf("%s check requires an owner lookup, configure one with WithOwnerLookup", check.NameOwners)
		}
		return nil, fmt.Errorf("%w: %q", check.ErrUnknownCheck, name)
	}

	return &Validator{
		runner:   runner,
		selected: selected,
		config:   config.config,
	}, nil
}

// Checks returns the names of the checks this validator runs.
func (v *Validator) Checks() []string {
	return append([]string(nil), v.selected...)
}

// ValidateString validates CODEOWNERS text against the repository tree
// rooted at repoRoot.
func (v *Validator) ValidateString(ctx context.Context, content, repoRoot string) (Result, error) {
	doc, _ := parse.Parse(content)
	cc := &check.Context{
		Document: doc,
		RepoRoot: repoRoot,
		Config:   v.config,
	}

	results, err := v.runner.Run(ctx, cc, v.selected)
	if err != nil {
		return nil, err
	}
	return Result(results), nil
}

// ValidateFile validates the CODEOWNERS file at path. The repository root is
// resolved from the file's location, undoing the usual .github/ or docs/
// nesting and honoring the enclosing git working tree when there is one.
func (v *Validator) ValidateFile(ctx context.Context, path string) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	root, err := repo.ResolveRoot(repo.RootFromCodeownersPath(abs))
	if err != nil {
		return nil, err
	}

	return v.ValidateString(ctx, string(content), root)
}

// ValidateRepo discovers the CODEOWNERS file under root (.github/, the root
// itself, then docs/) and validates it.
func (v *Validator) ValidateRepo(ctx context.Context, root string) (Result, error) {
	path, err := repo.FindCodeownersFile(root)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return v.ValidateString(ctx, string(content), root)
}

// Parse parses CODEOWNERS text without validating it. The returned document
// renders back to the input byte-for-byte; parse errors are also reported,
// line by line, by the syntax check.
func Parse(content string) (*Document, []string) {
	return parse.Parse(content)
}

// DefaultChecks returns the names of the checks run when none are selected
// explicitly. The owners check is added when a lookup is configured.
func DefaultChecks() []string {
	return check.DefaultNames()
}

// ExperimentalChecks returns the names of the opt-in experimental checks.
func ExperimentalChecks() []string {
	return check.ExperimentalNames()
}
