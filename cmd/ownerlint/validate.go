package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ownerlint/ownerlint"
	"github.com/ownerlint/ownerlint/pkg/check"
	"github.com/ownerlint/ownerlint/pkg/lookup"
	"github.com/ownerlint/ownerlint/pkg/repo"
	"github.com/ownerlint/ownerlint/pkg/store"
)

// Sentinels main maps to exit codes 3 and 2.
var (
	errIssuesFound = errors.New("validation issues found")
	errInterrupted = errors.New("interrupted")
)

var (
	validateRepoPath      string
	validateFile          string
	validateChecks        []string
	validateExperimental  []string
	validateFailureLevel  string
	validateFormat        string
	validateProvider      string
	validateGithubToken   string
	validateGithubBaseURL string
	validateGitlabToken   string
	validateGitlabBaseURL string
	validateRepository    string
	validateIgnoredOwners []string
	validateAllowUnowned  bool
	validateMustBeTeams   bool
	validateSkipPatterns  []string
	validateCachePath     string
	validateCacheTTL      time.Duration
	validateWorkers       int
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a repository's CODEOWNERS file",
	Long: `Validate the CODEOWNERS file of the repository at the given path (default:
the current directory). The file is discovered in .github/, the repository
root, and docs/, in that order.

Configuration is resolved as flag > environment variable > .ownerlint.yaml in
the repository root > default. The owners check needs an access token
(GITHUB_ACCESS_TOKEN, or GITLAB_ACCESS_TOKEN with --provider gitlab) and joins
the default checks whenever one is configured.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateRepoPath, "repository-path", ".", "Path to the repository root")
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Path to the CODEOWNERS file (skips discovery)")
	validateCmd.Flags().StringSliceVar(&validateChecks, "checks", nil, "Checks to run: syntax, files, duppatterns, owners")
	validateCmd.Flags().StringSliceVar(&validateExperimental, "experimental-checks", nil, "Experimental checks to add: notowned, avoid-shadowing")
	validateCmd.Flags().StringVar(&validateFailureLevel, "check-failure-level", "warning", "Lowest severity that fails the run: error, warning")
	validateCmd.Flags().StringVar(&validateFormat, "format", "human", "Output format: human, json, sarif")
	validateCmd.Flags().StringVar(&validateProvider, "provider", "github", "Identity provider for the owners check: github, gitlab")
	validateCmd.Flags().StringVar(&validateGithubToken, "github-access-token", "", "GitHub access token for the owners check")
	validateCmd.Flags().StringVar(&validateGithubBaseURL, "github-base-url", "", "GitHub API base URL (for GitHub Enterprise)")
	validateCmd.Flags().StringVar(&validateGitlabToken, "gitlab-access-token", "", "GitLab access token for the owners check")
	validateCmd.Flags().StringVar(&validateGitlabBaseURL, "gitlab-base-url", "", "GitLab API base URL (for self-managed GitLab)")
	validateCmd.Flags().StringVar(&validateRepository, "owner-checker-repository", "", "Repository in org/repo form, for provider-side owner checks")
	validateCmd.Flags().StringSliceVar(&validateIgnoredOwners, "owner-checker-ignored-owners", nil, "Owners to skip during validation")
	validateCmd.Flags().BoolVar(&validateAllowUnowned, "owner-checker-allow-unowned-patterns", true, "Allow rules without owners")
	validateCmd.Flags().BoolVar(&validateMustBeTeams, "owner-checker-owners-must-be-teams", false, "Require every owner to be a team")
	validateCmd.Flags().StringSliceVar(&validateSkipPatterns, "not-owned-checker-skip-patterns", nil, "Patterns excluded from the notowned check")
	validateCmd.Flags().StringVar(&validateCachePath, "cache", "", "Path to the owner lookup cache database")
	validateCmd.Flags().DurationVar(&validateCacheTTL, "cache-ttl", 24*time.Hour, "How long cached owner lookups stay valid")
	validateCmd.Flags().IntVar(&validateWorkers, "lookup-workers", check.DefaultLookupWorkers, "Concurrent owner lookups")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveValidate(cmd, args)
	if err != nil {
		return err
	}

	// Signal handling: on SIGINT/SIGTERM the run is cancelled and reported
	// as interrupted.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	lk, closeCache, err := buildLookup(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	if lk == nil && containsName(cfg.Checks, check.NameOwners) {
		return fmt.Errorf("owners check requires an access token, set GITHUB_ACCESS_TOKEN (or GITLAB_ACCESS_TOKEN with --provider gitlab)")
	}

	opts := []ownerlint.Option{ownerlint.WithConfig(cfg.CheckCfg)}
	if cfg.Checks != nil {
		opts = append(opts, ownerlint.WithChecks(cfg.Checks...))
	}
	if len(cfg.Experimental) > 0 {
		opts = append(opts, ownerlint.WithExperimentalChecks(cfg.Experimental...))
	}
	if lk != nil {
		opts = append(opts, ownerlint.WithOwnerLookup(lk))
	}
	if cfg.LookupWorkers > 0 {
		opts = append(opts, ownerlint.WithLookupWorkers(cfg.LookupWorkers))
	}

	validator, err := ownerlint.New(opts...)
	if err != nil {
		return err
	}

	// The file is located and read here, not in the library, so output can
	// cite the path and slice exact source snippets.
	var root string
	if cfg.File != "" && !cfg.RepoPathExplicit {
		abs, err := filepath.Abs(cfg.File)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", cfg.File, err)
		}
		root, err = repo.ResolveRoot(repo.RootFromCodeownersPath(abs))
		if err != nil {
			return err
		}
	} else {
		root, err = repo.ResolveRoot(cfg.RepoPath)
		if err != nil {
			return err
		}
	}

	path := cfg.File
	if path == "" {
		path, err = repo.FindCodeownersFile(root)
		if err != nil {
			return err
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "validating %s (repository root %s, checks: %s)\n",
			path, root, strings.Join(validator.Checks(), ", "))
	}

	result, err := validator.ValidateString(ctx, string(content), root)
	if err != nil {
		if ctx.Err() != nil {
			return errInterrupted
		}
		return err
	}
	if ctx.Err() != nil {
		return errInterrupted
	}

	if err := writeResult(cmd, cfg.Format, path, string(content), result); err != nil {
		return err
	}

	if failsAtLevel(result, cfg.FailureLevel) {
		return errIssuesFound
	}
	return nil
}

// buildLookup assembles the identity lookup from the provider settings.
// Without a token it returns a nil lookup, which leaves the owners check out
// of the default selection. The returned close function releases the cache
// store, if one was opened.
func buildLookup(cfg resolvedConfig) (lookup.Lookup, func() error, error) {
	noop := func() error { return nil }

	var lk lookup.Lookup
	switch cfg.Provider {
	case "", "github":
		if cfg.GithubToken == "" {
			return nil, noop, nil
		}
		gh, err := lookup.NewGitHub(lookup.GitHubConfig{
			Token:   cfg.GithubToken,
			BaseURL: cfg.GithubBaseURL,
		})
		if err != nil {
			return nil, noop, err
		}
		lk = gh
	case "gitlab":
		if cfg.GitlabToken == "" {
			return nil, noop, nil
		}
		gl, err := lookup.NewGitLab(lookup.GitLabConfig{
			Token:   cfg.GitlabToken,
			BaseURL: cfg.GitlabBaseURL,
		})
		if err != nil {
			return nil, noop, err
		}
		lk = gl
	default:
		return nil, noop, fmt.Errorf("unknown provider %q (expected github or gitlab)", cfg.Provider)
	}

	if cfg.CachePath == "" {
		return lk, noop, nil
	}

	s, err := store.New(store.Config{Path: cfg.CachePath, TTL: cfg.CacheTTL})
	if err != nil {
		return nil, noop, fmt.Errorf("opening lookup cache: %w", err)
	}
	return lookup.NewCached(lk, s), s.Close, nil
}

// failsAtLevel reports whether the result contains issues at or above the
// configured failure level. At "warning" any issue fails the run; at "error"
// only errors do.
func failsAtLevel(result ownerlint.Result, level string) bool {
	if level == "error" {
		return result.HasErrors()
	}
	return result.HasErrors() || result.HasWarnings()
}

func containsName(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}
