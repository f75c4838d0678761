package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ownerlint/ownerlint"
)

// ConfigFileName is looked up in the repository root.
const ConfigFileName = ".ownerlint.yaml"

// fileConfig is the intermediate struct for parsing .ownerlint.yaml.
// Booleans are pointers so an absent key differs from an explicit false.
// Access tokens are deliberately not file options; pass them through the
// environment or flags.
type fileConfig struct {
	Checks             []string `yaml:"checks"`
	ExperimentalChecks []string `yaml:"experimental_checks"`
	CheckFailureLevel  string   `yaml:"check_failure_level"`
	Format             string   `yaml:"format"`
	Provider           string   `yaml:"provider"`
	GithubBaseURL      string   `yaml:"github_base_url"`
	GitlabBaseURL      string   `yaml:"gitlab_base_url"`

	OwnerChecker struct {
		Repository           string   `yaml:"repository"`
		IgnoredOwners        []string `yaml:"ignored_owners"`
		AllowUnownedPatterns *bool    `yaml:"allow_unowned_patterns"`
		OwnersMustBeTeams    *bool    `yaml:"owners_must_be_teams"`
		CachePath            string   `yaml:"cache_path"`
		CacheTTL             string   `yaml:"cache_ttl"`
	} `yaml:"owner_checker"`

	NotOwnedChecker struct {
		SkipPatterns []string `yaml:"skip_patterns"`
	} `yaml:"not_owned_checker"`
}

// loadFileConfig reads .ownerlint.yaml from the repository root. A missing
// file is not an error; a malformed one is.
func loadFileConfig(root string) (fileConfig, error) {
	var cfg fileConfig

	data, err := os.ReadFile(filepath.Join(root, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", ConfigFileName, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

// resolvedConfig is the merged validate configuration.
type resolvedConfig struct {
	RepoPath         string
	RepoPathExplicit bool
	File             string
	Checks           []string // nil selects the default checks
	Experimental     []string
	FailureLevel     string
	Format           string
	Provider         string
	GithubToken      string
	GithubBaseURL    string
	GitlabToken      string
	GitlabBaseURL    string
	CheckCfg         ownerlint.CheckConfig
	CachePath        string
	CacheTTL         time.Duration
	LookupWorkers    int
}

// resolveValidate merges the validate settings as flag > environment >
// config file > default. cmd may be the validate command or the root command
// running the default workflow; unknown flag names resolve as unchanged.
func resolveValidate(cmd *cobra.Command, args []string) (resolvedConfig, error) {
	var cfg resolvedConfig
	flags := cmd.Flags()

	// The repository path resolves first: it anchors the config file.
	cfg.RepoPath = validateRepoPath
	cfg.RepoPathExplicit = flags.Changed("repository-path")
	if !cfg.RepoPathExplicit {
		if env := os.Getenv("REPOSITORY_PATH"); env != "" {
			cfg.RepoPath = env
			cfg.RepoPathExplicit = true
		}
	}
	if len(args) > 0 {
		cfg.RepoPath = args[0]
		cfg.RepoPathExplicit = true
	}
	cfg.File = validateFile

	file, err := loadFileConfig(cfg.RepoPath)
	if err != nil {
		return cfg, err
	}

	// Checks: nil means the default selection, so file and env may set an
	// explicit list and the flag overrides it wholesale.
	cfg.Checks = file.Checks
	if env, ok := envList("CHECKS"); ok {
		cfg.Checks = env
	}
	if flags.Changed("checks") {
		cfg.Checks = validateChecks
	}

	cfg.Experimental = file.ExperimentalChecks
	if env, ok := envList("EXPERIMENTAL_CHECKS"); ok {
		cfg.Experimental = env
	}
	if flags.Changed("experimental-checks") {
		cfg.Experimental = validateExperimental
	}

	cfg.FailureLevel = stringSetting(flags, "check-failure-level", validateFailureLevel, "CHECK_FAILURE_LEVEL", file.CheckFailureLevel, "warning")
	switch cfg.FailureLevel {
	case "warning", "error":
	default:
		return cfg, fmt.Errorf("invalid check failure level %q (expected error or warning)", cfg.FailureLevel)
	}

	cfg.Format = stringSetting(flags, "format", validateFormat, "", file.Format, "human")
	switch cfg.Format {
	case "human", "json", "sarif":
	default:
		return cfg, fmt.Errorf("unknown output format: %s", cfg.Format)
	}

	cfg.Provider = stringSetting(flags, "provider", validateProvider, "OWNER_CHECKER_PROVIDER", file.Provider, "github")
	cfg.GithubToken = stringSetting(flags, "github-access-token", validateGithubToken, "GITHUB_ACCESS_TOKEN", "", "")
	cfg.GithubBaseURL = stringSetting(flags, "github-base-url", validateGithubBaseURL, "GITHUB_BASE_URL", file.GithubBaseURL, "")
	cfg.GitlabToken = stringSetting(flags, "gitlab-access-token", validateGitlabToken, "GITLAB_ACCESS_TOKEN", "", "")
	cfg.GitlabBaseURL = stringSetting(flags, "gitlab-base-url", validateGitlabBaseURL, "GITLAB_BASE_URL", file.GitlabBaseURL, "")

	cfg.CachePath = stringSetting(flags, "cache", validateCachePath, "OWNER_CHECKER_CACHE_PATH", file.OwnerChecker.CachePath, "")

	cfg.CacheTTL = validateCacheTTL
	if !flags.Changed("cache-ttl") {
		if file.OwnerChecker.CacheTTL != "" {
			d, err := time.ParseDuration(file.OwnerChecker.CacheTTL)
			if err != nil {
				return cfg, fmt.Errorf("invalid cache_ttl in %s: %w", ConfigFileName, err)
			}
			cfg.CacheTTL = d
		}
		if env := os.Getenv("OWNER_CHECKER_CACHE_TTL"); env != "" {
			d, err := time.ParseDuration(env)
			if err != nil {
				return cfg, fmt.Errorf("invalid OWNER_CHECKER_CACHE_TTL: %w", err)
			}
			cfg.CacheTTL = d
		}
	}

	cfg.LookupWorkers = validateWorkers

	checkCfg := ownerlint.CheckConfig{}
	checkCfg.Repository = stringSetting(flags, "owner-checker-repository", validateRepository, "OWNER_CHECKER_REPOSITORY", file.OwnerChecker.Repository, "")

	checkCfg.IgnoredOwners = file.OwnerChecker.IgnoredOwners
	if env, ok := envList("OWNER_CHECKER_IGNORED_OWNERS"); ok {
		checkCfg.IgnoredOwners = env
	}
	if flags.Changed("owner-checker-ignored-owners") {
		checkCfg.IgnoredOwners = validateIgnoredOwners
	}

	allowUnowned := true
	if file.OwnerChecker.AllowUnownedPatterns != nil {
		allowUnowned = *file.OwnerChecker.AllowUnownedPatterns
	}
	if v, ok, err := envBool("OWNER_CHECKER_ALLOW_UNOWNED_PATTERNS"); err != nil {
		return cfg, err
	} else if ok {
		allowUnowned = v
	}
	if flags.Changed("owner-checker-allow-unowned-patterns") {
		allowUnowned = validateAllowUnowned
	}
	checkCfg.AllowUnownedPatterns = allowUnowned

	mustBeTeams := false
	if file.OwnerChecker.OwnersMustBeTeams != nil {
		mustBeTeams = *file.OwnerChecker.OwnersMustBeTeams
	}
	if v, ok, err := envBool("OWNER_CHECKER_OWNERS_MUST_BE_TEAMS"); err != nil {
		return cfg, err
	} else if ok {
		mustBeTeams = v
	}
	if flags.Changed("owner-checker-owners-must-be-teams") {
		mustBeTeams = validateMustBeTeams
	}
	checkCfg.OwnersMustBeTeams = mustBeTeams

	checkCfg.SkipPatterns = file.NotOwnedChecker.SkipPatterns
	if env, ok := envList("NOT_OWNED_CHECKER_SKIP_PATTERNS"); ok {
		checkCfg.SkipPatterns = env
	}
	if flags.Changed("not-owned-checker-skip-patterns") {
		checkCfg.SkipPatterns = validateSkipPatterns
	}

	cfg.CheckCfg = checkCfg
	return cfg, nil
}

// stringSetting resolves one string option as flag > env > file > default.
// envName may be empty for flag-and-file-only options.
func stringSetting(flags *pflag.FlagSet, flagName, flagValue, envName, fileValue, def string) string {
	if flags.Changed(flagName) {
		return flagValue
	}
	if envName != "" {
		if env := os.Getenv(envName); env != "" {
			return env
		}
	}
	if fileValue != "" {
		return fileValue
	}
	return def
}

// envList reads a comma-separated environment variable. ok reports whether
// the variable was set to anything non-empty.
func envList(name string) ([]string, bool) {
	env := os.Getenv(name)
	if env == "" {
		return nil, false
	}
	parts := strings.Split(env, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list, true
}

// envBool reads a boolean environment variable. ok reports whether the
// variable was set.
func envBool(name string) (value, ok bool, err error) {
	env := os.Getenv(name)
	if env == "" {
		return false, false, nil
	}
	v, err := strconv.ParseBool(env)
	if err != nil {
		return false, false, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, true, nil
}
