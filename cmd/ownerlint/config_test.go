package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ownerlint/ownerlint/pkg/check"
)

// writeConfigFile drops a .ownerlint.yaml into dir.
func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
}

func TestResolveValidate_Defaults(t *testing.T) {
	clearValidateEnv(t)
	dir := t.TempDir()
	cmd := newValidateCmd()

	cfg, err := resolveValidate(cmd, []string{dir})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.RepoPath)
	assert.True(t, cfg.RepoPathExplicit)
	assert.Nil(t, cfg.Checks)
	assert.Empty(t, cfg.Experimental)
	assert.Equal(t, "warning", cfg.FailureLevel)
	assert.Equal(t, "human", cfg.Format)
	assert.Equal(t, "github", cfg.Provider)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, check.DefaultLookupWorkers, cfg.LookupWorkers)
	assert.True(t, cfg.CheckCfg.AllowUnownedPatterns)
	assert.False(t, cfg.CheckCfg.OwnersMustBeTeams)
}

func TestResolveValidate_FileConfig(t *testing.T) {
	clearValidateEnv(t)
	dir := t.TempDir()
	writeConfigFile(t, dir, `
checks:
  - syntax
  - files
experimental_checks:
  - notowned
check_failure_level: error
format: json
provider: gitlab
gitlab_base_url: https://gitlab.example.com/
owner_checker:
  repository: org/repo
  ignored_owners:
    - "@bot"
  allow_unowned_patterns: false
  owners_must_be_teams: true
  cache_path: /tmp/owners.db
  cache_ttl: 1h
not_owned_checker:
  skip_patterns:
    - "docs/**"
`)

	cmd := newValidateCmd()
	cfg, err := resolveValidate(cmd, []string{dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"syntax", "files"}, cfg.Checks)
	assert.Equal(t, []string{"notowned"}, cfg.Experimental)
	assert.Equal(t, "error", cfg.FailureLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "gitlab", cfg.Provider)
	assert.Equal(t, "https://gitlab.example.com/", cfg.GitlabBaseURL)
	assert.Equal(t, "org/repo", cfg.CheckCfg.Repository)
	assert.Equal(t, []string{"@bot"}, cfg.CheckCfg.IgnoredOwners)
	assert.False(t, cfg.CheckCfg.AllowUnownedPatterns)
	assert.True(t, cfg.CheckCfg.OwnersMustBeTeams)
	assert.Equal(t, "/tmp/owners.db", cfg.CachePath)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, []string{"docs/**"}, cfg.CheckCfg.SkipPatterns)
}

func TestResolveValidate_EnvOverridesFile(t *testing.T) {
	clearValidateEnv(t)
	dir := t.TempDir()
	writeConfigFile(t, dir, `
checks:
  - syntax
check_failure_level: error
owner_checker:
  allow_unowned_patterns: false
  cache_ttl: 1h
`)

	t.Setenv("CHECKS", " files , duppatterns ")
	t.Setenv("CHECK_FAILURE_LEVEL", "warning")
	t.Setenv("OWNER_CHECKER_ALLOW_UNOWNED_PATTERNS", "true")
	t.Setenv("OWNER_CHECKER_CACHE_TTL", "30m")
	t.Setenv("GITLAB_ACCESS_TOKEN", "glpat-test")

	cmd := newValidateCmd()
	cfg, err := resolveValidate(cmd, []string{dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"files", "duppatterns"}, cfg.Checks)
	assert.Equal(t, "warning", cfg.FailureLevel)
	assert.True(t, cfg.CheckCfg.AllowUnownedPatterns)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "glpat-test", cfg.GitlabToken)
}

func TestResolveValidate_FlagOverridesEnv(t *testing.T) {
	clearValidateEnv(t)
	dir := t.TempDir()
	t.Setenv("CHECK_FAILURE_LEVEL", "warning")
	t.Setenv("OWNER_CHECKER_ALLOW_UNOWNED_PATTERNS", "true")

	cmd := newValidateCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--check-failure-level=error",
		"--owner-checker-allow-unowned-patterns=false",
	}))

	cfg, err := resolveValidate(cmd, []string{dir})
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.FailureLevel)
	assert.False(t, cfg.CheckCfg.AllowUnownedPatterns)
}

func TestResolveValidate_RepositoryPathEnv(t *testing.T) {
	clearValidateEnv(t)
	envDir := t.TempDir()
	argDir := t.TempDir()
	t.Setenv("REPOSITORY_PATH", envDir)

	cmd := newValidateCmd()
	cfg, err := resolveValidate(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, envDir, cfg.RepoPath)
	assert.True(t, cfg.RepoPathExplicit)

	// A positional argument wins over the environment.
	cmd = newValidateCmd()
	cfg, err = resolveValidate(cmd, []string{argDir})
	require.NoError(t, err)
	assert.Equal(t, argDir, cfg.RepoPath)
}

func TestResolveValidate_InvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		file    string
		wantErr string
	}{
		{
			name:    "bad failure level",
			env:     map[string]string{"CHECK_FAILURE_LEVEL": "fatal"},
			wantErr: "invalid check failure level",
		},
		{
			name:    "bad format",
			file:    "format: xml\n",
			wantErr: "unknown output format: xml",
		},
		{
			name:    "bad cache ttl",
			file:    "owner_checker:\n  cache_ttl: soon\n",
			wantErr: "invalid cache_ttl",
		},
		{
			name:    "bad bool env",
			env:     map[string]string{"OWNER_CHECKER_OWNERS_MUST_BE_TEAMS": "banana"},
			wantErr: "invalid OWNER_CHECKER_OWNERS_MUST_BE_TEAMS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearValidateEnv(t)
			dir := t.TempDir()
			if tt.file != "" {
				writeConfigFile(t, dir, tt.file)
			}
			for name, value := range tt.env {
				t.Setenv(name, value)
			}

			cmd := newValidateCmd()
			_, err := resolveValidate(cmd, []string{dir})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFileConfig_Missing(t *testing.T) {
	cfg, err := loadFileConfig(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg.Checks)
	assert.Nil(t, cfg.OwnerChecker.AllowUnownedPatterns)
}

func TestLoadFileConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "checks: [unclosed\n")

	_, err := loadFileConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoadFileConfig_BoolPointers(t *testing.T) {
	// An absent boolean key stays nil; an explicit false is kept.
	dir := t.TempDir()
	writeConfigFile(t, dir, "owner_checker:\n  allow_unowned_patterns: false\n")

	cfg, err := loadFileConfig(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.OwnerChecker.AllowUnownedPatterns)
	assert.False(t, *cfg.OwnerChecker.AllowUnownedPatterns)
	assert.Nil(t, cfg.OwnerChecker.OwnersMustBeTeams)
}

func TestStringSetting(t *testing.T) {
	t.Setenv("TEST_SETTING", "from-env")

	changed := pflag.NewFlagSet("test", pflag.ContinueOnError)
	changed.String("setting", "default", "")
	require.NoError(t, changed.Set("setting", "from-flag"))

	unchanged := pflag.NewFlagSet("test", pflag.ContinueOnError)
	unchanged.String("setting", "default", "")

	assert.Equal(t, "from-flag", stringSetting(changed, "setting", "from-flag", "TEST_SETTING", "from-file", "default"))
	assert.Equal(t, "from-env", stringSetting(unchanged, "setting", "default", "TEST_SETTING", "from-file", "default"))

	t.Setenv("TEST_SETTING", "")
	assert.Equal(t, "from-file", stringSetting(unchanged, "setting", "default", "TEST_SETTING", "from-file", "default"))
	assert.Equal(t, "default", stringSetting(unchanged, "setting", "default", "TEST_SETTING", "", "default"))
}

func TestEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", "a, b ,,c")
	list, ok := envList("TEST_LIST")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, list)

	t.Setenv("TEST_LIST", "")
	list, ok = envList("TEST_LIST")
	assert.False(t, ok)
	assert.Nil(t, list)
}

func TestEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	v, ok, err := envBool("TEST_BOOL")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, v)

	t.Setenv("TEST_BOOL", "0")
	v, ok, err = envBool("TEST_BOOL")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, v)

	t.Setenv("TEST_BOOL", "")
	_, ok, err = envBool("TEST_BOOL")
	require.NoError(t, err)
	assert.False(t, ok)

	t.Setenv("TEST_BOOL", "maybe")
	_, _, err = envBool("TEST_BOOL")
	require.Error(t, err)
}
