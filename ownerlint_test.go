package ownerlint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ownerlint/ownerlint/pkg/lookup"
)

// testRepo lays out a small repository tree and returns its root.
func testRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestNew(t *testing.T) {
	validator, err := New()
	require.NoError(t, err)

	assert.Equal(t, []string{"syntax", "files", "duppatterns"}, validator.Checks())
}

func TestNewWithLookupAddsOwners(t *testing.T) {
	validator, err := New(WithOwnerLookup(lookup.NewStatic(nil, nil)))
	require.NoError(t, err)

	assert.Contains(t, validator.Checks(), "owners")
}

func TestNewOwnersWithoutLookup(t *testing.T) {
	_, err := New(WithChecks("owners"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires an owner lookup")
}

func TestNewUnknownCheck(t *testing.T) {
	_, err := New(WithChecks("nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown check")
}

func TestNewExperimentalChecks(t *testing.T) {
	validator, err := New(WithExperimentalChecks("notowned", "avoid-shadowing"))
	require.NoError(t, err)

	checks := validator.Checks()
	assert.Contains(t, checks, "syntax")
	assert.Contains(t, checks, "notowned")
	assert.Contains(t, checks, "avoid-shadowing")
}

func TestValidateString(t *testing.T) {
	root := testRepo(t, map[string]string{"main.go": "package main\n"})

	validator, err := New()
	require.NoError(t, err)

	result, err := validator.ValidateString(context.Background(), "*.go @org/team\n*.md\n", root)
	require.NoError(t, err)

	// Every requested check reports, even when clean.
	require.Contains(t, result, "syntax")
	require.Contains(t, result, "files")
	require.Contains(t, result, "duppatterns")

	require.Len(t, result["syntax"], 1)
	assert.Equal(t, "pattern '*.md' has no owners", result["syntax"][0].Message)
	assert.Equal(t, SeverityError, result["syntax"][0].Severity)

	require.Len(t, result["files"], 1)
	assert.Equal(t, "pattern '*.md' does not match any files", result["files"][0].Message)

	assert.Empty(t, result["duppatterns"])

	assert.True(t, result.HasErrors())
	assert.True(t, result.HasWarnings())
	assert.Equal(t, 2, result.Count())
}

func TestValidateStringClean(t *testing.T) {
	root := testRepo(t, map[string]string{"main.go": "package main\n"})

	validator, err := New()
	require.NoError(t, err)

	result, err := validator.ValidateString(context.Background(), "*.go @org/team\n", root)
	require.NoError(t, err)

	assert.False(t, result.HasErrors())
	assert.False(t, result.HasWarnings())
	assert.Equal(t, 0, result.Count())
}

func TestValidateStringWithOwners(t *testing.T) {
	root := testRepo(t, map[string]string{"main.go": "package main\n"})
	lk := lookup.NewStatic([]string{"alice"}, []string{"org/team"})

	validator, err := New(WithOwnerLookup(lk))
	require.NoError(t, err)

	result, err := validator.ValidateString(context.Background(), "*.go @alice @ghost @org/team\n", root)
	require.NoError(t, err)

	require.Len(t, result["owners"], 1)
	assert.Equal(t, "owner '@ghost' not found - user does not exist", result["owners"][0].Message)
}

func TestValidateStringIgnoredOwners(t *testing.T) {
	root := testRepo(t, map[string]string{"main.go": "package main\n"})

	validator, err := New(
		WithOwnerLookup(lookup.NewStatic(nil, nil)),
		WithConfig(CheckConfig{IgnoredOwners: []string{"@ghost"}}),
	)
	require.NoError(t, err)

	result, err := validator.ValidateString(context.Background(), "*.go @ghost\n", root)
	require.NoError(t, err)

	assert.Empty(t, result["owners"])
}

func TestValidateRepo(t *testing.T) {
	root := testRepo(t, map[string]string{
		".github/CODEOWNERS": "* @org/team\n",
		"main.go":            "package main\n",
	})

	validator, err := New()
	require.NoError(t, err)

	result, err := validator.ValidateRepo(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Count())
}

func TestValidateRepoMissingFile(t *testing.T) {
	validator, err := New()
	require.NoError(t, err)

	_, err = validator.ValidateRepo(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CODEOWNERS file found")
}

func TestValidateFile(t *testing.T) {
	root := testRepo(t, map[string]string{
		".github/CODEOWNERS": "*.go @org/team\n",
		"main.go":            "package main\n",
	})

	validator, err := New()
	require.NoError(t, err)

	// The repository root resolves to the parent of .github/, so the files
	// check sees main.go and stays quiet.
	result, err := validator.ValidateFile(context.Background(), filepath.Join(root, ".github", "CODEOWNERS"))
	require.NoError(t, err)

	assert.Empty(t, result["files"])
}

func TestValidateFileMissing(t *testing.T) {
	validator, err := New()
	require.NoError(t, err)

	_, err = validator.ValidateFile(context.Background(), filepath.Join(t.TempDir(), "CODEOWNERS"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading file")
}

func TestParseRoundTrip(t *testing.T) {
	content := "# comment\n*.go @org/team\n\nbroken @a/b/c\n"

	doc, errs := Parse(content)
	require.Len(t, errs, 1)
	assert.Equal(t, content, doc.Render())
}
