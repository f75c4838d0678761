// Package repo locates the repository root and its CODEOWNERS file.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// CodeownersLocations are the paths checked for a CODEOWNERS file, relative
// to the repository root, in search order. The first hit wins, matching the
// order GitHub itself documents.
var CodeownersLocations = []string{
	".github/CODEOWNERS",
	"CODEOWNERS",
	"docs/CODEOWNERS",
}

// FindCodeownersFile returns the path of the repository's CODEOWNERS file,
// checking .github/, the root, and docs/ in that order.
func FindCodeownersFile(root string) (string, error) {
	for _, rel := range CodeownersLocations {
		path := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("no CODEOWNERS file found in %s (checked .github/, the root, and docs/)", root)
}

// RootFromCodeownersPath returns the repository root implied by the location
// of a CODEOWNERS file, undoing the .github/ or docs/ nesting.
func RootFromCodeownersPath(path string) string {
	dir := filepath.Dir(path)
	switch filepath.Base(dir) {
	case ".github", "docs":
		return filepath.Dir(dir)
	}
	return dir
}

// ResolveRoot resolves path to the top of the git working tree containing
// it, so validation can be started from any subdirectory. A path outside any
// repository resolves to itself; the tool still works on plain directories.
func ResolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	r, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return abs, nil
		}
		return "", fmt.Errorf("opening repository at %s: %w", abs, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		// Bare repositories have no working tree to anchor to.
		return abs, nil
	}
	return wt.Filesystem.Root(), nil
}
