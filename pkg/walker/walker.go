// Package walker enumerates a repository's file tree for the checks that
// need a snapshot of candidate paths. Two profiles exist: the files check
// wants directories included and hidden entries skipped, while the not-owned
// check wants every file, hidden ones included, minus whatever .gitignore
// rules exclude.
package walker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/ownerlint/ownerlint/pkg/match"
)

// Config controls a tree walk.
type Config struct {
	Root               string
	IncludeHidden      bool
	RespectGitignore   bool
	IncludeDirectories bool
	FollowSymlinks     bool
}

// ForFilesCheck is the profile the files check walks with: directory entries
// kept so directory patterns over empty directories still count as matching,
// hidden entries skipped, gitignore ignored.
func ForFilesCheck(root string) Config {
	return Config{
		Root:               root,
		IncludeHidden:      false,
		RespectGitignore:   false,
		IncludeDirectories: true,
	}
}

// ForNotOwnedCheck is the profile the not-owned and shadowing checks walk
// with: files only, hidden files included, .gitignore respected so generated
// and vendored files are not reported as unowned.
func ForNotOwnedCheck(root string) Config {
	return Config{
		Root:               root,
		IncludeHidden:      true,
		RespectGitignore:   true,
		IncludeDirectories: false,
	}
}

// Walker walks a repository tree and yields entries with slash-separated
// paths relative to the root.
type Walker struct {
	config Config
}

// New creates a walker with the given configuration.
func New(config Config) *Walker {
	return &Walker{config: config}
}

// Walk traverses the tree in lexical order, invoking callback once per
// eligible entry. The .git directory is always skipped.
func (w *Walker) Walk(ctx context.Context, callback func(entry match.Entry) error) error {
	var ignore *gitignore.GitIgnore
	if w.config.RespectGitignore {
		gitignorePath := filepath.Join(w.config.Root, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
		}
	}

	root := w.config.Root
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			if !w.config.IncludeHidden && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			if ignoreMatches(ignore, rel, true) {
				return filepath.SkipDir
			}
			if !w.config.IncludeDirectories {
				return nil
			}
			return callback(match.Entry{Path: rel, IsDir: true})
		}

		if info.Mode()&os.ModeSymlink != 0 && !w.config.FollowSymlinks {
			return nil
		}
		if !w.config.IncludeHidden && isHidden(info.Name()) {
			return nil
		}
		if ignoreMatches(ignore, rel, false) {
			return nil
		}

		return callback(match.Entry{Path: rel})
	})
}

// Snapshot collects the full entry list in one walk.
func (w *Walker) Snapshot(ctx context.Context) ([]match.Entry, error) {
	var entries []match.Entry
	err := w.Walk(ctx, func(entry match.Entry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func ignoreMatches(ignore *gitignore.GitIgnore, rel string, isDir bool) bool {
	if ignore == nil {
		return false
	}
	if ignore.MatchesPath(rel) {
		return true
	}
	// Directory-only rules like "build/" want the trailing slash present.
	return isDir && ignore.MatchesPath(rel+"/")
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
