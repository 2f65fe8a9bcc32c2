// Package match decides whether changed-file paths should be dropped
// from diff results, given user-supplied glob exclusion patterns.
package match

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Excluded reports whether p matches any of the exclusion patterns.
// An empty path never matches (nothing to match against); empty
// patterns are skipped. The first matching pattern wins.
//
// Pattern semantics:
//   - "*" matches within a single path segment
//   - a pattern with no "/" is matched against the final path segment
//     only, so "*.log" and "target.txt" hit files at any depth
//   - a pattern starting with "**/" matches its tail at any depth,
//     including depth zero (a root-level file)
//   - anything else is matched against the whole relative path
func Excluded(p string, patterns []string) bool {
	if p == "" {
		return false
	}
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if matches(pattern, p) {
			return true
		}
	}
	return false
}

// ExcludedFile reports whether a changed file should be dropped: either
// its old path or its new path matching any pattern excludes it.
func ExcludedFile(oldPath, newPath string, patterns []string) bool {
	return Excluded(oldPath, patterns) || Excluded(newPath, patterns)
}

// matches applies a single pattern to a single path.
func matches(pattern, p string) bool {
	if strings.HasPrefix(pattern, "**/") {
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return true
		}
		// Engines that read "**/" as one-or-more directories would miss
		// root-level files, so the bare tail is applied as a fallback.
		ok, err := doublestar.Match(strings.TrimPrefix(pattern, "**/"), p)
		return err == nil && ok
	}

	if !strings.Contains(pattern, "/") {
		ok, err := doublestar.Match(pattern, path.Base(p))
		return err == nil && ok
	}

	ok, err := doublestar.Match(pattern, p)
	return err == nil && ok
}
