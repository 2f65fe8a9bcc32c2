// Package gitrepo is the read-only query interface over a local git
// repository: diffs between two revisions, diffs against the staged
// index, and commit history ranges, all with full per-file patch
// bodies. It is implemented on go-git and never writes to the
// repository.
package gitrepo

import (
	"errors"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Sentinel errors for the failure kinds callers distinguish.
var (
	// ErrRepositoryUnavailable means the configured path is not a git
	// repository. Fatal at startup: the server must not serve without
	// a repository behind it.
	ErrRepositoryUnavailable = errors.New("repository unavailable")

	// ErrRevisionNotFound means a revision argument did not resolve.
	ErrRevisionNotFound = errors.New("revision not found")

	// ErrInvalidRange means the ancestor of a history range did not
	// resolve to a valid point in history.
	ErrInvalidRange = errors.New("invalid revision range")
)

// ChangedFile is one entry in a diff result. An empty OldPath marks a
// file creation, an empty NewPath a deletion; at least one is set.
// PatchText carries the raw unified diff body, untruncated.
type ChangedFile struct {
	OldPath   string
	NewPath   string
	PatchText string
}

// Commit is one entry in a history result. Message is trimmed of
// surrounding whitespace; When is the authoring time in UTC.
type Commit struct {
	SHA     string
	Author  string
	When    time.Time
	Message string
}

// Repository wraps an open local git repository.
type Repository struct {
	repo *git.Repository
	path string
}

// Open opens the repository at path. The error wraps
// ErrRepositoryUnavailable when path does not hold a git repository.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRepositoryUnavailable, path, err)
	}
	return &Repository{repo: repo, path: path}, nil
}

// Path returns the filesystem path the repository was opened at.
func (r *Repository) Path() string {
	return r.path
}

// resolveCommit maps a revision string (branch, tag, hash, HEAD~N) to
// its commit object.
func (r *Repository) resolveCommit(rev string) (*object.Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrRevisionNotFound, rev, err)
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	return commit, nil
}
