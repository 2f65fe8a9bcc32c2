package gitrepo

import (
	"context"
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// History returns the commits reachable from HEAD but not from
// ancestor, in the engine's own walk order (newest first; go-git's
// default traversal, not re-sorted). An empty result is not an error.
// The error wraps ErrInvalidRange when ancestor does not resolve.
func (r *Repository) History(ctx context.Context, ancestor string) ([]Commit, error) {
	ancestorHash, err := r.repo.ResolveRevision(plumbing.Revision(ancestor))
	if err != nil {
		return nil, fmt.Errorf("%w: %s..HEAD: %v", ErrInvalidRange, ancestor, err)
	}
	headRef, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	// Mark everything reachable from the ancestor, then walk from HEAD
	// skipping marked hashes. The survivors are exactly ancestor..HEAD.
	reachable := make(map[plumbing.Hash]struct{})
	ancestorIter, err := r.repo.Log(&git.LogOptions{From: *ancestorHash})
	if err != nil {
		return nil, fmt.Errorf("%w: %s..HEAD: %v", ErrInvalidRange, ancestor, err)
	}
	err = ancestorIter.ForEach(func(c *object.Commit) error {
		reachable[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", ancestor, err)
	}

	headIter, err := r.repo.Log(&git.LogOptions{From: headRef.Hash()})
	if err != nil {
		return nil, fmt.Errorf("walking history from HEAD: %w", err)
	}
	var commits []Commit
	err = headIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, seen := reachable[c.Hash]; seen {
			return nil
		}
		commits = append(commits, Commit{
			SHA:     c.Hash.String(),
			Author:  c.Author.Name,
			When:    c.Author.When.UTC(),
			Message: strings.TrimSpace(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from HEAD: %w", err)
	}
	return commits, nil
}
