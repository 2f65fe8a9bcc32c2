// Package views composes the end-user operations: plain diff, staged
// diff, commit history, and the PR-description and commit-message
// prompt documents. Each operation is a pure function of its arguments
// plus the process-wide repository, exclusion list and format.
package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorewood/gitprompts/internal/gitrepo"
	"github.com/gorewood/gitprompts/internal/prompt"
	"github.com/gorewood/gitprompts/internal/render"
)

// ErrMissingArgument marks a required operation argument that was
// absent or empty.
var ErrMissingArgument = errors.New("required argument missing")

// DefaultWindow is the commit-history window used by the
// commit-message view when the caller gives none.
const DefaultWindow = 5

// noStagedChanges is returned verbatim by CommitMessage when the index
// is clean, whatever the window size or output format.
const noStagedChanges = "There are no staged changes to commit. " +
	"Tell the user that nothing is staged yet, and ask whether they would like " +
	"to stage their unstaged changes first."

// Repo is the repository surface the views need.
type Repo interface {
	Changes(ctx context.Context, source, target string, excludes []string) ([]gitrepo.ChangedFile, error)
	StagedChanges(ctx context.Context, excludes []string) ([]gitrepo.ChangedFile, error)
	History(ctx context.Context, ancestor string) ([]gitrepo.Commit, error)
}

// Service holds the shared, immutable operation inputs.
type Service struct {
	repo     Repo
	excludes []string
	renderer *render.Renderer
}

// New creates a Service over the given repository.
func New(repo Repo, excludes []string, renderer *render.Renderer) *Service {
	return &Service{repo: repo, excludes: excludes, renderer: renderer}
}

// Diff renders the changes between ancestor and the current tip,
// framed with a sentence naming the range and format.
func (s *Service) Diff(ctx context.Context, ancestor string) (string, error) {
	const op = "git-diff"
	if ancestor == "" {
		return "", fmt.Errorf("%s: ancestor: %w", op, ErrMissingArgument)
	}

	files, err := s.repo.Changes(ctx, ancestor, "HEAD", s.excludes)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	doc, err := s.renderer.Changes(files)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("%s\n\nAbove is the diff results between HEAD and %s in %s.\n",
		doc, ancestor, s.renderer.FormatName()), nil
}

// CachedDiff renders the staged changes, framed with a sentence naming
// the format.
func (s *Service) CachedDiff(ctx context.Context) (string, error) {
	const op = "git-cached-diff"

	files, err := s.repo.StagedChanges(ctx, s.excludes)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	doc, err := s.renderer.Changes(files)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("%s\n\nAbove is the staged changes in %s.",
		doc, s.renderer.FormatName()), nil
}

// CommitHistory renders the commits between ancestor and the current
// tip. An empty range in JSON mode yields the explicit error object
// instead of an ambiguous empty array.
func (s *Service) CommitHistory(ctx context.Context, ancestor string) (string, error) {
	const op = "git-commit-messages"
	if ancestor == "" {
		return "", fmt.Errorf("%s: ancestor: %w", op, ErrMissingArgument)
	}

	commits, err := s.repo.History(ctx, ancestor)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if s.renderer.Format() == render.JSON && len(commits) == 0 {
		return s.renderer.HistoryError(ancestor), nil
	}
	doc, err := s.renderer.History(commits, ancestor)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return doc, nil
}

// PRDescription composes history plus diff between ancestor and the
// current tip, then appends the pull-request instruction block.
func (s *Service) PRDescription(ctx context.Context, ancestor string) (string, error) {
	const op = "generate-pr-desc"
	if ancestor == "" {
		return "", fmt.Errorf("%s: ancestor: %w", op, ErrMissingArgument)
	}

	commits, err := s.repo.History(ctx, ancestor)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	files, err := s.repo.Changes(ctx, ancestor, "HEAD", s.excludes)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	doc, err := s.renderer.Composite(commits, files, ancestor)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	tmpl, err := prompt.Load(prompt.PRDescription)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("%s\n\nAbove is the commit history and diff results between HEAD and %s in %s.\n\n%s",
		doc, ancestor, s.renderer.FormatName(), tmpl.Content), nil
}

// CommitMessage composes the staged changes, optionally preceded by the
// last window commits for convention context, then appends the
// commit-message instruction block. A clean index short-circuits to a
// fixed advisory sentence without touching the renderer. A window the
// repository's history cannot satisfy degrades to the windowless form.
func (s *Service) CommitMessage(ctx context.Context, window int) (string, error) {
	const op = "generate-commit-message"
	if window < 0 {
		return "", fmt.Errorf("%s: window size must not be negative: %w", op, ErrMissingArgument)
	}

	files, err := s.repo.StagedChanges(ctx, s.excludes)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(files) == 0 {
		return noStagedChanges, nil
	}

	var commits []gitrepo.Commit
	ancestor := fmt.Sprintf("HEAD~%d", window)
	if window > 0 {
		commits, err = s.repo.History(ctx, ancestor)
		if err != nil && !errors.Is(err, gitrepo.ErrInvalidRange) {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	tmpl, err := prompt.Load(prompt.CommitMessage)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if len(commits) == 0 {
		doc, err := s.renderer.Changes(files)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		return fmt.Sprintf("%s\n\nAbove is the staged changes in %s.\n\n%s",
			doc, s.renderer.FormatName(), tmpl.Content), nil
	}

	doc, err := s.renderer.Composite(commits, files, ancestor)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("%s\n\nAbove is the commit history and the staged changes in %s.\n\n%s",
		doc, s.renderer.FormatName(), tmpl.Content), nil
}

// DiffFiles returns the raw changed-file records between ancestor and
// the current tip, for tool-style consumers.
func (s *Service) DiffFiles(ctx context.Context, ancestor string) ([]gitrepo.ChangedFile, error) {
	if ancestor == "" {
		return nil, fmt.Errorf("git-diff: ancestor: %w", ErrMissingArgument)
	}
	return s.repo.Changes(ctx, ancestor, "HEAD", s.excludes)
}

// StagedFiles returns the raw staged changed-file records.
func (s *Service) StagedFiles(ctx context.Context) ([]gitrepo.ChangedFile, error) {
	return s.repo.StagedChanges(ctx, s.excludes)
}

// HistoryRecords returns the raw commit records between ancestor and
// the current tip.
func (s *Service) HistoryRecords(ctx context.Context, ancestor string) ([]gitrepo.Commit, error) {
	if ancestor == "" {
		return nil, fmt.Errorf("git-commit-messages: ancestor: %w", ErrMissingArgument)
	}
	return s.repo.History(ctx, ancestor)
}
