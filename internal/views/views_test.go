package views

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gorewood/gitprompts/internal/gitrepo"
	"github.com/gorewood/gitprompts/internal/render"
)

// fakeRepo records calls and serves canned responses.
type fakeRepo struct {
	changes      []gitrepo.ChangedFile
	staged       []gitrepo.ChangedFile
	commits      []gitrepo.Commit
	historyErr   error
	changesCalls []string
	historyCalls []string
	stagedCalled int
	seenExcludes []string
}

func (f *fakeRepo) Changes(_ context.Context, source, target string, excludes []string) ([]gitrepo.ChangedFile, error) {
	f.changesCalls = append(f.changesCalls, source+".."+target)
	f.seenExcludes = excludes
	return f.changes, nil
}

func (f *fakeRepo) StagedChanges(_ context.Context, excludes []string) ([]gitrepo.ChangedFile, error) {
	f.stagedCalled++
	f.seenExcludes = excludes
	return f.staged, nil
}

func (f *fakeRepo) History(_ context.Context, ancestor string) ([]gitrepo.Commit, error) {
	f.historyCalls = append(f.historyCalls, ancestor)
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.commits, nil
}

func someFiles() []gitrepo.ChangedFile {
	return []gitrepo.ChangedFile{
		{OldPath: "a.txt", NewPath: "a.txt", PatchText: "@@ -1 +1 @@\n-x\n+y\n"},
	}
}

func someCommits() []gitrepo.Commit {
	return []gitrepo.Commit{
		{
			SHA:     "cccccccccccccccccccccccccccccccccccccccc",
			Author:  "Cay Coder",
			When:    time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
			Message: "tweak things",
		},
	}
}

func newService(repo Repo, format render.Format) *Service {
	return New(repo, []string{"*.log"}, render.New(format))
}

func TestDiff_MissingAncestor(t *testing.T) {
	s := newService(&fakeRepo{}, render.Text)
	_, err := s.Diff(context.Background(), "")
	if !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("err = %v, want ErrMissingArgument", err)
	}
}

func TestDiff_FramingAndRange(t *testing.T) {
	repo := &fakeRepo{changes: someFiles()}
	s := newService(repo, render.Text)

	doc, err := s.Diff(context.Background(), "main")
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !strings.HasPrefix(doc, "File: a.txt -> a.txt\n") {
		t.Errorf("missing diff block:\n%s", doc)
	}
	if !strings.HasSuffix(doc, "\n\nAbove is the diff results between HEAD and main in plain text.\n") {
		t.Errorf("framing sentence wrong:\n%q", doc)
	}
	if len(repo.changesCalls) != 1 || repo.changesCalls[0] != "main..HEAD" {
		t.Errorf("changes calls = %v, want [main..HEAD]", repo.changesCalls)
	}
	if len(repo.seenExcludes) != 1 || repo.seenExcludes[0] != "*.log" {
		t.Errorf("excludes not forwarded: %v", repo.seenExcludes)
	}
}

func TestCachedDiff_Framing(t *testing.T) {
	repo := &fakeRepo{staged: someFiles()}
	s := newService(repo, render.JSON)

	doc, err := s.CachedDiff(context.Background())
	if err != nil {
		t.Fatalf("CachedDiff: %v", err)
	}
	if !strings.HasSuffix(doc, "\n\nAbove is the staged changes in the JSON format.") {
		t.Errorf("framing sentence wrong:\n%q", doc)
	}
	if repo.stagedCalled != 1 {
		t.Errorf("stagedCalled = %d, want 1", repo.stagedCalled)
	}
}

func TestCommitHistory_EmptyJSONUsesErrorObject(t *testing.T) {
	s := newService(&fakeRepo{}, render.JSON)

	doc, err := s.CommitHistory(context.Background(), "v1")
	if err != nil {
		t.Fatalf("CommitHistory: %v", err)
	}
	var parsed map[string]string
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.Contains(parsed["error_message"], "No commits found between") {
		t.Errorf("error_message = %q", parsed["error_message"])
	}
}

func TestCommitHistory_EmptyText(t *testing.T) {
	s := newService(&fakeRepo{}, render.Text)

	doc, err := s.CommitHistory(context.Background(), "v1")
	if err != nil {
		t.Fatalf("CommitHistory: %v", err)
	}
	if doc != "No commits found between v1 and HEAD." {
		t.Errorf("doc = %q", doc)
	}
}

func TestPRDescription_ComposesAndInstructs(t *testing.T) {
	t.Chdir(t.TempDir())
	repo := &fakeRepo{changes: someFiles(), commits: someCommits()}
	s := newService(repo, render.Text)

	doc, err := s.PRDescription(context.Background(), "main")
	if err != nil {
		t.Fatalf("PRDescription: %v", err)
	}
	if !strings.HasPrefix(doc, "Commit messages between main and HEAD:") {
		t.Errorf("history section missing:\n%s", doc)
	}
	if !strings.Contains(doc, "File: a.txt -> a.txt\n") {
		t.Errorf("diff section missing:\n%s", doc)
	}
	if !strings.Contains(doc, "\n\nAbove is the commit history and diff results between HEAD and main in plain text.\n") {
		t.Errorf("framing sentence missing:\n%s", doc)
	}
	if !strings.Contains(doc, "**Overview of the Changes:**") {
		t.Errorf("instruction block missing:\n%s", doc)
	}
}

func TestPRDescription_JSONKeys(t *testing.T) {
	t.Chdir(t.TempDir())
	repo := &fakeRepo{changes: someFiles(), commits: someCommits()}
	s := newService(repo, render.JSON)

	doc, err := s.PRDescription(context.Background(), "main")
	if err != nil {
		t.Fatalf("PRDescription: %v", err)
	}
	if !strings.Contains(doc, `"commit_history"`) || !strings.Contains(doc, `"diff"`) {
		t.Errorf("composite keys missing:\n%s", doc)
	}
}

func TestCommitMessage_EmptyStagedShortCircuits(t *testing.T) {
	for _, format := range []render.Format{render.Text, render.JSON} {
		for _, window := range []int{0, DefaultWindow} {
			repo := &fakeRepo{}
			s := newService(repo, format)

			doc, err := s.CommitMessage(context.Background(), window)
			if err != nil {
				t.Fatalf("CommitMessage(%v, %d): %v", format, window, err)
			}
			if doc != noStagedChanges {
				t.Errorf("doc = %q, want advisory sentence", doc)
			}
			if len(repo.historyCalls) != 0 {
				t.Errorf("history should not be consulted for a clean index")
			}
		}
	}
}

func TestCommitMessage_WindowZeroSkipsHistory(t *testing.T) {
	t.Chdir(t.TempDir())
	repo := &fakeRepo{staged: someFiles()}
	s := newService(repo, render.Text)

	doc, err := s.CommitMessage(context.Background(), 0)
	if err != nil {
		t.Fatalf("CommitMessage: %v", err)
	}
	if len(repo.historyCalls) != 0 {
		t.Errorf("history calls = %v, want none for window 0", repo.historyCalls)
	}
	if strings.Contains(doc, "Commit messages between") {
		t.Errorf("history framing leaked into window-0 output:\n%s", doc)
	}
	if !strings.Contains(doc, "\n\nAbove is the staged changes in plain text.\n") {
		t.Errorf("framing sentence missing:\n%s", doc)
	}
	if !strings.Contains(doc, "fenced code block") {
		t.Errorf("instruction block missing:\n%s", doc)
	}
}

func TestCommitMessage_WindowedAncestor(t *testing.T) {
	t.Chdir(t.TempDir())
	repo := &fakeRepo{staged: someFiles(), commits: someCommits()}
	s := newService(repo, render.Text)

	doc, err := s.CommitMessage(context.Background(), 2)
	if err != nil {
		t.Fatalf("CommitMessage: %v", err)
	}
	if len(repo.historyCalls) != 1 || repo.historyCalls[0] != "HEAD~2" {
		t.Errorf("history calls = %v, want [HEAD~2]", repo.historyCalls)
	}
	if !strings.Contains(doc, "Commit messages between HEAD~2 and HEAD:") {
		t.Errorf("history section missing:\n%s", doc)
	}
	if !strings.Contains(doc, "\n\nAbove is the commit history and the staged changes in plain text.\n") {
		t.Errorf("framing sentence missing:\n%s", doc)
	}
}

func TestCommitMessage_ShortHistoryDegrades(t *testing.T) {
	t.Chdir(t.TempDir())
	repo := &fakeRepo{staged: someFiles(), historyErr: gitrepo.ErrInvalidRange}
	s := newService(repo, render.Text)

	doc, err := s.CommitMessage(context.Background(), DefaultWindow)
	if err != nil {
		t.Fatalf("CommitMessage: %v", err)
	}
	if strings.Contains(doc, "Commit messages between") {
		t.Errorf("history framing present despite unsatisfiable window:\n%s", doc)
	}
	if !strings.Contains(doc, "Above is the staged changes in plain text.") {
		t.Errorf("windowless framing missing:\n%s", doc)
	}
}

func TestCommitMessage_NegativeWindow(t *testing.T) {
	s := newService(&fakeRepo{staged: someFiles()}, render.Text)
	if _, err := s.CommitMessage(context.Background(), -1); !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("err = %v, want ErrMissingArgument", err)
	}
}

func TestRawProjections(t *testing.T) {
	repo := &fakeRepo{changes: someFiles(), staged: someFiles(), commits: someCommits()}
	s := newService(repo, render.Text)
	ctx := context.Background()

	if _, err := s.DiffFiles(ctx, ""); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("DiffFiles(\"\") err = %v, want ErrMissingArgument", err)
	}
	files, err := s.DiffFiles(ctx, "main")
	if err != nil || len(files) != 1 {
		t.Errorf("DiffFiles = %v, %v", files, err)
	}
	staged, err := s.StagedFiles(ctx)
	if err != nil || len(staged) != 1 {
		t.Errorf("StagedFiles = %v, %v", staged, err)
	}
	commits, err := s.HistoryRecords(ctx, "main")
	if err != nil || len(commits) != 1 {
		t.Errorf("HistoryRecords = %v, %v", commits, err)
	}
}
