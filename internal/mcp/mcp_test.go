package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gitprompts/internal/gitrepo"
	"github.com/gorewood/gitprompts/internal/render"
	"github.com/gorewood/gitprompts/internal/views"
)

// --- Mock repository ---

type mockRepo struct {
	changes []gitrepo.ChangedFile
	staged  []gitrepo.ChangedFile
	commits []gitrepo.Commit
	err     error
}

func (m *mockRepo) Changes(_ context.Context, _, _ string, _ []string) ([]gitrepo.ChangedFile, error) {
	return m.changes, m.err
}

func (m *mockRepo) StagedChanges(_ context.Context, _ []string) ([]gitrepo.ChangedFile, error) {
	return m.staged, m.err
}

func (m *mockRepo) History(_ context.Context, _ string) ([]gitrepo.Commit, error) {
	return m.commits, m.err
}

func makeService(repo views.Repo) *views.Service {
	return views.New(repo, nil, render.New(render.Text))
}

func testFile() gitrepo.ChangedFile {
	return gitrepo.ChangedFile{OldPath: "a.txt", NewPath: "a.txt", PatchText: "+x\n"}
}

func testCommit() gitrepo.Commit {
	return gitrepo.Commit{
		SHA:     "abcabcabcabcabcabcabcabcabcabcabcabcabca",
		Author:  "Al Coder",
		When:    time.Date(2024, 4, 1, 7, 0, 0, 0, time.UTC),
		Message: "adjust things",
	}
}

// --- Tool handler tests ---

func TestHandleDiff(t *testing.T) {
	service := makeService(&mockRepo{changes: []gitrepo.ChangedFile{testFile()}})
	handler := handleDiff(service)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, DiffInput{Ancestor: "main"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(out.Files))
	}
	if out.Files[0].APath != "a.txt" || out.Files[0].Diff != "+x\n" {
		t.Errorf("entry = %+v", out.Files[0])
	}
}

func TestHandleDiff_MissingAncestor(t *testing.T) {
	service := makeService(&mockRepo{})
	handler := handleDiff(service)

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, DiffInput{})
	if !errors.Is(err, views.ErrMissingArgument) {
		t.Fatalf("err = %v, want ErrMissingArgument", err)
	}
}

func TestHandleCachedDiff(t *testing.T) {
	service := makeService(&mockRepo{staged: []gitrepo.ChangedFile{
		{NewPath: "new.txt", PatchText: "+fresh\n"},
	}})
	handler := handleCachedDiff(service)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, CachedDiffInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(out.Files))
	}
	if out.Files[0].APath != "New Addition" || out.Files[0].BPath != "new.txt" {
		t.Errorf("entry = %+v", out.Files[0])
	}
}

func TestHandleCommitMessages(t *testing.T) {
	service := makeService(&mockRepo{commits: []gitrepo.Commit{testCommit()}})
	handler := handleCommitMessages(service)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, DiffInput{Ancestor: "v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Commits) != 1 {
		t.Fatalf("len(Commits) = %d, want 1", len(out.Commits))
	}
	got := out.Commits[0]
	if got.Hexsha != testCommit().SHA || got.CreateTime != "2024-04-01T07:00:00Z" {
		t.Errorf("entry = %+v", got)
	}
}

// --- Prompt handler tests ---

func promptRequest(args map[string]string) *mcp.GetPromptRequest {
	return &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Arguments: args},
	}
}

func TestAncestorPrompt(t *testing.T) {
	service := makeService(&mockRepo{changes: []gitrepo.ChangedFile{testFile()}})
	handler := ancestorPrompt(service.Diff)

	result, err := handler(context.Background(), promptRequest(map[string]string{"ancestor": "main"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("len(Messages) = %d, want 1", len(result.Messages))
	}
	if result.Messages[0].Role != "user" {
		t.Errorf("Role = %q, want user", result.Messages[0].Role)
	}
	text, ok := result.Messages[0].Content.(*mcp.TextContent)
	if !ok {
		t.Fatalf("Content = %T, want *mcp.TextContent", result.Messages[0].Content)
	}
	if !strings.Contains(text.Text, "File: a.txt -> a.txt") {
		t.Errorf("text = %q", text.Text)
	}
}

func TestAncestorPrompt_MissingArgument(t *testing.T) {
	service := makeService(&mockRepo{})
	handler := ancestorPrompt(service.Diff)

	_, err := handler(context.Background(), promptRequest(nil))
	if !errors.Is(err, views.ErrMissingArgument) {
		t.Fatalf("err = %v, want ErrMissingArgument", err)
	}
}

func TestParseWindowSize(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", views.DefaultWindow, false},
		{"0", 0, false},
		{"7", 7, false},
		{"-1", 0, true},
		{"five", 0, true},
	}
	for _, tc := range cases {
		got, err := parseWindowSize(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseWindowSize(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseWindowSize(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseWindowSize(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestNewServer_Registers(t *testing.T) {
	server := NewServer("test", makeService(&mockRepo{}))
	if server == nil {
		t.Fatal("NewServer returned nil")
	}
}
