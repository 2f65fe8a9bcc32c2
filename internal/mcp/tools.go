package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gitprompts/internal/render"
	"github.com/gorewood/gitprompts/internal/views"
)

// DiffInput is the input for the range-based diff and history tools.
type DiffInput struct {
	Ancestor string `json:"ancestor" jsonschema:"the ancestor commit hash or branch name"`
}

// CachedDiffInput is the input for the staged-diff tool (no parameters).
type CachedDiffInput struct{}

// DiffOutput carries raw per-file diff records without framing text.
type DiffOutput struct {
	Files []render.DiffEntry `json:"files" jsonschema:"changed files with unified diff bodies"`
}

// HistoryOutput carries raw commit records without framing text.
type HistoryOutput struct {
	Commits []render.CommitEntry `json:"commits" jsonschema:"commits between the ancestor and HEAD, newest first"`
}

// registerTools adds the raw-record tools to the server. Tools return
// structured records rather than composed prompt documents, for agents
// that build their own context.
func registerTools(server *mcp.Server, service *views.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_diff",
		Description: "List the files changed between the ancestor and HEAD, each with its unified diff.",
		Annotations: readOnlyAnnotations(),
	}, handleDiff(service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_cached_diff",
		Description: "List the staged files, each with its unified diff against HEAD.",
		Annotations: readOnlyAnnotations(),
	}, handleCachedDiff(service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_commit_messages",
		Description: "List the commits between the ancestor and HEAD, newest first.",
		Annotations: readOnlyAnnotations(),
	}, handleCommitMessages(service))
}

func handleDiff(service *views.Service) mcp.ToolHandlerFor[DiffInput, DiffOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DiffInput) (*mcp.CallToolResult, DiffOutput, error) {
		files, err := service.DiffFiles(ctx, input.Ancestor)
		if err != nil {
			return nil, DiffOutput{}, err
		}
		entries, err := render.DiffEntries(files)
		if err != nil {
			return nil, DiffOutput{}, fmt.Errorf("projecting diff records: %w", err)
		}
		return nil, DiffOutput{Files: entries}, nil
	}
}

func handleCachedDiff(service *views.Service) mcp.ToolHandlerFor[CachedDiffInput, DiffOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CachedDiffInput) (*mcp.CallToolResult, DiffOutput, error) {
		files, err := service.StagedFiles(ctx)
		if err != nil {
			return nil, DiffOutput{}, err
		}
		entries, err := render.DiffEntries(files)
		if err != nil {
			return nil, DiffOutput{}, fmt.Errorf("projecting diff records: %w", err)
		}
		return nil, DiffOutput{Files: entries}, nil
	}
}

func handleCommitMessages(service *views.Service) mcp.ToolHandlerFor[DiffInput, HistoryOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DiffInput) (*mcp.CallToolResult, HistoryOutput, error) {
		commits, err := service.HistoryRecords(ctx, input.Ancestor)
		if err != nil {
			return nil, HistoryOutput{}, err
		}
		return nil, HistoryOutput{Commits: render.CommitEntries(commits)}, nil
	}
}
