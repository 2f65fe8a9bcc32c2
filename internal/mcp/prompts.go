package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gitprompts/internal/views"
)

// ancestorArg is the single argument shared by the range-based prompts.
func ancestorArg() []*mcp.PromptArgument {
	return []*mcp.PromptArgument{{
		Name:        "ancestor",
		Description: "The ancestor commit hash or branch name",
		Required:    true,
	}}
}

// registerPrompts adds the five prompt operations to the server.
func registerPrompts(server *mcp.Server, service *views.Service) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "generate-pr-desc",
		Description: "Generate PR Description based on the diff between the HEAD and the ancestor branch or commit",
		Arguments:   ancestorArg(),
	}, ancestorPrompt(service.PRDescription))

	server.AddPrompt(&mcp.Prompt{
		Name:        "git-diff",
		Description: "Generate a diff between the HEAD and the ancestor branch or commit",
		Arguments:   ancestorArg(),
	}, ancestorPrompt(service.Diff))

	server.AddPrompt(&mcp.Prompt{
		Name:        "git-cached-diff",
		Description: "Generate a diff between the files in the staging area (the index) and the HEAD",
	}, func(ctx context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		doc, err := service.CachedDiff(ctx)
		if err != nil {
			return nil, err
		}
		return userMessage(doc), nil
	})

	server.AddPrompt(&mcp.Prompt{
		Name:        "git-commit-messages",
		Description: "Get commit messages between the ancestor and HEAD",
		Arguments:   ancestorArg(),
	}, ancestorPrompt(service.CommitHistory))

	server.AddPrompt(&mcp.Prompt{
		Name:        "generate-commit-message",
		Description: "Draft a commit message for the staged changes, using recent history for context",
		Arguments: []*mcp.PromptArgument{{
			Name:        "window_size",
			Description: "How many commits of recent history to include (0 omits history, default 5)",
		}},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		window, err := parseWindowSize(req.Params.Arguments["window_size"])
		if err != nil {
			return nil, err
		}
		doc, err := service.CommitMessage(ctx, window)
		if err != nil {
			return nil, err
		}
		return userMessage(doc), nil
	})
}

// ancestorPrompt adapts a single-ancestor view operation to a prompt
// handler. The empty-argument case is left to the view, which reports
// it as a missing-argument failure.
func ancestorPrompt(view func(context.Context, string) (string, error)) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		doc, err := view(ctx, req.Params.Arguments["ancestor"])
		if err != nil {
			return nil, err
		}
		return userMessage(doc), nil
	}
}

func parseWindowSize(value string) (int, error) {
	if value == "" {
		return views.DefaultWindow, nil
	}
	window, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("window_size must be an integer, got %q", value)
	}
	if window < 0 {
		return 0, fmt.Errorf("window_size must not be negative, got %d", window)
	}
	return window, nil
}

func userMessage(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}
}
