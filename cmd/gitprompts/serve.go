// Package main provides the entry point for the gitprompts CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/gitprompts/internal/logging"
	gitpromptsmcp "github.com/gorewood/gitprompts/internal/mcp"
	"github.com/gorewood/gitprompts/internal/notify"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var verbose bool
	var logFile bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run gitprompts as a Model Context Protocol (MCP) server over stdio.

This exposes the repository views as MCP prompts and tools that any
MCP-capable agent environment can use (Claude Code, Cursor, Windsurf,
Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "gitprompts": {
        "command": "gitprompts",
        "args": ["serve", "--repository", "/path/to/repo"]
      }
    }
  }

Prompts: generate-pr-desc, git-diff, git-cached-diff,
git-commit-messages, generate-commit-message
Tools: git_diff, git_cached_diff, git_commit_messages

Logs go to stderr; stdout carries only the MCP protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, cleanup, err := logging.Setup(verbose, logFile)
			if err != nil {
				return err
			}
			defer cleanup()

			service, cfg, err := buildService(cmd)
			if err != nil {
				logger.Error("startup failed", "error", err)
				notify.Send("gitprompts", "server failed to start: "+err.Error())
				return err
			}

			logger.Info("serving repository",
				"repository", cfg.Repository,
				"format", cfg.Format.String(),
				"excludes", len(cfg.Excludes))
			notify.Send("gitprompts", "serving "+cfg.Repository)

			server := gitpromptsmcp.NewServer(buildVersion(), service)
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				logger.Error("server stopped", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug records")
	cmd.Flags().BoolVar(&logFile, "log-file", false, "Mirror logs to a file under the temp directory")

	return cmd
}
