// Package main provides the entry point for the gitprompts CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/gitprompts/internal/config"
	"github.com/gorewood/gitprompts/internal/envfile"
	"github.com/gorewood/gitprompts/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the gitprompts CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitprompts",
		Short: "Read-only git context for language models",
		Long: `Gitprompts renders diffs and commit history from one local git repository
as LLM-ready documents, and serves them over the Model Context Protocol.

Operations:
  - diff between an ancestor and HEAD
  - diff of the staged changes
  - commit messages between an ancestor and HEAD
  - composed PR-description and commit-message prompts

Every operation is read-only; the repository is never modified.

Configuration precedence: flags, then GIT_REPOSITORY / GIT_EXCLUDES /
GIT_OUTPUT_FORMAT, then the YAML config file.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Load .env.local (then .env) for settings that can't be exported to env.
	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().StringP("repository", "r", "", "Path to the git repository to serve")
	cmd.PersistentFlags().StringP("excludes", "e", "", "Comma-separated glob patterns to drop from diffs")
	cmd.PersistentFlags().StringP("format", "f", "", "Output format: text or json")
	cmd.PersistentFlags().String("config", "", "Path to the YAML config file")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local       (per-repo override, gitignored)
//  2. $CWD/.env             (per-repo)
//  3. ~/.config/gitprompts/env (global fallback)
func loadEnvFiles() {
	_ = envfile.Load(".env.local")
	_ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "server", Title: "Server Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "views", Title: "View Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newServeCmd(), "server")

	addGroupedCommand(cmd, newDiffCmd(), "views")
	addGroupedCommand(cmd, newCachedDiffCmd(), "views")
	addGroupedCommand(cmd, newHistoryCmd(), "views")
	addGroupedCommand(cmd, newPRDescCmd(), "views")
	addGroupedCommand(cmd, newCommitMsgCmd(), "views")

	addGroupedCommand(cmd, newTemplatesCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
