// Package main provides the entry point for the gitprompts CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/gitprompts/internal/views"
)

// newCommitMsgCmd creates the commit-msg command.
func newCommitMsgCmd() *cobra.Command {
	var window int

	cmd := &cobra.Command{
		Use:   "commit-msg",
		Short: "Compose the commit-message prompt for the staged changes",
		Long: `Compose the staged changes, optionally preceded by recent commit
history for convention context, followed by instructions to draft a
commit message.

With --window 0 the history is omitted entirely. When nothing is
staged the command prints an advisory instead of a prompt.

The instruction block can be overridden per project
(.gitprompts/templates/commit-message.md) or globally
(<config dir>/templates/commit-message.md).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			service, _, err := buildService(cmd)
			if err != nil {
				printer.Error("%v", err)
				return err
			}
			doc, err := service.CommitMessage(cmd.Context(), window)
			if err != nil {
				err = wrapRunError(err)
				printer.Error("%v", err)
				return err
			}
			printer.Print(doc)
			return nil
		},
	}

	cmd.Flags().IntVar(&window, "window", views.DefaultWindow,
		"How many commits of recent history to include (0 omits history)")

	return cmd
}
