// Package main provides the entry point for the gitprompts CLI.
package main

import (
	"github.com/spf13/cobra"
)

// newHistoryCmd creates the history command.
func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <ancestor>",
		Short: "Render the commit messages between an ancestor and HEAD",
		Long: `Render the commits between an ancestor revision and HEAD, newest
first, each with its hash, author, authored time and full message.

Examples:
  gitprompts -r /path/to/repo history main
  gitprompts -r /path/to/repo -f json history v1.2.0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			service, _, err := buildService(cmd)
			if err != nil {
				printer.Error("%v", err)
				return err
			}
			doc, err := service.CommitHistory(cmd.Context(), args[0])
			if err != nil {
				err = wrapRunError(err)
				printer.Error("%v", err)
				return err
			}
			printer.Print(doc)
			return nil
		},
	}
}
