// Package main provides the entry point for the gitprompts CLI.
package main

import (
	"github.com/spf13/cobra"
)

// newPRDescCmd creates the pr-desc command.
func newPRDescCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pr-desc <ancestor>",
		Short: "Compose the PR-description prompt for a range",
		Long: `Compose the commit history and diff between an ancestor revision and
HEAD into one document, followed by instructions to draft a pull
request description.

The instruction block can be overridden per project
(.gitprompts/templates/pr-description.md) or globally
(<config dir>/templates/pr-description.md).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			service, _, err := buildService(cmd)
			if err != nil {
				printer.Error("%v", err)
				return err
			}
			doc, err := service.PRDescription(cmd.Context(), args[0])
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
