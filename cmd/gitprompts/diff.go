// Package main provides the entry point for the gitprompts CLI.
package main

import (
	"github.com/spf13/cobra"
)

// newDiffCmd creates the diff command.
func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <ancestor>",
		Short: "Render the diff between an ancestor and HEAD",
		Long: `Render the changes between an ancestor revision and HEAD as an
LLM-ready document, honoring the configured exclusion patterns.

Examples:
  gitprompts -r /path/to/repo diff main
  gitprompts -r /path/to/repo -f json diff v1.2.0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			service, _, err := buildService(cmd)
			if err != nil {
				printer.Error("%v", err)
				return err
			}
			doc, err := service.Diff(cmd.Context(), args[0])
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

// newCachedDiffCmd creates the cached-diff command.
func newCachedDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cached-diff",
		Short: "Render the staged changes",
		Long: `Render the diff between the staging area (the index) and HEAD as an
LLM-ready document, honoring the configured exclusion patterns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			service, _, err := buildService(cmd)
			if err != nil {
				printer.Error("%v", err)
				return err
			}
			doc, err := service.CachedDiff(cmd.Context())
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
