// Package main provides the entry point for the gitprompts CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitprompts/internal/prompt"
)

// newTemplatesCmd creates the templates command.
func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage instruction templates",
		Long: `Inspect the instruction templates appended to the composed prompts.

Built-in templates can be overridden per project under
.gitprompts/templates/<name>.md, or globally under
<config dir>/templates/<name>.md.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newTemplatesListCmd())
	cmd.AddCommand(newTemplatesShowCmd())
	return cmd
}

// newTemplatesListCmd creates the templates list command.
func newTemplatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates and their sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			styles := printer.Styles()
			for _, tmpl := range prompt.List() {
				name := tmpl.Name
				if name == "" {
					name = "(unnamed)"
				}
				line := fmt.Sprintf("%s  %s  %s",
					styles.Bold.Render(name),
					styles.Muted.Render("["+tmpl.Source+"]"),
					tmpl.Description)
				printer.Print(line)
			}
			return nil
		},
	}
}

// newTemplatesShowCmd creates the templates show command.
func newTemplatesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a template's instruction text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			tmpl, err := prompt.Load(args[0])
			if err != nil {
				printer.Error("%v", err)
				return err
			}
			printer.Print(tmpl.Content)
			return nil
		},
	}
}
