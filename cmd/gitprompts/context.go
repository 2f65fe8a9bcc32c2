// Package main provides the entry point for the gitprompts CLI.
package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gorewood/gitprompts/internal/config"
	"github.com/gorewood/gitprompts/internal/gitrepo"
	"github.com/gorewood/gitprompts/internal/output"
	"github.com/gorewood/gitprompts/internal/render"
	"github.com/gorewood/gitprompts/internal/views"
)

// buildService resolves configuration and opens the repository. Every
// command goes through here so the precedence rules stay in one place.
func buildService(cmd *cobra.Command) (*views.Service, *config.Config, error) {
	cfg, err := config.Resolve(config.Options{
		Repository: flagString(cmd, "repository"),
		Excludes:   config.ParseExcludes(flagString(cmd, "excludes")),
		Format:     flagString(cmd, "format"),
		ConfigFile: flagString(cmd, "config"),
	})
	if err != nil {
		return nil, nil, output.NewUserErrorWithCause(err.Error(), err)
	}

	repo, err := gitrepo.Open(cfg.Repository)
	if err != nil {
		return nil, nil, output.NewSystemErrorWithCause(err.Error(), err)
	}

	service := views.New(repo, cfg.Excludes, render.New(cfg.Format))
	return service, cfg, nil
}

// flagString reads a persistent string flag from the command hierarchy.
func flagString(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// wrapRunError classifies a view failure for the exit-code policy:
// bad arguments and bad revisions are user errors, everything else is
// a system error.
func wrapRunError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, views.ErrMissingArgument),
		errors.Is(err, gitrepo.ErrRevisionNotFound),
		errors.Is(err, gitrepo.ErrInvalidRange):
		return output.NewUserErrorWithCause(err.Error(), err)
	default:
		return output.NewSystemErrorWithCause(err.Error(), err)
	}
}

// newPrinter builds the printer for a command's writers.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.IsTTY(cmd.OutOrStdout()))
}
