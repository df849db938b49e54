// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// rootOptions carries the persistent flags to subcommands.
type rootOptions struct {
	debug bool
}

// logger builds the JSON logger every command shares. force enables debug
// output regardless of the flag.
func (opts *rootOptions) logger(cmd *cobra.Command, force bool) *slog.Logger {
	return newLogger(cmd.ErrOrStderr(), opts.debug || force)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "studio",
		Short:         "Dubbing studio catalogue API and tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging (also DEBUG=true for serve)")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newMigrateCommand(opts))
	rootCmd.AddCommand(newTokenCommand())
	rootCmd.AddCommand(newProjectCommand())

	return rootCmd
}

func newLogger(out io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "studio"))
}
