package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/pkg/adapters/lifecycle"
)

var watchOnly []string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a line for every note changed by someone else",
	Long: `Watch follows the notes document and prints CREATE, MODIFY or DELETE with the
title of every note changed outside this process. Use --only to keep some
kinds of change, e.g. --only create,delete. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		types, err := lifecycle.ParseEventTypes(watchOnly)
		if err != nil {
			fatal("Invalid --only", describe(err))
		}

		service, err := openService(jotter.WithWatcherErrorHandler(func(err error) {
			slog.Warn("notes document could not be read", "error", describe(err))
		}))
		if err != nil {
			fatal("Failed to open notes", describe(err))
		}

		events, err := service.Watch(ctx)
		if err != nil {
			fatal("Failed to watch notes", err)
		}

		source := lifecycle.NewSource(events, types...)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}

		slog.Info("watching notes", "location", cfg.Location())
		for e := range source.Events() {
			at := time.Now()
			if c, ok := e.(lifecycle.Change); ok {
				at = c.At()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", at.Format(time.TimeOnly), e)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringSliceVar(&watchOnly, "only", nil, "Event types to print (create, modify, delete)")
}
