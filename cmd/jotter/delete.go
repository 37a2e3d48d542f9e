package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/dispatch"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <title>",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := openDispatcher()
		report(cmd, d.Dispatch(cmd.Context(), dispatch.Request{Action: dispatch.ActionDelete, Title: args[0]}))
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
