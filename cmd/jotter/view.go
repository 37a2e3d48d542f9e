package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/dispatch"
)

var viewCmd = &cobra.Command{
	Use:   "view <title>",
	Short: "Show a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := openDispatcher()
		report(cmd, d.Dispatch(cmd.Context(), dispatch.Request{Action: dispatch.ActionView, Title: args[0]}))
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
