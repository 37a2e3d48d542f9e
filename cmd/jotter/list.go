package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/dispatch"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the titles of all notes",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !listJSON {
			d := openDispatcher()
			report(cmd, d.Dispatch(cmd.Context(), dispatch.Request{Action: dispatch.ActionList}))
			return
		}

		service, err := openService()
		if err != nil {
			fatal("Failed to open notes", describe(err))
		}

		if err := writeNotesJSON(cmd.Context(), service, cmd.OutOrStdout()); err != nil {
			fatal("Failed to list notes", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output the notes in JSON format")
}

// writeNotesJSON prints every note as a JSON array from a single read of the store.
func writeNotesJSON(ctx context.Context, service *core.Service, w io.Writer) error {
	notes, err := service.Notes(ctx)
	if err != nil {
		return describe(err)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(notes)
}
