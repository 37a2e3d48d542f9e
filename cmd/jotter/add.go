package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/dispatch"
)

var addContent string

var addCmd = &cobra.Command{
	Use:   "add <title> [content]",
	Short: "Add a note, or replace the content of an existing one",
	Long: `Add stores content under title. An existing note with the same title is replaced.
Content comes from the second argument or --content; "-" reads it from stdin.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		content := addContent
		if len(args) == 2 {
			content = args[1]
		}
		if content == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				fatal("Failed to read content from stdin", err)
			}
			content = strings.TrimSuffix(string(data), "\n")
		}

		d := openDispatcher()
		report(cmd, d.Dispatch(cmd.Context(), dispatch.Request{
			Action:  dispatch.ActionAdd,
			Title:   args[0],
			Content: content,
		}))
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "Content of the note (\"-\" reads stdin)")
}
