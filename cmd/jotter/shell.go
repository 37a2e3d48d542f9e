package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/dispatch"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the interactive note-taking menu",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d := openDispatcher()
		if err := runShell(cmd.Context(), d, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && cmd.Context().Err() == nil {
			fatal("Shell stopped", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// prompts asked for the title of each action that needs one.
var titlePrompts = map[string]string{
	dispatch.ActionAdd:    "Enter note title: ",
	dispatch.ActionView:   "Enter title of note to view: ",
	dispatch.ActionDelete: "Enter title of note to delete: ",
}

// runShell prints the numbered menu, reads one action at a time from in and
// writes every result to out. It returns when the user exits or in ends.
func runShell(ctx context.Context, d *dispatch.Dispatcher, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	ask := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSuffix(scanner.Text(), "\r"), true
	}

	var action string
	next := func() (dispatch.Request, bool) {
		fmt.Fprintln(out, "\nNote Taking App Menu:")
		for _, m := range dispatch.Actions() {
			fmt.Fprintf(out, "%s. %s\n", m.Key, m.Label)
		}

		choice, ok := ask("Enter your choice: ")
		if !ok {
			return dispatch.Request{}, false
		}
		req := dispatch.Request{Action: choice}
		action = dispatch.Normalize(choice)

		if prompt, needsTitle := titlePrompts[action]; needsTitle {
			// Nothing to look up: the request reports the empty store as is.
			if action != dispatch.ActionAdd && !d.HasNotes(ctx) {
				return req, true
			}
			if req.Title, ok = ask(prompt); !ok {
				return dispatch.Request{}, false
			}
		}
		if action == dispatch.ActionAdd {
			if req.Content, ok = ask("Enter note content: "); !ok {
				return dispatch.Request{}, false
			}
		}
		return req, true
	}

	emit := func(res dispatch.Result) {
		if res.OK && (action == dispatch.ActionView || action == dispatch.ActionList) && res.Message != dispatch.MsgEmpty {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, res.Message)
	}

	if err := d.RunLoop(ctx, next, emit); err != nil {
		return err
	}
	return scanner.Err()
}
