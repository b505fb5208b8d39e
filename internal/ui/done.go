package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [task-id]",
		Short: "Toggle a task's completion",
		Long: `Mark a task completed, or reopen it if it already is.

Any unique prefix of the task id is accepted.`,
		Example: `  timebox done 3f2a`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}

			t, err := resolveTask(p, args[0])
			if err != nil {
				return err
			}
			t, err = p.ToggleComplete(cmd.Context(), t.ID)
			if err != nil {
				return err
			}

			state := "reopened"
			if t.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s %s: %s\n", shortID(t.ID), state, t.Title)
			return nil
		},
	}
}
