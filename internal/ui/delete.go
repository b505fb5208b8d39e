package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [task-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a task and its time blocks",
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
			blocks := len(p.BlocksForTask(t.ID))
			if err := p.DeleteTask(cmd.Context(), t.ID); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Deleted task %s: %s\n", shortID(t.ID), t.Title)
			if blocks > 0 {
				fmt.Fprintln(w, formatMuted(fmt.Sprintf("  removed %d time block(s)", blocks)))
			}
			return nil
		},
	}
}
