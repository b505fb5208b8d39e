package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var (
		quadrant string
		pending  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in priority order",
		Long: `List the backlog sorted the way the planner shows it: open tasks
first, then by quadrant, newest first within a quadrant.

A bullet marks tasks that are scheduled today.`,
		Example: `  timebox list
  timebox list --quadrant=DO
  timebox list --pending`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter task.Quadrant
			if quadrant != "" {
				q, err := task.ParseQuadrant(quadrant)
				if err != nil {
					return err
				}
				filter = q
			}

			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			today := dateutil.TruncateToDay(p.Now())
			width := descWidth(40, 20)

			shown := 0
			for _, t := range p.Tasks() {
				if filter != "" && t.Quadrant != filter {
					continue
				}
				if pending && t.Completed {
					continue
				}
				printTaskRow(w, t, p.IsScheduled(t.ID, today), width)
				shown++
			}

			if shown == 0 {
				fmt.Fprintln(w, "No tasks found.")
				return nil
			}

			prog := p.Progress()
			fmt.Fprintf(w, "\n  %s %d/%d\n", ProgressBar(prog.Completed, prog.Total, 20), prog.Completed, prog.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&quadrant, "quadrant", "q", "", "Only show one quadrant")
	cmd.Flags().BoolVar(&pending, "pending", false, "Hide completed tasks")

	return cmd
}
