package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		quadrant string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a task to the backlog.

The quadrant is one of DO, SCHEDULE, DELEGATE or DELETE. Quadrant and
duration default to the values in the [ui] config section.`,
		Example: `  timebox add "Write quarterly report" --quadrant=SCHEDULE --duration=60
  timebox add "Answer recruiter" -q DELEGATE`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := a.config.Quadrant()
			if quadrant != "" {
				parsed, err := task.ParseQuadrant(quadrant)
				if err != nil {
					return err
				}
				q = parsed
			}
			if !cmd.Flags().Changed("duration") {
				duration = a.config.UI.DefaultDuration
			}

			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}

			t, err := p.CreateTask(cmd.Context(), strings.Join(args, " "), q, duration)
			if err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s [%s] %s\n",
				shortID(t.ID),
				t.Title,
				formatQuadrant(t.Quadrant, t.Quadrant.Label()),
				task.FormatDuration(t.DurationMinutes),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&quadrant, "quadrant", "q", "", "Quadrant: DO, SCHEDULE, DELEGATE or DELETE")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Duration in minutes")

	return cmd
}
