package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/scheduler"
	"github.com/javiermolinar/timebox/internal/task"
)

func (a *App) placeCmd() *cobra.Command {
	var (
		date string
		at   string
	)

	cmd := &cobra.Command{
		Use:   "place [task-id]",
		Short: "Place a task onto the day grid",
		Long: `Create a time block for a task.

The date accepts YYYY-MM-DD, today, tomorrow or a weekday name. Without
--at the first slot of that day that has not started and fits the task
between existing blocks is used. A task can be placed at
most once per day.`,
		Example: `  timebox place 3f2a --at=09:30
  timebox place 3f2a --date=tomorrow --at=14:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, p.Now())
			if err != nil {
				return err
			}

			t, err := resolveTask(p, args[0])
			if err != nil {
				return err
			}

			if at == "" {
				label, ok := scheduler.FreeSlot(p.Grid(), p.BlocksForDate(day), day, p.Now(), t.DurationMinutes)
				if !ok {
					return fmt.Errorf("no free slot left on %s for %s", dateutil.Format(day), task.FormatDuration(t.DurationMinutes))
				}
				at = label
			}

			res, err := p.DropTask(cmd.Context(), t.ID, day, at)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch res.Outcome {
			case scheduler.OutcomePlaced:
				b := res.Block
				fmt.Fprintf(w, "Placed %s on %s %s-%s (block %s)\n",
					t.Title, dateutil.Format(b.Date), b.StartTime, b.EndTime(), shortID(b.ID))
			case scheduler.OutcomeDuplicate:
				fmt.Fprintln(w, formatWarn(fmt.Sprintf("%s is already scheduled on %s", t.Title, dateutil.Format(day))))
			default:
				fmt.Fprintln(w, formatWarn("Nothing placed."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "today", "Date to place the task on")
	cmd.Flags().StringVar(&at, "at", "", "Start slot (HH:MM)")

	return cmd
}

func (a *App) unplaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unplace [block-id]",
		Short: "Remove a time block",
		Long: `Remove a time block from the grid. Blocks that have already started
are locked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}

			b, err := resolveBlock(p, args[0])
			if err != nil {
				return err
			}
			if err := p.DeleteBlock(cmd.Context(), b.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed block %s (%s %s-%s)\n",
				shortID(b.ID), dateutil.Format(b.Date), b.StartTime, b.EndTime())
			return nil
		},
	}
}
