package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/summary"
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date  string
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show this week's time blocks",
		Long: `Display Monday through Sunday of the week containing --date with the
scheduled time per day and per quadrant.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}

			ref, err := dateutil.ParseRelativeDate(date, p.Now())
			if err != nil {
				return err
			}

			s := summary.Week(ref, p.Blocks(), p.Tasks())
			if plain {
				fmt.Fprint(cmd.OutOrStdout(), s.Text())
				return nil
			}
			printWeek(cmd.OutOrStdout(), s, dateutil.TruncateToDay(p.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "today", "Any day of the week to show")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print plain text without colors")

	return cmd
}
