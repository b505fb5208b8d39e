package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timebox/internal/dateutil"
	"github.com/javiermolinar/timebox/internal/summary"
)

func (a *App) dayCmd() *cobra.Command {
	var (
		date     string
		plain    bool
		copyText bool
	)

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show the time blocks of a day",
		Long: `Display the blocks placed on a day with the time spent per quadrant,
the free slots left and how many scheduled tasks are done.`,
		Example: `  timebox day
  timebox day --date=tomorrow
  timebox day --plain --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ensurePlanner(cmd.Context())
			if err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, p.Now())
			if err != nil {
				return err
			}

			s := summary.Day(p.Day(day))
			w := cmd.OutOrStdout()
			if plain {
				fmt.Fprint(w, s.Text())
			} else {
				printDay(w, s, descWidth(50, 20))
			}

			if copyText {
				if err := clipboard.WriteAll(s.Text()); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(w, formatMuted("Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "today", "Day to show")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print plain text without colors or block ids")
	cmd.Flags().BoolVar(&copyText, "copy", false, "Copy the plain text summary to the clipboard")

	return cmd
}
