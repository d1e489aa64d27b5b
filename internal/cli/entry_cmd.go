package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/omnigratum/timeclock/internal/cli/formatter"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
	"github.com/spf13/cobra"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage time entries",
	}

	cmd.AddCommand(
		newEntryLogCmd(app),
		newEntryListCmd(app),
		newEntryRemoveCmd(app),
	)

	return cmd
}

func newEntryLogCmd(app *App) *cobra.Command {
	var projectID, taskID, date, startAt, endAt, notes string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a manual time entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			if err := app.resolveAssignment(ctx, user, &projectID, &taskID); err != nil {
				return err
			}

			if date == "" || startAt == "" || endAt == "" {
				if !app.Interactive {
					return fmt.Errorf("pass --date, --start and --end")
				}
				if err := manualEntryForm(&date, &startAt, &endAt, &notes).Run(); err != nil {
					return err
				}
			}

			start, err := parseDayTime(date, startAt)
			if err != nil {
				return err
			}
			end, err := parseDayTime(date, endAt)
			if err != nil {
				return err
			}

			entry, err := app.Entries.RecordManual(ctx, user.ID, projectID, taskID, start, end, notes)
			if err != nil {
				return err
			}

			fmt.Printf("Recorded %s on %s (entry %s)\n",
				formatter.FormatSeconds(entry.Duration), entry.Date, formatter.TruncID(entry.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&taskID, "task", "", "Task ID")
	cmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&startAt, "start", "", "Start time of day (HH:MM)")
	cmd.Flags().StringVar(&endAt, "end", "", "End time of day (HH:MM)")
	cmd.Flags().StringVar(&notes, "notes", "", "Entry notes")

	return cmd
}

func newEntryListCmd(app *App) *cobra.Command {
	var forUser, projectID, startDate, endDate string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			entries, err := app.Entries.List(ctx, user.ID, repository.EntryFilter{
				UserID:    forUser,
				ProjectID: projectID,
				StartDate: startDate,
				EndDate:   endDate,
			})
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No entries found.")
				return nil
			}

			headers := []string{"ID", "DATE", "DURATION", "TYPE", "NOTES"}
			rows := make([][]string, 0, len(entries))
			total := 0
			for _, e := range entries {
				total += e.Duration
				notePreview := e.Notes
				if len(notePreview) > 40 {
					notePreview = notePreview[:37] + "..."
				}
				rows = append(rows, []string{
					formatter.TruncID(e.ID),
					e.Date,
					formatter.FormatSeconds(e.Duration),
					string(e.EntryType),
					formatter.Dim(notePreview),
				})
			}

			title := fmt.Sprintf("Entries (%s total)", formatter.FormatHours(domain.HoursFromSeconds(total)))
			fmt.Print(formatter.RenderBox(title, formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&forUser, "for", "", "Filter by user ID (admins only)")
	cmd.Flags().StringVar(&projectID, "project", "", "Filter by project ID")
	cmd.Flags().StringVar(&startDate, "from", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "to", "", "Latest date (YYYY-MM-DD)")

	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <entry-id>",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			if !yes && app.Interactive {
				confirmed := false
				if err := confirmForm("Delete this entry? This cannot be undone.", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Canceled.")
					return nil
				}
			}

			if err := app.Entries.Delete(ctx, args[0], user.ID); err != nil {
				return err
			}

			fmt.Printf("Deleted entry %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

// parseDayTime combines a YYYY-MM-DD date and an HH:MM time of day into a
// UTC instant.
func parseDayTime(date, clock string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: use YYYY-MM-DD and HH:MM", date, clock)
	}
	return t.UTC(), nil
}
