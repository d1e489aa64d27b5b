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

func newTimesheetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Manage weekly timesheets",
	}

	cmd.AddCommand(
		newTimesheetWeekCmd(app),
		newTimesheetSubmitCmd(app),
		newTimesheetReviewCmd(app),
		newTimesheetReopenCmd(app),
		newTimesheetListCmd(app),
	)

	return cmd
}

func newTimesheetWeekCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show (and create if needed) the timesheet for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			if week == "" {
				week = domain.DateOf(time.Now().UTC())
			}

			sheet, err := app.Timesheets.EnsureDraft(ctx, user.ID, week)
			if err != nil {
				return err
			}

			printTimesheet(sheet)
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date inside the week (YYYY-MM-DD, default today)")

	return cmd
}

func newTimesheetSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <timesheet-id>",
		Short: "Submit a draft timesheet for approval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			sheet, err := app.Timesheets.Submit(ctx, args[0], user.ID)
			if err != nil {
				return err
			}

			fmt.Printf("Submitted week %s (%s)\n", sheet.WeekStart, formatter.FormatHours(sheet.TotalHours))
			return nil
		},
	}
}

func newTimesheetReviewCmd(app *App) *cobra.Command {
	var decision, comment string

	cmd := &cobra.Command{
		Use:   "review <timesheet-id>",
		Short: "Approve or deny a submitted timesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			if decision == "" {
				if !app.Interactive {
					return fmt.Errorf("pass --decision approve|deny")
				}
				if err := reviewForm(&decision, &comment).Run(); err != nil {
					return err
				}
			}

			sheet, err := app.Timesheets.Review(ctx, args[0], user.ID, domain.ReviewDecision(decision), comment)
			if err != nil {
				return err
			}

			fmt.Printf("Week %s is now %s\n", sheet.WeekStart, formatter.StatusPill(sheet.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&decision, "decision", "", "approve or deny")
	cmd.Flags().StringVar(&comment, "comment", "", "Review comment (required when denying)")

	return cmd
}

func newTimesheetReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <timesheet-id>",
		Short: "Return a denied timesheet to draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			sheet, err := app.Timesheets.Reopen(ctx, args[0], user.ID)
			if err != nil {
				return err
			}

			fmt.Printf("Week %s reopened as %s\n", sheet.WeekStart, formatter.StatusPill(sheet.Status))
			return nil
		},
	}
}

func newTimesheetListCmd(app *App) *cobra.Command {
	var forUser, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List timesheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			sheets, err := app.Timesheets.List(ctx, user.ID, repository.TimesheetFilter{
				UserID: forUser,
				Status: domain.TimesheetStatus(status),
			})
			if err != nil {
				return err
			}

			if len(sheets) == 0 {
				fmt.Println("No timesheets found.")
				return nil
			}

			headers := []string{"ID", "WEEK", "HOURS", "STATUS", "SUBMITTED"}
			rows := make([][]string, 0, len(sheets))
			for _, s := range sheets {
				submitted := ""
				if s.SubmittedAt != nil {
					submitted = formatter.HumanTimestamp(*s.SubmittedAt)
				}
				rows = append(rows, []string{
					formatter.TruncID(s.ID),
					fmt.Sprintf("%s – %s", s.WeekStart, s.WeekEnd),
					formatter.FormatHours(s.TotalHours),
					formatter.StatusPill(s.Status),
					submitted,
				})
			}

			fmt.Print(formatter.RenderBox("Timesheets", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&forUser, "for", "", "Filter by user ID (admins only)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (draft, submitted, approved, denied)")

	return cmd
}

func printTimesheet(s *domain.Timesheet) {
	rows := [][]string{
		{"Week", fmt.Sprintf("%s – %s", s.WeekStart, s.WeekEnd)},
		{"Hours", formatter.FormatHours(s.TotalHours)},
		{"Status", formatter.StatusPill(s.Status)},
	}
	if s.AdminComment != nil && *s.AdminComment != "" {
		rows = append(rows, []string{"Comment", *s.AdminComment})
	}
	fmt.Print(formatter.RenderBox("Timesheet "+formatter.TruncID(s.ID), formatter.RenderTable([]string{"", ""}, rows)))
}
