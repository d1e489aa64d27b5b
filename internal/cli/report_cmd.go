package cli

import (
	"context"
	"fmt"

	"github.com/omnigratum/timeclock/internal/cli/formatter"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/service"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate reports and dashboard figures",
	}

	cmd.AddCommand(
		newReportTimeCmd(app),
		newReportStatsCmd(app),
	)

	return cmd
}

func newReportTimeCmd(app *App) *cobra.Command {
	var startDate, endDate, groupBy, forUser, projectID string

	cmd := &cobra.Command{
		Use:   "time",
		Short: "Grouped totals over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			report, err := app.Reports.TimeReport(ctx, user.ID, service.ReportRequest{
				StartDate: startDate,
				EndDate:   endDate,
				GroupBy:   groupBy,
				UserID:    forUser,
				ProjectID: projectID,
			})
			if err != nil {
				return err
			}

			if len(report.Groups) == 0 {
				fmt.Println("No entries in range.")
				return nil
			}

			headers := []string{groupByHeader(groupBy), "HOURS", "ENTRIES"}
			rows := make([][]string, 0, len(report.Groups))
			for _, g := range report.Groups {
				rows = append(rows, []string{
					g.Label,
					formatter.FormatHours(g.TotalHours),
					fmt.Sprintf("%d", g.EntryCount),
				})
			}
			rows = append(rows, []string{
				formatter.StyleBold.Render("Total"),
				formatter.StyleBold.Render(formatter.FormatHours(report.Summary.TotalHours)),
				fmt.Sprintf("%d", report.Summary.TotalEntries),
			})

			title := fmt.Sprintf("Time Report %s to %s", startDate, endDate)
			fmt.Print(formatter.RenderBox(title, formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&groupBy, "group-by", "project", "Group rows by: user, project, task, date")
	cmd.Flags().StringVar(&forUser, "for", "", "Restrict to one user ID (admins only)")
	cmd.Flags().StringVar(&projectID, "project", "", "Restrict to one project ID")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newReportStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Headline numbers for the acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			stats, err := app.Reports.Stats(ctx, user.ID)
			if err != nil {
				return err
			}

			var rows [][]string
			if stats.Role == domain.RoleAdmin {
				rows = [][]string{
					{"Employees", fmt.Sprintf("%d (%d active)", stats.TotalEmployees, stats.ActiveEmployees)},
					{"Pending timesheets", fmt.Sprintf("%d", stats.PendingTimesheets)},
					{"Projects", fmt.Sprintf("%d", stats.TotalProjects)},
					{"Running timers", fmt.Sprintf("%d", stats.ActiveTimers)},
				}
			} else {
				rows = [][]string{
					{"Today", formatter.FormatHours(stats.TodayHours)},
					{"This week", formatter.FormatHours(stats.WeekHours)},
					{"Entries this week", fmt.Sprintf("%d", stats.TotalEntries)},
				}
			}

			fmt.Print(formatter.RenderBox("Dashboard", formatter.RenderTable([]string{"", ""}, rows)))
			return nil
		},
	}
}

func groupByHeader(groupBy string) string {
	switch groupBy {
	case "user":
		return "USER"
	case "task":
		return "TASK"
	case "date":
		return "DATE"
	default:
		return "PROJECT"
	}
}
