package cli

import (
	"context"
	"fmt"

	"github.com/omnigratum/timeclock/internal/cli/formatter"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Start, stop and inspect the running timer",
	}

	cmd.AddCommand(
		newTimerStartCmd(app),
		newTimerStopCmd(app),
		newTimerStatusCmd(app),
		newTimerHeartbeatCmd(app),
		newTimerWatchCmd(app),
	)

	return cmd
}

func newTimerStartCmd(app *App) *cobra.Command {
	var projectID, taskID string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			if err := app.resolveAssignment(ctx, user, &projectID, &taskID); err != nil {
				return err
			}

			s, err := app.Timers.Start(ctx, user.ID, projectID, taskID)
			if err != nil {
				return err
			}

			fmt.Printf("Timer started at %s (%s)\n", s.StartTime.Format("15:04:05"), formatter.TruncID(s.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&taskID, "task", "", "Task ID")

	return cmd
}

func newTimerStopCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer and record a time entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			entry, err := app.Timers.Stop(ctx, user.ID, notes)
			if err != nil {
				return err
			}

			fmt.Printf("Recorded %s on %s (entry %s)\n",
				formatter.FormatSeconds(entry.Duration), entry.Date, formatter.TruncID(entry.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Notes for the recorded entry")

	return cmd
}

func newTimerStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer, if any",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			s, err := app.Timers.GetActive(ctx, user.ID)
			if err != nil {
				return err
			}
			if s == nil {
				fmt.Println("No timer running.")
				return nil
			}

			project, err := app.Projects.GetByID(ctx, s.ProjectID)
			if err != nil {
				return err
			}

			headers := []string{"PROJECT", "STARTED", "LAST HEARTBEAT"}
			rows := [][]string{{
				project.Name,
				formatter.HumanTimestamp(s.StartTime),
				formatter.HumanTimestamp(s.LastHeartbeat),
			}}
			fmt.Print(formatter.RenderBox("Running Timer", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newTimerHeartbeatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "heartbeat",
		Short: "Report liveness for the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			s, err := app.Timers.Heartbeat(ctx, user.ID)
			if err != nil {
				return err
			}

			fmt.Printf("Heartbeat recorded at %s\n", s.LastHeartbeat.Format("15:04:05"))
			return nil
		},
	}
}

// resolveAssignment fills missing project/task flags from the user's
// defaults, falling back to interactive selection when on a terminal.
func (app *App) resolveAssignment(ctx context.Context, user *domain.User, projectID, taskID *string) error {
	if *projectID == "" && user.DefaultProject != nil {
		*projectID = *user.DefaultProject
	}
	if *projectID == "" && app.Interactive {
		if form := selectProjectForm(ctx, app, projectID); form != nil {
			if err := form.Run(); err != nil {
				return err
			}
		}
	}
	if *projectID == "" {
		return fmt.Errorf("no project: pass --project or set a default project")
	}

	if *taskID == "" && user.DefaultTask != nil {
		*taskID = *user.DefaultTask
	}
	if *taskID == "" && app.Interactive {
		if form := selectTaskForm(ctx, app, *projectID, taskID); form != nil {
			if err := form.Run(); err != nil {
				return err
			}
		}
	}
	if *taskID == "" {
		return fmt.Errorf("no task: pass --task or set a default task")
	}
	return nil
}
