package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Timers        service.TimerService
	Entries       service.EntryService
	Timesheets    service.TimesheetService
	Notifications service.NotificationService
	Reports       service.ReportService
	Projects      service.ProjectService
	Users         service.UserService
	Reaper        *service.Reaper

	// Interactive is true when stdout is a terminal; forms and live
	// views are only offered then.
	Interactive bool

	// userRef is the --user flag value: a user ID or email. Identity is
	// asserted, not authenticated; this tool trusts its caller.
	userRef string
}

// NewRootCmd creates the top-level "timeclock" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timeclock",
		Short: "Employee time tracking and timesheet approval",
	}

	root.PersistentFlags().StringVar(&app.userRef, "user", os.Getenv("TIMECLOCK_USER"), "Acting user (ID or email)")

	root.AddCommand(
		newTimerCmd(app),
		newEntryCmd(app),
		newTimesheetCmd(app),
		newNotificationCmd(app),
		newReportCmd(app),
		newProjectCmd(app),
		newUserCmd(app),
		newReapCmd(app),
	)

	return root
}

// currentUser resolves the --user flag to a stored user. Email references
// contain an "@"; anything else is treated as an ID.
func (app *App) currentUser(ctx context.Context) (*domain.User, error) {
	if app.userRef == "" {
		return nil, fmt.Errorf("no acting user: pass --user or set TIMECLOCK_USER")
	}
	if strings.Contains(app.userRef, "@") {
		return app.Users.GetByEmail(ctx, app.userRef)
	}
	return app.Users.GetByID(ctx, app.userRef)
}
