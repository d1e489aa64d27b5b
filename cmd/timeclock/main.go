package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/omnigratum/timeclock/internal/cli"
	"github.com/omnigratum/timeclock/internal/clock"
	"github.com/omnigratum/timeclock/internal/config"
	"github.com/omnigratum/timeclock/internal/db"
	"github.com/omnigratum/timeclock/internal/repository"
	"github.com/omnigratum/timeclock/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	entryRepo := repository.NewSQLiteEntryRepo(database)
	sheetRepo := repository.NewSQLiteTimesheetRepo(database)
	notificationRepo := repository.NewSQLiteNotificationRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	clk := clock.System{}
	observer := service.NewLogUseCaseObserver(os.Stderr)

	app := &cli.App{
		Timers:        service.NewTimerService(sessionRepo, uow, clk, observer),
		Entries:       service.NewEntryService(entryRepo, userRepo, uow, clk, observer),
		Timesheets:    service.NewTimesheetService(sheetRepo, userRepo, uow, clk, nil, observer),
		Notifications: service.NewNotificationService(notificationRepo),
		Reports:       service.NewReportService(entryRepo, userRepo, projectRepo, taskRepo, sheetRepo, sessionRepo, clk),
		Projects:      service.NewProjectService(projectRepo, taskRepo, userRepo, clk),
		Users:         service.NewUserService(userRepo, clk),
		Reaper: service.NewReaper(sessionRepo, uow, clk,
			cfg.Reaper.Interval, cfg.Reaper.StalenessThreshold, observer),
	}

	// Forms and live views are only offered on a terminal.
	app.Interactive = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
