package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/omnigratum/timeclock/internal/clock"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
)

type reportService struct {
	entries  repository.EntryRepo
	users    repository.UserRepo
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	sheets   repository.TimesheetRepo
	sessions repository.SessionRepo
	clk      clock.Clock
}

func NewReportService(entries repository.EntryRepo, users repository.UserRepo, projects repository.ProjectRepo,
	tasks repository.TaskRepo, sheets repository.TimesheetRepo, sessions repository.SessionRepo, clk clock.Clock) ReportService {
	return &reportService{
		entries:  entries,
		users:    users,
		projects: projects,
		tasks:    tasks,
		sheets:   sheets,
		sessions: sessions,
		clk:      clk,
	}
}

func (s *reportService) TimeReport(ctx context.Context, requesterID string, req ReportRequest) (*TimeReport, error) {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	filter := repository.EntryFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ProjectID: req.ProjectID,
		UserID:    req.UserID,
	}
	if !requester.IsAdmin() {
		filter.UserID = requester.ID
	}

	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	labels, err := s.labelIndex(ctx, req.GroupBy)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*ReportGroup)
	var order []string
	for _, e := range entries {
		var key, label string
		switch req.GroupBy {
		case "user":
			key, label = e.UserID, labels[e.UserID]
		case "project":
			key, label = e.ProjectID, labels[e.ProjectID]
		case "task":
			key, label = e.TaskID, labels[e.TaskID]
		case "date":
			key, label = e.Date, e.Date
		default:
			return nil, fmt.Errorf("group_by %q: %w", req.GroupBy, domain.ErrValidation)
		}
		if label == "" {
			label = "Unknown"
		}
		g, ok := grouped[key]
		if !ok {
			g = &ReportGroup{ID: key, Label: label}
			grouped[key] = g
			order = append(order, key)
		}
		g.TotalSeconds += e.Duration
		g.EntryCount++
	}

	sort.Strings(order)
	report := &TimeReport{}
	for _, key := range order {
		g := grouped[key]
		g.TotalHours = domain.HoursFromSeconds(g.TotalSeconds)
		report.Groups = append(report.Groups, *g)
		report.Summary.TotalSeconds += g.TotalSeconds
		report.Summary.TotalEntries += g.EntryCount
	}
	report.Summary.TotalHours = domain.HoursFromSeconds(report.Summary.TotalSeconds)
	return report, nil
}

// labelIndex loads the id→name map needed to label the requested grouping.
func (s *reportService) labelIndex(ctx context.Context, groupBy string) (map[string]string, error) {
	labels := make(map[string]string)
	switch groupBy {
	case "user":
		users, err := s.users.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			labels[u.ID] = u.Name
		}
	case "project":
		projects, err := s.projects.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			labels[p.ID] = p.Name
		}
	case "task":
		tasks, err := s.tasks.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			labels[t.ID] = t.Name
		}
	}
	return labels, nil
}

func (s *reportService) Stats(ctx context.Context, requesterID string) (*DashboardStats, error) {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{Role: requester.Role}
	if requester.IsAdmin() {
		if stats.TotalEmployees, err = s.users.CountByRole(ctx, domain.RoleEmployee, false); err != nil {
			return nil, err
		}
		if stats.ActiveEmployees, err = s.users.CountByRole(ctx, domain.RoleEmployee, true); err != nil {
			return nil, err
		}
		if stats.PendingTimesheets, err = s.sheets.CountByStatus(ctx, domain.TimesheetSubmitted); err != nil {
			return nil, err
		}
		if stats.TotalProjects, err = s.projects.Count(ctx); err != nil {
			return nil, err
		}
		if stats.ActiveTimers, err = s.sessions.CountActive(ctx); err != nil {
			return nil, err
		}
		return stats, nil
	}

	now := s.clk.Now()
	today := domain.DateOf(now)
	weekStart := domain.WeekStartOf(now)

	todaySeconds, err := s.entries.SumDurations(ctx, requester.ID, today, today)
	if err != nil {
		return nil, err
	}
	weekEnd, err := domain.WeekEndOf(weekStart)
	if err != nil {
		return nil, err
	}
	weekSeconds, err := s.entries.SumDurations(ctx, requester.ID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	weekEntries, err := s.entries.List(ctx, repository.EntryFilter{
		UserID: requester.ID, StartDate: weekStart, EndDate: weekEnd,
	})
	if err != nil {
		return nil, err
	}

	stats.TodayHours = domain.HoursFromSeconds(todaySeconds)
	stats.WeekHours = domain.HoursFromSeconds(weekSeconds)
	stats.TotalEntries = len(weekEntries)
	return stats, nil
}
