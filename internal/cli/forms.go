package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/omnigratum/timeclock/internal/cli/formatter"
	"github.com/omnigratum/timeclock/internal/domain"
)

// timeclockHuhTheme returns the shared huh theme for interactive forms.
func timeclockHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateDate accepts a YYYY-MM-DD date.
func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateClockTime accepts an HH:MM time of day.
func validateClockTime(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}

// selectProjectForm creates a huh form to pick an active project.
func selectProjectForm(ctx context.Context, app *App, result *string) *huh.Form {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return nil
	}

	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		if p.Status != domain.ProjectActive {
			continue
		}
		options = append(options, huh.NewOption(p.Name, p.ID))
	}
	if len(options) == 0 {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project").
				Options(options...).
				Value(result),
		),
	).WithTheme(timeclockHuhTheme()).WithShowHelp(false)
}

// selectTaskForm creates a huh form to pick an active task within a project.
func selectTaskForm(ctx context.Context, app *App, projectID string, result *string) *huh.Form {
	tasks, err := app.Projects.ListTasks(ctx, projectID)
	if err != nil {
		return nil
	}

	options := make([]huh.Option[string], 0, len(tasks))
	for _, t := range tasks {
		if t.Status != domain.ProjectActive {
			continue
		}
		options = append(options, huh.NewOption(t.Name, t.ID))
	}
	if len(options) == 0 {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task").
				Options(options...).
				Value(result),
		),
	).WithTheme(timeclockHuhTheme()).WithShowHelp(false)
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(timeclockHuhTheme()).WithShowHelp(false)
}

// reviewForm collects an approve/deny decision and an optional comment.
func reviewForm(decision *string, comment *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Decision").
				Options(
					huh.NewOption("Approve", string(domain.DecisionApprove)),
					huh.NewOption("Deny", string(domain.DecisionDeny)),
				).
				Value(decision),
			huh.NewInput().
				Title("Comment (required when denying)").
				Value(comment),
		),
	).WithTheme(timeclockHuhTheme()).WithShowHelp(false)
}

// manualEntryForm collects the interval and notes for a manual entry.
func manualEntryForm(date, startAt, endAt, notes *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Placeholder("2026-08-24").
				Value(date).
				Validate(validateDate),
			huh.NewInput().
				Title("Start (HH:MM)").
				Placeholder("09:00").
				Value(startAt).
				Validate(validateClockTime),
			huh.NewInput().
				Title("End (HH:MM)").
				Placeholder("17:00").
				Value(endAt).
				Validate(validateClockTime),
			huh.NewInput().
				Title("Notes").
				Value(notes),
		),
	).WithTheme(timeclockHuhTheme()).WithShowHelp(false)
}
