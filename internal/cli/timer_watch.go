package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/omnigratum/timeclock/internal/cli/formatter"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/spf13/cobra"
)

// heartbeatEvery is how often the watch view reports liveness while open.
const heartbeatEvery = 60 * time.Second

func newTimerWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live view of the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			if !app.Interactive {
				return fmt.Errorf("watch needs a terminal; use \"timer status\" instead")
			}

			session, err := app.Timers.GetActive(ctx, user.ID)
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Println("No timer running.")
				return nil
			}
			project, err := app.Projects.GetByID(ctx, session.ProjectID)
			if err != nil {
				return err
			}

			m := newWatchModel(app, user.ID, session, project.Name)
			final, err := tea.NewProgram(m).Run()
			if err != nil {
				return err
			}

			if wm, ok := final.(watchModel); ok && wm.stopped != nil {
				fmt.Printf("Recorded %s on %s (entry %s)\n",
					formatter.FormatSeconds(wm.stopped.Duration), wm.stopped.Date, formatter.TruncID(wm.stopped.ID))
			}
			return nil
		},
	}
}

type watchTickMsg time.Time

type watchBeatMsg struct{ err error }

type watchStopMsg struct {
	entry *domain.TimeEntry
	err   error
}

// watchModel is the bubbletea Model behind "timer watch". It redraws the
// elapsed time every second and heartbeats in the background while open.
type watchModel struct {
	app     *App
	userID  string
	session *domain.TimerSession
	project string

	sp      spinner.Model
	now     time.Time
	lastErr error
	stopped *domain.TimeEntry
}

func newWatchModel(app *App, userID string, session *domain.TimerSession, project string) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)

	return watchModel{
		app:     app,
		userID:  userID,
		session: session,
		project: project,
		sp:      sp,
		now:     time.Now().UTC(),
	}
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) beat() tea.Cmd {
	return tea.Tick(heartbeatEvery, func(time.Time) tea.Msg {
		_, err := m.app.Timers.Heartbeat(context.Background(), m.userID)
		return watchBeatMsg{err: err}
	})
}

func (m watchModel) stopTimer() tea.Cmd {
	return func() tea.Msg {
		entry, err := m.app.Timers.Stop(context.Background(), m.userID, "")
		return watchStopMsg{entry: entry, err: err}
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.sp.Tick, watchTick(), m.beat())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "s":
			return m, m.stopTimer()
		}
		return m, nil

	case watchTickMsg:
		m.now = time.Time(msg).UTC()
		return m, watchTick()

	case watchBeatMsg:
		m.lastErr = msg.err
		return m, m.beat()

	case watchStopMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.stopped = msg.entry
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd
	}
}

func (m watchModel) View() string {
	elapsed := int(m.now.Sub(m.session.StartTime).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}

	body := fmt.Sprintf("%s %s on %s\n\n  elapsed  %s\n  started  %s\n",
		m.sp.View(),
		formatter.StyleHeader.Render("Timer running"),
		formatter.StyleBold.Render(m.project),
		formatter.StyleGreen.Render(formatter.FormatSeconds(elapsed)),
		m.session.StartTime.Format("15:04:05"),
	)
	if m.lastErr != nil {
		body += "\n" + formatter.StyleRed.Render("heartbeat: "+m.lastErr.Error()) + "\n"
	}
	body += "\n" + formatter.Dim("s stop timer · q quit") + "\n"
	return body
}
