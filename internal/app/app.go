// Package app wires the dependency graph into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/progress"
	"github.com/yichen/tinyhabits/internal/router"
	"github.com/yichen/tinyhabits/internal/screen"
	"github.com/yichen/tinyhabits/internal/screens/home"
	"github.com/yichen/tinyhabits/internal/store"
	"github.com/yichen/tinyhabits/internal/tts"
	"github.com/yichen/tinyhabits/internal/ui/layout"
)

// Options carries everything the TUI needs, assembled by the command
// layer.
type Options struct {
	Generator exercise.Generator
	Service   *progress.Service
	Repo      store.Repository
	Speech    *tts.Client
	UserID    string
	Email     string
	Version   string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	svc    *progress.Service
	userID string

	stats  progress.UserStatistics
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Generator, opts.Service, opts.Repo, opts.Speech, opts.UserID, opts.Email, opts.Version)
	return AppModel{
		router: router.New(homeScreen),
		svc:    opts.Service,
		userID: opts.UserID,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.loadStats()
}

// loadStats refreshes statistics and broadcasts the result.
func (m AppModel) loadStats() tea.Cmd {
	svc, userID := m.svc, m.userID
	return func() tea.Msg {
		stats, err := svc.Statistics(context.Background(), userID)
		if err != nil {
			return nil
		}
		return screen.StatsChangedMsg{Stats: stats}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatsChangedMsg:
		// Keep the header current, then let the active screen see it too.
		m.stats = msg.Stats

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			active := m.router.Active()
			if h, ok := active.(screen.EscHandler); ok && h.HandlesEsc() {
				break // the screen owns Esc right now
			}
			if m.router.Depth() > 1 {
				// Stats may have changed on the popped screen.
				return m, tea.Batch(
					func() tea.Msg { return router.PopScreenMsg{} },
					m.loadStats(),
				)
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats.Streak, m.stats.TodayCount(time.Now()), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
