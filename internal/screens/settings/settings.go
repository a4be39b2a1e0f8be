// Package settings edits the monthly goal and resets practice history.
// The reset is destructive and double-confirmed.
package settings

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yichen/tinyhabits/internal/progress"
	"github.com/yichen/tinyhabits/internal/router"
	"github.com/yichen/tinyhabits/internal/screen"
	"github.com/yichen/tinyhabits/internal/ui/components"
	"github.com/yichen/tinyhabits/internal/ui/layout"
	"github.com/yichen/tinyhabits/internal/ui/theme"
)

type mode int

const (
	modeMenu mode = iota
	modeEditGoal
	modeConfirmReset
)

type settingsLoadedMsg struct {
	Stats progress.UserStatistics
	Err   error
}

type settingsSavedMsg struct {
	Stats  progress.UserStatistics
	Action string
	Err    error
}

// SettingsScreen edits goal and history.
type SettingsScreen struct {
	svc     *progress.Service
	userID  string
	email   string // empty when not signed in
	version string

	mode   mode
	stats  progress.UserStatistics
	loaded bool
	input  components.TextInput
	status string
	errMsg string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.EscHandler = (*SettingsScreen)(nil)

// New creates the settings screen. email identifies the signed-in
// account and may be empty.
func New(svc *progress.Service, userID, email, version string) *SettingsScreen {
	return &SettingsScreen{svc: svc, userID: userID, email: email, version: version}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		stats, err := s.svc.Statistics(context.Background(), s.userID)
		return settingsLoadedMsg{Stats: stats, Err: err}
	}
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

// HandlesEsc keeps Esc local while an edit or a confirmation is open.
func (s *SettingsScreen) HandlesEsc() bool {
	return s.mode != modeMenu
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeEditGoal:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmReset:
		return []layout.KeyHint{
			{Key: "Y", Description: "Erase everything"},
			{Key: "N", Description: "Keep my progress"},
		}
	default:
		return []layout.KeyHint{
			{Key: "G", Description: "Monthly goal"},
			{Key: "R", Description: "Reset progress"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case settingsSavedMsg:
		if msg.Err != nil {
			s.status = "Could not save: " + msg.Err.Error()
			return s, nil
		}
		s.stats = msg.Stats
		switch msg.Action {
		case "goal":
			s.status = fmt.Sprintf("Monthly goal set to %d.", msg.Stats.MonthlyGoal)
		case "reset":
			s.status = "All progress erased."
		}
		return s, func() tea.Msg { return screen.StatsChangedMsg{Stats: msg.Stats} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == modeEditGoal {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SettingsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.mode {
	case modeConfirmReset:
		switch key {
		case "y", "Y":
			s.mode = modeMenu
			return s, s.saveReset()
		case "n", "N", "esc":
			s.mode = modeMenu
			s.status = "Reset cancelled."
		}
		return s, nil

	case modeEditGoal:
		switch key {
		case "esc":
			s.mode = modeMenu
			return s, nil
		case "enter":
			goal, err := s.input.NumericValue()
			if err != nil || goal <= 0 {
				s.input.Submit(false)
				return s, nil
			}
			s.mode = modeMenu
			return s, s.saveGoal(goal)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	default:
		switch key {
		case "g", "G":
			s.mode = modeEditGoal
			s.input = components.NewTextInput(fmt.Sprintf("%d", s.stats.MonthlyGoal), true, 4)
			s.status = ""
			return s, s.input.Init()
		case "r", "R":
			s.mode = modeConfirmReset
			s.status = ""
			return s, nil
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SettingsScreen) saveGoal(goal int) tea.Cmd {
	svc, userID := s.svc, s.userID
	return func() tea.Msg {
		stats, err := svc.SetMonthlyGoal(context.Background(), userID, goal)
		return settingsSavedMsg{Stats: stats, Action: "goal", Err: err}
	}
}

func (s *SettingsScreen) saveReset() tea.Cmd {
	svc, userID := s.svc, s.userID
	return func() tea.Msg {
		stats, err := svc.Reset(context.Background(), userID)
		return settingsSavedMsg{Stats: stats, Action: "reset", Err: err}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading settings...")
	}

	var b strings.Builder
	b.WriteString("\n")

	account := "Not signed in (progress stays on this machine)"
	if s.email != "" {
		account = "Signed in as " + s.email
	}

	lines := []string{
		fmt.Sprintf("Monthly goal    %d exercises", s.stats.MonthlyGoal),
		fmt.Sprintf("History         %d completed rounds", s.stats.TotalCount()),
		"Account         " + account,
		"Version         " + s.version,
	}
	b.WriteString(center(width, theme.Card.Render(strings.Join(lines, "\n"))))
	b.WriteString("\n\n")

	switch s.mode {
	case modeEditGoal:
		b.WriteString(center(width, theme.Body.Render("New monthly goal: ")+s.input.View()))
	case modeConfirmReset:
		warn := theme.Incorrect.Render("Erase ALL progress? This cannot be undone.") +
			"\n" + theme.Hint.Render("Press Y to erase, N to keep.")
		b.WriteString(center(width, warn))
	default:
		if s.status != "" {
			b.WriteString(center(width, theme.Hint.Render(s.status)))
		}
	}
	return b.String()
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
