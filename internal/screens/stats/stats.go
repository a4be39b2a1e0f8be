// Package stats renders the progress dashboard: streak, counts, pooled
// accuracy, monthly goal progress and recent rounds.
package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/progress"
	"github.com/yichen/tinyhabits/internal/router"
	"github.com/yichen/tinyhabits/internal/screen"
	"github.com/yichen/tinyhabits/internal/ui/components"
	"github.com/yichen/tinyhabits/internal/ui/layout"
	"github.com/yichen/tinyhabits/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats progress.UserStatistics
	Err   error
}

// StatsScreen displays the progress dashboard.
type StatsScreen struct {
	svc    *progress.Service
	userID string

	stats  progress.UserStatistics
	loaded bool
	errMsg string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(svc *progress.Service, userID string) *StatsScreen {
	return &StatsScreen{svc: svc, userID: userID}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		stats, err := s.svc.Statistics(context.Background(), s.userID)
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Progress"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}

	now := time.Now()
	var b strings.Builder
	b.WriteString("\n")

	cards := []string{
		statCard("Streak", fmt.Sprintf("%d day(s)", s.stats.Streak)),
		statCard("Today", fmt.Sprintf("%d", s.stats.TodayCount(now))),
		statCard("This month", fmt.Sprintf("%d", s.stats.MonthCount(now))),
		statCard("All time", fmt.Sprintf("%d", s.stats.TotalCount())),
		statCard("Accuracy", fmt.Sprintf("%.1f%%", s.stats.OverallAccuracy())),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...)))
	b.WriteString("\n\n")

	goal := components.NewProgressBar(
		fmt.Sprintf("Monthly goal (%d)", s.stats.MonthlyGoal),
		s.stats.GoalProgress(now)/100,
		true,
		min(width-8, 64),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, goal.View()))
	b.WriteString("\n\n")

	b.WriteString(s.viewRecent(width))
	return b.String()
}

func statCard(label, value string) string {
	content := theme.Subtitle.Render(label) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Align(lipgloss.Center).Render(value)
	return theme.Card.Width(14).Render(content)
}

func (s *StatsScreen) viewRecent(width int) string {
	recent := s.stats.RecentCompletions(20)
	if len(recent) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No rounds yet. Start practicing!"))
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render("Recent rounds")))
	b.WriteString("\n")

	for _, rec := range recent {
		kind := "Reading"
		if rec.Kind == exercise.KindAudio {
			kind = "Listening"
		}
		scoreStr := "-"
		if rec.Score != nil {
			scoreStr = fmt.Sprintf("%d/%d", rec.Score.Correct, rec.Score.Total)
		}
		line := fmt.Sprintf("%s  %-9s  %-18s  %s  %s",
			rec.Date.Format("Jan 02"), kind, truncate(rec.Topic, 18), rec.Level, scoreStr)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
