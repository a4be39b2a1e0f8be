// Package home is the landing screen: a quick progress summary and the
// main navigation menu.
package home

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
	"github.com/yichen/tinyhabits/internal/screens/practice"
	"github.com/yichen/tinyhabits/internal/screens/settings"
	"github.com/yichen/tinyhabits/internal/screens/stats"
	"github.com/yichen/tinyhabits/internal/store"
	"github.com/yichen/tinyhabits/internal/tts"
	"github.com/yichen/tinyhabits/internal/ui/components"
	"github.com/yichen/tinyhabits/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu  components.Menu
	stats progress.UserStatistics
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen with injected dependencies.
func New(generator exercise.Generator, svc *progress.Service, repo store.Repository, speech *tts.Client, userID, email, version string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START PRACTICE", Action: func() tea.Cmd {
			return func() tea.Msg {
				prefs := store.DefaultPreferences()
				if repo != nil {
					if p, err := repo.Preferences(context.Background(), userID); err == nil {
						prefs = p
					}
				}
				return router.PushScreenMsg{
					Screen: practice.New(generator, svc, repo, speech, userID, prefs),
				}
			}
		}},
		{Label: "PROGRESS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(svc, userID)}
			}
		}},
		{Label: "SETTINGS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(svc, userID, email, version)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(screen.StatsChangedMsg); ok {
		h.stats = m.Stats
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	now := time.Now()
	var sections []string

	sections = append(sections, theme.Title.Render("Tiny English Habits"))
	sections = append(sections, theme.Subtitle.Render("A few minutes of English, every day."))

	summary := fmt.Sprintf("★ %d day streak    ✓ %d today    %d this month    %.1f%% accuracy",
		h.stats.Streak,
		h.stats.TodayCount(now),
		h.stats.MonthCount(now),
		h.stats.OverallAccuracy(),
	)
	sections = append(sections, theme.Card.Render(summary))

	goal := components.NewProgressBar("Goal", h.stats.GoalProgress(now)/100, true, 48)
	sections = append(sections, goal.View())

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
