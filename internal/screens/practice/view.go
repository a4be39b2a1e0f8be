package practice

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/quiz"
	"github.com/yichen/tinyhabits/internal/ui/components"
	"github.com/yichen/tinyhabits/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return centered(width, theme.Incorrect.Render("\n\n"+s.errMsg)+
			theme.Hint.Render("\n\nPress any key to go back."))
	}

	switch s.phase {
	case phaseSetup:
		return s.viewSetup(width)
	case phaseGenerating:
		return centered(width, "\n\n"+s.spin.View()+" "+
			theme.Body.Render("Writing your exercise..."))
	case phaseQuiz:
		return s.viewQuiz(width)
	case phaseResults:
		return s.viewResults(width)
	}
	return ""
}

func (s *PracticeScreen) viewSetup(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Title.Render("New Exercise")))
	b.WriteString("\n\n")

	form := strings.Join([]string{
		s.topicPicker.View(),
		s.levelPicker.View(),
		s.kindPicker.View(),
	}, "\n\n")

	b.WriteString(centered(width, theme.Card.Render(form)))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("Enter to start")))
	return b.String()
}

func (s *PracticeScreen) viewQuiz(width int) string {
	ex := s.engine.Exercise()
	var b strings.Builder
	b.WriteString("\n")

	// Body: passage for reading, script plus audio link for listening.
	if ex.Kind == exercise.KindAudio {
		b.WriteString(centered(width, theme.Subtitle.Render("Listening: "+s.topic)))
		b.WriteString("\n\n")
		switch {
		case s.audioURL != "":
			b.WriteString(centered(width, theme.Hint.Render("▶ "+s.audioURL)))
		case s.audioErr != nil:
			b.WriteString(centered(width, theme.Hint.Render("Audio unavailable, read along instead.")))
		case s.speech != nil:
			b.WriteString(centered(width, theme.Hint.Render("Preparing audio...")))
		}
		b.WriteString("\n\n")
	} else {
		b.WriteString(centered(width, theme.Subtitle.Render("Reading: "+s.topic)))
		b.WriteString("\n\n")
	}

	body := lipgloss.NewStyle().Width(min(width-8, 72)).Foreground(theme.Text).Render(ex.Content())
	b.WriteString(centered(width, theme.Card.Render(body)))
	b.WriteString("\n\n")

	if s.engine.Graded() {
		b.WriteString(s.viewReview(width))
		return b.String()
	}

	q := ex.Questions[s.qIndex]
	answered := 0
	for i := range ex.Questions {
		if _, ok := s.engine.Answer(i); ok {
			answered++
		}
	}

	header := fmt.Sprintf("Question %d of %d  ·  %d answered", s.qIndex+1, len(ex.Questions), answered)
	b.WriteString(centered(width, theme.Subtitle.Render(header)))
	b.WriteString("\n\n")

	marks := make([]components.Mark, len(q.Options))
	for i, opt := range q.Options {
		if s.engine.OptionStateAt(s.qIndex, opt) == quiz.OptionSelected {
			marks[i] = components.MarkSelected
		}
	}
	mc := components.MultiChoice{
		Prompt:  q.Prompt,
		Options: q.Options,
		Cursor:  s.optCursor,
		Marks:   marks,
	}
	b.WriteString(centered(width, mc.View()))

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Incorrect.Render(s.notice)))
	}
	return b.String()
}

// viewReview shows every question with the correct answers marked.
func (s *PracticeScreen) viewReview(width int) string {
	ex := s.engine.Exercise()
	var b strings.Builder

	b.WriteString(centered(width, theme.Title.Render(fmt.Sprintf("Score: %d / %d", s.score.Correct, s.score.Total))))
	b.WriteString("\n\n")

	for i, q := range ex.Questions {
		marks := make([]components.Mark, len(q.Options))
		for j, opt := range q.Options {
			switch s.engine.OptionStateAt(i, opt) {
			case quiz.OptionCorrect:
				marks[j] = components.MarkCorrect
			case quiz.OptionIncorrect:
				marks[j] = components.MarkIncorrect
			}
		}
		mc := components.MultiChoice{
			Prompt:  q.Prompt,
			Options: q.Options,
			Cursor:  -1,
			Marks:   marks,
			Locked:  true,
		}
		b.WriteString(centered(width, mc.View()))
		b.WriteString("\n")
	}

	b.WriteString(centered(width, theme.Hint.Render("Press any key to continue.")))
	return b.String()
}

func (s *PracticeScreen) viewResults(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	banner := "Nice work!"
	if s.score.Total > 0 && s.score.Correct == s.score.Total {
		banner = "Perfect round! 🎉"
	}
	b.WriteString(centered(width, theme.Title.Render(banner)))
	b.WriteString("\n\n")

	lines := []string{
		fmt.Sprintf("Score          %d / %d", s.score.Correct, s.score.Total),
		fmt.Sprintf("Streak         %d day(s)", s.stats.Streak),
		fmt.Sprintf("Today          %d round(s)", s.stats.TodayCount(time.Now())),
		fmt.Sprintf("Total rounds   %d", s.stats.TotalCount()),
	}
	b.WriteString(centered(width, theme.Card.Render(strings.Join(lines, "\n"))))

	if s.saveWarn != nil {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Hint.Render("Warning: progress could not be saved, it is kept for this session only.")))
	}

	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("Enter for another round · Esc for home")))
	return b.String()
}

func centered(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
