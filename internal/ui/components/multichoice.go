package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/yichen/tinyhabits/internal/ui/theme"
)

// Mark is the display state of one answer option.
type Mark int

const (
	MarkNone Mark = iota
	MarkSelected
	MarkCorrect
	MarkIncorrect
)

// MultiChoice renders one question's options. The caller owns the cursor
// and the answer state; this component only draws.
type MultiChoice struct {
	Prompt  string
	Options []string
	Cursor  int    // highlighted option, -1 for none
	Marks   []Mark // one per option, nil means all MarkNone
	Locked  bool   // after grading: dim the cursor, show marks
}

var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// View renders the question and its options.
func (m MultiChoice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Prompt) + "\n\n"

	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}

		prefix := "  "
		if i == m.Cursor && !m.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		mark := MarkNone
		if i < len(m.Marks) {
			mark = m.Marks[i]
		}

		switch {
		case mark == MarkCorrect:
			s += theme.Correct.Render(line+"  ✓") + "\n"
		case mark == MarkIncorrect:
			s += theme.Incorrect.Render(line+"  ✗") + "\n"
		case mark == MarkSelected:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(line) + "\n"
		case i == m.Cursor && !m.Locked:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
