package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yichen/tinyhabits/internal/ui/theme"
)

// Picker cycles through a fixed set of values with left/right keys.
type Picker struct {
	Label   string
	Values  []string
	Index   int
	Focused bool
}

// NewPicker creates a picker preselected to the value matching current,
// or the first value when none matches.
func NewPicker(label string, values []string, current string) Picker {
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	return Picker{Label: label, Values: values, Index: idx}
}

// Update handles left/right cycling while focused.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.Focused || len(p.Values) == 0 {
		return p, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "left", "h":
		p.Index = (p.Index - 1 + len(p.Values)) % len(p.Values)
	case "right", "l":
		p.Index = (p.Index + 1) % len(p.Values)
	}
	return p, nil
}

// Value returns the selected value.
func (p Picker) Value() string {
	if p.Index < 0 || p.Index >= len(p.Values) {
		return ""
	}
	return p.Values[p.Index]
}

// View renders the picker as "Label  ◂ value ▸".
func (p Picker) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10).Render(p.Label)

	value := fmt.Sprintf("◂ %s ▸", p.Value())
	if p.Focused {
		return label + "  " + theme.Selected.Render(value)
	}
	return label + "  " + lipgloss.NewStyle().Foreground(theme.Text).Render(value)
}
