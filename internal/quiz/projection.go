package quiz

// OptionState is the per-option display state, derived purely from the
// engine's answers and grading flag. It carries no state of its own.
type OptionState int

const (
	// OptionNeutral: not selected, or (after grading) neither the
	// correct answer nor the learner's wrong pick.
	OptionNeutral OptionState = iota

	// OptionSelected: the learner's current pick while Answering.
	OptionSelected

	// OptionCorrect: the correct answer, shown after grading.
	OptionCorrect

	// OptionIncorrect: the learner's wrong pick, shown after grading.
	OptionIncorrect
)

// OptionStateAt projects the display state of option `opt` of question i.
func (e *Engine) OptionStateAt(i int, opt string) OptionState {
	if i < 0 || i >= len(e.ex.Questions) {
		return OptionNeutral
	}
	selected := e.answers[i] == opt

	if !e.graded {
		if selected {
			return OptionSelected
		}
		return OptionNeutral
	}

	if opt == e.ex.Questions[i].CorrectOption {
		return OptionCorrect
	}
	if selected {
		return OptionIncorrect
	}
	return OptionNeutral
}
