package exercise

import "fmt"

// Placeholder returns the deterministic exercise served when no
// generation credential is configured. It keeps the whole quiz flow
// usable offline and in demos, so an empty pool is a mode, not an error.
func Placeholder(req Request) *Exercise {
	question := Question{
		Prompt:        "What is the main point of this practice?",
		Options:       []string{"Building a daily habit", "Learning grammar rules", "Memorizing word lists", "Taking an exam"},
		CorrectOption: "Building a daily habit",
	}

	if req.Kind == KindAudio {
		return &Exercise{
			Kind: KindAudio,
			Script: fmt.Sprintf(
				"This is a sample listening script shown because no API key is configured. "+
					"The topic you asked for was %s. Add a key to hear generated audio exercises.",
				req.Topic),
			Questions: []Question{question},
		}
	}

	return &Exercise{
		Kind: KindText,
		Passage: fmt.Sprintf(
			"This is a sample paragraph shown because no API key is configured. "+
				"The topic you asked for was %s. Add a key to practice with generated passages.",
			req.Topic),
		Questions: []Question{question},
	}
}
