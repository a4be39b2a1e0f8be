package practice

import (
	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/progress"
)

// exerciseReadyMsg delivers the generated exercise, or the generation
// failure.
type exerciseReadyMsg struct {
	Exercise *exercise.Exercise
	Topic    string // resolved topic, after Random expansion
	Err      error
}

// speechReadyMsg delivers the synthesized audio URL for an audio
// exercise. A failure leaves the exercise usable without playback.
type speechReadyMsg struct {
	URL string
	Err error
}

// completionSavedMsg reports the statistics after recording a completion.
// Warn is set when the update only survived in memory.
type completionSavedMsg struct {
	Stats progress.UserStatistics
	Warn  error
}
