package tts

import "github.com/yichen/tinyhabits/internal/exercise"

// SpeechRate is the playback adjustment sent to the synthesis service,
// in the service's own unit. Negative slows playback down, positive
// speeds it up, zero is the service default.
type SpeechRate int

// rateByLevel maps each difficulty band to a speech rate. Lower bands
// get slower narration.
var rateByLevel = map[exercise.Level]SpeechRate{
	exercise.LevelBR200:   -200,
	exercise.Level200500:  -100,
	exercise.Level500800:  0,
	exercise.Level700850:  25,
	exercise.Level8001000: 50,
	exercise.Level1000Up:  100,
}

// RateFor returns the speech rate for a difficulty band. Unknown bands
// fall back to the service default rate.
func RateFor(level exercise.Level) SpeechRate {
	if r, ok := rateByLevel[level]; ok {
		return r
	}
	return 0
}
