package exercise

// Kind selects the exercise shape: a short reading passage or a script
// meant for text-to-speech playback. Both carry comprehension questions.
type Kind string

const (
	KindText  Kind = "text"
	KindAudio Kind = "audio"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindText || k == KindAudio
}

// Level is a Lexile difficulty band. Bands also drive the text-to-speech
// rate for audio exercises.
type Level string

const (
	LevelBR200   Level = "BR-200L"
	Level200500  Level = "200L-500L"
	Level500800  Level = "500L-800L"
	Level700850  Level = "700L-850L"
	Level8001000 Level = "800L-1000L"
	Level1000Up  Level = "1000L+"
)

// DefaultLevel is the band preselected for new profiles.
const DefaultLevel = Level8001000

// Valid reports whether l is a known band.
func (l Level) Valid() bool {
	for _, v := range Levels() {
		if l == v {
			return true
		}
	}
	return false
}

// Levels returns all bands in ascending difficulty order.
func Levels() []Level {
	return []Level{LevelBR200, Level200500, Level500800, Level700850, Level8001000, Level1000Up}
}

// Request is one user ask for a generated exercise. Ephemeral, never
// persisted.
type Request struct {
	Topic string
	Level Level
	Kind  Kind
}

// Question is a single multiple-choice comprehension question.
// Invariant: CorrectOption is an element of Options, and Options has at
// least two entries. The structural validator enforces this on every
// accepted service payload.
type Question struct {
	// Prompt is the question text shown to the learner.
	Prompt string

	// Options are the answer choices, in display order.
	Options []string

	// CorrectOption is the text of the correct choice.
	CorrectOption string
}

// Exercise is one generated practice package. Kind discriminates the two
// shapes: Passage is set for KindText, Script for KindAudio, and both
// shapes share Questions. The exercise is owned by one quiz session and
// discarded when the user starts over.
type Exercise struct {
	Kind Kind

	// Passage is the reading text (KindText only).
	Passage string

	// Script is the text handed to the TTS collaborator (KindAudio only).
	Script string

	Questions []Question
}

// Content returns the kind-appropriate body text.
func (e *Exercise) Content() string {
	if e.Kind == KindAudio {
		return e.Script
	}
	return e.Passage
}
