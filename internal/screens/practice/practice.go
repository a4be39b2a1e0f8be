// Package practice drives one exercise round: pick topic and level,
// generate, answer the questions, submit, see the result.
package practice

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/llm"
	"github.com/yichen/tinyhabits/internal/progress"
	"github.com/yichen/tinyhabits/internal/quiz"
	"github.com/yichen/tinyhabits/internal/router"
	"github.com/yichen/tinyhabits/internal/screen"
	"github.com/yichen/tinyhabits/internal/store"
	"github.com/yichen/tinyhabits/internal/tts"
	"github.com/yichen/tinyhabits/internal/ui/components"
	"github.com/yichen/tinyhabits/internal/ui/layout"
	"github.com/yichen/tinyhabits/internal/ui/theme"
)

type phase int

const (
	phaseSetup phase = iota
	phaseGenerating
	phaseQuiz
	phaseResults
)

const kindRandom = "Surprise me"

// PracticeScreen implements screen.Screen for the practice flow.
type PracticeScreen struct {
	generator exercise.Generator
	svc       *progress.Service
	repo      store.Repository
	speech    *tts.Client
	userID    string

	phase phase

	// Setup.
	topicPicker components.Picker
	levelPicker components.Picker
	kindPicker  components.Picker
	focus       int

	spin spinner.Model

	// Quiz.
	engine    *quiz.Engine
	topic     string // resolved topic for the round
	qIndex    int
	optCursor int
	notice    string
	audioURL  string
	audioErr  error

	// Results.
	saving   bool
	stats    progress.UserStatistics
	saveWarn error
	score    quiz.Score

	errMsg string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.EscHandler = (*PracticeScreen)(nil)

// New creates the practice screen with sticky preferences applied.
func New(generator exercise.Generator, svc *progress.Service, repo store.Repository, speech *tts.Client, userID string, prefs store.Preferences) *PracticeScreen {
	topics := append([]string{}, exercise.Topics()...)
	topics = append(topics, exercise.TopicRandom)

	levels := make([]string, 0, len(exercise.Levels()))
	for _, l := range exercise.Levels() {
		levels = append(levels, string(l))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Selected

	s := &PracticeScreen{
		generator:   generator,
		svc:         svc,
		repo:        repo,
		speech:      speech,
		userID:      userID,
		topicPicker: components.NewPicker("Topic", topics, prefs.Topic),
		levelPicker: components.NewPicker("Level", levels, string(prefs.Level)),
		kindPicker:  components.NewPicker("Format", []string{"Reading", "Listening", kindRandom}, "Reading"),
		spin:        sp,
	}
	s.topicPicker.Focused = true
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

// HandlesEsc keeps Esc local while a round is in flight so a stray press
// does not drop the user back home mid-quiz.
func (s *PracticeScreen) HandlesEsc() bool {
	return s.phase == phaseQuiz || s.phase == phaseGenerating
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseSetup:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Field"},
			{Key: "◂▸", Description: "Change"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseQuiz:
		if s.engine != nil && s.engine.Graded() {
			return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Option"},
			{Key: "Enter", Description: "Pick"},
			{Key: "Tab", Description: "Next question"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Abandon"},
		}
	case phaseResults:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Again"},
			{Key: "Esc", Description: "Home"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exerciseReadyMsg:
		return s.handleExerciseReady(msg)

	case speechReadyMsg:
		if msg.Err != nil {
			s.audioErr = msg.Err
		} else {
			s.audioURL = msg.URL
		}
		return s, nil

	case completionSavedMsg:
		s.stats = msg.Stats
		s.saveWarn = msg.Warn
		s.saving = false
		s.phase = phaseResults
		return s, func() tea.Msg { return screen.StatsChangedMsg{Stats: msg.Stats} }

	case spinner.TickMsg:
		if s.phase == phaseGenerating {
			var cmd tea.Cmd
			s.spin, cmd = s.spin.Update(msg)
			return s, cmd
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		s.errMsg = ""
		s.phase = phaseSetup
		return s, nil
	}

	switch s.phase {
	case phaseSetup:
		return s.handleSetupKey(msg)
	case phaseGenerating:
		if key == "esc" {
			// The in-flight generation is abandoned; its result message
			// is ignored once we are back in setup.
			s.phase = phaseSetup
		}
		return s, nil
	case phaseQuiz:
		return s.handleQuizKey(msg)
	case phaseResults:
		switch key {
		case "enter":
			s.phase = phaseSetup
			return s, nil
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *PracticeScreen) handleSetupKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		s.setFocus(s.focus - 1)
		return s, nil
	case "down", "j":
		s.setFocus(s.focus + 1)
		return s, nil
	case "enter":
		return s, s.startGeneration()
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	var cmd tea.Cmd
	switch s.focus {
	case 0:
		s.topicPicker, cmd = s.topicPicker.Update(msg)
	case 1:
		s.levelPicker, cmd = s.levelPicker.Update(msg)
	case 2:
		s.kindPicker, cmd = s.kindPicker.Update(msg)
	}
	return s, cmd
}

func (s *PracticeScreen) setFocus(i int) {
	if i < 0 {
		i = 0
	}
	if i > 2 {
		i = 2
	}
	s.focus = i
	s.topicPicker.Focused = i == 0
	s.levelPicker.Focused = i == 1
	s.kindPicker.Focused = i == 2
}

// startGeneration kicks off one generation. A second Enter while one is
// already in flight is ignored.
func (s *PracticeScreen) startGeneration() tea.Cmd {
	if s.phase == phaseGenerating {
		return nil
	}
	s.phase = phaseGenerating
	s.audioURL = ""
	s.audioErr = nil
	s.notice = ""

	topicPick := s.topicPicker.Value()
	level := exercise.Level(s.levelPicker.Value())

	var kind exercise.Kind
	switch s.kindPicker.Value() {
	case "Listening":
		kind = exercise.KindAudio
	case kindRandom:
		kind = exercise.RandomKind()
	default:
		kind = exercise.KindText
	}

	generator := s.generator
	repo := s.repo
	userID := s.userID

	generate := func() tea.Msg {
		topic := exercise.ResolveTopic(topicPick)
		req := exercise.Request{Topic: topic, Level: level, Kind: kind}

		ex, err := generator.Generate(context.Background(), req)
		return exerciseReadyMsg{Exercise: ex, Topic: topic, Err: err}
	}

	savePrefs := func() tea.Msg {
		if repo != nil {
			_ = repo.SavePreferences(context.Background(), userID, store.Preferences{
				Topic: topicPick,
				Level: level,
			})
		}
		return nil
	}

	return tea.Batch(s.spin.Tick, generate, savePrefs)
}

func (s *PracticeScreen) handleExerciseReady(msg exerciseReadyMsg) (screen.Screen, tea.Cmd) {
	if s.phase != phaseGenerating {
		// Round was abandoned while generating.
		return s, nil
	}
	if msg.Err != nil {
		s.phase = phaseSetup
		s.errMsg = friendlyGenerationError(msg.Err)
		return s, nil
	}

	s.engine = quiz.NewEngine(msg.Exercise)
	s.topic = msg.Topic
	s.qIndex = 0
	s.optCursor = 0
	s.phase = phaseQuiz

	if msg.Exercise.Kind == exercise.KindAudio && s.speech != nil {
		speech := s.speech
		script := msg.Exercise.Script
		level := exercise.Level(s.levelPicker.Value())
		return s, func() tea.Msg {
			url, err := speech.Synthesize(context.Background(), script, level)
			return speechReadyMsg{URL: url, Err: err}
		}
	}
	return s, nil
}

func (s *PracticeScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.engine == nil {
		return s, nil
	}
	key := msg.String()

	if s.engine.Graded() {
		// Review view: any key moves on to the results. Record once.
		if s.saving {
			return s, nil
		}
		s.saving = true
		return s, s.recordCompletion()
	}

	questions := s.engine.Exercise().Questions
	q := questions[s.qIndex]

	switch key {
	case "esc":
		s.engine = nil
		s.phase = phaseSetup
		return s, nil
	case "up", "k":
		if s.optCursor > 0 {
			s.optCursor--
		}
		return s, nil
	case "down", "j":
		if s.optCursor < len(q.Options)-1 {
			s.optCursor++
		}
		return s, nil
	case "tab", "right", "l":
		s.qIndex = (s.qIndex + 1) % len(questions)
		s.optCursor = 0
		return s, nil
	case "shift+tab", "left", "h":
		s.qIndex = (s.qIndex - 1 + len(questions)) % len(questions)
		s.optCursor = 0
		return s, nil
	case "enter":
		return s.selectOption(s.optCursor)
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < len(q.Options) {
			return s.selectOption(idx)
		}
		return s, nil
	case "s":
		return s.submit()
	}
	return s, nil
}

func (s *PracticeScreen) selectOption(idx int) (screen.Screen, tea.Cmd) {
	if err := s.engine.SelectAnswer(s.qIndex, s.engine.Exercise().Questions[s.qIndex].Options[idx]); err != nil {
		return s, nil
	}
	s.notice = ""

	// Jump to the next unanswered question, if any.
	questions := s.engine.Exercise().Questions
	for step := 1; step <= len(questions); step++ {
		i := (s.qIndex + step) % len(questions)
		if _, ok := s.engine.Answer(i); !ok {
			s.qIndex = i
			s.optCursor = 0
			break
		}
	}
	return s, nil
}

func (s *PracticeScreen) submit() (screen.Screen, tea.Cmd) {
	score, err := s.engine.Submit()
	if errors.Is(err, quiz.ErrIncompleteAnswers) {
		s.notice = "Answer every question before submitting."
		return s, nil
	}
	if err != nil {
		return s, nil
	}
	s.score = score
	s.notice = ""
	return s, nil
}

// recordCompletion persists the graded round and moves to results.
func (s *PracticeScreen) recordCompletion() tea.Cmd {
	svc := s.svc
	userID := s.userID
	rec := progress.NewCompletionRecord(
		s.topic,
		exercise.Level(s.levelPicker.Value()),
		s.engine.Exercise().Kind,
		s.score,
	)

	return func() tea.Msg {
		stats, err := svc.RecordCompletion(context.Background(), userID, rec)
		var pe *progress.PersistenceError
		if errors.As(err, &pe) {
			return completionSavedMsg{Stats: stats, Warn: pe}
		}
		if err != nil {
			return completionSavedMsg{Stats: stats, Warn: err}
		}
		return completionSavedMsg{Stats: stats}
	}
}

// friendlyGenerationError maps provider failures to learner-facing text.
func friendlyGenerationError(err error) string {
	var quota *llm.ErrQuotaExhausted
	if errors.As(err, &quota) {
		return "Every API key is rate limited right now. Wait a minute and try again."
	}
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return "The model returned an unusable exercise. Try again."
	}
	var vErr *exercise.ValidationError
	if errors.As(err, &vErr) {
		return "The generated exercise failed validation. Try again."
	}
	return "Could not generate an exercise: " + err.Error()
}
