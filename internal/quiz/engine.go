// Package quiz holds the answer state for one exercise and grades it.
//
// An Engine moves through exactly two states, Answering then Graded.
// Answers can be changed freely while Answering; Submit grades once and
// freezes everything. A new exercise means a new Engine.
package quiz

import (
	"errors"
	"fmt"

	"github.com/yichen/tinyhabits/internal/exercise"
)

var (
	// ErrIncompleteAnswers rejects submission while any question is
	// still unanswered. Checked locally, no network involved.
	ErrIncompleteAnswers = errors.New("quiz: not every question has an answer")

	// ErrAlreadyGraded rejects mutation and re-submission after grading.
	ErrAlreadyGraded = errors.New("quiz: already graded")

	// ErrNotGraded rejects reading a score before submission.
	ErrNotGraded = errors.New("quiz: not graded yet")
)

// IndexOutOfRangeError flags an answer selection outside the exercise's
// question range. This is a caller bug, not user input.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("quiz: question index %d out of range [0,%d)", e.Index, e.Count)
}

// Score is the graded result. Immutable once computed.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Engine drives one quiz session over one exercise.
type Engine struct {
	ex      *exercise.Exercise
	answers map[int]string
	graded  bool
	score   Score
}

// NewEngine starts a session in the Answering state.
func NewEngine(ex *exercise.Exercise) *Engine {
	return &Engine{
		ex:      ex,
		answers: make(map[int]string),
	}
}

// Exercise returns the exercise under quiz.
func (e *Engine) Exercise() *exercise.Exercise {
	return e.ex
}

// Graded reports whether the session has been submitted.
func (e *Engine) Graded() bool {
	return e.graded
}

// Answer returns the recorded selection for a question, if any.
func (e *Engine) Answer(i int) (string, bool) {
	v, ok := e.answers[i]
	return v, ok
}

// SelectAnswer records (or replaces) the selection for question i.
// Valid only while Answering.
func (e *Engine) SelectAnswer(i int, option string) error {
	if e.graded {
		return ErrAlreadyGraded
	}
	if i < 0 || i >= len(e.ex.Questions) {
		return &IndexOutOfRangeError{Index: i, Count: len(e.ex.Questions)}
	}
	e.answers[i] = option
	return nil
}

// Submit grades the session and transitions to Graded. Every question
// must have a selection; re-submission is an error, not a no-op.
func (e *Engine) Submit() (Score, error) {
	if e.graded {
		return Score{}, ErrAlreadyGraded
	}
	for i := range e.ex.Questions {
		if _, ok := e.answers[i]; !ok {
			return Score{}, ErrIncompleteAnswers
		}
	}

	correct := 0
	for i, q := range e.ex.Questions {
		if e.answers[i] == q.CorrectOption {
			correct++
		}
	}

	e.graded = true
	e.score = Score{Correct: correct, Total: len(e.ex.Questions)}
	return e.score, nil
}

// Score returns the graded result. Idempotent to re-read after Submit.
func (e *Engine) Score() (Score, error) {
	if !e.graded {
		return Score{}, ErrNotGraded
	}
	return e.score, nil
}
