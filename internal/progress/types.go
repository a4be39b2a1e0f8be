package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/quiz"
)

// DefaultMonthlyGoal is the completions-per-month target for new and
// reset profiles.
const DefaultMonthlyGoal = 100

// CompletionRecord is one finished, graded quiz attempt. Records are
// append-only: nothing mutates or deletes them short of a full reset.
type CompletionRecord struct {
	ID    string
	Date  time.Time // day granularity, midnight in the recording location
	Topic string
	Level exercise.Level
	Kind  exercise.Kind

	// Score is nil for the rare completion recorded without a grade.
	Score *quiz.Score
}

// NewCompletionRecord builds a record for a just-graded quiz. The date is
// stamped by RecordCompletion, not here.
func NewCompletionRecord(topic string, level exercise.Level, kind exercise.Kind, score quiz.Score) CompletionRecord {
	return CompletionRecord{
		ID:    uuid.NewString(),
		Topic: topic,
		Level: level,
		Kind:  kind,
		Score: &score,
	}
}

// UserStatistics is the persisted practice history for one user.
type UserStatistics struct {
	// Completions in chronological insertion order.
	Completions []CompletionRecord

	// LastCompletionDate is the day of the most recent completion, nil
	// for a fresh profile.
	LastCompletionDate *time.Time

	// MonthlyGoal is the completions-per-month target, always > 0.
	MonthlyGoal int

	// Streak counts consecutive calendar days with at least one
	// completion.
	Streak int
}

// NewUserStatistics returns the defaults used for fresh profiles and for
// profiles the store has no row for.
func NewUserStatistics() UserStatistics {
	return UserStatistics{MonthlyGoal: DefaultMonthlyGoal}
}

// ClearStatistics returns statistics reset to defaults: no history, no
// streak, goal back to the default. Account identity is untouched; the
// caller is responsible for confirming this destructive step with the
// user first.
func ClearStatistics() UserStatistics {
	return NewUserStatistics()
}

// dayOf truncates a timestamp to midnight in its own location.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
