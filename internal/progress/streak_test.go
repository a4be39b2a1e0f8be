package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/quiz"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func record() CompletionRecord {
	return NewCompletionRecord("Tech News", exercise.DefaultLevel, exercise.KindText, quiz.Score{Correct: 1, Total: 1})
}

func TestRecordCompletion_FirstEver(t *testing.T) {
	next := RecordCompletion(NewUserStatistics(), record(), day("2024-01-10"))

	assert.Equal(t, 1, next.Streak)
	require.NotNil(t, next.LastCompletionDate)
	assert.Equal(t, day("2024-01-10"), *next.LastCompletionDate)
	assert.Len(t, next.Completions, 1)
}

func TestRecordCompletion_ConsecutiveDayExtends(t *testing.T) {
	last := day("2024-01-10")
	stats := UserStatistics{Streak: 3, LastCompletionDate: &last, MonthlyGoal: DefaultMonthlyGoal}

	next := RecordCompletion(stats, record(), day("2024-01-11"))
	assert.Equal(t, 4, next.Streak)
}

func TestRecordCompletion_GapRestarts(t *testing.T) {
	last := day("2024-01-10")
	stats := UserStatistics{Streak: 3, LastCompletionDate: &last, MonthlyGoal: DefaultMonthlyGoal}

	next := RecordCompletion(stats, record(), day("2024-01-15"))
	assert.Equal(t, 1, next.Streak)
}

func TestRecordCompletion_SameDayUnchanged(t *testing.T) {
	last := day("2024-01-10")
	stats := UserStatistics{Streak: 3, LastCompletionDate: &last, MonthlyGoal: DefaultMonthlyGoal}

	next := RecordCompletion(stats, record(), day("2024-01-10").Add(5*time.Hour))
	assert.Equal(t, 3, next.Streak)
	assert.Equal(t, day("2024-01-10"), *next.LastCompletionDate)
}

func TestRecordCompletion_ClockRollbackLeavesStreak(t *testing.T) {
	last := day("2024-01-10")
	stats := UserStatistics{Streak: 3, LastCompletionDate: &last, MonthlyGoal: DefaultMonthlyGoal}

	// A completion dated before the last one must not restart the
	// streak.
	next := RecordCompletion(stats, record(), day("2024-01-08"))
	assert.Equal(t, 3, next.Streak)
}

func TestRecordCompletion_DoesNotMutateInput(t *testing.T) {
	last := day("2024-01-10")
	stats := UserStatistics{Streak: 3, LastCompletionDate: &last, MonthlyGoal: DefaultMonthlyGoal}
	stats.Completions = append(stats.Completions, record())

	_ = RecordCompletion(stats, record(), day("2024-01-11"))

	assert.Equal(t, 3, stats.Streak)
	assert.Len(t, stats.Completions, 1)
	assert.Equal(t, day("2024-01-10"), *stats.LastCompletionDate)
}

func TestRecordCompletion_StampsRecordDate(t *testing.T) {
	rec := record()
	next := RecordCompletion(NewUserStatistics(), rec, day("2024-03-05").Add(16*time.Hour))

	assert.Equal(t, day("2024-03-05"), next.Completions[0].Date)
}
