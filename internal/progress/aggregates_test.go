package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/quiz"
)

func scored(date time.Time, correct, total int) CompletionRecord {
	rec := NewCompletionRecord("Tech News", exercise.DefaultLevel, exercise.KindText, quiz.Score{Correct: correct, Total: total})
	rec.Date = dayOf(date)
	return rec
}

func TestOverallAccuracy_PoolsQuestions(t *testing.T) {
	s := NewUserStatistics()
	s.Completions = []CompletionRecord{
		scored(day("2024-01-01"), 3, 5),
		scored(day("2024-01-02"), 4, 4),
	}

	// 7 of 9 questions, not the mean of the per-quiz percentages.
	assert.Equal(t, 77.8, s.OverallAccuracy())
}

func TestOverallAccuracy_Empty(t *testing.T) {
	assert.Equal(t, 0.0, NewUserStatistics().OverallAccuracy())
}

func TestOverallAccuracy_SkipsUnscored(t *testing.T) {
	unscored := scored(day("2024-01-03"), 0, 0)
	unscored.Score = nil

	s := NewUserStatistics()
	s.Completions = []CompletionRecord{
		scored(day("2024-01-01"), 1, 2),
		unscored,
	}
	assert.Equal(t, 50.0, s.OverallAccuracy())
}

func TestCounts(t *testing.T) {
	now := day("2024-01-15")
	s := NewUserStatistics()
	s.Completions = []CompletionRecord{
		scored(day("2023-12-31"), 1, 1),
		scored(day("2024-01-02"), 1, 1),
		scored(day("2024-01-15"), 1, 1),
		scored(day("2024-01-15"), 1, 1),
	}

	assert.Equal(t, 2, s.TodayCount(now))
	assert.Equal(t, 3, s.MonthCount(now))
	assert.Equal(t, 4, s.TotalCount())
}

func TestGoalProgress_ClampsAtFull(t *testing.T) {
	now := day("2024-01-20")
	s := NewUserStatistics()
	s.MonthlyGoal = 100
	for i := 0; i < 120; i++ {
		s.Completions = append(s.Completions, scored(day("2024-01-10"), 1, 1))
	}

	assert.Equal(t, 100.0, s.GoalProgress(now))

	s.Completions = s.Completions[:25]
	assert.Equal(t, 25.0, s.GoalProgress(now))
}

func TestRecentCompletions_NewestFirst(t *testing.T) {
	s := NewUserStatistics()
	s.Completions = []CompletionRecord{
		scored(day("2024-01-01"), 1, 1),
		scored(day("2024-01-02"), 1, 1),
		scored(day("2024-01-03"), 1, 1),
	}

	recent := s.RecentCompletions(2)
	assert.Len(t, recent, 2)
	assert.Equal(t, day("2024-01-03"), recent[0].Date)
	assert.Equal(t, day("2024-01-02"), recent[1].Date)
}

func TestClearStatistics(t *testing.T) {
	s := UserStatistics{Streak: 9, MonthlyGoal: 50}
	s.Completions = []CompletionRecord{scored(day("2024-01-01"), 1, 1)}

	cleared := ClearStatistics()
	assert.Empty(t, cleared.Completions)
	assert.Nil(t, cleared.LastCompletionDate)
	assert.Equal(t, 0, cleared.Streak)
	assert.Equal(t, DefaultMonthlyGoal, cleared.MonthlyGoal)
}
