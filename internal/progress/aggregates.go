package progress

import (
	"math"
	"time"
)

// TodayCount counts completions recorded on the same calendar day as
// `now`.
func (s UserStatistics) TodayCount(now time.Time) int {
	n := 0
	for _, c := range s.Completions {
		if sameDay(c.Date, now) {
			n++
		}
	}
	return n
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MonthCount counts completions in the same calendar month and year as
// `now`.
func (s UserStatistics) MonthCount(now time.Time) int {
	y, m, _ := now.Date()
	n := 0
	for _, c := range s.Completions {
		cy, cm, _ := c.Date.Date()
		if cy == y && cm == m {
			n++
		}
	}
	return n
}

// TotalCount is the number of recorded completions.
func (s UserStatistics) TotalCount() int {
	return len(s.Completions)
}

// OverallAccuracy is the pooled accuracy across every scored completion,
// as a percentage rounded to one decimal place. Completions without a
// score are skipped; with nothing scored the accuracy is 0.
func (s UserStatistics) OverallAccuracy() float64 {
	correct, total := 0, 0
	for _, c := range s.Completions {
		if c.Score == nil {
			continue
		}
		correct += c.Score.Correct
		total += c.Score.Total
	}
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}

// GoalProgress is this month's completions as a percentage of the
// monthly goal, clamped to 100.
func (s UserStatistics) GoalProgress(now time.Time) float64 {
	goal := s.MonthlyGoal
	if goal <= 0 {
		goal = DefaultMonthlyGoal
	}
	p := float64(s.MonthCount(now)) / float64(goal) * 100
	return math.Min(p, 100)
}

// RecentCompletions returns up to n completions, newest first.
func (s UserStatistics) RecentCompletions(n int) []CompletionRecord {
	if n > len(s.Completions) {
		n = len(s.Completions)
	}
	out := make([]CompletionRecord, 0, n)
	for i := len(s.Completions) - 1; i >= len(s.Completions)-n; i-- {
		out = append(out, s.Completions[i])
	}
	return out
}
