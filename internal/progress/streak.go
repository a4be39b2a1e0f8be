package progress

import "time"

// streakAfter computes the streak value a completion on `day` produces,
// given the prior streak and the day of the previous completion.
//
// Consecutive days extend the streak by one. A gap of more than one day
// restarts it at one. A second completion on the same day leaves it
// unchanged, as does a completion dated before the last one (clock
// rollback), which is treated as "no change" rather than a restart.
func streakAfter(prior int, last *time.Time, day time.Time) int {
	if last == nil {
		return 1
	}
	diff := daysBetween(*last, day)
	switch {
	case diff == 1:
		return prior + 1
	case diff > 1:
		return 1
	default:
		if prior == 0 {
			return 1
		}
		return prior
	}
}

// daysBetween counts calendar days from a to b. Both are reduced to
// their date components in their own location first, so DST and the
// zone a stored date was parsed in cannot skew the count.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

// RecordCompletion appends a completion dated `now` and returns the
// updated statistics. The input is not mutated; persistence is the
// caller's concern.
func RecordCompletion(stats UserStatistics, rec CompletionRecord, now time.Time) UserStatistics {
	day := dayOf(now)
	rec.Date = day

	next := stats
	next.Streak = streakAfter(stats.Streak, stats.LastCompletionDate, day)
	next.LastCompletionDate = &day

	next.Completions = make([]CompletionRecord, 0, len(stats.Completions)+1)
	next.Completions = append(next.Completions, stats.Completions...)
	next.Completions = append(next.Completions, rec)
	return next
}
