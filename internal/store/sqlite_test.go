package store

import (
	"context"
	"testing"
	"time"

	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/llm"
	"github.com/yichen/tinyhabits/internal/progress"
	"github.com/yichen/tinyhabits/internal/quiz"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestStatistics_FreshUserGetsDefaults(t *testing.T) {
	s := openTestStore(t)

	stats, err := s.Statistics(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("load statistics: %v", err)
	}
	if stats.MonthlyGoal != progress.DefaultMonthlyGoal {
		t.Errorf("monthly goal = %d, want %d", stats.MonthlyGoal, progress.DefaultMonthlyGoal)
	}
	if stats.Streak != 0 || len(stats.Completions) != 0 || stats.LastCompletionDate != nil {
		t.Errorf("expected empty statistics, got %+v", stats)
	}
}

func TestStatistics_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	last := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	rec := progress.NewCompletionRecord("Tech News", exercise.DefaultLevel, exercise.KindText, quiz.Score{Correct: 2, Total: 2})
	rec.Date = last

	unscored := progress.NewCompletionRecord("Travel", exercise.LevelBR200, exercise.KindAudio, quiz.Score{})
	unscored.Score = nil
	unscored.Date = last

	stats := progress.UserStatistics{
		Completions:        []progress.CompletionRecord{rec, unscored},
		LastCompletionDate: &last,
		MonthlyGoal:        50,
		Streak:             3,
	}
	if err := s.SaveStatistics(ctx, "u1", stats); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Statistics(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.MonthlyGoal != 50 || got.Streak != 3 {
		t.Errorf("profile = goal %d streak %d, want 50/3", got.MonthlyGoal, got.Streak)
	}
	if got.LastCompletionDate == nil || !got.LastCompletionDate.Equal(last) {
		t.Errorf("last completion date = %v, want %v", got.LastCompletionDate, last)
	}
	if len(got.Completions) != 2 {
		t.Fatalf("completions = %d, want 2", len(got.Completions))
	}
	first := got.Completions[0]
	if first.ID != rec.ID || first.Topic != "Tech News" || first.Kind != exercise.KindText {
		t.Errorf("first completion mismatch: %+v", first)
	}
	if first.Score == nil || *first.Score != (quiz.Score{Correct: 2, Total: 2}) {
		t.Errorf("first score = %+v, want 2/2", first.Score)
	}
	if got.Completions[1].Score != nil {
		t.Errorf("unscored completion came back with a score: %+v", got.Completions[1].Score)
	}
}

func TestSaveStatistics_RewriteReflectsReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	last := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	rec := progress.NewCompletionRecord("Tech News", exercise.DefaultLevel, exercise.KindText, quiz.Score{Correct: 1, Total: 1})
	rec.Date = last
	stats := progress.UserStatistics{
		Completions:        []progress.CompletionRecord{rec},
		LastCompletionDate: &last,
		MonthlyGoal:        100,
		Streak:             1,
	}
	if err := s.SaveStatistics(ctx, "u1", stats); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.SaveStatistics(ctx, "u1", progress.ClearStatistics()); err != nil {
		t.Fatalf("save cleared: %v", err)
	}

	got, err := s.Statistics(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Completions) != 0 || got.Streak != 0 || got.LastCompletionDate != nil {
		t.Errorf("expected cleared statistics, got %+v", got)
	}
}

func TestPreferences_RoundTripAndDefaults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	prefs, err := s.Preferences(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if prefs != DefaultPreferences() {
		t.Errorf("fresh preferences = %+v, want defaults", prefs)
	}

	want := Preferences{Topic: "Travel", Level: exercise.Level500800}
	if err := s.SavePreferences(ctx, "u1", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Preferences(ctx, "u1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got != want {
		t.Errorf("preferences = %+v, want %+v", got, want)
	}
}

func TestPreferences_SurviveStatisticsSave(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := Preferences{Topic: "Science", Level: exercise.Level1000Up}
	if err := s.SavePreferences(ctx, "u1", want); err != nil {
		t.Fatalf("save preferences: %v", err)
	}
	if err := s.SaveStatistics(ctx, "u1", progress.NewUserStatistics()); err != nil {
		t.Fatalf("save statistics: %v", err)
	}

	got, err := s.Preferences(ctx, "u1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got != want {
		t.Errorf("preferences = %+v, want %+v", got, want)
	}
}

func TestRequests_AppendAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	recs := []llm.RequestRecord{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "exercise", Credential: "...abcd", Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "exercise", Credential: "...efgh", Success: false, ErrorMessage: "rate limited"},
	}
	for _, r := range recs {
		if err := s.AppendRequest(ctx, r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := s.Requests(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("requests = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].Credential != "...efgh" || got[0].Success {
		t.Errorf("newest entry mismatch: %+v", got[0])
	}

	limited, err := s.Requests(ctx, 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited requests = %d, want 1", len(limited))
	}
}
