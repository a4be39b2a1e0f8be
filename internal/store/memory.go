package store

import (
	"context"
	"sync"
	"time"

	"github.com/yichen/tinyhabits/internal/llm"
	"github.com/yichen/tinyhabits/internal/progress"
)

// MemoryStore keeps everything in process memory. Used by tests and by
// runs that opt out of persistence entirely.
type MemoryStore struct {
	mu       sync.Mutex
	stats    map[string]progress.UserStatistics
	prefs    map[string]Preferences
	requests []RequestEntry
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stats:  make(map[string]progress.UserStatistics),
		prefs:  make(map[string]Preferences),
		nextID: 1,
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Statistics(_ context.Context, userID string) (progress.UserStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.stats[userID]; ok {
		return st, nil
	}
	return progress.NewUserStatistics(), nil
}

func (s *MemoryStore) SaveStatistics(_ context.Context, userID string, stats progress.UserStatistics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[userID] = stats
	return nil
}

func (s *MemoryStore) Preferences(_ context.Context, userID string) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.prefs[userID]; ok {
		return p, nil
	}
	return DefaultPreferences(), nil
}

func (s *MemoryStore) SavePreferences(_ context.Context, userID string, prefs Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[userID] = prefs
	return nil
}

func (s *MemoryStore) AppendRequest(_ context.Context, rec llm.RequestRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, RequestEntry{
		ID:            s.nextID,
		CreatedAt:     time.Now(),
		RequestRecord: rec,
	})
	s.nextID++
	return nil
}

func (s *MemoryStore) Requests(_ context.Context, limit int) ([]RequestEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.requests)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]RequestEntry, 0, n)
	for i := len(s.requests) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.requests[i])
	}
	return out, nil
}

var _ Repository = (*MemoryStore)(nil)
