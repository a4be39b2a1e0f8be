package progress

import (
	"context"
	"fmt"
	"time"
)

// Store is the slice of persistence the service needs. A store with no
// row for the user returns fresh defaults, not an error.
type Store interface {
	Statistics(ctx context.Context, userID string) (UserStatistics, error)
	SaveStatistics(ctx context.Context, userID string, stats UserStatistics) error
}

// PersistenceError wraps a store write failure. The updated statistics
// are still returned alongside it so the session can keep going; callers
// surface this as a warning, not a hard stop.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("progress: persist statistics: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Service loads, updates and saves statistics for one user at a time.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService wires the service to a store. The clock defaults to
// time.Now.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Statistics loads the user's current statistics.
func (s *Service) Statistics(ctx context.Context, userID string) (UserStatistics, error) {
	return s.store.Statistics(ctx, userID)
}

// RecordCompletion appends a completion dated today and saves. On a save
// failure the updated statistics are returned together with a
// *PersistenceError, so the in-memory session still reflects the
// completion.
func (s *Service) RecordCompletion(ctx context.Context, userID string, rec CompletionRecord) (UserStatistics, error) {
	stats, err := s.store.Statistics(ctx, userID)
	if err != nil {
		return UserStatistics{}, fmt.Errorf("load statistics: %w", err)
	}

	next := RecordCompletion(stats, rec, s.now())
	if err := s.store.SaveStatistics(ctx, userID, next); err != nil {
		return next, &PersistenceError{Err: err}
	}
	return next, nil
}

// SetMonthlyGoal updates the goal and saves. Non-positive goals are
// rejected.
func (s *Service) SetMonthlyGoal(ctx context.Context, userID string, goal int) (UserStatistics, error) {
	if goal <= 0 {
		return UserStatistics{}, fmt.Errorf("progress: monthly goal must be positive, got %d", goal)
	}
	stats, err := s.store.Statistics(ctx, userID)
	if err != nil {
		return UserStatistics{}, fmt.Errorf("load statistics: %w", err)
	}

	stats.MonthlyGoal = goal
	if err := s.store.SaveStatistics(ctx, userID, stats); err != nil {
		return stats, &PersistenceError{Err: err}
	}
	return stats, nil
}

// Reset wipes the user's history back to defaults and saves.
func (s *Service) Reset(ctx context.Context, userID string) (UserStatistics, error) {
	cleared := ClearStatistics()
	if err := s.store.SaveStatistics(ctx, userID, cleared); err != nil {
		return cleared, &PersistenceError{Err: err}
	}
	return cleared, nil
}
