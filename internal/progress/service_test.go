package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	stats   map[string]UserStatistics
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{stats: make(map[string]UserStatistics)}
}

func (f *fakeStore) Statistics(_ context.Context, userID string) (UserStatistics, error) {
	if s, ok := f.stats[userID]; ok {
		return s, nil
	}
	return NewUserStatistics(), nil
}

func (f *fakeStore) SaveStatistics(_ context.Context, userID string, stats UserStatistics) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stats[userID] = stats
	return nil
}

func newTestService(store Store) *Service {
	s := NewService(store)
	s.now = func() time.Time { return day("2024-01-11") }
	return s
}

func TestService_RecordCompletionPersists(t *testing.T) {
	store := newFakeStore()
	last := day("2024-01-10")
	store.stats["u1"] = UserStatistics{Streak: 3, LastCompletionDate: &last, MonthlyGoal: DefaultMonthlyGoal}

	svc := newTestService(store)
	stats, err := svc.RecordCompletion(context.Background(), "u1", record())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Streak)
	assert.Equal(t, stats, store.stats["u1"])
}

func TestService_RecordCompletionSaveFailureKeepsState(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")

	svc := newTestService(store)
	stats, err := svc.RecordCompletion(context.Background(), "u1", record())

	// The completion survives in memory even though the save failed.
	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, stats.Streak)
	assert.Len(t, stats.Completions, 1)
}

func TestService_SetMonthlyGoal(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	stats, err := svc.SetMonthlyGoal(context.Background(), "u1", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, stats.MonthlyGoal)
	assert.Equal(t, 50, store.stats["u1"].MonthlyGoal)

	_, err = svc.SetMonthlyGoal(context.Background(), "u1", 0)
	assert.Error(t, err)
}

func TestService_Reset(t *testing.T) {
	store := newFakeStore()
	last := day("2024-01-10")
	store.stats["u1"] = UserStatistics{
		Streak:             7,
		LastCompletionDate: &last,
		MonthlyGoal:        30,
		Completions:        []CompletionRecord{record()},
	}

	svc := newTestService(store)
	stats, err := svc.Reset(context.Background(), "u1")
	require.NoError(t, err)

	assert.Empty(t, stats.Completions)
	assert.Equal(t, 0, stats.Streak)
	assert.Equal(t, DefaultMonthlyGoal, stats.MonthlyGoal)
	assert.Equal(t, stats, store.stats["u1"])
}
