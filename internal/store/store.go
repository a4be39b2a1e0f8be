// Package store persists user profiles, completion history and the
// generation request log. Three backends share one Repository interface:
// SQLite for the default local install, Postgres for a shared server,
// and an in-memory store for tests and ephemeral runs.
package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/llm"
	"github.com/yichen/tinyhabits/internal/progress"
)

// Preferences are the sticky practice settings restored on startup.
type Preferences struct {
	Topic string
	Level exercise.Level
}

// DefaultPreferences returns the settings applied to profiles the store
// has no row for.
func DefaultPreferences() Preferences {
	return Preferences{Topic: exercise.DefaultTopic, Level: exercise.DefaultLevel}
}

// RequestEntry is one row of the generation request log.
type RequestEntry struct {
	ID        int64
	CreatedAt time.Time
	llm.RequestRecord
}

// Repository is the persistence surface the application depends on.
// Statistics and Preferences return defaults, not errors, when the user
// has no row yet. Implementations also satisfy llm.RequestLogger and
// progress.Store.
type Repository interface {
	Statistics(ctx context.Context, userID string) (progress.UserStatistics, error)
	SaveStatistics(ctx context.Context, userID string, stats progress.UserStatistics) error

	Preferences(ctx context.Context, userID string) (Preferences, error)
	SavePreferences(ctx context.Context, userID string, prefs Preferences) error

	AppendRequest(ctx context.Context, rec llm.RequestRecord) error
	Requests(ctx context.Context, limit int) ([]RequestEntry, error)

	Close() error
}

var (
	_ llm.RequestLogger = (Repository)(nil)
	_ progress.Store    = (Repository)(nil)
)

// Open picks a backend from the environment: TINYHABITS_POSTGRES_DSN
// selects Postgres, otherwise the local SQLite file is used.
func Open(ctx context.Context) (Repository, error) {
	if dsn := os.Getenv("TINYHABITS_POSTGRES_DSN"); dsn != "" {
		return OpenPostgres(ctx, dsn)
	}

	path, err := DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	return OpenSQLite(path)
}
