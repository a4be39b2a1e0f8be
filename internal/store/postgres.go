package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/llm"
	"github.com/yichen/tinyhabits/internal/progress"
	"github.com/yichen/tinyhabits/internal/quiz"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id              TEXT PRIMARY KEY,
	monthly_goal         INTEGER NOT NULL,
	streak               INTEGER NOT NULL,
	last_completion_date DATE,
	preferred_topic      TEXT NOT NULL DEFAULT '',
	preferred_level      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS completions (
	id      TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	seq     INTEGER NOT NULL,
	date    DATE NOT NULL,
	topic   TEXT NOT NULL,
	level   TEXT NOT NULL,
	kind    TEXT NOT NULL,
	correct INTEGER,
	total   INTEGER
);
CREATE INDEX IF NOT EXISTS idx_completions_user ON completions (user_id, seq);

CREATE TABLE IF NOT EXISTS llm_requests (
	id            BIGSERIAL PRIMARY KEY,
	created_at    TIMESTAMPTZ NOT NULL,
	provider      TEXT NOT NULL,
	model         TEXT NOT NULL,
	purpose       TEXT NOT NULL,
	credential    TEXT NOT NULL,
	input_tokens  INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	latency_ms    BIGINT NOT NULL,
	success       BOOLEAN NOT NULL,
	error_message TEXT NOT NULL
);
`

// PostgresStore backs multi-user deployments sharing one database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to the database at dsn and runs migration.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Statistics(ctx context.Context, userID string) (progress.UserStatistics, error) {
	stats := progress.NewUserStatistics()

	var lastDate *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT monthly_goal, streak, last_completion_date FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&stats.MonthlyGoal, &stats.Streak, &lastDate)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return stats, nil
	case err != nil:
		return progress.UserStatistics{}, fmt.Errorf("load profile: %w", err)
	}
	stats.LastCompletionDate = lastDate

	rows, err := s.pool.Query(ctx,
		`SELECT id, date, topic, level, kind, correct, total
		 FROM completions WHERE user_id = $1 ORDER BY seq`,
		userID,
	)
	if err != nil {
		return progress.UserStatistics{}, fmt.Errorf("load completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec            progress.CompletionRecord
			level, kind    string
			correct, total *int
		)
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.Topic, &level, &kind, &correct, &total); err != nil {
			return progress.UserStatistics{}, fmt.Errorf("scan completion: %w", err)
		}
		rec.Level = exercise.Level(level)
		rec.Kind = exercise.Kind(kind)
		if correct != nil && total != nil {
			rec.Score = &quiz.Score{Correct: *correct, Total: *total}
		}
		stats.Completions = append(stats.Completions, rec)
	}
	if err := rows.Err(); err != nil {
		return progress.UserStatistics{}, fmt.Errorf("load completions: %w", err)
	}
	return stats, nil
}

func (s *PostgresStore) SaveStatistics(ctx context.Context, userID string, stats progress.UserStatistics) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (user_id, monthly_goal, streak, last_completion_date)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
			monthly_goal = excluded.monthly_goal,
			streak = excluded.streak,
			last_completion_date = excluded.last_completion_date`,
		userID, stats.MonthlyGoal, stats.Streak, stats.LastCompletionDate,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM completions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear completions: %w", err)
	}
	for i, rec := range stats.Completions {
		var correct, total *int
		if rec.Score != nil {
			correct, total = &rec.Score.Correct, &rec.Score.Total
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO completions (id, user_id, seq, date, topic, level, kind, correct, total)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			rec.ID, userID, i, rec.Date, rec.Topic, string(rec.Level), string(rec.Kind), correct, total,
		)
		if err != nil {
			return fmt.Errorf("save completion: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) Preferences(ctx context.Context, userID string) (Preferences, error) {
	var topic, level string
	err := s.pool.QueryRow(ctx,
		`SELECT preferred_topic, preferred_level FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&topic, &level)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return DefaultPreferences(), nil
	case err != nil:
		return Preferences{}, fmt.Errorf("load preferences: %w", err)
	}

	prefs := DefaultPreferences()
	if topic != "" {
		prefs.Topic = topic
	}
	if l := exercise.Level(level); l.Valid() {
		prefs.Level = l
	}
	return prefs, nil
}

func (s *PostgresStore) SavePreferences(ctx context.Context, userID string, prefs Preferences) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, monthly_goal, streak, preferred_topic, preferred_level)
		 VALUES ($1, $2, 0, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
			preferred_topic = excluded.preferred_topic,
			preferred_level = excluded.preferred_level`,
		userID, progress.DefaultMonthlyGoal, prefs.Topic, string(prefs.Level),
	)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (s *PostgresStore) AppendRequest(ctx context.Context, rec llm.RequestRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO llm_requests
			(created_at, provider, model, purpose, credential,
			 input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		time.Now().UTC(), rec.Provider, rec.Model, rec.Purpose, rec.Credential,
		rec.InputTokens, rec.OutputTokens, rec.LatencyMs, rec.Success, rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("append request: %w", err)
	}
	return nil
}

func (s *PostgresStore) Requests(ctx context.Context, limit int) ([]RequestEntry, error) {
	q := `SELECT id, created_at, provider, model, purpose, credential,
			input_tokens, output_tokens, latency_ms, success, error_message
		  FROM llm_requests ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var out []RequestEntry
	for rows.Next() {
		var e RequestEntry
		err := rows.Scan(&e.ID, &e.CreatedAt, &e.Provider, &e.Model, &e.Purpose,
			&e.Credential, &e.InputTokens, &e.OutputTokens, &e.LatencyMs,
			&e.Success, &e.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ Repository = (*PostgresStore)(nil)
