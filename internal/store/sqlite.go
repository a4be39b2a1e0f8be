package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/llm"
	"github.com/yichen/tinyhabits/internal/progress"
	"github.com/yichen/tinyhabits/internal/quiz"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id              TEXT PRIMARY KEY,
	monthly_goal         INTEGER NOT NULL,
	streak               INTEGER NOT NULL,
	last_completion_date TEXT,
	preferred_topic      TEXT NOT NULL DEFAULT '',
	preferred_level      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS completions (
	id      TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	seq     INTEGER NOT NULL,
	date    TEXT NOT NULL,
	topic   TEXT NOT NULL,
	level   TEXT NOT NULL,
	kind    TEXT NOT NULL,
	correct INTEGER,
	total   INTEGER
);
CREATE INDEX IF NOT EXISTS idx_completions_user ON completions (user_id, seq);

CREATE TABLE IF NOT EXISTS llm_requests (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at    TEXT NOT NULL,
	provider      TEXT NOT NULL,
	model         TEXT NOT NULL,
	purpose       TEXT NOT NULL,
	credential    TEXT NOT NULL,
	input_tokens  INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	latency_ms    INTEGER NOT NULL,
	success       INTEGER NOT NULL,
	error_message TEXT NOT NULL
);
`

// SQLiteStore is the default single-user backend.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite database at dsn,
// applies pragmas and runs migration.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. TINYHABITS_DB environment variable
// 2. $XDG_DATA_HOME/tinyhabits/tinyhabits.db
// 3. ~/.local/share/tinyhabits/tinyhabits.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("TINYHABITS_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "tinyhabits", "tinyhabits.db")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) Statistics(ctx context.Context, userID string) (progress.UserStatistics, error) {
	stats := progress.NewUserStatistics()

	var lastDate sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT monthly_goal, streak, last_completion_date FROM profiles WHERE user_id = ?`,
		userID,
	).Scan(&stats.MonthlyGoal, &stats.Streak, &lastDate)
	switch {
	case err == sql.ErrNoRows:
		return stats, nil
	case err != nil:
		return progress.UserStatistics{}, fmt.Errorf("load profile: %w", err)
	}

	if lastDate.Valid {
		d, err := time.Parse(dateLayout, lastDate.String)
		if err != nil {
			return progress.UserStatistics{}, fmt.Errorf("parse last completion date: %w", err)
		}
		stats.LastCompletionDate = &d
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, topic, level, kind, correct, total
		 FROM completions WHERE user_id = ? ORDER BY seq`,
		userID,
	)
	if err != nil {
		return progress.UserStatistics{}, fmt.Errorf("load completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanCompletion(rows)
		if err != nil {
			return progress.UserStatistics{}, err
		}
		stats.Completions = append(stats.Completions, rec)
	}
	if err := rows.Err(); err != nil {
		return progress.UserStatistics{}, fmt.Errorf("load completions: %w", err)
	}
	return stats, nil
}

func scanCompletion(rows *sql.Rows) (progress.CompletionRecord, error) {
	var (
		rec            progress.CompletionRecord
		date           string
		level, kind    string
		correct, total sql.NullInt64
	)
	if err := rows.Scan(&rec.ID, &date, &rec.Topic, &level, &kind, &correct, &total); err != nil {
		return rec, fmt.Errorf("scan completion: %w", err)
	}

	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return rec, fmt.Errorf("parse completion date: %w", err)
	}
	rec.Date = d
	rec.Level = exercise.Level(level)
	rec.Kind = exercise.Kind(kind)
	if correct.Valid && total.Valid {
		rec.Score = &quiz.Score{Correct: int(correct.Int64), Total: int(total.Int64)}
	}
	return rec, nil
}

func (s *SQLiteStore) SaveStatistics(ctx context.Context, userID string, stats progress.UserStatistics) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var lastDate any
	if stats.LastCompletionDate != nil {
		lastDate = stats.LastCompletionDate.Format(dateLayout)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (user_id, monthly_goal, streak, last_completion_date)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			monthly_goal = excluded.monthly_goal,
			streak = excluded.streak,
			last_completion_date = excluded.last_completion_date`,
		userID, stats.MonthlyGoal, stats.Streak, lastDate,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	// History is small for a single user, so a full rewrite keeps the
	// store in lockstep with the in-memory state, including resets.
	if _, err := tx.ExecContext(ctx, `DELETE FROM completions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear completions: %w", err)
	}
	for i, rec := range stats.Completions {
		var correct, total any
		if rec.Score != nil {
			correct, total = rec.Score.Correct, rec.Score.Total
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO completions (id, user_id, seq, date, topic, level, kind, correct, total)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, userID, i, rec.Date.Format(dateLayout),
			rec.Topic, string(rec.Level), string(rec.Kind), correct, total,
		)
		if err != nil {
			return fmt.Errorf("save completion: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Preferences(ctx context.Context, userID string) (Preferences, error) {
	var topic, level string
	err := s.db.QueryRowContext(ctx,
		`SELECT preferred_topic, preferred_level FROM profiles WHERE user_id = ?`,
		userID,
	).Scan(&topic, &level)
	switch {
	case err == sql.ErrNoRows:
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

func (s *SQLiteStore) SavePreferences(ctx context.Context, userID string, prefs Preferences) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, monthly_goal, streak, preferred_topic, preferred_level)
		 VALUES (?, ?, 0, ?, ?)
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

func (s *SQLiteStore) AppendRequest(ctx context.Context, rec llm.RequestRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO llm_requests
			(created_at, provider, model, purpose, credential,
			 input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), rec.Provider, rec.Model, rec.Purpose,
		rec.Credential, rec.InputTokens, rec.OutputTokens, rec.LatencyMs,
		rec.Success, rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("append request: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Requests(ctx context.Context, limit int) ([]RequestEntry, error) {
	q := `SELECT id, created_at, provider, model, purpose, credential,
			input_tokens, output_tokens, latency_ms, success, error_message
		  FROM llm_requests ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var out []RequestEntry
	for rows.Next() {
		var (
			e       RequestEntry
			created string
		)
		err := rows.Scan(&e.ID, &created, &e.Provider, &e.Model, &e.Purpose,
			&e.Credential, &e.InputTokens, &e.OutputTokens, &e.LatencyMs,
			&e.Success, &e.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ Repository = (*SQLiteStore)(nil)
