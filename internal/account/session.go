package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SessionPath resolves the session file location:
// 1. TINYHABITS_SESSION environment variable
// 2. $XDG_STATE_HOME/tinyhabits/session.json
// 3. ~/.local/state/tinyhabits/session.json
func SessionPath() (string, error) {
	if p := os.Getenv("TINYHABITS_SESSION"); p != "" {
		return p, nil
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "tinyhabits", "session.json"), nil
}

// LoadSession reads the saved session. A missing file returns (nil, nil).
func LoadSession() (*Session, error) {
	path, err := SessionPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if sess.UserID == "" {
		return nil, fmt.Errorf("session file missing user id")
	}
	return &sess, nil
}

// SaveSession writes the session file with owner-only permissions, since
// it holds live tokens.
func SaveSession(sess *Session) error {
	path, err := SessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// ClearSession removes the session file. Clearing an absent session is
// not an error.
func ClearSession() error {
	path, err := SessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// CurrentUserID returns the identity statistics are keyed by: the
// signed-in user when a session exists, otherwise a locally generated
// ID persisted next to the session file.
func CurrentUserID() (string, error) {
	sess, err := LoadSession()
	if err != nil {
		return "", err
	}
	if sess != nil {
		return sess.UserID, nil
	}
	return localUserID()
}

// localUserID loads or mints the anonymous local identity.
func localUserID() (string, error) {
	path, err := SessionPath()
	if err != nil {
		return "", err
	}
	idPath := filepath.Join(filepath.Dir(path), "local-user")

	data, err := os.ReadFile(idPath)
	if err == nil && len(data) > 0 {
		return string(data), nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read local user id: %w", err)
	}

	id := "local-" + uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(idPath), 0o755); err != nil {
		return "", fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(idPath, []byte(id), 0o644); err != nil {
		return "", fmt.Errorf("write local user id: %w", err)
	}
	return id, nil
}
