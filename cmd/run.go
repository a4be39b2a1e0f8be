package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yichen/tinyhabits/internal/account"
	"github.com/yichen/tinyhabits/internal/app"
	"github.com/yichen/tinyhabits/internal/exercise"
	"github.com/yichen/tinyhabits/internal/llm"
	"github.com/yichen/tinyhabits/internal/progress"
	"github.com/yichen/tinyhabits/internal/tts"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	repo, err := openRepository(ctx, cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer repo.Close()

	userID, err := account.CurrentUserID()
	if err != nil {
		return fmt.Errorf("resolve user identity: %w", err)
	}
	email := ""
	if sess, err := account.LoadSession(); err == nil && sess != nil {
		email = sess.Email
	}

	// The provider is optional; without keys the generator serves the
	// built-in sample exercises.
	provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), repo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Practice will use built-in sample exercises.")
		provider = nil
	} else if provider == nil {
		fmt.Fprintln(os.Stderr, "No API keys found. Practice will use built-in sample exercises.")
	}

	return app.Run(app.Options{
		Generator: exercise.New(provider, exercise.DefaultConfig()),
		Service:   progress.NewService(repo),
		Repo:      repo,
		Speech:    tts.FromEnv(),
		UserID:    userID,
		Email:     email,
		Version:   version,
	})
}
