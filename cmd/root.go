package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yichen/tinyhabits/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tinyhabits",
	Short: "Tiny daily English practice in the terminal",
	Long:  "Tiny English Habits keeps an English routine alive with short AI-written reading and listening exercises, a daily streak and a monthly goal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TINYHABITS_DB env var)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// openRepository opens the persistence backend. The --db flag pins a
// SQLite file and wins over the environment-selected backend.
func openRepository(ctx context.Context, cmd *cobra.Command) (store.Repository, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return store.OpenSQLite(p)
	}
	return store.Open(ctx)
}
