package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yichen/tinyhabits/internal/account"
	"github.com/yichen/tinyhabits/internal/exercise"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		stats, err := repo.Statistics(ctx, userID)
		if err != nil {
			return fmt.Errorf("load statistics: %w", err)
		}

		now := time.Now()
		bold := color.New(color.Bold)

		bold.Println("Tiny English Habits")
		fmt.Println()
		fmt.Printf("Streak        %s\n", color.GreenString("%d day(s)", stats.Streak))
		fmt.Printf("Today         %d\n", stats.TodayCount(now))
		fmt.Printf("This month    %d of %d (%.1f%%)\n",
			stats.MonthCount(now), stats.MonthlyGoal, stats.GoalProgress(now))
		fmt.Printf("All time      %d\n", stats.TotalCount())
		fmt.Printf("Accuracy      %.1f%%\n", stats.OverallAccuracy())

		recent := stats.RecentCompletions(5)
		if len(recent) == 0 {
			fmt.Println()
			fmt.Println("No rounds yet. Run 'tinyhabits' to start practicing.")
			return nil
		}

		fmt.Println()
		bold.Println("Recent rounds")
		for _, rec := range recent {
			kind := "Reading"
			if rec.Kind == exercise.KindAudio {
				kind = "Listening"
			}
			scoreStr := "-"
			if rec.Score != nil {
				scoreStr = fmt.Sprintf("%d/%d", rec.Score.Correct, rec.Score.Total)
			}
			fmt.Printf("%s  %-9s  %-20s  %-10s  %s\n",
				rec.Date.Format("2006-01-02"), kind, rec.Topic, rec.Level, scoreStr)
		}
		return nil
	},
}
