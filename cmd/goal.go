package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yichen/tinyhabits/internal/account"
	"github.com/yichen/tinyhabits/internal/progress"
)

var goalCmd = &cobra.Command{
	Use:   "goal <count>",
	Short: "Set the monthly exercise goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal %q: %w", args[0], err)
		}

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

		svc := progress.NewService(repo)
		stats, err := svc.SetMonthlyGoal(ctx, userID, goal)
		if err != nil {
			return err
		}
		fmt.Printf("Monthly goal set to %d exercises.\n", stats.MonthlyGoal)
		return nil
	},
}
