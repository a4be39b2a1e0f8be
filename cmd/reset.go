package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yichen/tinyhabits/internal/account"
	"github.com/yichen/tinyhabits/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all practice history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Print("Erase ALL progress? This cannot be undone. [y/N]: ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			answer := strings.ToLower(strings.TrimSpace(line))
			if answer != "y" && answer != "yes" {
				fmt.Println("Reset cancelled.")
				return nil
			}
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

		if _, err := progress.NewService(repo).Reset(ctx, userID); err != nil {
			return err
		}
		fmt.Println("All progress erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
