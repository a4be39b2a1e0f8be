package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yichen/tinyhabits/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("tinyhabits", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		checker := selfupdate.NewChecker()
		result, err := checker.Check(cmd.Context(), &selfupdate.CheckInput{Version: version})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if result.UpdateAvailable {
			fmt.Printf("Update available: %s (run 'tinyhabits update')\n", result.LatestVersion)
			if result.ReleaseURL != "" {
				fmt.Println(result.ReleaseURL)
			}
		} else {
			fmt.Println("You are up to date.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check for a newer release")
}
