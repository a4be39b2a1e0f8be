package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yichen/tinyhabits/internal/account"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of the current account",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := account.LoadSession()
		if err != nil {
			return err
		}
		if sess == nil {
			fmt.Println("Not signed in.")
			return nil
		}

		// Token revocation is best effort; the local session goes away
		// either way.
		if client := account.ClientFromEnv(); client != nil {
			if err := client.SignOut(cmd.Context(), sess); err != nil {
				fmt.Fprintln(os.Stderr, "Warning: server sign-out failed:", err)
			}
		}

		if err := account.ClearSession(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}
