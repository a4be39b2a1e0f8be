package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yichen/tinyhabits/internal/account"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to keep progress across machines",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := account.ClientFromEnv()
		if client == nil {
			return fmt.Errorf("no account service configured: set TINYHABITS_AUTH_URL")
		}

		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			var err error
			email, err = promptLine("Email: ")
			if err != nil {
				return err
			}
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		signup, _ := cmd.Flags().GetBool("signup")

		var sess *account.Session
		if signup {
			sess, err = client.SignUp(ctx, email, password)
		} else {
			sess, err = client.SignIn(ctx, email, password)
		}
		if err != nil {
			return err
		}

		if err := account.SaveSession(sess); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		who := sess.Email
		if who == "" {
			who = email
		}
		fmt.Println("Signed in as", who)
		return nil
	},
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal.
func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(label)
	}
	fmt.Print(label)
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().Bool("signup", false, "Create a new account instead of signing in")
}
