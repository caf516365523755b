package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/storekit/storeadm/internal/validator"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the catalog API",
		Long:  `Authenticate with email and password. The returned token pair is stored and attached to every subsequent request.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when omitted)")
	return cmd
}

func runLogin(email string) error {
	a := newApp()

	// One-shot banner: shown exactly once after a forced logout.
	if a.session.ConsumeUnauthorizedFlag() {
		color.Yellow("Your session was no longer authorized and you were logged out. Please log in again.")
	}

	reader := bufio.NewReader(os.Stdin)
	if email == "" {
		fmt.Print("Email: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		email = strings.TrimSpace(input)
	}

	password, err := readPassword(reader)
	if err != nil {
		return err
	}

	if err := validator.ValidateLogin(email, password); err != nil {
		return err
	}

	pair, err := a.client.Login(cmdContext(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if pair.AccessToken == "" {
		return fmt.Errorf("login failed: server returned no access token")
	}

	if err := a.session.StoreTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		return err
	}

	user, err := a.client.Profile(cmdContext())
	if err != nil {
		// Token is stored; the greeting is best-effort.
		fmt.Println("Logged in.")
		return nil
	}
	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

// readPassword reads the password without echo when stdin is a terminal.
func readPassword(reader *bufio.Reader) (string, error) {
	fmt.Print("Password: ")
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(input, "\r\n"), nil
}
