package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/WizCoderr/admin.ajastra/internal/login"
	"github.com/WizCoderr/admin.ajastra/internal/nav"
)

// NewLoginCmd creates the login command
func NewLoginCmd(app *App) *cobra.Command {
	var form login.Form

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the Ajastra admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), app, form)
		},
	}

	cmd.Flags().StringVar(&form.FullName, "name", "", "Full name (or set AJASTRA_FULLNAME)")
	cmd.Flags().StringVar(&form.PhoneNumber, "phone", "", "Phone number (or set AJASTRA_PHONE)")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address (or set AJASTRA_EMAIL)")
	cmd.Flags().StringVar(&form.Password, "password", "", "Password (or set AJASTRA_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, app *App, form login.Form) error {
	if err := app.Init(); err != nil {
		return err
	}

	// Environment variables are useful for CI/CD
	fillFromEnv(&form.FullName, "AJASTRA_FULLNAME")
	fillFromEnv(&form.PhoneNumber, "AJASTRA_PHONE")
	fillFromEnv(&form.Email, "AJASTRA_EMAIL")
	fillFromEnv(&form.Password, "AJASTRA_PASSWORD")

	if form.Password == "" {
		password, err := readPassword()
		if err != nil {
			return err
		}
		form.Password = password
	}

	fmt.Fprintf(app.Out, "Logging in to %s...\n", app.Client().BaseURL())

	flow := login.NewFlow(app.Client(), app.Store(), nav.NewHistory(nav.PathLogin), app.Logger)
	result, err := flow.Submit(ctx, form)
	if err != nil {
		return err
	}

	printSuccess(app.Out, "Login successful!")
	fmt.Fprintf(app.Out, "  User: %s (%s)\n", result.User.FullName, result.User.Email)
	if result.User.Role != "" {
		fmt.Fprintf(app.Out, "  Role: %s\n", result.User.Role)
	}
	return nil
}

func fillFromEnv(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

// readPassword prompts for a hidden password when stdin is a terminal
func readPassword() (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("password is required in non-interactive mode (use --password flag or AJASTRA_PASSWORD env var)")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}
