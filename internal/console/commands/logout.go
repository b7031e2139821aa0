package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/WizCoderr/admin.ajastra/internal/nav"
	"github.com/WizCoderr/admin.ajastra/internal/shell"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the admin session",
		Long: `End the admin session on the server and remove the local token.

If the server does not confirm the logout, the local token is kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.Context(), app)
		},
	}
}

func runLogout(ctx context.Context, app *App) error {
	if err := app.requireSession(); err != nil {
		return err
	}

	admin := shell.New(app.Client(), app.Store(), nav.NewHistory(nav.PathDashboard), app.Logger)
	msg, err := admin.Logout(ctx)
	if err != nil {
		return err
	}

	if msg == "" {
		msg = "Logged out"
	}
	printSuccess(app.Out, "%s", msg)
	return nil
}
