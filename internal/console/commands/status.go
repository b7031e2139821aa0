package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the API endpoint and local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(app)
		},
	}
}

// tokenClaims is what status shows from a session token
type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// decodeClaims reads the token's claims without verifying its signature.
// The result is only displayed; the server remains the authority.
func decodeClaims(token string) (*tokenClaims, bool) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

func runStatus(app *App) error {
	if err := app.Init(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "API\t%s\n", app.Client().BaseURL())
	fmt.Fprintf(w, "Session store\t%s\n", app.Config.Session.Backend)

	token, ok := app.Store().Token()
	if !ok {
		fmt.Fprintf(w, "Session\tnot logged in\n")
		w.Flush()
		return nil
	}

	fmt.Fprintf(w, "Session\tlogged in\n")
	if role, ok := app.Store().Role(); ok {
		fmt.Fprintf(w, "Role\t%s\n", role)
	}

	if claims, ok := decodeClaims(token); ok {
		if claims.Email != "" {
			fmt.Fprintf(w, "Email\t%s\n", claims.Email)
		}
		if claims.IssuedAt != nil {
			fmt.Fprintf(w, "Issued\t%s\n", claims.IssuedAt.Local().Format(time.RFC1123))
		}
		if claims.ExpiresAt != nil {
			expiry := claims.ExpiresAt.Local().Format(time.RFC1123)
			if claims.ExpiresAt.Before(time.Now()) {
				expiry += " (expired)"
			}
			fmt.Fprintf(w, "Expires\t%s\n", expiry)
		}
	} else {
		fmt.Fprintf(w, "Token\topaque\n")
	}

	return w.Flush()
}
