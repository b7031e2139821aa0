package shell

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/WizCoderr/admin.ajastra/internal/nav"
	"github.com/WizCoderr/admin.ajastra/internal/session"
)

// LogoutClient is the server side of logout
type LogoutClient interface {
	Logout(ctx context.Context) (string, error)
}

// Shell is the authenticated admin layout
type Shell struct {
	api    LogoutClient
	store  session.Repository
	nav    nav.Navigator
	logger zerolog.Logger
}

// New creates the admin shell
func New(api LogoutClient, store session.Repository, navigator nav.Navigator, logger zerolog.Logger) *Shell {
	return &Shell{
		api:    api,
		store:  store,
		nav:    navigator,
		logger: logger.With().Str("component", "shell").Logger(),
	}
}

// Logout ends the server session and, only if that succeeds, removes the
// local token and navigates to the login route. When the server call fails
// the token is left in place and the error is returned for display; the
// server session may or may not have ended. Nothing is retried.
func (s *Shell) Logout(ctx context.Context) (string, error) {
	msg, err := s.api.Logout(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Server logout failed, keeping local session")
		return "", fmt.Errorf("logout failed: %w", err)
	}

	if err := s.store.RemoveToken(); err != nil {
		return msg, fmt.Errorf("failed to clear session token: %w", err)
	}

	s.logger.Info().Msg("Logged out")
	s.nav.Navigate(nav.PathLogin)
	return msg, nil
}

// Role returns the stored role label for display. It is not used to
// restrict navigation.
func (s *Shell) Role() string {
	role, _ := s.store.Role()
	return role
}

// Navigate moves the shell to path
func (s *Shell) Navigate(path string) {
	s.nav.Navigate(path)
}
