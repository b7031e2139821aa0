package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/WizCoderr/admin.ajastra/internal/api"
	"github.com/WizCoderr/admin.ajastra/internal/config"
	"github.com/WizCoderr/admin.ajastra/internal/session"
	"github.com/WizCoderr/admin.ajastra/internal/shell"
)

// ErrNotLoggedIn is returned by page commands when no token is stored
var ErrNotLoggedIn = errors.New("not logged in. Please run 'ajastra-admin login' first")

// App carries the configuration, credential store and API client shared by
// every command of one invocation
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Out    io.Writer
	Prompt Prompter

	store   *session.Watched
	client  *api.Client
	network http.RoundTripper
}

// NewApp creates the command environment. Nothing is opened until Init.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{
		Config: cfg,
		Logger: logger,
		Out:    os.Stdout,
		Prompt: NewTerminalPrompter(os.Stdin, os.Stdout),
	}
}

// WithStore uses repo instead of opening the configured session backend
func (a *App) WithStore(repo session.Repository) *App {
	if w, ok := repo.(*session.Watched); ok {
		a.store = w
	} else {
		a.store = session.Watch(repo)
	}
	return a
}

// WithTransport replaces the network transport of the API client
func (a *App) WithTransport(rt http.RoundTripper) *App {
	a.network = rt
	return a
}

// Init opens the session store and builds the API client. Calling it again
// is a no-op.
func (a *App) Init() error {
	if a.client != nil {
		return nil
	}

	if a.store == nil {
		repo, err := session.Open(a.Config.Session.Backend, a.Config.Session.Path, a.Logger)
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		a.store = session.Watch(repo)
	}

	opts := []api.Option{
		api.WithTimeout(a.Config.API.Timeout),
		api.WithLogger(a.Logger),
	}
	if a.network != nil {
		opts = append(opts, api.WithTransport(a.network))
	}
	a.client = api.New(a.Config.API.BaseURL, a.store, opts...)

	a.Logger.Debug().
		Str("api_base", a.client.BaseURL()).
		Str("session_backend", a.Config.Session.Backend).
		Msg("Console initialized")
	return nil
}

// Store returns the observable credential store
func (a *App) Store() *session.Watched {
	return a.store
}

// Client returns the shared API client
func (a *App) Client() *api.Client {
	return a.client
}

func (a *App) pages() *shell.Pages {
	return shell.NewPages(a.client)
}

// requireSession fails fast when there is no stored token. Requests are
// never sent without one from page commands.
func (a *App) requireSession() error {
	if err := a.Init(); err != nil {
		return err
	}
	if _, ok := a.store.Token(); !ok {
		return ErrNotLoggedIn
	}
	return nil
}
