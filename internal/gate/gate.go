// Package gate decides whether the console shows the authenticated admin
// shell or the login flow.
//
// The gate has exactly two states, derived from the presence of a token in
// the credential store. It subscribes to the store, so a login or logout
// performed by any view is reflected on the next selection without a restart.
// Server responses never move the gate: a rejected request leaves the state
// untouched.
package gate

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/WizCoderr/admin.ajastra/internal/session"
)

// State is the authentication state of the console
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ErrQuit is returned by a view to stop the gate's render loop
var ErrQuit = errors.New("quit")

// View is one of the two top-level screens
type View interface {
	Render(ctx context.Context) error
}

// ViewFunc adapts a function to View
type ViewFunc func(ctx context.Context) error

func (f ViewFunc) Render(ctx context.Context) error { return f(ctx) }

// Gate is the two-state session machine
type Gate struct {
	store  *session.Watched
	logger zerolog.Logger

	mu        sync.Mutex
	state     State
	listeners []func(from, to State)
	stop      func()
}

// New evaluates the store once and starts following its changes
func New(store *session.Watched, logger zerolog.Logger) *Gate {
	g := &Gate{
		store:  store,
		logger: logger.With().Str("component", "gate").Logger(),
	}
	g.state = evaluate(store)
	g.stop = store.Subscribe(g.onChange)

	g.logger.Debug().Stringer("state", g.state).Msg("Session gate initialised")
	return g
}

func evaluate(src session.TokenSource) State {
	if _, ok := src.Token(); ok {
		return Authenticated
	}
	return Unauthenticated
}

// State returns the current state
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// OnTransition registers fn to run after every state change
func (g *Gate) OnTransition(fn func(from, to State)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// Reevaluate re-reads the store and applies any resulting transition
func (g *Gate) Reevaluate() State {
	next := evaluate(g.store)

	g.mu.Lock()
	prev := g.state
	g.state = next
	listeners := append([]func(from, to State){}, g.listeners...)
	g.mu.Unlock()

	if prev != next {
		g.logger.Info().Stringer("from", prev).Stringer("to", next).Msg("Session state changed")
		for _, fn := range listeners {
			fn(prev, next)
		}
	}

	return next
}

func (g *Gate) onChange(c session.Change) {
	// Only the token slot drives the gate
	if c.Slot != session.TokenKey {
		return
	}
	g.Reevaluate()
}

// Select returns the view for the current state
func (g *Gate) Select(authenticated, unauthenticated View) View {
	if g.State() == Authenticated {
		return authenticated
	}
	return unauthenticated
}

// Run renders the view for the current state until a view returns ErrQuit,
// another error, or ctx is done. After each render the state is read again,
// so a view that logs in or out hands over to the other view.
func (g *Gate) Run(ctx context.Context, authenticated, unauthenticated View) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		view := g.Select(authenticated, unauthenticated)
		if err := view.Render(ctx); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// Close stops following the store
func (g *Gate) Close() {
	g.mu.Lock()
	stop := g.stop
	g.stop = nil
	g.mu.Unlock()

	if stop != nil {
		stop()
	}
}
