package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WizCoderr/admin.ajastra/internal/session"
)

func newStore(t *testing.T, token string) *session.Watched {
	t.Helper()
	store := session.Watch(session.NewMemoryStore())
	if token != "" {
		require.NoError(t, store.SetToken(token))
	}
	return store
}

// namedView records which view rendered
type namedView struct {
	name string
	log  *[]string
	fn   func() error
}

func (v namedView) Render(context.Context) error {
	*v.log = append(*v.log, v.name)
	if v.fn != nil {
		return v.fn()
	}
	return ErrQuit
}

func TestGate_InitialState(t *testing.T) {
	g := New(newStore(t, ""), zerolog.Nop())
	defer g.Close()
	assert.Equal(t, Unauthenticated, g.State())

	g2 := New(newStore(t, "t1"), zerolog.Nop())
	defer g2.Close()
	assert.Equal(t, Authenticated, g2.State())
}

func TestGate_SelectsView(t *testing.T) {
	var rendered []string
	admin := namedView{name: "admin", log: &rendered}
	login := namedView{name: "login", log: &rendered}

	g := New(newStore(t, ""), zerolog.Nop())
	defer g.Close()
	require.NoError(t, g.Run(context.Background(), admin, login))

	g2 := New(newStore(t, "abc"), zerolog.Nop())
	defer g2.Close()
	require.NoError(t, g2.Run(context.Background(), admin, login))

	assert.Equal(t, []string{"login", "admin"}, rendered)
}

func TestGate_FollowsStoreChanges(t *testing.T) {
	store := newStore(t, "")
	g := New(store, zerolog.Nop())
	defer g.Close()

	type transition struct{ from, to State }
	var seen []transition
	g.OnTransition(func(from, to State) { seen = append(seen, transition{from, to}) })

	require.NoError(t, store.SetToken("t1"))
	assert.Equal(t, Authenticated, g.State())

	// Role changes and token rotation do not transition
	require.NoError(t, store.SetRole("ADMIN"))
	require.NoError(t, store.SetToken("t2"))

	require.NoError(t, store.RemoveToken())
	assert.Equal(t, Unauthenticated, g.State())

	assert.Equal(t, []transition{
		{Unauthenticated, Authenticated},
		{Authenticated, Unauthenticated},
	}, seen)
}

func TestGate_LoginThenLogoutHandsOver(t *testing.T) {
	store := newStore(t, "")
	g := New(store, zerolog.Nop())
	defer g.Close()

	var rendered []string
	adminRenders := 0
	login := namedView{name: "login", log: &rendered, fn: func() error {
		return store.SetToken("fresh")
	}}
	admin := namedView{name: "admin", log: &rendered, fn: func() error {
		adminRenders++
		if adminRenders == 1 {
			return store.RemoveToken()
		}
		return ErrQuit
	}}

	require.NoError(t, g.Run(context.Background(), admin, login))
	assert.Equal(t, []string{"login", "admin", "login", "admin"}, rendered)
}

func TestGate_RunPropagatesErrors(t *testing.T) {
	g := New(newStore(t, ""), zerolog.Nop())
	defer g.Close()

	boom := errors.New("boom")
	err := g.Run(context.Background(), nil, ViewFunc(func(context.Context) error { return boom }))
	assert.ErrorIs(t, err, boom)
}

func TestGate_RunStopsOnCancelledContext(t *testing.T) {
	g := New(newStore(t, ""), zerolog.Nop())
	defer g.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Run(ctx, nil, ViewFunc(func(context.Context) error {
		t.Fatal("view must not render after cancellation")
		return nil
	}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGate_CloseStopsFollowing(t *testing.T) {
	store := newStore(t, "")
	g := New(store, zerolog.Nop())
	g.Close()
	g.Close()

	require.NoError(t, store.SetToken("t1"))
	assert.Equal(t, Unauthenticated, g.State(), "closed gate keeps its last evaluation")
	assert.Equal(t, Authenticated, g.Reevaluate())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
}
