package login

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WizCoderr/admin.ajastra/internal/api"
	"github.com/WizCoderr/admin.ajastra/internal/nav"
	"github.com/WizCoderr/admin.ajastra/internal/session"
)

func validForm() Form {
	return Form{
		FullName:    "Asha Admin",
		PhoneNumber: "9876543210",
		Email:       "asha@example.com",
		Password:    "secret",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Form)
		wantMsg string
	}{
		{name: "valid", mutate: func(*Form) {}},
		{name: "missing name", mutate: func(f *Form) { f.FullName = "" }, wantMsg: MsgRequired},
		{name: "missing password", mutate: func(f *Form) { f.Password = "" }, wantMsg: MsgRequired},
		{name: "bad email", mutate: func(f *Form) { f.Email = "asha.example.com" }, wantMsg: MsgInvalidEmail},
		{name: "short phone", mutate: func(f *Form) { f.PhoneNumber = "12345" }, wantMsg: MsgInvalidPhone},
		{
			name:    "required wins over format",
			mutate:  func(f *Form) { f.Email = "nope"; f.Password = "" },
			wantMsg: MsgRequired,
		},
		{
			name:    "email checked before phone",
			mutate:  func(f *Form) { f.Email = "nope"; f.PhoneNumber = "1" },
			wantMsg: MsgInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := Validate(form)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidForm)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

// mockRegistrar simulates the register endpoint
type mockRegistrar struct {
	result *api.AuthResult
	err    error
	got    api.RegisterRequest
	calls  int
}

func (m *mockRegistrar) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResult, error) {
	m.calls++
	m.got = req
	return m.result, m.err
}

func TestSubmit_StoresCredentials(t *testing.T) {
	store := session.NewMemoryStore()
	history := nav.NewHistory(nav.PathLogin)
	registrar := &mockRegistrar{result: &api.AuthResult{
		Token: "tok-1",
		User:  api.User{Email: "asha@example.com", Role: session.RoleAdmin},
	}}

	form := validForm()
	form.Email = "  asha@example.com "
	result, err := NewFlow(registrar, store, history, zerolog.Nop()).Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", result.Token)

	assert.Equal(t, "asha@example.com", registrar.got.Email)
	assert.Equal(t, "9876543210", registrar.got.PhoneNumber)

	cred := session.Load(store)
	assert.Equal(t, session.Credential{Token: "tok-1", Role: "ADMIN"}, cred)
	assert.Equal(t, nav.PathDashboard, history.Current())
}

func TestSubmit_InvalidFormSkipsServer(t *testing.T) {
	store := session.NewMemoryStore()
	registrar := &mockRegistrar{}

	form := validForm()
	form.PhoneNumber = "123"
	_, err := NewFlow(registrar, store, nav.NewHistory(nav.PathLogin), zerolog.Nop()).Submit(context.Background(), form)

	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, "PhoneNumber", formErr.Field)
	assert.Equal(t, 0, registrar.calls)
	assert.False(t, session.Load(store).Authenticated())
}

func TestSubmit_ServerFailureStoresNothing(t *testing.T) {
	store := session.NewMemoryStore()
	history := nav.NewHistory(nav.PathLogin)
	registrar := &mockRegistrar{err: &api.Error{StatusCode: 401, Message: "Invalid credentials"}}

	_, err := NewFlow(registrar, store, history, zerolog.Nop()).Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Invalid credentials")

	assert.Equal(t, session.Credential{}, session.Load(store))
	assert.Equal(t, nav.PathLogin, history.Current())
}

// failingRoleStore rejects role writes
type failingRoleStore struct {
	*session.MemoryStore
}

func (s failingRoleStore) SetRole(string) error {
	return errors.New("disk full")
}

func TestSubmit_RoleWriteFailureRollsBackToken(t *testing.T) {
	store := failingRoleStore{session.NewMemoryStore()}
	registrar := &mockRegistrar{result: &api.AuthResult{Token: "tok-1", User: api.User{Role: "ADMIN"}}}

	_, err := NewFlow(registrar, store, nav.NewHistory(nav.PathLogin), zerolog.Nop()).Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save session role")

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestSubmit_GateSeesLogin(t *testing.T) {
	store := session.Watch(session.NewMemoryStore())
	var slots []string
	store.Subscribe(func(c session.Change) {
		if c.Present {
			slots = append(slots, c.Slot)
		}
	})

	registrar := &mockRegistrar{result: &api.AuthResult{Token: "tok-1", User: api.User{Role: "USER"}}}
	_, err := NewFlow(registrar, store, nav.NewHistory(nav.PathLogin), zerolog.Nop()).Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, []string{session.TokenKey, session.RoleKey}, slots)
}
