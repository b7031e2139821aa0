package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

// repositories returns one fresh instance of every backend
func repositories(t *testing.T) map[string]Repository {
	t.Helper()

	keyring.MockInit()

	return map[string]Repository{
		"memory":  NewMemoryStore(),
		"file":    NewFileStore(filepath.Join(t.TempDir(), "session.json"), zerolog.Nop()),
		"keyring": NewKeyringStore(zerolog.Nop()),
		"watched": Watch(NewMemoryStore()),
	}
}

func TestRepository_TokenLifecycle(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := repo.Token()
			assert.False(t, ok, "fresh store should have no token")

			require.NoError(t, repo.SetToken("t1"))
			token, ok := repo.Token()
			require.True(t, ok)
			assert.Equal(t, "t1", token)

			// Repeated reads keep returning the same value
			token, _ = repo.Token()
			assert.Equal(t, "t1", token)

			require.NoError(t, repo.SetToken("t2"))
			token, _ = repo.Token()
			assert.Equal(t, "t2", token)

			require.NoError(t, repo.RemoveToken())
			token, ok = repo.Token()
			assert.False(t, ok)
			assert.Empty(t, token)

			// Removing twice is fine
			require.NoError(t, repo.RemoveToken())
		})
	}
}

func TestRepository_RoleIndependentOfToken(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.SetToken("t1"))
			require.NoError(t, repo.SetRole(RoleAdmin))

			role, ok := repo.Role()
			require.True(t, ok)
			assert.Equal(t, "ADMIN", role)

			// Role survives token removal
			require.NoError(t, repo.RemoveToken())
			role, ok = repo.Role()
			assert.True(t, ok)
			assert.Equal(t, "ADMIN", role)

			// Token without role is not guarded against
			require.NoError(t, repo.SetRole("anything"))
			role, _ = repo.Role()
			assert.Equal(t, "anything", role)
		})
	}
}

func TestRepository_EmptyTokenIsAbsent(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.SetToken(""))
			_, ok := repo.Token()
			assert.False(t, ok)
		})
	}
}

func TestCredentialScenario(t *testing.T) {
	repo := NewMemoryStore()

	require.NoError(t, repo.SetToken("t1"))
	require.NoError(t, repo.SetRole("ADMIN"))

	cred := Load(repo)
	assert.Equal(t, Credential{Token: "t1", Role: "ADMIN"}, cred)
	assert.True(t, cred.Authenticated())

	require.NoError(t, repo.RemoveToken())
	cred = Load(repo)
	assert.False(t, cred.Authenticated())
	assert.Equal(t, "ADMIN", cred.Role)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	first := NewFileStore(path, zerolog.Nop())
	require.NoError(t, first.SetToken("abc"))
	require.NoError(t, first.SetRole(RoleUser))

	second := NewFileStore(path, zerolog.Nop())
	token, ok := second.Token()
	require.True(t, ok)
	assert.Equal(t, "abc", token)
	role, _ := second.Role()
	assert.Equal(t, "USER", role)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := NewFileStore(path, zerolog.Nop())

	_, ok := store.Token()
	assert.False(t, ok, "unreadable file should read as absent")

	// A write replaces the corrupt content
	require.NoError(t, store.SetToken("fresh"))
	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "fresh", token)
}

func TestWatched_PublishesMutations(t *testing.T) {
	w := Watch(NewMemoryStore())

	var changes []Change
	unsubscribe := w.Subscribe(func(c Change) {
		changes = append(changes, c)
	})

	require.NoError(t, w.SetToken("t1"))
	require.NoError(t, w.SetRole("ADMIN"))
	require.NoError(t, w.RemoveToken())

	assert.Equal(t, []Change{
		{Slot: TokenKey, Present: true},
		{Slot: RoleKey, Present: true},
		{Slot: TokenKey, Present: false},
	}, changes)

	unsubscribe()
	unsubscribe()
	require.NoError(t, w.SetToken("t2"))
	assert.Len(t, changes, 3, "no events after unsubscribe")
}

type failingRepo struct {
	*MemoryStore
}

func (failingRepo) SetToken(string) error { return os.ErrPermission }

func TestWatched_NoEventOnFailedWrite(t *testing.T) {
	w := Watch(failingRepo{NewMemoryStore()})

	called := false
	w.Subscribe(func(Change) { called = true })

	err := w.SetToken("t1")
	require.ErrorIs(t, err, os.ErrPermission)
	assert.False(t, called)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")

	repo, err := Open("file", path, zerolog.Nop())
	require.NoError(t, err)
	fs, ok := repo.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, path, fs.Path())

	repo, err = Open("MEMORY", "", zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, repo)

	repo, err = Open("keyring", "", zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &KeyringStore{}, repo)

	_, err = Open("redis", "", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session backend")
}
