package session

import "sync"

// MemoryStore keeps the credential slots in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]string)}
}

func (m *MemoryStore) get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	return v, ok
}

func (m *MemoryStore) set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
}

func (m *MemoryStore) SetToken(token string) error {
	m.set(TokenKey, token)
	return nil
}

func (m *MemoryStore) Token() (string, bool) {
	token, ok := m.get(TokenKey)
	return token, ok && token != ""
}

func (m *MemoryStore) RemoveToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, TokenKey)
	return nil
}

func (m *MemoryStore) SetRole(role string) error {
	m.set(RoleKey, role)
	return nil
}

func (m *MemoryStore) Role() (string, bool) {
	return m.get(RoleKey)
}
