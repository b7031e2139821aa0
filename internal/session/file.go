package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

const (
	configDirName   = "ajastra"
	sessionFileName = "session.json"
)

// FileStore persists the credential slots as a flat JSON object on disk.
// The file is re-read on every access so that a login performed by another
// process is visible to the next command.
type FileStore struct {
	path   string
	logger zerolog.Logger
	mu     sync.Mutex
}

// DefaultPath returns ~/.config/ajastra/session.json
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", configDirName, sessionFileName), nil
}

// NewFileStore creates a store backed by the file at path
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With().Str("component", "session.file").Logger(),
	}
}

// Path returns the backing file path
func (f *FileStore) Path() string {
	return f.path
}

// load reads the slot map; a missing file is an empty store
func (f *FileStore) load() (map[string]string, error) {
	slots := map[string]string{}

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return slots, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if len(data) == 0 {
		return slots, nil
	}

	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return slots, nil
}

func (f *FileStore) save(slots map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

func (f *FileStore) get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slots, err := f.load()
	if err != nil {
		f.logger.Warn().Err(err).Str("slot", key).Msg("Treating unreadable session slot as absent")
		return "", false
	}

	v, ok := slots[key]
	return v, ok
}

func (f *FileStore) update(fn func(slots map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slots, err := f.load()
	if err != nil {
		// Overwrite a corrupt file rather than blocking login/logout forever
		f.logger.Warn().Err(err).Msg("Discarding unreadable session file")
		slots = map[string]string{}
	}

	fn(slots)
	return f.save(slots)
}

func (f *FileStore) SetToken(token string) error {
	return f.update(func(slots map[string]string) { slots[TokenKey] = token })
}

func (f *FileStore) Token() (string, bool) {
	token, ok := f.get(TokenKey)
	return token, ok && token != ""
}

func (f *FileStore) RemoveToken() error {
	return f.update(func(slots map[string]string) { delete(slots, TokenKey) })
}

func (f *FileStore) SetRole(role string) error {
	return f.update(func(slots map[string]string) { slots[RoleKey] = role })
}

func (f *FileStore) Role() (string, bool) {
	return f.get(RoleKey)
}
