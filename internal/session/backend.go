package session

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Backend names accepted by Open
const (
	BackendFile    = "file"
	BackendKeyring = "keyring"
	BackendMemory  = "memory"
)

// Open builds the repository for the named backend. path is only used by the
// file backend; an empty path selects DefaultPath.
func Open(backend, path string, logger zerolog.Logger) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		if path == "" {
			p, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewFileStore(path, logger), nil
	case BackendKeyring:
		return NewKeyringStore(logger), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend '%s', must be one of: file, keyring, memory", backend)
	}
}
