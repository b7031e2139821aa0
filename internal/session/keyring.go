package session

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/zalando/go-keyring"
)

const keyringService = "ajastra-admin"

// KeyringStore keeps the credential slots in the OS keychain/credential manager
type KeyringStore struct {
	service string
	logger  zerolog.Logger
}

// NewKeyringStore creates a keyring-backed store
func NewKeyringStore(logger zerolog.Logger) *KeyringStore {
	return &KeyringStore{
		service: keyringService,
		logger:  logger.With().Str("component", "session.keyring").Logger(),
	}
}

func (k *KeyringStore) get(key string) (string, bool) {
	value, err := keyring.Get(k.service, key)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			k.logger.Warn().Err(err).Str("slot", key).Msg("Treating unreadable keyring slot as absent")
		}
		return "", false
	}
	return value, true
}

func (k *KeyringStore) set(key, value string) error {
	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (k *KeyringStore) SetToken(token string) error {
	return k.set(TokenKey, token)
}

func (k *KeyringStore) Token() (string, bool) {
	token, ok := k.get(TokenKey)
	return token, ok && token != ""
}

// RemoveToken deletes the token; deleting an absent token is not an error
func (k *KeyringStore) RemoveToken() error {
	if err := keyring.Delete(k.service, TokenKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

func (k *KeyringStore) SetRole(role string) error {
	return k.set(RoleKey, role)
}

func (k *KeyringStore) Role() (string, bool) {
	return k.get(RoleKey)
}
