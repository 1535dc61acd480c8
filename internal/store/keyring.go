package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

const serviceName = "contactsync"

// ErrNoCredential is returned when the keyring holds no token for a username.
var ErrNoCredential = errors.New("no credential stored")

// KeyringTokenStore persists OAuth2 tokens in the OS keyring
// (macOS Keychain, Windows Credential Manager, or Linux Secret Service).
type KeyringTokenStore struct{}

// NewKeyringTokenStore returns a new KeyringTokenStore.
func NewKeyringTokenStore() *KeyringTokenStore {
	return &KeyringTokenStore{}
}

// SaveToken stores the given OAuth2 token in the OS keyring under the username.
func (k *KeyringTokenStore) SaveToken(username string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := keyring.Set(serviceName, username, string(data)); err != nil {
		return fmt.Errorf("failed to save token to keyring: %w", err)
	}
	return nil
}

// LoadToken retrieves the OAuth2 token for the given username from the OS keyring.
func (k *KeyringTokenStore) LoadToken(username string) (*oauth2.Token, error) {
	data, err := keyring.Get(serviceName, username)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("failed to load token for %s: %w", username, ErrNoCredential)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token from keyring: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}
	return &token, nil
}

// DeleteToken removes the OAuth2 token for the given username from the OS keyring.
func (k *KeyringTokenStore) DeleteToken(username string) error {
	if err := keyring.Delete(serviceName, username); err != nil {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
