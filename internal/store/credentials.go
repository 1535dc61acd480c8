package store

import (
	"context"
	"fmt"

	"github.com/lu-zhengda/contactsync/internal/domain"
)

// AccountLister lists the accounts known to the local database.
type AccountLister interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// Credentials joins the account index in the database with the refresh tokens
// held in the keyring.
type Credentials struct {
	accounts AccountLister
	tokens   *KeyringTokenStore
}

// NewCredentials returns a Credentials backed by the given account index and token store.
func NewCredentials(accounts AccountLister, tokens *KeyringTokenStore) *Credentials {
	return &Credentials{accounts: accounts, tokens: tokens}
}

// Usernames returns the usernames of every known account in creation order.
func (c *Credentials) Usernames(ctx context.Context) ([]string, error) {
	accounts, err := c.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	names := make([]string, 0, len(accounts))
	for _, a := range accounts {
		names = append(names, a.Username)
	}
	return names, nil
}

// Lookup returns the refresh token for username. It returns an error wrapping
// ErrNoCredential when the keyring has no usable token.
func (c *Credentials) Lookup(ctx context.Context, username string) (string, error) {
	token, err := c.tokens.LoadToken(username)
	if err != nil {
		return "", err
	}
	if token.RefreshToken == "" {
		return "", fmt.Errorf("token for %s has no refresh token: %w", username, ErrNoCredential)
	}
	return token.RefreshToken, nil
}
