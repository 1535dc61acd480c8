package store

import (
	"context"
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"

	"github.com/lu-zhengda/contactsync/internal/domain"
)

type fakeAccounts []domain.Account

func (f fakeAccounts) ListAccounts(context.Context) ([]domain.Account, error) {
	return f, nil
}

func TestCredentials(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()

	tokens := NewKeyringTokenStore()
	if err := tokens.SaveToken("alice@example.com", &oauth2.Token{RefreshToken: "refresh-alice"}); err != nil {
		t.Fatalf("SaveToken() error: %v", err)
	}
	if err := tokens.SaveToken("carol@example.com", &oauth2.Token{AccessToken: "only-access"}); err != nil {
		t.Fatalf("SaveToken() error: %v", err)
	}

	creds := NewCredentials(fakeAccounts{
		{Username: "alice@example.com"},
		{Username: "bob@example.com"},
	}, tokens)

	names, err := creds.Usernames(ctx)
	if err != nil {
		t.Fatalf("Usernames() error: %v", err)
	}
	if len(names) != 2 || names[0] != "alice@example.com" || names[1] != "bob@example.com" {
		t.Errorf("Usernames() = %v", names)
	}

	got, err := creds.Lookup(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Lookup(alice) error: %v", err)
	}
	if got != "refresh-alice" {
		t.Errorf("Lookup(alice) = %q, want %q", got, "refresh-alice")
	}

	if _, err := creds.Lookup(ctx, "bob@example.com"); !errors.Is(err, ErrNoCredential) {
		t.Errorf("Lookup(bob) error = %v, want ErrNoCredential", err)
	}
	if _, err := creds.Lookup(ctx, "carol@example.com"); !errors.Is(err, ErrNoCredential) {
		t.Errorf("Lookup(carol) error = %v, want ErrNoCredential", err)
	}
}

func TestKeyringTokenStore_Delete(t *testing.T) {
	keyring.MockInit()

	tokens := NewKeyringTokenStore()
	if err := tokens.SaveToken("alice@example.com", &oauth2.Token{RefreshToken: "r"}); err != nil {
		t.Fatalf("SaveToken() error: %v", err)
	}
	if err := tokens.DeleteToken("alice@example.com"); err != nil {
		t.Fatalf("DeleteToken() error: %v", err)
	}
	if _, err := tokens.LoadToken("alice@example.com"); !errors.Is(err, ErrNoCredential) {
		t.Errorf("LoadToken() after delete error = %v, want ErrNoCredential", err)
	}
}
