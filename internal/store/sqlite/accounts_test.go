package sqlite

import (
	"context"
	"testing"

	"github.com/lu-zhengda/contactsync/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAccount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.CreateAccount(ctx, &domain.Account{Username: "alice@example.com"}); err != nil {
		t.Fatalf("CreateAccount() error: %v", err)
	}
	// Re-adding an account after re-authorizing must not fail.
	if err := db.CreateAccount(ctx, &domain.Account{Username: "alice@example.com"}); err != nil {
		t.Fatalf("CreateAccount() duplicate error: %v", err)
	}

	accounts, err := db.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts() error: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("got %d accounts, want 1", len(accounts))
	}
	if accounts[0].Username != "alice@example.com" {
		t.Errorf("username = %q, want %q", accounts[0].Username, "alice@example.com")
	}
	if accounts[0].CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestListAccounts_CreationOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	db.CreateAccount(ctx, &domain.Account{Username: "zed@example.com"})
	db.CreateAccount(ctx, &domain.Account{Username: "amy@example.com"})

	accounts, err := db.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts() error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}
	if accounts[0].Username != "zed@example.com" || accounts[1].Username != "amy@example.com" {
		t.Errorf("order = [%s %s], want creation order", accounts[0].Username, accounts[1].Username)
	}
}

func TestDeleteAccount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	db.CreateAccount(ctx, &domain.Account{Username: "a@test.com"})
	if err := db.DeleteAccount(ctx, "a@test.com"); err != nil {
		t.Fatalf("DeleteAccount() error: %v", err)
	}

	accounts, err := db.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts() error: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("got %d accounts after delete, want 0", len(accounts))
	}
}
