package cli

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lu-zhengda/contactsync/internal/app"
	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/store"
	"github.com/lu-zhengda/contactsync/internal/store/sqlite"
)

type stubCredentials map[string]string

func (c stubCredentials) Usernames(context.Context) ([]string, error) {
	return []string{"alice", "bob"}, nil
}

func (c stubCredentials) Lookup(_ context.Context, username string) (string, error) {
	tok, ok := c[username]
	if !ok {
		return "", fmt.Errorf("token for %s: %w", username, store.ErrNoCredential)
	}
	return tok, nil
}

type stubGoogle struct{}

func (stubGoogle) Exchange(context.Context, string) (domain.AccessToken, error) {
	return domain.AccessToken{Type: "Bearer", Value: "token"}, nil
}

func (stubGoogle) FetchGroups(context.Context, domain.AccessToken, string) ([]domain.Group, error) {
	return nil, nil
}

// newPrefsTestCmd returns a command carrying the preference flags of
// "prefs set" and a controller with one address book bound to alice's
// "Work" group.
func newPrefsTestCmd(t *testing.T) (*cobra.Command, *prefsFlags, *app.Controller, *sqlite.DB, string) {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ab := &domain.AddressBook{Name: "Personal"}
	if err := db.CreateAddressBook(ctx, ab); err != nil {
		t.Fatalf("failed to create address book: %v", err)
	}
	prefs := &domain.Preferences{
		Username: "alice", Plugin: domain.DefaultPlugin, MyContacts: true, MyContactsName: "Work",
	}
	if err := db.SavePreferences(ctx, ab.ID, prefs); err != nil {
		t.Fatalf("failed to save preferences: %v", err)
	}

	ctrl, err := app.NewController(app.Deps{
		Store:       db,
		Credentials: stubCredentials{"alice": "refresh-alice", "bob": "refresh-bob"},
		Exchanger:   stubGoogle{},
		Fetcher:     stubGoogle{},
		Prompter:    &cliPrompter{assumeYes: true, out: io.Discard},
		Log:         zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}
	if err := ctrl.Load(ctx); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := ctrl.SelectAccount(ctx, 0); err != nil {
		t.Fatalf("SelectAccount() error: %v", err)
	}

	f := &prefsFlags{}
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	cmd.Flags().StringVar(&f.username, "username", "", "")
	cmd.Flags().StringVar(&f.group, "group", "", "")
	return cmd, f, ctrl, db, ab.ID
}

func TestApplyPrefsFlags_UsernameKeepsGroup(t *testing.T) {
	ctx := context.Background()
	cmd, f, ctrl, db, id := newPrefsTestCmd(t)

	if err := cmd.Flags().Set("username", "bob"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := applyPrefsFlags(cmd, ctrl, *f); err != nil {
		t.Fatalf("applyPrefsFlags() error: %v", err)
	}
	if _, err := ctrl.SaveSelectedAccount(ctx); err != nil {
		t.Fatalf("SaveSelectedAccount() error: %v", err)
	}

	got, err := db.LoadPreferences(ctx, id)
	if err != nil {
		t.Fatalf("LoadPreferences() error: %v", err)
	}
	if got.Username != "bob" {
		t.Errorf("Username = %q, want %q", got.Username, "bob")
	}
	if got.MyContactsName != "Work" || !got.MyContacts {
		t.Errorf("group = %q (myContacts %v), want %q", got.MyContactsName, got.MyContacts, "Work")
	}
}

func TestApplyPrefsFlags_UsernameWithGroup(t *testing.T) {
	cmd, f, ctrl, _, _ := newPrefsTestCmd(t)

	for name, value := range map[string]string{"username": "bob", "group": "All"} {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("Set(%s) error: %v", name, err)
		}
	}
	if err := applyPrefsFlags(cmd, ctrl, *f); err != nil {
		t.Fatalf("applyPrefsFlags() error: %v", err)
	}

	form := ctrl.Form()
	if !form.SyncGroups || form.MyContacts {
		t.Errorf("SyncGroups = %v, MyContacts = %v, want all groups", form.SyncGroups, form.MyContacts)
	}
}
