package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lu-zhengda/contactsync/internal/app"
	"github.com/lu-zhengda/contactsync/internal/domain"
)

// ---------------------------------------------------------------------------
// Account JSON types (account list)
// ---------------------------------------------------------------------------

type jsonAccount struct {
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

func toJSONAccounts(accounts []domain.Account) []jsonAccount {
	out := make([]jsonAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, jsonAccount{
			Username:  a.Username,
			CreatedAt: a.CreatedAt.Format(time.DateOnly),
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Address book JSON types (addressbook list, prefs show)
// ---------------------------------------------------------------------------

type jsonPreferences struct {
	Username                 string `json:"username"`
	Plugin                   string `json:"plugin"`
	Group                    string `json:"group"`
	SyncGroups               bool   `json:"sync_groups"`
	MyContacts               bool   `json:"my_contacts"`
	MyContactsName           string `json:"my_contacts_name,omitempty"`
	Direction                string `json:"direction"`
	Disabled                 bool   `json:"disabled"`
	SkipContactsWithoutEmail bool   `json:"skip_contacts_without_email"`
	UpdateGoogleInConflicts  bool   `json:"update_google_in_conflicts"`
	LastSync                 int64  `json:"last_sync"`
}

func toJSONPreferences(p domain.Preferences) jsonPreferences {
	return jsonPreferences{
		Username:                 p.Username,
		Plugin:                   p.Plugin,
		Group:                    p.GroupValue(),
		SyncGroups:               p.SyncGroups,
		MyContacts:               p.MyContacts,
		MyContactsName:           p.MyContactsName,
		Direction:                p.Direction.String(),
		Disabled:                 p.Disabled,
		SkipContactsWithoutEmail: p.SkipContactsWithoutEmail,
		UpdateGoogleInConflicts:  p.UpdateGoogleInConflicts,
		LastSync:                 p.LastSync,
	}
}

type jsonAddressBook struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CreatedAt   string          `json:"created_at"`
	Preferences jsonPreferences `json:"preferences"`
}

// toJSONAddressBooks pairs each book with the preferences at the same index.
func toJSONAddressBooks(books []domain.AddressBook, prefs []domain.Preferences) []jsonAddressBook {
	out := make([]jsonAddressBook, 0, len(books))
	for i, ab := range books {
		out = append(out, jsonAddressBook{
			ID:          ab.ID,
			Name:        ab.Name,
			CreatedAt:   ab.CreatedAt.Format(time.DateOnly),
			Preferences: toJSONPreferences(prefs[i]),
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Group JSON type (groups)
// ---------------------------------------------------------------------------

type jsonGroup struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Default bool   `json:"default"`
}

func toJSONGroups(entries []app.CatalogEntry) []jsonGroup {
	out := make([]jsonGroup, 0, len(entries))
	for _, e := range entries {
		out = append(out, jsonGroup{Label: e.Label, Value: e.Value, Default: e.Default})
	}
	return out
}

// ---------------------------------------------------------------------------
// Action JSON type (add, remove, mark-synced, prefs set)
// ---------------------------------------------------------------------------

type jsonAction struct {
	OK            bool   `json:"ok"`
	Action        string `json:"action"`
	Username      string `json:"username,omitempty"`
	AddressBookID string `json:"address_book_id,omitempty"`
}

// printJSON writes v to stdout as indented JSON. Every --json command goes
// through it so scripts see one format.
func printJSON(v any) error {
	return fprintJSON(os.Stdout, v)
}

func fprintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
