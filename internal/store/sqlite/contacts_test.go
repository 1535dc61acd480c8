package sqlite

import (
	"context"
	"testing"

	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/store"
)

func TestResetAddressBook(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ab := seedAddressBook(t, db, "Personal")
	other := seedAddressBook(t, db, "Other")

	prefs := domain.Preferences{Username: "alice@example.com", SyncGroups: true, LastSync: 1000}
	if err := db.SavePreferences(ctx, ab.ID, &prefs); err != nil {
		t.Fatalf("SavePreferences() error: %v", err)
	}
	for _, c := range []store.SyncedContact{
		{AddressBookID: ab.ID, LocalID: "l1", RemoteID: "people/c1", ETag: "e1"},
		{AddressBookID: ab.ID, LocalID: "l2", RemoteID: "people/c2", ETag: "e2"},
		{AddressBookID: other.ID, LocalID: "l1", RemoteID: "people/c9", ETag: "e9"},
	} {
		c := c
		if err := db.RecordSyncedContact(ctx, &c); err != nil {
			t.Fatalf("RecordSyncedContact() error: %v", err)
		}
	}

	if err := db.ResetAddressBook(ctx, ab.ID); err != nil {
		t.Fatalf("ResetAddressBook() error: %v", err)
	}

	n, err := db.CountSyncedContacts(ctx, ab.ID)
	if err != nil {
		t.Fatalf("CountSyncedContacts() error: %v", err)
	}
	if n != 0 {
		t.Errorf("got %d synced contacts after reset, want 0", n)
	}
	if n, _ := db.CountSyncedContacts(ctx, other.ID); n != 1 {
		t.Errorf("other address book has %d synced contacts, want 1", n)
	}

	got, err := db.LoadPreferences(ctx, ab.ID)
	if err != nil {
		t.Fatalf("LoadPreferences() error: %v", err)
	}
	if got.LastSync != 0 {
		t.Errorf("LastSync after reset = %d, want 0", got.LastSync)
	}
	if got.Username != "alice@example.com" {
		t.Errorf("Username after reset = %q, want it preserved", got.Username)
	}
}

func TestRecordSyncedContact_Upsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ab := seedAddressBook(t, db, "Personal")

	c := store.SyncedContact{AddressBookID: ab.ID, LocalID: "l1", RemoteID: "people/c1", ETag: "e1"}
	if err := db.RecordSyncedContact(ctx, &c); err != nil {
		t.Fatalf("RecordSyncedContact() error: %v", err)
	}
	c.ETag = "e2"
	if err := db.RecordSyncedContact(ctx, &c); err != nil {
		t.Fatalf("RecordSyncedContact() update error: %v", err)
	}

	n, err := db.CountSyncedContacts(ctx, ab.ID)
	if err != nil {
		t.Fatalf("CountSyncedContacts() error: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d synced contacts, want 1", n)
	}
}

func TestSettings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	got, err := db.GetSetting(ctx, store.SettingNeedRestart)
	if err != nil {
		t.Fatalf("GetSetting() error: %v", err)
	}
	if got != "" {
		t.Errorf("unset setting = %q, want empty", got)
	}

	if err := db.SetSetting(ctx, store.SettingNeedRestart, "true"); err != nil {
		t.Fatalf("SetSetting() error: %v", err)
	}
	if err := db.SetSetting(ctx, store.SettingNeedRestart, "false"); err != nil {
		t.Fatalf("SetSetting() overwrite error: %v", err)
	}
	got, err = db.GetSetting(ctx, store.SettingNeedRestart)
	if err != nil {
		t.Fatalf("GetSetting() error: %v", err)
	}
	if got != "false" {
		t.Errorf("setting = %q, want %q", got, "false")
	}
}
