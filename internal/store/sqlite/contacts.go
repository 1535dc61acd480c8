package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lu-zhengda/contactsync/internal/store"
)

// RecordSyncedContact inserts or updates the link between a local and a remote contact.
func (s *DB) RecordSyncedContact(ctx context.Context, c *store.SyncedContact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO synced_contacts (address_book_id, local_id, remote_id, etag)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(address_book_id, local_id) DO UPDATE SET
			remote_id  = excluded.remote_id,
			etag       = excluded.etag,
			updated_at = CURRENT_TIMESTAMP`,
		c.AddressBookID, c.LocalID, c.RemoteID, c.ETag,
	)
	if err != nil {
		return fmt.Errorf("failed to record synced contact %s: %w", c.LocalID, err)
	}
	return nil
}

func (s *DB) CountSyncedContacts(ctx context.Context, addressBookID string) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM synced_contacts WHERE address_book_id = ?`, addressBookID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count synced contacts for %s: %w", addressBookID, err)
	}
	return n, nil
}

// ResetAddressBook forgets everything learned from previous syncs: the
// contact links are dropped and lastSync returns to 0, so the next sync
// starts from scratch.
func (s *DB) ResetAddressBook(ctx context.Context, addressBookID string) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM synced_contacts WHERE address_book_id = ?`, addressBookID,
		); err != nil {
			return fmt.Errorf("failed to delete synced contacts: %w", err)
		}
		return upsertPref(ctx, tx, addressBookID, store.PrefLastSync, "0")
	})
	if err != nil {
		return fmt.Errorf("failed to reset address book %s: %w", addressBookID, err)
	}
	return nil
}
