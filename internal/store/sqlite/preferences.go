package sqlite

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/store"
)

type prefRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// LoadPreferences returns the preferences of an address book, with defaults
// for every key that has never been saved.
func (s *DB) LoadPreferences(ctx context.Context, addressBookID string) (*domain.Preferences, error) {
	var rows []prefRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT key, value FROM preferences WHERE address_book_id = ?`, addressBookID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences for %s: %w", addressBookID, err)
	}

	bag := make(map[string]string, len(rows))
	for _, r := range rows {
		bag[r.Key] = r.Value
	}
	prefs := store.DecodePreferences(bag)
	return &prefs, nil
}

// SavePreferences overwrites every preference of an address book in a single
// transaction.
func (s *DB) SavePreferences(ctx context.Context, addressBookID string, prefs *domain.Preferences) error {
	bag := store.EncodePreferences(prefs)
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		for key, value := range bag {
			if err := upsertPref(ctx, tx, addressBookID, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save preferences for %s: %w", addressBookID, err)
	}
	return nil
}

// SetLastSync records the time of the last completed sync.
func (s *DB) SetLastSync(ctx context.Context, addressBookID string, ts int64) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		return upsertPref(ctx, tx, addressBookID, store.PrefLastSync, strconv.FormatInt(ts, 10))
	})
	if err != nil {
		return fmt.Errorf("failed to set last sync for %s: %w", addressBookID, err)
	}
	return nil
}

func upsertPref(ctx context.Context, tx *sqlx.Tx, addressBookID, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO preferences (address_book_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(address_book_id, key) DO UPDATE SET value = excluded.value`,
		addressBookID, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}
