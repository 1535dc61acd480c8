package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/store"
)

const addressBookColumns = `id, name, created_at`

// CreateAddressBook inserts an address book, assigning an ID when none is set.
func (s *DB) CreateAddressBook(ctx context.Context, ab *domain.AddressBook) error {
	if ab.ID == "" {
		ab.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO address_books (id, name) VALUES (?, ?)`,
		ab.ID, ab.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create address book: %w", err)
	}
	return nil
}

func (s *DB) GetAddressBook(ctx context.Context, id string) (*domain.AddressBook, error) {
	var ab domain.AddressBook
	err := s.db.QueryRowxContext(ctx,
		`SELECT `+addressBookColumns+` FROM address_books WHERE id = ?`, id,
	).Scan(&ab.ID, &ab.Name, &ab.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("address book %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get address book %s: %w", id, err)
	}
	return &ab, nil
}

func (s *DB) GetAddressBookByName(ctx context.Context, name string) (*domain.AddressBook, error) {
	var ab domain.AddressBook
	err := s.db.QueryRowxContext(ctx,
		`SELECT `+addressBookColumns+` FROM address_books WHERE name = ?`, name,
	).Scan(&ab.ID, &ab.Name, &ab.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("address book %q: %w", name, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get address book %q: %w", name, err)
	}
	return &ab, nil
}

// ListAddressBooks returns every address book in creation order.
func (s *DB) ListAddressBooks(ctx context.Context) ([]domain.AddressBook, error) {
	rows, err := s.db.QueryxContext(ctx,
		`SELECT `+addressBookColumns+` FROM address_books ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list address books: %w", err)
	}
	defer rows.Close()

	var books []domain.AddressBook
	for rows.Next() {
		var ab domain.AddressBook
		if err := rows.Scan(&ab.ID, &ab.Name, &ab.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan address book: %w", err)
		}
		books = append(books, ab)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate address books: %w", err)
	}
	return books, nil
}

func (s *DB) DeleteAddressBook(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM address_books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete address book %s: %w", id, err)
	}
	return nil
}
