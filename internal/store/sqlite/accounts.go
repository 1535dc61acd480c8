package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/lu-zhengda/contactsync/internal/domain"
)

type accountRow struct {
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *DB) CreateAccount(ctx context.Context, acct *domain.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (username) VALUES (?) ON CONFLICT(username) DO NOTHING`,
		acct.Username,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *DB) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var rows []accountRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT username, created_at FROM accounts ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]domain.Account, 0, len(rows))
	for _, r := range rows {
		accounts = append(accounts, domain.Account{Username: r.Username, CreatedAt: r.CreatedAt})
	}
	return accounts, nil
}

func (s *DB) DeleteAccount(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", username, err)
	}
	return nil
}
