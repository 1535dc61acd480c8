package store

import (
	"context"
	"errors"

	"github.com/lu-zhengda/contactsync/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for the application.
type Store interface {
	// Accounts with a refresh token in the keyring
	CreateAccount(ctx context.Context, account *domain.Account) error
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, username string) error

	// Address books
	CreateAddressBook(ctx context.Context, ab *domain.AddressBook) error
	GetAddressBook(ctx context.Context, id string) (*domain.AddressBook, error)
	GetAddressBookByName(ctx context.Context, name string) (*domain.AddressBook, error)
	ListAddressBooks(ctx context.Context) ([]domain.AddressBook, error)
	DeleteAddressBook(ctx context.Context, id string) error

	// Preferences
	LoadPreferences(ctx context.Context, addressBookID string) (*domain.Preferences, error)
	SavePreferences(ctx context.Context, addressBookID string, prefs *domain.Preferences) error
	SetLastSync(ctx context.Context, addressBookID string, ts int64) error

	// Synced state
	RecordSyncedContact(ctx context.Context, c *SyncedContact) error
	CountSyncedContacts(ctx context.Context, addressBookID string) (int, error)
	ResetAddressBook(ctx context.Context, addressBookID string) error

	// Global settings
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Lifecycle
	Close() error
}

// SyncedContact links a local contact to its remote counterpart. These links
// are what a reset invalidates.
type SyncedContact struct {
	AddressBookID string
	LocalID       string
	RemoteID      string
	ETag          string
}

// Global setting keys.
const (
	SettingNeedRestart   = "needRestart"
	SettingStatusBarText = "statusBarText"
)
