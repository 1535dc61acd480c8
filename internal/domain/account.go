package domain

import "time"

// Account is a remote Google account with a refresh token in the keyring.
type Account struct {
	Username  string
	CreatedAt time.Time
}

// AddressBook is a local address book that can be bound to an account.
type AddressBook struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
