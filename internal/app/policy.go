package app

import (
	"github.com/rs/zerolog"

	"github.com/lu-zhengda/contactsync/internal/domain"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ResetInput holds the proposed values of the fields that decide whether an
// address book has to be reset.
type ResetInput struct {
	Username                 string
	SyncGroups               bool
	MyContacts               bool
	MyContactsName           string
	SkipContactsWithoutEmail bool
}

// ResetInputFrom extracts the reset-relevant fields of p.
func ResetInputFrom(p domain.Preferences) ResetInput {
	return ResetInput{
		Username:                 p.Username,
		SyncGroups:               p.SyncGroups,
		MyContacts:               p.MyContacts,
		MyContactsName:           p.MyContactsName,
		SkipContactsWithoutEmail: p.SkipContactsWithoutEmail,
	}
}

// NeedsReset reports whether saving next over old must reset the address book.
// A reset is only considered when old names an account, next names an account,
// the book has been synced before and one of the watched fields changed. In
// that case the user decides through confirm. NeedsReset never mutates state.
func NeedsReset(log zerolog.Logger, old domain.Preferences, next ResetInput, confirm Confirmer) bool {
	log.Debug().
		Str("username", next.Username).Str("old_username", old.Username).
		Bool("sync_groups", next.SyncGroups).Bool("old_sync_groups", old.SyncGroups).
		Bool("my_contacts", next.MyContacts).Bool("old_my_contacts", old.MyContacts).
		Str("my_contacts_name", next.MyContactsName).Str("old_my_contacts_name", old.MyContactsName).
		Bool("skip_contacts", next.SkipContactsWithoutEmail).Bool("old_skip_contacts", old.SkipContactsWithoutEmail).
		Int64("last_sync", old.LastSync).
		Msg("determining if the address book should be reset")

	if !resetCandidate(old, next) {
		log.Debug().Msg("address book will not be reset")
		return false
	}

	reset := confirm.Confirm(PromptConfirmReset)
	log.Debug().Bool("confirmed", reset).Msg("reset confirmation result")
	return reset
}

// resetCandidate reports whether saving next over old calls for a reset,
// before asking the user.
func resetCandidate(old domain.Preferences, next ResetInput) bool {
	if !old.HasUsername() || next.Username == domain.NoUsername || old.LastSync <= 0 {
		return false
	}
	return old.Username != next.Username ||
		old.SyncGroups != next.SyncGroups ||
		old.MyContacts != next.MyContacts ||
		old.MyContactsName != next.MyContactsName ||
		old.SkipContactsWithoutEmail != next.SkipContactsWithoutEmail
}
