package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/provider"
	"github.com/lu-zhengda/contactsync/internal/store"
)

// PreferenceStore loads and saves the preference bag of an address book.
type PreferenceStore interface {
	LoadPreferences(ctx context.Context, addressBookID string) (*domain.Preferences, error)
	SavePreferences(ctx context.Context, addressBookID string, prefs *domain.Preferences) error
}

// Store is the persistence the controller needs.
type Store interface {
	PreferenceStore
	ListAddressBooks(ctx context.Context) ([]domain.AddressBook, error)
	GetAddressBookByName(ctx context.Context, name string) (*domain.AddressBook, error)
	CreateAddressBook(ctx context.Context, ab *domain.AddressBook) error
	ResetAddressBook(ctx context.Context, addressBookID string) error
	SetSetting(ctx context.Context, key, value string) error
}

// Credentials looks up the accounts that have a refresh token.
type Credentials interface {
	Usernames(ctx context.Context) ([]string, error)
	Lookup(ctx context.Context, username string) (string, error)
}

// Prompter asks the user questions and shows messages.
type Prompter interface {
	Confirmer
	Alert(message string)
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Store       Store
	Credentials Credentials
	Exchanger   provider.TokenExchanger
	Fetcher     provider.GroupFetcher
	Prompter    Prompter
	Log         zerolog.Logger
}

// Controller holds the state of the account dialog: the address book list,
// the form of the selected book and its group catalog. It is not safe for
// concurrent use; drive it from a single event loop and run GroupsCmds
// wherever convenient.
type Controller struct {
	store     Store
	creds     Credentials
	exchanger provider.TokenExchanger
	fetcher   provider.GroupFetcher
	prompt    Prompter
	log       zerolog.Logger

	books     []domain.AddressBook
	selected  int
	form      domain.Preferences
	usernames []string
	catalog   *GroupCatalog
	wantGroup string
	unsaved   bool
}

// NewController returns a Controller with nothing selected.
func NewController(d Deps) (*Controller, error) {
	switch {
	case d.Store == nil:
		return nil, fmt.Errorf("%w: store", ErrMissingBinding)
	case d.Credentials == nil:
		return nil, fmt.Errorf("%w: credentials", ErrMissingBinding)
	case d.Exchanger == nil:
		return nil, fmt.Errorf("%w: token exchanger", ErrMissingBinding)
	case d.Fetcher == nil:
		return nil, fmt.Errorf("%w: group fetcher", ErrMissingBinding)
	case d.Prompter == nil:
		return nil, fmt.Errorf("%w: prompter", ErrMissingBinding)
	}
	return &Controller{
		store:     d.Store,
		creds:     d.Credentials,
		exchanger: d.Exchanger,
		fetcher:   d.Fetcher,
		prompt:    d.Prompter,
		log:       d.Log.With().Str("component", "accounts").Logger(),
		selected:  -1,
		form:      domain.DefaultPreferences(),
		usernames: []string{domain.NoUsername},
		catalog:   NewGroupCatalog(),
	}, nil
}

// Load fills the address book list and the username menu.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.fillAddressBooks(ctx); err != nil {
		return err
	}
	c.selected = -1
	c.form = domain.DefaultPreferences()
	c.catalog.Reset()
	return c.fillUsernames(ctx, "")
}

func (c *Controller) fillAddressBooks(ctx context.Context) error {
	books, err := c.store.ListAddressBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list address books: %w", err)
	}
	c.books = books
	return nil
}

// fillUsernames lists "none" followed by every account with a token. A saved
// username without a token is still listed so that it stays selected.
func (c *Controller) fillUsernames(ctx context.Context, current string) error {
	names, err := c.creds.Usernames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list usernames: %w", err)
	}
	c.usernames = append([]string{domain.NoUsername}, names...)
	if current == "" {
		c.form.Username = domain.NoUsername
		return nil
	}
	found := false
	for _, n := range c.usernames {
		if n == current {
			found = true
			break
		}
	}
	if !found {
		c.usernames = append(c.usernames, current)
	}
	c.form.Username = current
	return nil
}

// AddressBooks returns the address books in display order.
func (c *Controller) AddressBooks() []domain.AddressBook {
	return append([]domain.AddressBook(nil), c.books...)
}

// IndexOf returns the index of the address book named name, or -1.
func (c *Controller) IndexOf(name string) int {
	for i, ab := range c.books {
		if ab.Name == name {
			return i
		}
	}
	return -1
}

// SelectedAddressBook returns the selected address book, or nil.
func (c *Controller) SelectedAddressBook() *domain.AddressBook {
	if c.selected < 0 || c.selected >= len(c.books) {
		return nil
	}
	ab := c.books[c.selected]
	return &ab
}

// Enabled reports whether the form can be edited, which requires a selection.
func (c *Controller) Enabled() bool { return c.SelectedAddressBook() != nil }

// Usernames returns the entries of the username menu.
func (c *Controller) Usernames() []string {
	return append([]string(nil), c.usernames...)
}

// Catalog returns the group catalog. Callers must only read it.
func (c *Controller) Catalog() *GroupCatalog { return c.catalog }

// Unsaved reports whether the form has changes that were not saved.
func (c *Controller) Unsaved() bool { return c.unsaved }

// Form returns the preferences as currently shown, with the group fields
// taken from the catalog selection.
func (c *Controller) Form() domain.Preferences {
	p := c.form
	p.SetGroup(c.catalog.Selected().Value)
	return p
}

// SelectAccount selects the address book at index and loads its preferences
// into the form. The returned command fetches the groups of the saved
// account; it is nil when there is nothing to fetch. An index out of range
// clears the selection and the form and returns ErrNoSelection.
func (c *Controller) SelectAccount(ctx context.Context, index int) (GroupsCmd, error) {
	c.catalog.Reset()
	if index < 0 || index >= len(c.books) {
		c.selected = -1
		c.form = domain.DefaultPreferences()
		c.wantGroup = ""
		c.unsaved = false
		return nil, ErrNoSelection
	}
	c.selected = index
	if err := c.loadForm(ctx); err != nil {
		return nil, err
	}
	c.unsaved = false
	return c.groupsCmd(ctx, c.form.Username), nil
}

// loadForm reads the preferences of the selected book into the form and
// selects its saved group, adding it to the catalog if unknown.
func (c *Controller) loadForm(ctx context.Context) error {
	ab := c.books[c.selected]
	prefs, err := c.store.LoadPreferences(ctx, ab.ID)
	if err != nil {
		return fmt.Errorf("failed to load preferences for %s: %w", ab.Name, err)
	}
	c.form = *prefs
	if err := c.fillUsernames(ctx, prefs.Username); err != nil {
		return err
	}
	c.wantGroup = prefs.GroupValue()
	c.catalog.Select(c.wantGroup, true)
	return nil
}

// RefreshGroupsForUsername drops the remote groups of the previous account
// and returns a command fetching those of username. Refetching the account
// already in the form keeps the selected group; another account starts from
// the fallback group. The command is nil for "none" or when no refresh token
// is stored for username.
func (c *Controller) RefreshGroupsForUsername(ctx context.Context, username string) GroupsCmd {
	return c.refreshGroups(ctx, username, username == c.form.Username)
}

func (c *Controller) refreshGroups(ctx context.Context, username string, keepGroup bool) GroupsCmd {
	current := c.catalog.Selected().Value
	c.catalog.Reset()
	if keepGroup {
		c.catalog.Select(current, true)
	}
	c.wantGroup = c.catalog.Selected().Value
	return c.groupsCmd(ctx, username)
}

func (c *Controller) groupsCmd(ctx context.Context, username string) GroupsCmd {
	if username == "" || username == domain.NoUsername {
		return nil
	}
	refresh, err := c.creds.Lookup(ctx, username)
	if err != nil {
		c.log.Warn().Err(fmt.Errorf("%w: %w", ErrMissingCredential, err)).
			Str("username", username).Msg("unable to find the token for username")
		return nil
	}
	return newGroupsCmd(c.log, c.exchanger, c.fetcher, username, refresh)
}

// ApplyGroups merges a fetch result into the catalog. Failed results are
// dropped, and so are results for an account other than the one currently
// in the form. It reports whether the catalog changed.
func (c *Controller) ApplyGroups(res GroupsResult) bool {
	if res.Err != nil {
		return false
	}
	if !c.form.HasUsername() || c.form.Username != res.Username {
		c.log.Debug().Str("username", res.Username).Str("current", c.form.Username).
			Msg("discarding groups of a superseded request")
		return false
	}

	c.log.Debug().Str("username", res.Username).Int("count", len(res.Groups)).Msg("adding groups")
	c.catalog.Reset()
	c.catalog.Merge(res.Groups)
	if c.wantGroup != "" {
		c.catalog.Select(c.wantGroup, true)
	}
	return true
}

// SetUsername changes the account in the form and returns the command that
// fetches its groups.
func (c *Controller) SetUsername(ctx context.Context, username string) GroupsCmd {
	same := username == c.form.Username
	c.form.Username = username
	c.unsaved = true
	return c.refreshGroups(ctx, username, same)
}

// SetGroup selects the group to sync.
func (c *Controller) SetGroup(value string) {
	c.catalog.Select(value, true)
	c.wantGroup = value
	c.unsaved = true
}

// SetGroupIndex selects the group at index i of the catalog.
func (c *Controller) SetGroupIndex(i int) bool {
	if !c.catalog.SelectIndex(i) {
		return false
	}
	c.wantGroup = c.catalog.Selected().Value
	c.unsaved = true
	return true
}

// SetDirection sets the sync direction.
func (c *Controller) SetDirection(d domain.Direction) {
	c.form.Direction = d
	c.unsaved = true
}

// SetPlugin sets the sync plugin.
func (c *Controller) SetPlugin(plugin string) {
	c.form.Plugin = plugin
	c.unsaved = true
}

// SetDisabled temporarily turns synchronization of the book off or on.
func (c *Controller) SetDisabled(v bool) {
	c.form.Disabled = v
	c.unsaved = true
}

// SetSkipContactsWithoutEmail sets whether contacts without an email address are skipped.
func (c *Controller) SetSkipContactsWithoutEmail(v bool) {
	c.form.SkipContactsWithoutEmail = v
	c.unsaved = true
}

// SetUpdateGoogleInConflicts sets whether local changes win conflicts.
func (c *Controller) SetUpdateGoogleInConflicts(v bool) {
	c.form.UpdateGoogleInConflicts = v
	c.unsaved = true
}

// SaveSelectedAccount persists the form for the selected address book. When
// the change invalidates previously synced contacts and the user agrees, the
// book is reset and a restart is requested. It returns false when nothing
// was saved.
func (c *Controller) SaveSelectedAccount(ctx context.Context) (bool, error) {
	ab := c.SelectedAddressBook()
	if ab == nil {
		return false, ErrNoSelection
	}

	old, err := c.store.LoadPreferences(ctx, ab.ID)
	if err != nil {
		return false, fmt.Errorf("failed to load preferences for %s: %w", ab.Name, err)
	}

	next := c.Form()
	next.LastSync = old.LastSync
	reset := NeedsReset(c.log, *old, ResetInputFrom(next), c.prompt)

	if err := c.store.SavePreferences(ctx, ab.ID, &next); err != nil {
		return false, fmt.Errorf("failed to save preferences for %s: %w", ab.Name, err)
	}
	c.unsaved = false

	if reset {
		if err := c.resetAddressBook(ctx, ab); err != nil {
			return true, err
		}
	}

	if err := c.reload(ctx, ab.ID); err != nil {
		c.log.Warn().Err(err).Msg("failed to reload account dialog")
	}

	if reset {
		c.prompt.Alert(PromptSavedRestart)
	} else {
		c.prompt.Alert(PromptSavedNoRestart)
	}
	return true, nil
}

// ResetPending reports whether saving now would ask the user to confirm a
// reset. Front ends that cannot block on a question use it to collect the
// answer before calling SaveSelectedAccount.
func (c *Controller) ResetPending(ctx context.Context) (bool, error) {
	ab := c.SelectedAddressBook()
	if ab == nil {
		return false, ErrNoSelection
	}
	old, err := c.store.LoadPreferences(ctx, ab.ID)
	if err != nil {
		return false, fmt.Errorf("failed to load preferences for %s: %w", ab.Name, err)
	}
	return resetCandidate(*old, ResetInputFrom(c.Form())), nil
}

func (c *Controller) resetAddressBook(ctx context.Context, ab *domain.AddressBook) error {
	c.log.Info().Str("address_book", ab.Name).Msg("resetting address book")
	if err := c.store.ResetAddressBook(ctx, ab.ID); err != nil {
		return fmt.Errorf("failed to reset address book %s: %w", ab.Name, err)
	}
	if err := c.store.SetSetting(ctx, store.SettingNeedRestart, strconv.FormatBool(true)); err != nil {
		return fmt.Errorf("failed to request restart: %w", err)
	}
	if err := c.store.SetSetting(ctx, store.SettingStatusBarText, PromptPleaseRestart); err != nil {
		return fmt.Errorf("failed to set status text: %w", err)
	}
	return nil
}

// reload refreshes the address book list and reloads the form of the book
// with the given ID. The group catalog keeps its remote entries.
func (c *Controller) reload(ctx context.Context, id string) error {
	if err := c.fillAddressBooks(ctx); err != nil {
		return err
	}
	c.selected = -1
	for i, ab := range c.books {
		if ab.ID == id {
			c.selected = i
			break
		}
	}
	if c.selected < 0 {
		return ErrNoSelection
	}
	return c.loadForm(ctx)
}

// Close offers to save unsaved changes. Closing is always allowed.
func (c *Controller) Close(ctx context.Context) bool {
	if c.unsaved && c.prompt.Confirm(PromptUnsavedChanges) {
		if _, err := c.SaveSelectedAccount(ctx); err != nil {
			c.log.Warn().Err(err).Msg("failed to save account on close")
		}
	}
	return true
}

// NewAddressBook returns the address book named name, creating it when it
// does not exist, and refreshes the address book list.
func (c *Controller) NewAddressBook(ctx context.Context, name string) (*domain.AddressBook, error) {
	ab, err := c.store.GetAddressBookByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		ab = &domain.AddressBook{Name: name}
		err = c.store.CreateAddressBook(ctx, ab)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get or create address book %s: %w", name, err)
	}

	var selectedID string
	if cur := c.SelectedAddressBook(); cur != nil {
		selectedID = cur.ID
	}
	if err := c.fillAddressBooks(ctx); err != nil {
		return nil, err
	}
	c.selected = -1
	for i, b := range c.books {
		if b.ID == selectedID {
			c.selected = i
		}
	}
	return ab, nil
}

// ExplainDirection shows what the sync directions mean.
func (c *Controller) ExplainDirection() {
	c.prompt.Alert(PromptDirection)
}
