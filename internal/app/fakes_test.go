package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/store"
)

type fakePrompter struct {
	answer   bool
	confirms []string
	alerts   []string
}

func (p *fakePrompter) Confirm(prompt string) bool {
	p.confirms = append(p.confirms, prompt)
	return p.answer
}

func (p *fakePrompter) Alert(message string) {
	p.alerts = append(p.alerts, message)
}

type fakeStore struct {
	books    []domain.AddressBook
	prefs    map[string]domain.Preferences
	settings map[string]string
	resets   []string
	saveErr  error
}

func newFakeStore(books ...domain.AddressBook) *fakeStore {
	return &fakeStore{
		books:    books,
		prefs:    make(map[string]domain.Preferences),
		settings: make(map[string]string),
	}
}

func (s *fakeStore) LoadPreferences(_ context.Context, id string) (*domain.Preferences, error) {
	p, ok := s.prefs[id]
	if !ok {
		p = domain.DefaultPreferences()
	}
	return &p, nil
}

func (s *fakeStore) SavePreferences(_ context.Context, id string, p *domain.Preferences) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.prefs[id] = *p
	return nil
}

func (s *fakeStore) ListAddressBooks(context.Context) ([]domain.AddressBook, error) {
	return append([]domain.AddressBook(nil), s.books...), nil
}

func (s *fakeStore) GetAddressBookByName(_ context.Context, name string) (*domain.AddressBook, error) {
	for _, ab := range s.books {
		if ab.Name == name {
			return &ab, nil
		}
	}
	return nil, fmt.Errorf("address book %s: %w", name, store.ErrNotFound)
}

func (s *fakeStore) CreateAddressBook(_ context.Context, ab *domain.AddressBook) error {
	if ab.ID == "" {
		ab.ID = fmt.Sprintf("ab-%d", len(s.books)+1)
	}
	s.books = append(s.books, *ab)
	return nil
}

func (s *fakeStore) ResetAddressBook(_ context.Context, id string) error {
	s.resets = append(s.resets, id)
	p := s.prefs[id]
	p.LastSync = 0
	s.prefs[id] = p
	return nil
}

func (s *fakeStore) SetSetting(_ context.Context, key, value string) error {
	s.settings[key] = value
	return nil
}

type fakeCredentials map[string]string

func (c fakeCredentials) Usernames(context.Context) ([]string, error) {
	var names []string
	for _, n := range []string{"alice", "bob", "carol"} {
		if _, ok := c[n]; ok {
			names = append(names, n)
		}
	}
	return names, nil
}

func (c fakeCredentials) Lookup(_ context.Context, username string) (string, error) {
	tok, ok := c[username]
	if !ok {
		return "", fmt.Errorf("failed to load token for %s: %w", username, store.ErrNoCredential)
	}
	return tok, nil
}

type fakeExchanger struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (e *fakeExchanger) Exchange(_ context.Context, refreshToken string) (domain.AccessToken, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, refreshToken)
	if e.err != nil {
		return domain.AccessToken{}, e.err
	}
	return domain.AccessToken{Type: "Bearer", Value: "access-" + refreshToken}, nil
}

type fakeFetcher struct {
	mu     sync.Mutex
	groups map[string][]domain.Group
	tokens []domain.AccessToken
	err    error
}

func (f *fakeFetcher) FetchGroups(_ context.Context, token domain.AccessToken, username string) ([]domain.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	if f.err != nil {
		return nil, f.err
	}
	return f.groups[username], nil
}
