package memory

// Package memory provides a simple in-memory implementation used for
// development and tests. Both collections are kept as slices so insertion
// order survives, since that order is the tie-break for date sorting.
import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/bookkeeper-dev/bookkeeper/internal/errs"
	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
	"github.com/bookkeeper-dev/bookkeeper/internal/watch"
)

// Store is an in-memory implementation of the repository and writer
// interfaces used by the services. It is guarded by an RWMutex and broadcasts
// a watch event after every successful mutation of either collection.
type Store struct {
	mu       sync.RWMutex
	accounts []ledger.Account
	entries  []ledger.JournalEntry
	hub      *watch.Hub
}

// New constructs an empty store.
func New() *Store { return &Store{hub: watch.NewHub()} }

// Watch subscribes to collection mutation events.
func (s *Store) Watch() <-chan watch.Event { return s.hub.Subscribe() }

// SeedAccount appends an account without broadcasting; used when loading
// persisted state and in tests.
func (s *Store) SeedAccount(a ledger.Account) {
	s.mu.Lock()
	s.accounts = append(s.accounts, a)
	s.mu.Unlock()
}

// SeedEntry appends an entry without broadcasting.
func (s *Store) SeedEntry(e ledger.JournalEntry) {
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
}

// ListAccounts returns a copy of the account collection in insertion order.
func (s *Store) ListAccounts(_ context.Context) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Account, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

// GetAccount returns the account with the given code.
func (s *Store) GetAccount(_ context.Context, code string) (ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.Code == code {
			return a, nil
		}
	}
	return ledger.Account{}, errs.ErrNotFound
}

// CreateAccount appends a new account.
func (s *Store) CreateAccount(_ context.Context, a ledger.Account) (ledger.Account, error) {
	s.mu.Lock()
	s.accounts = append(s.accounts, a)
	s.mu.Unlock()
	s.hub.Notify(watch.CollectionAccounts)
	return a, nil
}

// UpdateAccount replaces the account with the same code.
func (s *Store) UpdateAccount(_ context.Context, a ledger.Account) (ledger.Account, error) {
	s.mu.Lock()
	for i := range s.accounts {
		if s.accounts[i].Code == a.Code {
			s.accounts[i] = a
			s.mu.Unlock()
			s.hub.Notify(watch.CollectionAccounts)
			return a, nil
		}
	}
	s.mu.Unlock()
	return ledger.Account{}, errs.ErrNotFound
}

// DeleteAccount removes the account with the given code.
func (s *Store) DeleteAccount(_ context.Context, code string) error {
	s.mu.Lock()
	for i := range s.accounts {
		if s.accounts[i].Code == code {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			s.mu.Unlock()
			s.hub.Notify(watch.CollectionAccounts)
			return nil
		}
	}
	s.mu.Unlock()
	return errs.ErrNotFound
}

// ListEntries returns a copy of the entry collection in insertion order.
func (s *Store) ListEntries(_ context.Context) ([]ledger.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.JournalEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// GetEntry returns a single entry by id.
func (s *Store) GetEntry(_ context.Context, id uuid.UUID) (ledger.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return ledger.JournalEntry{}, errs.ErrNotFound
}

// CreateJournalEntry appends a new entry.
func (s *Store) CreateJournalEntry(_ context.Context, e ledger.JournalEntry) (ledger.JournalEntry, error) {
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
	s.hub.Notify(watch.CollectionEntries)
	return e, nil
}

// DeleteJournalEntry removes an entry by id.
func (s *Store) DeleteJournalEntry(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.mu.Unlock()
			s.hub.Notify(watch.CollectionEntries)
			return nil
		}
	}
	s.mu.Unlock()
	return errs.ErrNotFound
}
