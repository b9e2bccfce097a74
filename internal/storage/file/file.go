// Package file persists the two collections as independently stored JSON
// documents under a data directory. Each collection is always read in full at
// open and written back in full after every mutation; there is no partial
// update. An absent accounts document falls back to the default chart, an
// absent entries document to an empty journal; content that cannot be decoded
// is reported as data corruption.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/bookkeeper-dev/bookkeeper/internal/errs"
	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
	"github.com/bookkeeper-dev/bookkeeper/internal/storage/memory"
)

const (
	accountsFile = "accounts.json"
	entriesFile  = "entries.json"
)

// Store keeps the working copies in an embedded memory store. Each mutation
// writes the prospective collection to disk first and commits to memory only
// after the write succeeds, so a failed save leaves the in-memory copy
// matching the persisted one. Reads and watch subscriptions come straight
// from the memory store.
type Store struct {
	*memory.Store
	dir string
	// saveMu serializes the read-modify-write cycle against the data dir.
	saveMu sync.Mutex
}

type accountRecord struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type entryRecord struct {
	ID            uuid.UUID `json:"id"`
	Date          string    `json:"date"`
	Description   string    `json:"description"`
	DebitAccount  string    `json:"debit_account"`
	CreditAccount string    `json:"credit_account"`
	AmountMinor   int64     `json:"amount_minor"`
	Currency      string    `json:"currency"`
}

// Open loads both collections from dir, seeding the given default chart when
// no account collection exists yet.
func Open(dir string, defaults []ledger.Account) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	s := &Store{Store: memory.New(), dir: dir}

	accounts, err := loadAccounts(filepath.Join(dir, accountsFile))
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = defaults
	}
	for _, a := range accounts {
		s.SeedAccount(a)
	}

	entries, err := loadEntries(filepath.Join(dir, entriesFile))
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		s.SeedEntry(e)
	}
	return s, nil
}

// loadAccounts returns nil with no error when the collection is absent.
func loadAccounts(path string) ([]ledger.Account, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", accountsFile, err)
	}
	var recs []accountRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", accountsFile, err, errs.ErrDataCorruption)
	}
	out := make([]ledger.Account, 0, len(recs))
	for _, r := range recs {
		typ := ledger.AccountType(r.Type)
		if !typ.Valid() {
			return nil, fmt.Errorf("%s: account %s has type %q: %w", accountsFile, r.Code, r.Type, errs.ErrDataCorruption)
		}
		out = append(out, ledger.Account{Code: r.Code, Name: r.Name, Type: typ})
	}
	return out, nil
}

func loadEntries(path string) ([]ledger.JournalEntry, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", entriesFile, err)
	}
	var recs []entryRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", entriesFile, err, errs.ErrDataCorruption)
	}
	out := make([]ledger.JournalEntry, 0, len(recs))
	for _, r := range recs {
		date, err := ledger.ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: entry %s date %q: %w", entriesFile, r.ID, r.Date, errs.ErrDataCorruption)
		}
		amt, err := money.NewAmountFromMinorUnits(r.Currency, r.AmountMinor)
		if err != nil {
			return nil, fmt.Errorf("%s: entry %s amount: %v: %w", entriesFile, r.ID, err, errs.ErrDataCorruption)
		}
		out = append(out, ledger.JournalEntry{
			ID:            r.ID,
			Date:          date,
			Description:   r.Description,
			DebitAccount:  r.DebitAccount,
			CreditAccount: r.CreditAccount,
			Amount:        amt,
		})
	}
	return out, nil
}

// CreateAccount persists the extended account collection, then commits the
// account in memory.
func (s *Store) CreateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	accounts, err := s.Store.ListAccounts(ctx)
	if err != nil {
		return ledger.Account{}, err
	}
	if err := s.writeCollection(accountsFile, accountRecords(append(accounts, a))); err != nil {
		return ledger.Account{}, err
	}
	return s.Store.CreateAccount(ctx, a)
}

// UpdateAccount persists the account collection with the replacement applied,
// then commits it in memory.
func (s *Store) UpdateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	accounts, err := s.Store.ListAccounts(ctx)
	if err != nil {
		return ledger.Account{}, err
	}
	found := false
	for i := range accounts {
		if accounts[i].Code == a.Code {
			accounts[i] = a
			found = true
			break
		}
	}
	if !found {
		return ledger.Account{}, errs.ErrNotFound
	}
	if err := s.writeCollection(accountsFile, accountRecords(accounts)); err != nil {
		return ledger.Account{}, err
	}
	return s.Store.UpdateAccount(ctx, a)
}

// DeleteAccount persists the account collection without the account, then
// removes it from memory.
func (s *Store) DeleteAccount(ctx context.Context, code string) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	accounts, err := s.Store.ListAccounts(ctx)
	if err != nil {
		return err
	}
	kept := make([]ledger.Account, 0, len(accounts))
	found := false
	for _, a := range accounts {
		if a.Code == code {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return errs.ErrNotFound
	}
	if err := s.writeCollection(accountsFile, accountRecords(kept)); err != nil {
		return err
	}
	return s.Store.DeleteAccount(ctx, code)
}

// CreateJournalEntry persists the extended entry collection, then commits the
// entry in memory.
func (s *Store) CreateJournalEntry(ctx context.Context, e ledger.JournalEntry) (ledger.JournalEntry, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	entries, err := s.Store.ListEntries(ctx)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	if err := s.writeCollection(entriesFile, entryRecords(append(entries, e))); err != nil {
		return ledger.JournalEntry{}, err
	}
	return s.Store.CreateJournalEntry(ctx, e)
}

// DeleteJournalEntry persists the entry collection without the entry, then
// removes it from memory.
func (s *Store) DeleteJournalEntry(ctx context.Context, id uuid.UUID) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	entries, err := s.Store.ListEntries(ctx)
	if err != nil {
		return err
	}
	kept := make([]ledger.JournalEntry, 0, len(entries))
	found := false
	for _, e := range entries {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return errs.ErrNotFound
	}
	if err := s.writeCollection(entriesFile, entryRecords(kept)); err != nil {
		return err
	}
	return s.Store.DeleteJournalEntry(ctx, id)
}

func accountRecords(accounts []ledger.Account) []accountRecord {
	recs := make([]accountRecord, 0, len(accounts))
	for _, a := range accounts {
		recs = append(recs, accountRecord{Code: a.Code, Name: a.Name, Type: string(a.Type)})
	}
	return recs
}

func entryRecords(entries []ledger.JournalEntry) []entryRecord {
	recs := make([]entryRecord, 0, len(entries))
	for _, e := range entries {
		units, _ := e.Amount.MinorUnits()
		recs = append(recs, entryRecord{
			ID:            e.ID,
			Date:          ledger.FormatDate(e.Date),
			Description:   e.Description,
			DebitAccount:  e.DebitAccount,
			CreditAccount: e.CreditAccount,
			AmountMinor:   units,
			Currency:      e.Amount.Curr().Code(),
		})
	}
	return recs
}

// writeCollection marshals and writes one collection file. Callers hold
// saveMu.
func (s *Store) writeCollection(name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
