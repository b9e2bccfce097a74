// Package journal implements the journal ledger rules: validated immutable
// inserts, unconditional deletes, and the listing order contract.
package journal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/bookkeeper-dev/bookkeeper/internal/errs"
	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
)

// Repo defines read operations needed by the service. ListEntries returns
// entries in insertion order; that order is the tie-break for same-date
// sorting everywhere.
type Repo interface {
	ListEntries(ctx context.Context) ([]ledger.JournalEntry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (ledger.JournalEntry, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	CreateJournalEntry(ctx context.Context, e ledger.JournalEntry) (ledger.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, id uuid.UUID) error
}

// AccountReader resolves account codes at insertion time.
type AccountReader interface {
	GetAccount(ctx context.Context, code string) (ledger.Account, error)
}

// Service exposes validation, creation, deletion, and listing of journal
// entries.
type Service interface {
	Record(ctx context.Context, date time.Time, description, debitAccount, creditAccount string, amount money.Amount) (ledger.JournalEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]ledger.JournalEntry, error)
}

type service struct {
	repo     Repo
	writer   Writer
	accounts AccountReader
}

// New constructs a journal service.
func New(repo Repo, writer Writer, accounts AccountReader) Service {
	return &service{repo: repo, writer: writer, accounts: accounts}
}

// Record validates the entry fields, assigns a fresh id, and appends the
// entry. Validation is all-or-nothing: any failure leaves the journal
// untouched.
func (s *service) Record(ctx context.Context, date time.Time, description, debitAccount, creditAccount string, amount money.Amount) (ledger.JournalEntry, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return ledger.JournalEntry{}, errs.ErrMissingDescription
	}
	if debitAccount == "" {
		return ledger.JournalEntry{}, errs.ErrMissingDebitAccount
	}
	if creditAccount == "" {
		return ledger.JournalEntry{}, errs.ErrMissingCreditAccount
	}
	if debitAccount == creditAccount {
		return ledger.JournalEntry{}, errs.ErrSameAccount
	}
	if units, ok := amount.MinorUnits(); !ok || units <= 0 {
		return ledger.JournalEntry{}, errs.ErrInvalidAmount
	}
	for _, code := range []string{debitAccount, creditAccount} {
		if _, err := s.accounts.GetAccount(ctx, code); err != nil {
			return ledger.JournalEntry{}, fmt.Errorf("%s: %w", code, errs.ErrUnknownAccount)
		}
	}
	e := ledger.JournalEntry{
		ID:            uuid.New(),
		Date:          date,
		Description:   description,
		DebitAccount:  debitAccount,
		CreditAccount: creditAccount,
		Amount:        amount,
	}
	return s.writer.CreateJournalEntry(ctx, e)
}

// Delete removes the entry unconditionally; nothing downstream blocks it.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteJournalEntry(ctx, id)
}

// List returns entries ordered by date descending; entries sharing a date
// come back in reverse insertion order, most recently recorded first.
func (s *service) List(ctx context.Context) ([]ledger.JournalEntry, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.JournalEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	// Stable sort keeps the reverse insertion order within equal dates.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
