// Package chart implements the chart-of-accounts rules: code allocation
// inside per-type bands, immutable codes, and referential-integrity-protected
// deletion.
package chart

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bookkeeper-dev/bookkeeper/internal/errs"
	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
)

// Repo defines read operations needed by the service.
type Repo interface {
	ListAccounts(ctx context.Context) ([]ledger.Account, error)
	GetAccount(ctx context.Context, code string) (ledger.Account, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	CreateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error)
	UpdateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error)
	DeleteAccount(ctx context.Context, code string) error
}

// EntryReader gives the service the visibility into the journal it needs to
// decide whether an account may be deleted.
type EntryReader interface {
	ListEntries(ctx context.Context) ([]ledger.JournalEntry, error)
}

// Service exposes chart-of-accounts operations.
type Service interface {
	NextCode(ctx context.Context, typ ledger.AccountType) (string, error)
	Create(ctx context.Context, a ledger.Account) (ledger.Account, error)
	Update(ctx context.Context, code, name string, typ ledger.AccountType) (ledger.Account, error)
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]ledger.Account, error)
	Get(ctx context.Context, code string) (ledger.Account, error)
}

type service struct {
	repo    Repo
	writer  Writer
	entries EntryReader
}

// New constructs a chart service over the given repository, writer, and
// journal reader.
func New(repo Repo, writer Writer, entries EntryReader) Service {
	return &service{repo: repo, writer: writer, entries: entries}
}

// NextCode returns an auto-generated code for a new account of the type.
func (s *service) NextCode(ctx context.Context, typ ledger.AccountType) (string, error) {
	if !typ.Valid() {
		return "", errs.ErrMissingType
	}
	existing, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return "", err
	}
	codes := make([]string, 0, len(existing))
	for _, a := range existing {
		codes = append(codes, a.Code)
	}
	return GenerateCode(typ, codes), nil
}

func (s *service) Create(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	a.Code = strings.TrimSpace(a.Code)
	a.Name = strings.TrimSpace(a.Name)
	if a.Code == "" {
		return ledger.Account{}, errs.ErrMissingCode
	}
	if a.Name == "" {
		return ledger.Account{}, errs.ErrMissingName
	}
	if a.Type == "" {
		return ledger.Account{}, errs.ErrMissingType
	}
	if !a.Type.Valid() {
		return ledger.Account{}, fmt.Errorf("%q: %w", a.Type, errs.ErrMissingType)
	}
	if err := validateCode(a.Code, a.Type); err != nil {
		return ledger.Account{}, err
	}
	existing, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return ledger.Account{}, err
	}
	for _, other := range existing {
		if other.Code == a.Code {
			return ledger.Account{}, fmt.Errorf("%s: %w", a.Code, errs.ErrDuplicateCode)
		}
	}
	return s.writer.CreateAccount(ctx, a)
}

// Update applies name/type changes to an existing account. The code is fixed
// for the life of the account, so the target is addressed by it.
func (s *service) Update(ctx context.Context, code, name string, typ ledger.AccountType) (ledger.Account, error) {
	current, err := s.repo.GetAccount(ctx, code)
	if err != nil {
		return ledger.Account{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ledger.Account{}, errs.ErrMissingName
	}
	if typ == "" {
		return ledger.Account{}, errs.ErrMissingType
	}
	if !typ.Valid() {
		return ledger.Account{}, fmt.Errorf("%q: %w", typ, errs.ErrMissingType)
	}
	// A type change must keep the immutable code inside the new type's band.
	if err := validateCode(current.Code, typ); err != nil {
		return ledger.Account{}, err
	}
	current.Name = name
	current.Type = typ
	return s.writer.UpdateAccount(ctx, current)
}

// Delete removes an account, failing with ErrAccountInUse while any journal
// entry still references it on either leg.
func (s *service) Delete(ctx context.Context, code string) error {
	if _, err := s.repo.GetAccount(ctx, code); err != nil {
		return err
	}
	entries, err := s.entries.ListEntries(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, ok := e.Touches(code); ok {
			return fmt.Errorf("%s: %w", code, errs.ErrAccountInUse)
		}
	}
	return s.writer.DeleteAccount(ctx, code)
}

func (s *service) List(ctx context.Context) ([]ledger.Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *service) Get(ctx context.Context, code string) (ledger.Account, error) {
	return s.repo.GetAccount(ctx, code)
}

// validateCode checks the 3-6 digit format and the per-type numeric band.
func validateCode(code string, typ ledger.AccountType) error {
	if !isDigits(code) || len(code) < 3 || len(code) > 6 {
		return fmt.Errorf("%q: %w", code, errs.ErrInvalidCodeFormat)
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return fmt.Errorf("%q: %w", code, errs.ErrInvalidCodeFormat)
	}
	if band := typ.Band(); !band.Contains(n) {
		return fmt.Errorf("%s not in %d-%d for %s: %w", code, band.Start, band.End, typ, errs.ErrCodeOutOfRange)
	}
	return nil
}
