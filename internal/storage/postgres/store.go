package postgres

// Package postgres provides a pgx-backed storage implementation that
// satisfies the repository and writer interfaces used by the services. It is
// intentionally small and explicit: it maps the two collections onto two
// tables and keeps insertion order with a sequence column, since that order
// is the tie-break for date sorting.

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/govalues/money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeeper-dev/bookkeeper/internal/errs"
	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
	"github.com/bookkeeper-dev/bookkeeper/internal/watch"
)

// Store holds a pgx connection pool and implements the read/write interfaces
// used across the service layer. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
	hub  *watch.Hub
}

// Open establishes a pgx pool using the provided connection string, ensures
// the schema exists, and seeds the default chart when the accounts table is
// empty.
func Open(ctx context.Context, dsn string, defaults []ledger.Account) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	s := &Store{pool: pool, hub: watch.NewHub()}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := s.seedDefaults(ctx, defaults); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Watch subscribes to collection mutation events.
func (s *Store) Watch() <-chan watch.Event { return s.hub.Subscribe() }

func (s *Store) ensureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `
		create table if not exists accounts (
			code text primary key,
			name text not null,
			type text not null,
			seq  bigserial
		)
	`); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, `
		create table if not exists entries (
			id             uuid primary key,
			date           date not null,
			description    text not null,
			debit_account  text not null,
			credit_account text not null,
			amount_minor   bigint not null,
			currency       text not null,
			seq            bigserial
		)
	`)
	return err
}

func (s *Store) seedDefaults(ctx context.Context, defaults []ledger.Account) error {
	var n int64
	if err := s.pool.QueryRow(ctx, `select count(*) from accounts`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, a := range defaults {
		if _, err := tx.Exec(ctx, `
			insert into accounts (code, name, type) values ($1, $2, $3)
		`, a.Code, a.Name, a.Type); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// --- Account reads ---

// ListAccounts returns all accounts in insertion order.
func (s *Store) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.pool.Query(ctx, `
		select code, name, type from accounts order by seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.Account, 0)
	for rows.Next() {
		var a ledger.Account
		if err := rows.Scan(&a.Code, &a.Name, &a.Type); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAccount fetches a single account by code.
func (s *Store) GetAccount(ctx context.Context, code string) (ledger.Account, error) {
	var a ledger.Account
	err := s.pool.QueryRow(ctx, `
		select code, name, type from accounts where code = $1
	`, code).Scan(&a.Code, &a.Name, &a.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Account{}, errs.ErrNotFound
	}
	if err != nil {
		return ledger.Account{}, err
	}
	return a, nil
}

// --- Account writes ---

// CreateAccount inserts an account row.
func (s *Store) CreateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	_, err := s.pool.Exec(ctx, `
		insert into accounts (code, name, type) values ($1, $2, $3)
	`, a.Code, a.Name, a.Type)
	if err != nil {
		return ledger.Account{}, err
	}
	s.hub.Notify(watch.CollectionAccounts)
	return a, nil
}

// UpdateAccount rewrites the mutable columns of an account row.
func (s *Store) UpdateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error) {
	tag, err := s.pool.Exec(ctx, `
		update accounts set name = $2, type = $3 where code = $1
	`, a.Code, a.Name, a.Type)
	if err != nil {
		return ledger.Account{}, err
	}
	if tag.RowsAffected() == 0 {
		return ledger.Account{}, errs.ErrNotFound
	}
	s.hub.Notify(watch.CollectionAccounts)
	return a, nil
}

// DeleteAccount removes an account row by code.
func (s *Store) DeleteAccount(ctx context.Context, code string) error {
	tag, err := s.pool.Exec(ctx, `delete from accounts where code = $1`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	s.hub.Notify(watch.CollectionAccounts)
	return nil
}

// --- Entry reads ---

// ListEntries returns all entries in insertion order.
func (s *Store) ListEntries(ctx context.Context) ([]ledger.JournalEntry, error) {
	rows, err := s.pool.Query(ctx, `
		select id, date, description, debit_account, credit_account, amount_minor, currency
		from entries order by seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.JournalEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetEntry fetches a single entry by id.
func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (ledger.JournalEntry, error) {
	row := s.pool.QueryRow(ctx, `
		select id, date, description, debit_account, credit_account, amount_minor, currency
		from entries where id = $1
	`, id)
	e, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.JournalEntry{}, errs.ErrNotFound
	}
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	return e, nil
}

// --- Entry writes ---

// CreateJournalEntry inserts an entry row.
func (s *Store) CreateJournalEntry(ctx context.Context, e ledger.JournalEntry) (ledger.JournalEntry, error) {
	units, _ := e.Amount.MinorUnits()
	_, err := s.pool.Exec(ctx, `
		insert into entries (id, date, description, debit_account, credit_account, amount_minor, currency)
		values ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.Date, e.Description, e.DebitAccount, e.CreditAccount, units, e.Amount.Curr().Code())
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	s.hub.Notify(watch.CollectionEntries)
	return e, nil
}

// DeleteJournalEntry removes an entry row by id.
func (s *Store) DeleteJournalEntry(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `delete from entries where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	s.hub.Notify(watch.CollectionEntries)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (ledger.JournalEntry, error) {
	var e ledger.JournalEntry
	var units int64
	var currency string
	if err := row.Scan(&e.ID, &e.Date, &e.Description, &e.DebitAccount, &e.CreditAccount, &units, &currency); err != nil {
		return ledger.JournalEntry{}, err
	}
	amt, err := money.NewAmountFromMinorUnits(currency, units)
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	e.Amount = amt
	e.Date = e.Date.UTC()
	return e, nil
}
