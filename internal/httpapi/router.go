// Package httpapi wires the HTTP surface of the bookkeeping service.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/bookkeeper-dev/bookkeeper/internal/chart"
	"github.com/bookkeeper-dev/bookkeeper/internal/journal"
)

// AccountStore combines the account read and write operations a storage
// backend must provide.
type AccountStore interface {
	chart.Repo
	chart.Writer
}

// EntryStore combines the journal read and write operations a storage
// backend must provide.
type EntryStore interface {
	journal.Repo
	journal.Writer
}

// Server wires handlers and middleware using chi. It composes read and write
// dependencies through the chart and journal services.
type Server struct {
	chartSvc   chart.Service
	journalSvc journal.Service
	accounts   AccountStore
	entries    EntryStore
	currency   string
	log        *slog.Logger
	rt         *chi.Mux
}

// New constructs the HTTP server with routes and middleware. The logger is
// used by request/response logging and panic recovery; currency is the book
// currency every amount is denominated in.
func New(accounts AccountStore, entries EntryStore, currency string, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		chartSvc:   chart.New(accounts, accounts, entries),
		journalSvc: journal.New(entries, entries, accounts),
		accounts:   accounts,
		entries:    entries,
		currency:   currency,
		log:        logger,
		rt:         r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route
// middleware.
func (s *Server) routes() {
	// Journal
	s.rt.With(s.validatePostEntry()).Post("/v1/entries", s.postEntry)
	s.rt.Get("/v1/entries", s.listEntries)
	s.rt.Delete("/v1/entries/{id}", s.deleteEntry)
	// Chart of accounts
	s.rt.With(s.validatePostAccount()).Post("/v1/accounts", s.postAccount)
	s.rt.Get("/v1/accounts", s.listAccounts)
	s.rt.Get("/v1/accounts/next-code", s.nextCode)
	s.rt.Patch("/v1/accounts/{code}", s.updateAccount)
	s.rt.Delete("/v1/accounts/{code}", s.deleteAccount)
	// Reports
	s.rt.Get("/v1/accounts/{code}/ledger", s.getAccountLedger)
	s.rt.Get("/v1/balances", s.getBalances)
	s.rt.Get("/v1/summary", s.getSummary)
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
}
