package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/govalues/money"

	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
)

type ctxKey string

const ctxKeyPostEntry ctxKey = "validatedPostEntry"
const ctxKeyPostAccount ctxKey = "validatedPostAccount"

// postEntryInput is the decoded and parsed POST /entries payload stored in
// the request context for the handler.
type postEntryInput struct {
	date          time.Time
	description   string
	debitAccount  string
	creditAccount string
	amount        money.Amount
}

// validatePostEntry decodes the POST /entries body and parses the date and
// amount into domain values. Business validation stays in the journal
// service.
func (s *Server) validatePostEntry() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req postEntryRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			// The entry form defaults the date to today; an omitted date does
			// the same here. Truncated to the calendar day so defaulted dates
			// compare equal to parsed ones and never carry a time of day.
			y, m, d := time.Now().UTC().Date()
			date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
			if req.Date != "" {
				var err error
				if date, err = ledger.ParseDate(req.Date); err != nil {
					badRequest(w, "invalid date, want "+ledger.DateLayout)
					return
				}
			}
			amount, err := money.NewAmountFromMinorUnits(s.currency, req.AmountMinor)
			if err != nil {
				badRequest(w, "invalid amount")
				return
			}
			in := postEntryInput{
				date:          date,
				description:   req.Description,
				debitAccount:  req.DebitAccount,
				creditAccount: req.CreditAccount,
				amount:        amount,
			}
			ctx := context.WithValue(r.Context(), ctxKeyPostEntry, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validatePostAccount decodes the POST /accounts body.
func (s *Server) validatePostAccount() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req postAccountRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyPostAccount, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
