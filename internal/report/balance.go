// Package report derives read-only projections from the two source
// collections: per-account balances, T-account histories, and statement
// totals. Every function here is a pure computation over its inputs.
package report

import (
	"github.com/govalues/money"

	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
)

// Balances computes the closing balance of every account in the chart,
// keyed by code. A balance starts at zero and each entry moves both of its
// legs: an amount posted on an account's normal side adds, the opposite side
// subtracts. A positive result sits on the account's natural side; a negative
// one has flipped to the opposite side. Legs referencing a code absent from
// the chart are skipped; an amount in a currency other than the book's is an
// error.
func Balances(accounts []ledger.Account, entries []ledger.JournalEntry, currency string) (map[string]money.Amount, error) {
	zero, err := money.NewAmountFromMinorUnits(currency, 0)
	if err != nil {
		return nil, err
	}
	types := make(map[string]ledger.AccountType, len(accounts))
	out := make(map[string]money.Amount, len(accounts))
	for _, a := range accounts {
		types[a.Code] = a.Type
		out[a.Code] = zero
	}
	for _, e := range entries {
		if t, ok := types[e.DebitAccount]; ok {
			v, err := post(out[e.DebitAccount], e.Amount, t.NormalSide() == ledger.SideDebit)
			if err != nil {
				return nil, err
			}
			out[e.DebitAccount] = v
		}
		if t, ok := types[e.CreditAccount]; ok {
			v, err := post(out[e.CreditAccount], e.Amount, t.NormalSide() == ledger.SideCredit)
			if err != nil {
				return nil, err
			}
			out[e.CreditAccount] = v
		}
	}
	return out, nil
}

// post moves bal by amt: toward the account's natural side when natural,
// away from it otherwise. A currency mismatch between bal and amt surfaces as
// an error rather than a dropped posting.
func post(bal, amt money.Amount, natural bool) (money.Amount, error) {
	if natural {
		return bal.Add(amt)
	}
	return bal.Sub(amt)
}
