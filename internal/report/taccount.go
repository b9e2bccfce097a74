package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"

	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
)

// Transaction is one movement on an account together with the cumulative
// balance after applying it.
type Transaction struct {
	EntryID     uuid.UUID
	Date        time.Time
	Description string
	Side        ledger.Side
	Amount      money.Amount
	Running     money.Amount
}

// TAccount is the two-column view of one account's history: the full
// chronological sequence with running balances, the same sequence split into
// debit and credit columns, and the closing balance.
type TAccount struct {
	Account      ledger.Account
	Transactions []Transaction
	Debits       []Transaction
	Credits      []Transaction
	Balance      money.Amount
}

// AccountLedger reconstructs the T-account for one account over the full
// entry set. Entries touching the account on either leg are sorted ascending
// by date, ties broken by original creation order, and folded into a running
// balance starting at zero: an amount on the account's normal side adds, the
// opposite side subtracts. The final running balance equals the Balances
// result for the same inputs.
func AccountLedger(account ledger.Account, entries []ledger.JournalEntry, currency string) (TAccount, error) {
	bal, err := money.NewAmountFromMinorUnits(currency, 0)
	if err != nil {
		return TAccount{}, err
	}
	touched := make([]ledger.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := e.Touches(account.Code); ok {
			touched = append(touched, e)
		}
	}
	// Stable sort keeps creation order within equal dates.
	sort.SliceStable(touched, func(i, j int) bool { return touched[i].Date.Before(touched[j].Date) })

	ta := TAccount{Account: account, Transactions: make([]Transaction, 0, len(touched))}
	normal := account.Type.NormalSide()
	for _, e := range touched {
		side, _ := e.Touches(account.Code)
		bal, err = post(bal, e.Amount, side == normal)
		if err != nil {
			return TAccount{}, err
		}
		tx := Transaction{
			EntryID:     e.ID,
			Date:        e.Date,
			Description: e.Description,
			Side:        side,
			Amount:      e.Amount,
			Running:     bal,
		}
		ta.Transactions = append(ta.Transactions, tx)
		// The column split follows the leg side, not the sign of the running
		// balance.
		if side == ledger.SideDebit {
			ta.Debits = append(ta.Debits, tx)
		} else {
			ta.Credits = append(ta.Credits, tx)
		}
	}
	ta.Balance = bal
	return ta, nil
}
