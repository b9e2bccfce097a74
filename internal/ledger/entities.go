package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"
)

// Side represents the accounting position of a journal leg.
type Side string

const (
	// SideDebit records a value on the debit side of an account.
	SideDebit Side = "debit"
	// SideCredit records a value on the credit side of an account.
	SideCredit Side = "credit"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideDebit {
		return SideCredit
	}
	return SideDebit
}

// AccountType enumerates the broad classification of an account in the chart.
type AccountType string

const (
	// AccountTypeAsset increases on the debit side and holds owned resources.
	AccountTypeAsset AccountType = "asset"
	// AccountTypeLiability increases on the credit side and tracks obligations.
	AccountTypeLiability AccountType = "liability"
	// AccountTypeEquity captures the owner's residual interest in the entity.
	AccountTypeEquity AccountType = "equity"
	// AccountTypeRevenue represents inflows that increase equity.
	AccountTypeRevenue AccountType = "revenue"
	// AccountTypeExpense represents outflows that decrease equity.
	AccountTypeExpense AccountType = "expense"
)

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// NormalSide returns the side whose increase is the natural direction for the
// type: assets and expenses are debit-normal, the rest credit-normal. The
// mapping is fixed and is consulted by every balance computation.
func (t AccountType) NormalSide() Side {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// Band is the inclusive numeric range reserved for an account type's codes.
type Band struct {
	Start int
	End   int
}

// Contains reports whether n falls inside the band.
func (b Band) Contains(n int) bool { return n >= b.Start && n <= b.End }

// Band returns the code range reserved for the type: assets 1000-1999,
// liabilities 2000-2999, equity 3000-3999, revenue 4000-4999, expenses
// 5000-5999.
func (t AccountType) Band() Band {
	switch t {
	case AccountTypeAsset:
		return Band{Start: 1000, End: 1999}
	case AccountTypeLiability:
		return Band{Start: 2000, End: 2999}
	case AccountTypeEquity:
		return Band{Start: 3000, End: 3999}
	case AccountTypeRevenue:
		return Band{Start: 4000, End: 4999}
	default:
		return Band{Start: 5000, End: 5999}
	}
}

// Account is one uniquely coded, typed bucket in the chart of accounts.
// The code is immutable once the account is created; edits change name and
// type only.
type Account struct {
	Code string
	Name string
	Type AccountType
}

// JournalEntry is one transaction: exactly one debit leg and one credit leg
// referencing accounts by code, plus a strictly positive amount. Entries are
// immutable once recorded.
type JournalEntry struct {
	ID            uuid.UUID
	Date          time.Time
	Description   string
	DebitAccount  string
	CreditAccount string
	Amount        money.Amount
}

// Touches reports whether either leg of the entry references code, and on
// which side. ok is false when the entry does not reference the account.
func (e JournalEntry) Touches(code string) (side Side, ok bool) {
	switch code {
	case e.DebitAccount:
		return SideDebit, true
	case e.CreditAccount:
		return SideCredit, true
	}
	return "", false
}

// DateLayout is the calendar-date wire format; entries carry no time of day.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date in DateLayout, normalized to UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }
