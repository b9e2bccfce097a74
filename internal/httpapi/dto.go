package httpapi

import (
	"github.com/google/uuid"

	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
)

type postAccountRequest struct {
	Code string             `json:"code"`
	Name string             `json:"name"`
	Type ledger.AccountType `json:"type"`
}

type updateAccountRequest struct {
	Name string             `json:"name"`
	Type ledger.AccountType `json:"type"`
}

type accountResponse struct {
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	Type          ledger.AccountType `json:"type"`
	NormalBalance ledger.Side        `json:"normal_balance"`
}

func toAccountResponse(a ledger.Account) accountResponse {
	return accountResponse{Code: a.Code, Name: a.Name, Type: a.Type, NormalBalance: a.Type.NormalSide()}
}

type postEntryRequest struct {
	Date          string `json:"date"`
	Description   string `json:"description"`
	DebitAccount  string `json:"debit_account"`
	CreditAccount string `json:"credit_account"`
	AmountMinor   int64  `json:"amount_minor"`
}

type entryResponse struct {
	ID            uuid.UUID `json:"id"`
	Date          string    `json:"date"`
	Description   string    `json:"description"`
	DebitAccount  string    `json:"debit_account"`
	CreditAccount string    `json:"credit_account"`
	AmountMinor   int64     `json:"amount_minor"`
	Currency      string    `json:"currency"`
}

func toEntryResponse(e ledger.JournalEntry) entryResponse {
	units, _ := e.Amount.MinorUnits()
	return entryResponse{
		ID:            e.ID,
		Date:          ledger.FormatDate(e.Date),
		Description:   e.Description,
		DebitAccount:  e.DebitAccount,
		CreditAccount: e.CreditAccount,
		AmountMinor:   units,
		Currency:      e.Amount.Curr().Code(),
	}
}

type listEntriesResponse struct {
	Items []entryResponse `json:"items"`
}

type nextCodeResponse struct {
	Type ledger.AccountType `json:"type"`
	Code string             `json:"code"`
}

type balanceItem struct {
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	Type         ledger.AccountType `json:"type"`
	BalanceMinor int64              `json:"balance_minor"`
	// Annotation is "CR" or "DR" when the balance has flipped to the side
	// opposite the account's normal balance, empty otherwise.
	Annotation string `json:"annotation,omitempty"`
}

type balancesResponse struct {
	Currency string        `json:"currency"`
	Items    []balanceItem `json:"items"`
}

type ledgerTransaction struct {
	EntryID      uuid.UUID   `json:"entry_id"`
	Date         string      `json:"date"`
	Description  string      `json:"description"`
	Side         ledger.Side `json:"side"`
	AmountMinor  int64       `json:"amount_minor"`
	RunningMinor int64       `json:"running_balance_minor"`
}

type ledgerResponse struct {
	Account      accountResponse     `json:"account"`
	Currency     string              `json:"currency"`
	Transactions []ledgerTransaction `json:"transactions"`
	Debits       []ledgerTransaction `json:"debits"`
	Credits      []ledgerTransaction `json:"credits"`
	BalanceMinor int64               `json:"balance_minor"`
	Annotation   string              `json:"annotation,omitempty"`
}

type incomeStatement struct {
	TotalRevenueMinor int64 `json:"total_revenue_minor"`
	TotalExpenseMinor int64 `json:"total_expense_minor"`
	NetIncomeMinor    int64 `json:"net_income_minor"`
}

type balanceSheet struct {
	TotalAssetsMinor      int64 `json:"total_assets_minor"`
	TotalLiabilitiesMinor int64 `json:"total_liabilities_minor"`
	TotalEquityMinor      int64 `json:"total_equity_minor"`
}

type summaryResponse struct {
	Currency        string          `json:"currency"`
	IncomeStatement incomeStatement `json:"income_statement"`
	BalanceSheet    balanceSheet    `json:"balance_sheet"`
}
