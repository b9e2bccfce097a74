// Report endpoints. Balances, T-accounts, and statement totals are
// recomputed in full from the two source collections on every request.
package httpapi

import (
	"net/http"
	"sort"

	chi "github.com/go-chi/chi/v5"
	"github.com/govalues/money"

	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
	"github.com/bookkeeper-dev/bookkeeper/internal/report"
)

// getBalances handles GET /balances.
func (s *Server) getBalances(w http.ResponseWriter, r *http.Request) {
	accounts, entries, ok := s.loadCollections(w, r)
	if !ok {
		return
	}
	balances, err := report.Balances(accounts, entries, s.currency)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to compute balances", "")
		return
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	resp := balancesResponse{Currency: s.currency, Items: make([]balanceItem, 0, len(accounts))}
	for _, a := range accounts {
		units := minorUnits(balances[a.Code])
		resp.Items = append(resp.Items, balanceItem{
			Code:         a.Code,
			Name:         a.Name,
			Type:         a.Type,
			BalanceMinor: units,
			Annotation:   annotationFor(a.Type, units),
		})
	}
	toJSON(w, http.StatusOK, resp)
}

// getAccountLedger handles GET /accounts/{code}/ledger: the T-account view
// with running balances and the debit/credit column split.
func (s *Server) getAccountLedger(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	account, err := s.accounts.GetAccount(r.Context(), code)
	if err != nil {
		notFound(w)
		return
	}
	entries, err := s.entries.ListEntries(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to load entries", "")
		return
	}
	ta, err := report.AccountLedger(account, entries, s.currency)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to compute ledger", "")
		return
	}
	balance := minorUnits(ta.Balance)
	resp := ledgerResponse{
		Account:      toAccountResponse(account),
		Currency:     s.currency,
		Transactions: toLedgerTransactions(ta.Transactions),
		Debits:       toLedgerTransactions(ta.Debits),
		Credits:      toLedgerTransactions(ta.Credits),
		BalanceMinor: balance,
		Annotation:   annotationFor(account.Type, balance),
	}
	toJSON(w, http.StatusOK, resp)
}

// getSummary handles GET /summary: income statement and balance sheet
// totals. The two sides of the balance sheet are not reconciled against each
// other.
func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	accounts, entries, ok := s.loadCollections(w, r)
	if !ok {
		return
	}
	balances, err := report.Balances(accounts, entries, s.currency)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to compute balances", "")
		return
	}
	totals, err := report.TotalsByType(accounts, balances, s.currency)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to compute totals", "")
		return
	}
	net, err := report.NetIncome(totals, s.currency)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to compute net income", "")
		return
	}
	resp := summaryResponse{
		Currency: s.currency,
		IncomeStatement: incomeStatement{
			TotalRevenueMinor: minorUnits(totals[ledger.AccountTypeRevenue]),
			TotalExpenseMinor: minorUnits(totals[ledger.AccountTypeExpense]),
			NetIncomeMinor:    minorUnits(net),
		},
		BalanceSheet: balanceSheet{
			TotalAssetsMinor:      minorUnits(totals[ledger.AccountTypeAsset]),
			TotalLiabilitiesMinor: minorUnits(totals[ledger.AccountTypeLiability]),
			TotalEquityMinor:      minorUnits(totals[ledger.AccountTypeEquity]),
		},
	}
	toJSON(w, http.StatusOK, resp)
}

func (s *Server) loadCollections(w http.ResponseWriter, r *http.Request) ([]ledger.Account, []ledger.JournalEntry, bool) {
	accounts, err := s.accounts.ListAccounts(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to load accounts", "")
		return nil, nil, false
	}
	entries, err := s.entries.ListEntries(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "failed to load entries", "")
		return nil, nil, false
	}
	return accounts, entries, true
}

func toLedgerTransactions(txs []report.Transaction) []ledgerTransaction {
	out := make([]ledgerTransaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ledgerTransaction{
			EntryID:      tx.EntryID,
			Date:         ledger.FormatDate(tx.Date),
			Description:  tx.Description,
			Side:         tx.Side,
			AmountMinor:  minorUnits(tx.Amount),
			RunningMinor: minorUnits(tx.Running),
		})
	}
	return out
}

func minorUnits(a money.Amount) int64 {
	units, _ := a.MinorUnits()
	return units
}

// annotationFor marks a balance that has flipped to the side opposite the
// account's normal balance: "CR" for debit-normal accounts, "DR" for
// credit-normal ones.
func annotationFor(typ ledger.AccountType, units int64) string {
	if units >= 0 {
		return ""
	}
	if typ.NormalSide() == ledger.SideDebit {
		return "CR"
	}
	return "DR"
}
