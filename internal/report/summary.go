package report

import (
	"github.com/govalues/money"

	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
)

// Statement groupings. The system does not check that assets equal
// liabilities plus equity; entries balance pairwise and nothing more.
var (
	IncomeStatementTypes = []ledger.AccountType{ledger.AccountTypeRevenue, ledger.AccountTypeExpense}
	BalanceSheetTypes    = []ledger.AccountType{ledger.AccountTypeAsset, ledger.AccountTypeLiability, ledger.AccountTypeEquity}
)

// TotalsByType sums the balances of the chart grouped by account type. Every
// type is present in the result, zero when no account of that type carries a
// balance.
func TotalsByType(accounts []ledger.Account, balances map[string]money.Amount, currency string) (map[ledger.AccountType]money.Amount, error) {
	zero, err := money.NewAmountFromMinorUnits(currency, 0)
	if err != nil {
		return nil, err
	}
	out := map[ledger.AccountType]money.Amount{
		ledger.AccountTypeAsset:     zero,
		ledger.AccountTypeLiability: zero,
		ledger.AccountTypeEquity:    zero,
		ledger.AccountTypeRevenue:   zero,
		ledger.AccountTypeExpense:   zero,
	}
	for _, a := range accounts {
		bal, ok := balances[a.Code]
		if !ok {
			continue
		}
		v, err := out[a.Type].Add(bal)
		if err != nil {
			return nil, err
		}
		out[a.Type] = v
	}
	return out, nil
}

// NetIncome is total revenue minus total expense.
func NetIncome(totals map[ledger.AccountType]money.Amount, currency string) (money.Amount, error) {
	net, err := money.NewAmountFromMinorUnits(currency, 0)
	if err != nil {
		return net, err
	}
	if rev, ok := totals[ledger.AccountTypeRevenue]; ok {
		if net, err = net.Add(rev); err != nil {
			return net, err
		}
	}
	if exp, ok := totals[ledger.AccountTypeExpense]; ok {
		if net, err = net.Sub(exp); err != nil {
			return net, err
		}
	}
	return net, nil
}
