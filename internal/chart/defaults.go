package chart

import "github.com/bookkeeper-dev/bookkeeper/internal/ledger"

// DefaultChart returns the fixed chart of accounts used when no account
// collection has been persisted yet.
func DefaultChart() []ledger.Account {
	return []ledger.Account{
		{Code: "1001", Name: "Cash", Type: ledger.AccountTypeAsset},
		{Code: "1002", Name: "Accounts Receivable", Type: ledger.AccountTypeAsset},
		{Code: "1003", Name: "Inventory", Type: ledger.AccountTypeAsset},
		{Code: "1004", Name: "Equipment", Type: ledger.AccountTypeAsset},
		{Code: "1005", Name: "Buildings", Type: ledger.AccountTypeAsset},

		{Code: "2001", Name: "Accounts Payable", Type: ledger.AccountTypeLiability},
		{Code: "2002", Name: "Notes Payable", Type: ledger.AccountTypeLiability},
		{Code: "2003", Name: "Mortgage Payable", Type: ledger.AccountTypeLiability},

		{Code: "3001", Name: "Owner's Capital", Type: ledger.AccountTypeEquity},
		{Code: "3002", Name: "Retained Earnings", Type: ledger.AccountTypeEquity},

		{Code: "4001", Name: "Sales Revenue", Type: ledger.AccountTypeRevenue},
		{Code: "4002", Name: "Service Revenue", Type: ledger.AccountTypeRevenue},
		{Code: "4003", Name: "Interest Revenue", Type: ledger.AccountTypeRevenue},

		{Code: "5001", Name: "Cost of Goods Sold", Type: ledger.AccountTypeExpense},
		{Code: "5002", Name: "Salaries Expense", Type: ledger.AccountTypeExpense},
		{Code: "5003", Name: "Rent Expense", Type: ledger.AccountTypeExpense},
		{Code: "5004", Name: "Utilities Expense", Type: ledger.AccountTypeExpense},
		{Code: "5005", Name: "Advertising Expense", Type: ledger.AccountTypeExpense},
		{Code: "5006", Name: "Depreciation Expense", Type: ledger.AccountTypeExpense},
	}
}
