package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bookkeeper-dev/bookkeeper/internal/httpapi"
	"github.com/bookkeeper-dev/bookkeeper/internal/ledger"
	"github.com/bookkeeper-dev/bookkeeper/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setup(t *testing.T) (*memory.Store, http.Handler) {
	t.Helper()
	store := memory.New()
	store.SeedAccount(ledger.Account{Code: "1001", Name: "Cash", Type: ledger.AccountTypeAsset})
	store.SeedAccount(ledger.Account{Code: "3001", Name: "Owner's Capital", Type: ledger.AccountTypeEquity})
	store.SeedAccount(ledger.Account{Code: "4001", Name: "Sales Revenue", Type: ledger.AccountTypeRevenue})
	store.SeedAccount(ledger.Account{Code: "5001", Name: "Rent Expense", Type: ledger.AccountTypeExpense})
	srv := httpapi.New(store, store, "USD", testLogger())
	return store, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

type errBody struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	Severity string `json:"severity"`
}

func expectErr(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var eb errBody
	decode(t, rec, &eb)
	if eb.Code != code {
		t.Fatalf("error code = %q, want %q", eb.Code, code)
	}
	if eb.Severity != "error" {
		t.Fatalf("severity = %q, want error", eb.Severity)
	}
}

func TestPostEntry(t *testing.T) {
	_, h := setup(t)
	rec := do(t, h, http.MethodPost, "/v1/entries", map[string]any{
		"date":           "2025-03-01",
		"description":    "Cash sale",
		"debit_account":  "1001",
		"credit_account": "4001",
		"amount_minor":   10000,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var got struct {
		ID            string `json:"id"`
		Date          string `json:"date"`
		Description   string `json:"description"`
		DebitAccount  string `json:"debit_account"`
		CreditAccount string `json:"credit_account"`
		AmountMinor   int64  `json:"amount_minor"`
		Currency      string `json:"currency"`
	}
	decode(t, rec, &got)
	if got.ID == "" {
		t.Fatal("entry created without id")
	}
	if got.Date != "2025-03-01" || got.DebitAccount != "1001" || got.CreditAccount != "4001" ||
		got.AmountMinor != 10000 || got.Currency != "USD" {
		t.Fatalf("entry = %+v", got)
	}
}

func TestPostEntry_OmittedDateDefaultsToToday(t *testing.T) {
	store, h := setup(t)
	before := time.Now().UTC()
	rec := do(t, h, http.MethodPost, "/v1/entries", map[string]any{
		"description":    "Cash sale",
		"debit_account":  "1001",
		"credit_account": "4001",
		"amount_minor":   100,
	})
	after := time.Now().UTC()
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var got struct {
		Date string `json:"date"`
	}
	decode(t, rec, &got)
	if got.Date != ledger.FormatDate(before) && got.Date != ledger.FormatDate(after) {
		t.Fatalf("date = %s, want today", got.Date)
	}

	// The defaulted date must be a bare calendar day, not a wall-clock
	// timestamp, or same-day ordering would follow the clock.
	entries, _ := store.ListEntries(context.Background())
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	stored := entries[0].Date
	y, m, d := stored.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if !stored.Equal(midnight) {
		t.Fatalf("stored date = %v, want midnight UTC", stored)
	}
}

func TestListEntries_DefaultedDateTiesWithExplicit(t *testing.T) {
	_, h := setup(t)
	today := ledger.FormatDate(time.Now().UTC())
	post := func(body map[string]any) {
		rec := do(t, h, http.MethodPost, "/v1/entries", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("post: status = %d (body %s)", rec.Code, rec.Body.String())
		}
	}
	post(map[string]any{"description": "defaulted first", "debit_account": "1001", "credit_account": "4001", "amount_minor": 100})
	post(map[string]any{"date": today, "description": "explicit second", "debit_account": "1001", "credit_account": "4001", "amount_minor": 200})

	rec := do(t, h, http.MethodGet, "/v1/entries", nil)
	var resp struct {
		Items []struct {
			Description string `json:"description"`
		} `json:"items"`
	}
	decode(t, rec, &resp)
	// Same calendar day: the most recently recorded entry comes first, no
	// matter whether its date was defaulted or explicit.
	want := []string{"explicit second", "defaulted first"}
	if len(resp.Items) != len(want) {
		t.Fatalf("items = %d, want %d", len(resp.Items), len(want))
	}
	for i, desc := range want {
		if resp.Items[i].Description != desc {
			t.Fatalf("position %d: got %q, want %q", i, resp.Items[i].Description, desc)
		}
	}
}

func TestPostEntry_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"missing description", map[string]any{"date": "2025-03-01", "debit_account": "1001", "credit_account": "4001", "amount_minor": 100}, http.StatusUnprocessableEntity, "missing_description"},
		{"same account", map[string]any{"date": "2025-03-01", "description": "x", "debit_account": "1001", "credit_account": "1001", "amount_minor": 100}, http.StatusUnprocessableEntity, "same_account"},
		{"zero amount", map[string]any{"date": "2025-03-01", "description": "x", "debit_account": "1001", "credit_account": "4001", "amount_minor": 0}, http.StatusUnprocessableEntity, "invalid_amount"},
		{"unknown account", map[string]any{"date": "2025-03-01", "description": "x", "debit_account": "9999", "credit_account": "4001", "amount_minor": 100}, http.StatusUnprocessableEntity, "unknown_account"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, h := setup(t)
			rec := do(t, h, http.MethodPost, "/v1/entries", tc.body)
			expectErr(t, rec, tc.status, tc.code)
			entries, _ := store.ListEntries(context.Background())
			if len(entries) != 0 {
				t.Fatalf("journal has %d entries after rejection", len(entries))
			}
		})
	}
}

func TestPostEntry_BadPayloads(t *testing.T) {
	_, h := setup(t)

	rec := do(t, h, http.MethodPost, "/v1/entries", map[string]any{
		"date": "03/01/2025", "description": "x", "debit_account": "1001", "credit_account": "4001", "amount_minor": 100,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/entries", bytes.NewReader([]byte("{nope")))
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusBadRequest {
		t.Fatalf("malformed json: status = %d, want 400", rec2.Code)
	}
}

func TestListEntries_Order(t *testing.T) {
	_, h := setup(t)
	post := func(date, desc string) {
		rec := do(t, h, http.MethodPost, "/v1/entries", map[string]any{
			"date": date, "description": desc, "debit_account": "1001", "credit_account": "4001", "amount_minor": 100,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("post %s: status = %d", desc, rec.Code)
		}
	}
	post("2025-03-02", "first of the 2nd")
	post("2025-03-01", "only of the 1st")
	post("2025-03-02", "second of the 2nd")

	rec := do(t, h, http.MethodGet, "/v1/entries", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Items []struct {
			Description string `json:"description"`
		} `json:"items"`
	}
	decode(t, rec, &resp)
	want := []string{"second of the 2nd", "first of the 2nd", "only of the 1st"}
	if len(resp.Items) != len(want) {
		t.Fatalf("items = %d, want %d", len(resp.Items), len(want))
	}
	for i, desc := range want {
		if resp.Items[i].Description != desc {
			t.Fatalf("position %d: got %q, want %q", i, resp.Items[i].Description, desc)
		}
	}
}

func TestDeleteEntry(t *testing.T) {
	_, h := setup(t)
	rec := do(t, h, http.MethodPost, "/v1/entries", map[string]any{
		"date": "2025-03-01", "description": "Cash sale", "debit_account": "1001", "credit_account": "4001", "amount_minor": 100,
	})
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)

	if rec := do(t, h, http.MethodDelete, "/v1/entries/"+created.ID, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d, want 204", rec.Code)
	}
	expectErr(t, do(t, h, http.MethodDelete, "/v1/entries/"+created.ID, nil), http.StatusNotFound, "not_found")
	if rec := do(t, h, http.MethodDelete, "/v1/entries/not-a-uuid", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status = %d, want 400", rec.Code)
	}
}

func TestAccounts_CreateAndConflict(t *testing.T) {
	_, h := setup(t)

	rec := do(t, h, http.MethodPost, "/v1/accounts", map[string]any{
		"code": "1010", "name": "Bank", "type": "asset",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var created struct {
		Code          string `json:"code"`
		NormalBalance string `json:"normal_balance"`
	}
	decode(t, rec, &created)
	if created.Code != "1010" || created.NormalBalance != "debit" {
		t.Fatalf("account = %+v", created)
	}

	expectErr(t, do(t, h, http.MethodPost, "/v1/accounts", map[string]any{
		"code": "1001", "name": "Shadow Cash", "type": "asset",
	}), http.StatusConflict, "duplicate_code")

	expectErr(t, do(t, h, http.MethodPost, "/v1/accounts", map[string]any{
		"code": "2500", "name": "Misfiled", "type": "asset",
	}), http.StatusUnprocessableEntity, "code_out_of_range")
}

func TestAccounts_UpdateAndDelete(t *testing.T) {
	_, h := setup(t)

	rec := do(t, h, http.MethodPatch, "/v1/accounts/5001", map[string]any{
		"name": "Office Rent", "type": "expense",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var updated struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	decode(t, rec, &updated)
	if updated.Code != "5001" || updated.Name != "Office Rent" {
		t.Fatalf("account = %+v", updated)
	}

	// Referenced accounts refuse deletion.
	if rec := do(t, h, http.MethodPost, "/v1/entries", map[string]any{
		"date": "2025-03-01", "description": "Rent", "debit_account": "5001", "credit_account": "1001", "amount_minor": 100,
	}); rec.Code != http.StatusCreated {
		t.Fatalf("post entry: status = %d", rec.Code)
	}
	expectErr(t, do(t, h, http.MethodDelete, "/v1/accounts/5001", nil), http.StatusConflict, "account_in_use")

	if rec := do(t, h, http.MethodDelete, "/v1/accounts/3001", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete unused: status = %d, want 204", rec.Code)
	}
	expectErr(t, do(t, h, http.MethodDelete, "/v1/accounts/3001", nil), http.StatusNotFound, "not_found")
}

func TestNextCode(t *testing.T) {
	_, h := setup(t)
	rec := do(t, h, http.MethodGet, "/v1/accounts/next-code?type=asset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Type string `json:"type"`
		Code string `json:"code"`
	}
	decode(t, rec, &resp)
	// 1001 is taken but 1000 is free.
	if resp.Code != "1000" || resp.Type != "asset" {
		t.Fatalf("next code = %+v", resp)
	}
	if rec := do(t, h, http.MethodGet, "/v1/accounts/next-code", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing type: status = %d, want 400", rec.Code)
	}
}

func TestAccountLedger(t *testing.T) {
	_, h := setup(t)
	post := func(date, desc, debit, credit string, amount int64) {
		rec := do(t, h, http.MethodPost, "/v1/entries", map[string]any{
			"date": date, "description": desc, "debit_account": debit, "credit_account": credit, "amount_minor": amount,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("post %s: status = %d", desc, rec.Code)
		}
	}
	post("2025-03-01", "Cash sale", "1001", "4001", 5000)
	post("2025-03-02", "Pay rent", "5001", "1001", 3000)

	rec := do(t, h, http.MethodGet, "/v1/accounts/1001/ledger", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Account struct {
			Code string `json:"code"`
		} `json:"account"`
		Transactions []struct {
			Side         string `json:"side"`
			AmountMinor  int64  `json:"amount_minor"`
			RunningMinor int64  `json:"running_balance_minor"`
		} `json:"transactions"`
		Debits       []json.RawMessage `json:"debits"`
		Credits      []json.RawMessage `json:"credits"`
		BalanceMinor int64             `json:"balance_minor"`
	}
	decode(t, rec, &resp)
	if resp.Account.Code != "1001" {
		t.Fatalf("account = %+v", resp.Account)
	}
	if len(resp.Transactions) != 2 || len(resp.Debits) != 1 || len(resp.Credits) != 1 {
		t.Fatalf("transactions/debits/credits = %d/%d/%d", len(resp.Transactions), len(resp.Debits), len(resp.Credits))
	}
	if resp.Transactions[0].Side != "debit" || resp.Transactions[0].RunningMinor != 5000 {
		t.Fatalf("first tx = %+v", resp.Transactions[0])
	}
	if resp.Transactions[1].Side != "credit" || resp.Transactions[1].RunningMinor != 2000 {
		t.Fatalf("second tx = %+v", resp.Transactions[1])
	}
	if resp.BalanceMinor != 2000 {
		t.Fatalf("balance = %d, want 2000", resp.BalanceMinor)
	}

	if rec := do(t, h, http.MethodGet, "/v1/accounts/9999/ledger", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown account: status = %d, want 404", rec.Code)
	}
}

func TestBalancesAndSummary(t *testing.T) {
	_, h := setup(t)
	post := func(date, desc, debit, credit string, amount int64) {
		rec := do(t, h, http.MethodPost, "/v1/entries", map[string]any{
			"date": date, "description": desc, "debit_account": debit, "credit_account": credit, "amount_minor": amount,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("post %s: status = %d", desc, rec.Code)
		}
	}
	post("2025-03-01", "Capital injection", "1001", "3001", 50000)
	post("2025-03-02", "Cash sale", "1001", "4001", 12000)
	post("2025-03-03", "Pay rent", "5001", "1001", 8000)

	rec := do(t, h, http.MethodGet, "/v1/balances", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("balances: status = %d", rec.Code)
	}
	var balances struct {
		Currency string `json:"currency"`
		Items    []struct {
			Code         string `json:"code"`
			BalanceMinor int64  `json:"balance_minor"`
			Annotation   string `json:"annotation"`
		} `json:"items"`
	}
	decode(t, rec, &balances)
	if balances.Currency != "USD" {
		t.Fatalf("currency = %s", balances.Currency)
	}
	byCode := make(map[string]int64, len(balances.Items))
	for _, it := range balances.Items {
		byCode[it.Code] = it.BalanceMinor
		if it.Annotation != "" {
			t.Fatalf("account %s annotated %q with a positive balance", it.Code, it.Annotation)
		}
	}
	if byCode["1001"] != 54000 || byCode["3001"] != 50000 || byCode["4001"] != 12000 || byCode["5001"] != 8000 {
		t.Fatalf("balances = %v", byCode)
	}

	rec = do(t, h, http.MethodGet, "/v1/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: status = %d", rec.Code)
	}
	var summary struct {
		IncomeStatement struct {
			TotalRevenueMinor int64 `json:"total_revenue_minor"`
			TotalExpenseMinor int64 `json:"total_expense_minor"`
			NetIncomeMinor    int64 `json:"net_income_minor"`
		} `json:"income_statement"`
		BalanceSheet struct {
			TotalAssetsMinor int64 `json:"total_assets_minor"`
			TotalEquityMinor int64 `json:"total_equity_minor"`
		} `json:"balance_sheet"`
	}
	decode(t, rec, &summary)
	if summary.IncomeStatement.TotalRevenueMinor != 12000 ||
		summary.IncomeStatement.TotalExpenseMinor != 8000 ||
		summary.IncomeStatement.NetIncomeMinor != 4000 {
		t.Fatalf("income statement = %+v", summary.IncomeStatement)
	}
	if summary.BalanceSheet.TotalAssetsMinor != 54000 || summary.BalanceSheet.TotalEquityMinor != 50000 {
		t.Fatalf("balance sheet = %+v", summary.BalanceSheet)
	}
}

func TestBalances_FlipAnnotation(t *testing.T) {
	_, h := setup(t)
	// Credit cash more than it holds; a debit-normal account flipping negative
	// is annotated CR.
	rec := do(t, h, http.MethodPost, "/v1/entries", map[string]any{
		"date": "2025-03-01", "description": "Overdraft rent", "debit_account": "5001", "credit_account": "1001", "amount_minor": 700,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("post: status = %d", rec.Code)
	}
	var balances struct {
		Items []struct {
			Code         string `json:"code"`
			BalanceMinor int64  `json:"balance_minor"`
			Annotation   string `json:"annotation"`
		} `json:"items"`
	}
	decode(t, do(t, h, http.MethodGet, "/v1/balances", nil), &balances)
	for _, it := range balances.Items {
		if it.Code == "1001" {
			if it.BalanceMinor != -700 || it.Annotation != "CR" {
				t.Fatalf("cash = %+v, want -700 CR", it)
			}
			return
		}
	}
	t.Fatal("cash missing from balances")
}

func TestHealthEndpoints(t *testing.T) {
	_, h := setup(t)
	if rec := do(t, h, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz: status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/readyz", nil); rec.Code != http.StatusOK {
		t.Fatalf("readyz: status = %d", rec.Code)
	}
}
