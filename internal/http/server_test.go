package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
	"github.com/mohaiminul-islam-git/CashFlow/internal/store"
	"github.com/mohaiminul-islam-git/CashFlow/internal/tracker"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	tr, err := tracker.New(context.Background(), s, nil, nil)
	if err != nil {
		t.Fatalf("tracker.New: %v", err)
	}
	return NewServer(":0", tr, nil)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func createTransaction(t *testing.T, srv *Server, body string) core.Transaction {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/transactions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
	}
	var tx core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &tx); err != nil {
		t.Fatalf("decode created transaction: %v", err)
	}
	return tx
}

const sampleExpense = `{"date":"2025-01-10","amount":200,"type":"expense","category":"Food & Dining","paymentMethod":"Cash","note":"groceries"}`
const sampleIncome = `{"date":"2025-01-05","amount":500,"type":"income","category":"Income","paymentMethod":"Bank Transfer","note":""}`

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, srv, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
	}
}

func TestCreateAndListTransactions(t *testing.T) {
	srv := newTestServer(t)

	tx := createTransaction(t, srv, sampleExpense)
	if tx.ID == "" || tx.Amount.Cents != 20000 {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	createTransaction(t, srv, sampleIncome)

	rec := doJSON(t, srv, http.MethodGet, "/api/transactions?type=expense", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var listed []core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].Kind != core.Expense {
		t.Fatalf("type filter failed: %+v", listed)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"bad date", `{"date":"10/01/2025","amount":200,"type":"expense","category":"Transport"}`, http.StatusUnprocessableEntity},
		{"zero amount", `{"date":"2025-01-10","amount":0,"type":"expense","category":"Transport"}`, http.StatusUnprocessableEntity},
		{"bad kind", `{"date":"2025-01-10","amount":5,"type":"loan","category":"Transport"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		rec := doJSON(t, srv, http.MethodPost, "/api/transactions", tc.body)
		if rec.Code != tc.want {
			t.Fatalf("%s: status %d, want %d (%s)", tc.name, rec.Code, tc.want, rec.Body.String())
		}
	}
}

func TestUpdateAndDeleteTransaction(t *testing.T) {
	srv := newTestServer(t)
	tx := createTransaction(t, srv, sampleExpense)

	rec := doJSON(t, srv, http.MethodPut, "/api/transactions/"+tx.ID,
		`{"date":"2025-01-12","amount":3.5,"type":"expense","category":"Transport","paymentMethod":"Cash","note":"bus"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d, body %s", rec.Code, rec.Body.String())
	}
	var updated core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.ID != tx.ID || updated.Amount.Cents != 350 {
		t.Fatalf("unexpected update result %+v", updated)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/transactions/"+tx.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodDelete, "/api/transactions/"+tx.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: status %d", rec.Code)
	}
}

func TestDuplicateTransaction(t *testing.T) {
	srv := newTestServer(t)
	tx := createTransaction(t, srv, sampleExpense)

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions/"+tx.ID+"/duplicate", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("duplicate: status %d", rec.Code)
	}
	var dup core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &dup); err != nil {
		t.Fatalf("decode duplicate: %v", err)
	}
	if dup.ID == tx.ID || dup.Date != core.Today() {
		t.Fatalf("unexpected duplicate %+v", dup)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/transactions/unknown/duplicate", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("duplicate unknown: status %d", rec.Code)
	}
}

func TestBudgetEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPut, "/api/budgets", `{"category":"Food & Dining","limit":150,"month":"2025-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set budget: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/budgets", `{"category":"Food & Dining","limit":0,"month":"2025-01"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("zero limit: status %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/budgets", "")
	var budgets []core.Budget
	if err := json.Unmarshal(rec.Body.Bytes(), &budgets); err != nil {
		t.Fatalf("decode budgets: %v", err)
	}
	if len(budgets) != 1 || budgets[0].Limit.Cents != 15000 {
		t.Fatalf("budgets = %+v", budgets)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/budgets?category=Food+%26+Dining&month=2025-01", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete budget: status %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodDelete, "/api/budgets?category=Food+%26+Dining&month=2025-01", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing budget: status %d", rec.Code)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	srv := newTestServer(t)
	createTransaction(t, srv, sampleIncome)
	createTransaction(t, srv, sampleExpense)
	doJSON(t, srv, http.MethodPut, "/api/budgets", `{"category":"Food & Dining","limit":150,"month":"2025-01"}`)

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard?month=2025-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: status %d", rec.Code)
	}
	var d tracker.Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if d.Totals.Balance.Cents != 30000 {
		t.Fatalf("balance = %d", d.Totals.Balance.Cents)
	}
	if len(d.Budgets) != 1 || !d.Budgets[0].Overspent {
		t.Fatalf("budget progress = %+v", d.Budgets)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard?month=2025-13", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad month: status %d", rec.Code)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t)
	createTransaction(t, srv, sampleExpense)
	createTransaction(t, srv, `{"date":"2024-12-01","amount":10,"type":"expense","category":"Transport","paymentMethod":"Cash","note":""}`)

	rec := doJSON(t, srv, http.MethodGet, "/api/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: status %d", rec.Code)
	}
	var summary []core.MonthSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if len(summary) != 2 || summary[0].Month != "2025-01" {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestExportEndpoints(t *testing.T) {
	srv := newTestServer(t)
	createTransaction(t, srv, sampleExpense)

	rec := doJSON(t, srv, http.MethodGet, "/api/export/csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("csv: status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("csv content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "CashFlow_Sheet_") {
		t.Fatalf("csv disposition = %q", cd)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/export/word", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/msword" {
		t.Fatalf("word: status %d, type %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/export/print?month=2025-01", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "January 2025") {
		t.Fatalf("print: status %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/export/pdf?month=2025-01", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Fatalf("pdf: status %d", rec.Code)
	}
}

func TestAssistantUnavailableWithoutAdvisor(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/assistant/chat", `{"question":"how am I doing?"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("chat without advisor: status %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/insight", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("insight without advisor: status %d", rec.Code)
	}
}

func TestListBudgetsMonthFilter(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, srv, http.MethodPut, "/api/budgets", `{"category":"Transport","limit":50,"month":"2025-01"}`)
	doJSON(t, srv, http.MethodPut, "/api/budgets", `{"category":"Transport","limit":50,"month":"2025-02"}`)

	rec := doJSON(t, srv, http.MethodGet, "/api/budgets?month=2025-02", "")
	var budgets []core.Budget
	if err := json.Unmarshal(rec.Body.Bytes(), &budgets); err != nil {
		t.Fatalf("decode budgets: %v", err)
	}
	if len(budgets) != 1 || budgets[0].Month != "2025-02" {
		t.Fatalf("month filter failed: %+v", budgets)
	}
}

func TestExportCSVHonorsFilters(t *testing.T) {
	srv := newTestServer(t)
	createTransaction(t, srv, sampleExpense)
	createTransaction(t, srv, sampleIncome)

	rec := doJSON(t, srv, http.MethodGet, "/api/export/csv?type=income", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("csv: status %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "EXPENSE") || !strings.Contains(body, "INCOME") {
		t.Fatalf("filter not applied:\n%s", body)
	}
}

func TestExportPrintHonorsFilters(t *testing.T) {
	srv := newTestServer(t)
	createTransaction(t, srv, sampleExpense)
	createTransaction(t, srv, sampleIncome)

	rec := doJSON(t, srv, http.MethodGet, "/api/export/print?type=income", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("print: status %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "EXPENSE") || !strings.Contains(body, "INCOME") {
		t.Fatalf("filter not applied:\n%s", body)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/export/print?type=transfer", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad type: status %d", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/transactions", "")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing security headers")
	}
}
