package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mohaiminul-islam-git/CashFlow/internal/assistant"
	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
	"github.com/mohaiminul-islam-git/CashFlow/internal/report"
	"github.com/mohaiminul-islam-git/CashFlow/internal/tracker"
)

// listFilter builds the shared transaction filter used by the list and
// export endpoints.
func listFilter(r *http.Request) (tracker.ListFilter, error) {
	q := r.URL.Query()
	filter := tracker.ListFilter{
		Search: sanitizeInput(q.Get("search")),
		SortBy: q.Get("sort"),
		Asc:    q.Get("order") == "asc",
	}
	if kind := q.Get("type"); kind != "" {
		k := core.Kind(kind)
		if err := k.Validate(); err != nil {
			return tracker.ListFilter{}, err
		}
		filter.Kind = k
	}
	if month := q.Get("month"); month != "" {
		m := core.MonthKey(month)
		if err := m.Validate(); err != nil {
			return tracker.ListFilter{}, err
		}
		filter.Month = m
	}
	return filter, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.ListTransactions(filter))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in tracker.TransactionInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	in.Note = sanitizeInput(in.Note)

	tx, err := s.tracker.AddTransaction(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var in tracker.TransactionInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	in.Note = sanitizeInput(in.Note)

	tx, err := s.tracker.UpdateTransaction(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.tracker.DuplicateTransaction(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets := s.tracker.Budgets()
	if raw := r.URL.Query().Get("month"); raw != "" {
		month := core.MonthKey(raw)
		if err := month.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}
		scoped := []core.Budget{}
		for _, b := range budgets {
			if b.Month == month {
				scoped = append(scoped, b)
			}
		}
		budgets = scoped
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var b core.Budget
	if err := decodeBody(r, &b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	saved, err := s.tracker.SetBudget(r.Context(), b)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		writeError(w, http.StatusBadRequest, "category query parameter is required")
		return
	}
	month, err := monthParam(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.tracker.DeleteBudget(r.Context(), category, month); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Categories())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dashboard, err := s.tracker.DashboardFor(month)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Summary())
}

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	// Without an advisor the dashboard simply skips the insight card.
	if !s.advisor.Enabled() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	month, err := monthParam(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	finCtx := assistant.BuildContext(s.tracker.Transactions(), s.tracker.Budgets(), month)
	insight := s.advisor.MonthlyInsight(r.Context(), finCtx)
	writeJSON(w, http.StatusOK, map[string]string{"insight": insight})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	export, err := report.CSV(s.tracker.ListTransactions(filter))
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	serveExport(w, export.Filename, export.MIME, export.Content)
}

func (s *Server) handleExportWord(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	export := report.Word(s.tracker.ListTransactions(filter))
	serveExport(w, export.Filename, export.MIME, export.Content)
}

func (s *Server) handleExportPrint(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	transactions := s.tracker.ListTransactions(filter)

	var export report.Export
	if filter.Month != "" {
		export = report.PrintableMonthReport(transactions, filter.Month)
	} else {
		export = report.PrintableReport(transactions)
	}

	// Printable reports open in the browser instead of downloading.
	w.Header().Set("Content-Type", export.MIME)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Content)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	export, err := report.PDFStatement(s.tracker.Transactions(), month)
	if err != nil {
		slog.ErrorContext(r.Context(), "PDF export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	// PDFs open in the browser viewer rather than downloading.
	w.Header().Set("Content-Type", export.MIME)
	w.Header().Set("Content-Disposition", `inline; filename="`+export.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Content)
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	if !s.advisor.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "assistant is not configured")
		return
	}

	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	question := sanitizeInput(req.Question)
	if question == "" {
		writeError(w, http.StatusUnprocessableEntity, "question cannot be empty")
		return
	}

	finCtx := assistant.BuildContext(s.tracker.Transactions(), s.tracker.Budgets(), core.CurrentMonth())
	reply := s.advisor.Ask(r.Context(), question, finCtx)
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
