package http

import (
	"log/slog"
	"net/http"
	"time"

	"grana/internal/core"
)

type expenseRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Date        string `json:"date"`
	Planned     bool   `json:"planned"`
}

type expenseResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	Date        string `json:"date"`
	Planned     bool   `json:"planned"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Title:       e.Title,
		Category:    e.Category,
		AmountCents: e.Amount.Cents,
		Date:        e.Date.String(),
		Planned:     e.Planned,
	}
}

func expenseFromRequest(r *http.Request) (core.Expense, string) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		return core.Expense{}, "invalid request body"
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Expense{}, "invalid date, expected YYYY-MM-DD"
	}

	cents, err := amountCents(req.AmountCents, req.Amount)
	if err != nil {
		return core.Expense{}, "invalid amount"
	}

	e := core.Expense{
		Title:    sanitizeInput(req.Title),
		Category: sanitizeInput(req.Category),
		Amount:   core.Money{Cents: cents},
		Date:     date,
		Planned:  req.Planned,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err.Error()
	}
	return e, ""
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	m, err := monthParam(r, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	expenses, err := s.repo.ListExpenses(r.Context(), m)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list expenses", "error", err, "month", m.String())
		writeStorageError(w, err)
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	e, msg := expenseFromRequest(r)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	id, err := s.repo.CreateExpense(r.Context(), e)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create expense",
			"error", err,
			"title", e.Title,
			"category", e.Category,
			"amount_cents", e.Amount.Cents)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.dashCache.Purge()
	e.ID = id
	writeJSON(w, http.StatusCreated, toExpenseResponse(e))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	e, msg := expenseFromRequest(r)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	e.ID = id

	if err := s.repo.UpdateExpense(r.Context(), e); err != nil {
		slog.ErrorContext(r.Context(), "Failed to update expense", "error", err, "id", id)
		writeStorageError(w, err)
		return
	}

	s.dashCache.Purge()
	writeJSON(w, http.StatusOK, toExpenseResponse(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.repo.DeleteExpense(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete expense", "error", err, "id", id)
		writeStorageError(w, err)
		return
	}

	s.dashCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}
