package http

import (
	"log/slog"
	"net/http"
	"time"

	"grana/internal/core"
)

type transactionRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Type        string `json:"type"`
}

type transactionResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Type        string `json:"type"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Date:        t.Date.String(),
		Description: t.Description,
		AmountCents: t.Amount.Cents,
		Type:        string(t.Type),
	}
}

func (s *Server) transactionFromRequest(r *http.Request) (core.Transaction, string) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		return core.Transaction{}, "invalid request body"
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, "invalid date, expected YYYY-MM-DD"
	}

	cents, err := amountCents(req.AmountCents, req.Amount)
	if err != nil {
		return core.Transaction{}, "invalid amount"
	}

	tx := core.Transaction{
		Date:        date,
		Description: sanitizeInput(req.Description),
		Amount:      core.Money{Cents: cents},
		Type:        core.ParseTransactionType(req.Type),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err.Error()
	}
	return tx, ""
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	m, err := monthParam(r, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	txs, err := s.repo.ListTransactions(r.Context(), m)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err, "month", m.String())
		writeStorageError(w, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	tx, err := s.repo.GetTransaction(r.Context(), id)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, msg := s.transactionFromRequest(r)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	id, err := s.txs.CreateTransaction(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create transaction",
			"error", err,
			"description", tx.Description,
			"amount_cents", tx.Amount.Cents,
			"transaction_type", string(tx.Type))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.dashCache.Purge()
	tx.ID = id
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	tx, msg := s.transactionFromRequest(r)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	tx.ID = id

	if err := s.txs.UpdateTransaction(r.Context(), tx); err != nil {
		slog.ErrorContext(r.Context(), "Failed to update transaction", "error", err, "id", id)
		writeStorageError(w, err)
		return
	}

	s.dashCache.Purge()
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.txs.DeleteTransaction(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "error", err, "id", id)
		writeStorageError(w, err)
		return
	}

	s.dashCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}
