package http

import (
	"log/slog"
	"net/http"

	"grana/internal/core"
)

type targetRequest struct {
	Title              string `json:"title"`
	Goal               string `json:"goal"`
	GoalCents          int64  `json:"goal_cents"`
	ProgressCents      int64  `json:"progress_cents"`
	MonthlyAmountCents int64  `json:"monthly_amount_cents"`
	Date               string `json:"date"`
}

type targetResponse struct {
	ID                 int64  `json:"id"`
	Title              string `json:"title"`
	GoalCents          int64  `json:"goal_cents"`
	ProgressCents      int64  `json:"progress_cents"`
	MonthlyAmountCents int64  `json:"monthly_amount_cents"`
	RemainingCents     int64  `json:"remaining_cents"`
	Status             string `json:"status"`
	Date               string `json:"date"`
}

func toTargetResponse(t core.Target) targetResponse {
	return targetResponse{
		ID:                 t.ID,
		Title:              t.Title,
		GoalCents:          t.Goal.Cents,
		ProgressCents:      t.Progress.Cents,
		MonthlyAmountCents: t.MonthlyAmount.Cents,
		RemainingCents:     t.Remaining().Cents,
		Status:             string(t.Status()),
		Date:               t.Date.String(),
	}
}

func targetFromRequest(r *http.Request) (core.Target, string) {
	var req targetRequest
	if err := decodeJSON(r, &req); err != nil {
		return core.Target{}, "invalid request body"
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Target{}, "invalid date, expected YYYY-MM-DD"
	}

	goal, err := amountCents(req.GoalCents, req.Goal)
	if err != nil {
		return core.Target{}, "invalid goal"
	}

	t := core.Target{
		Title:         sanitizeInput(req.Title),
		Goal:          core.Money{Cents: goal},
		Progress:      core.Money{Cents: req.ProgressCents},
		MonthlyAmount: core.Money{Cents: req.MonthlyAmountCents},
		Date:          date,
	}
	if err := t.Validate(); err != nil {
		return core.Target{}, err.Error()
	}
	return t, ""
}

func (s *Server) handleListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := s.repo.ListTargets(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list targets", "error", err)
		writeStorageError(w, err)
		return
	}

	out := make([]targetResponse, 0, len(targets))
	for _, t := range targets {
		out = append(out, toTargetResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTarget(w http.ResponseWriter, r *http.Request) {
	t, msg := targetFromRequest(r)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	id, err := s.repo.CreateTarget(r.Context(), t)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create target", "error", err, "title", t.Title)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	t.ID = id
	writeJSON(w, http.StatusCreated, toTargetResponse(t))
}

func (s *Server) handleUpdateTarget(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	t, msg := targetFromRequest(r)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	t.ID = id

	if err := s.repo.UpdateTarget(r.Context(), t); err != nil {
		slog.ErrorContext(r.Context(), "Failed to update target", "error", err, "id", id)
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTargetResponse(t))
}

func (s *Server) handleDeleteTarget(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.repo.DeleteTarget(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete target", "error", err, "id", id)
		writeStorageError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
