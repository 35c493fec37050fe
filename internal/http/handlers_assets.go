package http

import (
	"log/slog"
	"net/http"

	"grana/internal/core"
)

type assetRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Value        string  `json:"value"`
	ValueCents   int64   `json:"value_cents"`
	MonthlyYield float64 `json:"monthly_yield"`
	Date         string  `json:"date"`
}

type assetResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	ValueCents   int64   `json:"value_cents"`
	MonthlyYield float64 `json:"monthly_yield"`
	Date         string  `json:"date"`
}

func toAssetResponse(a core.Asset) assetResponse {
	return assetResponse{
		ID:           a.ID,
		Name:         a.Name,
		Type:         string(a.Type),
		ValueCents:   a.Value.Cents,
		MonthlyYield: a.MonthlyYield,
		Date:         a.Date.String(),
	}
}

func assetFromRequest(r *http.Request) (core.Asset, string) {
	var req assetRequest
	if err := decodeJSON(r, &req); err != nil {
		return core.Asset{}, "invalid request body"
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Asset{}, "invalid date, expected YYYY-MM-DD"
	}

	cents, err := amountCents(req.ValueCents, req.Value)
	if err != nil {
		return core.Asset{}, "invalid value"
	}

	a := core.Asset{
		Name:         sanitizeInput(req.Name),
		Type:         core.ParseAssetType(req.Type),
		Value:        core.Money{Cents: cents},
		MonthlyYield: req.MonthlyYield,
		Date:         date,
	}
	if err := a.Validate(); err != nil {
		return core.Asset{}, err.Error()
	}
	return a, ""
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.repo.ListAssets(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list assets", "error", err)
		writeStorageError(w, err)
		return
	}

	out := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, toAssetResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	a, msg := assetFromRequest(r)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	id, err := s.repo.CreateAsset(r.Context(), a)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create asset", "error", err, "name", a.Name)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.dashCache.Purge()
	a.ID = id
	writeJSON(w, http.StatusCreated, toAssetResponse(a))
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	a, msg := assetFromRequest(r)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	a.ID = id

	if err := s.repo.UpdateAsset(r.Context(), a); err != nil {
		slog.ErrorContext(r.Context(), "Failed to update asset", "error", err, "id", id)
		writeStorageError(w, err)
		return
	}

	s.dashCache.Purge()
	writeJSON(w, http.StatusOK, toAssetResponse(a))
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.repo.DeleteAsset(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete asset", "error", err, "id", id)
		writeStorageError(w, err)
		return
	}

	s.dashCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}
