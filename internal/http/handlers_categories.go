package http

import (
	"log/slog"
	"net/http"

	"grana/internal/core"
)

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type categoryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.repo.ListCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list categories", "error", err)
		writeStorageError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryResponse{ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	c := core.Category{
		Name:  sanitizeInput(req.Name),
		Color: sanitizeInput(req.Color),
		Icon:  sanitizeInput(req.Icon),
	}
	if c.Color == "" {
		c.Color = core.UnknownCategoryColor
	}
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.repo.CreateCategory(r.Context(), c)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create category", "error", err, "name", c.Name)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.dashCache.Purge()
	writeJSON(w, http.StatusCreated, categoryResponse{ID: id, Name: c.Name, Color: c.Color, Icon: c.Icon})
}
