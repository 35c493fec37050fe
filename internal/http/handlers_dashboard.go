package http

import (
	"log/slog"
	"net/http"
	"time"

	"grana/internal/analytics"
)

// handleDashboard serves the aggregated month view. Results are cached
// per month; every write handler purges the cache.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	m, err := monthParam(r, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	key := m.String()
	if dash, ok := s.dashCache.Get(key); ok {
		w.Header().Set("X-Cache", "hit")
		writeJSON(w, http.StatusOK, dash)
		return
	}

	ctx := r.Context()

	txs, err := s.repo.ListAllTransactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load transactions for dashboard", "error", err)
		writeStorageError(w, err)
		return
	}

	expenses, err := s.repo.ListExpenses(ctx, m)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load expenses for dashboard", "error", err, "month", key)
		writeStorageError(w, err)
		return
	}

	prevExpenses, err := s.repo.ListExpenses(ctx, m.Prev())
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load previous expenses for dashboard", "error", err)
		writeStorageError(w, err)
		return
	}

	assets, err := s.repo.ListAssets(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load assets for dashboard", "error", err)
		writeStorageError(w, err)
		return
	}

	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load categories for dashboard", "error", err)
		writeStorageError(w, err)
		return
	}

	dash := analytics.Build(analytics.Input{
		Transactions:       txs,
		Expenses:           expenses,
		PrevExpenses:       prevExpenses,
		Assets:             assets,
		Categories:         cats,
		Month:              m,
		Today:              now,
		AvgMonthlyExpenses: analytics.TrailingAvgExpenses(txs, m, 3),
	})

	s.dashCache.Set(key, dash)
	w.Header().Set("X-Cache", "miss")
	writeJSON(w, http.StatusOK, dash)
}
