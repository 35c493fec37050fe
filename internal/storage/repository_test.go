package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"grana/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestTransactionRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		Date:        core.NewDate(2025, 11, 10),
		Description: "Mercado",
		Amount:      core.Money{Cents: -12345},
		Type:        core.TypeExpense,
	}

	id, err := repo.CreateTransaction(ctx, tx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetTransaction(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description != "Mercado" || got.Amount.Cents != -12345 || got.Type != core.TypeExpense {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Date.String() != "2025-11-10" {
		t.Fatalf("date mismatch: %q", got.Date.String())
	}
}

func TestListTransactionsByMonth(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, tx := range []core.Transaction{
		{Date: core.NewDate(2025, 11, 5), Description: "a", Amount: core.Money{Cents: 100}, Type: core.TypeIncome},
		{Date: core.NewDate(2025, 11, 20), Description: "b", Amount: core.Money{Cents: -200}, Type: core.TypeExpense},
		{Date: core.NewDate(2025, 10, 5), Description: "c", Amount: core.Money{Cents: 300}, Type: core.TypeIncome},
	} {
		if _, err := repo.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	nov, err := repo.ListTransactions(ctx, core.Month{Year: 2025, Month: 11})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(nov) != 2 {
		t.Fatalf("expected 2 for 2025-11, got %d", len(nov))
	}

	all, err := repo.ListAllTransactions(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 total, got %d", len(all))
	}
}

func TestUpdateTransactionBumpsVersionAndResetsSync(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		Date:        core.NewDate(2025, 11, 10),
		Description: "Original",
		Amount:      core.Money{Cents: -1000},
		Type:        core.TypeExpense,
	}
	id, err := repo.CreateTransaction(ctx, tx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.MarkExported(ctx, id); err != nil {
		t.Fatalf("mark exported: %v", err)
	}

	tx.ID = id
	tx.Description = "Alterada"
	version, err := repo.UpdateTransaction(ctx, tx)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected version 2, got %d", version)
	}

	pending, err := repo.GetPendingExportTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("expected row back in pending: %+v", pending)
	}
}

func TestDeleteTransactionIsSoft(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateTransaction(ctx, core.Transaction{
		Date:        core.NewDate(2025, 11, 10),
		Description: "x",
		Amount:      core.Money{Cents: -100},
		Type:        core.TypeExpense,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.DeleteTransaction(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteTransaction(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete expected ErrNotFound, got %v", err)
	}
}

func TestPendingExportLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateTransaction(ctx, core.Transaction{
		Date:        core.NewDate(2025, 11, 10),
		Description: "x",
		Amount:      core.Money{Cents: -100},
		Type:        core.TypeExpense,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pending, err := repo.GetPendingExportTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Version != 1 {
		t.Fatalf("expected one pending v1, got %+v", pending)
	}
	if pending[0].CreatedAt.IsZero() {
		t.Fatal("expected parsed created_at")
	}

	if err := repo.MarkExported(ctx, id); err != nil {
		t.Fatalf("mark exported: %v", err)
	}
	pending, _ = repo.GetPendingExportTransactions(ctx, 10)
	if len(pending) != 0 {
		t.Fatalf("expected drained queue, got %+v", pending)
	}

	if err := repo.MarkExportError(ctx, id); err != nil {
		t.Fatalf("mark error: %v", err)
	}
	pending, _ = repo.GetPendingExportTransactions(ctx, 10)
	if len(pending) != 0 {
		t.Fatalf("error rows must not reappear as pending: %+v", pending)
	}
}

func TestExpenseRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := core.Expense{
		Title:    "Aluguel",
		Category: "Moradia",
		Amount:   core.Money{Cents: 150000},
		Date:     core.NewDate(2025, 11, 1),
		Planned:  true,
	}
	id, err := repo.CreateExpense(ctx, e)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	expenses, err := repo.ListExpenses(ctx, core.Month{Year: 2025, Month: 11})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}
	got := expenses[0]
	if got.ID != id || got.Title != "Aluguel" || got.Category != "Moradia" || !got.Planned {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got.Planned = false
	got.Amount = core.Money{Cents: 160000}
	if err := repo.UpdateExpense(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	expenses, _ = repo.ListExpenses(ctx, core.Month{Year: 2025, Month: 11})
	if expenses[0].Amount.Cents != 160000 || expenses[0].Planned {
		t.Fatalf("update not applied: %+v", expenses[0])
	}

	if err := repo.DeleteExpense(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expenses, _ = repo.ListExpenses(ctx, core.Month{Year: 2025, Month: 11})
	if len(expenses) != 0 {
		t.Fatalf("expected no expenses after delete, got %+v", expenses)
	}
}

func TestCategoriesSeeded(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) == 0 {
		t.Fatal("expected seeded categories")
	}
	if _, ok := cats.Lookup("Moradia"); !ok {
		t.Fatal("expected Moradia among seeded categories")
	}

	id, err := repo.CreateCategory(ctx, core.Category{Name: "Pets", Color: "#a855f7", Icon: "paw"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected nonzero id")
	}

	cats, _ = repo.ListCategories(ctx)
	if c, ok := cats.Lookup("Pets"); !ok || c.Color != "#a855f7" {
		t.Fatalf("expected created category: %+v %v", c, ok)
	}
}

func TestAssetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := core.Asset{
		Name:         "Tesouro Selic",
		Type:         core.AssetTesouroDireto,
		Value:        core.Money{Cents: 500000},
		MonthlyYield: 0.009,
		Date:         core.NewDate(2025, 11, 1),
	}
	id, err := repo.CreateAsset(ctx, a)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	assets, err := repo.ListAssets(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}
	got := assets[0]
	if got.Type != core.AssetTesouroDireto || got.Value.Cents != 500000 || got.MonthlyYield != 0.009 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got.Value = core.Money{Cents: 510000}
	if err := repo.UpdateAsset(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := repo.DeleteAsset(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assets, _ = repo.ListAssets(ctx)
	if len(assets) != 0 {
		t.Fatalf("expected no assets after delete, got %+v", assets)
	}
}

func TestTargetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tgt := core.Target{
		Title:         "Reserva",
		Goal:          core.Money{Cents: 1000000},
		Progress:      core.Money{Cents: 250000},
		MonthlyAmount: core.Money{Cents: 50000},
		Date:          core.NewDate(2025, 11, 1),
	}
	id, err := repo.CreateTarget(ctx, tgt)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	targets, err := repo.ListTargets(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(targets) != 1 || targets[0].Goal.Cents != 1000000 {
		t.Fatalf("round trip mismatch: %+v", targets)
	}

	got := targets[0]
	got.Progress = core.Money{Cents: 1000000}
	if err := repo.UpdateTarget(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	targets, _ = repo.ListTargets(ctx)
	if targets[0].Status() != core.TargetCompleted {
		t.Fatalf("expected completed target: %+v", targets[0])
	}

	if err := repo.DeleteTarget(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	targets, _ = repo.ListTargets(ctx)
	if len(targets) != 0 {
		t.Fatalf("expected no targets after delete, got %+v", targets)
	}
}

func TestUpdateMissingRowsReturnNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.UpdateTransaction(ctx, core.Transaction{ID: 999, Date: core.NewDate(2025, 11, 1), Description: "x", Amount: core.Money{Cents: 1}, Type: core.TypeIncome}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("transaction: expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateExpense(ctx, core.Expense{ID: 999, Title: "x", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 11, 1)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expense: expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteAsset(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("asset: expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteTarget(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("target: expected ErrNotFound, got %v", err)
	}
}
