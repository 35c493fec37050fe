package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"grana/internal/core"
	"grana/internal/storage"
)

func newTestService(t *testing.T) *TransactionService {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	// nil AMQP client: publishing is skipped, local writes still succeed
	svc := NewTransactionService(repo, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func sampleTx() core.Transaction {
	return core.Transaction{
		Date:        core.NewDate(2025, 11, 10),
		Description: "Mercado",
		Amount:      core.Money{Cents: -5000},
		Type:        core.TypeExpense,
	}
}

func TestCreateTransactionWithoutAMQP(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateTransaction(ctx, sampleTx())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected nonzero id")
	}

	got, err := svc.storage.GetTransaction(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description != "Mercado" {
		t.Fatalf("unexpected transaction: %+v", got)
	}
}

func TestUpdateTransactionWithoutAMQP(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateTransaction(ctx, sampleTx())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tx := sampleTx()
	tx.ID = id
	tx.Description = "Feira"
	if err := svc.UpdateTransaction(ctx, tx); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := svc.storage.GetTransaction(ctx, id)
	if got.Description != "Feira" {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	svc := newTestService(t)

	tx := sampleTx()
	tx.ID = 999
	if err := svc.UpdateTransaction(context.Background(), tx); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateTransaction(ctx, sampleTx())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteTransaction(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.storage.GetTransaction(ctx, id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
