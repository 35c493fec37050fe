package memory

import (
	"context"
	"testing"

	"grana/internal/core"
)

func TestAppendAndRows(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, core.Transaction{ID: 1, Description: "a"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "1" {
		t.Fatalf("expected row ref 1, got %q", ref)
	}

	ref, _ = s.Append(ctx, core.Transaction{ID: 2, Description: "b"})
	if ref != "2" {
		t.Fatalf("expected row ref 2, got %q", ref)
	}

	rows := s.Rows()
	if len(rows) != 2 || rows[0].Description != "a" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	// Rows returns a copy, mutating it must not affect the store
	rows[0].Description = "mutated"
	if s.Rows()[0].Description != "a" {
		t.Fatal("Rows leaked internal state")
	}
}

func TestDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.Append(ctx, core.Transaction{ID: 1})
	s.Append(ctx, core.Transaction{ID: 2})

	if err := s.Delete(ctx, core.Transaction{ID: 1}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows := s.Rows()
	if len(rows) != 1 || rows[0].ID != 2 {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	// Deleting a missing row is a no-op
	if err := s.Delete(ctx, core.Transaction{ID: 99}); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}
