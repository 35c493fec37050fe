package core

import (
	"errors"
	"testing"
)

func TestParseTransactionType(t *testing.T) {
	cases := []struct {
		in  string
		out TransactionType
	}{
		{"income", TypeIncome},
		{"credit", TypeIncome},
		{"entrada", TypeIncome},
		{"receita", TypeIncome},
		{"Income", TypeIncome},
		{"expense", TypeExpense},
		{"debit", TypeExpense},
		{"saida", TypeExpense},
		{"saída", TypeExpense},
		{"despesa", TypeExpense},
		{"investment", TypeInvestment},
		{"investimento", TypeInvestment},
		{"aporte", TypeInvestment},
		{" EXPENSE ", TypeExpense},
		{"transfer", TypeUnknown},
		{"", TypeUnknown},
	}
	for _, tc := range cases {
		if got := ParseTransactionType(tc.in); got != tc.out {
			t.Fatalf("%q expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestParseAssetType(t *testing.T) {
	cases := []struct {
		in  string
		out AssetType
	}{
		{"CDB", AssetCDB},
		{"Tesouro Direto", AssetTesouroDireto},
		{"Poupança", AssetPoupanca},
		{"alguma coisa", AssetOutros},
		{"", AssetOutros},
	}
	for _, tc := range cases {
		if got := ParseAssetType(tc.in); got != tc.out {
			t.Fatalf("%q expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Date:        NewDate(2025, 11, 5),
		Description: "Mercado",
		Amount:      Money{Cents: -5000},
		Type:        TypeExpense,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		mut  func(Transaction) Transaction
		err  error
	}{
		{"zero date", func(tx Transaction) Transaction { tx.Date = Date{}; return tx }, ErrInvalidDate},
		{"empty description", func(tx Transaction) Transaction { tx.Description = "  "; return tx }, ErrEmptyDescription},
		{"zero amount", func(tx Transaction) Transaction { tx.Amount = Money{}; return tx }, ErrInvalidAmount},
		{"unknown type", func(tx Transaction) Transaction { tx.Type = TypeUnknown; return tx }, ErrInvalidType},
	}
	for _, tc := range cases {
		if err := tc.mut(valid).Validate(); !errors.Is(err, tc.err) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.err, err)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Title:    "Aluguel",
		Category: "Moradia",
		Amount:   Money{Cents: 150000},
		Date:     NewDate(2025, 11, 1),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	negative := valid
	negative.Amount = Money{Cents: -100}
	if err := negative.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	untitled := valid
	untitled.Title = ""
	if err := untitled.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestTargetStatus(t *testing.T) {
	tgt := Target{Title: "Reserva", Goal: Money{Cents: 100000}, Progress: Money{Cents: 40000}}
	if tgt.Status() != TargetInProgress {
		t.Fatalf("expected in_progress, got %q", tgt.Status())
	}
	if tgt.Remaining().Cents != 60000 {
		t.Fatalf("expected 60000 remaining, got %d", tgt.Remaining().Cents)
	}

	tgt.Progress = Money{Cents: 120000}
	if tgt.Status() != TargetCompleted {
		t.Fatalf("expected completed, got %q", tgt.Status())
	}
	if tgt.Remaining().Cents != 0 {
		t.Fatalf("expected 0 remaining, got %d", tgt.Remaining().Cents)
	}
}

func TestCategoriesLookup(t *testing.T) {
	cats := Categories{
		{Name: "Moradia", Color: "#ef4444"},
		{Name: "Lazer", Color: "#22c55e"},
	}

	c, ok := cats.Lookup("Moradia")
	if !ok || c.Color != "#ef4444" {
		t.Fatalf("exact match failed: %v %v", c, ok)
	}

	c, ok = cats.Lookup("lazer")
	if !ok || c.Color != "#22c55e" {
		t.Fatalf("case-insensitive match failed: %v %v", c, ok)
	}

	c, ok = cats.Lookup("Inexistente")
	if ok {
		t.Fatal("expected miss")
	}
	if c.Color != UnknownCategoryColor || c.Name != "Inexistente" {
		t.Fatalf("sentinel wrong: %v", c)
	}
}
