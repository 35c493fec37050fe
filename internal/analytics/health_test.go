package analytics

import (
	"testing"

	"grana/internal/core"
)

func TestHealthAllCriteria(t *testing.T) {
	s := Summary{
		Month:       core.Month{Year: 2025, Month: 11},
		Credits:     100000,
		Debits:      50000,
		Expenses:    50000,
		Investments: 10000,
		Balance:     40000,
	}
	// savings rate = (40000+10000)/100000 = 50%, expense ratio = 50%
	assets := []core.Asset{
		{Name: "CDB", Value: core.Money{Cents: 400000}},
	}

	h := Health(s, assets, 50000) // runway = 8 months

	if h.Score != 100 {
		t.Fatalf("expected 100, got %d (%+v)", h.Score, h.Breakdown)
	}
	b := h.Breakdown
	if !b.BalancePositive || !b.SavingsRate || !b.ExpenseRatio || !b.GrowthTrend {
		t.Fatalf("expected all criteria, got %+v", b)
	}
}

func TestHealthZeroActivity(t *testing.T) {
	s := Summary{Month: core.Month{Year: 2025, Month: 11}}
	h := Health(s, nil, 0)
	// Zero income: expense ratio falls back to worst case and fails,
	// so nothing scores.
	if h.Score != 0 {
		t.Fatalf("expected 0, got %d (%+v)", h.Score, h.Breakdown)
	}
}

func TestHealthScoreIsSumOfPoints(t *testing.T) {
	cases := []struct {
		name   string
		s      Summary
		assets []core.Asset
		avg    int64
		score  int
	}{
		{
			name:  "only positive balance and expense ratio",
			s:     Summary{Credits: 100000, Expenses: 70000, Debits: 70000, Balance: 30000},
			score: PointsBalancePositive + PointsSavingsRate + PointsExpenseRatio, // 30% savings
		},
		{
			name:  "high expense ratio",
			s:     Summary{Credits: 100000, Expenses: 90000, Debits: 90000, Balance: 10000},
			score: PointsBalancePositive, // 10% savings, 90% ratio
		},
		{
			name:   "runway only",
			s:      Summary{Credits: 0, Expenses: 0, Balance: 0},
			assets: []core.Asset{{Name: "a", Value: core.Money{Cents: 600000}}},
			avg:    100000,
			score:  PointsGrowthTrend,
		},
	}
	for _, tc := range cases {
		h := Health(tc.s, tc.assets, tc.avg)
		if h.Score != tc.score {
			t.Fatalf("%s: expected %d, got %d (%+v)", tc.name, tc.score, h.Score, h.Breakdown)
		}
		if h.Score < 0 || h.Score > 100 {
			t.Fatalf("%s: score out of range: %d", tc.name, h.Score)
		}
	}
}

func TestSavingsRate(t *testing.T) {
	s := Summary{Credits: 100000, Balance: 20000, Investments: 10000}
	if got := SavingsRate(s); got != 30.0 {
		t.Fatalf("expected 30, got %f", got)
	}
	if got := SavingsRate(Summary{}); got != 0 {
		t.Fatalf("expected 0 on no income, got %f", got)
	}
}
