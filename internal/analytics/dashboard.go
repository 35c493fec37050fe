package analytics

import (
	"time"

	"grana/internal/core"
)

// Dashboard is the full view model the dashboard endpoint serves.
type Dashboard struct {
	Summary    Summary         `json:"summary"`
	Previous   Summary         `json:"previous"`
	Health     HealthScore     `json:"health"`
	Projection Projection      `json:"projection"`
	Categories []CategoryDelta `json:"categories"`
	Budget     BudgetBreakdown `json:"budget"`
	Alerts     []Alert         `json:"alerts"`
}

// Input carries everything a dashboard derivation needs. The holder owns
// the slices; nothing here mutates them.
type Input struct {
	Transactions []core.Transaction
	Expenses     []core.Expense // current month's categorized expenses
	PrevExpenses []core.Expense // previous month's categorized expenses
	Assets       []core.Asset
	Categories   core.Categories
	Month        core.Month
	Today        time.Time

	// AvgMonthlyExpenses is the trailing average fed to the health
	// score; the caller computes it (usually over the prior 3 months).
	AvgMonthlyExpenses int64
}

// Build composes the complete dashboard from one input snapshot. Calling
// it twice with identical inputs yields identical output.
func Build(in Input) Dashboard {
	current := AddPlannedExpenses(MonthSummary(in.Transactions, in.Month), in.Expenses)
	previous := MonthSummary(in.Transactions, in.Month.Prev())
	projection := MonthEndProjection(in.Transactions, in.Month, in.Today)
	deltas := ExpensesByCategory(in.Expenses, in.PrevExpenses, in.Categories)

	return Dashboard{
		Summary:    current,
		Previous:   previous,
		Health:     Health(current, in.Assets, in.AvgMonthlyExpenses),
		Projection: projection,
		Categories: deltas,
		Budget:     BudgetRule(in.Expenses, current),
		Alerts:     Alerts(current, &previous, projection, deltas),
	}
}

// TrailingAvgExpenses computes the average monthly expense total over the
// n months preceding m (not including m itself). Months with no expense
// records still count toward the divisor.
func TrailingAvgExpenses(txs []core.Transaction, m core.Month, n int) int64 {
	if n <= 0 {
		return 0
	}
	var total int64
	month := m
	for i := 0; i < n; i++ {
		month = month.Prev()
		total += MonthSummary(txs, month).Expenses
	}
	return total / int64(n)
}
