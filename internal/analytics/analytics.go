// Package analytics derives dashboard view models from flat transaction,
// expense and asset lists. Every function is pure: outputs are freshly
// constructed from the inputs of a single call, with no caching and no
// cross-month state beyond the explicit previous-month arguments.
package analytics

import (
	"sort"
	"time"

	"grana/internal/core"
)

// Summary aggregates one month of transactions.
// Balance = Credits - Debits - Investments, all in cents.
type Summary struct {
	Month           core.Month `json:"month"`
	Credits         int64      `json:"credits"`
	Debits          int64      `json:"debits"`
	Expenses        int64      `json:"expenses"`
	PlannedExpenses int64      `json:"planned_expenses"`
	Investments     int64      `json:"investments"`
	Balance         int64      `json:"balance"`
}

// CategoryDelta is one row of the per-category breakdown with its
// month-over-month change.
type CategoryDelta struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Amount     int64   `json:"amount"`
	Previous   int64   `json:"previous"`
	Change     float64 `json:"change"`     // percent vs previous month, 0 when no previous spend
	Percentage float64 `json:"percentage"` // share of current month's expense total
}

// Projection is a linear extrapolation of the month-end balance from the
// average daily spend observed so far. Deliberately naive: no seasonality,
// no recurring-bill awareness, no confidence interval.
type Projection struct {
	Month                   core.Month `json:"month"`
	DaysInMonth             int        `json:"days_in_month"`
	DaysPassed              int        `json:"days_passed"`
	DaysRemaining           int        `json:"days_remaining"`
	ConfirmedIncome         int64      `json:"confirmed_income"`
	CurrentExpenses         int64      `json:"current_expenses"`
	Investments             int64      `json:"investments"`
	AvgDailyExpense         int64      `json:"avg_daily_expense"`
	ProjectedFutureExpenses int64      `json:"projected_future_expenses"`
	ProjectedExpenses       int64      `json:"projected_expenses"`
	ProjectedBalance        int64      `json:"projected_balance"`
}

// BudgetBreakdown compares actual spending against the 50/30/20 rule.
// Amounts are cents; percentages are relative to the month's income.
type BudgetBreakdown struct {
	Essentials        int64   `json:"essentials"`
	Personal          int64   `json:"personal"`
	Savings           int64   `json:"savings"`
	Income            int64   `json:"income"`
	EssentialsPercent float64 `json:"essentials_percent"`
	PersonalPercent   float64 `json:"personal_percent"`
	SavingsPercent    float64 `json:"savings_percent"`
}

// safeDivide is the single zero-handling policy point: every ratio in this
// package goes through it rather than guarding inline at each use site.
func safeDivide(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}

// MonthSummary filters transactions to the given month and sums absolute
// amounts per type. Transactions with an unrecognized type are silently
// excluded from every bucket; an empty input yields the all-zero summary.
func MonthSummary(txs []core.Transaction, m core.Month) Summary {
	s := Summary{Month: m}
	for _, tx := range txs {
		if !tx.Date.In(m) {
			continue
		}
		amount := tx.Amount.Abs().Cents
		switch tx.Type {
		case core.TypeIncome:
			s.Credits += amount
		case core.TypeExpense:
			s.Debits += amount
			s.Expenses += amount
		case core.TypeInvestment:
			s.Investments += amount
		}
	}
	s.Balance = s.Credits - s.Debits - s.Investments
	return s
}

// AddPlannedExpenses folds planned expense records into the summary's
// planned bucket. Planned amounts never touch Debits or Balance.
func AddPlannedExpenses(s Summary, expenses []core.Expense) Summary {
	for _, e := range expenses {
		if e.Planned && e.Date.In(s.Month) {
			s.PlannedExpenses += e.Amount.Abs().Cents
		}
	}
	return s
}

// MonthEndProjection extrapolates the month-end balance linearly from the
// average daily spend so far. A month earlier than today's is treated as
// fully elapsed, so no retroactive projection happens; daysPassed==0
// yields a zero daily average rather than a division.
func MonthEndProjection(txs []core.Transaction, m core.Month, today time.Time) Projection {
	p := Projection{Month: m, DaysInMonth: m.Days()}

	currentDay := p.DaysInMonth
	if core.MonthOf(today) == m {
		currentDay = today.Day()
	}
	p.DaysPassed = currentDay
	p.DaysRemaining = p.DaysInMonth - currentDay

	s := MonthSummary(txs, m)
	p.ConfirmedIncome = s.Credits
	p.CurrentExpenses = s.Expenses
	p.Investments = s.Investments

	p.AvgDailyExpense = int64(safeDivide(float64(s.Expenses), float64(p.DaysPassed), 0))
	p.ProjectedFutureExpenses = p.AvgDailyExpense * int64(p.DaysRemaining)
	p.ProjectedExpenses = s.Expenses + p.ProjectedFutureExpenses
	p.ProjectedBalance = p.ConfirmedIncome - p.ProjectedExpenses - p.Investments
	return p
}

// ExpensesByCategory groups both periods by category name, computes each
// current category's month-over-month change and share of the total, and
// returns rows sorted descending by current amount. A category with no
// previous spend reports change 0. Categories present only in the
// previous period are dropped, not reported as a 100% decrease.
func ExpensesByCategory(current, previous []core.Expense, cats core.Categories) []CategoryDelta {
	currentSums := sumByCategory(current)
	previousSums := sumByCategory(previous)

	var total int64
	for _, v := range currentSums {
		total += v
	}

	deltas := make([]CategoryDelta, 0, len(currentSums))
	for name, amount := range currentSums {
		prev := previousSums[name]
		cat, _ := cats.Lookup(name)
		deltas = append(deltas, CategoryDelta{
			Name:       name,
			Color:      cat.Color,
			Amount:     amount,
			Previous:   prev,
			Change:     safeDivide(float64(amount-prev), float64(prev), 0) * 100,
			Percentage: safeDivide(float64(amount), float64(total), 0) * 100,
		})
	}

	sort.Slice(deltas, func(i, j int) bool {
		if deltas[i].Amount != deltas[j].Amount {
			return deltas[i].Amount > deltas[j].Amount
		}
		return deltas[i].Name < deltas[j].Name
	})
	return deltas
}

func sumByCategory(expenses []core.Expense) map[string]int64 {
	sums := make(map[string]int64, len(expenses))
	for _, e := range expenses {
		sums[e.Category] += e.Amount.Abs().Cents
	}
	return sums
}

// BudgetRule sums the month's expenses into essentials and personal
// buckets by category membership and compares each bucket against income.
// Categories in neither membership list are excluded from both buckets,
// never inferred as savings. Savings = max(balance, 0) + investments.
func BudgetRule(expenses []core.Expense, s Summary) BudgetBreakdown {
	b := BudgetBreakdown{Income: s.Credits}
	for _, e := range expenses {
		if !e.Date.In(s.Month) {
			continue
		}
		amount := e.Amount.Abs().Cents
		switch {
		case EssentialCategories[e.Category]:
			b.Essentials += amount
		case PersonalCategories[e.Category]:
			b.Personal += amount
		}
	}
	if s.Balance > 0 {
		b.Savings = s.Balance
	}
	b.Savings += s.Investments

	income := float64(b.Income)
	b.EssentialsPercent = safeDivide(float64(b.Essentials), income, 0) * 100
	b.PersonalPercent = safeDivide(float64(b.Personal), income, 0) * 100
	b.SavingsPercent = safeDivide(float64(b.Savings), income, 0) * 100
	return b
}
