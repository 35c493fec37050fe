package analytics

import "grana/internal/core"

// HealthBreakdown flags which of the four wellness criteria held.
type HealthBreakdown struct {
	BalancePositive bool `json:"balance_positive"`
	SavingsRate     bool `json:"savings_rate"`
	ExpenseRatio    bool `json:"expense_ratio"`
	GrowthTrend     bool `json:"growth_trend"`
}

// HealthScore is the 0-100 heuristic composite plus its criteria flags.
type HealthScore struct {
	Score     int             `json:"score"`
	Breakdown HealthBreakdown `json:"breakdown"`
}

// Health scores the month on four independent criteria, each worth a
// fixed point allotment:
//
//  1. positive balance
//  2. savings rate (balance+investments over income) at or above
//     MinGoodSavingsRate
//  3. expense ratio under MaxExpenseRatio
//  4. asset runway (total assets over average monthly expenses) of at
//     least MinRunwayMonths
//
// With zero income the savings and expense criteria fail outright: the
// expense ratio is taken as the worst-case 100%, since zero income with
// any spending is maximally bad. That is policy, not an accident.
func Health(s Summary, assets []core.Asset, avgMonthlyExpenses int64) HealthScore {
	var h HealthScore

	if s.Balance > 0 {
		h.Breakdown.BalancePositive = true
		h.Score += PointsBalancePositive
	}

	credits := float64(s.Credits)
	savingsRate := safeDivide(float64(s.Balance+s.Investments), credits, 0) * 100
	if s.Credits > 0 && savingsRate >= MinGoodSavingsRate {
		h.Breakdown.SavingsRate = true
		h.Score += PointsSavingsRate
	}

	expenseRatio := safeDivide(float64(s.Expenses), credits, 1) * 100
	if expenseRatio < MaxExpenseRatio {
		h.Breakdown.ExpenseRatio = true
		h.Score += PointsExpenseRatio
	}

	var totalAssets int64
	for _, a := range assets {
		totalAssets += a.Value.Abs().Cents
	}
	runway := safeDivide(float64(totalAssets), float64(avgMonthlyExpenses), 0)
	if avgMonthlyExpenses > 0 && runway >= MinRunwayMonths {
		h.Breakdown.GrowthTrend = true
		h.Score += PointsGrowthTrend
	}

	return h
}

// SavingsRate returns the month's savings rate as a percentage of income,
// 0 when there is no income.
func SavingsRate(s Summary) float64 {
	return safeDivide(float64(s.Balance+s.Investments), float64(s.Credits), 0) * 100
}
