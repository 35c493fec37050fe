package analytics

// Health score point allotments. The four criteria are independent
// booleans; the total score is the sum of the points for criteria that
// hold, so the values below must sum to 100.
const (
	PointsBalancePositive = 25
	PointsSavingsRate     = 25
	PointsExpenseRatio    = 25
	PointsGrowthTrend     = 25
)

// Health score criteria thresholds.
const (
	// MinGoodSavingsRate is the savings rate (percent of income) at or
	// above which the savings criterion holds.
	MinGoodSavingsRate = 20.0

	// MaxExpenseRatio is the expense ratio (percent of income) below
	// which the expense criterion holds.
	MaxExpenseRatio = 80.0

	// MinRunwayMonths is the asset runway (months of average expenses
	// covered by total assets) at or above which the trend criterion holds.
	MinRunwayMonths = 6.0
)

// Alert thresholds.
const (
	// ExpenseIncreaseAlertThreshold fires the critical overspend alert
	// when current expenses exceed previous expenses times this factor.
	ExpenseIncreaseAlertThreshold = 1.5

	// CategoryIncreaseAlertThreshold is the month-over-month percentage
	// increase above which a category earns its own warning alert.
	CategoryIncreaseAlertThreshold = 30.0

	// ExcellentSavingsRate is the savings rate that earns a success alert.
	ExcellentSavingsRate = 30.0

	// LowBalanceAlertThresholdCents warns when the balance is positive
	// but below this amount with enough of the month still to go.
	LowBalanceAlertThresholdCents = 20000

	// LowBalanceMinDaysRemaining is how many days must remain in the
	// month for the low-balance warning to be worth raising.
	LowBalanceMinDaysRemaining = 5
)

// EssentialCategories and PersonalCategories define the static
// category-to-bucket membership for the 50/30/20 comparison. Anything in
// neither set only affects neither bucket.
var (
	EssentialCategories = map[string]bool{
		"Moradia":     true,
		"Alimentação": true,
		"Saúde":       true,
		"Transporte":  true,
		"Educação":    true,
		"Contas":      true,
	}

	PersonalCategories = map[string]bool{
		"Lazer":        true,
		"Restaurantes": true,
		"Compras":      true,
		"Assinaturas":  true,
		"Viagens":      true,
	}
)
