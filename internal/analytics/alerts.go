package analytics

import (
	"fmt"

	"grana/internal/core"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
)

// Alert is a single dashboard notice.
type Alert struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Action   string   `json:"action"`
	Icon     string   `json:"icon"`
}

// Alerts evaluates every rule independently and returns the alerts in
// insertion order, which is also display order. Rules are not mutually
// exclusive; there is no deduplication, no priority sorting and no cap,
// so every qualifying rule fires.
func Alerts(current Summary, previous *Summary, proj Projection, deltas []CategoryDelta) []Alert {
	var alerts []Alert

	if previous != nil && previous.Expenses > 0 &&
		float64(current.Expenses) > float64(previous.Expenses)*ExpenseIncreaseAlertThreshold {
		increase := safeDivide(float64(current.Expenses-previous.Expenses), float64(previous.Expenses), 0) * 100
		alerts = append(alerts, Alert{
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("Gastos %.0f%% acima do mês anterior", increase),
			Action:   "Revise suas despesas recentes",
			Icon:     "trending-up",
		})
	}

	if proj.ProjectedBalance < 0 {
		deficit := core.Money{Cents: -proj.ProjectedBalance}
		a := Alert{
			Severity: SeverityCritical,
			Icon:     "alert-triangle",
			Message:  fmt.Sprintf("Projeção de saldo negativo de %s no fim do mês", deficit),
		}
		if proj.DaysRemaining > 0 {
			perDay := core.Money{Cents: deficit.Cents / int64(proj.DaysRemaining)}
			a.Action = fmt.Sprintf("Reduza os gastos em %s por dia", perDay)
		} else {
			// Last day of the month: nothing left to ration, so the
			// alert states the deficit without a per-day figure.
			a.Action = "Revise o orçamento do próximo mês"
		}
		alerts = append(alerts, a)
	}

	for _, d := range deltas {
		if d.Change > CategoryIncreaseAlertThreshold {
			alerts = append(alerts, Alert{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s subiu %.0f%% em relação ao mês anterior", d.Name, d.Change),
				Action:   fmt.Sprintf("Verifique os gastos em %s", d.Name),
				Icon:     "pie-chart",
			})
		}
	}

	if rate := SavingsRate(current); rate >= ExcellentSavingsRate {
		alerts = append(alerts, Alert{
			Severity: SeveritySuccess,
			Message:  fmt.Sprintf("Taxa de poupança de %.0f%% este mês", rate),
			Action:   "Continue assim",
			Icon:     "piggy-bank",
		})
	}

	if current.Balance > 0 && current.Balance < LowBalanceAlertThresholdCents &&
		proj.DaysRemaining > LowBalanceMinDaysRemaining {
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Message: fmt.Sprintf("Saldo de %s com %d dias restantes no mês",
				core.Money{Cents: current.Balance}, proj.DaysRemaining),
			Action: "Evite gastos não essenciais",
			Icon:   "wallet",
		})
	}

	return alerts
}
