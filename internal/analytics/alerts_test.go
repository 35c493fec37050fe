package analytics

import (
	"strings"
	"testing"

	"grana/internal/core"
)

func findAlert(alerts []Alert, substr string) *Alert {
	for i := range alerts {
		if strings.Contains(alerts[i].Message, substr) {
			return &alerts[i]
		}
	}
	return nil
}

func TestAlertsOverspend(t *testing.T) {
	m := core.Month{Year: 2025, Month: 11}
	current := Summary{Month: m, Expenses: 160000}
	previous := Summary{Month: m.Prev(), Expenses: 100000}

	alerts := Alerts(current, &previous, Projection{}, nil)

	a := findAlert(alerts, "acima do mês anterior")
	if a == nil {
		t.Fatalf("expected overspend alert, got %+v", alerts)
	}
	if a.Severity != SeverityCritical {
		t.Fatalf("expected critical, got %q", a.Severity)
	}
	if !strings.Contains(a.Message, "60%") {
		t.Fatalf("expected 60%% in message, got %q", a.Message)
	}
}

func TestAlertsOverspendNotFired(t *testing.T) {
	m := core.Month{Year: 2025, Month: 11}

	// Exactly 1.5x does not fire, the comparison is strict
	current := Summary{Month: m, Expenses: 150000}
	previous := Summary{Month: m.Prev(), Expenses: 100000}
	if a := findAlert(Alerts(current, &previous, Projection{}, nil), "acima do mês anterior"); a != nil {
		t.Fatalf("1.5x exactly should not fire: %+v", a)
	}

	// Zero previous expenses never fires, whatever the current spend
	previous.Expenses = 0
	current.Expenses = 999999
	if a := findAlert(Alerts(current, &previous, Projection{}, nil), "acima do mês anterior"); a != nil {
		t.Fatalf("zero previous should not fire: %+v", a)
	}

	// Nil previous month never fires
	if a := findAlert(Alerts(current, nil, Projection{}, nil), "acima do mês anterior"); a != nil {
		t.Fatalf("nil previous should not fire: %+v", a)
	}
}

func TestAlertsNegativeProjection(t *testing.T) {
	proj := Projection{ProjectedBalance: -30000, DaysRemaining: 10}

	alerts := Alerts(Summary{}, nil, proj, nil)

	a := findAlert(alerts, "saldo negativo")
	if a == nil {
		t.Fatalf("expected projection alert, got %+v", alerts)
	}
	if a.Severity != SeverityCritical {
		t.Fatalf("expected critical, got %q", a.Severity)
	}
	// 30000 / 10 days = R$30,00 per day
	if !strings.Contains(a.Action, "R$30,00 por dia") {
		t.Fatalf("expected per-day figure, got %q", a.Action)
	}
}

func TestAlertsNegativeProjectionLastDay(t *testing.T) {
	proj := Projection{ProjectedBalance: -30000, DaysRemaining: 0}

	alerts := Alerts(Summary{}, nil, proj, nil)

	a := findAlert(alerts, "saldo negativo")
	if a == nil {
		t.Fatalf("expected projection alert, got %+v", alerts)
	}
	if strings.Contains(a.Action, "por dia") {
		t.Fatalf("no per-day figure expected on the last day, got %q", a.Action)
	}
}

func TestAlertsCategoryIncrease(t *testing.T) {
	deltas := []CategoryDelta{
		{Name: "Lazer", Change: 45.0},
		{Name: "Moradia", Change: 10.0},
		{Name: "Compras", Change: 30.0}, // exactly at threshold, strict
	}

	alerts := Alerts(Summary{}, nil, Projection{}, deltas)

	if a := findAlert(alerts, "Lazer subiu 45%"); a == nil || a.Severity != SeverityWarning {
		t.Fatalf("expected Lazer warning, got %+v", alerts)
	}
	if a := findAlert(alerts, "Moradia"); a != nil {
		t.Fatalf("Moradia should not fire: %+v", a)
	}
	if a := findAlert(alerts, "Compras"); a != nil {
		t.Fatalf("Compras at exactly 30%% should not fire: %+v", a)
	}
}

func TestAlertsExcellentSavings(t *testing.T) {
	current := Summary{Credits: 100000, Balance: 30000}

	alerts := Alerts(current, nil, Projection{}, nil)

	a := findAlert(alerts, "Taxa de poupança")
	if a == nil || a.Severity != SeveritySuccess {
		t.Fatalf("expected success alert, got %+v", alerts)
	}
}

func TestAlertsLowBalance(t *testing.T) {
	current := Summary{Balance: 15000}
	proj := Projection{DaysRemaining: 10}

	alerts := Alerts(current, nil, proj, nil)

	a := findAlert(alerts, "dias restantes")
	if a == nil || a.Severity != SeverityWarning {
		t.Fatalf("expected low balance warning, got %+v", alerts)
	}

	// Near the end of the month the warning is pointless
	proj.DaysRemaining = 3
	if a := findAlert(Alerts(current, nil, proj, nil), "dias restantes"); a != nil {
		t.Fatalf("should not fire with 3 days remaining: %+v", a)
	}

	// Negative balance is the projection rule's business, not this one's
	current.Balance = -100
	proj.DaysRemaining = 10
	if a := findAlert(Alerts(current, nil, proj, nil), "dias restantes"); a != nil {
		t.Fatalf("should not fire on negative balance: %+v", a)
	}
}

func TestAlertsMultipleRulesFire(t *testing.T) {
	m := core.Month{Year: 2025, Month: 11}
	current := Summary{Month: m, Expenses: 200000, Balance: 10000}
	previous := Summary{Month: m.Prev(), Expenses: 100000}
	proj := Projection{ProjectedBalance: -5000, DaysRemaining: 12}
	deltas := []CategoryDelta{{Name: "Lazer", Change: 80}}

	alerts := Alerts(current, &previous, proj, deltas)

	// overspend, negative projection, category increase, low balance
	if len(alerts) != 4 {
		t.Fatalf("expected 4 alerts, got %d: %+v", len(alerts), alerts)
	}
	// Insertion order is display order
	if alerts[0].Message != "Gastos 100% acima do mês anterior" {
		t.Fatalf("unexpected first alert: %q", alerts[0].Message)
	}
}

func TestAlertsNoneFire(t *testing.T) {
	m := core.Month{Year: 2025, Month: 11}
	current := Summary{Month: m, Credits: 100000, Expenses: 80000, Debits: 80000, Balance: 20000}
	previous := Summary{Month: m.Prev(), Expenses: 80000}
	proj := Projection{ProjectedBalance: 1000, DaysRemaining: 10}

	alerts := Alerts(current, &previous, proj, nil)
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", alerts)
	}
}
