package core

import (
	"errors"
	"strings"
)

const (
	TypeUnknown    TransactionType = ""
	TypeIncome     TransactionType = "income"
	TypeExpense    TransactionType = "expense"
	TypeInvestment TransactionType = "investment"
)

const (
	AssetPoupanca      AssetType = "Poupança"
	AssetCDB           AssetType = "CDB"
	AssetTesouroDireto AssetType = "Tesouro Direto"
	AssetAcoes         AssetType = "Ações"
	AssetFundos        AssetType = "Fundos"
	AssetCripto        AssetType = "Criptomoedas"
	AssetOutros        AssetType = "Outros"
)

const (
	TargetInProgress TargetStatus = "in_progress"
	TargetCompleted  TargetStatus = "completed"
)

// UnknownCategoryColor is the sentinel color used when a category lookup misses.
const UnknownCategoryColor = "#64748b"

type (
	TransactionType string
	AssetType       string
	TargetStatus    string

	// Transaction is a single dated, typed, signed monetary movement.
	Transaction struct {
		ID          int64
		Date        Date
		Description string
		Amount      Money // signed; aggregates normalize via Abs
		Type        TransactionType
	}

	// Expense is a categorized outgoing record, kept separate from
	// generic transactions so category views stay independent.
	Expense struct {
		ID       int64
		Title    string
		Category string // category name, weak join (see Categories.Lookup)
		Amount   Money
		Date     Date
		Planned  bool
	}

	Category struct {
		ID    int64
		Name  string
		Color string // hex
		Icon  string
	}

	// Asset is an investment position with current value and monthly yield.
	Asset struct {
		ID           int64
		Name         string
		Type         AssetType
		Value        Money
		MonthlyYield float64 // decimal fraction, e.g. 0.01 for 1%/month
		Date         Date
	}

	// Target is a savings goal with progress tracking.
	Target struct {
		ID            int64
		Title         string
		Goal          Money
		Progress      Money
		MonthlyAmount Money
		Date          Date
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid type")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyTitle       = errors.New("empty title")
	ErrEmptyName        = errors.New("empty name")
)

// ParseTransactionType maps every external representation of a movement
// type onto the closed enumeration once, at the boundary. The source data
// is inconsistent (type vs type_internal_name, credit/debit vs
// income/expense), so every alias lands here. Anything unrecognized maps
// to TypeUnknown, which the aggregates silently drop.
func ParseTransactionType(s string) TransactionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "credit", "entrada", "receita":
		return TypeIncome
	case "expense", "debit", "saida", "saída", "despesa":
		return TypeExpense
	case "investment", "investimento", "aporte":
		return TypeInvestment
	default:
		return TypeUnknown
	}
}

// Valid reports whether t is one of the closed set (TypeUnknown is not).
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeInvestment:
		return true
	}
	return false
}

// ParseAssetType validates an asset type against the fixed enumeration,
// defaulting to Outros for anything it does not recognize.
func ParseAssetType(s string) AssetType {
	switch t := AssetType(strings.TrimSpace(s)); t {
	case AssetPoupanca, AssetCDB, AssetTesouroDireto, AssetAcoes, AssetFundos, AssetCripto, AssetOutros:
		return t
	default:
		return AssetOutros
	}
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Amount.Cents == 0 {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(e.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if e.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}

func (a Asset) Validate() error {
	if len(strings.TrimSpace(a.Name)) == 0 {
		return ErrEmptyName
	}
	if a.Value.Cents < 0 {
		return ErrInvalidAmount
	}
	return a.Date.Validate()
}

func (t Target) Validate() error {
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if t.Goal.Cents <= 0 {
		return ErrInvalidAmount
	}
	if t.Progress.Cents < 0 || t.MonthlyAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Status derives the goal state: completed once progress reaches the goal.
func (t Target) Status() TargetStatus {
	if t.Progress.Cents >= t.Goal.Cents {
		return TargetCompleted
	}
	return TargetInProgress
}

// Remaining returns how much is still missing to complete the goal
// (never negative).
func (t Target) Remaining() Money {
	if t.Progress.Cents >= t.Goal.Cents {
		return Money{}
	}
	return Money{Cents: t.Goal.Cents - t.Progress.Cents}
}

// Categories supports the weak name-based join expenses use. Lookups
// match by exact name first, then case-insensitively, and return a gray
// sentinel on miss instead of failing.
type Categories []Category

// Lookup finds a category by name with a lowercase fallback. The second
// return is false on miss, in which case a sentinel category carrying
// UnknownCategoryColor is returned.
func (cs Categories) Lookup(name string) (Category, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c, true
		}
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, c := range cs {
		if strings.ToLower(c.Name) == lower {
			return c, true
		}
	}
	return Category{Name: name, Color: UnknownCategoryColor}, false
}
