package budget

import (
	"github.com/klokku/pennywise/internal/validation"
	"github.com/klokku/pennywise/pkg/transaction"
	"github.com/shopspring/decimal"
)

// Budget is a monthly spending ceiling for one category. Category is the natural key.
type Budget struct {
	Category transaction.Category `json:"category"`
	Limit    decimal.Decimal      `json:"limit"`
}

type Level string

const (
	LevelOk       Level = "ok"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
	LevelOver     Level = "over"
)

var (
	warningPercent  = decimal.NewFromInt(75)
	criticalPercent = decimal.NewFromInt(90)
	hundred         = decimal.NewFromInt(100)
)

// Progress is how much of a budget has been spent in a month.
type Progress struct {
	Budget    Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	// Percent of the limit spent, capped at 100. Zero when the limit is zero.
	Percent decimal.Decimal
	Level   Level
}

// NewProgress evaluates spent against the budget limit.
func NewProgress(b Budget, spent decimal.Decimal) Progress {
	percent := decimal.Zero
	if b.Limit.IsPositive() {
		percent = decimal.Min(spent.Div(b.Limit).Mul(hundred), hundred)
	}

	level := LevelOk
	switch {
	case spent.GreaterThan(b.Limit):
		level = LevelOver
	case percent.GreaterThan(criticalPercent):
		level = LevelCritical
	case percent.GreaterThan(warningPercent):
		level = LevelWarning
	}

	return Progress{
		Budget:    b,
		Spent:     spent,
		Remaining: b.Limit.Sub(spent),
		Percent:   percent,
		Level:     level,
	}
}

func (b Budget) Validate() error {
	if !b.Category.Valid() {
		return validation.Newf("unknown budget category %q", b.Category)
	}
	if b.Limit.IsNegative() {
		return validation.Newf("budget limit for %s must not be negative", b.Category)
	}
	return nil
}

// ValidateAll checks every budget and that no category appears twice. All problems are reported together.
func ValidateAll(budgets []Budget) error {
	ve := &validation.Errors{}
	seen := make(map[transaction.Category]bool, len(budgets))
	for _, b := range budgets {
		if err := b.Validate(); err != nil {
			ve.Add(err)
			continue
		}
		if seen[b.Category] {
			ve.Add(validation.Newf("duplicate budget for category %s", b.Category))
		}
		seen[b.Category] = true
	}
	return ve.ErrOrNil()
}

// Find returns the budget for the category, if one exists.
func Find(budgets []Budget, category transaction.Category) (Budget, bool) {
	for _, b := range budgets {
		if b.Category == category {
			return b, true
		}
	}
	return Budget{}, false
}
