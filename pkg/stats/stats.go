package stats

import (
	"time"

	"github.com/klokku/pennywise/pkg/transaction"
	"github.com/shopspring/decimal"
)

type Summary struct {
	TotalIncome     decimal.Decimal
	TotalExpenses   decimal.Decimal
	TotalBudget     decimal.Decimal
	RemainingBudget decimal.Decimal
	Savings         decimal.Decimal
}

// DateRange is inclusive on both ends. A zero bound means "unset".
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) IsSet() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

type MonthlyTotal struct {
	Year  int
	Month time.Month
	// Label is the short chart label, e.g. "Mar 25".
	Label string
	Total decimal.Decimal
}

type CategoryTotal struct {
	Category transaction.Category
	Total    decimal.Decimal
	// Share of all expenses in percent, rounded to two decimal places.
	Share decimal.Decimal
}

type Lifetime struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	TotalSavings  decimal.Decimal
}

type Dashboard struct {
	Range      DateRange
	Summary    Summary
	Monthly    []MonthlyTotal
	ByCategory []CategoryTotal
	Today      []transaction.Transaction
}
