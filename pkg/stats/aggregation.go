package stats

import (
	"slices"
	"time"

	"github.com/klokku/pennywise/pkg/budget"
	"github.com/klokku/pennywise/pkg/transaction"
	"github.com/shopspring/decimal"
)

const monthLabelLayout = "Jan 06"

var hundred = decimal.NewFromInt(100)

// ExpensesForMonth sums expenses of the category whose date falls in the same calendar year and month as ref.
// Dates are compared in ref's location.
func ExpensesForMonth(transactions []transaction.Transaction, ref time.Time, category transaction.Category) decimal.Decimal {
	year, month, _ := ref.Date()
	total := decimal.Zero
	for _, t := range transactions {
		if !t.IsExpense() || t.Category != category {
			continue
		}
		tYear, tMonth, _ := t.Date.In(ref.Location()).Date()
		if tYear == year && tMonth == month {
			total = total.Add(t.Amount)
		}
	}
	return total
}

func TotalIncome(transactions []transaction.Transaction) decimal.Decimal {
	return sumOf(transactions, transaction.Income)
}

func TotalExpenses(transactions []transaction.Transaction) decimal.Decimal {
	return sumOf(transactions, transaction.Expense)
}

func TotalBudget(budgets []budget.Budget) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		total = total.Add(b.Limit)
	}
	return total
}

// Summarize computes the dashboard totals. Budget total always covers the whole budget list,
// including categories without transactions.
func Summarize(transactions []transaction.Transaction, budgets []budget.Budget) Summary {
	income := TotalIncome(transactions)
	expenses := TotalExpenses(transactions)
	budgetTotal := TotalBudget(budgets)
	return Summary{
		TotalIncome:     income,
		TotalExpenses:   expenses,
		TotalBudget:     budgetTotal,
		RemainingBudget: budgetTotal.Sub(expenses),
		Savings:         income.Sub(expenses),
	}
}

// FilterByDateRange keeps transactions dated within the range, the end day included in full.
// If either bound is unset the full collection is returned.
func FilterByDateRange(transactions []transaction.Transaction, r DateRange) []transaction.Transaction {
	return transaction.FilterByDateRange(transactions, r.Start, r.End)
}

// GroupByMonth totals expenses per calendar month in loc, in first-encountered order.
func GroupByMonth(transactions []transaction.Transaction, loc *time.Location) []MonthlyTotal {
	type monthKey struct {
		year  int
		month time.Month
	}
	index := map[monthKey]int{}
	var result []MonthlyTotal
	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		date := t.Date.In(loc)
		key := monthKey{date.Year(), date.Month()}
		i, ok := index[key]
		if !ok {
			i = len(result)
			index[key] = i
			result = append(result, MonthlyTotal{
				Year:  key.year,
				Month: key.month,
				Label: date.Format(monthLabelLayout),
				Total: decimal.Zero,
			})
		}
		result[i].Total = result[i].Total.Add(t.Amount)
	}
	return result
}

// SortMonthsChronologically returns a copy ordered from the oldest month.
func SortMonthsChronologically(months []MonthlyTotal) []MonthlyTotal {
	sorted := slices.Clone(months)
	slices.SortStableFunc(sorted, func(a, b MonthlyTotal) int {
		if a.Year != b.Year {
			return a.Year - b.Year
		}
		return int(a.Month) - int(b.Month)
	})
	return sorted
}

// GroupByCategory totals expenses per category in first-encountered order. Categories outside the
// closed set are counted under Other.
func GroupByCategory(transactions []transaction.Transaction) []CategoryTotal {
	index := map[transaction.Category]int{}
	var result []CategoryTotal
	expenses := decimal.Zero
	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		category := t.Category.Bucket()
		i, ok := index[category]
		if !ok {
			i = len(result)
			index[category] = i
			result = append(result, CategoryTotal{Category: category, Total: decimal.Zero})
		}
		result[i].Total = result[i].Total.Add(t.Amount)
		expenses = expenses.Add(t.Amount)
	}
	for i := range result {
		result[i].Share = decimal.Zero
		if expenses.IsPositive() {
			result[i].Share = result[i].Total.Div(expenses).Mul(hundred).Round(2)
		}
	}
	return result
}

// TodaysExpenses returns expenses dated on now's calendar day.
func TodaysExpenses(transactions []transaction.Transaction, now time.Time) []transaction.Transaction {
	year, month, day := now.Date()
	var result []transaction.Transaction
	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}
		tYear, tMonth, tDay := t.Date.In(now.Location()).Date()
		if tYear == year && tMonth == month && tDay == day {
			result = append(result, t)
		}
	}
	return result
}

func LifetimeStats(transactions []transaction.Transaction) Lifetime {
	income := TotalIncome(transactions)
	expenses := TotalExpenses(transactions)
	return Lifetime{
		TotalIncome:   income,
		TotalExpenses: expenses,
		TotalSavings:  income.Sub(expenses),
	}
}

// BudgetProgress evaluates every budget against the expenses of ref's month.
func BudgetProgress(budgets []budget.Budget, transactions []transaction.Transaction, ref time.Time) []budget.Progress {
	result := make([]budget.Progress, 0, len(budgets))
	for _, b := range budgets {
		spent := ExpensesForMonth(transactions, ref, b.Category)
		result = append(result, budget.NewProgress(b, spent))
	}
	return result
}

// BuildDashboard applies the date range and computes every dashboard figure from the filtered set.
func BuildDashboard(transactions []transaction.Transaction, budgets []budget.Budget, r DateRange, now time.Time) Dashboard {
	filtered := FilterByDateRange(transactions, r)
	return Dashboard{
		Range:      r,
		Summary:    Summarize(filtered, budgets),
		Monthly:    SortMonthsChronologically(GroupByMonth(filtered, now.Location())),
		ByCategory: GroupByCategory(filtered),
		Today:      TodaysExpenses(filtered, now),
	}
}

func sumOf(transactions []transaction.Transaction, typ transaction.Type) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.Type == typ {
			total = total.Add(t.Amount)
		}
	}
	return total
}
