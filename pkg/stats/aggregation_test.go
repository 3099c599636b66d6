package stats

import (
	"testing"
	"time"

	"github.com/klokku/pennywise/pkg/budget"
	"github.com/klokku/pennywise/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march = func(day int) time.Time { return time.Date(2025, time.March, day, 10, 0, 0, 0, time.UTC) }

func tx(id string, typ transaction.Type, amount int64, category transaction.Category, date time.Time) transaction.Transaction {
	return transaction.Transaction{ID: id, Type: typ, Amount: decimal.NewFromInt(amount), Category: category, Date: date}
}

func sampleTransactions() []transaction.Transaction {
	return []transaction.Transaction{
		tx("1", transaction.Income, 50000, transaction.Salary, march(1)),
		tx("2", transaction.Expense, 15000, transaction.Rent, march(2)),
		tx("3", transaction.Expense, 3000, transaction.Groceries, march(5)),
		tx("4", transaction.Income, 5000, transaction.Freelance, march(10)),
	}
}

func sampleBudgets() []budget.Budget {
	return []budget.Budget{
		{Category: transaction.Groceries, Limit: decimal.NewFromInt(10000)},
		{Category: transaction.Utilities, Limit: decimal.NewFromInt(5000)},
	}
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s", want, got)
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleTransactions(), sampleBudgets())

	assertDecimal(t, 55000, summary.TotalIncome)
	assertDecimal(t, 18000, summary.TotalExpenses)
	assertDecimal(t, 15000, summary.TotalBudget)
	assertDecimal(t, -3000, summary.RemainingBudget)
	assertDecimal(t, 37000, summary.Savings)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, nil)

	assertDecimal(t, 0, summary.TotalIncome)
	assertDecimal(t, 0, summary.TotalExpenses)
	assertDecimal(t, 0, summary.Savings)
}

func TestExpensesForMonth(t *testing.T) {
	transactions := append(sampleTransactions(),
		tx("5", transaction.Expense, 2000, transaction.Groceries, march(20)),
		tx("6", transaction.Expense, 700, transaction.Groceries, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)),
		tx("7", transaction.Expense, 900, transaction.Groceries, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)),
		tx("8", transaction.Income, 100, transaction.Groceries, march(3)),
	)

	t.Run("should sum only same month expenses of the category", func(t *testing.T) {
		assertDecimal(t, 5000, ExpensesForMonth(transactions, march(31), transaction.Groceries))
	})

	t.Run("should return zero for category without expenses", func(t *testing.T) {
		assertDecimal(t, 0, ExpensesForMonth(transactions, march(1), transaction.Health))
	})

	t.Run("should compare dates in the reference location", func(t *testing.T) {
		kolkata := time.FixedZone("IST", 5*3600+1800)
		// 20:00 UTC on 31 March is already 1 April in Kolkata
		late := []transaction.Transaction{tx("9", transaction.Expense, 400, transaction.Groceries, time.Date(2025, time.March, 31, 20, 0, 0, 0, time.UTC))}

		assertDecimal(t, 0, ExpensesForMonth(late, time.Date(2025, time.March, 10, 0, 0, 0, 0, kolkata), transaction.Groceries))
		assertDecimal(t, 400, ExpensesForMonth(late, time.Date(2025, time.April, 10, 0, 0, 0, 0, kolkata), transaction.Groceries))
	})
}

func TestFilterByDateRange(t *testing.T) {
	transactions := sampleTransactions()

	t.Run("should include the whole end day", func(t *testing.T) {
		filtered := FilterByDateRange(transactions, DateRange{
			Start: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		})

		require.Len(t, filtered, 2)
		assert.Equal(t, "2", filtered[0].ID)
		assert.Equal(t, "3", filtered[1].ID)
	})

	t.Run("should return everything when a bound is missing", func(t *testing.T) {
		assert.Len(t, FilterByDateRange(transactions, DateRange{Start: march(2)}), 4)
		assert.Len(t, FilterByDateRange(transactions, DateRange{}), 4)
	})

	t.Run("should return nothing for an empty window", func(t *testing.T) {
		filtered := FilterByDateRange(transactions, DateRange{
			Start: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
		})
		assert.Empty(t, filtered)
	})
}

func TestGroupByMonth(t *testing.T) {
	// given
	transactions := []transaction.Transaction{
		tx("1", transaction.Expense, 100, transaction.Rent, march(2)),
		tx("2", transaction.Expense, 50, transaction.Groceries, time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)),
		tx("3", transaction.Income, 999, transaction.Salary, time.Date(2024, time.December, 3, 0, 0, 0, 0, time.UTC)),
		tx("4", transaction.Expense, 25, transaction.Groceries, march(9)),
		tx("5", transaction.Expense, 10, transaction.Health, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)),
	}

	// when
	months := GroupByMonth(transactions, time.UTC)
	sorted := SortMonthsChronologically(months)

	// then
	require.Len(t, months, 3)
	assert.Equal(t, "Mar 25", months[0].Label)
	assertDecimal(t, 125, months[0].Total)

	labels := make([]string, 0, len(sorted))
	for _, m := range sorted {
		labels = append(labels, m.Label)
	}
	assert.Equal(t, []string{"Dec 24", "Jan 25", "Mar 25"}, labels)
	assert.Equal(t, "Mar 25", months[0].Label, "sorting must not reorder the input")
}

func TestGroupByCategory(t *testing.T) {
	transactions := append(sampleTransactions(),
		tx("5", transaction.Expense, 0, transaction.Category("Pets"), march(6)),
	)

	groups := GroupByCategory(transactions)

	require.Len(t, groups, 3)
	assert.Equal(t, transaction.Rent, groups[0].Category)
	assert.Equal(t, "83.33", groups[0].Share.StringFixed(2))
	assert.Equal(t, transaction.Groceries, groups[1].Category)
	assert.Equal(t, "16.67", groups[1].Share.StringFixed(2))
	assert.Equal(t, transaction.Other, groups[2].Category)
	assertDecimal(t, 0, groups[2].Total)
}

func TestGroupByCategory_NoExpenses(t *testing.T) {
	groups := GroupByCategory([]transaction.Transaction{tx("1", transaction.Income, 10, transaction.Salary, march(1))})

	assert.Empty(t, groups)
}

func TestTodaysExpenses(t *testing.T) {
	now := time.Date(2025, time.March, 5, 18, 0, 0, 0, time.UTC)

	today := TodaysExpenses(sampleTransactions(), now)

	require.Len(t, today, 1)
	assert.Equal(t, "3", today[0].ID)
}

func TestLifetimeStats(t *testing.T) {
	lifetime := LifetimeStats(sampleTransactions())

	assertDecimal(t, 55000, lifetime.TotalIncome)
	assertDecimal(t, 18000, lifetime.TotalExpenses)
	assertDecimal(t, 37000, lifetime.TotalSavings)
}

func TestBudgetProgress(t *testing.T) {
	transactions := append(sampleTransactions(), tx("5", transaction.Expense, 8000, transaction.Groceries, march(7)))

	progress := BudgetProgress(sampleBudgets(), transactions, march(15))

	require.Len(t, progress, 2)
	assert.Equal(t, transaction.Groceries, progress[0].Budget.Category)
	assertDecimal(t, 11000, progress[0].Spent)
	assert.Equal(t, budget.LevelOver, progress[0].Level)
	assert.Equal(t, transaction.Utilities, progress[1].Budget.Category)
	assert.Equal(t, budget.LevelOk, progress[1].Level)
}

func TestBuildDashboard(t *testing.T) {
	// given
	now := time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)
	transactions := append(sampleTransactions(),
		tx("5", transaction.Expense, 600, transaction.Health, time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC)),
	)

	t.Run("should use all transactions without a range", func(t *testing.T) {
		dashboard := BuildDashboard(transactions, sampleBudgets(), DateRange{}, now)

		assertDecimal(t, 18600, dashboard.Summary.TotalExpenses)
		require.Len(t, dashboard.Monthly, 2)
		assert.Equal(t, "Feb 25", dashboard.Monthly[0].Label)
		assert.Equal(t, "Mar 25", dashboard.Monthly[1].Label)
		assert.Len(t, dashboard.ByCategory, 3)
		require.Len(t, dashboard.Today, 1)
		assert.Equal(t, "3", dashboard.Today[0].ID)
	})

	t.Run("should restrict every figure to the range", func(t *testing.T) {
		r := DateRange{
			Start: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
		}

		dashboard := BuildDashboard(transactions, sampleBudgets(), r, now)

		assertDecimal(t, 50000, dashboard.Summary.TotalIncome)
		assertDecimal(t, 15000, dashboard.Summary.TotalExpenses)
		assertDecimal(t, 15000, dashboard.Summary.TotalBudget)
		require.Len(t, dashboard.Monthly, 1)
		assert.Empty(t, dashboard.Today)
		assert.Equal(t, r, dashboard.Range)
	})
}
