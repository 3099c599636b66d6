package state

import (
	"time"

	"github.com/klokku/pennywise/pkg/budget"
	"github.com/klokku/pennywise/pkg/currency"
	"github.com/klokku/pennywise/pkg/transaction"
	"github.com/klokku/pennywise/pkg/user"
	"github.com/shopspring/decimal"
)

// DefaultDataset is the state a fresh install starts with. Transactions are dated in now's month.
func DefaultDataset(now time.Time) Snapshot {
	day := func(d int) time.Time {
		return time.Date(now.Year(), now.Month(), d, 0, 0, 0, 0, now.Location())
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	amount := decimal.NewFromInt

	return Snapshot{
		Transactions: []transaction.Transaction{
			{ID: "1", Type: transaction.Income, Amount: amount(50000), Category: transaction.Salary, Date: day(1), Description: "Monthly Salary"},
			{ID: "2", Type: transaction.Expense, Amount: amount(15000), Category: transaction.Rent, Date: day(2), Description: "Apartment Rent"},
			{ID: "3", Type: transaction.Expense, Amount: amount(3000), Category: transaction.Groceries, Date: day(5), Description: "Weekly Groceries"},
			{ID: "4", Type: transaction.Expense, Amount: amount(2000), Category: transaction.Utilities, Date: today, Description: "Electricity Bill"},
			{ID: "5", Type: transaction.Income, Amount: amount(5000), Category: transaction.Freelance, Date: day(10), Description: "Design Project"},
			{ID: "6", Type: transaction.Expense, Amount: amount(1500), Category: transaction.Entertainment, Date: today, Description: "Movie Tickets"},
		},
		Budgets: []budget.Budget{
			{Category: transaction.Groceries, Limit: amount(10000)},
			{Category: transaction.Utilities, Limit: amount(5000)},
			{Category: transaction.Transport, Limit: amount(3000)},
			{Category: transaction.Entertainment, Limit: amount(4000)},
			{Category: transaction.Shopping, Limit: amount(8000)},
			{Category: transaction.Health, Limit: amount(5000)},
		},
		User:     user.User{Name: "Alex Doe", Email: "alex.doe@example.com"},
		Currency: currency.Default,
	}
}
