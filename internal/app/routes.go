package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Transactions
	r.HandleFunc("/api/transactions", deps.TransactionHandler.List).Methods("GET")
	r.HandleFunc("/api/transactions", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transactions/{id}", deps.TransactionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/transactions/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budgets", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budgets", deps.BudgetHandler.ReplaceAll).Methods("PUT")
	r.HandleFunc("/api/budgets/progress", deps.StatsHandler.GetBudgetProgress).Methods("GET")

	// User profile
	r.HandleFunc("/api/user", deps.UserHandler.GetCurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.UpdateUser).Methods("PUT")

	// Currency
	r.HandleFunc("/api/currencies", deps.CurrencyHandler.ListCatalog).Methods("GET")
	r.HandleFunc("/api/currency", deps.CurrencyHandler.GetActive).Methods("GET")
	r.HandleFunc("/api/currency", deps.CurrencyHandler.SetActive).Methods("PUT")

	// Stats
	r.HandleFunc("/api/stats/dashboard", deps.StatsHandler.GetDashboard).Methods("GET")
	r.HandleFunc("/api/stats/expenses", deps.StatsHandler.GetMonthlyExpenses).Methods("GET")

	// Notifications
	r.HandleFunc("/api/notifications", deps.NotificationHandler.List).Methods("GET")
	r.HandleFunc("/api/notifications", deps.NotificationHandler.Clear).Methods("DELETE")
}
