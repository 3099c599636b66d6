package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// StateChanged carries the post-mutation snapshot of the state store.
	StateChanged        EventType = "state.changed"
	BudgetExceededEvent EventType = "budget.exceeded"
	NotificationPosted  EventType = "notification.posted"
)

// BudgetExceeded is published when a newly added expense pushes its category's monthly total over the limit.
type BudgetExceeded struct {
	TransactionID string
	Category      string
	Year          int
	Month         time.Month
	Limit         decimal.Decimal
	Spent         decimal.Decimal
}
