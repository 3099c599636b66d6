package app

import (
	"context"
	"fmt"

	"github.com/klokku/pennywise/internal/config"
	"github.com/klokku/pennywise/internal/event_bus"
	"github.com/klokku/pennywise/internal/utils"
	"github.com/klokku/pennywise/pkg/budget"
	"github.com/klokku/pennywise/pkg/currency"
	"github.com/klokku/pennywise/pkg/notification"
	"github.com/klokku/pennywise/pkg/state"
	"github.com/klokku/pennywise/pkg/stats"
	"github.com/klokku/pennywise/pkg/storage"
	"github.com/klokku/pennywise/pkg/transaction"
	"github.com/klokku/pennywise/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus
	Storage  storage.Store
	Feed     *notification.Feed
	Store    *state.Store

	TransactionHandler  *transaction.Handler
	BudgetHandler       *budget.BudgetHandler
	UserHandler         *user.Handler
	CurrencyHandler     *currency.Handler
	StatsHandler        *stats.StatsHandler
	NotificationHandler *notification.Handler

	unsubscribe []func()
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, kv storage.Store, cfg config.Application) (*Dependencies, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	locale := currency.ParseLocale(cfg.Locale)

	deps := &Dependencies{}
	deps.Clock = utils.SystemClock{Loc: loc}
	deps.EventBus = event_bus.NewEventBus()
	deps.Storage = kv
	deps.Feed = notification.NewFeed(cfg.Notifications.History, deps.EventBus, deps.Clock)

	deps.Store = state.Load(ctx, kv, state.Options{
		Notifier: deps.Feed,
		EventBus: deps.EventBus,
		Clock:    deps.Clock,
	})

	deps.TransactionHandler = transaction.NewHandler(deps.Store, deps.Clock)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.Store)
	deps.UserHandler = user.NewHandler(deps.Store, deps.Feed)
	deps.CurrencyHandler = currency.NewHandler(deps.Store, locale)
	deps.StatsHandler = stats.NewStatsHandler(deps.Store, stats.NewCsvDashboardRenderer(), deps.Clock, locale)
	deps.NotificationHandler = notification.NewHandler(deps.Feed)

	deps.unsubscribe = append(deps.unsubscribe,
		event_bus.SubscribeTyped(deps.EventBus, event_bus.BudgetExceededEvent, func(e event_bus.EventT[event_bus.BudgetExceeded]) error {
			log.Infof("Budget for %s exceeded in %s %d: spent %s of %s",
				e.Data.Category, e.Data.Month, e.Data.Year, e.Data.Spent, e.Data.Limit)
			return nil
		}),
		event_bus.SubscribeTyped(deps.EventBus, event_bus.StateChanged, func(e event_bus.EventT[state.Snapshot]) error {
			log.Debugf("State changed: %d transactions, %d budgets", len(e.Data.Transactions), len(e.Data.Budgets))
			return nil
		}),
	)

	return deps, nil
}

// Close releases event subscriptions.
func (d *Dependencies) Close() {
	for _, unsubscribe := range d.unsubscribe {
		unsubscribe()
	}
	d.unsubscribe = nil
}
