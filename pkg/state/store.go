package state

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/pennywise/internal/event_bus"
	"github.com/klokku/pennywise/internal/utils"
	"github.com/klokku/pennywise/pkg/budget"
	"github.com/klokku/pennywise/pkg/currency"
	"github.com/klokku/pennywise/pkg/notification"
	"github.com/klokku/pennywise/pkg/stats"
	"github.com/klokku/pennywise/pkg/storage"
	"github.com/klokku/pennywise/pkg/transaction"
	"github.com/klokku/pennywise/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Snapshot is a consistent copy of the whole state.
type Snapshot struct {
	Transactions []transaction.Transaction
	Budgets      []budget.Budget
	User         user.User
	Currency     currency.Currency
}

type Options struct {
	// Seed is used per key when nothing valid is stored. Defaults to DefaultDataset.
	Seed     *Snapshot
	Notifier notification.Notifier
	EventBus *event_bus.EventBus
	Clock    utils.Clock
	NewID    func() string
}

type message struct {
	saved   string
	unsaved string
}

var (
	msgAdded    = message{"Transaction added successfully!", "Transaction added, but it could not be saved."}
	msgUpdated  = message{"Transaction updated successfully!", "Transaction updated, but it could not be saved."}
	msgDeleted  = message{"Transaction deleted.", "Transaction deleted, but the change could not be saved."}
	msgBudgets  = message{"Budgets updated!", "Budgets updated, but they could not be saved."}
	msgProfile  = message{"Profile updated!", "Profile updated, but it could not be saved."}
	msgCurrency = message{"Currency changed to %s.", "Currency changed to %s, but it could not be saved."}
)

// Store is the single owner of transactions, budgets, the user profile and the active currency.
// Every mutation is applied and persisted under one lock; notices and events go out after it is released.
type Store struct {
	mu           sync.Mutex
	kv           storage.Store
	transactions []transaction.Transaction
	budgets      []budget.Budget
	user         user.User
	currency     currency.Currency

	notifier notification.Notifier
	eventBus *event_bus.EventBus
	clock    utils.Clock
	newID    func() string
}

// Load reads every key from kv, falling back to the seed for keys that are missing or unreadable.
// Fallen-back keys are written back so the next start reads them from storage. A stored value that
// parses is never replaced: entries that cannot be used are skipped in memory and the record is left as is.
func Load(ctx context.Context, kv storage.Store, opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = utils.SystemClock{}
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Notifier == nil {
		opts.Notifier = discardNotifier{}
	}
	seed := opts.Seed
	if seed == nil {
		defaults := DefaultDataset(opts.Clock.Now())
		seed = &defaults
	}

	s := &Store{
		kv:       kv,
		notifier: opts.Notifier,
		eventBus: opts.EventBus,
		clock:    opts.Clock,
		newID:    opts.NewID,
	}

	raw, found := storage.Load[[]json.RawMessage](ctx, kv, storage.KeyTransactions, nil)
	if found {
		s.transactions = decodeTransactions(raw)
	} else {
		s.transactions = seed.Transactions
	}
	s.writeBack(ctx, found, storage.KeyTransactions, s.transactions)

	s.budgets, found = storage.Load(ctx, kv, storage.KeyBudgets, seed.Budgets)
	if found {
		s.budgets = uniqueBudgets(s.budgets)
	}
	s.writeBack(ctx, found, storage.KeyBudgets, s.budgets)

	s.user, found = storage.Load(ctx, kv, storage.KeyUser, seed.User)
	s.writeBack(ctx, found, storage.KeyUser, s.user)

	s.currency, found = storage.Load(ctx, kv, storage.KeyCurrency, seed.Currency)
	if found && s.currency.Validate() != nil {
		log.Warnf("stored currency %q is not in the catalog, using %s until it is changed", s.currency.Name, seed.Currency.Name)
		s.currency = seed.Currency
	}
	s.writeBack(ctx, found, storage.KeyCurrency, s.currency)

	s.transactions = slices.Clone(s.transactions)
	if s.transactions == nil {
		s.transactions = []transaction.Transaction{}
	}
	s.budgets = slices.Clone(s.budgets)
	if s.budgets == nil {
		s.budgets = []budget.Budget{}
	}
	log.Infof("State loaded: %d transactions, %d budgets", len(s.transactions), len(s.budgets))
	return s
}

// AddTransaction stores a new transaction in front of the collection. When it is an expense that pushes
// its category over budget for that month, a warning is emitted and a BudgetExceeded event is published.
func (s *Store) AddTransaction(ctx context.Context, in transaction.Input) (transaction.Transaction, error) {
	if err := in.Validate(); err != nil {
		return transaction.Transaction{}, err
	}

	s.mu.Lock()
	t := in.WithID(s.newID())
	s.transactions = append([]transaction.Transaction{t}, s.transactions...)
	saveErr := s.persist(ctx, storage.KeyTransactions, s.transactions)
	exceeded := s.checkOverage(t)
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.announce(ctx, saveErr, msgAdded.saved, msgAdded.unsaved)
	if exceeded != nil {
		s.notifier.Notify(ctx, notification.Warning, fmt.Sprintf("You've exceeded your budget for %s!", t.Category))
		s.publish(ctx, event_bus.BudgetExceededEvent, *exceeded)
	}
	s.publish(ctx, event_bus.StateChanged, snapshot)
	return t, nil
}

// UpdateTransaction replaces the transaction with the same id in place. An unknown id changes nothing
// and returns false.
func (s *Store) UpdateTransaction(ctx context.Context, t transaction.Transaction) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	i := s.indexOf(t.ID)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.transactions = slices.Clone(s.transactions)
	s.transactions[i] = t
	saveErr := s.persist(ctx, storage.KeyTransactions, s.transactions)
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.announce(ctx, saveErr, msgUpdated.saved, msgUpdated.unsaved)
	s.publish(ctx, event_bus.StateChanged, snapshot)
	return true, nil
}

// DeleteTransaction removes the transaction with the id. Deleting an unknown id is a no-op returning false.
func (s *Store) DeleteTransaction(ctx context.Context, id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.transactions = slices.Delete(slices.Clone(s.transactions), i, i+1)
	saveErr := s.persist(ctx, storage.KeyTransactions, s.transactions)
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.announce(ctx, saveErr, msgDeleted.saved, msgDeleted.unsaved)
	s.publish(ctx, event_bus.StateChanged, snapshot)
	return true
}

// UpdateBudgets replaces the whole budget list; categories left out are dropped.
func (s *Store) UpdateBudgets(ctx context.Context, budgets []budget.Budget) error {
	if err := budget.ValidateAll(budgets); err != nil {
		return err
	}

	s.mu.Lock()
	s.budgets = slices.Clone(budgets)
	if s.budgets == nil {
		s.budgets = []budget.Budget{}
	}
	saveErr := s.persist(ctx, storage.KeyBudgets, s.budgets)
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.announce(ctx, saveErr, msgBudgets.saved, msgBudgets.unsaved)
	s.publish(ctx, event_bus.StateChanged, snapshot)
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, u user.User) {
	s.mu.Lock()
	s.user = u
	saveErr := s.persist(ctx, storage.KeyUser, s.user)
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.announce(ctx, saveErr, msgProfile.saved, msgProfile.unsaved)
	s.publish(ctx, event_bus.StateChanged, snapshot)
}

// SetCurrency switches the display currency. Stored amounts are not converted.
func (s *Store) SetCurrency(ctx context.Context, c currency.Currency) error {
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.currency = c
	saveErr := s.persist(ctx, storage.KeyCurrency, s.currency)
	snapshot := s.snapshot()
	s.mu.Unlock()

	s.announce(ctx, saveErr, fmt.Sprintf(msgCurrency.saved, c.Name), fmt.Sprintf(msgCurrency.unsaved, c.Name))
	s.publish(ctx, event_bus.StateChanged, snapshot)
	return nil
}

// GetExpensesForMonth sums the category's expenses in ref's calendar month.
func (s *Store) GetExpensesForMonth(ref time.Time, category transaction.Category) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.ExpensesForMonth(s.transactions, ref, category)
}

// Transactions returns the collection, most recently added first.
func (s *Store) Transactions() []transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transactions)
}

func (s *Store) Budgets() []budget.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.budgets)
}

func (s *Store) User() user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) Currency() currency.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// snapshot must be called with mu held.
func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Transactions: slices.Clone(s.transactions),
		Budgets:      slices.Clone(s.budgets),
		User:         s.user,
		Currency:     s.currency,
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.transactions, func(t transaction.Transaction) bool { return t.ID == id })
}

// checkOverage must be called with mu held, after t has been added.
func (s *Store) checkOverage(t transaction.Transaction) *event_bus.BudgetExceeded {
	if !t.IsExpense() {
		return nil
	}
	b, ok := budget.Find(s.budgets, t.Category)
	if !ok {
		return nil
	}
	ref := t.Date.In(s.clock.Location())
	spent := stats.ExpensesForMonth(s.transactions, ref, t.Category)
	if !spent.GreaterThan(b.Limit) {
		return nil
	}
	return &event_bus.BudgetExceeded{
		TransactionID: t.ID,
		Category:      string(t.Category),
		Year:          ref.Year(),
		Month:         ref.Month(),
		Limit:         b.Limit,
		Spent:         spent,
	}
}

func (s *Store) persist(ctx context.Context, key string, value any) error {
	if err := storage.Save(ctx, s.kv, key, value); err != nil {
		log.Errorf("failed to persist %s, keeping change in memory: %v", key, err)
		return err
	}
	return nil
}

func (s *Store) writeBack(ctx context.Context, found bool, key string, value any) {
	if found {
		return
	}
	if err := storage.Save(ctx, s.kv, key, value); err != nil {
		log.Warnf("failed to store default %s: %v", key, err)
	}
}

func (s *Store) announce(ctx context.Context, saveErr error, saved, unsaved string) {
	if saveErr != nil {
		s.notifier.Notify(ctx, notification.Warning, unsaved)
		return
	}
	s.notifier.Notify(ctx, notification.Success, saved)
}

func (s *Store) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}

// decodeTransactions keeps every stored entry that decodes and has an id and a date. Values outside the
// known types or categories are kept; aggregation buckets unknown categories under Other.
func decodeTransactions(raw []json.RawMessage) []transaction.Transaction {
	transactions := make([]transaction.Transaction, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		var t transaction.Transaction
		if err := json.Unmarshal(r, &t); err != nil {
			log.Warnf("skipping stored transaction #%d: %v", i, err)
			continue
		}
		switch {
		case t.ID == "":
			log.Warnf("skipping stored transaction #%d: missing id", i)
			continue
		case seen[t.ID]:
			log.Warnf("skipping stored transaction #%d: duplicate id %q", i, t.ID)
			continue
		case t.Date.IsZero():
			log.Warnf("skipping stored transaction %q: missing date", t.ID)
			continue
		}
		seen[t.ID] = true
		transactions = append(transactions, t)
	}
	return transactions
}

// uniqueBudgets keeps the first budget stored for each category.
func uniqueBudgets(budgets []budget.Budget) []budget.Budget {
	result := make([]budget.Budget, 0, len(budgets))
	seen := make(map[transaction.Category]bool, len(budgets))
	for _, b := range budgets {
		if seen[b.Category] {
			log.Warnf("skipping duplicate stored budget for %s", b.Category)
			continue
		}
		seen[b.Category] = true
		result = append(result, b)
	}
	return result
}

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, notification.Severity, string) {}
