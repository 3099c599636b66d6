package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Keys under which the tracker state is persisted.
const (
	KeyTransactions = "transactions"
	KeyBudgets      = "budgets"
	KeyUser         = "user"
	KeyCurrency     = "currency"
)

var ErrNotFound = errors.New("key not found")

// Store is a string-keyed store of JSON documents.
type Store interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Load decodes the value under key. A missing, unreadable or corrupt value yields fallback;
// the second result reports whether the stored value was used.
func Load[T any](ctx context.Context, store Store, key string, fallback T) (T, bool) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warnf("failed to read %q from storage, using default: %v", key, err)
		}
		return fallback, false
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warnf("stored %q is corrupt, using default: %v", key, err)
		return fallback, false
	}
	return value, true
}

// Save encodes value as JSON under key.
func Save[T any](ctx context.Context, store Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
