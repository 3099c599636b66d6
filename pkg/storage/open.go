package storage

import (
	"context"
	"fmt"

	"github.com/klokku/pennywise/internal/config"
	"github.com/klokku/pennywise/internal/database"
	log "github.com/sirupsen/logrus"
)

// Open builds the configured backend, running migrations for the database ones.
// The returned close function releases any underlying connection.
func Open(ctx context.Context, cfg config.Storage) (Store, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case config.BackendMemory:
		log.Warn("Using in-memory storage, data will be lost on exit")
		return NewMemoryStore(), noop, nil
	case config.BackendFile:
		store, err := NewFileStore(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		log.Infof("Using file storage in %s", cfg.Dir)
		return store, noop, nil
	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, noop, err
		}
		if err := database.MigrateSQLite(db); err != nil {
			db.Close()
			return nil, noop, err
		}
		log.Infof("Using sqlite storage at %s", cfg.SQLite.Path)
		return NewSQLiteStore(db), func() { db.Close() }, nil
	case config.BackendPostgres:
		if err := database.MigratePostgres(ctx, cfg.DB); err != nil {
			return nil, noop, err
		}
		pool, err := database.OpenPostgres(ctx, cfg.DB)
		if err != nil {
			return nil, noop, err
		}
		log.Infof("Using postgres storage at %s:%d/%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
		return NewPostgresStore(pool), pool.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
