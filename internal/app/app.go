package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/pennywise/internal/config"
	"github.com/klokku/pennywise/pkg/storage"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg          config.Application
	deps         *Dependencies
	router       *mux.Router
	srv          *http.Server
	closeStorage func()
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	kv, closeStorage, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	deps, err := BuildDependencies(ctx, kv, cfg)
	if err != nil {
		closeStorage()
		return nil, err
	}

	return newApplication(cfg, deps, closeStorage), nil
}

func newApplication(cfg config.Application, deps *Dependencies, closeStorage func()) *Application {
	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:        r,
		Addr:           cfg.Host,
		WriteTimeout:   15 * time.Second,
		ReadTimeout:    15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv, closeStorage: closeStorage}
}

// Run serves HTTP until ctx is cancelled, then shuts the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server stopped gracefully")
	return nil
}

func (a *Application) close() {
	a.deps.Close()
	if a.closeStorage != nil {
		a.closeStorage()
	}
}
