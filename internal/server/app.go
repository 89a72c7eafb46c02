// Package server assembles and runs the development backend: store
// selection, QR token issuer, HTTP router, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nexabag/deltamobile/internal/logging"
	"github.com/nexabag/deltamobile/internal/server/config"
	"github.com/nexabag/deltamobile/internal/server/httpapi"
	"github.com/nexabag/deltamobile/internal/server/qrtoken"
	"github.com/nexabag/deltamobile/internal/server/store"
)

type App struct {
	config config.Config
	logger logging.Logger
	store  store.Store
	server *http.Server
}

// NewApp selects the storage backend from configuration and wires the HTTP
// surface on top of it. An empty DSN means the seeded in-memory store.
func NewApp(c config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel)

	var st store.Store
	var err error
	if c.DatabaseDSN != "" {
		st, err = store.NewPostgresStore(context.Background(), c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	} else {
		st, err = store.NewMemoryStore()
		if err != nil {
			return nil, fmt.Errorf("store init error: %w", err)
		}
	}

	qr := qrtoken.NewIssuer([]byte(c.QRSigningKey), c.QRTokenTTL)
	router := httpapi.NewRouter(st, qr, c.PublishedVersion, logger)

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{config: c, logger: logger, store: st, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until the context is cancelled or a termination signal arrives,
// then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.initSignalHandler(cancel)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "devserver listening", "addr", app.config.Addr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	app.store.Close()
	app.logger.Info(context.Background(), "devserver stopped")
	return nil
}
