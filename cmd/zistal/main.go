// Entry point for the zistal HTTP service: chi router, JWT sessions,
// per-page token accounting, sqlite business events.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/zistal/zistal/auth"
	"github.com/zistal/zistal/config"
	"github.com/zistal/zistal/convert"
	"github.com/zistal/zistal/dbopen"
	"github.com/zistal/zistal/ledger"
	"github.com/zistal/zistal/observability"
	"github.com/zistal/zistal/server"
	"github.com/zistal/zistal/shield"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	// Logging.
	var lvl slog.Level
	switch cfg.LogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Ledger store.
	var store ledger.Store
	switch cfg.LedgerBackend {
	case "sqlite":
		db, err := dbopen.Open(cfg.LedgerPath, dbopen.WithMkdirAll())
		if err != nil {
			slog.Error("ledger db", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store, err = ledger.NewSQLStore(db)
		if err != nil {
			slog.Error("ledger schema", "error", err)
			os.Exit(1)
		}
	default:
		store = ledger.NewFileStore(cfg.LedgerPath)
	}
	led := ledger.New(store, logger)

	// Business events DB (optional).
	var events *observability.EventLogger
	if cfg.EventsDB != "" {
		eventsDB, err := dbopen.Open(cfg.EventsDB,
			dbopen.WithMkdirAll(), dbopen.WithSchema(observability.Schema))
		if err != nil {
			slog.Error("events db", "error", err)
			os.Exit(1)
		}
		defer eventsDB.Close()
		events = observability.NewEventLogger(eventsDB)
	}

	// Demo authenticator.
	authn, err := auth.NewFixed(cfg.DemoUser, cfg.DemoPass)
	if err != nil {
		slog.Error("authenticator", "error", err)
		os.Exit(1)
	}

	// Conversion pipeline.
	var convOpts []convert.Option
	if events != nil {
		convOpts = append(convOpts, convert.WithEvents(events))
	}
	conv := convert.New(led, logger, convOpts...)

	jwtSecret := cfg.SecretBytes()

	// Router.
	r := chi.NewRouter()
	for _, mw := range shield.DefaultStack(cfg.MaxUploadBytes) {
		r.Use(mw)
	}
	r.Use(auth.Middleware(jwtSecret))

	srv := server.New(server.Config{
		Secret:        jwtSecret,
		Authenticator: authn,
		Ledger:        led,
		Converter:     conv,
		Events:        events,
		Logger:        logger,
	})
	srv.RegisterRoutes(r)

	// HTTP server.
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}
