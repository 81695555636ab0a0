package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/helios/internal/config"
	"github.com/MrJamesThe3rd/helios/internal/export"
	"github.com/MrJamesThe3rd/helios/internal/facade"
	heliosHttp "github.com/MrJamesThe3rd/helios/internal/http"
	authHandler "github.com/MrJamesThe3rd/helios/internal/http/auth"
	chatHandler "github.com/MrJamesThe3rd/helios/internal/http/chat"
	dashboardHandler "github.com/MrJamesThe3rd/helios/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/helios/internal/http/export"
	fraudHandler "github.com/MrJamesThe3rd/helios/internal/http/fraud"
	importHandler "github.com/MrJamesThe3rd/helios/internal/http/importcsv"
	insightsHandler "github.com/MrJamesThe3rd/helios/internal/http/insights"
	matchingHandler "github.com/MrJamesThe3rd/helios/internal/http/matching"
	settingsHandler "github.com/MrJamesThe3rd/helios/internal/http/settings"
	txHandler "github.com/MrJamesThe3rd/helios/internal/http/transaction"
	"github.com/MrJamesThe3rd/helios/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	opts := []facade.Option{
		facade.WithLatency(cfg.Facade.LatencyMin, cfg.Facade.LatencyMax),
		facade.WithSessionSecret([]byte(cfg.Facade.SessionSecret)),
		facade.WithSessionTTL(cfg.Facade.SessionTTL),
	}
	if backend.Rules != nil {
		opts = append(opts, facade.WithCategoryRules(backend.Rules))
	}

	f, err := facade.New(ctx, backend.State, opts...)
	if err != nil {
		slog.Error("failed to build facade", "error", err)
		os.Exit(1)
	}

	router := heliosHttp.New(cfg.CORS.AllowedOrigins, heliosHttp.Handlers{
		Auth:         authHandler.NewHandler(f.Auth),
		Dashboard:    dashboardHandler.NewHandler(f.Dashboard),
		Insights:     insightsHandler.NewHandler(f.Insights, f.FinancialInsights),
		Chat:         chatHandler.NewHandler(f.Chat),
		Transactions: txHandler.NewHandler(f.Dashboard),
		Documents:    importHandler.NewHandler(f.Documents, f.Expense),
		Categories:   matchingHandler.NewHandler(f.Categories),
		Export:       exportHandler.NewHandler(export.NewService(f.Dashboard)),
		Settings:     settingsHandler.NewHandler(f.Settings),
		Fraud:        fraudHandler.NewHandler(f.Fraud),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "storage", cfg.Storage.Driver)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

