package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kaisarfc/club-backend/internal/app"
	"github.com/kaisarfc/club-backend/internal/config"
	"github.com/kaisarfc/club-backend/internal/observability"
	"github.com/kaisarfc/club-backend/internal/platform/logging"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	appLogger, logFlush, err := observability.InitBetterStackLogger(cfg, logging.NewJSON(cfg.LogLevel))
	if err != nil {
		panic(err)
	}
	logging.SetDefault(appLogger)

	httpLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	}))

	uptraceShutdown, err := observability.InitUptrace(cfg, appLogger)
	if err != nil {
		appLogger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	pyroscopeStop, err := observability.InitPyroscope(cfg, httpLogger)
	if err != nil {
		appLogger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofServer, err := observability.StartPprofServer(cfg, httpLogger)
	if err != nil {
		appLogger.Error("start pprof server", "error", err)
		os.Exit(1)
	}

	application, err := app.Build(cfg, httpLogger, appLogger)
	if err != nil {
		appLogger.Error("build app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if application.Scheduler != nil {
		go application.Scheduler.Run(ctx)
	}

	go func() {
		appLogger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", "error", err)
	}
	if err := application.Close(shutdownCtx); err != nil {
		appLogger.Error("close app", "error", err)
	}
	if pprofServer != nil {
		_ = observability.StopPprofServer(pprofServer, httpLogger, 5*time.Second)
	}
	if pyroscopeStop != nil {
		if err := pyroscopeStop(); err != nil {
			appLogger.Error("stop pyroscope", "error", err)
		}
	}
	if err := uptraceShutdown(shutdownCtx); err != nil {
		appLogger.Error("shutdown uptrace", "error", err)
	}
	appLogger.Info("http server stopped")

	if logFlush != nil {
		_ = logFlush(shutdownCtx)
	}
	_ = appLogger.Sync()
}

func slogLevel(level logging.Level) slog.Level {
	switch {
	case level <= logging.LevelDebug:
		return slog.LevelDebug
	case level == logging.LevelWarn:
		return slog.LevelWarn
	case level >= logging.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
