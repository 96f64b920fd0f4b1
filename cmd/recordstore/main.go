package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/simaogato/tradejournal-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/tradejournal-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/tradejournal-backend/internal/adapter/rest"
	"github.com/simaogato/tradejournal-backend/internal/config"
	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logr := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	repo, closer, err := openRepository(cfg, logr)
	if err != nil {
		logr.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open trade repository")
	}
	defer closer.Close()

	srv := rest.New(rest.Config{
		Port:    cfg.HTTPPort,
		Log:     logr,
		Repo:    repo,
		DevMode: cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal().Err(err).Msg("Record service failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan
	logr.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error().Err(err).Msg("Record service shutdown failed")
	}
}

// openRepository connects the configured store driver
func openRepository(cfg *config.Config, logr zerolog.Logger) (domain.TradeRepository, io.Closer, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(cfg.DBConnStr)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logr.Info().Msg("Using PostgreSQL trade repository")
		return postgres.NewTradeRepository(db), db, nil

	default:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logr.Info().Str("path", cfg.SQLitePath).Msg("Using SQLite trade repository")
		return sqlite.NewTradeRepository(db), db, nil
	}
}
