package main

import (
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/tradejournal-backend/internal/adapter/grpc"
	"github.com/simaogato/tradejournal-backend/internal/adapter/httpstore"
	"github.com/simaogato/tradejournal-backend/internal/config"
	"github.com/simaogato/tradejournal-backend/internal/logger"
	"github.com/simaogato/tradejournal-backend/internal/scheduler"
	"github.com/simaogato/tradejournal-backend/internal/usecase/dashboard"
	"github.com/simaogato/tradejournal-backend/internal/usecase/journal"
)

func main() {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logr := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	// 2. Persistence collaborator (HTTP record service)
	recordStore := httpstore.NewClient(cfg.RecordStoreURL, cfg.RecordStoreTimeout, logr)

	// 3. Use cases
	sessions := journal.NewSessions(recordStore, logr.With().Str("component", "journal").Logger())
	dashboardService := dashboard.NewDashboardService(sessions)

	// 4. Background reconciliation of cached stores
	sched := scheduler.New(logr)
	if cfg.RefreshSchedule != "" {
		job := scheduler.NewRefreshJob(sessions, cfg.RecordStoreTimeout, logr)
		if err := sched.AddJob(cfg.RefreshSchedule, job); err != nil {
			logr.Fatal().Err(err).Msg("Failed to register refresh job")
		}
	}
	sched.Start()

	// 5. gRPC server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logr.With().Str("component", "grpc").Logger()),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)
	grpcadapter.RegisterJournalServiceServer(grpcServer, grpcadapter.NewServer(sessions, dashboardService))
	reflection.Register(grpcServer)

	addr := ":" + strconv.Itoa(cfg.GRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logr.Fatal().Err(err).Str("addr", addr).Msg("Failed to listen")
	}

	go func() {
		logr.Info().
			Str("addr", addr).
			Str("record_store", cfg.RecordStoreURL).
			Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			logr.Fatal().Err(err).Msg("Failed to serve gRPC server")
		}
	}()

	waitForShutdown(logr, grpcServer, sched)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down
func waitForShutdown(logr zerolog.Logger, grpcServer *grpclib.Server, sched *scheduler.Scheduler) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logr.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	sched.Stop()
	grpcServer.GracefulStop()
	logr.Info().Msg("gRPC server stopped")
}
