package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	grpcadapter "github.com/simaogato/tradejournal-backend/internal/adapter/grpc"
)

var rootCmd = &cobra.Command{
	Use:   "journalctl",
	Short: "Trade journal and dividend projection client",
	Long: `journalctl talks to the trade journal gRPC server.

It provides tools for:
  - Projecting a dividend investment plan from a YAML file
  - Recording, closing and removing journaled trades
  - Summarizing trading performance

Server, token and user default to the JOURNAL_ADDR, API_TOKEN and
JOURNAL_USER environment variables.`,
	SilenceUsage: true,
}

var (
	serverAddr string
	apiToken   string
	userID     string
	currency   string
	timeout    time.Duration
)

// Execute adds all child commands to the root command and runs it
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&serverAddr, "addr", envOr("JOURNAL_ADDR", "localhost:8080"), "journal gRPC server address")
	flags.StringVar(&apiToken, "token", envOr("API_TOKEN", "dev-token"), "API token")
	flags.StringVarP(&userID, "user", "u", os.Getenv("JOURNAL_USER"), "user whose journal is used")
	flags.StringVar(&currency, "currency", "USD", "ISO currency code used to display amounts")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireUser() error {
	if userID == "" {
		return fmt.Errorf("--user (or JOURNAL_USER) is required")
	}
	return nil
}

// withClient dials the journal server and runs fn with a request-scoped context
func withClient(fn func(ctx context.Context, client *grpcadapter.JournalClient) error) error {
	opts := append(grpcadapter.DialOptions(apiToken), grpc.WithTransportCredentials(insecure.NewCredentials()))
	conn, err := grpc.NewClient(serverAddr, opts...)
	if err != nil {
		return fmt.Errorf("connect %s: %w", serverAddr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return fn(ctx, grpcadapter.NewJournalClient(conn))
}
