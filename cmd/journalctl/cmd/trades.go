package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	grpcadapter "github.com/simaogato/tradejournal-backend/internal/adapter/grpc"
	"github.com/simaogato/tradejournal-backend/internal/adapter/wire"
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "Manage journaled trades",
	Long: `Record, close, list and remove trades in a user's journal.

Examples:
  journalctl -u alice trades list --status open
  journalctl -u alice trades add AAPL --qty 10 --price 150.25 --strategy Breakout
  journalctl -u alice trades add SPY --type option --option put --qty 1 --price 4.2 --strategy Hedge
  journalctl -u alice trades close <trade-id> --price 171.10
  journalctl -u alice trades rm <trade-id>`,
}

var tradesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades",
	Args:  cobra.NoArgs,
	RunE:  runTradesList,
}

var tradesAddCmd = &cobra.Command{
	Use:   "add <symbol>",
	Short: "Record a new open trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradesAdd,
}

var tradesCloseCmd = &cobra.Command{
	Use:   "close <trade-id>",
	Short: "Record the exit of a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradesClose,
}

var tradesRmCmd = &cobra.Command{
	Use:     "rm <trade-id>",
	Aliases: []string{"remove"},
	Short:   "Remove a trade",
	Args:    cobra.ExactArgs(1),
	RunE:    runTradesRm,
}

var (
	listStatus  string
	listRefresh bool

	addAction     string
	addType       string
	addOptionType string
	addQuantity   string
	addPrice      string
	addStrategy   string
	addNotes      string
	addDate       string

	closePrice string
	closeDate  string
)

func init() {
	rootCmd.AddCommand(tradesCmd)
	tradesCmd.AddCommand(tradesListCmd, tradesAddCmd, tradesCloseCmd, tradesRmCmd)

	tradesListCmd.Flags().StringVar(&listStatus, "status", "", "filter by status: open or closed")
	tradesListCmd.Flags().BoolVar(&listRefresh, "refresh", false, "reload the journal from the record store first")

	f := tradesAddCmd.Flags()
	f.StringVar(&addAction, "action", "buy", "buy or sell")
	f.StringVar(&addType, "type", "stock", "stock or option")
	f.StringVar(&addOptionType, "option", "", "call or put, required for options")
	f.StringVar(&addQuantity, "qty", "", "quantity")
	f.StringVar(&addPrice, "price", "", "entry price")
	f.StringVar(&addStrategy, "strategy", "", "strategy label")
	f.StringVar(&addNotes, "notes", "", "free-form notes")
	f.StringVar(&addDate, "date", "", "entry date YYYY-MM-DD (default today)")

	tradesCloseCmd.Flags().StringVar(&closePrice, "price", "", "exit price")
	tradesCloseCmd.Flags().StringVar(&closeDate, "date", "", "exit date YYYY-MM-DD (default today)")
}

func runTradesList(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	return withClient(func(ctx context.Context, client *grpcadapter.JournalClient) error {
		resp, err := client.ListTrades(ctx, &grpcadapter.ListTradesRequest{
			UserID:  userID,
			Status:  listStatus,
			Refresh: listRefresh,
		})
		if err != nil {
			return fmt.Errorf("list trades: %w", err)
		}
		return printTrades(cmd.OutOrStdout(), resp.Trades)
	})
}

func runTradesAdd(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	qty, err := parseDecimal("qty", addQuantity)
	if err != nil {
		return err
	}
	price, err := parseDecimal("price", addPrice)
	if err != nil {
		return err
	}
	date, err := parseDate(addDate)
	if err != nil {
		return err
	}

	return withClient(func(ctx context.Context, client *grpcadapter.JournalClient) error {
		resp, err := client.CreateTrade(ctx, &grpcadapter.CreateTradeRequest{
			UserID:     userID,
			Date:       date,
			Symbol:     args[0],
			Action:     addAction,
			Quantity:   qty,
			Price:      price,
			Type:       addType,
			OptionType: addOptionType,
			Strategy:   addStrategy,
			Notes:      addNotes,
		})
		if err != nil {
			return fmt.Errorf("add trade: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s as %s\n", resp.Trade.Action, resp.Trade.Symbol, resp.Trade.ID)
		return nil
	})
}

func runTradesClose(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	price, err := parseDecimal("price", closePrice)
	if err != nil {
		return err
	}
	date, err := parseDate(closeDate)
	if err != nil {
		return err
	}

	return withClient(func(ctx context.Context, client *grpcadapter.JournalClient) error {
		resp, err := client.CloseTrade(ctx, &grpcadapter.CloseTradeRequest{
			UserID:    userID,
			TradeID:   args[0],
			ExitDate:  date,
			ExitPrice: price,
		})
		if err != nil {
			return fmt.Errorf("close trade: %w", err)
		}
		t := resp.Trade
		fmt.Fprintf(cmd.OutOrStdout(), "Closed %s %s: %s (%s)\n",
			t.Symbol, t.ID, formatSignedMoney(*t.Profit, currency), formatPct(*t.ProfitPercentage))
		return nil
	})
}

func runTradesRm(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	return withClient(func(ctx context.Context, client *grpcadapter.JournalClient) error {
		if _, err := client.DeleteTrade(ctx, &grpcadapter.DeleteTradeRequest{UserID: userID, TradeID: args[0]}); err != nil {
			return fmt.Errorf("remove trade: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	})
}

func printTrades(out io.Writer, trades []wire.Trade) error {
	if len(trades) == 0 {
		fmt.Fprintln(out, "No trades")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDate\tSymbol\tAction\tType\tQty\tPrice\tStrategy\tExit\tProfit")
	for _, t := range trades {
		kind := t.Type
		if t.OptionType != "" {
			kind += "/" + t.OptionType
		}
		exit, profit := "-", "-"
		if t.ExitDate != nil {
			exit = t.ExitDate.Format(wire.DateLayout)
			if t.Profit != nil && t.ProfitPercentage != nil {
				profit = fmt.Sprintf("%s (%s)", formatSignedMoney(*t.Profit, currency), formatPct(*t.ProfitPercentage))
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Date.Format(wire.DateLayout),
			t.Symbol,
			t.Action,
			kind,
			t.Quantity.String(),
			formatMoney(t.Price, currency),
			t.Strategy,
			exit,
			profit,
		)
	}
	return w.Flush()
}

func parseDecimal(flag, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Decimal{}, fmt.Errorf("--%s is required", flag)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return d, nil
}

// parseDate reads a YYYY-MM-DD flag value, defaulting to today
func parseDate(value string) (wire.Date, error) {
	if value == "" {
		y, m, d := time.Now().Date()
		return wire.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
	}
	t, err := time.Parse(wire.DateLayout, value)
	if err != nil {
		return wire.Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return wire.Date{Time: t}, nil
}
