package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	grpcadapter "github.com/simaogato/tradejournal-backend/internal/adapter/grpc"
	"github.com/simaogato/tradejournal-backend/internal/adapter/wire"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show trading performance",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsCurve bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsCurve, "curve", false, "also print the cumulative P&L curve")
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	return withClient(func(ctx context.Context, client *grpcadapter.JournalClient) error {
		perf, err := client.GetPerformance(ctx, &grpcadapter.GetPerformanceRequest{UserID: userID})
		if err != nil {
			return fmt.Errorf("get performance: %w", err)
		}
		return printPerformance(cmd.OutOrStdout(), perf, statsCurve)
	})
}

func printPerformance(out io.Writer, p *grpcadapter.GetPerformanceResponse, curve bool) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Trades\t%d (%d open, %d closed)\n", p.TotalTrades, p.OpenTrades, p.ClosedTrades)
	fmt.Fprintf(w, "Wins / losses\t%d / %d\n", p.Wins, p.Losses)
	fmt.Fprintf(w, "Win ratio\t%s\n", formatPct(p.WinRatio.Shift(2)))
	fmt.Fprintf(w, "Total profit\t%s\n", formatSignedMoney(p.TotalProfit, currency))
	fmt.Fprintf(w, "Average profit\t%s\n", formatSignedMoney(p.AverageProfit, currency))
	fmt.Fprintf(w, "Biggest win\t%s\n", formatSignedMoney(p.BiggestWin, currency))
	fmt.Fprintf(w, "Biggest loss\t%s\n", formatSignedMoney(p.BiggestLoss, currency))
	fmt.Fprintf(w, "Risk / reward\t%s\n", p.RiskRewardRatio.StringFixed(2))
	fmt.Fprintf(w, "Average return\t%s (std dev %s)\n", formatFloatPct(p.AverageReturnPct), formatFloatPct(p.ReturnStdDevPct))
	if err := w.Flush(); err != nil {
		return err
	}

	if !curve || len(p.PnLCurve) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Date\tCumulative P&L")
	for _, pt := range p.PnLCurve {
		fmt.Fprintf(w, "%s\t%s\n", pt.Date.Format(wire.DateLayout), formatSignedMoney(pt.Cumulative, currency))
	}
	return w.Flush()
}
