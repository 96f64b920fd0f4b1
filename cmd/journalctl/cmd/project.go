package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	grpcadapter "github.com/simaogato/tradejournal-backend/internal/adapter/grpc"
	"github.com/simaogato/tradejournal-backend/internal/domain"
	"github.com/simaogato/tradejournal-backend/internal/usecase/investment"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a dividend investment plan year by year",
	Long: `Project simulates a buy-and-hold dividend position described by a YAML plan.

Recurring contributions buy shares at the plan's reference price; the table
shows shares held, stock value, dividend income and their total per year.

Examples:
  journalctl project -f plan.yaml
  journalctl project -f plan.yaml --remote`,
	Args: cobra.NoArgs,
	RunE: runProject,
}

var (
	planFile      string
	projectRemote bool
)

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.Flags().StringVarP(&planFile, "file", "f", "plan.yaml", "projection plan file")
	projectCmd.Flags().BoolVar(&projectRemote, "remote", false, "run the projection on the journal server")
}

func runProject(cmd *cobra.Command, args []string) error {
	plan, err := LoadPlan(planFile)
	if err != nil {
		return err
	}
	code := currency
	if plan.Currency != "" && !cmd.Flags().Changed("currency") {
		code = plan.Currency
	}

	if !projectRemote {
		results, err := investment.Project(plan.Input())
		if err != nil {
			return err
		}
		summary, err := investment.Summarize(plan.Input())
		if err != nil {
			return err
		}
		return printProjection(cmd.OutOrStdout(), results, summary.TotalContributed, summary.TotalDividends, code)
	}

	return withClient(func(ctx context.Context, client *grpcadapter.JournalClient) error {
		in := plan.Input()
		resp, err := client.Project(ctx, &grpcadapter.ProjectRequest{
			InitialInvestment:     in.InitialInvestment,
			RecurringContribution: in.RecurringContribution,
			ContributionFrequency: string(in.ContributionFrequency),
			DividendGrowthRatePct: in.DividendGrowthRatePct,
			ExpectedReturnPct:     in.ExpectedReturnPct,
			ProjectionYears:       in.ProjectionYears,
			ReferencePrice:        in.ReferencePrice,
			DividendYieldPct:      in.DividendYieldPct,
		})
		if err != nil {
			return fmt.Errorf("project: %w", err)
		}

		results := make([]domain.ProjectionYearResult, 0, len(resp.Years))
		for _, y := range resp.Years {
			results = append(results, domain.ProjectionYearResult{
				Year:           y.Year,
				SharesHeld:     y.SharesHeld,
				StockValue:     y.StockValue,
				DividendIncome: y.DividendIncome,
				TotalValue:     y.TotalValue,
			})
		}
		return printProjection(cmd.OutOrStdout(), results, resp.TotalContributed, resp.TotalDividends, code)
	})
}

func printProjection(out io.Writer, results []domain.ProjectionYearResult, contributed, dividends decimal.Decimal, code string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Year\tShares\tStock value\tDividends\tTotal\t")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n",
			r.Year,
			r.SharesHeld.StringFixed(4),
			formatMoney(r.StockValue, code),
			formatMoney(r.DividendIncome, code),
			formatMoney(r.TotalValue, code),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nContributed: %s  Dividends received: %s\n",
		formatMoney(contributed, code), formatMoney(dividends, code))
	return nil
}
