package investment

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/tradejournal-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Project simulates the growth of a position year by year
// Returns exactly input.ProjectionYears results ordered by year
// Logic:
//  1. Initial shares = InitialInvestment / ReferencePrice
//  2. Dividend per share = ReferencePrice * DividendYieldPct / 100
//  3. Each year buys (RecurringContribution * periods per year) / ReferencePrice shares.
//     Recurring buys always execute at the original ReferencePrice.
//  4. StockValue = Shares * ReferencePrice * (1 + ExpectedReturnPct/100)^year
//  5. DividendIncome = Shares * dividend per share for this year (before growth)
//  6. After the year is emitted the dividend per share grows by DividendGrowthRatePct
//
// No rounding is applied between years.
func Project(input domain.ProjectionInput) ([]domain.ProjectionYearResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	periods, _ := input.ContributionFrequency.PeriodsPerYear()

	price := input.ReferencePrice
	shares := input.InitialInvestment.Div(price)
	dividendPerShare := price.Mul(input.DividendYieldPct).Div(hundred)

	contributionsPerYear := input.RecurringContribution.Mul(decimal.NewFromInt(periods))
	sharesBoughtPerYear := contributionsPerYear.Div(price)

	priceGrowth := decimal.NewFromInt(1).Add(input.ExpectedReturnPct.Div(hundred))
	dividendGrowth := decimal.NewFromInt(1).Add(input.DividendGrowthRatePct.Div(hundred))

	// (1 + r)^year, carried forward one multiplication per year
	compounded := decimal.NewFromInt(1)

	results := make([]domain.ProjectionYearResult, 0, input.ProjectionYears)
	for year := 1; year <= input.ProjectionYears; year++ {
		shares = shares.Add(sharesBoughtPerYear)
		compounded = compounded.Mul(priceGrowth)

		stockValue := shares.Mul(price).Mul(compounded)
		dividendIncome := shares.Mul(dividendPerShare)

		results = append(results, domain.ProjectionYearResult{
			Year:           year,
			SharesHeld:     shares,
			StockValue:     stockValue,
			DividendIncome: dividendIncome,
			TotalValue:     stockValue.Add(dividendIncome),
		})

		dividendPerShare = dividendPerShare.Mul(dividendGrowth)
	}

	return results, nil
}

// ProjectionSummary aggregates a projection run
type ProjectionSummary struct {
	Final            domain.ProjectionYearResult
	TotalContributed decimal.Decimal // initial investment plus every recurring contribution
	TotalDividends   decimal.Decimal // sum of DividendIncome across all years
}

// Summarize projects the input and aggregates the run
func Summarize(input domain.ProjectionInput) (*ProjectionSummary, error) {
	results, err := Project(input)
	if err != nil {
		return nil, err
	}

	periods, _ := input.ContributionFrequency.PeriodsPerYear()
	contributed := input.RecurringContribution.
		Mul(decimal.NewFromInt(periods)).
		Mul(decimal.NewFromInt(int64(input.ProjectionYears))).
		Add(input.InitialInvestment)

	dividends := decimal.Zero
	for _, r := range results {
		dividends = dividends.Add(r.DividendIncome)
	}

	return &ProjectionSummary{
		Final:            results[len(results)-1],
		TotalContributed: contributed,
		TotalDividends:   dividends,
	}, nil
}
