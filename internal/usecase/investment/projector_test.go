package investment

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProject_AAPLSingleYearScenario(t *testing.T) {
	// 10000 at 150.25, yield 0.65%, 7% expected return, no contributions
	input := domain.ProjectionInput{
		InitialInvestment:     d("10000"),
		RecurringContribution: decimal.Zero,
		ContributionFrequency: domain.FrequencyMonthly,
		DividendGrowthRatePct: d("5"),
		ExpectedReturnPct:     d("7"),
		ProjectionYears:       1,
		ReferencePrice:        d("150.25"),
		DividendYieldPct:      d("0.65"),
	}

	results, err := Project(input)

	require.NoError(t, err)
	require.Len(t, results, 1)

	year := results[0]
	assert.Equal(t, 1, year.Year)
	assert.InDelta(t, 66.5557, year.SharesHeld.InexactFloat64(), 0.0001)
	assert.InDelta(t, 10700.00, year.StockValue.InexactFloat64(), 0.000001, "10000 * 1.07")
	// shares * (150.25 * 0.0065) = 10000 * 0.0065
	assert.InDelta(t, 65.00, year.DividendIncome.InexactFloat64(), 0.000001)
	assert.True(t, year.TotalValue.Equal(year.StockValue.Add(year.DividendIncome)))
}

func TestProject_ContributionsAndDividendGrowth(t *testing.T) {
	// Price 100: 1000 initial = 10 shares, 100 monthly = 12 shares per year
	input := domain.ProjectionInput{
		InitialInvestment:     d("1000"),
		RecurringContribution: d("100"),
		ContributionFrequency: domain.FrequencyMonthly,
		DividendGrowthRatePct: d("5"),
		ExpectedReturnPct:     d("10"),
		ProjectionYears:       2,
		ReferencePrice:        d("100"),
		DividendYieldPct:      d("2"),
	}

	results, err := Project(input)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Year 1: 22 shares, 22 * 100 * 1.1, dividend 22 * 2
	assert.True(t, results[0].SharesHeld.Equal(d("22")))
	assert.True(t, results[0].StockValue.Equal(d("2420")))
	assert.True(t, results[0].DividendIncome.Equal(d("44")))
	assert.True(t, results[0].TotalValue.Equal(d("2464")))

	// Year 2: 34 shares, 34 * 100 * 1.21, dividend 34 * 2.1
	assert.True(t, results[1].SharesHeld.Equal(d("34")))
	assert.True(t, results[1].StockValue.Equal(d("4114")))
	assert.True(t, results[1].DividendIncome.Equal(d("71.4")))
	assert.True(t, results[1].TotalValue.Equal(d("4185.4")))
}

func TestProject_Invariants(t *testing.T) {
	frequencies := []domain.ContributionFrequency{
		domain.FrequencyWeekly,
		domain.FrequencyBiweekly,
		domain.FrequencyMonthly,
		domain.FrequencyYearly,
	}

	for _, freq := range frequencies {
		t.Run(string(freq), func(t *testing.T) {
			input := domain.ProjectionInput{
				InitialInvestment:     d("5000"),
				RecurringContribution: d("50"),
				ContributionFrequency: freq,
				DividendGrowthRatePct: d("-2.5"),
				ExpectedReturnPct:     d("-3"),
				ProjectionYears:       25,
				ReferencePrice:        d("42.17"),
				DividendYieldPct:      d("3.1"),
			}

			results, err := Project(input)
			require.NoError(t, err)
			require.Len(t, results, input.ProjectionYears)

			for i, r := range results {
				assert.Equal(t, i+1, r.Year)
				assert.True(t, r.TotalValue.Equal(r.StockValue.Add(r.DividendIncome)), "year %d", r.Year)
				if i > 0 {
					assert.True(t, r.SharesHeld.GreaterThan(results[i-1].SharesHeld),
						"shares strictly increase with contributions (year %d)", r.Year)
				}
			}
		})
	}
}

func TestProject_NoContributionsKeepsSharesConstant(t *testing.T) {
	input := domain.ProjectionInput{
		InitialInvestment:     d("10000"),
		ContributionFrequency: domain.FrequencyWeekly,
		ExpectedReturnPct:     d("7"),
		DividendGrowthRatePct: d("5"),
		ProjectionYears:       30,
		ReferencePrice:        d("150.25"),
		DividendYieldPct:      d("0.65"),
	}

	results, err := Project(input)
	require.NoError(t, err)

	expected := d("10000").Div(d("150.25"))
	for _, r := range results {
		assert.True(t, r.SharesHeld.Equal(expected), "year %d", r.Year)
	}
}

func TestProject_RecurringBuysUseReferencePrice(t *testing.T) {
	// Even with a 50% expected return, year 3 buys at the original price
	input := domain.ProjectionInput{
		RecurringContribution: d("1000"),
		ContributionFrequency: domain.FrequencyYearly,
		ExpectedReturnPct:     d("50"),
		ProjectionYears:       3,
		ReferencePrice:        d("10"),
	}

	results, err := Project(input)
	require.NoError(t, err)

	assert.True(t, results[2].SharesHeld.Equal(d("300")))
	assert.True(t, results[2].StockValue.Equal(d("10125")), "300 * 10 * 1.5^3")
	assert.True(t, results[2].DividendIncome.IsZero())
}

func TestProject_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.ProjectionInput
	}{
		{
			name: "Zero reference price",
			input: domain.ProjectionInput{
				ContributionFrequency: domain.FrequencyYearly,
				ProjectionYears:       1,
			},
		},
		{
			name: "Zero years",
			input: domain.ProjectionInput{
				ContributionFrequency: domain.FrequencyYearly,
				ReferencePrice:        d("1"),
			},
		},
		{
			name: "Negative initial investment",
			input: domain.ProjectionInput{
				InitialInvestment:     d("-1"),
				ContributionFrequency: domain.FrequencyYearly,
				ProjectionYears:       1,
				ReferencePrice:        d("1"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Project(tt.input)
			assert.Nil(t, results)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestSummarize(t *testing.T) {
	input := domain.ProjectionInput{
		InitialInvestment:     d("1000"),
		RecurringContribution: d("100"),
		ContributionFrequency: domain.FrequencyMonthly,
		DividendGrowthRatePct: d("5"),
		ExpectedReturnPct:     d("10"),
		ProjectionYears:       2,
		ReferencePrice:        d("100"),
		DividendYieldPct:      d("2"),
	}

	summary, err := Summarize(input)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Final.Year)
	assert.True(t, summary.TotalContributed.Equal(d("3400")), "1000 + 100 * 12 * 2")
	assert.True(t, summary.TotalDividends.Equal(d("115.4")), "44 + 71.4")
}
