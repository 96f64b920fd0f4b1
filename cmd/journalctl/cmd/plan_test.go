package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

const aaplPlan = `
initial_investment: 10_000
recurring_contribution: 0
contribution_frequency: Monthly
dividend_growth_rate: 5
expected_return: 7
years: 1
reference_price: 150.25
dividend_yield: 0.65
`

func TestParsePlan(t *testing.T) {
	plan, err := ParsePlan([]byte(aaplPlan))

	require.NoError(t, err)
	in := plan.Input()
	assert.True(t, in.InitialInvestment.Equal(decimal.NewFromInt(10000)))
	assert.True(t, in.ReferencePrice.Equal(decimal.RequireFromString("150.25")))
	assert.True(t, in.DividendYieldPct.Equal(decimal.RequireFromString("0.65")))
	assert.Equal(t, domain.FrequencyMonthly, in.ContributionFrequency)
	assert.Equal(t, 1, in.ProjectionYears)
}

func TestParsePlan_DefaultsToMonthly(t *testing.T) {
	plan, err := ParsePlan([]byte("initial_investment: 100\nyears: 2\nreference_price: 10\n"))

	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyMonthly, plan.Input().ContributionFrequency)
}

func TestParsePlan_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not a number", "initial_investment: lots\nyears: 1\nreference_price: 10\n"},
		{"list instead of number", "initial_investment: [1, 2]\nyears: 1\nreference_price: 10\n"},
		{"zero years", "initial_investment: 100\nyears: 0\nreference_price: 10\n"},
		{"missing price", "initial_investment: 100\nyears: 1\n"},
		{"unknown frequency", "initial_investment: 100\nyears: 1\nreference_price: 10\ncontribution_frequency: daily\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePlan([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestProjectCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(aaplPlan), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"project", "-f", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "66.5557")
	assert.Contains(t, out.String(), "$10,700.00")
	assert.Contains(t, out.String(), "$65.00")
	assert.Contains(t, out.String(), "Contributed: $10,000.00")
}
