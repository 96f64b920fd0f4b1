package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/simaogato/tradejournal-backend/internal/domain"
)

// Plan is a projection plan as written in a YAML file:
//
//	initial_investment: 10000
//	recurring_contribution: 500
//	contribution_frequency: monthly
//	dividend_growth_rate: 5
//	expected_return: 7
//	years: 10
//	reference_price: 150.25
//	dividend_yield: 0.65
type Plan struct {
	InitialInvestment     Amount `yaml:"initial_investment"`
	RecurringContribution Amount `yaml:"recurring_contribution"`
	ContributionFrequency string `yaml:"contribution_frequency"`
	DividendGrowthRate    Amount `yaml:"dividend_growth_rate"`
	ExpectedReturn        Amount `yaml:"expected_return"`
	Years                 int    `yaml:"years"`
	ReferencePrice        Amount `yaml:"reference_price"`
	DividendYield         Amount `yaml:"dividend_yield"`
	Currency              string `yaml:"currency,omitempty"`
}

// Amount is a decimal read from a YAML scalar without going through float64
type Amount struct {
	decimal.Decimal
}

// UnmarshalYAML implements yaml.Unmarshaler
func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", value.Line)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(value.Value, "_", ""))
	if err != nil {
		return fmt.Errorf("line %d: invalid number %q: %w", value.Line, value.Value, err)
	}
	a.Decimal = d
	return nil
}

// LoadPlan reads and validates a plan file
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes and validates a YAML plan
func ParsePlan(data []byte) (*Plan, error) {
	plan := &Plan{ContributionFrequency: string(domain.FrequencyMonthly)}
	if err := yaml.Unmarshal(data, plan); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if err := plan.Input().Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return plan, nil
}

// Input converts the plan to a projection input
func (p *Plan) Input() domain.ProjectionInput {
	return domain.ProjectionInput{
		InitialInvestment:     p.InitialInvestment.Decimal,
		RecurringContribution: p.RecurringContribution.Decimal,
		ContributionFrequency: domain.ContributionFrequency(strings.ToLower(p.ContributionFrequency)),
		DividendGrowthRatePct: p.DividendGrowthRate.Decimal,
		ExpectedReturnPct:     p.ExpectedReturn.Decimal,
		ProjectionYears:       p.Years,
		ReferencePrice:        p.ReferencePrice.Decimal,
		DividendYieldPct:      p.DividendYield.Decimal,
	}
}
