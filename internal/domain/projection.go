package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ContributionFrequency represents how often a recurring contribution is made
type ContributionFrequency string

const (
	FrequencyWeekly   ContributionFrequency = "weekly"
	FrequencyBiweekly ContributionFrequency = "biweekly"
	FrequencyMonthly  ContributionFrequency = "monthly"
	FrequencyYearly   ContributionFrequency = "yearly"
)

// PeriodsPerYear returns the number of contributions made in one year.
// Returns false for an unknown frequency.
func (f ContributionFrequency) PeriodsPerYear() (int64, bool) {
	switch f {
	case FrequencyWeekly:
		return 52, true
	case FrequencyBiweekly:
		return 26, true
	case FrequencyMonthly:
		return 12, true
	case FrequencyYearly:
		return 1, true
	default:
		return 0, false
	}
}

// ProjectionInput holds the parameters of a single projection run.
// ReferencePrice is the current share price and is used as the purchase price
// of every recurring buy for the whole run.
type ProjectionInput struct {
	InitialInvestment     decimal.Decimal
	RecurringContribution decimal.Decimal
	ContributionFrequency ContributionFrequency
	DividendGrowthRatePct decimal.Decimal // may be negative
	ExpectedReturnPct     decimal.Decimal // may be negative
	ProjectionYears       int
	ReferencePrice        decimal.Decimal
	DividendYieldPct      decimal.Decimal // relative to ReferencePrice
}

// Validate ensures the projection input adheres to domain rules
func (in ProjectionInput) Validate() error {
	if in.ReferencePrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: reference price must be positive", ErrInvalidInput)
	}
	if in.ProjectionYears < 1 {
		return fmt.Errorf("%w: projection years must be at least 1", ErrInvalidInput)
	}
	if in.InitialInvestment.IsNegative() {
		return fmt.Errorf("%w: initial investment cannot be negative", ErrInvalidInput)
	}
	if in.RecurringContribution.IsNegative() {
		return fmt.Errorf("%w: recurring contribution cannot be negative", ErrInvalidInput)
	}
	if in.DividendYieldPct.IsNegative() {
		return fmt.Errorf("%w: dividend yield cannot be negative", ErrInvalidInput)
	}
	if _, ok := in.ContributionFrequency.PeriodsPerYear(); !ok {
		return fmt.Errorf("%w: unknown contribution frequency %q", ErrInvalidInput, in.ContributionFrequency)
	}
	return nil
}

// ProjectionYearResult is the simulated state at the end of one projection year
type ProjectionYearResult struct {
	Year           int
	SharesHeld     decimal.Decimal
	StockValue     decimal.Decimal
	DividendIncome decimal.Decimal
	TotalValue     decimal.Decimal // StockValue + DividendIncome
}
