package model

import "math"

// Assumptions holds one user's fund-level parameters. At most one active set
// exists per user; saving is an upsert. Percentage fields are 0-100.
type Assumptions struct {
	InvestmentPeriod int `json:"investment_period"`
	ExitHorizon      int `json:"exit_horizon"`
	FundLife         int `json:"fund_life"`
	LockupPeriod     int `json:"lockup_period"`

	MinTicket  float64 `json:"min_ticket"`
	MaxTicket  float64 `json:"max_ticket"`
	TargetFund float64 `json:"target_fund"`

	PreferredReturn  float64 `json:"preferred_return"`
	ManagementFee    float64 `json:"management_fee"`
	AdminCost        float64 `json:"admin_cost"`
	TargetOwnership  float64 `json:"target_ownership"`
	ExpectedDilution float64 `json:"expected_dilution"`

	// Carry tiers: expected-MOIC breakpoints and the carry charged per tier.
	Tier1ExpMOIC float64 `json:"t1_exp_moic"`
	Tier2ExpMOIC float64 `json:"t2_exp_moic"`
	Tier3ExpMOIC float64 `json:"t3_exp_moic"`
	Tier1Carry   float64 `json:"tier1_carry"`
	Tier2Carry   float64 `json:"tier2_carry"`
	Tier3Carry   float64 `json:"tier3_carry"`

	// Risk distribution across outcomes. Informational only; no formula
	// consumes these.
	FailureRate    float64 `json:"failure_rate"`
	BreakEvenRate  float64 `json:"break_even_rate"`
	HighReturnRate float64 `json:"high_return_rate"`
}

// DefaultAssumptions returns the parameter set used before a user saves
// anything: ten-year fund, five-year exit horizon, everything else zero.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		InvestmentPeriod: 10,
		ExitHorizon:      5,
		FundLife:         10,
	}
}

// AverageTicket is the midpoint of the configured ticket range, or 0 when no
// maximum ticket has been set.
func (a Assumptions) AverageTicket() float64 {
	if a.MaxTicket <= 0 {
		return 0
	}
	return (a.MinTicket + a.MaxTicket) / 2
}

// ExpectedInvestors estimates how many tickets fill the target fund.
func (a Assumptions) ExpectedInvestors() int {
	avg := a.AverageTicket()
	if avg <= 0 {
		return 0
	}
	return int(math.Ceil(a.TargetFund / avg))
}
