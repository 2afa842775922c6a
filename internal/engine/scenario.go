package engine

import "FundScope/internal/model"

// ComputeFees itemizes the admin fee model: one admin-cost charge, an equal
// operations charge, and one admin-cost charge per year of the investment
// period. Nothing compounds or discounts.
func ComputeFees(a model.Assumptions) model.FeeBreakdown {
	admin := a.AdminCost / 100 * a.TargetFund
	fb := model.FeeBreakdown{
		AdminCost:     admin,
		OperationsFee: admin,
		ManagementFee: admin * float64(a.InvestmentPeriod),
	}
	fb.Total = fb.AdminCost + fb.OperationsFee + fb.ManagementFee
	return fb
}

// RunScenarios applies fund-level economics to the aggregated portfolio under
// each macro scenario. The multiplier scales the already-computed total exit
// value; per-deal factors are not re-derived. Output order matches the
// scenario set order.
func RunScenarios(summary model.PortfolioSummary, a model.Assumptions, set []model.ScenarioSpec) []model.ScenarioResult {
	totalFees := ComputeFees(a).Total

	out := make([]model.ScenarioResult, 0, len(set))
	for _, sc := range set {
		gev := summary.TotalExitValue * sc.Multiplier
		r := model.ScenarioResult{
			Label:             sc.Label,
			Multiplier:        sc.Multiplier,
			GrossExitValue:    gev,
			ProfitBeforeCarry: gev - summary.TotalInvested,
			TotalFees:         totalFees,
		}
		if summary.TotalInvested > 0 {
			r.GrossMOIC = gev / summary.TotalInvested
		}

		r.CarryPct = carryTier(r.GrossMOIC, a)
		r.CarryAmount = r.ProfitBeforeCarry * r.CarryPct / 100
		if r.CarryAmount < 0 {
			r.CarryAmount = 0
		}

		r.NetToInvestors = gev - r.CarryAmount - r.TotalFees
		if summary.TotalInvested > 0 {
			r.RealMOIC = r.NetToInvestors / summary.TotalInvested
		}
		if rate, ok := AnnualizedReturn(r.RealMOIC, float64(a.ExitHorizon)); ok {
			r.ScenarioIRR = &rate
		}

		out = append(out, r)
	}
	return out
}

// carryTier picks the carry percentage for a realized MOIC. Tiers are keyed
// on the configured expected-MOIC breakpoints, evaluated ascending with an
// exclusive lower boundary: a MOIC exactly on a breakpoint lands in the
// higher tier.
func carryTier(grossMOIC float64, a model.Assumptions) float64 {
	switch {
	case grossMOIC < a.Tier2ExpMOIC:
		return a.Tier1Carry
	case grossMOIC < a.Tier3ExpMOIC:
		return a.Tier2Carry
	default:
		return a.Tier3Carry
	}
}
