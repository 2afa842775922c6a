package engine

import (
	"errors"
	"fmt"

	"FundScope/internal/model"
)

// ErrInvalidScenario reports a scenario label that matches none of the three
// configured factors. It fails the single deal, not the whole portfolio; the
// caller decides whether to skip or abort.
var ErrInvalidScenario = errors.New("invalid scenario")

// ValueDeal computes the derived valuation fields for one deal. An empty
// override uses the deal's stored scenario selection.
//
// Exit valuation is post-money x factor, keeping the newly invested capital
// in the multiple base. A zero post-money yields zero ownership and zero
// downstream values rather than an error.
func ValueDeal(d model.Deal, override model.Scenario) (model.DealResult, error) {
	scenario := d.Scenario
	if override != "" {
		scenario = override
	}
	factor, ok := d.Factor(scenario)
	if !ok {
		return model.DealResult{}, fmt.Errorf("%w: %q", ErrInvalidScenario, scenario)
	}

	res := model.DealResult{Deal: d}
	res.HoldingPeriod = d.ExitYear - d.EntryYear
	res.PostMoney = d.EntryValuation + d.Invested
	if res.PostMoney > 0 {
		res.OwnershipPct = d.Invested / res.PostMoney * 100
	}
	res.ExitValuation = res.PostMoney * factor
	res.ExitValue = res.ExitValuation * res.OwnershipPct / 100
	return res, nil
}

// Recompute values every deal in order. A non-empty override replaces each
// deal's stored scenario. The first invalid scenario aborts with the deal
// identified in the error.
func Recompute(deals []model.Deal, override model.Scenario) ([]model.DealResult, error) {
	results := make([]model.DealResult, 0, len(deals))
	for _, d := range deals {
		res, err := ValueDeal(d, override)
		if err != nil {
			return nil, fmt.Errorf("deal %s (%s): %w", d.ID, d.Company, err)
		}
		results = append(results, res)
	}
	return results, nil
}
