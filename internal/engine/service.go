package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"FundScope/internal/model"
	"FundScope/internal/store"
)

// Service runs the full pipeline for one user: load inputs from the store,
// value every deal, aggregate, overlay scenarios and fees. The computation
// itself stays pure; the store reads are the only side effects.
type Service struct {
	store     store.Store
	scenarios []model.ScenarioSpec
	log       zerolog.Logger
}

func NewService(st store.Store, scenarios []model.ScenarioSpec, log zerolog.Logger) *Service {
	return &Service{
		store:     st,
		scenarios: scenarios,
		log:       log.With().Str("component", "engine").Logger(),
	}
}

// PortfolioView computes the complete model for a user. A non-empty override
// replaces every deal's stored scenario selection. Users without a saved
// assumptions record get DefaultAssumptions, flagged on the view.
func (s *Service) PortfolioView(userID string, override model.Scenario) (*model.PortfolioView, error) {
	assumptions, defaultsUsed, err := s.assumptionsFor(userID)
	if err != nil {
		return nil, err
	}

	deals, err := s.store.LoadDeals(userID)
	if err != nil {
		return nil, fmt.Errorf("load deals: %w", err)
	}

	results, err := Recompute(deals, override)
	if err != nil {
		return nil, err
	}

	view := &model.PortfolioView{
		Assumptions:  assumptions,
		DefaultsUsed: defaultsUsed,
		Deals:        results,
	}
	view.Summary = Aggregate(results, assumptions.ExitHorizon)
	view.ByYear = ByEntryYear(results)
	view.Scenarios = RunScenarios(view.Summary, assumptions, s.scenarios)
	view.Fees = ComputeFees(assumptions)

	s.log.Debug().
		Str("user", userID).
		Int("deals", view.Summary.DealCount).
		Float64("gross_moic", view.Summary.GrossMOIC).
		Msg("portfolio recomputed")

	return view, nil
}

// Fees returns just the fee breakdown for a user's assumptions.
func (s *Service) Fees(userID string) (model.FeeBreakdown, bool, error) {
	assumptions, defaultsUsed, err := s.assumptionsFor(userID)
	if err != nil {
		return model.FeeBreakdown{}, false, err
	}
	return ComputeFees(assumptions), defaultsUsed, nil
}

func (s *Service) assumptionsFor(userID string) (model.Assumptions, bool, error) {
	a, err := s.store.LoadAssumptions(userID)
	if err != nil {
		return model.Assumptions{}, false, fmt.Errorf("load assumptions: %w", err)
	}
	if a == nil {
		return model.DefaultAssumptions(), true, nil
	}
	return *a, false, nil
}
