package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"FundScope/internal/engine"
	"FundScope/internal/model"
	"FundScope/internal/store"
)

type contextKey string

const userIDKey contextKey = "userID"

// requireUser pulls the opaque user identifier from the X-User-ID header.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			s.writeError(w, http.StatusUnauthorized, "missing X-User-ID header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "fundscope",
	})
}

func (s *Server) handleGetAssumptions(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.LoadAssumptions(userID(r))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defaults := a == nil
	if defaults {
		def := model.DefaultAssumptions()
		a = &def
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"assumptions": a,
		"defaults":    defaults,
	})
}

func (s *Server) handleSaveAssumptions(w http.ResponseWriter, r *http.Request) {
	var a model.Assumptions
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validateAssumptions(a); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.SaveAssumptions(userID(r), a); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"assumptions":        a,
		"average_ticket":     a.AverageTicket(),
		"expected_investors": a.ExpectedInvestors(),
	})
}

func (s *Server) handleListDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := s.store.LoadDeals(userID(r))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if deals == nil {
		deals = []model.Deal{}
	}
	s.writeJSON(w, http.StatusOK, deals)
}

func (s *Server) handleAddDeal(w http.ResponseWriter, r *http.Request) {
	var d model.Deal
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validateDeal(d); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.store.InsertDeal(userID(r), d)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleDeleteDeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.DeleteDeal(userID(r), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "deal not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	override := model.Scenario(r.URL.Query().Get("scenario"))

	view, err := s.service.PortfolioView(userID(r), override)
	if errors.Is(err, engine.ErrInvalidScenario) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.PortfolioView(userID(r), "")
	if errors.Is(err, engine.ErrInvalidScenario) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, view.Scenarios)
}

func (s *Server) handleFees(w http.ResponseWriter, r *http.Request) {
	fees, defaults, err := s.service.Fees(userID(r))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"fees":     fees,
		"defaults": defaults,
	})
}

func validateAssumptions(a model.Assumptions) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"investment_period", float64(a.InvestmentPeriod)},
		{"exit_horizon", float64(a.ExitHorizon)},
		{"fund_life", float64(a.FundLife)},
		{"lockup_period", float64(a.LockupPeriod)},
		{"min_ticket", a.MinTicket},
		{"max_ticket", a.MaxTicket},
		{"target_fund", a.TargetFund},
		{"preferred_return", a.PreferredReturn},
		{"management_fee", a.ManagementFee},
		{"admin_cost", a.AdminCost},
		{"target_ownership", a.TargetOwnership},
		{"expected_dilution", a.ExpectedDilution},
		{"t1_exp_moic", a.Tier1ExpMOIC},
		{"t2_exp_moic", a.Tier2ExpMOIC},
		{"t3_exp_moic", a.Tier3ExpMOIC},
		{"tier1_carry", a.Tier1Carry},
		{"tier2_carry", a.Tier2Carry},
		{"tier3_carry", a.Tier3Carry},
		{"failure_rate", a.FailureRate},
		{"break_even_rate", a.BreakEvenRate},
		{"high_return_rate", a.HighReturnRate},
	}
	for _, c := range checks {
		if c.value < 0 {
			return fmt.Errorf("%s must be non-negative", c.name)
		}
	}
	return nil
}

func validateDeal(d model.Deal) error {
	if d.Company == "" {
		return fmt.Errorf("company is required")
	}
	if d.Invested < 0 {
		return fmt.Errorf("invested must be non-negative")
	}
	if d.EntryValuation < 0 {
		return fmt.Errorf("entry_valuation must be non-negative")
	}
	if d.BaseFactor < 0 || d.DownsideFactor < 0 || d.UpsideFactor < 0 {
		return fmt.Errorf("scenario factors must be non-negative")
	}
	if _, ok := d.Factor(d.Scenario); !ok {
		return fmt.Errorf("unknown scenario %q", d.Scenario)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
