package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FundScope/internal/engine"
	"FundScope/internal/model"
	"FundScope/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	set := []model.ScenarioSpec{
		{Label: "Base", Multiplier: 1.0},
		{Label: "Upside", Multiplier: 1.5},
	}
	svc := engine.NewService(st, set, zerolog.Nop())
	srv := New(Config{Port: 0, Log: zerolog.Nop(), Store: st, Service: svc})
	return srv, st
}

func doRequest(t *testing.T, srv *Server, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestMissingUserHeader(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/deals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthNeedsNoUser(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAssumptionsDefaultsThenUpsert(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/assumptions", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Assumptions model.Assumptions `json:"assumptions"`
		Defaults    bool              `json:"defaults"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Defaults)
	assert.Equal(t, 5, got.Assumptions.ExitHorizon)

	a := model.Assumptions{InvestmentPeriod: 10, ExitHorizon: 5, FundLife: 10, MinTicket: 50_000, MaxTicket: 150_000, TargetFund: 1_000_000}
	rec = doRequest(t, srv, http.MethodPut, "/api/assumptions", "u1", a)
	require.Equal(t, http.StatusOK, rec.Code)

	var saved struct {
		AverageTicket     float64 `json:"average_ticket"`
		ExpectedInvestors int     `json:"expected_investors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.InDelta(t, 100_000, saved.AverageTicket, 1e-9)
	assert.Equal(t, 10, saved.ExpectedInvestors)

	rec = doRequest(t, srv, http.MethodGet, "/api/assumptions", "u1", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Defaults)
	assert.Equal(t, 1_000_000.0, got.Assumptions.TargetFund)
}

func TestSaveAssumptions_RejectsNegative(t *testing.T) {
	srv, _ := newTestServer(t)
	a := model.Assumptions{InvestmentPeriod: 10, ExitHorizon: 5, TargetFund: -1}
	rec := doRequest(t, srv, http.MethodPut, "/api/assumptions", "u1", a)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDealLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	d := model.Deal{
		Company:        "Acme Robotics",
		EntryYear:      2024,
		ExitYear:       2029,
		Invested:       100_000,
		EntryValuation: 400_000,
		BaseFactor:     3.0,
		DownsideFactor: 1.5,
		UpsideFactor:   5.0,
		Scenario:       model.ScenarioBase,
	}
	rec := doRequest(t, srv, http.MethodPost, "/api/deals", "u1", d)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = doRequest(t, srv, http.MethodGet, "/api/deals", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deals []model.Deal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deals))
	require.Len(t, deals, 1)

	rec = doRequest(t, srv, http.MethodDelete, "/api/deals/"+created.ID, "u1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/deals/"+created.ID, "u1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddDeal_UnknownScenario(t *testing.T) {
	srv, _ := newTestServer(t)
	d := model.Deal{Company: "Acme", Scenario: "Sideways"}
	rec := doRequest(t, srv, http.MethodPost, "/api/deals", "u1", d)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPortfolio_EmptyHasNullIRR(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/portfolio", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	var summary map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body["summary"], &summary))
	assert.Equal(t, "null", string(summary["fund_irr"]))
	assert.Equal(t, "0", string(summary["gross_moic"]))
}

func TestPortfolio_WithDeal(t *testing.T) {
	srv, st := newTestServer(t)

	_, err := st.InsertDeal("u1", model.Deal{
		Company: "Acme", EntryYear: 2024, ExitYear: 2029,
		Invested: 100_000, EntryValuation: 400_000,
		BaseFactor: 3.0, DownsideFactor: 1.5, UpsideFactor: 5.0,
		Scenario: model.ScenarioBase,
	})
	require.NoError(t, err)

	rec := doRequest(t, srv, http.MethodGet, "/api/portfolio", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view model.PortfolioView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.InDelta(t, 3.0, view.Summary.GrossMOIC, 1e-9)
	require.NotNil(t, view.Summary.FundIRR)
	assert.InDelta(t, 0.24573, *view.Summary.FundIRR, 1e-4)
	require.Len(t, view.Scenarios, 2)
	assert.Equal(t, "Upside", view.Scenarios[1].Label)
}

func TestPortfolio_ScenarioOverride(t *testing.T) {
	srv, st := newTestServer(t)

	_, err := st.InsertDeal("u1", model.Deal{
		Company: "Acme", Invested: 100_000, EntryValuation: 400_000,
		BaseFactor: 3.0, DownsideFactor: 1.5, UpsideFactor: 5.0,
		Scenario: model.ScenarioBase,
	})
	require.NoError(t, err)

	rec := doRequest(t, srv, http.MethodGet, "/api/portfolio?scenario=Upside", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view model.PortfolioView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.InDelta(t, 500_000, view.Summary.TotalExitValue, 1e-9)

	rec = doRequest(t, srv, http.MethodGet, "/api/portfolio?scenario=Sideways", "u1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFees(t *testing.T) {
	srv, st := newTestServer(t)

	require.NoError(t, st.SaveAssumptions("u1", model.Assumptions{
		InvestmentPeriod: 10, ExitHorizon: 5, TargetFund: 10_000_000, AdminCost: 2,
	}))

	rec := doRequest(t, srv, http.MethodGet, "/api/fees", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Fees model.FeeBreakdown `json:"fees"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 200_000, body.Fees.AdminCost, 1e-9)
	assert.InDelta(t, 200_000, body.Fees.OperationsFee, 1e-9)
	assert.InDelta(t, 2_000_000, body.Fees.ManagementFee, 1e-9)
	assert.InDelta(t, 2_400_000, body.Fees.Total, 1e-9)
}
