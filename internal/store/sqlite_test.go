package store

import (
	"errors"
	"path/filepath"
	"testing"

	"FundScope/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteStore_AssumptionsRoundTrip(t *testing.T) {
	st := newTestSQLite(t)

	a, err := st.LoadAssumptions("u1")
	if err != nil {
		t.Fatal(err)
	}
	if a != nil {
		t.Fatal("expected nil for fresh user")
	}

	in := model.Assumptions{
		InvestmentPeriod: 10,
		ExitHorizon:      5,
		FundLife:         10,
		LockupPeriod:     3,
		MinTicket:        50_000,
		MaxTicket:        250_000,
		TargetFund:       10_000_000,
		PreferredReturn:  8,
		ManagementFee:    2,
		AdminCost:        2,
		TargetOwnership:  15,
		ExpectedDilution: 20,
		Tier1ExpMOIC:     1.0,
		Tier2ExpMOIC:     1.5,
		Tier3ExpMOIC:     3.0,
		Tier1Carry:       20,
		Tier2Carry:       25,
		Tier3Carry:       30,
		FailureRate:      30,
		BreakEvenRate:    40,
		HighReturnRate:   30,
	}
	if err := st.SaveAssumptions("u1", in); err != nil {
		t.Fatal(err)
	}

	got, err := st.LoadAssumptions("u1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || *got != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, in)
	}

	// Upsert overwrites in place.
	in.TargetFund = 20_000_000
	if err := st.SaveAssumptions("u1", in); err != nil {
		t.Fatal(err)
	}
	got, _ = st.LoadAssumptions("u1")
	if got.TargetFund != 20_000_000 {
		t.Errorf("upsert did not overwrite, got %v", got.TargetFund)
	}
}

func TestSQLiteStore_DealLifecycle(t *testing.T) {
	st := newTestSQLite(t)

	d := model.Deal{
		Company:        "Acme Robotics",
		CompanyType:    "Startup",
		Industry:       "Robotics",
		EntryYear:      2024,
		ExitYear:       2029,
		Invested:       100_000,
		EntryValuation: 400_000,
		BaseFactor:     3.0,
		DownsideFactor: 1.5,
		UpsideFactor:   5.0,
		Scenario:       model.ScenarioBase,
	}

	id, err := st.InsertDeal("u1", d)
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("expected generated deal id")
	}

	deals, err := st.LoadDeals("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(deals) != 1 {
		t.Fatalf("expected 1 deal, got %d", len(deals))
	}
	got := deals[0]
	if got.ID != id || got.Company != d.Company || got.Invested != d.Invested || got.Scenario != d.Scenario {
		t.Errorf("deal mismatch: %+v", got)
	}

	if err := st.DeleteDeal("u1", id); err != nil {
		t.Fatal(err)
	}
	if err := st.DeleteDeal("u1", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_ListUsers(t *testing.T) {
	st := newTestSQLite(t)

	if users, _ := st.ListUsers(); len(users) != 0 {
		t.Fatalf("expected no users, got %v", users)
	}

	st.SaveAssumptions("bob", model.Assumptions{})
	st.InsertDeal("alice", model.Deal{Company: "Alpha", Scenario: model.ScenarioBase})
	st.InsertDeal("bob", model.Deal{Company: "Beta", Scenario: model.ScenarioBase})

	users, err := st.ListUsers()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 distinct users, got %v", users)
	}
}
