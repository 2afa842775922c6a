package model

// DealResult augments a deal with the figures the valuation engine derives
// from it. The source deal is never mutated.
type DealResult struct {
	Deal

	// HoldingPeriod may be negative when exit year precedes entry year;
	// it is surfaced as-is rather than rejected.
	HoldingPeriod int     `json:"holding_period"`
	PostMoney     float64 `json:"post_money"`
	OwnershipPct  float64 `json:"ownership_pct"`
	ExitValuation float64 `json:"exit_valuation"`
	ExitValue     float64 `json:"exit_value"`
}

// PortfolioSummary holds fund-level aggregates across all deals.
// FundIRR is nil when the annualized return is undefined (zero MOIC or
// horizon); it marshals as JSON null, never as 0.
type PortfolioSummary struct {
	TotalInvested  float64  `json:"total_invested"`
	TotalExitValue float64  `json:"total_exit_value"`
	GrossMOIC      float64  `json:"gross_moic"`
	FundIRR        *float64 `json:"fund_irr"`
	DealCount      int      `json:"deal_count"`
}

// YearBucket is one row of the entry-year time series: per-year totals plus
// running cumulative figures in ascending year order.
type YearBucket struct {
	Year               int     `json:"year"`
	Invested           float64 `json:"invested"`
	DealCount          int     `json:"deal_count"`
	CumulativeInvested float64 `json:"cumulative_invested"`
	CumulativeDeals    int     `json:"cumulative_deals"`
}

// ScenarioSpec is one entry of the configured macro scenario set.
type ScenarioSpec struct {
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// ScenarioResult is one row of the scenario/fee overlay.
type ScenarioResult struct {
	Label             string   `json:"label"`
	Multiplier        float64  `json:"multiplier"`
	GrossExitValue    float64  `json:"gross_exit_value"`
	ProfitBeforeCarry float64  `json:"profit_before_carry"`
	GrossMOIC         float64  `json:"gross_moic"`
	CarryPct          float64  `json:"carry_pct"`
	CarryAmount       float64  `json:"carry_amount"`
	TotalFees         float64  `json:"total_fees"`
	NetToInvestors    float64  `json:"net_to_investors"`
	RealMOIC          float64  `json:"real_moic"`
	ScenarioIRR       *float64 `json:"scenario_irr"`
}

// FeeBreakdown itemizes the admin fee model. OperationsFee equals AdminCost
// by definition; Total is the sum of the three components.
type FeeBreakdown struct {
	AdminCost     float64 `json:"admin_cost"`
	OperationsFee float64 `json:"operations_fee"`
	ManagementFee float64 `json:"management_fee"`
	Total         float64 `json:"total"`
}

// PortfolioView is the full computed model for one user: the valued deal
// table plus every aggregate the dashboard renders.
type PortfolioView struct {
	Assumptions  Assumptions      `json:"assumptions"`
	DefaultsUsed bool             `json:"defaults_used"`
	Deals        []DealResult     `json:"deals"`
	Summary      PortfolioSummary `json:"summary"`
	ByYear       []YearBucket     `json:"by_year"`
	Scenarios    []ScenarioResult `json:"scenarios"`
	Fees         FeeBreakdown     `json:"fees"`
}
