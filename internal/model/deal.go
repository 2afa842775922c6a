package model

// Scenario selects which of a deal's three factors applies.
type Scenario string

const (
	ScenarioBase     Scenario = "Base"
	ScenarioDownside Scenario = "Downside"
	ScenarioUpside   Scenario = "Upside"
)

// Deal is one portfolio company investment as entered by the user.
// Derived figures (post-money, ownership, exit value) are never stored;
// they are recomputed by the engine on every read.
type Deal struct {
	ID          string `json:"id"`
	UserID      string `json:"-"`
	Company     string `json:"company"`
	CompanyType string `json:"company_type"`
	Industry    string `json:"industry"`

	EntryYear int `json:"entry_year"`
	ExitYear  int `json:"exit_year"`

	Invested       float64 `json:"invested"`
	EntryValuation float64 `json:"entry_valuation"`

	BaseFactor     float64 `json:"base_factor"`
	DownsideFactor float64 `json:"downside_factor"`
	UpsideFactor   float64 `json:"upside_factor"`

	Scenario Scenario `json:"scenario"`
}

// Factor returns the multiplier the given scenario selects. ok is false for
// labels outside the three known scenarios.
func (d Deal) Factor(s Scenario) (factor float64, ok bool) {
	switch s {
	case ScenarioBase:
		return d.BaseFactor, true
	case ScenarioDownside:
		return d.DownsideFactor, true
	case ScenarioUpside:
		return d.UpsideFactor, true
	default:
		return 0, false
	}
}
