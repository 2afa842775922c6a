package recorder

import "FundScope/internal/model"

// Recorder persists computed portfolio history for trend analysis. Writes are
// append-only; the engine never reads them back.
type Recorder interface {
	RecordPortfolio(userID string, summary model.PortfolioSummary) error
	RecordScenarioRun(userID string, results []model.ScenarioResult) error
	Close() error
}
