package recorder

import "FundScope/internal/model"

// NoopRecorder is a no-op implementation used when snapshot history is not
// configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordPortfolio(_ string, _ model.PortfolioSummary) error  { return nil }
func (n *NoopRecorder) RecordScenarioRun(_ string, _ []model.ScenarioResult) error { return nil }
func (n *NoopRecorder) Close() error                                              { return nil }
