package engine

import "math"

// AnnualizedReturn converts a multiple on invested capital and a time horizon
// into an annualized rate, assuming a single lump-sum cash flow compounding
// over the horizon: rate = moic^(1/years) - 1.
//
// This is deliberately not a money-weighted IRR over a dated cash-flow
// schedule; no periodic contributions or distributions are modeled.
//
// ok is false when moic or years is non-positive. The rate is meaningless in
// that case and callers must render "N/A", never a number.
func AnnualizedReturn(moic, years float64) (rate float64, ok bool) {
	if moic <= 0 || years <= 0 {
		return 0, false
	}
	return math.Pow(moic, 1/years) - 1, true
}
