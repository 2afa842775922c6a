package engine

import (
	"sort"

	"FundScope/internal/model"
)

// Aggregate sums per-deal results into fund-level totals.
//
// The aggregator contract differs from the per-deal one: an empty or
// all-zero-invested portfolio reports a defined MOIC of 0. The fund IRR can
// still be nil in that case because a zero multiple fails the
// AnnualizedReturn guard.
func Aggregate(results []model.DealResult, exitHorizon int) model.PortfolioSummary {
	s := model.PortfolioSummary{DealCount: len(results)}
	for _, r := range results {
		s.TotalInvested += r.Invested
		s.TotalExitValue += r.ExitValue
	}
	if s.TotalInvested > 0 {
		s.GrossMOIC = s.TotalExitValue / s.TotalInvested
	}
	if rate, ok := AnnualizedReturn(s.GrossMOIC, float64(exitHorizon)); ok {
		s.FundIRR = &rate
	}
	return s
}

// ByEntryYear groups deals by their literal entry year in ascending order,
// emitting per-year invested sums and deal counts plus running cumulative
// totals. Years with no deals do not appear; no zero-filling.
func ByEntryYear(results []model.DealResult) []model.YearBucket {
	totals := make(map[int]*model.YearBucket)
	for _, r := range results {
		b, exists := totals[r.EntryYear]
		if !exists {
			b = &model.YearBucket{Year: r.EntryYear}
			totals[r.EntryYear] = b
		}
		b.Invested += r.Invested
		b.DealCount++
	}

	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)

	buckets := make([]model.YearBucket, 0, len(years))
	var cumInvested float64
	var cumDeals int
	for _, y := range years {
		b := *totals[y]
		cumInvested += b.Invested
		cumDeals += b.DealCount
		b.CumulativeInvested = cumInvested
		b.CumulativeDeals = cumDeals
		buckets = append(buckets, b)
	}
	return buckets
}
