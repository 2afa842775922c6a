package format

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"FundScope/internal/model"
)

// PortfolioReport renders a user's computed portfolio as a plain-text block
// for the snapshot log.
func PortfolioReport(view *model.PortfolioView) string {
	var b strings.Builder

	s := view.Summary
	b.WriteString("Portfolio summary\n")
	b.WriteString(fmt.Sprintf("  Deals:            %s\n", humanize.Comma(int64(s.DealCount))))
	b.WriteString(fmt.Sprintf("  Total invested:   %s\n", Currency(s.TotalInvested)))
	b.WriteString(fmt.Sprintf("  Gross exit value: %s\n", Currency(s.TotalExitValue)))
	b.WriteString(fmt.Sprintf("  Gross MOIC:       %s\n", Multiple(s.GrossMOIC)))
	b.WriteString(fmt.Sprintf("  Fund IRR:         %s\n", Rate(s.FundIRR)))

	if len(view.Scenarios) > 0 {
		b.WriteString("Scenarios\n")
		for _, sc := range view.Scenarios {
			b.WriteString(fmt.Sprintf("  %-12s x%.2f  gev=%s  carry=%s  net=%s  irr=%s\n",
				sc.Label, sc.Multiplier,
				Currency(sc.GrossExitValue),
				Currency(sc.CarryAmount),
				Currency(sc.NetToInvestors),
				Rate(sc.ScenarioIRR)))
		}
	}

	f := view.Fees
	b.WriteString("Fees\n")
	b.WriteString(fmt.Sprintf("  Admin %s | Operations %s | Management %s | Total %s\n",
		Currency(f.AdminCost), Currency(f.OperationsFee),
		Currency(f.ManagementFee), Currency(f.Total)))

	return b.String()
}
