// Package format holds the numeric-to-string conversions used by report
// output. The JSON API never applies these; rendering is the caller's
// concern.
package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Currency renders a dollar amount with thousand separators, keeping at most
// three significant decimals ("$1,500,000", "$0.5").
func Currency(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 3)
}

// Percent renders a 0-100 percentage value ("20.00%").
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Multiple renders a MOIC ("3.00x").
func Multiple(v float64) string {
	return fmt.Sprintf("%.2fx", v)
}

// Rate renders an annualized return fraction as a percentage, or "N/A" when
// the rate is undefined. The undefined case must never show as a number.
func Rate(rate *float64) string {
	if rate == nil {
		return "N/A"
	}
	return Percent(*rate * 100)
}
