package output

import (
	"fmt"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// Assumptions lists the modeling assumptions rendered in detailed outputs.
func Assumptions(year domain.Year) []string {
	vdu, err := calculation.VDU(year)
	if err != nil {
		return nil
	}
	mma, _ := calculation.MMA(year)
	minPSD, _ := calculation.MinimumAnnualPSD(year)
	return []string{
		fmt.Sprintf("Average wage (VDU) %d: %s", int(year), FormatCurrency(vdu)),
		fmt.Sprintf("Minimum monthly wage (MMA) %d: %s", int(year), FormatCurrency(mma)),
		fmt.Sprintf("Minimum annual PSD: %s (PSD rate on 12 x MMA)", FormatCurrency(minPSD)),
		"IV: GPM on 70% of income, VSD and PSD on 63% of income, no NPD",
		"Sources share the GPM ladder in the order MB, IV, employment",
		"Dividends: 15% GPM after MB profit tax, outside the progressive ladder",
		"Twelve equal months; brackets follow the running annual total",
	}
}
