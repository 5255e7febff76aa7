package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/mokesciai/internal/optimizer"
)

// FormatAllocation renders an optimizer result: the proposed split, the
// annual tax before and after, and the savings.
func FormatAllocation(r *optimizer.Result) string {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "OPTIMAL ALLOCATION OF EXTRA INCOME")
	fmt.Fprintln(&buf, "==================================")
	if r == nil || !r.Applied {
		fmt.Fprintln(&buf, "No extra income to distribute.")
		return buf.String()
	}
	a := r.Allocation
	fmt.Fprintf(&buf, "IV (individual activity): %s / month\n", FormatCurrency(a.IVMonthly))
	fmt.Fprintf(&buf, "MB income:                %s / month\n", FormatCurrency(a.MBMonthly))
	fmt.Fprintf(&buf, "MB dividends:             %s / month\n", FormatCurrency(a.MBDividendsMonthly))
	fmt.Fprintf(&buf, "Total:                    %s / month\n", FormatCurrency(a.Total()))
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Annual tax now:           %s\n", FormatCurrency(r.Previous))
	fmt.Fprintf(&buf, "Annual tax optimized:     %s\n", FormatCurrency(a.AnnualTax))
	if r.Savings.IsPositive() {
		fmt.Fprintf(&buf, "Savings:                  %s / year\n", FormatCurrency(r.Savings))
	} else {
		fmt.Fprintln(&buf, "The current allocation is already optimal.")
	}
	fmt.Fprintf(&buf, "(%d allocations evaluated)\n", r.Evaluations)
	return buf.String()
}
