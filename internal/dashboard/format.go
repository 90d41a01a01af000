package dashboard

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders amount in rupees with Indian digit grouping: the last
// three digits, then groups of two (₹12,34,567.5). At most two decimals are
// kept and trailing zeros dropped.
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	frac := d.Sub(whole)

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("₹")
	b.WriteString(groupIndian(whole.String()))
	if !frac.IsZero() {
		// "0.5" -> ".5"
		b.WriteString(strings.TrimPrefix(frac.String(), "0"))
	}
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
