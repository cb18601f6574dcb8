package ledger

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount as US dollars, e.g. 1234.5 -> "$1,234.50"
// and -120 -> "-$120.00".
func FormatUSD(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}

	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// Beyond int64 range; skip grouping.
		return sign + "$" + fixed
	}
	return sign + "$" + humanize.Comma(n) + "." + frac
}

// FormatAccounting renders negatives in parentheses, e.g. -120 ->
// "($120.00)", as financial statements do.
func FormatAccounting(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "(" + FormatUSD(amount.Abs()) + ")"
	}
	return FormatUSD(amount)
}

// ParseAmount parses a user-entered decimal amount such as "10.50".
// Leading "$" and thousands separators are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}
