package domain

import "github.com/dustin/go-humanize"

// FormatMoney renders an amount as $1,234,567.
func FormatMoney(amount int) string {
	if amount < 0 {
		return "-$" + humanize.Comma(int64(-amount))
	}
	return "$" + humanize.Comma(int64(amount))
}
