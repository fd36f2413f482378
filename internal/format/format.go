// Package format renders amounts and dates the way the Indonesian locale of
// the apps does.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var longMonths = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var shortMonths = []string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// Rupiah formats an amount as "Rp 1.234.567". Fractional digits are rare in
// IDR amounts and only rendered when present, with a comma as the decimal
// separator.
func Rupiah(amount decimal.Decimal) string {
	return "Rp " + group(amount)
}

// Date renders a timestamp as a short Indonesian date, e.g. "2 Jan 2026".
func Date(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[int(t.Month())-1], t.Year())
}

// LongDate renders a timestamp as a long Indonesian date, e.g. "2 Januari 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), longMonths[int(t.Month())-1], t.Year())
}

// MonthName returns the Indonesian name of a month.
func MonthName(m time.Month) string {
	return longMonths[int(m)-1]
}

// group inserts "." as the thousands separator, mirroring
// Number.toLocaleString('id-ID').
func group(amount decimal.Decimal) string {
	s := amount.String()

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	integer, fraction, hasFraction := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if hasFraction {
		out += "," + fraction
	}

	if negative {
		out = "-" + out
	}

	return out
}
