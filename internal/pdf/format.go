package pdf

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money formats v with thousands separators and exactly two decimals.
// Quantities use the same format.
func Money(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// Percent formats a rate such as 0.07 as "7".
func Percent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).String()
}

// FileName is the deterministic output name for an invoice number.
func FileName(invoiceNum string) string {
	return "invoice_" + sanitizeFileName(invoiceNum) + ".pdf"
}

func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "unnumbered"
	}
	return b.String()
}
