// Package format renders amounts and labels for display.
package format

import (
	"strconv"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// CurrencySymbol is appended to VND amounts.
const CurrencySymbol = "₫"

// VND returns an amount rounded to whole dong with dot thousands separators
// and the dong symbol (e.g., "43.957.944 ₫"). Non-finite values render as zero.
func VND(amount float64) string {
	return Number(amount) + " " + CurrencySymbol
}

// VNDCode is VND with the ISO code in place of the symbol, for renderers
// limited to ASCII glyphs (e.g., "43.957.944 VND").
func VNDCode(amount float64) string {
	return Number(amount) + " VND"
}

// Number returns an amount rounded to whole units with dot thousands
// separators (e.g., "-1.234.568").
func Number(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return "0"
	}

	rounded := decimal.NewFromFloat(amount).Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + groupThousands(rounded.Abs().String())
}

// Rate returns an annual percentage rate as shown next to a loan, e.g. "10,5 %/năm".
func Rate(annualRatePercent float64) string {
	value := strconv.FormatFloat(annualRatePercent, 'f', -1, 64)
	return strings.Replace(value, ".", ",", 1) + " %/năm"
}

// Term returns a loan term in months, e.g. "12 tháng".
func Term(months int) string {
	return strconv.Itoa(months) + " tháng"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var builder strings.Builder
	for i, digit := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			builder.WriteByte('.')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
