package salary

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders a salary figure for display, e.g. "USD 120,000".
// Unrecognized currency codes fall back to USD.
func FormatAmount(v float64, code string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		unit = currency.USD
	}
	return printer.Sprintf("%v %v", unit, number.Decimal(v, number.MaxFractionDigits(0)))
}
