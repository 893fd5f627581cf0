package helper

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatAmount renders an integer-cents amount as a display string for
// notices ("$25.00"). Only USD display is needed; totals are kept in
// cents everywhere else.
func FormatAmount(cents int64) string {
	return moneyPrinter.Sprintf("$%.2f", float64(cents)/100)
}
