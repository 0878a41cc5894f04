package report

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// Thousands formats v with comma digit grouping and a fixed number of decimals.
func Thousands(v float64, decimals int) string {
	return numberPrinter.Sprintf("%."+strconv.Itoa(decimals)+"f", v)
}
