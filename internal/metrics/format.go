package metrics

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const changeSuffix = " from last month"

var printer = message.NewPrinter(language.English)

// FormatValue renders value the way the overview card for title shows it.
func FormatValue(title Title, value float64) string {
	switch title {
	case Revenue:
		return printer.Sprintf("$%d", int64(math.Round(value)))
	case Users, Conversions:
		return printer.Sprintf("%d", int64(math.Round(value)))
	case Growth:
		return printer.Sprintf("%.1f%%", value)
	default:
		return printer.Sprintf("%.2f", value)
	}
}

// FormatChange always carries an explicit sign, e.g. "+12.5% from last month".
func FormatChange(changePercent float64) string {
	sign := ""
	if changePercent >= 0 {
		sign = "+"
	}
	return sign + printer.Sprintf("%.1f%%", changePercent) + changeSuffix
}
