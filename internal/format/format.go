// Package format renders job values for display.
package format

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cuongbtq/jobboard/internal/domain"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

const day = 24 * time.Hour

// currencies rendered under their own code; anything else is shown as USD
var displayCurrencies = []currency.Unit{
	currency.USD,
	currency.MustParseISO("GHS"),
	currency.MustParseISO("NGN"),
	currency.ZAR,
}

// Salary renders a compact band such as "$120.0K - $180.0K/year"
func Salary(s domain.Salary) string {
	if s.Min == s.Max {
		return fmt.Sprintf("%s/%s", compactAmount(s.Min), s.Period)
	}
	return fmt.Sprintf("%s - %s/%s", compactAmount(s.Min), compactAmount(s.Max), s.Period)
}

func compactAmount(amount int) string {
	if amount >= 1000 {
		return fmt.Sprintf("$%.1fK", float64(amount)/1000)
	}
	return fmt.Sprintf("$%d", amount)
}

// SalaryRange renders a full band with grouped digits, e.g. "GHS 6,000 - GHS 9,000 per month"
func SalaryRange(min, max int, code, period string) string {
	return fmt.Sprintf("%s - %s per %s", Amount(min, code), Amount(max, code), period)
}

// Amount renders a whole amount in the currency with ISO code. Codes outside
// USD, GHS, NGN and ZAR fall back to USD.
func Amount(amount int, code string) string {
	unit := displayUnit(code)
	if unit == currency.USD {
		return printer.Sprintf("$%d", amount)
	}
	return printer.Sprintf("%s %d", unit.String(), amount)
}

func displayUnit(code string) currency.Unit {
	unit, err := currency.ParseISO(code)
	if err != nil || !slices.Contains(displayCurrencies, unit) {
		return currency.USD
	}
	return unit
}

// RelativeDate describes how long ago d was relative to now
func RelativeDate(d domain.Date, now time.Time) string {
	diff := now.Sub(d.Time)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(float64(diff) / float64(day)))

	switch {
	case days <= 1:
		return "Today"
	case days == 2:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days-1)
	case days <= 30:
		return plural(int(math.Ceil(float64(days)/7)), "week")
	case days <= 365:
		return plural(int(math.Ceil(float64(days)/30)), "month")
	default:
		return d.Format("Jan 2, 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Truncate cuts text to at most n characters and marks the cut with "..."
func Truncate(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "..."
}

// CapitalizeFirst upper-cases the first letter and lower-cases the rest
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
