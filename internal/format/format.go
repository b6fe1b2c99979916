// Package format renders amounts, dates and contact details for display.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/nhle/gift-tracker/internal/model"
)

// CurrencyInfo describes a supported display currency.
type CurrencyInfo struct {
	Code   string
	Symbol string
	Name   string
}

// Currencies lists the supported currencies.
var Currencies = []CurrencyInfo{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
}

func currencySymbol(code string) string {
	for _, c := range Currencies {
		if strings.EqualFold(c.Code, code) {
			return c.Symbol
		}
	}
	return "$"
}

// Currency formats amount with the currency symbol, thousands separators and
// two decimals, e.g. "$1,234.56". Unknown codes fall back to "$".
func Currency(amount float64, code string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + currencySymbol(code) + humanize.FormatFloat("#,###.##", amount)
}

// Number formats v with thousands separators.
func Number(v float64) string {
	return humanize.Commaf(v)
}

// Date display formats accepted by the date_format setting.
const (
	DateShort = "MM/DD/YYYY"
	DateEU    = "DD/MM/YYYY"
	DateISO   = "YYYY-MM-DD"
	DateLong  = "MMMM D, YYYY"
)

// DateFormats lists the selectable date formats.
var DateFormats = []string{DateShort, DateEU, DateISO, DateLong}

var dateLayouts = map[string]string{
	DateShort: "01/02/2006",
	DateEU:    "02/01/2006",
	DateISO:   "2006-01-02",
	DateLong:  "January 2, 2006",
}

// parseDate accepts a calendar date or a full timestamp.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders an ISO date string in the given display format. Values that
// do not parse are returned unchanged.
func Date(iso, format string) string {
	t, ok := parseDate(iso)
	if !ok {
		return iso
	}
	return DateOf(t, format)
}

// DateOf renders t in the given display format; unknown formats use
// DateShort.
func DateOf(t time.Time, format string) string {
	layout, ok := dateLayouts[strings.ToUpper(format)]
	if !ok {
		layout = dateLayouts[DateShort]
	}
	return t.Format(layout)
}

// Relative describes t relative to now, e.g. "3 days ago".
func Relative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// DaysUntil returns the number of calendar days from now to the ISO date,
// negative when it has passed. Unparsable dates yield 0.
func DaysUntil(iso string, now time.Time) int {
	t, ok := parseDate(iso)
	if !ok {
		return 0
	}
	day := func(x time.Time) time.Time {
		return time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(math.Round(day(t).Sub(day(now)).Hours() / 24))
}

// DaysUntilNext returns the days from now to the next yearly recurrence of
// the ISO date's month and day, such as a birthday. It is 0 on the day
// itself and -1 for unparsable dates.
func DaysUntilNext(iso string, now time.Time) int {
	t, ok := parseDate(iso)
	if !ok {
		return -1
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = next.AddDate(1, 0, 0)
	}
	return int(math.Round(next.Sub(today).Hours() / 24))
}

// Pluralize returns "<count> <word>", using plural (or word+"s") when
// count is not 1.
func Pluralize(count int, singular, plural string) string {
	word := singular
	if count != 1 {
		word = plural
		if word == "" {
			word = singular + "s"
		}
	}
	return strconv.Itoa(count) + " " + word
}

// Truncate shortens text to max runes, ending with "...".
func Truncate(text string, max int) string {
	const suffix = "..."
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	if max <= len(suffix) {
		return string([]rune(text)[:max])
	}
	return string([]rune(text)[:max-len(suffix)]) + suffix
}

// Percent formats a 0-1 ratio as a percentage with the given decimals.
func Percent(ratio float64, decimals int) string {
	return strconv.FormatFloat(ratio*100, 'f', decimals, 64) + "%"
}

// Address joins a recipient's address into lines. The default country is
// omitted.
func Address(r model.RecipientBase) string {
	var lines []string
	if r.AddressLine1 != "" {
		lines = append(lines, r.AddressLine1)
	}
	if r.AddressLine2 != "" {
		lines = append(lines, r.AddressLine2)
	}

	var cityLine []string
	for _, part := range []string{r.City, r.State, r.PostalCode} {
		if part != "" {
			cityLine = append(cityLine, part)
		}
	}
	if len(cityLine) > 0 {
		lines = append(lines, strings.Join(cityLine, ", "))
	}

	if r.Country != "" && r.Country != model.DefaultCountry {
		lines = append(lines, r.Country)
	}
	return strings.Join(lines, "\n")
}

// Phone formats 10-digit and 1-prefixed 11-digit US numbers. Anything
// else is returned unchanged.
func Phone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)

	switch {
	case len(digits) == 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
	case len(digits) == 11 && digits[0] == '1':
		return fmt.Sprintf("+1 (%s) %s-%s", digits[1:4], digits[4:7], digits[7:])
	default:
		return phone
	}
}

var trackingURLs = map[string]string{
	model.CarrierUSPS:   "https://tools.usps.com/go/TrackConfirmAction?tLabels=%s",
	model.CarrierUPS:    "https://www.ups.com/track?tracknum=%s",
	model.CarrierFedEx:  "https://www.fedex.com/fedextrack/?trknbr=%s",
	model.CarrierAmazon: "https://www.amazon.com/progress-tracker/package/ref=ppx_yo_dt_b_track_package?_encoding=UTF8&itemId=&orderId=&packageIndex=&shipmentId=%s",
	model.CarrierDHL:    "https://www.dhl.com/en/express/tracking.html?AWB=%s",
}

// TrackingURL returns the carrier's tracking page for number, or "" when
// the carrier has none.
func TrackingURL(carrier, number string) string {
	tmpl, ok := trackingURLs[strings.ToLower(carrier)]
	if !ok || number == "" {
		return ""
	}
	return fmt.Sprintf(tmpl, strings.TrimSpace(number))
}
