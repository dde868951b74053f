// Package format maps domain values to display strings. Everything here
// is pure and deterministic; unknown inputs degrade to a neutral
// fallback rather than an error.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/inada-mfg/quote-cli/internal/model"
)

// Defaults used when the caller does not override locale or currency.
const (
	DefaultLocale   = "ja-JP"
	DefaultCurrency = "JPY"
)

// Currency renders an amount as a localized currency string. The
// currency's own fraction rules apply (JPY renders with no fractional
// digits). Unknown codes or locales fall back to a plain "CODE amount"
// rendering instead of failing.
func Currency(amount float64, code, locale string) string {
	if code == "" {
		code = DefaultCurrency
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %.2f", code, amount)
	}
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}

// Percentage renders a 0-1 ratio as a percentage with the given number
// of decimals.
func Percentage(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value*100)
}

var dateLayouts = map[string]struct{ long, short string }{
	"ja": {"2006/01/02 15:04", "2006/01/02"},
	"en": {"01/02/2006 15:04", "01/02/2006"},
	"de": {"02.01.2006 15:04", "02.01.2006"},
}

func layoutsFor(locale string) struct{ long, short string } {
	tag, err := language.Parse(locale)
	if err != nil {
		return dateLayouts["ja"]
	}
	base, _ := tag.Base()
	if l, okBase := dateLayouts[base.String()]; okBase {
		return l
	}
	return dateLayouts["ja"]
}

// Date renders a timestamp as a localized date and time.
func Date(t time.Time, locale string) string {
	return t.Format(layoutsFor(locale).long)
}

// DateShort renders a timestamp as a localized date without the time.
func DateShort(t time.Time, locale string) string {
	return t.Format(layoutsFor(locale).short)
}

// ParseTimestamp parses a backend timestamp (RFC 3339). The zero time
// is returned for anything unparseable so views can render a blank.
func ParseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// RelativeTime is RelativeTimeSince against the current clock.
func RelativeTime(t time.Time) string {
	return RelativeTimeSince(t, time.Now())
}

// RelativeTimeSince renders a human relative phrase. Each threshold is
// a strict > 1 ratio to the unit, truncated toward zero, so 90 seconds
// is "1 minutes ago" and exactly one minute is "60 seconds ago".
func RelativeTimeSince(t, now time.Time) string {
	seconds := int64(math.Floor(now.Sub(t).Seconds()))

	if interval := float64(seconds) / 31536000; interval > 1 {
		return fmt.Sprintf("%d years ago", int64(interval))
	}
	if interval := float64(seconds) / 2592000; interval > 1 {
		return fmt.Sprintf("%d months ago", int64(interval))
	}
	if interval := float64(seconds) / 86400; interval > 1 {
		return fmt.Sprintf("%d days ago", int64(interval))
	}
	if interval := float64(seconds) / 3600; interval > 1 {
		return fmt.Sprintf("%d hours ago", int64(interval))
	}
	if interval := float64(seconds) / 60; interval > 1 {
		return fmt.Sprintf("%d minutes ago", int64(interval))
	}
	return fmt.Sprintf("%d seconds ago", seconds)
}

// Truncate shortens text to maxLen runes, appending "..." when cut.
// Cuts land on rune boundaries so multibyte text stays valid UTF-8.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// FileSize renders a byte count in the largest fitting unit, rounded
// to two decimals.
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 bytes"
	}
	const k = 1024
	sizes := []string{"bytes", "kb", "mb", "gb"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	v := float64(bytes) / math.Pow(k, float64(i))
	return fmt.Sprintf("%s %s", strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.2f", v), "0"), ".0"), sizes[i])
}

// QuoteStatusColor returns the badge class for a quote status, with a
// neutral gray for anything unrecognized.
func QuoteStatusColor(status model.QuoteStatus) string {
	switch status {
	case model.QuoteStatusGenerated:
		return "bg-blue-100 text-blue-800"
	case model.QuoteStatusReviewed:
		return "bg-yellow-100 text-yellow-800"
	case model.QuoteStatusApproved:
		return "bg-green-100 text-green-800"
	case model.QuoteStatusRejected:
		return "bg-red-100 text-red-800"
	case model.QuoteStatusFinalized:
		return "bg-purple-100 text-purple-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}

// QuoteStatusLabel returns the human label for a quote status.
func QuoteStatusLabel(status model.QuoteStatus) string {
	switch status {
	case model.QuoteStatusGenerated:
		return "Generated"
	case model.QuoteStatusReviewed:
		return "Reviewed"
	case model.QuoteStatusApproved:
		return "Approved"
	case model.QuoteStatusRejected:
		return "Rejected"
	case model.QuoteStatusFinalized:
		return "Finalized"
	default:
		return "Unknown"
	}
}

// DrawingStatusColor returns the badge class for a drawing status.
func DrawingStatusColor(status model.DrawingStatus) string {
	switch status {
	case model.DrawingStatusUploaded:
		return "bg-blue-100 text-blue-800"
	case model.DrawingStatusProcessing:
		return "bg-yellow-100 text-yellow-800"
	case model.DrawingStatusAnalyzed:
		return "bg-green-100 text-green-800"
	case model.DrawingStatusFailed:
		return "bg-red-100 text-red-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}

// DrawingStatusLabel returns the human label for a drawing status.
func DrawingStatusLabel(status model.DrawingStatus) string {
	switch status {
	case model.DrawingStatusUploaded:
		return "Uploaded"
	case model.DrawingStatusProcessing:
		return "Processing"
	case model.DrawingStatusAnalyzed:
		return "Analyzed"
	case model.DrawingStatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// ConfidenceColor maps a 0-100 confidence score to its badge class:
// >= 80 green, >= 60 yellow, else red.
func ConfidenceColor(confidence float64) string {
	if confidence >= 80 {
		return "bg-green-100 text-green-800"
	}
	if confidence >= 60 {
		return "bg-yellow-100 text-yellow-800"
	}
	return "bg-red-100 text-red-800"
}

// ConfidenceLabel maps a confidence score to High/Medium/Low.
func ConfidenceLabel(confidence float64) string {
	if confidence >= 80 {
		return "High"
	}
	if confidence >= 60 {
		return "Medium"
	}
	return "Low"
}

// ProfitMargin returns (selling - cost) / cost * 100. A zero cost
// returns 0 rather than dividing by zero.
func ProfitMargin(sellingPrice, costPrice float64) float64 {
	if costPrice == 0 {
		return 0
	}
	return (sellingPrice - costPrice) / costPrice * 100
}

// ComplexityLabel describes a 1-10 complexity rating.
func ComplexityLabel(complexity int) string {
	switch complexity {
	case 1:
		return "Very Simple"
	case 2:
		return "Simple"
	case 3:
		return "Easy"
	case 4:
		return "Moderate-Easy"
	case 5:
		return "Moderate"
	case 6:
		return "Moderate-Complex"
	case 7:
		return "Complex"
	case 8:
		return "Very Complex"
	case 9:
		return "Extremely Complex"
	case 10:
		return "Extremely Complex (Expert)"
	default:
		return "Unknown"
	}
}
