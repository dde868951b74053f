// Package render produces the terminal views of the quote pages. All
// functions build strings only; printing is the caller's concern.
package render

import (
	"fmt"
	"strings"

	"github.com/inada-mfg/quote-cli/internal/format"
	"github.com/inada-mfg/quote-cli/internal/model"
)

// Options parameterize the locale of rendered views.
type Options struct {
	Locale string
}

func (o Options) locale() string {
	if o.Locale == "" {
		return format.DefaultLocale
	}
	return o.Locale
}

const barWidth = 20

// confidenceBar draws a fixed-width bar filled proportionally to a
// 0-100 score.
func confidenceBar(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := int(score / 100 * barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %-22s %s\n", label, value)
}

// Detail renders the full quote-detail view: cost breakdown, extracted
// specs, optional analysis, and the summary sidebar content.
func Detail(q *model.QuotationResult, opts Options) string {
	loc := opts.locale()
	var b strings.Builder

	fmt.Fprintf(&b, "Quotation %s\n\n", format.Truncate(q.ID, 12))

	b.WriteString("Cost breakdown\n")
	line(&b, "material cost", format.Currency(q.Breakdown.Material.TotalCost, q.Currency, loc))
	line(&b, "labor cost", format.Currency(q.Breakdown.Labor.TotalCost, q.Currency, loc))
	line(&b, fmt.Sprintf("overhead (%.0f%%)", q.Breakdown.Overhead.Percentage),
		format.Currency(q.Breakdown.Overhead.TotalCost, q.Currency, loc))
	line(&b, "base cost", format.Currency(q.BaseCost, q.Currency, loc))
	line(&b, "market adjustment", fmt.Sprintf("%.2fx (%s)", q.MarketAdjustment.Factor, q.MarketAdjustment.Reason))
	line(&b, "final price", format.Currency(q.FinalPrice, q.Currency, loc))
	b.WriteString("\n")

	b.WriteString("Extracted specifications\n")
	line(&b, "material", q.ExtractedSpecs.Material)
	line(&b, "quantity", fmt.Sprintf("%g %s", q.ExtractedSpecs.MaterialQuantity, q.ExtractedSpecs.MaterialUnit))
	d := q.ExtractedSpecs.Dimensions
	line(&b, "dimensions", fmt.Sprintf("%gx%gx%g %s", d.Length, d.Width, d.Height, d.Unit))
	line(&b, "complexity", fmt.Sprintf("%d/10 (%s)", q.ExtractedSpecs.Complexity,
		format.ComplexityLabel(q.ExtractedSpecs.Complexity)))
	if len(q.ExtractedSpecs.ManufacturingProcess) > 0 {
		line(&b, "processes", strings.Join(q.ExtractedSpecs.ManufacturingProcess, ", "))
	}
	if len(q.ExtractedSpecs.SpecialRequirements) > 0 {
		line(&b, "special requirements", strings.Join(q.ExtractedSpecs.SpecialRequirements, ", "))
	}
	b.WriteString("\n")

	if q.Analysis != "" {
		b.WriteString("Cost analysis\n")
		fmt.Fprintf(&b, "  %s\n\n", q.Analysis)
	}

	b.WriteString("Summary\n")
	line(&b, "quote id", q.ID)
	line(&b, "status", format.QuoteStatusLabel(q.Status))
	line(&b, "confidence", fmt.Sprintf("%s %.0f%% (%s)",
		confidenceBar(q.ConfidenceScore), q.ConfidenceScore, format.ConfidenceLabel(q.ConfidenceScore)))
	if created := format.ParseTimestamp(q.CreatedAt); !created.IsZero() {
		line(&b, "created", format.Date(created, loc))
	}
	if updated := format.ParseTimestamp(q.UpdatedAt); !updated.IsZero() {
		line(&b, "updated", format.Date(updated, loc))
	}
	b.WriteString("\n")

	b.WriteString("Market adjustment\n")
	line(&b, "factor", fmt.Sprintf("%.2fx", q.MarketAdjustment.Factor))
	line(&b, "reason", q.MarketAdjustment.Reason)
	line(&b, "data source", q.MarketAdjustment.DataSource)

	return b.String()
}

// Table renders quotes as rows without pagination metadata.
func Table(quotes []model.QuotationResult, opts Options) string {
	loc := opts.locale()
	var b strings.Builder

	fmt.Fprintf(&b, "%-14s %-11s %14s %12s %-18s\n", "ID", "STATUS", "FINAL PRICE", "CONFIDENCE", "CREATED")
	for _, q := range quotes {
		created := ""
		if t := format.ParseTimestamp(q.CreatedAt); !t.IsZero() {
			created = format.DateShort(t, loc)
		}
		fmt.Fprintf(&b, "%-14s %-11s %14s %11.0f%% %-18s\n",
			format.Truncate(q.ID, 12),
			format.QuoteStatusLabel(q.Status),
			format.Currency(q.FinalPrice, q.Currency, loc),
			q.ConfidenceScore,
			created,
		)
	}
	return b.String()
}

// List renders a page of quotes plus its pagination footer.
func List(quotes []model.QuotationResult, p model.Pagination, opts Options) string {
	var b strings.Builder
	b.WriteString(Table(quotes, opts))
	fmt.Fprintf(&b, "\npage %d of %d (%d total)\n", p.Page, p.Pages, p.Total)
	return b.String()
}
