package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/GTDGit/phone_price_api/internal/catalog"
)

var (
	accent = lipgloss.Color("#2563EB")
	dim    = lipgloss.Color("#6B7280")
	good   = lipgloss.Color("#22C55E")
	bad    = lipgloss.Color("#EF4444")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	bestStyle   = lipgloss.NewStyle().Bold(true).Foreground(good)
	warnStyle   = lipgloss.NewStyle().Foreground(bad)
)

func renderStructured(w io.Writer, format string, v any) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

// formatPrice renders an amount with thousands separators, or "n/a".
func formatPrice(p catalog.Price, currency string) string {
	v, ok := p.Amount()
	if !ok {
		return "n/a"
	}
	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if currency == "" {
		return b.String()
	}
	return currency + " " + b.String()
}

func offerCurrency(offers []catalog.EnrichedOffer) string {
	if len(offers) == 0 {
		return ""
	}
	return offers[0].Currency
}

func renderAggregates(w io.Writer, title string, aggs []catalog.PhoneAggregate) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if len(aggs) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No phones match."))
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("#", "PHONE", "CATEGORY", "YEAR", "LOWEST", "HIGHEST", "SHOPS", "SCORE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i, a := range aggs {
		year := "-"
		if a.Phone.ReleaseYear != nil {
			year = strconv.Itoa(*a.Phone.ReleaseYear)
		}
		currency := offerCurrency(a.Offers)
		lowest := formatPrice(a.MinPrice(), currency)
		if a.FetchFailed {
			lowest = warnStyle.Render("unavailable")
		}
		t.Row(
			strconv.Itoa(i+1),
			a.Phone.DisplayName(),
			string(a.Phone.Category),
			year,
			lowest,
			formatPrice(a.MaxPrice(), currency),
			strconv.Itoa(a.Summary.Count),
			strconv.Itoa(a.RecommendationScore),
		)
	}
	fmt.Fprintln(w, t.Render())
}

func shopLabel(o catalog.EnrichedOffer) string {
	if o.ShopDetails == nil {
		return fmt.Sprintf("shop #%d", o.ShopID)
	}
	label := o.ShopDetails.Name
	if o.ShopDetails.City != nil && *o.ShopDetails.City != "" {
		label += ", " + *o.ShopDetails.City
	}
	if o.ShopDetails.IsVerified {
		label += " ✓"
	}
	return label
}

func renderComparison(w io.Writer, columns []catalog.Comparison) {
	for i, col := range columns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, titleStyle.Render(col.Phone.DisplayName()))
		switch {
		case col.FetchFailed:
			fmt.Fprintln(w, warnStyle.Render("  prices unavailable"))
			continue
		case len(col.Offers) == 0:
			fmt.Fprintln(w, dimStyle.Render("  no prices listed"))
			continue
		}
		for j, o := range col.Offers {
			line := fmt.Sprintf("  %-14s %s", formatPrice(catalog.Known(o.Price), o.Currency), shopLabel(o))
			if !o.IsActive {
				line += dimStyle.Render(" (inactive)")
			}
			if j == 0 && col.Best != nil {
				line = bestStyle.Render(line + "  ★ best")
			}
			fmt.Fprintln(w, line)
		}
	}
}
