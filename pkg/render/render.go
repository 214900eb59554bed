package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"privat-rates/internal/entity"

	"github.com/shopspring/decimal"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var Formats = []string{FormatText, FormatJSON}

func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Write prints rs to w followed by a newline.
func Write(w io.Writer, format string, rs entity.ResultSet) error {
	switch format {
	case FormatText, "":
		_, err := fmt.Fprintln(w, Text(rs))
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	default:
		return fmt.Errorf("unknown output format %q, expected one of %s", format, strings.Join(Formats, ", "))
	}
}

// Text renders rs as a list of single-entry mappings:
// [{'18.10.2026': {'EUR': {'sale': 40.0, 'purchase': 39.5}}}]
func Text(rs entity.ResultSet) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, day := range rs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "{'%s': %s}", day.Date, dailyRates(day.Rates))
	}
	b.WriteByte(']')
	return b.String()
}

func dailyRates(rates entity.DailyRates) string {
	currencies := make([]string, 0, len(rates))
	for currency := range rates {
		currencies = append(currencies, string(currency))
	}
	sort.Strings(currencies)

	parts := make([]string, 0, len(currencies))
	for _, currency := range currencies {
		rate := rates[entity.Currency(currency)]
		parts = append(parts, fmt.Sprintf("'%s': {'sale': %s, 'purchase': %s}",
			currency, number(rate.Sale), number(rate.Purchase)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func number(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
