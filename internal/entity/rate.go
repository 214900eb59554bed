package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the DD.MM.YYYY form used both by the upstream API and as
// the key of every result entry.
const DateLayout = "02.01.2006"

type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
)

var SupportedCurrencies = []Currency{EUR, USD}

func (c Currency) IsSupported() bool {
	for _, supported := range SupportedCurrencies {
		if c == supported {
			return true
		}
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}

type ExchangeRate struct {
	Sale     decimal.Decimal `json:"sale"`
	Purchase decimal.Decimal `json:"purchase"`
}

// MarshalJSON writes the rates as JSON numbers rather than decimal's
// default quoted strings.
func (r ExchangeRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Sale     json.Number `json:"sale"`
		Purchase json.Number `json:"purchase"`
	}{
		Sale:     json.Number(r.Sale.String()),
		Purchase: json.Number(r.Purchase.String()),
	})
}

type DailyRates map[Currency]ExchangeRate

type DailyResult struct {
	Date  string
	Rates DailyRates
}

func NewDailyResult(date time.Time, rates DailyRates) DailyResult {
	return DailyResult{
		Date:  FormatDate(date),
		Rates: rates,
	}
}

func (d DailyResult) MarshalJSON() ([]byte, error) {
	rates := d.Rates
	if rates == nil {
		rates = DailyRates{}
	}
	return json.Marshal(map[string]DailyRates{d.Date: rates})
}

// ResultSet keeps one single-entry mapping per day, oldest first.
type ResultSet []DailyResult

func (rs ResultSet) MarshalJSON() ([]byte, error) {
	if rs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]DailyResult(rs))
}

func (rs ResultSet) Dates() []string {
	dates := make([]string, 0, len(rs))
	for _, day := range rs {
		dates = append(dates, day.Date)
	}
	return dates
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}
