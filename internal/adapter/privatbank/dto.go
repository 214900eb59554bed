package privatbank

import "github.com/shopspring/decimal"

// ExchangeRates is the archive payload of /p24api/exchange_rates.
// ExchangeRate is a pointer so a payload without the field can be told
// apart from an empty list.
type ExchangeRates struct {
	Date            string  `json:"date"`
	Bank            string  `json:"bank"`
	BaseCurrency    int     `json:"baseCurrency"`
	BaseCurrencyLit string  `json:"baseCurrencyLit"`
	ExchangeRate    *[]Rate `json:"exchangeRate"`
}

type Rate struct {
	BaseCurrency   string           `json:"baseCurrency"`
	Currency       string           `json:"currency"`
	SaleRateNB     *decimal.Decimal `json:"saleRateNB"`
	PurchaseRateNB *decimal.Decimal `json:"purchaseRateNB"`
	SaleRate       *decimal.Decimal `json:"saleRate"`
	PurchaseRate   *decimal.Decimal `json:"purchaseRate"`
}
