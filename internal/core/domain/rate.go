package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is one published KRW conversion rate for a foreign currency.
// Rows are append-only; the engine only ever reads the latest one per currency.
type Rate struct {
	CurrencyCode string          `json:"currencyCode"`
	BaseRate     decimal.Decimal `json:"baseRate"` // KRW per one unit of the foreign currency
	StdDate      time.Time       `json:"stdDate"`
}
