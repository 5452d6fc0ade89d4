package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate mirrors the exchange_rates table. Append-only; the newest row
// per currency is the applicable rate.
type ExchangeRate struct {
	CurrencyCode string          `db:"currency_code"`
	BaseRate     decimal.Decimal `db:"base_rate"`
	StdDate      time.Time       `db:"std_date"`
}
