package models

import "time"

// RiskVolatility mirrors the risk_volatility table.
type RiskVolatility struct {
	CurrencyCode       string    `db:"currency_code"`
	StdDate            time.Time `db:"std_date"`
	CurrentVolatility  float64   `db:"current_volatility"`
	ForecastVolatility float64   `db:"forecast_volatility"`
}
