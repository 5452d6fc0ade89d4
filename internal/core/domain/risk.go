package domain

import "time"

// RiskInfo is the published volatility snapshot for a currency on a date.
type RiskInfo struct {
	CurrencyCode       string    `json:"currencyCode"`
	StdDate            time.Time `json:"stdDate"`
	CurrentVolatility  float64   `json:"currentVolatility"`
	ForecastVolatility float64   `json:"forecastVolatility"`
}
