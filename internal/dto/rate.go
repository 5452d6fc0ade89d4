package dto

import (
	"github.com/haebit-bank/fx-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResponse is one published conversion rate.
type RateResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	BaseRate     decimal.Decimal `json:"baseRate"`
	StdDate      string          `json:"stdDate"`
}

// ToRateResponse maps a domain rate to the response shape.
func ToRateResponse(r domain.Rate) RateResponse {
	return RateResponse{
		CurrencyCode: r.CurrencyCode,
		BaseRate:     r.BaseRate,
		StdDate:      r.StdDate.UTC().Format("2006-01-02"),
	}
}

// ToRateResponses maps a slice of domain rates.
func ToRateResponses(rates []domain.Rate) []RateResponse {
	out := make([]RateResponse, len(rates))
	for i, r := range rates {
		out[i] = ToRateResponse(r)
	}
	return out
}

// RiskResponse is the volatility snapshot for a currency.
type RiskResponse struct {
	CurrencyCode       string  `json:"currencyCode"`
	StdDate            string  `json:"stdDate"`
	CurrentVolatility  float64 `json:"currentVolatility"`
	ForecastVolatility float64 `json:"forecastVolatility"`
}

// ToRiskResponse maps a domain risk snapshot to the response shape.
func ToRiskResponse(r *domain.RiskInfo) RiskResponse {
	return RiskResponse{
		CurrencyCode:       r.CurrencyCode,
		StdDate:            r.StdDate.UTC().Format("2006-01-02"),
		CurrentVolatility:  r.CurrentVolatility,
		ForecastVolatility: r.ForecastVolatility,
	}
}
