package services

import (
	"context"
	"time"

	"github.com/haebit-bank/fx-backend/internal/core/domain"
)

// RateSvcFacade exposes read-only access to published conversion rates.
type RateSvcFacade interface {
	// LatestRate resolves the latest applicable rate for a foreign currency.
	LatestRate(ctx context.Context, currencyCode string) (*domain.Rate, error)

	// ListLatestRates returns the newest rate of every published currency.
	ListLatestRates(ctx context.Context) ([]domain.Rate, error)

	// GetRateHistory returns past rates for one currency, newest first.
	GetRateHistory(ctx context.Context, currencyCode string, limit int) ([]domain.Rate, error)
}

// RiskSvcFacade exposes currency volatility lookups.
type RiskSvcFacade interface {
	// GetRiskInfo returns the volatility snapshot for a currency; date nil
	// means the most recent one.
	GetRiskInfo(ctx context.Context, currencyCode string, date *time.Time) (*domain.RiskInfo, error)
}
