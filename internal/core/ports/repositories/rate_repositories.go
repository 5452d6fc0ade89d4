package repositories

import (
	"context"

	"github.com/haebit-bank/fx-backend/internal/core/domain"
)

// RateRepository provides read access to published conversion rates.
// Rate rows are written by an external ingestion process; this side only reads.
type RateRepository interface {
	// FindLatestRate retrieves the most recently published rate for a currency.
	// Returns apperrors.ErrNotFound when no rate has been published.
	FindLatestRate(ctx context.Context, currencyCode string) (*domain.Rate, error)

	// ListLatestRates retrieves the latest rate of every published currency.
	ListLatestRates(ctx context.Context) ([]domain.Rate, error)

	// ListRateHistory retrieves past rates for one currency, newest first.
	ListRateHistory(ctx context.Context, currencyCode string, limit int) ([]domain.Rate, error)
}
