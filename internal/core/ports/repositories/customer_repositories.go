package repositories

import (
	"context"
	"time"

	"github.com/haebit-bank/fx-backend/internal/core/domain"
)

// CustomerRepository provides read access to customer records plus the
// last-login bookkeeping write.
type CustomerRepository interface {
	// FindByCustID retrieves a customer by login identifier.
	FindByCustID(ctx context.Context, custID string) (*domain.Customer, error)

	// FindNameByCustCode retrieves the customer's display name.
	FindNameByCustCode(ctx context.Context, custCode string) (string, error)

	// SaveLastLogin records a successful login timestamp.
	SaveLastLogin(ctx context.Context, custID string, at time.Time) error

	// UpdateDeviceID rebinds the customer's registered device after SMS
	// verification succeeds.
	UpdateDeviceID(ctx context.Context, custCode string, deviceID string) error
}

// RiskRepository reads published currency volatility snapshots.
type RiskRepository interface {
	// FindRisk retrieves the volatility snapshot for a currency. When date is
	// nil the most recent snapshot is returned.
	FindRisk(ctx context.Context, currencyCode string, date *time.Time) (*domain.RiskInfo, error)
}
