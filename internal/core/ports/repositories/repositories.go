package repositories

import (
	"context"
	"time"
)

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo  AccountRepositoryWithTx
	RateRepo     RateRepository
	LedgerRepo   LedgerRepositoryFacade
	TermsRepo    TermsRepository
	OutboxRepo   OutboxRepository
	CustomerRepo CustomerRepository
	RiskRepo     RiskRepository
}

// CodeStore is the ephemeral one-time-code store backing device verification.
// Entries expire server-side; correctness must not depend on process memory.
type CodeStore interface {
	// SaveCode stores the code for a customer, replacing any previous one.
	SaveCode(ctx context.Context, custID, code string, ttl time.Duration) error

	// GetCode retrieves the live code, or apperrors.ErrNotFound if absent/expired.
	GetCode(ctx context.Context, custID string) (string, error)

	// DeleteCode removes the code after a successful verification.
	DeleteCode(ctx context.Context, custID string) error
}
