package services

import (
	"context"

	"github.com/haebit-bank/fx-backend/internal/core/domain"
	"github.com/haebit-bank/fx-backend/internal/dto"
)

// ExchangeSvcFacade is the exchange transaction engine surface.
type ExchangeSvcFacade interface {
	// Exchange performs one atomic conversion between the customer's KRW
	// account and a foreign sub-balance at the latest published rate.
	Exchange(ctx context.Context, custCode string, req dto.ExchangeRequest) (*domain.ExchangeResult, error)

	// GetExchangeAccounts returns both balances for the given currency
	// without taking locks; a slightly stale read is acceptable here.
	GetExchangeAccounts(ctx context.Context, custCode string, currencyCode string) (*dto.BalanceResponse, error)

	// ListHistory returns the customer's transfer history, newest first.
	ListHistory(ctx context.Context, custCode string, params dto.ListHistoryParams) (*dto.ListHistoryResponse, error)
}

// TermsSvcFacade manages exchange-terms agreement.
type TermsSvcFacade interface {
	// HasAgreed reports whether the customer accepted the exchange terms.
	HasAgreed(ctx context.Context, custCode string) (bool, error)

	// SaveAgreement records the customer's acceptance. Idempotent.
	SaveAgreement(ctx context.Context, custCode string) error
}
