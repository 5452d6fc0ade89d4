package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	"github.com/haebit-bank/fx-backend/internal/core/domain"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
)

const maxRateHistoryLimit = 100

type rateService struct {
	rateRepo portsrepo.RateRepository
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.RateRepository) portssvc.RateSvcFacade {
	return &rateService{rateRepo: rateRepo}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// normalizeCurrency upper-cases a currency code for lookups. ISO 4217 codes
// are stored upper-case.
func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w: currency code must be 3 letters, got %q", apperrors.ErrValidation, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: currency code must be alphabetic, got %q", apperrors.ErrValidation, code)
		}
	}
	return nil
}

func (s *rateService) LatestRate(ctx context.Context, currencyCode string) (*domain.Rate, error) {
	currencyCode = normalizeCurrency(currencyCode)
	if err := validateCurrency(currencyCode); err != nil {
		return nil, err
	}
	return s.rateRepo.FindLatestRate(ctx, currencyCode)
}

func (s *rateService) ListLatestRates(ctx context.Context) ([]domain.Rate, error) {
	return s.rateRepo.ListLatestRates(ctx)
}

func (s *rateService) GetRateHistory(ctx context.Context, currencyCode string, limit int) ([]domain.Rate, error) {
	currencyCode = normalizeCurrency(currencyCode)
	if err := validateCurrency(currencyCode); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxRateHistoryLimit {
		limit = maxRateHistoryLimit
	}
	return s.rateRepo.ListRateHistory(ctx, currencyCode, limit)
}

type riskService struct {
	riskRepo portsrepo.RiskRepository
}

// NewRiskService creates a new RiskService.
func NewRiskService(riskRepo portsrepo.RiskRepository) portssvc.RiskSvcFacade {
	return &riskService{riskRepo: riskRepo}
}

var _ portssvc.RiskSvcFacade = (*riskService)(nil)

func (s *riskService) GetRiskInfo(ctx context.Context, currencyCode string, date *time.Time) (*domain.RiskInfo, error) {
	currencyCode = normalizeCurrency(currencyCode)
	if err := validateCurrency(currencyCode); err != nil {
		return nil, err
	}
	return s.riskRepo.FindRisk(ctx, currencyCode, date)
}
