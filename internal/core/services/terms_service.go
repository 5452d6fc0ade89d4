package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
	"github.com/haebit-bank/fx-backend/internal/middleware"
)

type termsService struct {
	termsRepo portsrepo.TermsRepository
}

// NewTermsService creates a new TermsService.
func NewTermsService(termsRepo portsrepo.TermsRepository) portssvc.TermsSvcFacade {
	return &termsService{termsRepo: termsRepo}
}

var _ portssvc.TermsSvcFacade = (*termsService)(nil)

func (s *termsService) HasAgreed(ctx context.Context, custCode string) (bool, error) {
	return s.termsRepo.HasAgreed(ctx, custCode)
}

func (s *termsService) SaveAgreement(ctx context.Context, custCode string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.termsRepo.SaveAgreement(ctx, custCode, time.Now().UTC()); err != nil {
		logger.Error("Failed to save terms agreement", slog.String("error", err.Error()))
		return fmt.Errorf("failed to save terms agreement: %w", err)
	}
	logger.Info("Exchange terms agreed", slog.String("cust_code", custCode))
	return nil
}
