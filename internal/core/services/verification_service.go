package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
	"github.com/haebit-bank/fx-backend/internal/dto"
	"github.com/haebit-bank/fx-backend/internal/middleware"
	"github.com/haebit-bank/fx-backend/internal/utils"
)

var (
	// ErrCodeMismatch is returned for a wrong or already-consumed code.
	ErrCodeMismatch = errors.New("verification code does not match")
	// ErrCodeExpired is returned when no live code exists for the customer.
	ErrCodeExpired = errors.New("verification code expired or never sent")
)

type verificationService struct {
	customerRepo portsrepo.CustomerRepository
	codeStore    portsrepo.CodeStore
	smsSender    portssvc.SmsSender
	codeTTL      time.Duration
}

// NewVerificationService creates a new VerificationService.
func NewVerificationService(customerRepo portsrepo.CustomerRepository, codeStore portsrepo.CodeStore, smsSender portssvc.SmsSender, codeTTL time.Duration) portssvc.VerificationSvcFacade {
	return &verificationService{
		customerRepo: customerRepo,
		codeStore:    codeStore,
		smsSender:    smsSender,
		codeTTL:      codeTTL,
	}
}

var _ portssvc.VerificationSvcFacade = (*verificationService)(nil)

// generateCode produces a 6-digit code from crypto/rand, zero-padded.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *verificationService) SendCode(ctx context.Context, custID string) (*dto.SendCodeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cust, err := s.customerRepo.FindByCustID(ctx, custID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	// Store before sending: a code that was delivered but never stored could
	// not be verified.
	if err := s.codeStore.SaveCode(ctx, custID, code, s.codeTTL); err != nil {
		logger.Error("Failed to store verification code", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.smsSender.SendVerificationCode(ctx, cust.Phone, code); err != nil {
		logger.Error("Failed to send verification SMS", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to send verification code: %w", err)
	}

	logger.Info("Verification code sent", slog.String("cust_code", cust.CustCode))
	return &dto.SendCodeResponse{
		Status:      "SENT",
		Message:     "verification code sent",
		MaskedPhone: utils.MaskPhone(cust.Phone),
	}, nil
}

func (s *verificationService) VerifyCode(ctx context.Context, custID string, code string, deviceID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.codeStore.GetCode(ctx, custID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrCodeExpired
		}
		return fmt.Errorf("failed to read verification code: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrCodeMismatch
	}

	// Single use. A delete failure leaves the code replayable until its TTL,
	// so it fails the verification outright.
	if err := s.codeStore.DeleteCode(ctx, custID); err != nil {
		logger.Error("Failed to consume verification code", slog.String("error", err.Error()))
		return fmt.Errorf("failed to consume verification code: %w", err)
	}

	cust, err := s.customerRepo.FindByCustID(ctx, custID)
	if err != nil {
		return fmt.Errorf("failed to look up customer: %w", err)
	}
	if err := s.customerRepo.UpdateDeviceID(ctx, cust.CustCode, deviceID); err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	logger.Info("Device verified", slog.String("cust_code", cust.CustCode))
	return nil
}
