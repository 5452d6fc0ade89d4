package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
	"github.com/haebit-bank/fx-backend/internal/dto"
	"github.com/haebit-bank/fx-backend/internal/middleware"
)

// ErrInvalidCredentials is returned for a wrong user id or password. Both
// cases share one error so the response does not leak which part failed.
var ErrInvalidCredentials = errors.New("invalid user id or password")

const (
	loginStatusSuccess   = "SUCCESS"
	loginStatusNewDevice = "NEW_DEVICE"
)

type customerService struct {
	customerRepo portsrepo.CustomerRepository
	jwtSecret    string
	jwtExpiry    time.Duration
	jwtIssuer    string
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepository, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
		jwtIssuer:    jwtIssuer,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cust, err := s.customerRepo.FindByCustID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up customer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// A login from an unregistered device is not an error: the app switches
	// to the SMS verification flow and retries after the device is bound.
	if cust.DeviceID != req.DeviceID {
		logger.Info("Login from unregistered device", slog.String("cust_code", cust.CustCode))
		return &dto.LoginResponse{
			Status:   loginStatusNewDevice,
			CustName: cust.Name,
			Message:  "device not registered, verification required",
		}, nil
	}

	token, err := s.issueToken(cust.CustCode)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.customerRepo.SaveLastLogin(ctx, cust.CustCode, time.Now().UTC()); err != nil {
		// Stale last-login metadata must not block a valid login.
		logger.Warn("Failed to record last login", slog.String("error", err.Error()))
	}

	logger.Info("Login succeeded", slog.String("cust_code", cust.CustCode))
	return &dto.LoginResponse{
		Status:   loginStatusSuccess,
		Token:    token,
		CustName: cust.Name,
	}, nil
}

func (s *customerService) issueToken(custCode string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   custCode,
		Issuer:    s.jwtIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
