package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	"github.com/haebit-bank/fx-backend/internal/core/domain"
	"github.com/haebit-bank/fx-backend/internal/core/services"
)

func TestLatestRateNormalizesCurrency(t *testing.T) {
	mockRepo := new(MockRateRepository)
	svc := services.NewRateService(mockRepo)

	expected := &domain.Rate{CurrencyCode: "USD", BaseRate: decimal.NewFromFloat(1350.5), StdDate: time.Now()}
	mockRepo.On("FindLatestRate", mock.Anything, "USD").Return(expected, nil)

	rate, err := svc.LatestRate(context.Background(), " usd ")
	assert.NoError(t, err)
	assert.Equal(t, expected, rate)
	mockRepo.AssertExpectations(t)
}

func TestLatestRateRejectsBadCurrency(t *testing.T) {
	mockRepo := new(MockRateRepository)
	svc := services.NewRateService(mockRepo)

	for _, code := range []string{"", "US", "USDX", "U1D"} {
		_, err := svc.LatestRate(context.Background(), code)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "code %q should be rejected", code)
	}
	mockRepo.AssertNotCalled(t, "FindLatestRate", mock.Anything, mock.Anything)
}

func TestGetRateHistoryClampsLimit(t *testing.T) {
	mockRepo := new(MockRateRepository)
	svc := services.NewRateService(mockRepo)

	mockRepo.On("ListRateHistory", mock.Anything, "EUR", 100).Return([]domain.Rate{}, nil)

	_, err := svc.GetRateHistory(context.Background(), "EUR", 0)
	assert.NoError(t, err)
	_, err = svc.GetRateHistory(context.Background(), "EUR", 5000)
	assert.NoError(t, err)

	mockRepo.AssertNumberOfCalls(t, "ListRateHistory", 2)
}

func TestGetRiskInfoValidatesCurrency(t *testing.T) {
	mockRepo := new(MockRiskRepository)
	svc := services.NewRiskService(mockRepo)

	_, err := svc.GetRiskInfo(context.Background(), "usdollar", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	expected := &domain.RiskInfo{CurrencyCode: "USD", CurrentVolatility: 0.12, ForecastVolatility: 0.15}
	mockRepo.On("FindRisk", mock.Anything, "USD", (*time.Time)(nil)).Return(expected, nil)

	info, err := svc.GetRiskInfo(context.Background(), "usd", nil)
	assert.NoError(t, err)
	assert.Equal(t, expected, info)
}

// --- Mock RiskRepository ---
type MockRiskRepository struct {
	mock.Mock
}

func (m *MockRiskRepository) FindRisk(ctx context.Context, currencyCode string, date *time.Time) (*domain.RiskInfo, error) {
	args := m.Called(ctx, currencyCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RiskInfo), args.Error(1)
}
