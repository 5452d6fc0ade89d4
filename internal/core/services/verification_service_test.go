package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	"github.com/haebit-bank/fx-backend/internal/core/domain"
	"github.com/haebit-bank/fx-backend/internal/core/services"
)

// --- Mock CodeStore ---
type MockCodeStore struct {
	mock.Mock
}

func (m *MockCodeStore) SaveCode(ctx context.Context, custID, code string, ttl time.Duration) error {
	args := m.Called(ctx, custID, code, ttl)
	return args.Error(0)
}

func (m *MockCodeStore) GetCode(ctx context.Context, custID string) (string, error) {
	args := m.Called(ctx, custID)
	return args.String(0), args.Error(1)
}

func (m *MockCodeStore) DeleteCode(ctx context.Context, custID string) error {
	args := m.Called(ctx, custID)
	return args.Error(0)
}

// --- Mock SmsSender ---
type MockSmsSender struct {
	mock.Mock
}

func (m *MockSmsSender) SendVerificationCode(ctx context.Context, phone string, code string) error {
	args := m.Called(ctx, phone, code)
	return args.Error(0)
}

type VerificationServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	mockCodeStore    *MockCodeStore
	mockSmsSender    *MockSmsSender
	ctx              context.Context
	customer         domain.Customer
}

func (suite *VerificationServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockCodeStore = new(MockCodeStore)
	suite.mockSmsSender = new(MockSmsSender)
	suite.ctx = context.Background()
	suite.customer = domain.Customer{
		CustCode: "C1001",
		CustID:   "minsu01",
		Name:     "Kim Minsu",
		Phone:    "010-1234-5678",
		DeviceID: "device-old",
	}
}

func (suite *VerificationServiceTestSuite) TestSendCodeStoresBeforeSending() {
	svc := services.NewVerificationService(suite.mockCustomerRepo, suite.mockCodeStore, suite.mockSmsSender, 3*time.Minute)

	suite.mockCustomerRepo.On("FindByCustID", suite.ctx, "minsu01").Return(&suite.customer, nil)

	var storedCode string
	suite.mockCodeStore.On("SaveCode", suite.ctx, "minsu01", mock.Anything, 3*time.Minute).
		Run(func(args mock.Arguments) {
			storedCode = args.String(2)
		}).Return(nil)
	suite.mockSmsSender.On("SendVerificationCode", suite.ctx, suite.customer.Phone, mock.Anything).Return(nil)

	resp, err := svc.SendCode(suite.ctx, "minsu01")

	suite.Require().NoError(err)
	suite.Require().Len(storedCode, 6)
	assert.Regexp(suite.T(), `^\d{6}$`, storedCode)
	assert.Equal(suite.T(), "SENT", resp.Status)
	assert.Contains(suite.T(), resp.MaskedPhone, "5678")
	assert.NotContains(suite.T(), resp.MaskedPhone, "1234")

	// The stored code must be the same one handed to the SMS gateway.
	suite.mockSmsSender.AssertCalled(suite.T(), "SendVerificationCode", suite.ctx, suite.customer.Phone, storedCode)
}

func (suite *VerificationServiceTestSuite) TestVerifyCodeConsumesAndBindsDevice() {
	svc := services.NewVerificationService(suite.mockCustomerRepo, suite.mockCodeStore, suite.mockSmsSender, 3*time.Minute)

	suite.mockCodeStore.On("GetCode", suite.ctx, "minsu01").Return("123456", nil)
	suite.mockCodeStore.On("DeleteCode", suite.ctx, "minsu01").Return(nil)
	suite.mockCustomerRepo.On("FindByCustID", suite.ctx, "minsu01").Return(&suite.customer, nil)
	suite.mockCustomerRepo.On("UpdateDeviceID", suite.ctx, "C1001", "device-new").Return(nil)

	err := svc.VerifyCode(suite.ctx, "minsu01", "123456", "device-new")

	suite.Require().NoError(err)
	suite.mockCodeStore.AssertCalled(suite.T(), "DeleteCode", suite.ctx, "minsu01")
	suite.mockCustomerRepo.AssertCalled(suite.T(), "UpdateDeviceID", suite.ctx, "C1001", "device-new")
}

func (suite *VerificationServiceTestSuite) TestVerifyCodeMismatch() {
	svc := services.NewVerificationService(suite.mockCustomerRepo, suite.mockCodeStore, suite.mockSmsSender, 3*time.Minute)

	suite.mockCodeStore.On("GetCode", suite.ctx, "minsu01").Return("123456", nil)

	err := svc.VerifyCode(suite.ctx, "minsu01", "654321", "device-new")

	suite.Require().ErrorIs(err, services.ErrCodeMismatch)
	suite.mockCodeStore.AssertNotCalled(suite.T(), "DeleteCode", mock.Anything, mock.Anything)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "UpdateDeviceID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VerificationServiceTestSuite) TestVerifyCodeExpired() {
	svc := services.NewVerificationService(suite.mockCustomerRepo, suite.mockCodeStore, suite.mockSmsSender, 3*time.Minute)

	suite.mockCodeStore.On("GetCode", suite.ctx, "minsu01").Return("", apperrors.NewNotFoundError("no verification code"))

	err := svc.VerifyCode(suite.ctx, "minsu01", "123456", "device-new")

	suite.Require().ErrorIs(err, services.ErrCodeExpired)
}

func TestVerificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VerificationServiceTestSuite))
}
