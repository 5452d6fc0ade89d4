package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	"github.com/haebit-bank/fx-backend/internal/core/domain"
	"github.com/haebit-bank/fx-backend/internal/core/services"
	"github.com/haebit-bank/fx-backend/internal/dto"
)

const testJWTSecret = "test-secret"

func testCustomer(t *testing.T) domain.Customer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	assert.NoError(t, err)
	return domain.Customer{
		CustCode:     "C1001",
		CustID:       "minsu01",
		Name:         "Kim Minsu",
		Phone:        "010-1234-5678",
		PasswordHash: string(hash),
		DeviceID:     "device-1",
	}
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	svc := services.NewCustomerService(mockRepo, testJWTSecret, time.Hour, "fx-backend")
	cust := testCustomer(t)

	mockRepo.On("FindByCustID", mock.Anything, "minsu01").Return(&cust, nil)
	mockRepo.On("SaveLastLogin", mock.Anything, "C1001", mock.Anything).Return(nil)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		UserID:   "minsu01",
		Password: "correct-horse",
		DeviceID: "device-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "SUCCESS", resp.Status)
	assert.Equal(t, "Kim Minsu", resp.CustName)
	assert.NotEmpty(t, resp.Token)

	// The token subject must be the customer code used by the API layer.
	token, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, "C1001", claims.Subject)
	assert.Equal(t, "fx-backend", claims.Issuer)
}

func TestLoginWrongPassword(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	svc := services.NewCustomerService(mockRepo, testJWTSecret, time.Hour, "fx-backend")
	cust := testCustomer(t)

	mockRepo.On("FindByCustID", mock.Anything, "minsu01").Return(&cust, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		UserID:   "minsu01",
		Password: "wrong",
		DeviceID: "device-1",
	})

	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertNotCalled(t, "SaveLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginUnknownUserSameErrorAsWrongPassword(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	svc := services.NewCustomerService(mockRepo, testJWTSecret, time.Hour, "fx-backend")

	mockRepo.On("FindByCustID", mock.Anything, "nobody").Return(nil, apperrors.NewNotFoundError("customer not found"))

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		UserID:   "nobody",
		Password: "whatever",
		DeviceID: "device-1",
	})

	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLoginNewDeviceGetsNoToken(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	svc := services.NewCustomerService(mockRepo, testJWTSecret, time.Hour, "fx-backend")
	cust := testCustomer(t)

	mockRepo.On("FindByCustID", mock.Anything, "minsu01").Return(&cust, nil)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		UserID:   "minsu01",
		Password: "correct-horse",
		DeviceID: "device-unknown",
	})

	assert.NoError(t, err)
	assert.Equal(t, "NEW_DEVICE", resp.Status)
	assert.Empty(t, resp.Token)
	mockRepo.AssertNotCalled(t, "SaveLastLogin", mock.Anything, mock.Anything, mock.Anything)
}
