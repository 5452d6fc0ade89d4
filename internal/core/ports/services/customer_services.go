package services

import (
	"context"

	"github.com/haebit-bank/fx-backend/internal/dto"
)

// CustomerSvcFacade handles mobile login.
type CustomerSvcFacade interface {
	// Login verifies credentials and the registered device. On success it
	// issues a JWT; on an unknown device it reports NEW_DEVICE so the app can
	// run SMS verification first.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// VerificationSvcFacade handles the SMS one-time-code flow for device registration.
type VerificationSvcFacade interface {
	// SendCode generates a one-time code, stores it with expiry and sends it
	// to the customer's registered phone number.
	SendCode(ctx context.Context, custID string) (*dto.SendCodeResponse, error)

	// VerifyCode checks the submitted code against the stored one, consumes
	// it and rebinds the customer's registered device on success.
	VerifyCode(ctx context.Context, custID string, code string, deviceID string) error
}

// SmsSender delivers one-time codes. The real gateway is an external
// collaborator; a logging implementation ships for development.
type SmsSender interface {
	SendVerificationCode(ctx context.Context, phone string, code string) error
}
