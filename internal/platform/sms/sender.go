package sms

import (
	"context"
	"log/slog"

	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
	"github.com/haebit-bank/fx-backend/internal/middleware"
	"github.com/haebit-bank/fx-backend/internal/utils"
)

// LogSender is a development stand-in for the SMS gateway. It logs the
// masked destination instead of sending anything.
type LogSender struct{}

// NewLogSender creates a new LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

var _ portssvc.SmsSender = (*LogSender)(nil)

func (s *LogSender) SendVerificationCode(ctx context.Context, phone string, code string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Verification SMS (not sent, log sender)",
		slog.String("phone", utils.MaskPhone(phone)),
		slog.String("code", code),
	)
	return nil
}
