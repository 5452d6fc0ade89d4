package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
	"github.com/haebit-bank/fx-backend/internal/core/services"
	"github.com/haebit-bank/fx-backend/internal/dto"
	"github.com/haebit-bank/fx-backend/internal/middleware"
)

// authHandler handles login and device verification requests.
type authHandler struct {
	customerService     portssvc.CustomerSvcFacade
	verificationService portssvc.VerificationSvcFacade
}

func newAuthHandler(cs portssvc.CustomerSvcFacade, vs portssvc.VerificationSvcFacade) *authHandler {
	return &authHandler{
		customerService:     cs,
		verificationService: vs,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, customerService portssvc.CustomerSvcFacade, verificationService portssvc.VerificationSvcFacade) {
	h := newAuthHandler(customerService, verificationService)

	// 5 requests per minute per IP across the auth surface
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := r.Group("/api/v1/auth", limitMiddleware)
	{
		auth.POST("/login", h.login)
		auth.POST("/send-code", h.sendCode)
		auth.POST("/verify-code", h.verifyCode)
	}
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.customerService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid user id or password"})
			return
		}
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process login"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *authHandler) sendCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.verificationService.SendCode(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same response shape as success so callers cannot probe for
			// registered user ids.
			c.JSON(http.StatusOK, dto.SendCodeResponse{Status: "SENT", Message: "verification code sent"})
			return
		}
		logger.Error("Failed to send verification code", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send verification code"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *authHandler) verifyCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	err := h.verificationService.VerifyCode(c.Request.Context(), req.UserID, req.Code, req.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCodeMismatch), errors.Is(err, services.ErrCodeExpired):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "verification failed"})
		default:
			logger.Error("Failed to verify code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to verify code"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}
