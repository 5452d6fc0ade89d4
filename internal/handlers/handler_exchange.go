package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
	"github.com/haebit-bank/fx-backend/internal/core/services"
	"github.com/haebit-bank/fx-backend/internal/dto"
	"github.com/haebit-bank/fx-backend/internal/middleware"
)

// exchangeHandler handles HTTP requests for the exchange engine.
type exchangeHandler struct {
	exchangeService portssvc.ExchangeSvcFacade
	termsService    portssvc.TermsSvcFacade
}

// newExchangeHandler creates a new exchangeHandler.
func newExchangeHandler(es portssvc.ExchangeSvcFacade, ts portssvc.TermsSvcFacade) *exchangeHandler {
	return &exchangeHandler{
		exchangeService: es,
		termsService:    ts,
	}
}

// registerExchangeRoutes registers routes for exchanges, balances and terms.
func registerExchangeRoutes(rg *gin.RouterGroup, exchangeService portssvc.ExchangeSvcFacade, termsService portssvc.TermsSvcFacade) {
	h := newExchangeHandler(exchangeService, termsService)

	exchange := rg.Group("/exchange")
	{
		exchange.POST("/online", h.exchangeOnline)
		exchange.GET("/accounts", h.getAccounts)
		exchange.GET("/history", h.listHistory)
		exchange.POST("/terms", h.agreeTerms)
		exchange.GET("/terms", h.getTermsStatus)
	}
}

func (h *exchangeHandler) exchangeOnline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	custCode, ok := middleware.GetCustCodeFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for exchange", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.exchangeService.Exchange(c.Request.Context(), custCode, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDirection), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrTermsNotAgreed):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Exchange terms must be agreed first"})
		case errors.Is(err, services.ErrRateNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		case errors.Is(err, services.ErrInsufficientFunds):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Exchange failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process exchange"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeResponse(result))
}

func (h *exchangeHandler) getAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	custCode, ok := middleware.GetCustCodeFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	currency := c.Query("currency")
	if len(currency) != 3 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "currency must be a 3-letter code"})
		return
	}

	resp, err := h.exchangeService.GetExchangeAccounts(c.Request.Context(), custCode, currency)
	if err != nil {
		logger.Error("Failed to read exchange accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve balances"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *exchangeHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	custCode, ok := middleware.GetCustCodeFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.exchangeService.ListHistory(c.Request.Context(), custCode, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		default:
			logger.Error("Failed to list history", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve history"})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *exchangeHandler) agreeTerms(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	custCode, ok := middleware.GetCustCodeFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.termsService.SaveAgreement(c.Request.Context(), custCode); err != nil {
		logger.Error("Failed to save terms agreement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save agreement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"agreed": true})
}

func (h *exchangeHandler) getTermsStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	custCode, ok := middleware.GetCustCodeFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	agreed, err := h.termsService.HasAgreed(c.Request.Context(), custCode)
	if err != nil {
		logger.Error("Failed to check terms agreement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to check agreement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"agreed": agreed})
}
