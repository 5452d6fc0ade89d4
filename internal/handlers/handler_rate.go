package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
	"github.com/haebit-bank/fx-backend/internal/dto"
	"github.com/haebit-bank/fx-backend/internal/middleware"
)

// rateHandler handles HTTP requests for published rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to conversion rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listLatestRates)
		rates.GET("/:currency", h.getLatestRate)
		rates.GET("/:currency/history", h.getRateHistory)
	}
}

func (h *rateHandler) listLatestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.ListLatestRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list latest rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve rates"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRateResponses(rates))
}

func (h *rateHandler) getLatestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currency := c.Param("currency")

	rate, err := h.rateService.LatestRate(c.Request.Context(), currency)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No rate published for " + currency})
		default:
			logger.Error("Failed to get latest rate", slog.String("currency", currency), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve rate"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToRateResponse(*rate))
}

func (h *rateHandler) getRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currency := c.Param("currency")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	rates, err := h.rateService.GetRateHistory(c.Request.Context(), currency, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to get rate history", slog.String("currency", currency), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve rate history"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRateResponses(rates))
}
