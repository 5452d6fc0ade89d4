package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
	"github.com/haebit-bank/fx-backend/internal/dto"
	"github.com/haebit-bank/fx-backend/internal/middleware"
)

// riskHandler handles HTTP requests for currency volatility.
type riskHandler struct {
	riskService portssvc.RiskSvcFacade
}

func newRiskHandler(rs portssvc.RiskSvcFacade) *riskHandler {
	return &riskHandler{riskService: rs}
}

// registerRiskRoutes registers routes related to currency risk.
func registerRiskRoutes(rg *gin.RouterGroup, riskService portssvc.RiskSvcFacade) {
	h := newRiskHandler(riskService)

	rg.GET("/risk/:currency", h.getRisk)
}

func (h *riskHandler) getRisk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currency := c.Param("currency")

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be formatted as YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	info, err := h.riskService.GetRiskInfo(c.Request.Context(), currency, date)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No volatility data for " + currency})
		default:
			logger.Error("Failed to get risk info", slog.String("currency", currency), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve risk info"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToRiskResponse(info))
}
