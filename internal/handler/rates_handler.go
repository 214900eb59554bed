package handler

import (
	"errors"
	"net/http"
	"strconv"

	"privat-rates/internal/adapter/privatbank"
	"privat-rates/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RatesHandler struct {
	usecase usecase.RatesUsecase
	logger  *logrus.Logger
}

func NewRatesHandler(usecase usecase.RatesUsecase, logger *logrus.Logger) *RatesHandler {
	return &RatesHandler{
		usecase: usecase,
		logger:  logger,
	}
}

func (h *RatesHandler) GetRates(c *gin.Context) {
	daysStr := c.Query("days")
	if daysStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required query parameter 'days'"})
		return
	}

	days, err := strconv.Atoi(daysStr)
	if err != nil {
		h.logger.WithError(err).Debugf("Invalid days parameter: %s", daysStr)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid 'days' parameter, must be an integer"})
		return
	}

	result, err := h.usecase.GetRates(c.Request.Context(), days)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := err.Error()
		switch {
		case errors.Is(err, usecase.ErrTooManyDays):
			statusCode = http.StatusBadRequest
			errorMsg = usecase.TooManyDaysMessage(h.usecase.MaxDays())
		case errors.Is(err, privatbank.ErrNetwork), errors.Is(err, privatbank.ErrMalformedResponse):
			statusCode = http.StatusBadGateway
		}

		h.logger.WithError(err).Errorf("Failed to get rates for days=%d", days)
		c.JSON(statusCode, ErrorResponse{Error: errorMsg})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RatesHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
