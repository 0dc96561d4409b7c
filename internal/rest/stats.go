package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shopmarket/domain"
	"shopmarket/pkg/logger"
)

type StatsService interface {
	TopProducts(ctx context.Context, dateFrom, dateTo time.Time, limit int) ([]domain.TopProduct, error)
}

type StatsHandler struct {
	validate     *validator.Validate
	statsService StatsService
}

func NewStatsHandler(statsService StatsService) *StatsHandler {
	return &StatsHandler{
		validate:     validator.New(),
		statsService: statsService,
	}
}

type TopProductsQuery struct {
	DateFrom string `query:"date_from" validate:"required"`
	DateTo   string `query:"date_to" validate:"required"`
	Limit    int    `query:"limit"`
}

func (h *StatsHandler) TopProducts(c echo.Context) error {
	var q TopProductsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	dateFrom, err := time.Parse("2006-01-02", q.DateFrom)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid date_from, expected YYYY-MM-DD"})
	}

	dateTo, err := time.Parse("2006-01-02", q.DateTo)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid date_to, expected YYYY-MM-DD"})
	}

	rows, err := h.statsService.TopProducts(c.Request().Context(), dateFrom, dateTo, q.Limit)
	if err != nil {
		logger.Error("Failed to get top products", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}
