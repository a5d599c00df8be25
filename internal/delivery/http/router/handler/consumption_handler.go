package handler

import (
	"net/http"
	"strconv"
	"time"

	"petfeeder/internal/delivery/http/middleware"
	"petfeeder/internal/delivery/http/response"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ConsumptionHandler holds dependencies for dispense history handlers.
type ConsumptionHandler struct {
	uc usecase.ConsumptionUsecase
}

// NewConsumptionHandler is the constructor for ConsumptionHandler, injected by Fx.
func NewConsumptionHandler(uc usecase.ConsumptionUsecase) *ConsumptionHandler {
	return &ConsumptionHandler{uc: uc}
}

// History returns the device's dispense events, newest first.
func (h *ConsumptionHandler) History(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	query, err := parseHistoryQuery(c)
	if err != nil {
		return err
	}

	events, err := h.uc.History(c.Request().Context(), account, c.Param("id"), query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, events, "")
}

// ExportCSV renders the device's dispense history as a CSV download.
func (h *ConsumptionHandler) ExportCSV(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	query, err := parseHistoryQuery(c)
	if err != nil {
		return err
	}

	data, err := h.uc.ExportCSV(c.Request().Context(), account, c.Param("id"), query)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="consumo.csv"`)

	return c.Blob(http.StatusOK, "text/csv", data)
}

// parseHistoryQuery reads the optional since/until/limit query parameters.
// Timestamps are RFC 3339.
func parseHistoryQuery(c echo.Context) (*usecase.HistoryQuery, error) {
	query := &usecase.HistoryQuery{}

	if raw := c.QueryParam("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("el parámetro since debe ser una fecha RFC 3339")
		}
		query.Since = since
	}
	if raw := c.QueryParam("until"); raw != "" {
		until, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("el parámetro until debe ser una fecha RFC 3339")
		}
		query.Until = until
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("el parámetro limit debe ser un entero positivo")
		}
		query.Limit = limit
	}

	return query, nil
}
