package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"petfeeder/internal/delivery/http/middleware"
	"petfeeder/internal/delivery/http/response"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DispenseInput carries the portion size for a manual feeding.
type DispenseInput struct {
	Grams int `json:"grams" validate:"required,gt=0"`
}

// StatusHandler holds dependencies for reconciled status handlers.
type StatusHandler struct {
	uc     usecase.StatusUsecase
	logger *slog.Logger
}

// NewStatusHandler is the constructor for StatusHandler, injected by Fx.
func NewStatusHandler(uc usecase.StatusUsecase, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetStatus returns a one-shot merged view of a device's durable record and
// its realtime fragment.
func (h *StatusHandler) GetStatus(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	view, err := h.uc.Status(c.Request().Context(), account, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// StreamStatus streams merged status views over SSE as either backing source
// changes, until the client disconnects.
func (h *StatusHandler) StreamStatus(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	ctx := c.Request().Context()
	updates, err := h.uc.Watch(ctx, account, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case view, ok := <-updates:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(view)
			if err != nil {
				h.logger.Error("failed to encode status view", slog.Any("error", err))

				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

// Dispense queues a manual feeding of the given portion.
func (h *StatusHandler) Dispense(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	var input DispenseInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid dispense input")
	}

	if err := h.uc.Dispense(c.Request().Context(), account, c.Param("id"), input.Grams); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, nil, "Dispense command queued")
}
