package handler

import (
	"net/http"

	"petfeeder/internal/delivery/http/middleware"
	"petfeeder/internal/delivery/http/response"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SetEnabledInput carries the toggle for a schedule.
type SetEnabledInput struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// ScheduleHandler holds dependencies for feeding schedule handlers.
type ScheduleHandler struct {
	uc usecase.ScheduleUsecase
}

// NewScheduleHandler is the constructor for ScheduleHandler, injected by Fx.
func NewScheduleHandler(uc usecase.ScheduleUsecase) *ScheduleHandler {
	return &ScheduleHandler{uc: uc}
}

// List returns the device's feeding schedules.
func (h *ScheduleHandler) List(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	schedules, err := h.uc.List(c.Request().Context(), account, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, schedules, "")
}

// Add appends a new feeding schedule.
func (h *ScheduleHandler) Add(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	var input usecase.ScheduleInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid schedule input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	schedule, err := h.uc.Add(c.Request().Context(), account, c.Param("id"), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, schedule, "Schedule created")
}

// Update replaces an existing schedule's fields.
func (h *ScheduleHandler) Update(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	var input usecase.ScheduleInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid schedule input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	schedule, err := h.uc.Update(c.Request().Context(), account, c.Param("id"), c.Param("scheduleId"), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, schedule, "Schedule updated")
}

// SetEnabled toggles a schedule without touching its other fields.
func (h *ScheduleHandler) SetEnabled(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	var input SetEnabledInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid toggle input")
	}
	if input.Enabled == nil {
		return domainerrors.ErrValidationFailed.WithDetails("se requiere el campo enabled")
	}

	if err := h.uc.SetEnabled(c.Request().Context(), account, c.Param("id"), c.Param("scheduleId"), *input.Enabled); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Schedule toggled")
}

// Remove deletes a schedule, archiving a copy first.
func (h *ScheduleHandler) Remove(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	if err := h.uc.Remove(c.Request().Context(), account, c.Param("id"), c.Param("scheduleId")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Schedule removed")
}
