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

// AccountHandler holds dependencies for profile-related handlers.
type AccountHandler struct {
	uc usecase.AccountUsecase
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// UpdateProfile handles changes to the caller's own display fields.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	updated, err := h.uc.UpdateProfile(c.Request().Context(), account.UID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, updated, "Profile updated")
}

// UpdatePet handles replacement of the caller's pet card.
func (h *AccountHandler) UpdatePet(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	var input usecase.PetProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pet profile input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	updated, err := h.uc.UpdatePet(c.Request().Context(), account.UID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, updated, "Pet profile updated")
}
