package handler

import (
	"net/http"

	"petfeeder/internal/delivery/http/middleware"
	"petfeeder/internal/delivery/http/response"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/service"
	"petfeeder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PairDeviceInput carries either a typed device id or raw scanned QR data.
type PairDeviceInput struct {
	DeviceID string `json:"device_id"`
	QRData   string `json:"qr_data"`
}

// CalibrateInput carries the reference weight for a calibration command.
type CalibrateInput struct {
	Grams int `json:"grams" validate:"required,gt=0"`
}

// DeviceHandler holds dependencies for device pairing and lifecycle handlers.
type DeviceHandler struct {
	uc        usecase.PairingUsecase
	qrcodeSvc service.QRCodeService
}

// NewDeviceHandler is the constructor for DeviceHandler, injected by Fx.
func NewDeviceHandler(uc usecase.PairingUsecase, qrcodeSvc service.QRCodeService) *DeviceHandler {
	return &DeviceHandler{
		uc:        uc,
		qrcodeSvc: qrcodeSvc,
	}
}

// Pair links a feeder to the caller's account. The device can be identified
// by its typed id or by the payload of a scanned pairing QR code.
func (h *DeviceHandler) Pair(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	var input PairDeviceInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pairing input")
	}

	deviceID := input.DeviceID
	if deviceID == "" && input.QRData != "" {
		parsed, err := h.qrcodeSvc.ParsePairingQR(input.QRData)
		if err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("el código QR no es válido")
		}
		deviceID = parsed
	}
	if deviceID == "" {
		return domainerrors.ErrValidationFailed.WithDetails("se requiere el identificador del dispositivo")
	}

	device, err := h.uc.Pair(c.Request().Context(), account, deviceID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, device, "Device paired")
}

// Unlink detaches a feeder from the caller's account.
func (h *DeviceHandler) Unlink(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	if err := h.uc.Unlink(c.Request().Context(), account, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Device unlinked")
}

// Calibrate pushes a calibration command with a reference weight.
func (h *DeviceHandler) Calibrate(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	var input CalibrateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid calibration input")
	}

	if err := h.uc.Calibrate(c.Request().Context(), account, c.Param("id"), input.Grams); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Calibration command queued")
}

// PairingCode renders the pairing QR code for a device as a PNG image.
func (h *DeviceHandler) PairingCode(c echo.Context) error {
	png, err := h.uc.PairingCode(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
