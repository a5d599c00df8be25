package handler

import (
	"net/http"
	"strconv"

	"petfeeder/internal/delivery/http/middleware"
	"petfeeder/internal/delivery/http/response"
	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/domain/repository"
	"petfeeder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for admin console handlers.
type AdminHandler struct {
	pairingUC usecase.PairingUsecase
	accountUC usecase.AccountUsecase
	auditUC   usecase.AuditUsecase
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(pairingUC usecase.PairingUsecase, accountUC usecase.AccountUsecase, auditUC usecase.AuditUsecase) *AdminHandler {
	return &AdminHandler{
		pairingUC: pairingUC,
		accountUC: accountUC,
		auditUC:   auditUC,
	}
}

// ProvisionDevice registers a freshly manufactured feeder.
func (h *AdminHandler) ProvisionDevice(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	var input usecase.ProvisionDeviceInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid provisioning input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	device, err := h.pairingUC.Provision(c.Request().Context(), account, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, device, "Device provisioned")
}

// ListDevices returns every registered feeder.
func (h *AdminHandler) ListDevices(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	devices, err := h.pairingUC.ListDevices(c.Request().Context(), account)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, devices, "")
}

// ListAccounts returns every account.
func (h *AdminHandler) ListAccounts(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	accounts, err := h.accountUC.ListAccounts(c.Request().Context(), account)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, accounts, "")
}

// ListAudit returns audit entries newest first, optionally filtered.
func (h *AdminHandler) ListAudit(c echo.Context) error {
	filter, err := parseAuditFilter(c)
	if err != nil {
		return err
	}

	entries, err := h.auditUC.List(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entries, "")
}

// ExportAudit renders the filtered audit log as a CSV download.
func (h *AdminHandler) ExportAudit(c echo.Context) error {
	filter, err := parseAuditFilter(c)
	if err != nil {
		return err
	}

	data, err := h.auditUC.ExportCSV(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="auditoria.csv"`)

	return c.Blob(http.StatusOK, "text/csv", data)
}

// parseAuditFilter reads the optional category/severity/limit query parameters.
func parseAuditFilter(c echo.Context) (repository.AuditFilter, error) {
	filter := repository.AuditFilter{
		Category: c.QueryParam("category"),
		Severity: entity.Severity(c.QueryParam("severity")),
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, domainerrors.ErrValidationFailed.WithDetails("el parámetro limit debe ser un entero positivo")
		}
		filter.Limit = limit
	}

	return filter, nil
}
