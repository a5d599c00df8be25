// Package errors defines the application error taxonomy. Every failure shown
// to a user goes through one of these: a stable business code for clients and
// a short localized message, never a raw backend error string.
package errors

import (
	"net/http"

	"petfeeder/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Device-related errors
	ErrDeviceNotFound = NewBaseError(
		http.StatusNotFound,
		"DEVICE_NOT_FOUND",
		"No se encontró el dispositivo",
		"",
	)

	ErrDeviceAlreadyLinked = NewBaseError(
		http.StatusConflict,
		"DEVICE_ALREADY_LINKED",
		"El dispositivo ya está vinculado a otra cuenta",
		"",
	)

	ErrDeviceAlreadyExists = NewBaseError(
		http.StatusConflict,
		"DEVICE_ALREADY_EXISTS",
		"Ya existe un dispositivo con ese identificador",
		"",
	)

	ErrDeviceNotOwned = NewBaseError(
		http.StatusForbidden,
		"DEVICE_NOT_OWNED",
		"El dispositivo no está vinculado a tu cuenta",
		"",
	)

	// Account-related errors
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"No se encontró la cuenta",
		"",
	)

	// Schedule-related errors
	ErrScheduleNotFound = NewBaseError(
		http.StatusNotFound,
		"SCHEDULE_NOT_FOUND",
		"No se encontró el horario de alimentación",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"Los datos ingresados no son válidos",
		"",
	)

	ErrCalibrationOutOfRange = NewBaseError(
		http.StatusBadRequest,
		"CALIBRATION_OUT_OF_RANGE",
		"El peso de calibración debe estar entre 1 y 500 gramos",
		"",
	)

	// Authentication-related errors
	ErrSessionRequired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_REQUIRED",
		"Debes iniciar sesión para continuar",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"La sesión no es válida o ha expirado",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"No tienes permiso para realizar esta acción",
		"",
	)

	// General errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"No se encontró el recurso",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"El recurso está en un estado incompatible",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Ocurrió un error inesperado",
		"",
	)
)

// BackendUnavailableError represents an unclassified backend failure,
// implementing the AppError interface. Nothing retries these automatically;
// the user is asked to try again.
type BackendUnavailableError struct {
	err     error
	details string
}

// NewBackendUnavailableError creates a backend-related error
func NewBackendUnavailableError(err error, details string) AppError {
	return &BackendUnavailableError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *BackendUnavailableError) Error() string {
	return errors.Wrap(e.err, "backend request failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *BackendUnavailableError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *BackendUnavailableError) ErrorCode() string {
	return "BACKEND_UNAVAILABLE"
}

// Message returns the user-friendly error message
func (e *BackendUnavailableError) Message() string {
	return "El servicio no está disponible, inténtalo de nuevo"
}

// Details returns detailed error information
func (e *BackendUnavailableError) Details() string {
	return e.details
}
