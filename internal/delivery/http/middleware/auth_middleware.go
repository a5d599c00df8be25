package middleware

import (
	"strings"

	deliverycontext "petfeeder/internal/delivery/context"
	"petfeeder/internal/delivery/http/response"
	"petfeeder/internal/domain/entity"
	domainerrors "petfeeder/internal/domain/errors"
	"petfeeder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware resolves the Firebase ID token carried in the Authorization
// header into an application account and stores it on the request context.
type AuthMiddleware struct {
	sessionUC usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessionUC usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessionUC: sessionUC}
}

// Authenticate validates the bearer token and loads the caller's account.
// First sign-ins get their account provisioned by the session usecase.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "SESSION_REQUIRED", "Authorization header is missing")
		}

		idToken := strings.TrimPrefix(authHeader, "Bearer ")
		if idToken == authHeader {
			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid token format, must be Bearer token")
		}

		account, err := m.sessionUC.Resolve(c.Request().Context(), idToken)
		if err != nil {
			var appErr domainerrors.AppError
			if errors.As(err, &appErr) {
				return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
			}

			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid or expired token")
		}

		c.Set(string(deliverycontext.KeyAccount), account)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the account's role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account := CurrentAccount(c)
			if account == nil {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: account information missing")
			}

			if account.Role != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}

// CurrentAccount returns the authenticated account stored by Authenticate,
// or nil on unauthenticated routes.
func CurrentAccount(c echo.Context) *entity.UserAccount {
	account, ok := c.Get(string(deliverycontext.KeyAccount)).(*entity.UserAccount)
	if !ok {
		return nil
	}

	return account
}
