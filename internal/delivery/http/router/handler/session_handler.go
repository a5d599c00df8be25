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
)

// SessionHandler holds dependencies for session-related handlers.
type SessionHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetSession returns the authenticated caller's account. The auth middleware
// already resolved the token, so this is a plain read of the request context.
func (h *SessionHandler) GetSession(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	return response.Success(c, http.StatusOK, account, "")
}

// StreamSession streams live account snapshots over SSE until the client
// disconnects. The listener is released when the stream ends.
func (h *SessionHandler) StreamSession(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return domainerrors.ErrSessionRequired
	}

	ctx := c.Request().Context()
	updates, release, err := h.uc.Watch(ctx, account.UID)
	if err != nil {
		return err
	}
	defer release()

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
		case snapshot, ok := <-updates:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(snapshot)
			if err != nil {
				h.logger.Error("failed to encode account snapshot", slog.Any("error", err))

				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
