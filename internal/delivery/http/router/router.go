// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"petfeeder/internal/delivery/http/middleware"
	"petfeeder/internal/delivery/http/router/handler"
	"petfeeder/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler     *handler.SessionHandler
	AccountHandler     *handler.AccountHandler
	DeviceHandler      *handler.DeviceHandler
	StatusHandler      *handler.StatusHandler
	ScheduleHandler    *handler.ScheduleHandler
	ConsumptionHandler *handler.ConsumptionHandler
	AdminHandler       *handler.AdminHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler     *handler.SessionHandler
	accountHandler     *handler.AccountHandler
	deviceHandler      *handler.DeviceHandler
	statusHandler      *handler.StatusHandler
	scheduleHandler    *handler.ScheduleHandler
	consumptionHandler *handler.ConsumptionHandler
	adminHandler       *handler.AdminHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler:     params.SessionHandler,
		accountHandler:     params.AccountHandler,
		deviceHandler:      params.DeviceHandler,
		statusHandler:      params.StatusHandler,
		scheduleHandler:    params.ScheduleHandler,
		consumptionHandler: params.ConsumptionHandler,
		adminHandler:       params.AdminHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Session routes: Resolve runs inside Authenticate, so GET /session is
	// just the echo of the resolved account.
	sessionGroup := e.Group("/session")
	sessionGroup.Use(r.authMiddleware.Authenticate)
	{
		sessionGroup.GET("", r.sessionHandler.GetSession)
		sessionGroup.GET("/stream", r.sessionHandler.StreamSession)
	}

	// Profile routes for the caller's own account
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.PUT("", r.accountHandler.UpdateProfile)
		profileGroup.PUT("/pet", r.accountHandler.UpdatePet)
	}

	// Device routes: pairing, commands, status and schedules
	deviceGroup := e.Group("/devices")
	deviceGroup.Use(r.authMiddleware.Authenticate)
	{
		deviceGroup.POST("/pair", r.deviceHandler.Pair)
		deviceGroup.POST("/:id/unlink", r.deviceHandler.Unlink)
		deviceGroup.POST("/:id/calibrate", r.deviceHandler.Calibrate)
		deviceGroup.GET("/:id/qr", r.deviceHandler.PairingCode)

		deviceGroup.GET("/:id/status", r.statusHandler.GetStatus)
		deviceGroup.GET("/:id/status/stream", r.statusHandler.StreamStatus)
		deviceGroup.POST("/:id/dispense", r.statusHandler.Dispense)

		deviceGroup.GET("/:id/schedules", r.scheduleHandler.List)
		deviceGroup.POST("/:id/schedules", r.scheduleHandler.Add)
		deviceGroup.PUT("/:id/schedules/:scheduleId", r.scheduleHandler.Update)
		deviceGroup.PATCH("/:id/schedules/:scheduleId/enabled", r.scheduleHandler.SetEnabled)
		deviceGroup.DELETE("/:id/schedules/:scheduleId", r.scheduleHandler.Remove)

		deviceGroup.GET("/:id/consumption", r.consumptionHandler.History)
		deviceGroup.GET("/:id/consumption/export", r.consumptionHandler.ExportCSV)
	}

	// Admin routes require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.POST("/devices", r.adminHandler.ProvisionDevice)
		adminGroup.GET("/devices", r.adminHandler.ListDevices)
		adminGroup.GET("/accounts", r.adminHandler.ListAccounts)
		adminGroup.GET("/audit", r.adminHandler.ListAudit)
		adminGroup.GET("/audit/export", r.adminHandler.ExportAudit)
	}
}
