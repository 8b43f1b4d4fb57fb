package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/userhive/account-api/docs"
	"github.com/userhive/account-api/internal/api/handler"
	"github.com/userhive/account-api/internal/api/middleware"
	"github.com/userhive/account-api/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(accounts ports.AccountService, sessions ports.SessionIssuer, store handler.Pinger, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	accountHandler := handler.NewAccountHandler(accounts)
	authMiddleware := middleware.Auth(sessions)

	// --- Public routes ---
	e.POST("/users/register", accountHandler.Register)
	e.POST("/users/login", accountHandler.Login)

	// --- Authenticated routes ---
	users := e.Group("/users", authMiddleware)
	users.GET("", accountHandler.List)
	users.POST("", accountHandler.CreateAdmin)
	users.GET("/me", accountHandler.Me)
	users.PATCH("/me", accountHandler.UpdateMe)
	users.DELETE("/:id", accountHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(store)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the store document readable?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
