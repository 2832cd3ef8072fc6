package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/keyline/property-api/docs"
	"github.com/keyline/property-api/internal/api/handler"
	"github.com/keyline/property-api/internal/api/metrics"
	"github.com/keyline/property-api/internal/api/middleware"
	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth        ports.AuthService
	Properties  ports.PropertyService
	Contractors ports.ContractorService
	TimeClock   ports.TimeClockService
	Ledger      ports.LedgerService
	Tokens      middleware.TokenParser

	// HealthChecks are run by GET /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.HealthCheck
	// StaticDir holds the single-page client. Empty disables static serving.
	StaticDir   string
	CORSOrigins []string
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(metrics.HTTPMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if deps.StaticDir != "" {
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Root:    deps.StaticDir,
			Index:   "index.html",
			HTML5:   true,
			Skipper: skipStatic,
		}))
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	propertyHandler := handler.NewPropertyHandler(deps.Properties)
	contractorHandler := handler.NewContractorHandler(deps.Contractors)
	timeEntryHandler := handler.NewTimeEntryHandler(deps.TimeClock)
	transactionHandler := handler.NewTransactionHandler(deps.Ledger)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	authn := middleware.Auth(deps.Tokens)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	clockRoles := middleware.RBAC(domain.RoleAdmin, domain.RoleContractor)

	// --- Auth routes ---
	api := e.Group("/api")
	api.POST("/auth", authHandler.Authenticate)
	api.POST("/auth/register", authHandler.Register, authn, adminOnly)
	api.POST("/auth/refresh", authHandler.Refresh, authn)
	api.GET("/auth/me", authHandler.Me, authn)

	// --- Properties & contractors (admin) ---
	api.POST("/properties", propertyHandler.Create, authn, adminOnly)
	api.GET("/properties", propertyHandler.List, authn, adminOnly)
	api.GET("/properties/:id", propertyHandler.Get, authn, adminOnly)

	api.POST("/contractors", contractorHandler.Create, authn, adminOnly)
	api.GET("/contractors", contractorHandler.List, authn, adminOnly)
	api.GET("/contractors/:id", contractorHandler.Get, authn, adminOnly)

	// --- Time clock ---
	api.POST("/time-entries/clock-in", timeEntryHandler.ClockIn, authn, clockRoles)
	api.POST("/time-entries/:id/clock-out", timeEntryHandler.ClockOut, authn, clockRoles)
	api.GET("/time-entries", timeEntryHandler.List, authn, clockRoles)

	// --- Ledger (any role, scoped to the caller) ---
	api.POST("/transactions", transactionHandler.Record, authn)
	api.GET("/transactions", transactionHandler.List, authn)
	api.GET("/transactions/balance", transactionHandler.Balance, authn)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// skipStatic keeps the SPA fallback away from API and operational routes.
func skipStatic(c echo.Context) bool {
	if c.Request().Method != http.MethodGet && c.Request().Method != http.MethodHead {
		return true
	}
	p := c.Request().URL.Path
	for _, prefix := range []string{"/api", "/health", "/metrics", "/swagger"} {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				ev = log.Warn()
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
