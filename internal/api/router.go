package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/civiworks/workboard/internal/api/handler"
	"github.com/civiworks/workboard/internal/api/middleware"
	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
	"github.com/civiworks/workboard/internal/core/service"
)

// Deps carries everything the router composes.
type Deps struct {
	Sessions  *service.SessionStore
	Sequencer *service.Sequencer
	Auth      ports.AuthGateway
	Provision ports.Provisioner
	Users     ports.UserService
	Areas     ports.AreaService
	Reports   ports.ReportService
	Mongo     *mongo.Database
	Redis     *redis.Client
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions)
	setupHandler := handler.NewSetupHandler(deps.Provision, deps.Sessions)
	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.Sequencer)
	dashboardHandler := handler.NewDashboardHandler(deps.Users, deps.Reports)
	userHandler := handler.NewUserHandler(deps.Users)
	areaHandler := handler.NewAreaHandler(deps.Areas)
	reportHandler := handler.NewReportHandler(deps.Reports)

	// --- Auth and provisioning ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/setup", setupHandler.Status)
	e.POST("/setup", setupHandler.Create)
	e.GET("/session", sessionHandler.Get)

	// --- Gated dashboard surfaces ---
	guard := middleware.Guard(deps.Sessions, deps.Sequencer)
	g := e.Group("/dashboard", guard)
	g.GET("", dashboardHandler.Get)
	g.GET("/admin", dashboardHandler.Get)
	g.GET("/users", userHandler.List)
	g.POST("/users", userHandler.Create)
	g.DELETE("/users/:id", userHandler.Delete)
	g.GET("/areas", areaHandler.List)
	g.POST("/areas", areaHandler.Create)
	g.DELETE("/areas/:id", areaHandler.Delete)
	g.GET("/map", reportHandler.Map)
	g.GET("/reports", reportHandler.ListOwn)
	g.POST("/reports", reportHandler.Start)
	g.POST("/reports/:id/complete", reportHandler.Complete)

	// --- Health probes and metrics (no gating) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Unknown paths land on the dashboard, where the guard sorts them out.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, domain.PathDashboard)
	})

	return e
}
