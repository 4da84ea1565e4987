package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	redisdriver "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/qoder/minijira/docs"
	"github.com/qoder/minijira/internal/api/handler"
	"github.com/qoder/minijira/internal/api/middleware"
	"github.com/qoder/minijira/internal/auth"
	"github.com/qoder/minijira/internal/core/service"
	"github.com/qoder/minijira/internal/infrastructure/db/mongo"
	"github.com/qoder/minijira/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongodriver.Database, rdb *redisdriver.Client, codec *auth.TokenCodec, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("minijira"))

	// --- Dependencies ---
	seq := mongo.NewSequence(db)
	userRepo := mongo.NewUserRepository(db, seq)
	projectRepo := mongo.NewProjectRepository(db, seq)
	issueRepo := mongo.NewIssueRepository(db, seq)
	statsCache := redis.NewStatsCache(rdb, log)

	authService := service.NewAuthService(userRepo, codec, log)
	projectService := service.NewProjectService(projectRepo, issueRepo, statsCache, log)
	issueService := service.NewIssueService(issueRepo, projectRepo, statsCache, log)
	dashboardService := service.NewDashboardService(projectRepo, issueRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	issueHandler := handler.NewIssueHandler(issueService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// --- Public routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	authed := e.Group("/api", middleware.Auth(codec))

	authed.POST("/projects", projectHandler.Create)
	authed.GET("/projects", projectHandler.List)
	authed.GET("/projects/:id", projectHandler.Get)
	authed.PUT("/projects/:id", projectHandler.Update)
	authed.DELETE("/projects/:id", projectHandler.Delete)

	authed.POST("/projects/:projectId/issues", issueHandler.Create)
	authed.GET("/projects/:projectId/issues", issueHandler.List)
	authed.PUT("/issues/:id", issueHandler.Update)
	authed.DELETE("/issues/:id", issueHandler.Delete)

	authed.GET("/dashboard/stats", dashboardHandler.Stats)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
