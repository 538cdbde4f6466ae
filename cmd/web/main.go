package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shidduch-link/matchmaker-web/config"
	"github.com/shidduch-link/matchmaker-web/internal/cache"
	"github.com/shidduch-link/matchmaker-web/internal/handlers"
	"github.com/shidduch-link/matchmaker-web/internal/middleware"
	"github.com/shidduch-link/matchmaker-web/internal/principal"
	"github.com/shidduch-link/matchmaker-web/internal/upstream"
	"github.com/shidduch-link/matchmaker-web/pkg/httpclient"
	"github.com/shidduch-link/matchmaker-web/pkg/jwt"
	"github.com/shidduch-link/matchmaker-web/pkg/logger"
	"github.com/shidduch-link/matchmaker-web/pkg/metrics"
	"github.com/shidduch-link/matchmaker-web/pkg/profiling"
	"github.com/shidduch-link/matchmaker-web/pkg/storage"
	"github.com/shidduch-link/matchmaker-web/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// loadTemplates parses the page templates. Every page is a named define so
// handlers can address "users/index.html" style names directly.
func loadTemplates() (*template.Template, error) {
	tmpl, err := template.ParseGlob("web/templates/*.html")
	if err != nil {
		return nil, err
	}
	return tmpl.ParseGlob("web/templates/*/*.html")
}

// registerRoutes wires the HTML and JSON surface onto the router.
func registerRoutes(
	router *gin.Engine,
	bridge *principal.Bridge,
	generalRateLimiter, authRateLimiter, applyRateLimiter *middleware.RateLimiter,
	homeHandler *handlers.HomeHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	matchHandler *handlers.MatchHandler,
	applyHandler *handlers.ApplyHandler,
	profileHandler *handlers.ProfileHandler,
	uploadHandler *handlers.UploadHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Public pages. LoadSession only decorates; it never blocks.
	router.GET("/", middleware.LoadSession(bridge), homeHandler.Index)

	auth := router.Group("/auth", middleware.LoadSession(bridge))
	auth.GET("/login", authHandler.LoginPage)
	auth.POST("/login", authRateLimiter.Middleware(), authHandler.Login)
	auth.GET("/register", authHandler.RegisterPage)
	auth.POST("/register", authRateLimiter.Middleware(), authHandler.Register)
	auth.GET("/logout", authHandler.Logout)
	auth.GET("/reset-password", authHandler.ResetPasswordPage)
	auth.POST("/reset-password", authRateLimiter.Middleware(), authHandler.ResetPassword)

	apply := router.Group("/apply", middleware.LoadSession(bridge))
	apply.GET("", applyHandler.Page)
	apply.POST("", applyRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), applyHandler.Submit)
	apply.GET("/:matchmakerID", applyHandler.Page)
	apply.POST("/:matchmakerID", applyRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), applyHandler.Submit)

	// Authenticated pages
	users := router.Group("/users", middleware.RequireSession(bridge))
	users.GET("", userHandler.Index)
	users.GET("/new", userHandler.CreatePage)
	users.POST("/new", userHandler.Create)
	users.GET("/:id", userHandler.View)
	users.GET("/:id/edit", userHandler.EditPage)
	users.POST("/:id/edit", userHandler.Edit)

	matches := router.Group("/matches", middleware.RequireSession(bridge))
	matches.GET("", matchHandler.Index)
	matches.GET("/user/:id", matchHandler.UserMatches)
	matches.GET("/compatibility/:a/:b", matchHandler.Compatibility)
	matches.GET("/all", matchHandler.AllMatches)

	profile := router.Group("/profile", middleware.RequireSession(bridge))
	profile.GET("", profileHandler.View)
	profile.POST("", profileHandler.Update)

	// Operational JSON endpoints
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	api.POST("/upload-picture", middleware.RequireSession(bridge), middleware.BodySizeLimitMiddleware(10*1024*1024), uploadHandler.UploadPicture)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting matchmaker web front-end",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (opt-in)
	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability.ServiceName, cfg.Server.AppEnv)
	if err != nil {
		logger.Error("Failed to initialize profiler", zap.Error(err))
	} else {
		defer stopProfiler()
	}

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Object storage client for profile pictures
	var storageClient *storage.Client
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		storageClient, err = storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if err != nil {
			logger.Fatal("Failed to initialize storage client", zap.Error(err))
		}
	} else {
		logger.Warn("Object storage not configured; picture uploads disabled")
	}

	// Upstream matchmaking API client
	timeout := time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
	apiClient := upstream.NewClient(cfg.Upstream.BaseURL, httpclient.NewStandardClient(timeout), timeout)

	// Session bridge
	tokenManager := jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, cfg.Session.TTLHours)
	bridge := principal.NewBridge(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure)

	// Public matchmaker directory cache for the apply page
	directoryCache := cache.NewDirectoryCache(handlers.NewDirectorySource(apiClient), cfg.Cache.MatchmakerTTLSeconds)

	// Handlers
	homeHandler := handlers.NewHomeHandler(apiClient)
	authHandler := handlers.NewAuthHandler(apiClient, bridge)
	userHandler := handlers.NewUserHandler(apiClient)
	matchHandler := handlers.NewMatchHandler(apiClient)
	applyHandler := handlers.NewApplyHandler(apiClient, directoryCache)
	profileHandler := handlers.NewProfileHandler(apiClient)
	uploadHandler := handlers.NewUploadHandler(apiClient, storageClient)
	healthHandler := handlers.NewHealthHandler()

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:5001", "http://127.0.0.1:5001")
	}
	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true, // Required for session cookies
			MaxAge:           12 * time.Hour,
		}))
	}

	tmpl, err := loadTemplates()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}
	router.SetHTMLTemplate(tmpl)
	router.Static("/static", "web/static")

	// SECURITY: Rate limiters to prevent abuse and DoS attacks
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	authRateLimiter := middleware.NewRateLimiter(1, 5)        // 1 req/sec, burst of 5 (credential stuffing)
	applyRateLimiter := middleware.NewRateLimiter(0.5, 3)     // public form spam prevention
	defer generalRateLimiter.Stop()
	defer authRateLimiter.Stop()
	defer applyRateLimiter.Stop()

	registerRoutes(router, bridge, generalRateLimiter, authRateLimiter, applyRateLimiter,
		homeHandler, authHandler, userHandler, matchHandler, applyHandler,
		profileHandler, uploadHandler, healthHandler)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
