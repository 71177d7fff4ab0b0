package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"taskly-be/internal/config"
	"taskly-be/internal/controllers"
	"taskly-be/internal/database"
	"taskly-be/internal/jwt"
	"taskly-be/internal/metrics"
	"taskly-be/internal/middleware"
	"taskly-be/internal/repository"
	"taskly-be/internal/service"
)

func main() {
	seed := flag.Bool("seed", false, "seed demo data and exit")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration; a missing JWT secret or database URL is fatal.
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close() // Release the connection pool when the process exits

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	if *seed {
		if err := database.Seed(db, cfg.BcryptCost, logger); err != nil {
			logger.Fatalf("Failed to seed database: %v", err)
		}
		return
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTLDays)*24*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, cfg.BcryptCost, logger)
	todoService := service.NewTodoService(todoRepo)

	// Initialize controllers
	errs := controllers.NewErrorTranslator(logger, cfg.IsDevelopment())
	authController := controllers.NewAuthController(authService, errs)
	todoController := controllers.NewTodoController(todoService, errs)

	// Initialize metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	authRequired := middleware.AuthMiddleware(jwtService, userRepo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics(collector))

	// Prometheus scrape endpoint (no rate limiting)
	router.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	api := router.Group("/api")
	api.Use(generalRateLimiter.Middleware())
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "OK",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})

		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.Middleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.GET("/me", authRequired, authController.Me)
		}

		// Protected routes - require JWT authentication
		todos := api.Group("/todos")
		todos.Use(authRequired)
		{
			todos.GET("", todoController.List)
			todos.POST("", todoController.Create)
			todos.GET("/:id", todoController.Get)
			todos.PUT("/:id", todoController.Update)
			todos.DELETE("/:id", todoController.Delete)
			todos.PATCH("/:id/toggle", todoController.Toggle)
		}
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}
}
