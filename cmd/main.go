package main

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/PrismarisTech/vine-lingo/internal/assistant"
	"github.com/PrismarisTech/vine-lingo/internal/handler"
	mid "github.com/PrismarisTech/vine-lingo/internal/middleware"
	"github.com/PrismarisTech/vine-lingo/internal/store"
	"github.com/PrismarisTech/vine-lingo/pkg/config"
	"github.com/PrismarisTech/vine-lingo/pkg/jwtutil"
	"github.com/PrismarisTech/vine-lingo/pkg/logger"
	"github.com/PrismarisTech/vine-lingo/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting vine-lingo", appConfig.LogConfig()...)

	// Initialize JWT utility for the moderation surface
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize the Term Store
	if err := store.Initialize(appConfig, log); err != nil {
		log.Fatal("Failed to initialize term store", zap.Error(err))
	}
	log.Info("Term store initialized", zap.String("backend", appConfig.Store.Backend))

	// Initialize the assistant; the surface degrades gracefully when the key
	// is missing, so this is not fatal.
	var chat *assistant.Assistant
	if appConfig.Assistant.APIKey != "" {
		chat, err = assistant.New(context.Background(), &appConfig.Assistant, store.Get(), log)
		if err != nil {
			log.Warn("Assistant disabled", zap.Error(err))
		} else {
			log.Info("Assistant initialized", zap.String("model", appConfig.Assistant.Model))
		}
	} else {
		log.Warn("Assistant disabled: no API key configured")
	}

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)
	e.Use(mid.SnapshotMiddleware(appConfig))

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Prerendered surfaces
	e.GET("/api/og", handler.PreviewImage(appConfig))
	e.GET("/api/share", handler.ShareSnapshot(appConfig))

	// Glossary API routes
	termAPI := e.Group("/api/terms")
	termAPI.GET("", handler.ListTerms)
	termAPI.GET("/:id", handler.GetTerm)
	termAPI.POST("", handler.SubmitTerm)

	// Moderation API routes - JWT required
	adminAPI := e.Group("/api/admin", mid.AuthMiddleware)
	adminAPI.GET("/terms/pending", handler.ListPendingTerms)
	adminAPI.POST("/terms/:id/approve", handler.ApproveTerm)
	adminAPI.POST("/terms/:id/reject", handler.RejectTerm)
	adminAPI.PUT("/terms/:id", handler.UpdateTerm)

	// Assistant
	e.POST("/api/assistant/chat", handler.AssistantChat(chat))

	// Interactive app (static SPA); the snapshot middleware sits in front
	e.Static("/", appConfig.Server.StaticDir)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server error", zap.Error(err))
	}
}
