package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/PrismarisTech/vine-lingo/internal/store"
	"github.com/PrismarisTech/vine-lingo/pkg/logger"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	log := logger.FromContext(c)

	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	// Check the Term Store if requested
	if c.QueryParam("check") == "store" {
		if _, err := store.Get().ListApproved(c.Request().Context()); err != nil {
			log.Error("Term store check failed", zap.Error(err))
			response["status"] = "error"
			response["store_status"] = "error"
			return c.JSON(http.StatusInternalServerError, response)
		}
		response["store_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}
