package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/PrismarisTech/vine-lingo/pkg/jwtutil"
	"github.com/PrismarisTech/vine-lingo/pkg/logger"
	"github.com/PrismarisTech/vine-lingo/prometheus"
)

// AuthMiddleware verifies the moderator bearer token and stores the claims
// in the request context. It guards only the moderation surface; the public
// glossary needs no identity.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		prometheus.AuthAttemptsCounter.Inc()

		tokenString := c.Request().Header.Get("Authorization")
		if tokenString == "" {
			log.Warn("Missing authorization token")
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		// Remove "Bearer " prefix if present
		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:7]) == "BEARER " {
			tokenString = tokenString[7:]
		}

		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Warn("Invalid token", zap.Error(err))
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}

		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("logger", log.With(
			zap.String("moderator", claims.Email),
			zap.String("role", claims.Role),
		))

		return next(c)
	}
}
