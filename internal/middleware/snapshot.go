package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/PrismarisTech/vine-lingo/internal/classify"
	"github.com/PrismarisTech/vine-lingo/internal/render"
	"github.com/PrismarisTech/vine-lingo/internal/store"
	"github.com/PrismarisTech/vine-lingo/pkg/config"
	"github.com/PrismarisTech/vine-lingo/pkg/logger"
	"github.com/PrismarisTech/vine-lingo/prometheus"
)

// SnapshotMiddleware classifies every inbound request and serves a
// prerendered snapshot document to crawlers and override requests in place of
// the SPA. Interactive and preview-image requests pass straight through to
// their handlers.
func SnapshotMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	maxAge := int(cfg.Snapshot.HTMLMaxAge.Seconds())

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := classify.FromHTTP(c.Request())
			intent := classify.Classify(req)
			prometheus.RecordClassification(string(intent))

			if intent != classify.IntentSnapshot {
				return next(c)
			}

			log := logger.FromContext(c).With(
				zap.String("intent", string(intent)),
				zap.Int("signature_list_version", classify.SignatureListVersion),
			)

			snap, err := render.RenderSnapshot(c.Request().Context(), store.Get(), render.SnapshotRequest{
				Origin:   RequestOrigin(c, cfg),
				TermID:   c.QueryParam("term"),
				NoScript: classify.NoScript(req),
				Debug:    classify.Debug(req),
			}, log)

			if errors.Is(err, render.ErrPassThrough) {
				return next(c)
			}
			if err != nil {
				// Only the debug override reaches here; real users always
				// fall through to the app instead.
				log.Error("Snapshot rendering failed", zap.Error(err))
				return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
			}

			log.Info("Serving snapshot",
				zap.String("kind", snap.Kind),
				zap.String("user_agent", c.Request().UserAgent()))

			c.Response().Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
			return c.HTMLBlob(snap.Status, snap.HTML)
		}
	}
}

// RequestOrigin builds the scheme://host prefix used for absolute links in
// snapshots, preferring the configured public origin over request headers.
func RequestOrigin(c echo.Context, cfg *config.Config) string {
	if cfg.Server.PublicOrigin != "" {
		return cfg.Server.PublicOrigin
	}
	scheme := c.Scheme()
	if fwd := c.Request().Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	host := c.Request().Host
	if host == "" {
		return ""
	}
	return fmt.Sprintf("%s://%s", scheme, host)
}
