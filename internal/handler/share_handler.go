package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/PrismarisTech/vine-lingo/internal/middleware"
	"github.com/PrismarisTech/vine-lingo/internal/render"
	"github.com/PrismarisTech/vine-lingo/internal/store"
	"github.com/PrismarisTech/vine-lingo/pkg/config"
	"github.com/PrismarisTech/vine-lingo/pkg/logger"
)

// ShareSnapshot serves the snapshot document on a dedicated path, for
// deployments that rewrite bot traffic to /api/share at the edge instead of
// running the inline middleware. Pass-through here means redirecting into the
// interactive app, since there is no SPA handler below this route.
func ShareSnapshot(cfg *config.Config) echo.HandlerFunc {
	maxAge := int(cfg.Snapshot.HTMLMaxAge.Seconds())

	return func(c echo.Context) error {
		log := logger.FromContext(c)

		snap, err := render.RenderSnapshot(c.Request().Context(), store.Get(), render.SnapshotRequest{
			Origin:   middleware.RequestOrigin(c, cfg),
			TermID:   c.QueryParam("term"),
			NoScript: c.QueryParam("nojs") == "1",
			Debug:    c.QueryParam("debug") == "1",
		}, log)

		if errors.Is(err, render.ErrPassThrough) {
			return c.Redirect(http.StatusFound, "/")
		}
		if err != nil {
			log.Error("Share snapshot rendering failed", zap.Error(err))
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}

		c.Response().Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
		return c.HTMLBlob(snap.Status, snap.HTML)
	}
}
