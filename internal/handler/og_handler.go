package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/PrismarisTech/vine-lingo/internal/render"
	"github.com/PrismarisTech/vine-lingo/internal/store"
	"github.com/PrismarisTech/vine-lingo/pkg/config"
	"github.com/PrismarisTech/vine-lingo/pkg/logger"
)

// PreviewImage serves the 1200x630 PNG preview card. Link-unfurlers must
// always receive a renderable asset, so every resolution failure degrades to
// the default branding card; the endpoint never 404s in normal operation.
func PreviewImage(cfg *config.Config) echo.HandlerFunc {
	maxAge := int(cfg.Snapshot.ImageMaxAge.Seconds())

	return func(c echo.Context) error {
		log := logger.FromContext(c)
		raw := c.QueryParam("term")

		var png []byte
		var err error

		if raw != "" {
			term, resolveErr := render.ResolveTerm(c.Request().Context(), store.Get(), raw)
			switch {
			case resolveErr == nil:
				png, err = render.RenderTermCard(term)
			case errors.Is(resolveErr, store.ErrNotFound):
				log.Info("Preview image term not found, using default card",
					zap.String("term_id", raw))
			default:
				log.Warn("Preview image term fetch failed, using default card",
					zap.String("term_id", raw),
					zap.Error(resolveErr))
			}
		}

		if png == nil && err == nil {
			png, err = render.RenderDefaultCard()
		}
		if err != nil {
			log.Error("Preview image rendering failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to generate the image",
			})
		}

		c.Response().Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
		return c.Blob(http.StatusOK, "image/png", png)
	}
}
