package ofcrse

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/ofcrse/ofcrse/card"
)

// RenderCover resolves slug and renders its card as PNG. Every call renders
// afresh; nothing is cached.
func (a *App) RenderCover(slug string) ([]byte, error) {
	props, err := a.Covers.ResolveImageProperties(slug)
	if err != nil {
		return nil, err
	}
	return a.Renderer.PNG(card.Build(props))
}

// handleCover serves /images/cover/{slug}.png. Slugs may contain slashes
// for nested articles.
func (a *App) handleCover(c echo.Context) error {
	name := c.Param("*")
	slug, ok := strings.CutSuffix(name, ".png")
	if !ok || slug == "" {
		return echo.ErrNotFound
	}
	out, err := a.RenderCover(slug)
	if err != nil {
		if IsNotFound(err) {
			return echo.ErrNotFound
		}
		logrus.WithField("slug", slug).WithError(err).Error("cover render failed")
		return err
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.Blob(http.StatusOK, "image/png", out)
}
