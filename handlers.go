package ofcrse

import (
	"errors"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const healthCheckHost = "health.check"

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// hostRouter dispatches by Host before routing: the health check host,
// the shortlink hosts and the alternate hosts never reach the site routes.
func (a *App) hostRouter(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		host := requestHost(c.Request())
		switch {
		case host == healthCheckHost:
			if c.Request().URL.Path == "/healthz" {
				return handleHealth(c)
			}
			return echo.ErrNotFound
		case host == a.Config.ShortlinkHost:
			return a.handleShortlink(c)
		case host == a.Config.MusicHost:
			return a.handleMusic(c)
		case a.isRedirectHost(host):
			return c.Redirect(http.StatusMovedPermanently, a.Config.URL+c.Request().URL.RequestURI())
		case a.isOwnedSubdomain(host):
			return echo.ErrNotFound
		}
		return next(c)
	}
}

func requestHost(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}

func (a *App) isRedirectHost(host string) bool {
	for _, h := range a.Config.RedirectHosts {
		if host == h {
			return true
		}
	}
	return false
}

func (a *App) isOwnedSubdomain(host string) bool {
	for _, d := range a.Config.OwnedDomains {
		if strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// handleShortlink redirects /{name} to its target and / to the site.
func (a *App) handleShortlink(c echo.Context) error {
	name := strings.TrimPrefix(c.Request().URL.Path, "/")
	if name == "" {
		return c.Redirect(http.StatusFound, a.Config.URL)
	}
	target, ok := a.shortlinks[name]
	if !ok {
		return echo.ErrNotFound
	}
	return c.Redirect(http.StatusFound, target)
}

func (a *App) handleMusic(c echo.Context) error {
	target, ok := a.shortlinks["music"]
	if c.Request().URL.Path != "/" || !ok {
		return echo.ErrNotFound
	}
	return c.Redirect(http.StatusFound, target)
}

// handleStatic serves the built site from DistDir. Paths without a "." are
// directories and resolve to their index.html.
func (a *App) handleStatic(c echo.Context) error {
	p := path.Clean("/" + c.Param("*"))
	if !strings.Contains(p, ".") {
		p = path.Join(p, "index.html")
	}
	file := filepath.Join(a.Config.DistDir, filepath.FromSlash(p))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return echo.ErrNotFound
	}
	if longLived(p) {
		c.Response().Header().Set("Cache-Control", "public, max-age=31536000")
	}
	return c.File(file)
}

// longLived reports whether p is a fingerprinted asset type.
func longLived(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".js", ".mjs", ".css", ".woff2":
		return true
	}
	return false
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	} else if IsNotFound(err) {
		code = http.StatusNotFound
	}
	if code == http.StatusNotFound {
		a.notFound(c)
		return
	}
	if code >= 500 {
		logrus.WithField("uri", c.Request().RequestURI).WithError(err).Error("server error")
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// notFound serves DistDir/404.html when the site has one and an empty 404
// otherwise.
func (a *App) notFound(c echo.Context) {
	page, err := os.ReadFile(filepath.Join(a.Config.DistDir, "404.html"))
	if err != nil {
		_ = c.NoContent(http.StatusNotFound)
		return
	}
	_ = c.HTMLBlob(http.StatusNotFound, page)
}
