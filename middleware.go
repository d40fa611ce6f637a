package ofcrse

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// flyHeaders are proxy headers added by the hosting edge that must not
// reach the analytics backend.
var flyHeaders = []string{
	"Fly-Client-Ip",
	"Fly-Forwarded-Port",
	"Fly-Region",
	"X-Forwarded-Proto",
	"X-Forwarded-Port",
	"X-Forwarded-Ssl",
}

func (a *App) setupMiddleware() {
	e := a.Echo

	xff := echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)
	e.IPExtractor = func(r *http.Request) string {
		if ip, ok := r.Context().Value(clientIPKey{}).(string); ok {
			return ip
		}
		if ip := r.Header.Get("Fly-Client-Ip"); ip != "" {
			return ip
		}
		return xff(r)
	}

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(a.hostRouter)

	e.Pre(middleware.RemoveTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusTemporaryRedirect,
		Skipper: func(c echo.Context) bool {
			return isCountPath(c.Request().URL.Path)
		},
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogHost:      true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logrus.WithFields(logrus.Fields{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency.String(),
				"host":      v.Host,
				"client_ip": v.RemoteIP,
				"ua":        v.UserAgent,
			})
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("request")
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			switch strings.ToLower(path.Ext(p)) {
			case ".png", ".jpg", ".jpeg", ".webp", ".woff2":
				return true
			}
			return isCountPath(p)
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		HSTSMaxAge:         31536000,
	}))
}

func isCountPath(p string) bool {
	return p == "/count" || strings.HasPrefix(p, "/count/")
}

// setupCountProxy forwards /count and /count/* to the analytics backend
// with the /count prefix removed.
func (a *App) setupCountProxy(target *url.URL) {
	balancer := middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{{URL: target}})
	mw := []echo.MiddlewareFunc{
		countHeaders(target.Host),
		middleware.ProxyWithConfig(middleware.ProxyConfig{
			Balancer: balancer,
			Rewrite: map[string]string{
				"^/count":   "/",
				"^/count?*": "/?$1",
				"^/count/*": "/$1",
			},
		}),
	}
	// The proxy answers every request, so the handler is never reached.
	a.Echo.Any("/count", echo.NotFoundHandler, mw...)
	a.Echo.Any("/count/*", echo.NotFoundHandler, mw...)
}

// clientIPKey pins the client IP on a request whose edge headers were removed.
type clientIPKey struct{}

// countHeaders strips the edge headers and points Host at the backend.
// The proxy sets X-Real-IP from the client IP pinned here.
func countHeaders(host string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			req := c.Request()
			req = req.WithContext(context.WithValue(req.Context(), clientIPKey{}, ip))
			for _, h := range flyHeaders {
				req.Header.Del(h)
			}
			req.Header.Set(echo.HeaderXRealIP, ip)
			req.Host = host
			c.SetRequest(req)
			return next(c)
		}
	}
}
