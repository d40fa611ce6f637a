// Package ofcrse serves and builds the ofcrse site: the articles collection,
// its social cover images, the RSS feed and sitemap, and the static output
// of the site generator.
//
// Cover images are rendered on demand from article front-matter. The same
// App can write every output to disk for a static deploy (see Build).
package ofcrse

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/ofcrse/ofcrse/render"
)

// App is the central ofcrse application. It wires together the content
// cache, the cover resolver and renderer, handlers and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Articles *ArticleCache
	Covers   *CoverResolver
	Renderer *render.Renderer

	loader       ArticleLoader
	fontData     []byte
	shortlinks   map[string]string
	limiter      *RenderLimiter
	watcher      *ContentWatcher
	customRoutes []func(*App)
}

// New creates an App with the given configuration. The font is parsed and
// the shortlinks are read here, so a bad font or shortlinks file fails fast.
func New(cfg SiteConfig, opts ...Option) (*App, error) {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	if a.loader == nil {
		a.loader = NewContentStore(os.DirFS(a.Config.ContentDir))
	}
	a.Articles = NewArticleCache(a.loader, a.Config.ContentCacheTTL)
	a.Covers = &CoverResolver{
		Articles: a.Articles,
		Name:     a.Config.Name,
		Author:   a.Config.Author,
		Byline:   a.Config.CoverByline,
	}

	if a.fontData == nil && a.Config.FontPath != "" {
		data, err := os.ReadFile(a.Config.FontPath)
		if err != nil {
			return nil, fmt.Errorf("ofcrse: read font: %w", err)
		}
		a.fontData = data
	}
	var err error
	if a.fontData != nil {
		a.Renderer, err = render.New(a.fontData)
	} else {
		a.Renderer, err = render.NewDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("ofcrse: %w", err)
	}

	if a.shortlinks == nil {
		links, err := LoadShortlinks(a.Config.ShortlinksFile)
		if err != nil {
			return nil, fmt.Errorf("ofcrse: %w", err)
		}
		a.shortlinks = links
	}

	a.limiter = NewRenderLimiter(a.Config.RenderLimit, a.Config.RenderWindow)

	a.setupMiddleware()
	if err := a.setupRoutes(); err != nil {
		a.Close()
		return nil, err
	}
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

func (a *App) setupRoutes() error {
	e := a.Echo

	e.GET("/healthz", handleHealth)
	e.GET("/images/cover/*", a.handleCover, a.limiter.Middleware)
	e.GET("/rss.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)

	if a.Config.GoatCounterURL != "" {
		target, err := url.Parse(a.Config.GoatCounterURL)
		if err != nil || target.Host == "" {
			return fmt.Errorf("ofcrse: invalid GoatCounter URL %q", a.Config.GoatCounterURL)
		}
		a.setupCountProxy(target)
	}

	e.Match([]string{http.MethodGet, http.MethodHead}, "/*", a.handleStatic)
	return nil
}

// Start begins watching content when configured and serves until the
// server is shut down.
func (a *App) Start() error {
	if a.Config.WatchContent {
		w, err := NewContentWatcher(a.Config.ContentDir, 200*time.Millisecond, a.Articles.Invalidate)
		if err != nil {
			return fmt.Errorf("ofcrse: %w", err)
		}
		a.watcher = w
		logrus.WithField("dir", a.Config.ContentDir).Info("watching content")
	}

	logrus.WithField("addr", a.Config.Addr).WithField("url", a.Config.URL).Info("listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close stops background work. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}
