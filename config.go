package ofcrse

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Build-time site constants.
const (
	SiteName        = "ofcrse"
	SiteAuthor      = "Benjamin Tan"
	SiteURL         = "https://ofcr.se"
	SiteDescription = "Benjamin Tan’s home on the internet."
)

// SiteConfig holds all configuration for the site server and builder.
type SiteConfig struct {
	Name        string // Site name (default SiteName)
	URL         string // Canonical URL (default SiteURL)
	Description string // Site description for RSS and meta tags
	Author      string // Author shown on cover cards

	Addr           string // Listen address (default ":3000")
	ContentDir     string // Articles collection (default "src/content/articles")
	DistDir        string // Static site output (default "dist")
	FontPath       string // Card font; empty uses the embedded Go Regular
	ShortlinksFile string // JSON map of shortlink name to URL (default "shortlinks.json")
	GoatCounterURL string // Analytics backend proxied under /count; empty disables

	ShortlinkHost string   // Host serving shortlinks (default "l.ofcr.se")
	MusicHost     string   // Host redirecting to the "music" shortlink (default "music.ofcr.se")
	RedirectHosts []string // Hosts redirected to URL (default oftcour.se, www.oftcour.se, ofcrse.fly.dev)
	OwnedDomains  []string // Unknown subdomains of these return 404 (default ofcr.se, oftcour.se)

	CoverByline  bool // Use a "By <author>" subtitle instead of the metadata row
	WatchContent bool // Reload articles when files under ContentDir change

	ContentCacheTTL time.Duration // 0 keeps articles until invalidated
	RenderLimit     int           // On-demand cover renders per IP per RenderWindow (default 30)
	RenderWindow    time.Duration // default 1min
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = SiteName
	}
	if c.URL == "" {
		c.URL = SiteURL
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Description == "" {
		c.Description = SiteDescription
	}
	if c.Author == "" {
		c.Author = SiteAuthor
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "src/content/articles"
	}
	if c.DistDir == "" {
		c.DistDir = "dist"
	}
	if c.ShortlinksFile == "" {
		c.ShortlinksFile = "shortlinks.json"
	}
	if c.ShortlinkHost == "" {
		c.ShortlinkHost = "l.ofcr.se"
	}
	if c.MusicHost == "" {
		c.MusicHost = "music.ofcr.se"
	}
	if c.RedirectHosts == nil {
		c.RedirectHosts = []string{"oftcour.se", "www.oftcour.se", "ofcrse.fly.dev"}
	}
	if c.OwnedDomains == nil {
		c.OwnedDomains = []string{"ofcr.se", "oftcour.se"}
	}
	if c.RenderLimit == 0 {
		c.RenderLimit = 30
	}
	if c.RenderWindow == 0 {
		c.RenderWindow = time.Minute
	}
}

// ConfigFromEnv builds a SiteConfig from the environment, after loading an
// optional .env file from the working directory.
func ConfigFromEnv() SiteConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env")
	}
	cfg := SiteConfig{
		URL:            EnvOr("SITE_URL", SiteURL),
		Addr:           ":" + EnvOr("PORT", "3000"),
		ContentDir:     EnvOr("CONTENT_DIR", "src/content/articles"),
		DistDir:        EnvOr("DIST_DIR", "dist"),
		FontPath:       os.Getenv("FONT_PATH"),
		ShortlinksFile: EnvOr("SHORTLINKS_FILE", "shortlinks.json"),
		GoatCounterURL: os.Getenv("GOATCOUNTER_URL"),
		CoverByline:    envBool("COVER_BYLINE"),
		WatchContent:   envBool("WATCH_CONTENT"),
	}
	cfg.setDefaults()
	return cfg
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

// Option configures additional App behavior.
type Option func(*App)

// WithContent replaces the article source (default: files under ContentDir).
func WithContent(loader ArticleLoader) Option {
	return func(a *App) {
		a.loader = loader
	}
}

// WithFont sets the card font bytes instead of reading FontPath.
func WithFont(data []byte) Option {
	return func(a *App) {
		a.fontData = data
	}
}

// WithShortlinks sets the shortlink table instead of reading ShortlinksFile.
func WithShortlinks(links map[string]string) Option {
	return func(a *App) {
		a.shortlinks = links
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
