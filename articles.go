package ofcrse

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ArticleLoader is the source the cache reads from.
type ArticleLoader interface {
	Load() ([]Article, error)
}

// ArticleCache keeps the loaded articles in memory until invalidated or
// until the TTL passes. A zero TTL keeps them until Invalidate.
type ArticleCache struct {
	mu       sync.RWMutex
	articles []Article
	invalid  error // validation failures of the current load
	err      error // load failed outright
	loaded   bool
	fetched  time.Time
	ttl      time.Duration
	loader   ArticleLoader
}

// NewArticleCache creates an ArticleCache backed by loader.
func NewArticleCache(loader ArticleLoader, ttl time.Duration) *ArticleCache {
	return &ArticleCache{loader: loader, ttl: ttl}
}

func (c *ArticleCache) valid() bool {
	return c.loaded && (c.ttl == 0 || time.Since(c.fetched) < c.ttl)
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ArticleCache) Invalidate() {
	c.mu.Lock()
	c.articles = nil
	c.invalid = nil
	c.err = nil
	c.loaded = false
	c.mu.Unlock()
}

func (c *ArticleCache) load() {
	if c.valid() {
		return
	}
	articles, err := c.loader.Load()
	c.articles, c.invalid, c.err = articles, nil, nil
	var verr *ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		logrus.WithError(err).Warn("some content entries failed validation")
		c.invalid = err
	default:
		logrus.WithError(err).Error("could not load content")
		c.err = err
	}
	c.loaded = true
	c.fetched = time.Now()
}

// ensureLoaded returns the cached articles after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ArticleCache) ensureLoaded() ([]Article, error) {
	c.mu.RLock()
	if c.valid() {
		articles, err := c.articles, c.err
		c.mu.RUnlock()
		return articles, err
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	return c.articles, c.err
}

// LoadErrors returns the validation failures of the current load, joined,
// or the load error itself when nothing could be read.
func (c *ArticleCache) LoadErrors() error {
	if _, err := c.ensureLoaded(); err != nil {
		return err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.invalid
}

// ListArticles returns the articles in source order. Drafts (no publish
// date) are left out unless includeDrafts is set. Entries that failed
// validation are never listed; the error is reserved for a failed load.
func (c *ArticleCache) ListArticles(includeDrafts bool) ([]Article, error) {
	articles, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if includeDrafts {
		return articles, nil
	}
	var published []Article
	for _, a := range articles {
		if !a.Draft() {
			published = append(published, a)
		}
	}
	return published, nil
}

// GetArticle returns the article with the given slug, drafts included.
func (c *ArticleCache) GetArticle(slug string) (Article, error) {
	articles, err := c.ensureLoaded()
	if err != nil {
		return Article{}, err
	}
	for _, a := range articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Article{}, ErrNotFound
}
