package ofcrse

import (
	"bytes"
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap returns the sitemap of the home page and every published article.
func (a *App) Sitemap() ([]byte, error) {
	articles, err := a.Articles.ListArticles(false)
	if err != nil {
		return nil, err
	}
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
	}
	for _, art := range articles {
		mod := art.PublishedAt
		if art.UpdatedAt != nil {
			mod = art.UpdatedAt
		}
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, art.Slug),
			LastMod: mod.Format("2006-01-02"),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(sitemap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *App) handleSitemap(c echo.Context) error {
	out, err := a.Sitemap()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", out)
}
