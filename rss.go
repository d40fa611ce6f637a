package ofcrse

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/ofcrse/ofcrse/markdown"
)

// Feed builds the RSS feed of published articles in source order. Item
// content is the sanitized HTML of the article body.
func (a *App) Feed() (*feeds.Feed, error) {
	articles, err := a.Articles.ListArticles(false)
	if err != nil {
		return nil, err
	}
	base := a.Config.URL
	feed := &feeds.Feed{
		Title:       a.Config.Name,
		Link:        &feeds.Link{Href: BuildURL(base)},
		Description: a.Config.Description,
		Author:      &feeds.Author{Name: a.Config.Author},
		Items:       make([]*feeds.Item, 0, len(articles)),
	}
	var latest time.Time
	for _, art := range articles {
		var html strings.Builder
		if err := markdown.Markdown(art.Body).Render(context.Background(), &html); err != nil {
			return nil, fmt.Errorf("render %s: %w", art.Path, err)
		}
		link := BuildURL(base, art.Slug)
		item := &feeds.Item{
			Title:       art.Title,
			Link:        &feeds.Link{Href: link},
			Id:          link,
			Description: art.Description,
			Created:     *art.PublishedAt,
			Content:     html.String(),
		}
		if art.UpdatedAt != nil {
			item.Updated = *art.UpdatedAt
		}
		if art.PublishedAt.After(latest) {
			latest = *art.PublishedAt
		}
		feed.Items = append(feed.Items, item)
	}
	feed.Created = latest
	return feed, nil
}

// RSS returns the feed as an RSS 2.0 document.
func (a *App) RSS() ([]byte, error) {
	feed, err := a.Feed()
	if err != nil {
		return nil, err
	}
	out, err := feed.ToRss()
	if err != nil {
		return nil, fmt.Errorf("encode rss: %w", err)
	}
	return []byte(out), nil
}

func (a *App) handleFeed(c echo.Context) error {
	out, err := a.RSS()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", out)
}
