package ofcrse

import (
	"fmt"

	"github.com/ofcrse/ofcrse/card"
)

// Card font sizes.
const (
	DefaultTitleFontSize    = 200
	DefaultSubtitleFontSize = 70
	ArticleTitleFontSize    = 100
	ArticleSubtitleFontSize = 40
	BylineFontSize          = 50
)

// DefaultSubtitle is the subtitle of the site-wide card.
const DefaultSubtitle = "is Benjamin Tan’s home on the internet."

// ArticleQuery is the read side of the content the resolver needs.
type ArticleQuery interface {
	ListArticles(includeDrafts bool) ([]Article, error)
	GetArticle(slug string) (Article, error)
}

// CoverResolver turns slugs into card properties.
type CoverResolver struct {
	Articles ArticleQuery
	Name     string // title of the default card
	Author   string
	Byline   bool // "By <author>" subtitle instead of metadata rows
}

// DefaultCoverProperties returns the site-wide card.
func (r *CoverResolver) DefaultCoverProperties() card.Properties {
	name := r.Name
	if name == "" {
		name = SiteName
	}
	return card.Properties{
		Title:            name,
		Subtitle:         DefaultSubtitle,
		TitleFontSize:    DefaultTitleFontSize,
		SubtitleFontSize: DefaultSubtitleFontSize,
	}
}

// ResolveImageProperties returns the card properties for slug. The
// reserved DefaultSlug yields the site card without reading content.
// Unknown slugs return ErrNotFound and `cover: false` articles return
// ErrCoverDisabled.
func (r *CoverResolver) ResolveImageProperties(slug string) (card.Properties, error) {
	if slug == DefaultSlug {
		return r.DefaultCoverProperties(), nil
	}
	a, err := r.Articles.GetArticle(slug)
	if err != nil {
		return card.Properties{}, fmt.Errorf("resolve cover %q: %w", slug, err)
	}
	if !a.Cover.Enabled() {
		return card.Properties{}, fmt.Errorf("resolve cover %q: %w", slug, ErrCoverDisabled)
	}
	p := r.baseProperties(a)
	if o := a.Cover.Override; o != nil {
		p = mergeOverride(p, o)
	}
	return p, nil
}

func (r *CoverResolver) author() string {
	if r.Author == "" {
		return SiteAuthor
	}
	return r.Author
}

func (r *CoverResolver) baseProperties(a Article) card.Properties {
	p := card.Properties{
		Title:            a.Title,
		TitleFontSize:    ArticleTitleFontSize,
		SubtitleFontSize: ArticleSubtitleFontSize,
	}
	if r.Byline {
		p.Subtitle = "By " + r.author()
		p.SubtitleFontSize = BylineFontSize
		return p
	}
	p.Metadata = MetadataRows(a, r.author())
	return p
}

// MetadataRows lists the name/value pairs shown under an article title.
func MetadataRows(a Article, author string) []card.Field {
	rows := []card.Field{{Name: "An article by", Value: author}}
	if a.PublishedAt != nil {
		rows = append(rows, card.Field{Name: "Published on", Value: FormatDate(*a.PublishedAt)})
	} else {
		rows = append(rows, card.Field{Name: "Status", Value: "Draft"})
	}
	if a.UpdatedAt != nil {
		rows = append(rows, card.Field{Name: "Last updated", Value: FormatDate(*a.UpdatedAt)})
	}
	return rows
}

// mergeOverride applies the set fields of o over p. A subtitle replaces
// any metadata rows.
func mergeOverride(p card.Properties, o *CoverOverride) card.Properties {
	if o.Title != nil {
		p.Title = *o.Title
	}
	if o.Subtitle != nil {
		p.Subtitle = *o.Subtitle
		p.Metadata = nil
	}
	if o.TitleFontSize != nil {
		p.TitleFontSize = *o.TitleFontSize
	}
	if o.SubtitleFontSize != nil {
		p.SubtitleFontSize = *o.SubtitleFontSize
	}
	return p
}

// EnumerateCoverSlugs lists the slugs to render at build time: DefaultSlug
// first, then every article, drafts included, whose cover is not disabled.
func (r *CoverResolver) EnumerateCoverSlugs() ([]string, error) {
	articles, err := r.Articles.ListArticles(true)
	if err != nil {
		return nil, fmt.Errorf("enumerate covers: %w", err)
	}
	slugs := []string{DefaultSlug}
	seen := map[string]bool{DefaultSlug: true}
	for _, a := range articles {
		if !a.Cover.Enabled() || seen[a.Slug] {
			continue
		}
		seen[a.Slug] = true
		slugs = append(slugs, a.Slug)
	}
	return slugs, nil
}
