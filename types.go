package ofcrse

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Article is one entry of the articles collection: validated front-matter
// plus the Markdown body.
type Article struct {
	Slug        string
	Path        string // source path relative to the content root
	Title       string
	Description string
	PublishedAt *time.Time
	UpdatedAt   *time.Time
	Cover       Cover
	Body        string
}

// Draft reports whether the article has no publish date.
func (a Article) Draft() bool {
	return a.PublishedAt == nil
}

// Link returns the site-relative path of the article.
func (a Article) Link() string {
	return "/" + a.Slug
}

// CoverOverride replaces individual generated card properties. Nil fields
// keep the generated value.
type CoverOverride struct {
	Title            *string  `yaml:"title"`
	Subtitle         *string  `yaml:"subtitle"`
	TitleFontSize    *float64 `yaml:"titleFontSize"`
	SubtitleFontSize *float64 `yaml:"subtitleFontSize"`
}

// Cover is the front-matter `cover` field: true, false or an override
// mapping. The zero value (field absent) generates a default cover.
type Cover struct {
	Disabled bool
	Override *CoverOverride
}

// Enabled reports whether a cover image should be generated.
func (c Cover) Enabled() bool {
	return !c.Disabled
}

// UnmarshalYAML accepts a boolean or an override mapping.
func (c *Cover) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("cover must be a boolean or a mapping")
		}
		*c = Cover{Disabled: !enabled}
		return nil
	case yaml.MappingNode:
		var o CoverOverride
		if err := node.Decode(&o); err != nil {
			return err
		}
		*c = Cover{Override: &o}
		return nil
	}
	return fmt.Errorf("cover must be a boolean or a mapping")
}

// dateLayouts are the date-like string forms accepted in front-matter.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Date is a front-matter timestamp. It accepts YAML timestamps as well as
// quoted date strings.
type Date struct {
	time.Time
}

// UnmarshalYAML parses the scalar with each of dateLayouts in turn.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected a date")
	}
	t, err := ParseDate(node.Value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDate parses a date-like string. Values without a zone are UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// FormatDate renders t the way cards and pages show dates: "January 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
