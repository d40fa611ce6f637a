package ofcrse

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSlug is reserved for the site-wide card; no article may use it.
const DefaultSlug = "default"

// markdownExts are the file extensions loaded as articles.
var markdownExts = map[string]bool{".md": true, ".markdown": true, ".mdx": true}

// ContentStore reads the articles collection from a directory tree of
// Markdown files with YAML front-matter.
type ContentStore struct {
	fsys fs.FS
}

// NewContentStore returns a store reading from fsys (usually os.DirFS).
func NewContentStore(fsys fs.FS) *ContentStore {
	return &ContentStore{fsys: fsys}
}

// Load parses every Markdown file in lexical path order. Entries that fail
// validation are left out and reported together in the returned error;
// the valid entries are still returned.
func (s *ContentStore) Load() ([]Article, error) {
	var (
		articles []Article
		errs     []error
		seen     = make(map[string]string)
	)
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !markdownExts[strings.ToLower(path.Ext(p))] || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		data, err := fs.ReadFile(s.fsys, p)
		if err != nil {
			return err
		}
		a, err := ParseArticle(p, data)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if prev, ok := seen[a.Slug]; ok {
			errs = append(errs, &ValidationError{Path: p, Field: "slug", Err: fmt.Errorf("%q already used by %s", a.Slug, prev)})
			return nil
		}
		seen[a.Slug] = p
		articles = append(articles, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return articles, errors.Join(errs...)
}

// frontMatter mirrors the collection schema. Pointers tell absent fields
// apart from empty ones.
type frontMatter struct {
	Title       *string `yaml:"title"`
	Description *string `yaml:"description"`
	PublishedAt *Date   `yaml:"publishedAt"`
	UpdatedAt   *Date   `yaml:"updatedAt"`
	Cover       Cover   `yaml:"cover"`
}

// ParseArticle validates one content file. p is its path relative to the
// content root and determines the slug.
func ParseArticle(p string, data []byte) (Article, error) {
	head, body, ok := splitFrontMatter(data)
	if !ok {
		return Article{}, &ValidationError{Path: p, Err: errors.New("missing front-matter delimiters")}
	}

	var fm frontMatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return Article{}, &ValidationError{Path: p, Err: fmt.Errorf("parse front-matter: %w", err)}
	}
	if fm.Title == nil || strings.TrimSpace(*fm.Title) == "" {
		return Article{}, &ValidationError{Path: p, Field: "title", Err: errors.New("required")}
	}
	if fm.Description == nil {
		return Article{}, &ValidationError{Path: p, Field: "description", Err: errors.New("required")}
	}

	slug := SlugFromPath(p)
	if slug == "" {
		return Article{}, &ValidationError{Path: p, Field: "slug", Err: errors.New("path yields an empty slug")}
	}
	if slug == DefaultSlug {
		return Article{}, &ValidationError{Path: p, Field: "slug", Err: fmt.Errorf("%q is reserved", DefaultSlug)}
	}

	return Article{
		Slug:        slug,
		Path:        p,
		Title:       *fm.Title,
		Description: *fm.Description,
		PublishedAt: fm.PublishedAt.timePtr(),
		UpdatedAt:   fm.UpdatedAt.timePtr(),
		Cover:       fm.Cover,
		Body:        string(body),
	}, nil
}

func (d *Date) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// splitFrontMatter separates a leading "---" delimited YAML block from the body.
func splitFrontMatter(data []byte) (head, body []byte, ok bool) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return nil, nil, false
	}
	rest := data[len("---\n"):]
	if bytes.HasPrefix(rest, []byte("---\n")) || bytes.Equal(rest, []byte("---")) {
		return nil, bytes.TrimPrefix(rest[3:], []byte("\n")), true
	}
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		if !bytes.HasSuffix(rest, []byte("\n---")) {
			return nil, nil, false
		}
		return rest[:len(rest)-len("\n---")], nil, true
	}
	return rest[:end], bytes.TrimLeft(rest[end+len("\n---\n"):], "\n"), true
}

// SlugFromPath derives an article slug from its content path: the
// extension is dropped, a trailing "index" segment is dropped, and each
// remaining segment is slugified.
func SlugFromPath(p string) string {
	p = strings.TrimSuffix(p, path.Ext(p))
	segments := strings.Split(p, "/")
	if n := len(segments); n > 1 && segments[n-1] == "index" {
		segments = segments[:n-1]
	}
	var out []string
	for _, seg := range segments {
		if s := Slugify(seg); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "/")
}
