package ofcrse

import (
	"net/url"
	"path"
	"strings"
)

// Slugify converts a title or path segment to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments. The site serves slashless
// paths, so no trailing slash is added.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	if len(pathSegments) == 0 {
		if u.Path == "" {
			u.Path = "/"
		}
		return u.String()
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	return u.String()
}

// CoverPath returns the site-relative path of the cover image for slug.
func CoverPath(slug string) string {
	return "/images/cover/" + slug + ".png"
}

// CoverURL returns the absolute cover image URL for slug.
func CoverURL(base, slug string) string {
	return BuildURL(base, "images", "cover", slug+".png")
}
