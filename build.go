package ofcrse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// BuildError reports one output that could not be produced.
type BuildError struct {
	Entry string // slug or output file
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: %v", e.Entry, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Build writes every cover image plus rss.xml and sitemap.xml under outDir.
// A failing entry is skipped and the rest still build; the returned error
// joins every failure, content validation failures included. written lists
// the files produced, relative to outDir.
func (a *App) Build(outDir string) (written []string, err error) {
	var errs []error
	if verr := a.Articles.LoadErrors(); verr != nil {
		errs = append(errs, &BuildError{Entry: "content", Err: verr})
	}

	slugs, err := a.Covers.EnumerateCoverSlugs()
	if err != nil {
		return nil, err
	}
	for _, slug := range slugs {
		rel := filepath.FromSlash(CoverPath(slug)[1:])
		data, err := a.RenderCover(slug)
		if err == nil {
			err = writeFile(filepath.Join(outDir, rel), data)
		}
		if err != nil {
			logrus.WithField("slug", slug).WithError(err).Error("cover failed")
			errs = append(errs, &BuildError{Entry: slug, Err: err})
			continue
		}
		written = append(written, filepath.ToSlash(rel))
	}

	for _, out := range []struct {
		name string
		gen  func() ([]byte, error)
	}{
		{"rss.xml", a.RSS},
		{"sitemap.xml", a.Sitemap},
	} {
		data, err := out.gen()
		if err == nil {
			err = writeFile(filepath.Join(outDir, out.name), data)
		}
		if err != nil {
			logrus.WithField("file", out.name).WithError(err).Error("output failed")
			errs = append(errs, &BuildError{Entry: out.name, Err: err})
			continue
		}
		written = append(written, out.name)
	}

	logrus.WithField("dir", outDir).WithField("files", len(written)).Info("build finished")
	return written, errors.Join(errs...)
}

func writeFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}
