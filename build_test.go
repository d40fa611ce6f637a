package ofcrse

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestBuildWritesOutputs(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	out := t.TempDir()

	written, err := a.Build(out)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []string{
		"images/cover/default.png",
		"images/cover/draft.png",
		"images/cover/hello-world.png",
		"images/cover/notes.png",
		"images/cover/smaller.png",
		"rss.xml",
		"sitemap.xml",
	}
	if !slices.Equal(written, want) {
		t.Errorf("written = %v, want %v", written, want)
	}
	png, err := os.ReadFile(filepath.Join(out, "images", "cover", "hello-world.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("hello-world.png is not a PNG")
	}
	if _, err := os.Stat(filepath.Join(out, "images", "cover", "no-cover.png")); !os.IsNotExist(err) {
		t.Errorf("no-cover.png should not be written, stat err = %v", err)
	}
}

func TestBuildReportsEveryFailure(t *testing.T) {
	fsys := testContent()
	fsys["broken.md"] = mapFile("---\ntitle: Broken\n---\n")
	a, err := New(SiteConfig{DistDir: t.TempDir()},
		WithContent(NewContentStore(fsys)),
		WithShortlinks(map[string]string{}),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	written, err := a.Build(t.TempDir())
	var berr *BuildError
	if !errors.As(err, &berr) || berr.Entry != "content" {
		t.Fatalf("Build error = %v, want content BuildError", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "broken.md" {
		t.Errorf("Build error = %v, want broken.md validation error", err)
	}
	if len(written) != 7 {
		t.Errorf("wrote %d files, want 7 despite the failure", len(written))
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	first, second := t.TempDir(), t.TempDir()
	if _, err := a.Build(first); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Build(second); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"images/cover/default.png", "rss.xml", "sitemap.xml"} {
		x, _ := os.ReadFile(filepath.Join(first, filepath.FromSlash(name)))
		y, _ := os.ReadFile(filepath.Join(second, filepath.FromSlash(name)))
		if !bytes.Equal(x, y) {
			t.Errorf("%s differs between builds", name)
		}
	}
}
