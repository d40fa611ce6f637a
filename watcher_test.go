package ofcrse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestContentWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 10)
	w, err := NewContentWatcher(dir, 100*time.Millisecond, func() { changed <- struct{}{} })
	if err != nil {
		t.Fatalf("NewContentWatcher: %v", err)
	}
	defer w.Close()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(dir, "post.md"), []byte("---\ntitle: x\n---\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("onChange was not called")
	}
	select {
	case <-changed:
		t.Error("burst of writes should produce one reload")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestContentWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 1)
	w, err := NewContentWatcher(dir, 20*time.Millisecond, func() { changed <- struct{}{} })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
		t.Error("non-Markdown change should not reload")
	case <-time.After(200 * time.Millisecond):
	}
}
