package ofcrse

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// ContentWatcher calls onChange after Markdown files under a directory tree
// change. Bursts of events within the debounce delay produce one call.
type ContentWatcher struct {
	root     string
	watcher  *fsnotify.Watcher
	onChange func()
	delay    time.Duration

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// NewContentWatcher watches root and every directory below it.
func NewContentWatcher(root string, delay time.Duration, onChange func()) (*ContentWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create content watcher: %w", err)
	}
	w := &ContentWatcher{
		root:     root,
		watcher:  fsw,
		onChange: onChange,
		delay:    delay,
		done:     make(chan struct{}),
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

func (w *ContentWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *ContentWatcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Warn("content watcher error")
		}
	}
}

func (w *ContentWatcher) handle(event fsnotify.Event) {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				logrus.WithError(err).Warn("could not watch new directory")
			}
			w.schedule()
			return
		}
	}
	if !markdownExts[strings.ToLower(filepath.Ext(event.Name))] && !event.Has(fsnotify.Remove) {
		return
	}
	logrus.WithField("path", event.Name).WithField("op", event.Op.String()).Debug("content changed")
	w.schedule()
}

func (w *ContentWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() {
		logrus.WithField("dir", w.root).Info("reloading content")
		w.onChange()
	})
}

// Close stops watching. Pending reloads are cancelled.
func (w *ContentWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return err
}
