package catalog

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher hot-reloads a catalog when its YAML override file changes.
// A reload that fails validation is reported and the previous catalog
// contents stay in effect.
type Watcher struct {
	catalog *Catalog
	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
	// onEvent is called after each reload attempt with the path and the
	// reload error (nil on success). Optional.
	onEvent func(path string, err error)
}

// Watch starts watching path and reloading catalog on changes.
// onEvent may be nil.
func Watch(c *Catalog, path string, onEvent func(path string, err error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file: editors often replace
	// files by rename, which drops a direct file watch.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		catalog: c,
		path:    path,
		watcher: fw,
		done:    make(chan struct{}),
		onEvent: onEvent,
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	entries, err := LoadFile(w.path)
	if err == nil {
		err = w.catalog.Replace(entries)
	}
	if w.onEvent != nil {
		w.onEvent(w.path, err)
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
