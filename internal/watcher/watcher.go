package watcher

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Change signals that a watched log file was modified or replaced.
type Change struct {
	Path    string
	Removed bool // the file disappeared (rotation or delete)
}

// Watcher monitors access log files for changes using OS-level notifications.
// The dashboard uses it to know when to refresh the in-memory log instead of
// polling the file's mtime.
type Watcher struct {
	fsw     *fsnotify.Watcher
	Changes chan Change
	paths   []string
}

// New creates a Watcher for the given paths or glob patterns. Patterns are
// expanded once at startup; recursive globs like logs/**/*.log are supported.
func New(patterns []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		Changes: make(chan Change, 64),
	}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			log.WithError(err).Warnf("cannot expand pattern %q", pattern)
			continue
		}
		if len(matches) == 0 {
			// A literal path that does not exist yet is still worth watching
			// through its directory once it appears; skip for now.
			log.Warnf("pattern %q matched no files", pattern)
			continue
		}
		for _, m := range matches {
			abs, _ := filepath.Abs(m)
			if err := fsw.Add(abs); err != nil {
				log.WithError(err).Warnf("cannot watch %s", abs)
				continue
			}
			w.paths = append(w.paths, abs)
		}
	}

	return w, nil
}

// Paths returns the files currently being watched.
func (w *Watcher) Paths() []string {
	return w.paths
}

// Rewatch re-adds a path after rotation recreated it.
func (w *Watcher) Rewatch(path string) error {
	return w.fsw.Add(path)
}

// Start forwards filesystem events as Changes. Blocks until the context is
// cancelled.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.Changes)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			switch {
			case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
				w.Changes <- Change{Path: ev.Name}
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.Changes <- Change{Path: ev.Name, Removed: true}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("watcher error")
		}
	}
}
