package translate

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/pkg/errors"
)

// LexiconWatcher hot-reloads a lexicon file into a LexiconStore when the
// file changes on disk. A file that fails to parse or validate is skipped
// and the previous lexicon stays active.
type LexiconWatcher struct {
	path    string
	store   *LexiconStore
	watcher *fsnotify.Watcher
	log     logging.Logger
	done    chan struct{}
}

// WatchLexicon starts watching path. The watch is placed on the parent
// directory so editors that replace the file via rename are still seen.
func WatchLexicon(path string, store *LexiconStore, log logging.Logger) (*LexiconWatcher, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLexiconLoadFailed, "create lexicon watcher")
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, errors.Wrapf(err, errors.ErrCodeLexiconLoadFailed, "watch lexicon dir for %q", path)
	}

	w := &LexiconWatcher{
		path:    path,
		store:   store,
		watcher: fsw,
		log:     log.Named("lexicon.watch"),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *LexiconWatcher) run() {
	target := filepath.Clean(w.path)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := w.store.Reload(w.path); err == nil {
				w.log.Info("lexicon reloaded", logging.String("path", w.path))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("lexicon watcher error", logging.Err(err))
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *LexiconWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
