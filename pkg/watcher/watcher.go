// Package watcher notices external writes to a document file so the open
// session can reconcile with them.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/arthur-debert/stapler/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is used when no debounce is configured
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports debounced changes to one file
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
	logger    zerolog.Logger
}

// New creates a watcher for path. The containing directory is watched, so
// files replaced by rename are still seen.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot create file watcher")
	}
	return &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(path),
		debounce:  debounce,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
		logger:    logging.GetLogger("watcher").With().Str("path", path).Logger(),
	}, nil
}

// Start begins watching. The returned channel receives a value once writes
// to the file have settled for the debounce period.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot watch %s", dir)
	}
	go w.loop()
	w.logger.Debug().Dur("debounce", w.debounce).Msg("Watching")
	return w.onChange, nil
}

// Stop ends watching and releases the underlying watcher
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Trace().Str("op", event.Op.String()).Msg("Event")
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			select {
			case w.onChange <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("Watch error")

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}

// Run calls reload after every settled change until ctx ends. Reload errors
// are logged and passed to onError when set; watching goes on.
func Run(ctx context.Context, w *Watcher, reload func(context.Context) error, onError func(error)) error {
	changes, err := w.Start()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			if err := reload(ctx); err != nil {
				w.logger.Warn().Err(err).Msg("Reload failed")
				if onError != nil {
					onError(err)
				}
			}
		}
	}
}
