package persist

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports external modifications of the persistence file.
// It watches the parent directory because atomic saves land via rename,
// which replaces the inode a file-level watch would be pinned to.
// Events are debounced, and events that arrive on the heels of one of
// our own saves are suppressed via the self-write filter.
type Watcher struct {
	path      string
	fsw       *fsnotify.Watcher
	onChange  func()
	logger    *zap.Logger
	debounce  time.Duration
	selfWrite func() time.Time

	stop chan struct{}
	done chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before onChange fires.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithSelfWriteFilter suppresses events observed shortly after the
// given clock's most recent time, typically FileGateway.LastWrite.
func WithSelfWriteFilter(lastWrite func() time.Time) WatcherOption {
	return func(w *Watcher) {
		w.selfWrite = lastWrite
	}
}

// WithWatcherLogger sets the logger for watch errors.
func WithWatcherLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// selfWriteWindow is how long after one of our own saves directory
// events for the file are attributed to that save.
const selfWriteWindow = 500 * time.Millisecond

// NewWatcher watches path and calls onChange after external
// modifications settle. The returned watcher is already running.
func NewWatcher(path string, onChange func(), opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		onChange: onChange,
		logger:   zap.NewNop(),
		debounce: 250 * time.Millisecond,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	go w.loop()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	close(w.stop)
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("persistence watch error", zap.Error(err))

		case <-fire:
			timer = nil
			fire = nil
			w.onChange()
		}
	}
}

// relevant reports whether ev is an external modification of our file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if w.selfWrite != nil {
		if last := w.selfWrite(); !last.IsZero() && time.Since(last) < selfWriteWindow {
			return false
		}
	}
	return true
}
