package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before firing.
const DefaultDebounce = 250 * time.Millisecond

// Watcher calls a function whenever the content of a catalog file changes.
//
// The parent directory is watched rather than the file itself so that
// editors and WriteLines, which replace the file by rename, keep triggering
// events. Bursts of events are coalesced and a change only fires when the
// file's content hash differs from the last one seen.
type Watcher struct {
	path     string
	onChange func(ctx context.Context) error
	onError  func(err error)
	debounce time.Duration

	ready     chan struct{}
	readyOnce sync.Once

	lastHash uint64
	hashed   bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a change fires.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithErrorHandler receives errors from the underlying watcher and from
// onChange. Without one, errors are dropped.
func WithErrorHandler(fn func(err error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewWatcher creates a Watcher for the file at path.
func NewWatcher(path string, onChange func(ctx context.Context) error, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:     path,
		onChange: onChange,
		debounce: DefaultDebounce,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once the watcher is registered with the filesystem.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	// Seed the hash so the first event after startup only fires on a real change.
	if data, err := os.ReadFile(abs); err == nil {
		w.lastHash = xxhash.Sum64(data)
		w.hashed = true
	}
	w.readyOnce.Do(func() { close(w.ready) })

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.fire(ctx, abs)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		}
	}
}

func (w *Watcher) fire(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Mid-rename or deleted; the next event will retry.
		return
	}
	sum := xxhash.Sum64(data)
	if w.hashed && sum == w.lastHash {
		return
	}
	w.lastHash = sum
	w.hashed = true

	if w.onChange == nil {
		return
	}
	if err := w.onChange(ctx); err != nil {
		w.report(err)
	}
}

func (w *Watcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
