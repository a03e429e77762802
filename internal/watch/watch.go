// Package watch reports changes to the directory shown in the card view.
//
// The directory listing itself stays synchronous; a Watcher only tells the
// caller that a refresh is due. The callback runs on the watcher goroutine,
// so GUI callers must hand it to their UI thread.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of events (a batch rename produces one
// event per file) into a single refresh.
const DefaultDebounce = 300 * time.Millisecond

type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	dir      string
	debounce time.Duration
	timer    *time.Timer
	onChange func(dir string)
	onError  func(err error)
	done     chan struct{}
	closed   bool
}

// New starts a watcher that calls onChange with the watched directory after
// it changed. onError may be nil.
func New(debounce time.Duration, onChange func(dir string), onError func(err error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		onChange: onChange,
		onError:  onError,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// SetDir replaces the watched directory. Watching is not recursive.
func (w *Watcher) SetDir(dir string) error {
	dir = filepath.Clean(dir)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("watch %s: watcher closed", dir)
	}
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.fsw.Remove(w.dir)
	}
	w.dir = ""
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.dir = dir
	return nil
}

// Dir returns the watched directory, or "" if none.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Close stops the watcher. Pending refreshes are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.dir == "" || (filepath.Dir(event.Name) != w.dir && event.Name != w.dir) {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	dir := w.dir
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stale := w.closed || w.dir != dir
		w.mu.Unlock()
		if !stale && w.onChange != nil {
			w.onChange(dir)
		}
	})
}
