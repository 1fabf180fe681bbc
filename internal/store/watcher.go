package store

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports external changes to day files in the data directory, so a
// running UI can pick up edits made by other processes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func(dayKey string)
	mu       sync.Mutex
	done     chan struct{}
	closed   bool
}

// NewWatcher watches dir and calls onChange with the affected day key.
// Changes are debounced so editors that write in bursts trigger one reload.
func NewWatcher(dir string, onChange func(dayKey string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	go w.watch()
	return w, nil
}

func (w *Watcher) watch() {
	debounce := make(map[string]*time.Timer)

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			dayKey, valid := DayKeyFromFilename(filepath.Base(ev.Name))
			if !valid {
				continue
			}

			if timer, exists := debounce[dayKey]; exists {
				timer.Stop()
			}
			debounce[dayKey] = time.AfterFunc(100*time.Millisecond, func() {
				w.mu.Lock()
				closed := w.closed
				w.mu.Unlock()
				if !closed && w.onChange != nil {
					w.onChange(dayKey)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Keep watching through transient errors.
			_ = err

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher. No callbacks fire after it returns.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}
