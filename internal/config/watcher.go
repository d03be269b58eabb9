package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/reflow/internal/keys"
)

// DefaultDebounce is how long the watcher waits after a change before
// reloading, coalescing editor save patterns (truncate+write, rename).
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives the reloaded keymaps, or the error that prevented
// reloading.
type ReloadFunc func(keymaps []*keys.Keymap, err error)

// Watcher reloads a keymap file whenever it changes on disk.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	debounce time.Duration
	fn       ReloadFunc

	mu    sync.Mutex
	timer *time.Timer

	done chan struct{}
	wg   sync.WaitGroup
}

// Watch starts watching the keymap file at path, invoking fn after each
// debounced change. A zero debounce uses DefaultDebounce. The watcher
// observes the containing directory so atomic-save renames are seen.
func Watch(path string, debounce time.Duration, fn ReloadFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving keymap path %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fw:       fw,
		path:     abs,
		debounce: debounce,
		fn:       fn,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Close stops watching. Pending debounced reloads are canceled.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.fn(nil, err)
		}
	}
}

// schedule arms the reload timer. The slot is single: a change while a
// reload is pending extends nothing and schedules nothing new.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		return
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		w.timer = nil
		w.mu.Unlock()
		select {
		case <-w.done:
			return
		default:
		}
		w.fn(Load(w.path))
	})
}
