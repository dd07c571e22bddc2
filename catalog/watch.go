package catalog

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file has to stay quiet before its change is reported.
// Text editors often save in several writes.
const settle = 150 * time.Millisecond

// Watcher queues changes to catalog YAML files until the next Poll. The
// editor polls once per frame, so nothing is ever pushed to the consumer.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
	once sync.Once

	mu      sync.Mutex
	pending map[string]time.Time // path -> time of its latest event
	err     error
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("catalog: watch: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("catalog: watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fs:      fw,
		done:    make(chan struct{}),
		pending: make(map[string]time.Time),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and drops anything still queued. It is safe to call
// more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.mu.Lock()
		clear(w.pending)
		w.mu.Unlock()
	})
	return err
}

// Poll returns, sorted, the files whose last change is at least settle old,
// and the first watcher error seen since the previous call.
func (w *Watcher) Poll() ([]string, error) {
	return w.poll(time.Now())
}

func (w *Watcher) poll(now time.Time) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ready []string
	for path, at := range w.pending {
		if now.Sub(at) >= settle {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	slices.Sort(ready)

	err := w.err
	w.err = nil
	return ready, err
}

// touch records an event for path, restarting its settle period.
func (w *Watcher) touch(path string, at time.Time) {
	w.mu.Lock()
	w.pending[path] = at
	w.mu.Unlock()
}

func (w *Watcher) run() {
	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&relevant != 0 && isSpecFile(event.Name) {
				w.touch(event.Name, time.Now())
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			if w.err == nil {
				w.err = err
			}
			w.mu.Unlock()
		case <-w.done:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
