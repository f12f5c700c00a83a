package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// intakeFiles are the workspace files whose changes invalidate the current
// ranking. Snapshots the pipeline writes itself are deliberately not here,
// otherwise every re-score would trigger another one.
var intakeFiles = map[string]struct{}{
	"feedback.jsonl": {},
	"usage.jsonl":    {},
	"config.yaml":    {},
}

// IntakeWatcher watches a .ricemill directory and reports batches of changed
// intake files after a quiet period.
type IntakeWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	onChange func(changed []string)

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewIntakeWatcher creates a watcher over the given workspace directory.
func NewIntakeWatcher(dir string, debounce time.Duration, onChange func(changed []string)) (*IntakeWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &IntakeWatcher{
		watcher:  w,
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		pending:  make(map[string]struct{}),
	}, nil
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *IntakeWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	debouncer := NewDebouncer(w.debounce, w.flush)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(event.Name)
			if _, watched := intakeFiles[name]; !watched {
				continue
			}

			w.mu.Lock()
			w.pending[name] = struct{}{}
			w.mu.Unlock()
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (w *IntakeWatcher) flush() {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for name := range w.pending {
		changed = append(changed, name)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(changed) == 0 || w.onChange == nil {
		return
	}
	sort.Strings(changed)
	w.onChange(changed)
}
