package watch

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcherConfig configures a FileWatcher.
type FileWatcherConfig struct {
	Dir string

	// DebounceInterval is the quiet period after the last event before a
	// batch of changed files is reported.
	DebounceInterval time.Duration

	// Extensions are the watched file extensions, matched case-insensitively.
	Extensions []string

	// SkipHidden ignores dot files such as editor swap and lock files.
	SkipHidden bool
}

// DefaultFileWatcherConfig watches *.json with a 200ms debounce.
func DefaultFileWatcherConfig() *FileWatcherConfig {
	return &FileWatcherConfig{
		DebounceInterval: 200 * time.Millisecond,
		Extensions:       []string{".json"},
		SkipHidden:       true,
	}
}

// FileWatcher reports batches of changed model files in one directory, so
// an editor saving several locales at once causes a single lint.
type FileWatcher struct {
	config  *FileWatcherConfig
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	stopOnce sync.Once
	stop     chan struct{}
}

// NewFileWatcher creates a FileWatcher. Nil arguments select the defaults.
func NewFileWatcher(config *FileWatcherConfig, logger *slog.Logger) (*FileWatcher, error) {
	if config == nil {
		config = DefaultFileWatcherConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		config:  config,
		logger:  logger.With("component", "watch.files"),
		watcher: w,
		stop:    make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, passing each batch
// of changed files, sorted, to onChange. onChange runs on the watching
// goroutine; events arriving meanwhile are batched for the next call.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(files []string)) error {
	if info, err := os.Stat(fw.config.Dir); err != nil {
		return fmt.Errorf("failed to watch models directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("failed to watch models directory: %s is not a directory", fw.config.Dir)
	}
	if err := fw.watcher.Add(fw.config.Dir); err != nil {
		return fmt.Errorf("failed to watch models directory: %w", err)
	}

	fw.logger.Info("file watcher started",
		"dir", fw.config.Dir,
		"debounce_ms", fw.config.DebounceInterval.Milliseconds(),
	)

	pending := make(map[string]struct{})
	quiet := time.NewTimer(fw.config.DebounceInterval)
	quiet.Stop()
	defer quiet.Stop()

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("file watcher stopped", "reason", ctx.Err())
			return nil

		case <-fw.stop:
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}
			fw.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			pending[event.Name] = struct{}{}
			quiet.Reset(fw.config.DebounceInterval)

		case <-quiet.C:
			if len(pending) == 0 {
				continue
			}
			files := slices.Sorted(maps.Keys(pending))
			clear(pending)
			onChange(files)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop ends Watch and releases the fsnotify watcher. It is safe to call
// more than once.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		close(fw.stop)
		if cerr := fw.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
	})
	return err
}

// shouldProcessEvent reports whether event concerns a model file. Bare
// permission changes are ignored.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if fw.config.SkipHidden && strings.HasPrefix(base, ".") {
		return false
	}
	ext := filepath.Ext(base)
	return slices.ContainsFunc(fw.config.Extensions, func(want string) bool {
		return strings.EqualFold(ext, want)
	})
}
