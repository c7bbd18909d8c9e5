package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

const testModel = `{"intents": {"I": {"phrases": ["hello"]}}}`

func TestDefaultFileWatcherConfig(t *testing.T) {
	config := DefaultFileWatcherConfig()

	if config.DebounceInterval != 200*time.Millisecond {
		t.Errorf("DebounceInterval = %v, want 200ms", config.DebounceInterval)
	}
	if len(config.Extensions) != 1 || config.Extensions[0] != ".json" {
		t.Errorf("Extensions = %v, want [.json]", config.Extensions)
	}
	if !config.SkipHidden {
		t.Error("SkipHidden = false, want true")
	}
}

func TestFileWatcher_ShouldProcessEvent(t *testing.T) {
	watcher, err := NewFileWatcher(DefaultFileWatcherConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = watcher.Stop() }()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write json", fsnotify.Event{Name: "models/de.json", Op: fsnotify.Write}, true},
		{"create json", fsnotify.Event{Name: "models/fr.json", Op: fsnotify.Create}, true},
		{"remove json", fsnotify.Event{Name: "models/fr.json", Op: fsnotify.Remove}, true},
		{"upper case extension", fsnotify.Event{Name: "models/EN.JSON", Op: fsnotify.Write}, true},
		{"chmod only", fsnotify.Event{Name: "models/de.json", Op: fsnotify.Chmod}, false},
		{"other extension", fsnotify.Event{Name: "models/de.json.swp", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: "models/.de.json", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := watcher.shouldProcessEvent(tt.event); got != tt.want {
				t.Errorf("shouldProcessEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileWatcher_Watch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "de.json"), []byte(testModel), 0o644); err != nil {
		t.Fatal(err)
	}

	config := DefaultFileWatcherConfig()
	config.Dir = dir
	config.DebounceInterval = 50 * time.Millisecond

	watcher, err := NewFileWatcher(config, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = watcher.Stop() }()

	changes := make(chan []string, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = watcher.Watch(ctx, func(files []string) { changes <- files })
	}()

	// Wait for watcher to start
	time.Sleep(100 * time.Millisecond)

	for _, name := range []string{"de.json", "en.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(testModel), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case files := <-changes:
		for _, f := range files {
			if filepath.Ext(f) != ".json" {
				t.Errorf("unexpected changed file %q", f)
			}
		}
		if len(files) == 0 {
			t.Error("expected changed files")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("onChange not called after file modification")
	}
}

func TestFileWatcher_WatchMissingDir(t *testing.T) {
	config := DefaultFileWatcherConfig()
	config.Dir = filepath.Join(t.TempDir(), "absent")

	watcher, err := NewFileWatcher(config, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = watcher.Stop() }()

	if err := watcher.Watch(context.Background(), func([]string) {}); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFileWatcher_Stop(t *testing.T) {
	config := DefaultFileWatcherConfig()
	config.Dir = t.TempDir()

	watcher, err := NewFileWatcher(config, nil)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(context.Background(), func([]string) {})
	}()
	time.Sleep(50 * time.Millisecond)

	if err := watcher.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after Stop")
	}
}

func TestFileWatcher_BatchesBurst(t *testing.T) {
	dir := t.TempDir()
	config := DefaultFileWatcherConfig()
	config.Dir = dir
	config.DebounceInterval = 150 * time.Millisecond

	watcher, err := NewFileWatcher(config, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = watcher.Stop() }()

	changes := make(chan []string, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = watcher.Watch(ctx, func(files []string) { changes <- files })
	}()
	time.Sleep(100 * time.Millisecond)

	for _, name := range []string{"fr.json", "de.json", "en.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(testModel), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case files := <-changes:
		want := []string{
			filepath.Join(dir, "de.json"),
			filepath.Join(dir, "en.json"),
			filepath.Join(dir, "fr.json"),
		}
		if len(files) != len(want) {
			t.Fatalf("batch = %v, want %v", files, want)
		}
		for i := range want {
			if files[i] != want[i] {
				t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("onChange not called")
	}

	select {
	case files := <-changes:
		t.Errorf("unexpected second batch %v", files)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcher_StopTwice(t *testing.T) {
	watcher, err := NewFileWatcher(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := watcher.Stop(); err != nil {
		t.Fatalf("first Stop() error = %v", err)
	}
	if err := watcher.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}
