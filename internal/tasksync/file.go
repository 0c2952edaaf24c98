package tasksync

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 100 * time.Millisecond

// FileWatcher reports changes to a store file made by other processes
// sharing the same directory.
type FileWatcher struct {
	path     string
	debounce time.Duration
	hash     contentHash
}

func NewFileWatcher(path string, debounce time.Duration) *FileWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{
		path:     path,
		debounce: debounce,
	}
}

func (w *FileWatcher) Emit(_ context.Context, _ string) error {
	sum, err := hashFile(w.path)
	if err != nil {
		return err
	}
	w.hash.set(sum)
	return nil
}

func (w *FileWatcher) Listen(ctx context.Context, out chan<- Signal) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: atomic replace swaps the inode of the file.
	dir := filepath.Dir(w.path)
	name := filepath.Base(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	if sum, err := hashFile(w.path); err == nil {
		w.hash.observe(sum)
	}
	slog.Debug("task sync: watching store file", "path", w.path)

	fire := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("fsnotify events closed")
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			sum, err := hashFile(w.path)
			if err != nil {
				slog.Warn("task sync: failed to hash store file", "path", w.path, "error", err)
				continue
			}
			if w.hash.observe(sum) {
				send(ctx, out, Signal{})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("fsnotify errors closed")
			}
			slog.Warn("task sync: fsnotify error", "error", err)
		}
	}
}

func hashFile(path string) ([sha256.Size]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return absent, nil
		}
		return absent, fmt.Errorf("read %s: %w", path, err)
	}
	return sha256.Sum256(data), nil
}
