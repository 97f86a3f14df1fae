package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cuongbtq/jobboard/internal/savedset"
	"github.com/fsnotify/fsnotify"
)

// FileOrigin is stamped on events raised by a File broadcaster. The writer is not known.
const FileOrigin = "file"

// File turns changes to a FileRepository's file into events. Every process
// sharing the directory sees every write, its own included.
type File struct {
	path   string
	key    string
	logger *slog.Logger

	readyOnce sync.Once
	ready     chan struct{}
}

// NewFile creates a broadcaster watching path, the file holding the set under key
func NewFile(path, key string, logger *slog.Logger) *File {
	if key == "" {
		key = savedset.DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &File{
		path:   filepath.Clean(path),
		key:    key,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Publish does nothing: the write to the file is the signal
func (f *File) Publish(_ context.Context, _ savedset.Event) error {
	return nil
}

// Listen watches the file's directory and calls fn whenever the file is
// replaced, written or removed, until ctx is done
func (f *File) Listen(ctx context.Context, fn func(savedset.Event)) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create saved set directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// the repository renames a temp file over the target, so watch the directory
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	f.logger.Info("Watching saved set file",
		slog.String("path", f.path),
	)
	f.readyOnce.Do(func() { close(f.ready) })

	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if filepath.Clean(ev.Name) != f.path || ev.Op&relevant == 0 {
				continue
			}
			f.logger.Debug("Saved set file changed",
				slog.String("op", ev.Op.String()),
			)
			fn(savedset.Event{Key: f.key, Origin: FileOrigin, At: time.Now().UTC()})

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			return fmt.Errorf("file watcher failed: %w", err)
		}
	}
}

// Close is a no-op; each Listen owns and closes its own watcher
func (f *File) Close() error {
	return nil
}
