package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 500

	// DefaultDebounce is how long changes accumulate before they are emitted.
	DefaultDebounce = 500 * time.Millisecond
)

// WatchConfig configures document file watching.
type WatchConfig struct {
	// Debounce is how long to wait for more changes before emitting.
	Debounce time.Duration

	// Pattern selects watched files, relative to the root.
	Pattern string

	// ExcludeDirs lists directory names to skip, in addition to .git,
	// node_modules and other dot-directories.
	ExcludeDirs []string
}

// WatchEvent is a debounced document change.
type WatchEvent struct {
	// Path is relative to the watched root.
	Path string

	Operation WatchOperation

	AbsPath string
}

// WatchOperation indicates the type of file operation.
type WatchOperation string

// Watch operations.
const (
	WatchOpCreate WatchOperation = "create"
	WatchOpModify WatchOperation = "modify"
	WatchOpDelete WatchOperation = "delete"
)

// Watcher watches a document tree and emits debounced change events.
type Watcher struct {
	config   WatchConfig
	root     string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	excludes map[string]bool

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashMu sync.RWMutex
	hashes map[string]string

	events chan WatchEvent

	droppedEvents atomic.Int64
}

// NewWatcher creates a watcher for root.
func NewWatcher(config WatchConfig, root string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}

	return &Watcher{
		config:   config,
		root:     root,
		watcher:  fsw,
		logger:   logger,
		excludes: excludeSet(config.ExcludeDirs),
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		events:   make(chan WatchEvent, eventChannelBuffer),
	}, nil
}

// Events returns the channel of watch events. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Start adds watches under the root and begins processing events.
func (w *Watcher) Start(ctx context.Context) error {
	info, err := os.Stat(w.root)
	if err != nil || !info.IsDir() {
		return ErrRootNotFound
	}

	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}
	w.seedHashes()

	go w.processEvents(ctx)

	w.logger.Info("Document watcher started",
		"root", w.root,
		"pattern", w.config.Pattern,
		"debounce", w.config.Debounce)

	return nil
}

// Stop stops the watcher.
// The events channel is closed by processEvents when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if path != root && excluded(w.excludes, base) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

// seedHashes records the current content of matching files so that
// touching a file without changing it emits nothing.
func (w *Watcher) seedHashes() {
	matches, err := doublestar.Glob(os.DirFS(w.root), w.config.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return
	}
	for _, rel := range matches {
		content, err := os.ReadFile(filepath.Join(w.root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		w.setHash(filepath.FromSlash(rel), contentHash(content))
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.handleNewDirectory(path)
			return
		}
	}

	if !w.matches(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Document change detected", "path", path, "op", event.Op.String())
}

// matches reports whether an absolute path is a watched document.
func (w *Watcher) matches(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	segments := strings.Split(rel, "/")
	for _, dir := range segments[:len(segments)-1] {
		if excluded(w.excludes, dir) {
			return false
		}
	}

	ok, err := doublestar.Match(w.config.Pattern, rel)
	return err == nil && ok
}

func (w *Watcher) handleNewDirectory(path string) {
	base := filepath.Base(path)
	if excluded(w.excludes, base) {
		return
	}

	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
	} else {
		w.logger.Debug("Added watch for new directory", "path", path)
	}
}

func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		relPath, _ := filepath.Rel(w.root, path)
		event := WatchEvent{Path: relPath, AbsPath: path}

		content, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				w.logger.Warn("Failed to read changed document", "path", relPath, "error", err)
				continue
			}
			if _, had := w.hash(relPath); !had && !op.Has(fsnotify.Remove) && !op.Has(fsnotify.Rename) {
				continue
			}
			w.deleteHash(relPath)
			event.Operation = WatchOpDelete
			w.sendEvent(event)
			continue
		}

		newHash := contentHash(content)
		oldHash, hadHash := w.hash(relPath)
		if hadHash && oldHash == newHash {
			continue
		}
		w.setHash(relPath, newHash)

		if hadHash {
			event.Operation = WatchOpModify
		} else {
			event.Operation = WatchOpCreate
		}
		w.sendEvent(event)
	}
}

func (w *Watcher) sendEvent(event WatchEvent) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event", "path", event.Path, "op", event.Operation)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}

func (w *Watcher) setHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

func (w *Watcher) hash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	h, ok := w.hashes[path]
	return h, ok
}

func (w *Watcher) deleteHash(path string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	delete(w.hashes, path)
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
