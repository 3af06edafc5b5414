// This file implements a file system watcher for the library directory.
// OS-level events mark the preview stale and trigger a fresh scan after
// a short debounce, so the web UI always shows current plans.

package library

import (
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tmalloy/bindery/internal/jobs"
)

// WatcherService watches the library directory for changes and
// schedules a rescan when books are added, renamed, or removed.
type WatcherService struct {
	ctx           jobs.JobContext
	watcher       *fsnotify.Watcher
	mu            sync.Mutex
	pending       bool
	debounceTimer *time.Timer
	debounceDelay time.Duration
	stopChan      chan struct{}
}

// NewWatcherService creates a new file system watcher service.
func NewWatcherService(ctx jobs.JobContext) *WatcherService {
	return &WatcherService{
		ctx:           ctx,
		debounceDelay: 2 * time.Second, // Wait 2 seconds after last change before scanning
		stopChan:      make(chan struct{}),
	}
}

// Start begins watching the library directory for changes. The library
// is a flat directory, so only its root needs a watch.
func (w *WatcherService) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	libraryPath := w.ctx.Config().Library.Path
	if err := watcher.Add(libraryPath); err != nil {
		watcher.Close()
		return err
	}

	log.Printf("File watcher started for library: %s", libraryPath)
	go w.processEvents()
	return nil
}

// Stop stops the file watcher service.
func (w *WatcherService) Stop() error {
	close(w.stopChan)
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *WatcherService) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *WatcherService) handleEvent(event fsnotify.Event) {
	// Chmod events fire when files are merely opened or browsed.
	if event.Op == fsnotify.Chmod {
		return
	}

	relevantOp := event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
	if !relevantOp || !IsSupportedBook(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.triggerScan)
}

// triggerScan hands a scan to the job manager once the directory has
// been quiet for the debounce window.
func (w *WatcherService) triggerScan() {
	w.mu.Lock()
	if !w.pending {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.mu.Unlock()

	log.Println("File watcher detected changes, triggering library scan")
	if err := w.ctx.JobManager().RunJob("library-scan", w.ctx); err != nil {
		log.Printf("Watcher-triggered scan could not start: %v", err)
	}
}
