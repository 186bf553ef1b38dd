package watcher

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/rampinfotech/meetscribe/internal/logger"
)

// New creates a Watcher over watchDir that invokes handler for files
// whose extension is in extensions, with at most maxConcurrent handlers
// running at once.
func New(watchDir string, extensions []string, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(watchDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	return &implWatcher{
		watchDir:  watchDir,
		allowed:   allowed,
		handler:   handler,
		logger:    log,
		watcher:   fsw,
		semaphore: make(chan struct{}, maxConcurrent),
	}, nil
}
