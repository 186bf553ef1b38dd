package pipeline

import (
	"context"
	"os"
	"time"
)

// removeWithRetry deletes a temporary file with a small bounded retry,
// covering transient file-lock conditions. Failure to delete is logged,
// never escalated.
func (p *implPipeline) removeWithRetry(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	const attempts = 3
	for i := 0; i < attempts; i++ {
		err := os.Remove(path)
		if err == nil {
			p.logger.Debug(ctx, "Cleaned up temp file: %s", path)
			return
		}
		if i < attempts-1 {
			time.Sleep(500 * time.Millisecond)
			continue
		}
		p.logger.Warn(ctx, "Could not delete temp file %s after %d attempts: %v", path, attempts, err)
	}
}
