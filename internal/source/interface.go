package source

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupportedFormat marks an audio reference whose extension is not in
// the allowed set.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// DownloadError marks an unreachable URL or missing local file.
type DownloadError struct {
	Ref string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.Ref, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Fetcher materializes raw audio given a URL or local path reference.
type Fetcher interface {
	// Fetch copies the referenced audio into destDir and returns the
	// local path. The caller owns the returned file and deletes it when
	// the invocation ends.
	Fetch(ctx context.Context, ref, destDir string) (string, error)
}
