package transcribe

import (
	"errors"
	"fmt"
)

// Kind classifies a transcription failure. The classification is decided
// once, at the transport boundary, so callers never re-parse error text.
type Kind int

const (
	// KindFatal errors will not succeed on retry (malformed request,
	// authentication, unparsable response).
	KindFatal Kind = iota
	// KindTransient errors may succeed on retry (server fault, timeout,
	// connection reset).
	KindTransient
)

// Error is a classified transcription service failure.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transcription service: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transcription service: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a classified transient failure.
func IsTransient(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == KindTransient
}
