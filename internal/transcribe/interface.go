package transcribe

import (
	"context"
	"encoding/json"

	"github.com/rampinfotech/meetscribe/internal/transcript"
)

// Result is one chunk's diarized transcription output. Timestamps are in
// chunk-local seconds; the assembler rewrites them into meeting time.
type Result struct {
	Segments []transcript.Segment
	Raw      json.RawMessage
}

// Service transcribes a single audio chunk with speaker diarization.
type Service interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}
