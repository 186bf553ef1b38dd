package format

import (
	"context"

	"github.com/rampinfotech/meetscribe/internal/transcript"
)

// Formatter rewrites raw utterances into publication-quality dialogue.
type Formatter interface {
	// Format returns the full conversation text and the number of windows
	// that fell back to the deterministic plain rendering. The stage never
	// fails outright as long as utterances exist.
	Format(ctx context.Context, utterances []transcript.Utterance, participants string) (string, int)
}
