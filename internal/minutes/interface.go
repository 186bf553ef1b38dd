package minutes

import (
	"context"

	"github.com/rampinfotech/meetscribe/internal/transcript"
)

// Summarizer produces the minutes-of-meeting document from the raw
// utterance transcript. It always returns usable minutes; failures
// degrade through plain-text generation and regex recovery instead of
// failing the pipeline.
type Summarizer interface {
	Summarize(ctx context.Context, utterances []transcript.Utterance) *Minutes
}
