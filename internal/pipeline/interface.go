package pipeline

import (
	"context"
	"errors"

	"github.com/rampinfotech/meetscribe/internal/minutes"
	"github.com/rampinfotech/meetscribe/internal/transcript"
)

// ErrNoUtterances marks a run that completed without transcribing any
// speech. It is a valid terminal state, distinct from a processing
// failure.
var ErrNoUtterances = errors.New("transcription produced no utterances")

// Options tune one pipeline invocation.
type Options struct {
	// Participants is an optional comma-separated name list used to map
	// generic speaker labels to real names opportunistically.
	Participants string
	// SaveFiles controls whether the output artifact set is written.
	SaveFiles bool
}

// Result is the outcome of one invocation. DegradedWindows and
// SummaryDegraded report non-fatal fallbacks; the document is complete
// and usable either way.
type Result struct {
	Title               string
	Utterances          []transcript.Utterance
	FormattedTranscript string
	Minutes             *minutes.Minutes
	OutputIndex         int
	SavedFiles          map[string]string
	DegradedWindows     int
}

// Pipeline runs the full meeting workflow: ingest, transcribe, format,
// summarize, assemble, persist.
type Pipeline interface {
	// ProcessAudio ingests an audio URL or local path.
	ProcessAudio(ctx context.Context, ref string, opts Options) (*Result, error)
	// ProcessUtterances drives the formatting half of the workflow for a
	// pre-existing transcript (e.g. a parsed Teams VTT file).
	ProcessUtterances(ctx context.Context, title string, utterances []transcript.Utterance, opts Options) (*Result, error)
}
