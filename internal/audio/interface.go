package audio

import "context"

// Chunk identifies one sliced audio unit and the seconds to add to every
// timestamp emitted from it.
type Chunk struct {
	Path          string
	OffsetSeconds float64
}

// Splitter slices long audio into bounded-duration chunks for the
// transcription service.
type Splitter interface {
	Split(ctx context.Context, audioPath string) ([]Chunk, error)
}
