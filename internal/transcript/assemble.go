package transcript

import "strings"

// ChunkSegments is the diarized output of one audio chunk together with
// the seconds to add to every timestamp it contains.
type ChunkSegments struct {
	OffsetSeconds float64
	Segments      []Segment
}

// Assemble merges per-chunk diarized segments into one flat utterance
// sequence. Chunks must be supplied in chunk-index order; within a chunk,
// segments keep the order the transcription service returned them. Each
// timestamp is rewritten into global meeting time by adding the chunk
// offset. No global re-sort happens: chunk windows are contiguous and
// non-overlapping by construction.
//
// An empty result is valid and simply means no speech was transcribed.
func Assemble(chunks []ChunkSegments) []Utterance {
	var utterances []Utterance
	for _, chunk := range chunks {
		for _, seg := range chunk.Segments {
			utterances = append(utterances, Utterance{
				Speaker: seg.Speaker,
				Text:    strings.TrimSpace(seg.Text),
				Start:   seg.Start + chunk.OffsetSeconds,
				End:     seg.End + chunk.OffsetSeconds,
			})
		}
	}
	return utterances
}
