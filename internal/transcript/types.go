package transcript

import (
	"sort"
	"strings"
)

// Segment is one diarized span as returned by the transcription service,
// in chunk-local seconds.
type Segment struct {
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Utterance is one attributed, time-bounded span of speech in global
// meeting time. Immutable once assembled.
type Utterance struct {
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// PlainText renders utterances as "speaker: text" lines. This is the raw
// form sent to the summarizer and written as the plain transcript artifact.
func PlainText(utterances []Utterance) string {
	lines := make([]string, 0, len(utterances))
	for _, u := range utterances {
		lines = append(lines, u.Speaker+": "+u.Text)
	}
	return strings.Join(lines, "\n")
}

// UniqueSpeakers returns the sorted, de-duplicated speaker labels.
func UniqueSpeakers(utterances []Utterance) []string {
	seen := make(map[string]bool)
	var speakers []string
	for _, u := range utterances {
		if !seen[u.Speaker] {
			seen[u.Speaker] = true
			speakers = append(speakers, u.Speaker)
		}
	}
	sort.Strings(speakers)
	return speakers
}

// TotalDuration returns the largest end timestamp, in seconds.
func TotalDuration(utterances []Utterance) float64 {
	var max float64
	for _, u := range utterances {
		if u.End > max {
			max = u.End
		}
	}
	return max
}

// SpokenDuration sums the lengths of all utterances, in seconds.
func SpokenDuration(utterances []Utterance) float64 {
	var total float64
	for _, u := range utterances {
		total += u.End - u.Start
	}
	return total
}
