package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/rampinfotech/meetscribe/internal/transcript"
)

// Meta is the header information of an assembled meeting document.
type Meta struct {
	Date            time.Time
	DurationSeconds float64
	Participants    []string
}

// MetaFrom derives document metadata from the assembled utterances.
func MetaFrom(utterances []transcript.Utterance, now time.Time) Meta {
	return Meta{
		Date:            now,
		DurationSeconds: transcript.TotalDuration(utterances),
		Participants:    transcript.UniqueSpeakers(utterances),
	}
}

// Assemble builds the final markdown document: metadata header, rule,
// conversation, rule, summary. Section placement is fixed; the text
// inside the sections is whatever the upstream stages produced.
func Assemble(meta Meta, conversation, summary string) string {
	duration := "Unknown"
	participants := "Unknown"
	if len(meta.Participants) > 0 {
		duration = FormatDuration(meta.DurationSeconds)
		participants = strings.Join(meta.Participants, ", ")
	}

	return fmt.Sprintf(`# Meeting Transcript

**Date:** %s
**Duration:** %s
**Participants:** %s

---

## Conversation

%s

---

%s
`, meta.Date.Format("January 02, 2006"), duration, participants, conversation, summary)
}

// FormatDuration renders seconds as a human duration string such as
// "1 hour, 5 minutes" or "45 minutes".
func FormatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60

	if hours > 0 {
		return fmt.Sprintf("%d %s, %d %s", hours, plural(hours, "hour"), minutes, plural(minutes, "minute"))
	}
	return fmt.Sprintf("%d %s", minutes, plural(minutes, "minute"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
