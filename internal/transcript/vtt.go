package transcript

import (
	"regexp"
	"strings"
)

var (
	// Teams cue IDs look like "GUID/NN-NN"
	reCueID      = regexp.MustCompile(`^[A-Za-z0-9\-]+/\d+-\d+$`)
	reSpeakerTag = regexp.MustCompile(`(?s)<v\s+([^>]+)>(.*?)</v>`)
)

// ParseVTT parses a Microsoft Teams VTT transcript into utterances.
// Supports <v Speaker>text</v> cue payloads and ignores cue ID lines.
// Cues without a speaker tag are skipped.
func ParseVTT(content string) []Utterance {
	var utterances []Utterance
	lines := strings.Split(content, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if reCueID.MatchString(line) {
			continue
		}

		if !strings.Contains(line, "-->") {
			continue
		}

		startRaw, endRaw, ok := strings.Cut(line, "-->")
		if !ok {
			continue
		}
		start, err := TimestampToSeconds(strings.TrimSpace(startRaw))
		if err != nil {
			continue
		}
		end, err := TimestampToSeconds(strings.TrimSpace(endRaw))
		if err != nil {
			continue
		}

		// Next line should contain <v Speaker>text</v>
		if i+1 >= len(lines) {
			continue
		}
		m := reSpeakerTag.FindStringSubmatch(strings.TrimSpace(lines[i+1]))
		if m == nil {
			continue
		}

		utterances = append(utterances, Utterance{
			Speaker: strings.TrimSpace(m[1]),
			Text:    strings.TrimSpace(m[2]),
			Start:   start,
			End:     end,
		})
		i++
	}

	return utterances
}
