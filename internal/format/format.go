package format

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rampinfotech/meetscribe/internal/llm"
	"github.com/rampinfotech/meetscribe/internal/transcript"
)

const (
	// windowSize is the number of utterances sent per LLM request; bounded
	// so the reformatted output stays within the model's output limit.
	windowSize = 50
	// contextCarry is how many utterances of the previous window are
	// included read-only so dialogue flows across the boundary.
	contextCarry = 3
)

const stylePrompt = `You are a professional transcription editor. Rewrite the raw diarized meeting transcript below into clean, readable dialogue.

Requirements:
- Keep the speaker attribution for every line, formatted as "**Speaker**: text".
- Fix grammar, punctuation and broken sentences, but preserve the full meaning.
- Capture every sentence. Do not summarize or skip content even if repetitive.
- Keep technical terms and names exactly as spoken.`

type windowPayload struct {
	Segments []transcript.Utterance `json:"segments"`
}

// Format feeds the utterance sequence through the LLM in fixed-size
// windows and concatenates the results in window order. A failed window
// degrades to the deterministic plain rendering; it never aborts the
// stage or affects its neighbours.
func (f *implFormatter) Format(ctx context.Context, utterances []transcript.Utterance, participants string) (string, int) {
	if len(utterances) == 0 {
		return "", 0
	}

	totalWindows := (len(utterances) + windowSize - 1) / windowSize
	f.logger.Info(ctx, "Formatting transcript in %d windows...", totalWindows)

	parts := make([]string, 0, totalWindows)
	degraded := 0

	for i := 0; i < totalWindows; i++ {
		startIdx := i * windowSize
		endIdx := startIdx + windowSize
		if endIdx > len(utterances) {
			endIdx = len(utterances)
		}
		window := utterances[startIdx:endIdx]

		f.logger.Debug(ctx, "Processing window %d/%d...", i+1, totalWindows)

		var carried []transcript.Utterance
		if i > 0 {
			carried = utterances[startIdx-contextCarry : startIdx]
		}

		part, err := f.formatWindow(ctx, window, carried, participants)
		if err != nil {
			f.logger.Warn(ctx, "Window %d/%d failed, using plain rendering: %v", i+1, totalWindows, err)
			part = FallbackRender(window)
			degraded++
		}

		parts = append(parts, part)
	}

	return strings.Join(parts, "\n\n"), degraded
}

func (f *implFormatter) formatWindow(ctx context.Context, window, carried []transcript.Utterance, participants string) (string, error) {
	payload, err := json.Marshal(windowPayload{Segments: window})
	if err != nil {
		return "", fmt.Errorf("marshal window: %w", err)
	}

	var user strings.Builder
	if len(carried) > 0 {
		user.WriteString("CONTEXT FROM PREVIOUS CHUNK (DO NOT REPEAT, JUST FOR CONTEXT):\n")
		for _, u := range carried {
			user.WriteString(u.Speaker + ": " + u.Text + "\n")
		}
		user.WriteString("\n")
	}
	user.WriteString("Transcript Segment Data to Format:\n")
	user.Write(payload)

	response, err := f.client.Complete(ctx, llm.Request{
		System:           f.windowSystemPrompt(participants),
		User:             user.String(),
		Temperature:      f.temperature,
		FrequencyPenalty: 0.5, // reduce repetition
		PresencePenalty:  0.3,
	})
	if err != nil {
		return "", err
	}

	return llm.StripFences(response), nil
}

func (f *implFormatter) windowSystemPrompt(participants string) string {
	var b strings.Builder
	b.WriteString(stylePrompt)
	b.WriteString("\n\n")

	if participants != "" {
		b.WriteString("PARTICIPANT LIST PROVIDED BY USER: " + participants + "\n")
		b.WriteString("INSTRUCTION: Attempt to attribute the diarized labels (Speaker 0, Speaker 1, etc.) to these names based on context clues (e.g., self-introductions, being addressed by name). ")
		b.WriteString("If you are unsure, keep the generic Speaker label.\n\n")
	}

	b.WriteString("SPECIAL INSTRUCTION: Output ONLY the formatted conversation dialogue for the provided segments. ")
	b.WriteString("Do NOT output the metadata header, summary, or action items yet. ")
	b.WriteString("Do NOT wrap in markdown code blocks. Just the designated speaker dialogue lines.")

	return b.String()
}

// FallbackRender is the deterministic plain rendering used when a window
// request fails or LLM formatting is disabled for a window.
func FallbackRender(utterances []transcript.Utterance) string {
	lines := make([]string, 0, len(utterances))
	for _, u := range utterances {
		lines = append(lines, fmt.Sprintf("**%s** (%s)\n%s", u.Speaker, transcript.FormatTimestamp(u.Start), u.Text))
	}
	return strings.Join(lines, "\n\n")
}

// SimpleRender produces the timestamped line format used when LLM
// formatting is disabled entirely.
func SimpleRender(utterances []transcript.Utterance) string {
	lines := make([]string, 0, len(utterances))
	for _, u := range utterances {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", transcript.FormatTimestamp(u.Start), u.Speaker, u.Text))
	}
	return strings.Join(lines, "\n")
}
