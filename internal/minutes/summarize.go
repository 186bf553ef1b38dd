package minutes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rampinfotech/meetscribe/internal/llm"
	"github.com/rampinfotech/meetscribe/internal/transcript"
)

const momInstructions = `Based on the transcript designated below, generate ONLY the following sections:
1. ## Meeting Summary
2. ## Key Discussion Points
3. ## Action Items
4. ## Decisions Made
5. ## Follow-up Required

Do NOT output the metadata header or the conversation dialogue. Just these summary sections.`

const failedSummary = "## Meeting Summary\n\n(Summary generation failed)."

type structuredSummary struct {
	SummaryMarkdown string       `json:"summary_markdown"`
	ActionItems     []ActionItem `json:"action_items"`
}

// Summarize issues one whole-transcript request for a structured JSON
// summary. On request or parse failure it reissues a plain-text request,
// and finally recovers action items from the markdown by regex when the
// structured list came back empty. The regex pass only ever runs against
// an empty list, so repeated attempts cannot double-append.
func (s *implSummarizer) Summarize(ctx context.Context, utterances []transcript.Utterance) *Minutes {
	s.logger.Info(ctx, "Generating meeting summary...")

	// The raw transcript is enough for understanding; the formatted
	// dialogue is not needed and would cost extra tokens.
	fullRawText := transcript.PlainText(utterances)

	result := &Minutes{}

	summary, items, err := s.structuredRequest(ctx, fullRawText)
	if err != nil {
		s.logger.Warn(ctx, "Structured summary failed, falling back to plain text: %v", err)
		result.Degraded = true

		summary, err = s.plainRequest(ctx, fullRawText)
		if err != nil {
			s.logger.Error(ctx, "Fallback summary generation failed: %v", err)
			summary = failedSummary
		}
		items = nil
	}

	result.SummaryMarkdown = summary
	result.ActionItems = items

	if len(result.ActionItems) == 0 && result.SummaryMarkdown != "" {
		extracted := ExtractActionItems(result.SummaryMarkdown)
		if len(extracted) > 0 {
			s.logger.Info(ctx, "Extracted %d action items from markdown summary", len(extracted))
			result.ActionItems = extracted
			result.Degraded = true
		}
	}

	return result
}

func (s *implSummarizer) structuredRequest(ctx context.Context, fullRawText string) (string, []ActionItem, error) {
	system := "You are a professional meeting secretary. You need to generate a meeting summary based on the transcript.\n" +
		"Output MUST be in JSON format with the following keys:\n" +
		"1. 'summary_markdown': The full markdown text containing Meeting Summary, Key Points, Action Items, Decisions, etc. (Formatted as requested)\n" +
		"2. 'action_items': A list of objects, each having {'title': str, 'description': str, 'assigned_to': str, 'priority': str}\n" +
		"\n" +
		"Here are the specific formatting instructions for the 'summary_markdown':\n" + momInstructions

	response, err := s.client.Complete(ctx, llm.Request{
		System:      system,
		User:        "Full Transcript:\n" + fullRawText,
		Temperature: s.temperature,
		ForceJSON:   true,
	})
	if err != nil {
		return "", nil, err
	}

	var parsed structuredSummary
	if err := json.Unmarshal([]byte(llm.StripFences(response)), &parsed); err != nil {
		return "", nil, fmt.Errorf("parse structured summary: %w", err)
	}

	for i := range parsed.ActionItems {
		parsed.ActionItems[i].Priority = normalizePriority(string(parsed.ActionItems[i].Priority))
	}

	return parsed.SummaryMarkdown, parsed.ActionItems, nil
}

func (s *implSummarizer) plainRequest(ctx context.Context, fullRawText string) (string, error) {
	response, err := s.client.Complete(ctx, llm.Request{
		System:      momInstructions,
		User:        "Full Transcript:\n" + fullRawText,
		Temperature: s.temperature,
	})
	if err != nil {
		return "", err
	}
	return llm.StripFences(response), nil
}
