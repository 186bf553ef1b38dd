package pipeline

import (
	"context"
	"time"

	"github.com/rampinfotech/meetscribe/internal/store"
	"github.com/rampinfotech/meetscribe/internal/transcript"
)

// persist stores the finished meeting. Persistence failures never fail
// the pipeline; they are logged and swallowed.
func (p *implPipeline) persist(ctx context.Context, sourceRef string, result *Result, saved map[string]string) {
	if p.deps.Store == nil {
		return
	}

	audioPath := sourceRef
	if audioPath == "" {
		audioPath = "N/A (existing transcript)"
	}

	rec := store.MeetingRecord{
		Title:           result.Title,
		Date:            time.Now(),
		DurationSeconds: transcript.SpokenDuration(result.Utterances),
		AudioPath:       audioPath,
		TranscriptPath:  saved["formatted_md"],
		MoMPath:         saved["mom_md"],
		SummaryText:     result.Minutes.SummaryMarkdown,
		Utterances:      result.Utterances,
		ActionItems:     result.Minutes.ActionItems,
	}

	if _, err := p.deps.Store.SaveMeeting(ctx, rec); err != nil {
		p.logger.Error(ctx, "Failed to persist meeting (continuing): %v", err)
	}
}
