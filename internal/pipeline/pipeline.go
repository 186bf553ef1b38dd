package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rampinfotech/meetscribe/internal/audio"
	"github.com/rampinfotech/meetscribe/internal/document"
	"github.com/rampinfotech/meetscribe/internal/format"
	"github.com/rampinfotech/meetscribe/internal/logger"
	"github.com/rampinfotech/meetscribe/internal/transcribe"
	"github.com/rampinfotech/meetscribe/internal/transcript"
)

// ProcessAudio runs the whole workflow for an audio reference: fetch,
// split, transcribe every chunk, assemble utterances, format, summarize,
// assemble the document and write/persist outputs. Temporary files are
// removed on every exit path.
func (p *implPipeline) ProcessAudio(ctx context.Context, ref string, opts Options) (*Result, error) {
	ctx = logger.WithCorrelation(ctx, uuid.NewString())
	startTime := time.Now()

	p.logger.Info(ctx, "Starting meeting processing: %s", ref)

	audioPath, err := p.deps.Fetcher.Fetch(ctx, ref, p.cfg.Paths.Temp)
	if err != nil {
		return nil, fmt.Errorf("fetch audio: %w", err)
	}
	defer p.removeWithRetry(ctx, audioPath)

	chunks, err := p.deps.Splitter.Split(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("split audio: %w", err)
	}
	defer func() {
		for _, c := range chunks {
			if c.Path != audioPath {
				p.removeWithRetry(ctx, c.Path)
			}
		}
	}()

	results, err := p.transcribeChunks(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	chunkSegments := make([]transcript.ChunkSegments, len(chunks))
	rawChunks := make([]rawChunk, len(chunks))
	for i, res := range results {
		chunkSegments[i] = transcript.ChunkSegments{
			OffsetSeconds: chunks[i].OffsetSeconds,
			Segments:      res.Segments,
		}
		rawChunks[i] = rawChunk{
			Chunk:         i + 1,
			OffsetSeconds: chunks[i].OffsetSeconds,
			Raw:           res.Raw,
		}
	}

	utterances := transcript.Assemble(chunkSegments)
	p.logger.Info(ctx, "Transcription complete. Total utterances: %d", len(utterances))

	result, err := p.finish(ctx, filepath.Base(ref), ref, utterances, rawChunks, opts)
	if err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "Processing completed in %s", time.Since(startTime).Round(time.Second))
	return result, nil
}

// ProcessUtterances drives the formatting half of the workflow for a
// transcript that already exists (no audio involved).
func (p *implPipeline) ProcessUtterances(ctx context.Context, title string, utterances []transcript.Utterance, opts Options) (*Result, error) {
	ctx = logger.WithCorrelation(ctx, uuid.NewString())

	p.logger.Info(ctx, "Processing existing transcript: %s (%d utterances)", title, len(utterances))
	return p.finish(ctx, title, "", utterances, nil, opts)
}

// transcribeChunks runs the transcription calls with bounded concurrency
// and reassembles results in chunk-index order regardless of completion
// order.
func (p *implPipeline) transcribeChunks(ctx context.Context, chunks []audio.Chunk) ([]*transcribe.Result, error) {
	results := make([]*transcribe.Result, len(chunks))

	sem := newSemaphore(p.cfg.Performance.MaxConcurrentChunks)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, chunk := range chunks {
		if err := sem.acquire(ctx); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(idx int, c audio.Chunk) {
			defer wg.Done()
			defer sem.release()

			p.logger.Info(ctx, "Transcribing chunk %d/%d...", idx+1, len(chunks))
			res, err := p.deps.Transcriber.Transcribe(ctx, c.Path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[idx] = res
		}(i, chunk)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// finish runs the shared tail of both entry points: format, summarize,
// assemble, save, persist.
func (p *implPipeline) finish(ctx context.Context, title, sourceRef string, utterances []transcript.Utterance, rawChunks []rawChunk, opts Options) (*Result, error) {
	if len(utterances) == 0 {
		return nil, ErrNoUtterances
	}

	var conversation string
	var degraded int
	if p.cfg.FormattingEnabled() {
		conversation, degraded = p.deps.Formatter.Format(ctx, utterances, opts.Participants)
		if degraded > 0 {
			p.logger.Warn(ctx, "Formatting degraded: %d windows used plain rendering", degraded)
		}
	} else {
		conversation = format.SimpleRender(utterances)
	}

	mom := p.deps.Summarizer.Summarize(ctx, utterances)
	if mom.Degraded {
		p.logger.Warn(ctx, "Summarization degraded: fallback path produced the minutes")
	}

	meta := document.MetaFrom(utterances, time.Now())
	doc := document.Assemble(meta, conversation, mom.SummaryMarkdown)

	result := &Result{
		Title:               title,
		Utterances:          utterances,
		FormattedTranscript: doc,
		Minutes:             mom,
		DegradedWindows:     degraded,
	}

	if opts.SaveFiles {
		index, saved, err := p.writeOutputs(ctx, sourceRef, result, rawChunks)
		if err != nil {
			return nil, fmt.Errorf("write outputs: %w", err)
		}
		result.OutputIndex = index
		result.SavedFiles = saved

		p.persist(ctx, sourceRef, result, saved)
	}

	return result, nil
}
