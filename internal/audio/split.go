package audio

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type span struct {
	startMS  int64
	lengthMS int64
}

// plan partitions a duration into contiguous, non-overlapping spans of at
// most ceilingMS each. A duration within the ceiling yields a single span.
func plan(durationMS, ceilingMS int64) []span {
	if durationMS <= ceilingMS {
		return []span{{startMS: 0, lengthMS: durationMS}}
	}

	numChunks := (durationMS + ceilingMS - 1) / ceilingMS
	spans := make([]span, 0, numChunks)
	for i := int64(0); i < numChunks; i++ {
		start := i * ceilingMS
		end := start + ceilingMS
		if end > durationMS {
			end = durationMS
		}
		spans = append(spans, span{startMS: start, lengthMS: end - start})
	}
	return spans
}

// Split probes the audio duration and, when it exceeds the configured
// ceiling, materializes each slice as an independent mp3 next to the
// source file. Within the ceiling the source is passed through untouched
// with offset 0.
func (s *implSplitter) Split(ctx context.Context, audioPath string) ([]Chunk, error) {
	durationMS, err := s.probeDurationMS(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("probe duration: %w", err)
	}

	ceilingMS := int64(s.cfg.ChunkMinutes) * 60 * 1000
	spans := plan(durationMS, ceilingMS)

	if len(spans) == 1 {
		return []Chunk{{Path: audioPath, OffsetSeconds: 0}}, nil
	}

	s.logger.Info(ctx, "Splitting audio into %d chunks of at most %d minutes", len(spans), s.cfg.ChunkMinutes)

	chunks := make([]Chunk, 0, len(spans))
	for i, sp := range spans {
		chunkPath := fmt.Sprintf("%s_chunk_%d.mp3", audioPath, i+1)

		args := []string{
			"-y",
			"-i", audioPath,
			"-ss", formatSeconds(sp.startMS),
			"-t", formatSeconds(sp.lengthMS),
			"-vn",
			"-acodec", "libmp3lame",
			chunkPath,
		}

		if _, err := s.executor.Execute(ctx, s.cfg.FFmpegPath, args...); err != nil {
			return nil, fmt.Errorf("export chunk %d: %w", i+1, err)
		}

		chunks = append(chunks, Chunk{
			Path:          chunkPath,
			OffsetSeconds: float64(sp.startMS) / 1000,
		})
	}

	return chunks, nil
}

// probeDurationMS reads the container duration with ffprobe.
func (s *implSplitter) probeDurationMS(ctx context.Context, audioPath string) (int64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	}

	out, err := s.executor.Execute(ctx, s.cfg.FFprobePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(out), err)
	}

	return int64(seconds * 1000), nil
}

func formatSeconds(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', 3, 64)
}
