package audio

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rampinfotech/meetscribe/internal/config"
	"github.com/rampinfotech/meetscribe/internal/logger"
)

const ceilingMS = 20 * 60 * 1000

func TestPlanSingleChunk(t *testing.T) {
	tests := []int64{1, 1000, ceilingMS - 1, ceilingMS}

	for _, duration := range tests {
		spans := plan(duration, ceilingMS)
		if len(spans) != 1 {
			t.Errorf("plan(%d) chunks = %d, want 1", duration, len(spans))
			continue
		}
		if spans[0].startMS != 0 || spans[0].lengthMS != duration {
			t.Errorf("plan(%d) = %+v, want single full-coverage span", duration, spans[0])
		}
	}
}

func TestPlanPartition(t *testing.T) {
	tests := []struct {
		durationMS int64
		wantChunks int
	}{
		{ceilingMS + 1, 2},
		{2 * ceilingMS, 2},
		{2*ceilingMS + 1, 3},
		{65 * 60 * 1000, 4}, // 65 minutes → 4 chunks of ≤20min
	}

	for _, tt := range tests {
		spans := plan(tt.durationMS, ceilingMS)
		if len(spans) != tt.wantChunks {
			t.Errorf("plan(%d) chunks = %d, want %d", tt.durationMS, len(spans), tt.wantChunks)
			continue
		}

		var covered int64
		var prevStart int64 = -1
		for i, sp := range spans {
			if sp.startMS <= prevStart {
				t.Errorf("plan(%d) span %d start %d not strictly increasing", tt.durationMS, i, sp.startMS)
			}
			if sp.lengthMS > ceilingMS {
				t.Errorf("plan(%d) span %d length %d exceeds ceiling", tt.durationMS, i, sp.lengthMS)
			}
			if sp.startMS != covered {
				t.Errorf("plan(%d) span %d start %d leaves a gap (covered %d)", tt.durationMS, i, sp.startMS, covered)
			}
			covered += sp.lengthMS
			prevStart = sp.startMS
		}
		if covered != tt.durationMS {
			t.Errorf("plan(%d) coverage = %d, want full duration", tt.durationMS, covered)
		}
	}
}

// fakeExecutor answers ffprobe with a canned duration and records ffmpeg
// invocations instead of running them.
type fakeExecutor struct {
	durationSeconds float64
	commands        [][]string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.commands = append(f.commands, append([]string{name}, args...))
	if name == "ffprobe" {
		return fmt.Sprintf("%f\n", f.durationSeconds), nil
	}
	return "", nil
}

func TestSplitShortAudioPassesThrough(t *testing.T) {
	exec := &fakeExecutor{durationSeconds: 5 * 60}
	s := New(config.AudioConfig{ChunkMinutes: 20, FFmpegPath: "ffmpeg", FFprobePath: "ffprobe"}, exec, logger.New("error"))

	chunks, err := s.Split(context.Background(), "meeting.mp3")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	if chunks[0].Path != "meeting.mp3" || chunks[0].OffsetSeconds != 0 {
		t.Errorf("chunk = %+v, want original file at offset 0", chunks[0])
	}
	// Only the probe should have run
	if len(exec.commands) != 1 {
		t.Errorf("commands run = %d, want 1 (probe only)", len(exec.commands))
	}
}

func TestSplitLongAudio(t *testing.T) {
	exec := &fakeExecutor{durationSeconds: 65 * 60}
	s := New(config.AudioConfig{ChunkMinutes: 20, FFmpegPath: "ffmpeg", FFprobePath: "ffprobe"}, exec, logger.New("error"))

	chunks, err := s.Split(context.Background(), "meeting.mp3")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	if len(chunks) != 4 {
		t.Fatalf("chunks = %d, want 4", len(chunks))
	}

	wantOffsets := []float64{0, 1200, 2400, 3600}
	for i, c := range chunks {
		if c.OffsetSeconds != wantOffsets[i] {
			t.Errorf("chunk %d offset = %v, want %v", i, c.OffsetSeconds, wantOffsets[i])
		}
		if !strings.HasSuffix(c.Path, fmt.Sprintf("_chunk_%d.mp3", i+1)) {
			t.Errorf("chunk %d path = %q, want _chunk_%d.mp3 suffix", i, c.Path, i+1)
		}
	}

	// One probe plus one ffmpeg export per chunk
	if len(exec.commands) != 5 {
		t.Errorf("commands run = %d, want 5", len(exec.commands))
	}
}
