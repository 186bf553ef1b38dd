package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rampinfotech/meetscribe/internal/audio"
	"github.com/rampinfotech/meetscribe/internal/config"
	"github.com/rampinfotech/meetscribe/internal/logger"
	"github.com/rampinfotech/meetscribe/internal/minutes"
	"github.com/rampinfotech/meetscribe/internal/transcribe"
	"github.com/rampinfotech/meetscribe/internal/transcript"
)

type fakeFetcher struct {
	path string
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, ref, destDir string) (string, error) {
	return f.path, f.err
}

type fakeSplitter struct {
	chunks []audio.Chunk
	err    error
}

func (s *fakeSplitter) Split(ctx context.Context, audioPath string) ([]audio.Chunk, error) {
	return s.chunks, s.err
}

// fakeTranscriber maps chunk paths to segments and optionally delays each
// call so completion order differs from submission order.
type fakeTranscriber struct {
	segments map[string][]transcript.Segment
	delays   map[string]time.Duration
	err      error
}

func (t *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (*transcribe.Result, error) {
	if d, ok := t.delays[audioPath]; ok {
		time.Sleep(d)
	}
	if t.err != nil {
		return nil, t.err
	}
	return &transcribe.Result{
		Segments: t.segments[audioPath],
		Raw:      json.RawMessage(fmt.Sprintf(`{"chunk":%q}`, audioPath)),
	}, nil
}

type fakeFormatter struct {
	text     string
	degraded int
}

func (f *fakeFormatter) Format(ctx context.Context, utterances []transcript.Utterance, participants string) (string, int) {
	return f.text, f.degraded
}

type fakeSummarizer struct {
	mom *minutes.Minutes
}

func (s *fakeSummarizer) Summarize(ctx context.Context, utterances []transcript.Utterance) *minutes.Minutes {
	return s.mom
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	enabled := true
	return &config.Config{
		LLM:         config.LLMConfig{EnableFormatting: &enabled},
		Paths:       config.PathsConfig{Output: t.TempDir(), Temp: t.TempDir()},
		Performance: config.PerformanceConfig{MaxConcurrentChunks: 2},
	}
}

func testDeps(fetcher *fakeFetcher, splitter *fakeSplitter, transcriber *fakeTranscriber) Deps {
	return Deps{
		Fetcher:     fetcher,
		Splitter:    splitter,
		Transcriber: transcriber,
		Formatter:   &fakeFormatter{text: "formatted conversation"},
		Summarizer:  &fakeSummarizer{mom: &minutes.Minutes{SummaryMarkdown: "## Meeting Summary\n\nDone."}},
	}
}

func writeTempAudio(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessAudioOrdersChunksByIndex(t *testing.T) {
	cfg := testConfig(t)
	audioPath := writeTempAudio(t, cfg.Paths.Temp, "meeting.mp3")

	// The first chunk is the slowest, so completion order is reversed.
	transcriber := &fakeTranscriber{
		segments: map[string][]transcript.Segment{
			"c1": {{Speaker: "A", Text: "first", Start: 0, End: 5}},
			"c2": {{Speaker: "B", Text: "second", Start: 0, End: 5}},
			"c3": {{Speaker: "C", Text: "third", Start: 0, End: 5}},
		},
		delays: map[string]time.Duration{
			"c1": 60 * time.Millisecond,
			"c2": 30 * time.Millisecond,
		},
	}
	splitter := &fakeSplitter{chunks: []audio.Chunk{
		{Path: "c1", OffsetSeconds: 0},
		{Path: "c2", OffsetSeconds: 1200},
		{Path: "c3", OffsetSeconds: 2400},
	}}

	p := New(cfg, testDeps(&fakeFetcher{path: audioPath}, splitter, transcriber), logger.New("error"))

	result, err := p.ProcessAudio(context.Background(), "meeting.mp3", Options{})
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}

	wantTexts := []string{"first", "second", "third"}
	wantStarts := []float64{0, 1200, 2400}
	if len(result.Utterances) != 3 {
		t.Fatalf("expected 3 utterances, got %d", len(result.Utterances))
	}
	for i, u := range result.Utterances {
		if u.Text != wantTexts[i] {
			t.Errorf("utterance %d: text = %q, want %q", i, u.Text, wantTexts[i])
		}
		if u.Start != wantStarts[i] {
			t.Errorf("utterance %d: start = %v, want %v", i, u.Start, wantStarts[i])
		}
	}
}

func TestProcessAudioRemovesTempAudio(t *testing.T) {
	cfg := testConfig(t)
	audioPath := writeTempAudio(t, cfg.Paths.Temp, "meeting.mp3")

	transcriber := &fakeTranscriber{segments: map[string][]transcript.Segment{
		audioPath: {{Speaker: "A", Text: "hello", Start: 0, End: 2}},
	}}
	splitter := &fakeSplitter{chunks: []audio.Chunk{{Path: audioPath, OffsetSeconds: 0}}}

	p := New(cfg, testDeps(&fakeFetcher{path: audioPath}, splitter, transcriber), logger.New("error"))

	if _, err := p.ProcessAudio(context.Background(), "meeting.mp3", Options{}); err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	if _, err := os.Stat(audioPath); !os.IsNotExist(err) {
		t.Errorf("temp audio file still exists after processing")
	}
}

func TestProcessAudioTranscriptionFailure(t *testing.T) {
	cfg := testConfig(t)
	audioPath := writeTempAudio(t, cfg.Paths.Temp, "meeting.mp3")

	wantErr := &transcribe.Error{Kind: transcribe.KindFatal, StatusCode: 401, Err: errors.New("unauthorized")}
	transcriber := &fakeTranscriber{err: wantErr}
	splitter := &fakeSplitter{chunks: []audio.Chunk{{Path: audioPath, OffsetSeconds: 0}}}

	p := New(cfg, testDeps(&fakeFetcher{path: audioPath}, splitter, transcriber), logger.New("error"))

	_, err := p.ProcessAudio(context.Background(), "meeting.mp3", Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	var te *transcribe.Error
	if !errors.As(err, &te) {
		t.Errorf("expected wrapped *transcribe.Error, got %v", err)
	}
}

func TestProcessUtterancesEmptyTranscript(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, testDeps(&fakeFetcher{}, &fakeSplitter{}, &fakeTranscriber{}), logger.New("error"))

	_, err := p.ProcessUtterances(context.Background(), "empty.vtt", nil, Options{})
	if !errors.Is(err, ErrNoUtterances) {
		t.Errorf("expected ErrNoUtterances, got %v", err)
	}
}

func TestProcessUtterancesSavesArtifacts(t *testing.T) {
	cfg := testConfig(t)
	utterances := []transcript.Utterance{
		{Speaker: "Alice", Text: "Hello everyone.", Start: 0, End: 3},
	}

	p := New(cfg, testDeps(&fakeFetcher{}, &fakeSplitter{}, &fakeTranscriber{}), logger.New("error"))

	result, err := p.ProcessUtterances(context.Background(), "meeting.vtt", utterances, Options{SaveFiles: true})
	if err != nil {
		t.Fatalf("ProcessUtterances: %v", err)
	}
	if result.OutputIndex != 1 {
		t.Errorf("output index = %d, want 1", result.OutputIndex)
	}

	for _, name := range []string{"output_1_diarized.json", "output_1_transcript.txt", "output_1_formatted.md", "output_1_mom.md"} {
		if _, err := os.Stat(filepath.Join(cfg.Paths.Output, name)); err != nil {
			t.Errorf("expected artifact %s: %v", name, err)
		}
	}
	// No raw responses exist on the transcript-only path.
	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "output_1_raw.json")); !os.IsNotExist(err) {
		t.Errorf("raw output should not be written for a pre-existing transcript")
	}
}

func TestProcessAudioSavesRawResponses(t *testing.T) {
	cfg := testConfig(t)
	audioPath := writeTempAudio(t, cfg.Paths.Temp, "meeting.mp3")

	transcriber := &fakeTranscriber{segments: map[string][]transcript.Segment{
		audioPath: {{Speaker: "A", Text: "hello", Start: 0, End: 2}},
	}}
	splitter := &fakeSplitter{chunks: []audio.Chunk{{Path: audioPath, OffsetSeconds: 0}}}

	p := New(cfg, testDeps(&fakeFetcher{path: audioPath}, splitter, transcriber), logger.New("error"))

	result, err := p.ProcessAudio(context.Background(), "meeting.mp3", Options{SaveFiles: true})
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	rawPath, ok := result.SavedFiles["raw_output"]
	if !ok {
		t.Fatal("expected raw_output in saved files")
	}
	data, err := os.ReadFile(rawPath)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Chunks []rawChunk `json:"chunks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("raw output is not valid JSON: %v", err)
	}
	if len(doc.Chunks) != 1 || doc.Chunks[0].Chunk != 1 {
		t.Errorf("unexpected raw chunks: %+v", doc.Chunks)
	}
}

func TestOutputIndexIncrementsWithoutStore(t *testing.T) {
	cfg := testConfig(t)
	utterances := []transcript.Utterance{{Speaker: "A", Text: "hi", Start: 0, End: 1}}

	p := New(cfg, testDeps(&fakeFetcher{}, &fakeSplitter{}, &fakeTranscriber{}), logger.New("error"))

	for want := 1; want <= 3; want++ {
		result, err := p.ProcessUtterances(context.Background(), "m.vtt", utterances, Options{SaveFiles: true})
		if err != nil {
			t.Fatalf("run %d: %v", want, err)
		}
		if result.OutputIndex != want {
			t.Errorf("run %d: output index = %d", want, result.OutputIndex)
		}
	}
}

func TestFormattingDisabledUsesPlainRendering(t *testing.T) {
	cfg := testConfig(t)
	disabled := false
	cfg.LLM.EnableFormatting = &disabled

	utterances := []transcript.Utterance{
		{Speaker: "Alice", Text: "Hello.", Start: 65, End: 67},
	}

	p := New(cfg, testDeps(&fakeFetcher{}, &fakeSplitter{}, &fakeTranscriber{}), logger.New("error"))

	result, err := p.ProcessUtterances(context.Background(), "m.vtt", utterances, Options{})
	if err != nil {
		t.Fatalf("ProcessUtterances: %v", err)
	}
	if !strings.Contains(result.FormattedTranscript, "[00:01:05] Alice: Hello.") {
		t.Errorf("expected plain rendering in document, got:\n%s", result.FormattedTranscript)
	}
	if strings.Contains(result.FormattedTranscript, "formatted conversation") {
		t.Errorf("formatter output used despite formatting being disabled")
	}
}

func TestDegradedWindowsReported(t *testing.T) {
	cfg := testConfig(t)
	deps := testDeps(&fakeFetcher{}, &fakeSplitter{}, &fakeTranscriber{})
	deps.Formatter = &fakeFormatter{text: "partial", degraded: 2}

	utterances := []transcript.Utterance{{Speaker: "A", Text: "hi", Start: 0, End: 1}}

	p := New(cfg, deps, logger.New("error"))

	result, err := p.ProcessUtterances(context.Background(), "m.vtt", utterances, Options{})
	if err != nil {
		t.Fatalf("ProcessUtterances: %v", err)
	}
	if result.DegradedWindows != 2 {
		t.Errorf("degraded windows = %d, want 2", result.DegradedWindows)
	}
}
