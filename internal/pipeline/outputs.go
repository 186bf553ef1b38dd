package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rampinfotech/meetscribe/internal/document"
	"github.com/rampinfotech/meetscribe/internal/transcript"
)

// rawChunk preserves the transcription service's untouched response for
// one chunk, keyed by chunk index and offset.
type rawChunk struct {
	Chunk         int             `json:"chunk"`
	OffsetSeconds float64         `json:"offset_seconds"`
	Raw           json.RawMessage `json:"raw"`
}

type diarizedDocument struct {
	Source      string                 `json:"source,omitempty"`
	OutputIndex int                    `json:"output_index"`
	Timestamp   string                 `json:"timestamp"`
	Chunks      int                    `json:"chunks,omitempty"`
	Utterances  []transcript.Utterance `json:"utterances"`
}

// writeOutputs writes the artifact set for one run, all keyed by the
// shared output index: diarized JSON, raw responses, plain transcript,
// formatted markdown and the separate minutes file.
func (p *implPipeline) writeOutputs(ctx context.Context, sourceRef string, result *Result, rawChunks []rawChunk) (int, map[string]string, error) {
	outputDir := p.cfg.Paths.Output
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, nil, fmt.Errorf("create output dir: %w", err)
	}

	index := p.nextOutputIndex(ctx, outputDir)
	base := fmt.Sprintf("output_%d", index)
	saved := make(map[string]string)

	diarizedPath := filepath.Join(outputDir, base+"_diarized.json")
	diarized := diarizedDocument{
		Source:      sourceRef,
		OutputIndex: index,
		Timestamp:   time.Now().Format("20060102_150405"),
		Chunks:      len(rawChunks),
		Utterances:  result.Utterances,
	}
	if err := writeJSON(diarizedPath, diarized); err != nil {
		return 0, nil, err
	}
	saved["diarized_json"] = diarizedPath

	if rawChunks != nil {
		rawPath := filepath.Join(outputDir, base+"_raw.json")
		if err := writeJSON(rawPath, map[string][]rawChunk{"chunks": rawChunks}); err != nil {
			return 0, nil, err
		}
		saved["raw_output"] = rawPath
	}

	txtPath := filepath.Join(outputDir, base+"_transcript.txt")
	if err := os.WriteFile(txtPath, []byte(transcript.PlainText(result.Utterances)), 0644); err != nil {
		return 0, nil, fmt.Errorf("write plain transcript: %w", err)
	}
	saved["transcript_txt"] = txtPath

	formattedPath := filepath.Join(outputDir, base+"_formatted.md")
	if err := os.WriteFile(formattedPath, []byte(result.FormattedTranscript), 0644); err != nil {
		return 0, nil, fmt.Errorf("write formatted transcript: %w", err)
	}
	saved["formatted_md"] = formattedPath

	momPath := filepath.Join(outputDir, base+"_mom.md")
	if err := os.WriteFile(momPath, []byte(result.Minutes.SummaryMarkdown), 0644); err != nil {
		return 0, nil, fmt.Errorf("write minutes: %w", err)
	}
	saved["mom_md"] = momPath

	if p.cfg.Output.Docx {
		momDocxPath := filepath.Join(outputDir, base+"_mom.docx")
		if err := document.WriteMinutesDocx(docTitle(result.Title), result.Minutes.SummaryMarkdown, momDocxPath); err != nil {
			p.logger.Warn(ctx, "Failed to write minutes docx: %v", err)
		} else {
			saved["mom_docx"] = momDocxPath
		}

		transcriptDocxPath := filepath.Join(outputDir, base+"_transcript.docx")
		if err := document.WriteTranscriptDocx(docTitle(result.Title), result.Utterances, transcriptDocxPath); err != nil {
			p.logger.Warn(ctx, "Failed to write transcript docx: %v", err)
		} else {
			saved["transcript_docx"] = transcriptDocxPath
		}
	}

	p.logger.Info(ctx, "Saved outputs with index %d to %s", index, outputDir)
	return index, saved, nil
}

// nextOutputIndex prefers the store's atomic counter. Without a store it
// falls back to counting existing artifacts, which tolerates (but does
// not prevent) last-writer-wins under concurrent runs.
func (p *implPipeline) nextOutputIndex(ctx context.Context, outputDir string) int {
	if p.deps.Store != nil {
		index, err := p.deps.Store.NextOutputIndex(ctx)
		if err == nil {
			return index
		}
		p.logger.Warn(ctx, "Output counter unavailable, falling back to directory scan: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(outputDir, "output_*_diarized.json"))
	if err != nil {
		return 1
	}
	return len(matches) + 1
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func docTitle(title string) string {
	if title == "" {
		return "Meeting Minutes"
	}
	return strings.TrimSuffix(title, filepath.Ext(title))
}
