package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rampinfotech/meetscribe/internal/config"
	"github.com/rampinfotech/meetscribe/internal/logger"
	"github.com/rampinfotech/meetscribe/internal/transcript"
)

type implClient struct {
	cfg    config.TranscriptionConfig
	http   *http.Client
	logger logger.Logger
}

// NewClient creates a Service backed by an OpenAI-compatible diarizing
// transcription endpoint.
func NewClient(cfg config.TranscriptionConfig, log logger.Logger) Service {
	return &implClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMinutes) * time.Minute,
		},
		logger: log,
	}
}

type diarizedResponse struct {
	Segments []transcript.Segment `json:"segments"`
}

// Transcribe uploads one audio chunk and returns its diarized segments.
// Failures are classified transient or fatal here, at the transport
// boundary, so the retry wrapper never inspects error text.
func (c *implClient) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, &Error{Kind: KindFatal, Err: fmt.Errorf("open audio chunk: %w", err)}
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := map[string]string{
		"model":             c.cfg.Model,
		"response_format":   "diarized_json",
		"chunking_strategy": "auto",
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, &Error{Kind: KindFatal, Err: fmt.Errorf("write field %s: %w", name, err)}
		}
	}

	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, &Error{Kind: KindFatal, Err: fmt.Errorf("create form file: %w", err)}
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, &Error{Kind: KindFatal, Err: fmt.Errorf("copy audio into request: %w", err)}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Kind: KindFatal, Err: fmt.Errorf("close multipart writer: %w", err)}
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, &Error{Kind: KindFatal, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: classifyNetworkError(err), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransient, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode >= 500 {
		return nil, &Error{Kind: KindTransient, StatusCode: resp.StatusCode, Err: fmt.Errorf("server fault: %s", truncate(raw, 300))}
	}
	if resp.StatusCode >= 300 {
		return nil, &Error{Kind: KindFatal, StatusCode: resp.StatusCode, Err: fmt.Errorf("request rejected: %s", truncate(raw, 300))}
	}

	var parsed diarizedResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &Error{Kind: KindFatal, Err: fmt.Errorf("decode diarized response: %w", err)}
	}

	return &Result{Segments: parsed.Segments, Raw: raw}, nil
}

// classifyNetworkError maps transport-level failures to a retry class.
// Timeouts, resets and dropped connections are worth retrying; anything
// else is fatal.
func classifyNetworkError(err error) Kind {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTransient
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EPIPE) {
		return KindTransient
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return KindTransient
	}
	return KindFatal
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
