package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rampinfotech/meetscribe/internal/config"
	"github.com/rampinfotech/meetscribe/internal/logger"
)

type implFetcher struct {
	http   *http.Client
	logger logger.Logger
}

// New creates a Fetcher for http(s) URLs and local paths.
func New(log logger.Logger) Fetcher {
	return &implFetcher{
		http:   &http.Client{Timeout: 5 * time.Minute},
		logger: log,
	}
}

func (f *implFetcher) Fetch(ctx context.Context, ref, destDir string) (string, error) {
	filename := filenameFrom(ref)

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtension(ext) {
		return "", fmt.Errorf("%w: %s (allowed: %s)", ErrUnsupportedFormat, ext, strings.Join(config.AllowedExtensions, ", "))
	}

	destPath := filepath.Join(destDir, "temp_"+time.Now().Format("20060102_150405")+"_"+filename)

	f.logger.Info(ctx, "Fetching audio from: %s", ref)

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if err := f.download(ctx, ref, destPath); err != nil {
			return "", &DownloadError{Ref: ref, Err: err}
		}
	} else {
		if err := copyLocal(ref, destPath); err != nil {
			return "", &DownloadError{Ref: ref, Err: err}
		}
	}

	f.logger.Info(ctx, "Audio fetched successfully: %s", destPath)
	return destPath, nil
}

func (f *implFetcher) download(ctx context.Context, rawURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(destPath)
		return err
	}
	return nil
}

func copyLocal(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(destPath)
		return err
	}
	return nil
}

func filenameFrom(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if u, err := url.Parse(ref); err == nil {
			if name := path.Base(u.Path); name != "" && name != "." && name != "/" {
				return name
			}
		}
		return "downloaded_audio.wav"
	}
	return filepath.Base(ref)
}

func allowedExtension(ext string) bool {
	for _, allowed := range config.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
