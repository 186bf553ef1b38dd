package audio

import (
	"github.com/rampinfotech/meetscribe/internal/config"
	"github.com/rampinfotech/meetscribe/internal/logger"
	"github.com/rampinfotech/meetscribe/pkg/executor"
)

type implSplitter struct {
	cfg      config.AudioConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Splitter that probes and slices audio with ffmpeg.
func New(cfg config.AudioConfig, exec executor.Executor, log logger.Logger) Splitter {
	return &implSplitter{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
