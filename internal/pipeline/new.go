package pipeline

import (
	"github.com/rampinfotech/meetscribe/internal/audio"
	"github.com/rampinfotech/meetscribe/internal/config"
	"github.com/rampinfotech/meetscribe/internal/format"
	"github.com/rampinfotech/meetscribe/internal/logger"
	"github.com/rampinfotech/meetscribe/internal/minutes"
	"github.com/rampinfotech/meetscribe/internal/source"
	"github.com/rampinfotech/meetscribe/internal/store"
	"github.com/rampinfotech/meetscribe/internal/transcribe"
)

// Deps are the collaborators of one Pipeline. Store may be nil when
// persistence is disabled.
type Deps struct {
	Fetcher     source.Fetcher
	Splitter    audio.Splitter
	Transcriber transcribe.Service
	Formatter   format.Formatter
	Summarizer  minutes.Summarizer
	Store       *store.Store
}

type implPipeline struct {
	cfg    *config.Config
	deps   Deps
	logger logger.Logger
}

// New creates a Pipeline instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:    cfg,
		deps:   deps,
		logger: log,
	}
}
