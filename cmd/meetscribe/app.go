package main

import (
	"fmt"
	"os"

	"github.com/rampinfotech/meetscribe/internal/audio"
	"github.com/rampinfotech/meetscribe/internal/config"
	"github.com/rampinfotech/meetscribe/internal/format"
	"github.com/rampinfotech/meetscribe/internal/llm"
	"github.com/rampinfotech/meetscribe/internal/logger"
	"github.com/rampinfotech/meetscribe/internal/minutes"
	"github.com/rampinfotech/meetscribe/internal/pipeline"
	"github.com/rampinfotech/meetscribe/internal/source"
	"github.com/rampinfotech/meetscribe/internal/store"
	"github.com/rampinfotech/meetscribe/internal/transcribe"
	"github.com/rampinfotech/meetscribe/pkg/executor"
)

// app wires the full dependency graph from one loaded configuration.
type app struct {
	cfg   *config.Config
	log   logger.Logger
	store *store.Store
	pipe  pipeline.Pipeline
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Logging.Level)

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	var st *store.Store
	if cfg.Store.Enabled {
		st, err = store.Open(cfg.Store)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
	}

	llmClient := llm.New(cfg.LLM.APIKeys, cfg.LLM.Model, log)

	deps := pipeline.Deps{
		Fetcher:     source.New(log),
		Splitter:    audio.New(cfg.Audio, executor.New(), log),
		Transcriber: transcribe.WithRetry(transcribe.NewClient(cfg.Transcription, log), log),
		Formatter:   format.New(llmClient, cfg.LLM.Temperature, log),
		Summarizer:  minutes.New(llmClient, cfg.LLM.Temperature, log),
		Store:       st,
	}

	return &app{
		cfg:   cfg,
		log:   log,
		store: st,
		pipe:  pipeline.New(cfg, deps, log),
	}, nil
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Output, cfg.Paths.Temp}
	if cfg.Paths.Watch != "" {
		dirs = append(dirs, cfg.Paths.Watch)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
