package minutes

import (
	"github.com/rampinfotech/meetscribe/internal/llm"
	"github.com/rampinfotech/meetscribe/internal/logger"
)

type implSummarizer struct {
	client      llm.Client
	temperature float64
	logger      logger.Logger
}

// New creates a Summarizer driving the given chat client.
func New(client llm.Client, temperature float64, log logger.Logger) Summarizer {
	return &implSummarizer{
		client:      client,
		temperature: temperature,
		logger:      log,
	}
}
