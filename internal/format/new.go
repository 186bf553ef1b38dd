package format

import (
	"github.com/rampinfotech/meetscribe/internal/llm"
	"github.com/rampinfotech/meetscribe/internal/logger"
)

type implFormatter struct {
	client      llm.Client
	temperature float64
	logger      logger.Logger
}

// New creates a Formatter driving the given chat client.
func New(client llm.Client, temperature float64, log logger.Logger) Formatter {
	return &implFormatter{
		client:      client,
		temperature: temperature,
		logger:      log,
	}
}
