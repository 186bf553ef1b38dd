package llm

import (
	"sync"

	"github.com/rampinfotech/meetscribe/internal/logger"
)

type implClient struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	// mu guards currentKey; one client is shared by concurrent
	// pipeline invocations in watch mode.
	mu         sync.Mutex
	currentKey int
}

// New creates a Client that rotates through the supplied Gemini API keys
// when one runs into quota limits.
func New(apiKeys []string, model string, log logger.Logger) Client {
	return &implClient{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}
