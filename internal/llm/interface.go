package llm

import "context"

// Request is one chat completion request. ForceJSON constrains the model
// to emit a single JSON object.
type Request struct {
	System           string
	User             string
	Temperature      float64
	FrequencyPenalty float64
	PresencePenalty  float64
	ForceJSON        bool
}

// Client is the chat completion collaborator used by the formatter and
// the summarizer.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
