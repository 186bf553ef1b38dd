package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Complete sends one chat completion request to Gemini and returns the
// text of the first candidate. Rotates API keys on 429 / quota errors.
func (c *implClient) Complete(ctx context.Context, req Request) (string, error) {
	attempts := len(c.apiKeys)
	var lastErr error

	for range attempts {
		key, keyIndex := c.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(req.User), c.generateConfig(req))
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				c.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIndex+1)
				c.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("empty response from model")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *implClient) generateConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature != 0 {
		t := float32(req.Temperature)
		cfg.Temperature = &t
	}
	if req.FrequencyPenalty != 0 {
		p := float32(req.FrequencyPenalty)
		cfg.FrequencyPenalty = &p
	}
	if req.PresencePenalty != 0 {
		p := float32(req.PresencePenalty)
		cfg.PresencePenalty = &p
	}
	if req.ForceJSON {
		cfg.ResponseMIMEType = "application/json"
	}

	return cfg
}

// activeKey reads the rotation state under the lock.
func (c *implClient) activeKey() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKeys[c.currentKey], c.currentKey
}

func (c *implClient) rotateKey() {
	c.mu.Lock()
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	c.mu.Unlock()
}
