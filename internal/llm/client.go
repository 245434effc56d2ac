// Package llm wraps the chat model behind a small client so every generator
// shares one rate limiter and one JSON-reply contract.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"CryptoPulse/internal/config"
)

// Client is a rate-limited chat client over the configured model.
type Client struct {
	cm      einomodel.ChatModel
	limiter *rate.Limiter
	log     *logrus.Logger
}

// NewClient initializes the chat model from config.
func NewClient(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Client, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}
	limit := rate.Limit(float64(cfg.LLM.RPM) / 60.0)
	return &Client{
		cm:      cm,
		limiter: rate.NewLimiter(limit, cfg.LLM.Burst),
		log:     log,
	}, nil
}

// Chat sends a system/user prompt pair and returns the raw reply content.
// 429 responses are retried with exponential backoff.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	const maxRetries = 3
	baseDelay := 2 * time.Second

	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		messages := []*schema.Message{
			{Role: schema.System, Content: system},
			{Role: schema.User, Content: user},
		}

		resp, err := c.cm.Generate(ctx, messages)
		if err != nil {
			lastErr = err
			if isRateLimited(err) && i < maxRetries {
				delay := baseDelay * time.Duration(1<<i)
				c.log.Warnf("model rate limited (attempt %d/%d), retrying in %v", i+1, maxRetries+1, delay)
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(delay):
					continue
				}
			}
			return "", err
		}
		return resp.Content, nil
	}
	return "", lastErr
}

// ChatJSON sends a prompt pair expecting a JSON-object reply and strips any
// markdown code fences the model wraps around it.
func (c *Client) ChatJSON(ctx context.Context, system, user string) (string, error) {
	content, err := c.Chat(ctx, system, user)
	if err != nil {
		return "", err
	}
	return StripFences(content), nil
}

// StripFences removes a surrounding markdown code fence from a model reply.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
