package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/memoirly/memoirly-web/config"
	"github.com/memoirly/memoirly-web/internal/logger"
)

// Client asks a local ollama instance for reflection prompt suggestions.
type Client struct {
	client *api.Client
	config *config.OllamaConfig
	logger *logger.Log
}

// NewClient connects to the host from the config, or falls back to the
// OLLAMA_HOST environment when none is configured.
func NewClient(cfg *config.OllamaConfig) (*Client, error) {
	var client *api.Client

	if cfg.Host != "" {
		base, err := url.Parse(cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host %q: %w", cfg.Host, err)
		}
		client = api.NewClient(base, http.DefaultClient)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
	}

	return &Client{
		client: client,
		config: cfg,
		logger: logger.New(),
	}, nil
}

// GenerateResponse runs one non-streaming generation. A suggestion is a
// single short question, so the output is capped tight and the sampling
// leans warm rather than deterministic.
func (c *Client) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	shouldStream := false

	req := &api.GenerateRequest{
		Model:  c.config.Model,
		Prompt: prompt,
		Stream: &shouldStream,
		Options: map[string]interface{}{
			"temperature": 0.8,
			"top_p":       0.9,
			"num_predict": 128,
		},
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(c.config.Timeout)*time.Second)
	defer cancel()

	c.logger.Debug(fmt.Sprintf("Asking %s for a reflection prompt", c.config.Model))

	var response string
	err := c.client.Generate(timeoutCtx, req, func(g api.GenerateResponse) error {
		response = g.Response
		return nil
	})
	if err != nil {
		c.logger.WithError(err).Error("Prompt suggestion generation failed")
		return "", fmt.Errorf("ollama generation failed: %w", err)
	}

	return response, nil
}

// IsModelAvailable checks the configured model against the instance's
// local model list.
func (c *Client) IsModelAvailable(ctx context.Context) error {
	models, err := c.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	available := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		if model.Name == c.config.Model {
			return nil
		}
		available = append(available, model.Name)
	}

	return fmt.Errorf("model %s not found. Available models: %v", c.config.Model, available)
}
