package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finmo/internal/core"
	"finmo/internal/log"

	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 20 * time.Second
)

// GeminiConfig configures the Gemini client.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *log.Logger
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig, logger *log.Logger) (*GeminiClient, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("missing Gemini API key")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger.WithComponent(log.ComponentAdvisor),
	}, nil
}

// Advise sends the prompt and decodes the structured reply.
func (c *GeminiClient) Advise(ctx context.Context, req Request) (core.AIAdvice, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt()), generateConfig())
	if err != nil {
		return core.AIAdvice{}, classify(err)
	}

	c.logger.DebugContext(ctx, "Advice received",
		log.FieldModel, c.model,
		log.FieldDuration, time.Since(start).Milliseconds())

	return ParseAdvice(replyText(resp))
}

func generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   adviceSchema(),
	}
}

// adviceSchema mirrors core.AIAdvice.
func adviceSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"status": {
				Type: genai.TypeString,
				Enum: []string{string(core.AdviceGood), string(core.AdviceWarning), string(core.AdviceCritical)},
			},
			"message": {Type: genai.TypeString},
			"recommendations": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"status", "message", "recommendations"},
	}
}

// replyText joins the text parts of the first candidate.
func replyText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
