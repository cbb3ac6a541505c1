// Package openai implements the provider capability set against the OpenAI
// chat completions API.
package openai

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/debumedia/schema-generator/models"
	"github.com/debumedia/schema-generator/pkg/prompt"
	"github.com/debumedia/schema-generator/pkg/provider"
	"github.com/debumedia/schema-generator/pkg/tokens"
)

const (
	Slug = "openai"
	name = "OpenAI"

	defaultAPIURL = "https://api.openai.com/v1/chat/completions"

	generateTimeout = 120 * time.Second
	testTimeout     = 30 * time.Second
)

// DefaultModel is used when settings select no model.
const DefaultModel = "gpt-4o-mini"

// modelCatalog holds the limits of supported models. MaxContentChars keeps
// the structured page content small enough that the prompt plus a useful
// output fits the context window.
var modelCatalog = map[string]models.ModelConfig{
	"gpt-4o":        {Name: "gpt-4o", ContextWindow: 128000, MaxOutput: 16384, MaxContentChars: 80000},
	"gpt-4o-mini":   {Name: "gpt-4o-mini", ContextWindow: 128000, MaxOutput: 16384, MaxContentChars: 80000},
	"gpt-4-turbo":   {Name: "gpt-4-turbo", ContextWindow: 128000, MaxOutput: 4096, MaxContentChars: 80000},
	"gpt-3.5-turbo": {Name: "gpt-3.5-turbo", ContextWindow: 16385, MaxOutput: 4096, MaxContentChars: 24000},
}

type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []models.Message `json:"messages"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Provider talks to the OpenAI API through the injected exchange.
type Provider struct {
	exchange *provider.Exchange
	logger   *slog.Logger
	apiURL   string
}

func New(exchange *provider.Exchange, logger *slog.Logger) *Provider {
	return &Provider{exchange: exchange, logger: logger, apiURL: defaultAPIURL}
}

// NewWithURL points the provider at a different endpoint. Tests use this
// with httptest servers.
func NewWithURL(exchange *provider.Exchange, logger *slog.Logger, apiURL string) *Provider {
	return &Provider{exchange: exchange, logger: logger, apiURL: apiURL}
}

func (p *Provider) Name() string { return name }
func (p *Provider) Slug() string { return Slug }

func (p *Provider) SettingsFields() []provider.Field {
	return []provider.Field{
		{Key: Slug + "_api_key", Label: "API key", Kind: "text", Secret: true},
		{Key: Slug + "_model", Label: "Model", Kind: "select"},
	}
}

// ActiveModel resolves the configured model, falling back to the default for
// unknown or missing names so generation never dies on a stale setting.
func (p *Provider) ActiveModel(settings models.Settings) models.ModelConfig {
	requested := settings.Model(Slug)
	if cfg, ok := modelCatalog[requested]; ok {
		return cfg
	}
	if requested != "" && p.logger != nil {
		p.logger.Warn("unknown model, using default", "requested", requested, "default", DefaultModel)
	}
	return modelCatalog[DefaultModel]
}

// GenerateSchema runs one full generation round trip.
func (p *Provider) GenerateSchema(payload models.PromptPayload, settings models.Settings) models.GenerationResult {
	key, reject := p.exchange.Guard(settings, Slug)
	if reject != nil {
		return *reject
	}

	cfg := p.ActiveModel(settings)
	messages, err := prompt.BuildMessages(payload)
	if err != nil {
		return models.Failure(models.ErrorParse, 0, err.Error())
	}

	body := chatRequest{
		Model:       cfg.Name,
		Messages:    messages,
		Temperature: settings.Temperature(),
		MaxTokens:   tokens.SafeMax(messages, settings.MaxTokens(), cfg, p.logger),
	}

	resp := p.exchange.Post(p.apiURL, authHeaders(key), body, generateTimeout)
	if !resp.Success {
		return p.exchange.ClassifyFailure(resp)
	}

	schema, kind, msg := extractCompletion(resp.Body)
	if kind != models.ErrorNone {
		res := models.Failure(kind, resp.StatusCode, msg)
		res.Headers = resp.Headers
		return res
	}

	return models.GenerationResult{
		Success:    true,
		Schema:     schema,
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
	}
}

// TestConnection validates the key with a ten-token round trip.
func (p *Provider) TestConnection(settings models.Settings) models.GenerationResult {
	key, reject := p.exchange.Guard(settings, Slug)
	if reject != nil {
		return *reject
	}

	cfg := p.ActiveModel(settings)
	body := chatRequest{
		Model: cfg.Name,
		Messages: []models.Message{
			{Role: models.RoleUser, Content: "Reply with OK."},
		},
		MaxTokens: 10,
	}

	resp := p.exchange.Post(p.apiURL, authHeaders(key), body, testTimeout)
	if !resp.Success {
		return p.exchange.ClassifyFailure(resp)
	}
	return models.GenerationResult{Success: true, StatusCode: resp.StatusCode, Headers: resp.Headers}
}

func authHeaders(key string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + key}
}

// extractCompletion pulls the single completion's text out of a response
// body. Empty or unparseable content is a failure value, never a panic.
func extractCompletion(body []byte) (string, models.ErrorKind, string) {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", models.ErrorParse, "failed to parse provider response: " + err.Error()
	}
	if len(parsed.Choices) == 0 {
		return "", models.ErrorEmpty, "provider returned no choices"
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	content = stripFences(content)
	if content == "" {
		return "", models.ErrorEmpty, "provider returned empty content"
	}
	return content, models.ErrorNone, ""
}

// stripFences removes a markdown code fence wrapper some models insist on.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
