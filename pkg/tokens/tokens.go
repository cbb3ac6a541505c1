// Package tokens estimates prompt sizes and computes safe output-token
// ceilings so one request never overruns a model's context window.
package tokens

import (
	"log/slog"
	"math"
	"unicode/utf8"

	"github.com/debumedia/schema-generator/models"
)

const (
	// CharsPerToken is a heuristic tuned for current chat models; promote to
	// per-model config if a provider with a very different tokenizer lands.
	CharsPerToken = 3.5

	// PerMessageOverhead covers role markers and framing tokens per message.
	PerMessageOverhead = 10

	// SafetyBuffer is headroom kept free inside the context window.
	SafetyBuffer = 2000

	// MinOutputTokens is the floor below which we accept possible output
	// truncation instead of failing the request outright.
	MinOutputTokens = 1000
)

// Estimate approximates the input-token count of a message sequence.
func Estimate(messages []models.Message) int {
	chars := 0
	for _, m := range messages {
		chars += utf8.RuneCountInString(m.Content) + PerMessageOverhead
	}
	return int(math.Ceil(float64(chars) / CharsPerToken))
}

// SafeMax computes the output-token ceiling for a request. It never exceeds
// requested, never exceeds the model's max output, and keeps SafetyBuffer
// tokens of headroom. When the window is too tight it logs a warning and
// returns MinOutputTokens rather than failing.
func SafeMax(messages []models.Message, requested int, cfg models.ModelConfig, logger *slog.Logger) int {
	estimated := Estimate(messages)
	available := cfg.ContextWindow - estimated - SafetyBuffer

	if available < MinOutputTokens {
		if logger != nil {
			logger.Warn("context window nearly exhausted, output may be truncated",
				"model", cfg.Name,
				"estimated_input_tokens", estimated,
				"context_window", cfg.ContextWindow,
				"available", available)
		}
		return MinOutputTokens
	}

	limit := cfg.MaxOutput
	if available < limit {
		limit = available
	}
	if requested < limit {
		return requested
	}
	return limit
}
