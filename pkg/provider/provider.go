// Package provider defines the capability interface LLM providers implement,
// the per-provider rate-limit state, and the slug-keyed registry that selects
// the active provider.
package provider

import (
	"github.com/debumedia/schema-generator/models"
)

// DefaultSlug is the provider used when settings name none.
const DefaultSlug = "openai"

// Field describes one settings input a provider needs from its host.
type Field struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Kind   string `json:"kind"` // text, select, number
	Secret bool   `json:"secret,omitempty"`
}

// Provider is the capability set every LLM provider implements. Concrete
// providers are independent implementations; shared plumbing lives in an
// injected Exchange, not a base type.
type Provider interface {
	// GenerateSchema runs one full generation: rate-limit and key checks,
	// message assembly, token budgeting, one bounded HTTP call, response
	// extraction. All failures come back as result values.
	GenerateSchema(payload models.PromptPayload, settings models.Settings) models.GenerationResult

	// TestConnection validates the configured key with a minimal round trip.
	TestConnection(settings models.Settings) models.GenerationResult

	// ActiveModel resolves the model configuration the settings select.
	ActiveModel(settings models.Settings) models.ModelConfig

	// SettingsFields lists the settings inputs this provider needs.
	SettingsFields() []Field

	Name() string
	Slug() string
}
