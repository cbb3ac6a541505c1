package models

// PromptMode selects which system-prompt template the assembler uses.
type PromptMode int

const (
	// ModeDirect embeds the full structured content plus a schema-type
	// reference catalogue in the system prompt.
	ModeDirect PromptMode = iota
	// ModeAnalyzed embeds a pre-classified content object from an external
	// analyzer instead, trading payload size for an upstream pass.
	ModeAnalyzed
)

// TypeHint is the user's preferred root schema.org type. Advisory only.
type TypeHint string

const TypeHintAuto TypeHint = "auto"

// typeHints is the closed set of accepted hints.
var typeHints = map[TypeHint]struct{}{
	TypeHintAuto:    {},
	"Article":       {},
	"WebPage":       {},
	"Service":       {},
	"LocalBusiness": {},
	"FAQPage":       {},
	"Product":       {},
	"Organization":  {},
	"Person":        {},
	"Event":         {},
	"HowTo":         {},
}

// CoerceTypeHint maps any value outside the accepted enumeration to auto.
func CoerceTypeHint(raw string) TypeHint {
	hint := TypeHint(raw)
	if _, ok := typeHints[hint]; ok {
		return hint
	}
	return TypeHintAuto
}

// PageData carries the page facts that feed the user message and the
// fingerprint inputs.
type PageData struct {
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	Modified string `json:"modified,omitempty"` // ISO-8601
	Content  StructuredContent
}

// SiteData carries site-wide facts.
type SiteData struct {
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
	Tagline string `json:"tagline,omitempty"`
}

// BusinessInfo holds user-supplied business facts. When present these take
// precedence over anything derived from page content.
type BusinessInfo struct {
	Name        string `yaml:"name" json:"name,omitempty"`
	Type        string `yaml:"type" json:"type,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
	Street      string `yaml:"street" json:"street,omitempty"`
	Locality    string `yaml:"locality" json:"locality,omitempty"`
	Region      string `yaml:"region" json:"region,omitempty"`
	PostalCode  string `yaml:"postal_code" json:"postal_code,omitempty"`
	Country     string `yaml:"country" json:"country,omitempty"`
	Phone       string `yaml:"phone" json:"phone,omitempty"`
	Email       string `yaml:"email" json:"email,omitempty"`
	Hours       string `yaml:"hours" json:"hours,omitempty"`
}

// Empty reports whether no business fact is set at all.
func (b BusinessInfo) Empty() bool {
	return b == BusinessInfo{}
}

// AnalyzedContent is the pre-classified page object an external analyzer
// produces for ModeAnalyzed prompts.
type AnalyzedContent struct {
	SuggestedType string            `json:"suggested_type,omitempty"`
	Summary       string            `json:"summary,omitempty"`
	Topics        []string          `json:"topics,omitempty"`
	Facts         map[string]string `json:"facts,omitempty"`
}

// PromptPayload is everything the assembler needs to build the two-message
// request. It is a tagged variant: ModeDirect carries SchemaReference,
// ModeAnalyzed carries Analyzed; the two are mutually exclusive.
type PromptPayload struct {
	Mode     PromptMode
	Page     PageData
	Site     SiteData
	Business *BusinessInfo
	TypeHint TypeHint

	SchemaReference string           // ModeDirect only
	Analyzed        *AnalyzedContent // ModeAnalyzed only
}
