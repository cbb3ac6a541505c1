package prompt

import (
	"strings"
	"testing"

	"github.com/debumedia/schema-generator/models"
)

func directPayload() models.PromptPayload {
	return models.PromptPayload{
		Mode: models.ModeDirect,
		Page: models.PageData{
			Title:    "Plumbing Services",
			URL:      "https://example.com/services",
			Excerpt:  "Fast local plumbing",
			Modified: "2026-08-01T10:00:00Z",
			Content: models.StructuredContent{
				Text:           "## [Our Services] ##\n[LIST START]\n- Pipes\n[LIST END]",
				OriginalLength: 52,
			},
		},
		Site: models.SiteData{
			Name: "Example Plumbing",
			URL:  "https://example.com",
		},
		TypeHint:        models.TypeHintAuto,
		SchemaReference: "Service — a service offered by an organization.",
	}
}

func TestBuildMessagesShape(t *testing.T) {
	msgs, err := BuildMessages(directPayload())
	if err != nil {
		t.Fatalf("BuildMessages() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != models.RoleSystem || msgs[1].Role != models.RoleUser {
		t.Errorf("roles = %s, %s; want system, user", msgs[0].Role, msgs[1].Role)
	}
}

func TestDirectSystemPrompt(t *testing.T) {
	msgs, err := BuildMessages(directPayload())
	if err != nil {
		t.Fatalf("BuildMessages() error = %v", err)
	}
	system := msgs[0].Content

	for _, want := range []string{
		"MARKER GLOSSARY",
		"Service — a service offered by an organization.",
		"## [Our Services] ##",
		`"@context": "https://schema.org"`,
		"Never invent URLs",
		`{"@id": "#organization"}`,
		"FAQPage",
	} {
		if !strings.Contains(system, want) {
			t.Errorf("direct system prompt missing %q", want)
		}
	}
}

func TestAnalyzedSystemPrompt(t *testing.T) {
	payload := directPayload()
	payload.Mode = models.ModeAnalyzed
	payload.SchemaReference = ""
	payload.Analyzed = &models.AnalyzedContent{
		SuggestedType: "Service",
		Summary:       "A plumbing services page",
		Topics:        []string{"plumbing"},
	}

	msgs, err := BuildMessages(payload)
	if err != nil {
		t.Fatalf("BuildMessages() error = %v", err)
	}
	system := msgs[0].Content

	if !strings.Contains(system, "ANALYZED CONTENT") {
		t.Error("analyzed prompt missing analyzed block")
	}
	if !strings.Contains(system, `"suggested_type": "Service"`) {
		t.Errorf("analyzed prompt missing classified object:\n%s", system)
	}
	if strings.Contains(system, "SCHEMA TYPE REFERENCE") {
		t.Error("analyzed prompt must not embed the reference catalogue")
	}
	if strings.Contains(system, "MARKER GLOSSARY") {
		t.Error("analyzed prompt must not embed the marker glossary")
	}
	if !strings.Contains(system, "Never invent URLs") {
		t.Error("analyzed prompt missing anti-hallucination rule")
	}
}

func TestModeExclusivity(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.PromptPayload)
		wantErr bool
	}{
		{
			name:    "valid direct",
			mutate:  func(p *models.PromptPayload) {},
			wantErr: false,
		},
		{
			name: "direct with analyzed content",
			mutate: func(p *models.PromptPayload) {
				p.Analyzed = &models.AnalyzedContent{Summary: "x"}
			},
			wantErr: true,
		},
		{
			name: "analyzed without object",
			mutate: func(p *models.PromptPayload) {
				p.Mode = models.ModeAnalyzed
				p.SchemaReference = ""
			},
			wantErr: true,
		},
		{
			name: "analyzed with schema reference",
			mutate: func(p *models.PromptPayload) {
				p.Mode = models.ModeAnalyzed
				p.Analyzed = &models.AnalyzedContent{Summary: "x"}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := directPayload()
			tt.mutate(&payload)
			_, err := BuildMessages(payload)
			if (err != nil) != tt.wantErr {
				t.Errorf("BuildMessages() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserMessageOrder(t *testing.T) {
	payload := directPayload()
	payload.Business = &models.BusinessInfo{
		Name:  "Example Plumbing LLC",
		Phone: "+1-555-0100",
	}
	payload.Page.Content.Truncated = true
	payload.Page.Content.OriginalLength = 90000
	payload.TypeHint = "Service"

	msgs, err := BuildMessages(payload)
	if err != nil {
		t.Fatalf("BuildMessages() error = %v", err)
	}
	user := msgs[1].Content

	order := []string{
		"PAGE:",
		"Title: Plumbing Services",
		"SITE:",
		"BUSINESS",
		"Example Plumbing LLC",
		"truncated",
		"Preferred root type: Service",
		"Generate the schema.org JSON-LD document",
	}
	last := -1
	for _, want := range order {
		idx := strings.Index(user, want)
		if idx < 0 {
			t.Fatalf("user message missing %q:\n%s", want, user)
		}
		if idx < last {
			t.Errorf("%q appears out of order", want)
		}
		last = idx
	}
}

func TestUserMessageOmissions(t *testing.T) {
	msgs, err := BuildMessages(directPayload())
	if err != nil {
		t.Fatalf("BuildMessages() error = %v", err)
	}
	user := msgs[1].Content

	if strings.Contains(user, "BUSINESS") {
		t.Error("user message carries business block without business data")
	}
	if strings.Contains(user, "truncated") {
		t.Error("user message carries truncation note for untruncated content")
	}
	if strings.Contains(user, "Preferred root type") {
		t.Error("auto type hint produced a preferred-type instruction")
	}
}

func TestTypeHintCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.TypeHint
	}{
		{name: "auto passes", raw: "auto", want: models.TypeHintAuto},
		{name: "enumerated passes", raw: "FAQPage", want: "FAQPage"},
		{name: "unknown coerced", raw: "Recipe", want: models.TypeHintAuto},
		{name: "case sensitive", raw: "faqpage", want: models.TypeHintAuto},
		{name: "empty coerced", raw: "", want: models.TypeHintAuto},
		{name: "garbage coerced", raw: "<script>", want: models.TypeHintAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.CoerceTypeHint(tt.raw); got != tt.want {
				t.Errorf("CoerceTypeHint(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestReproducibility(t *testing.T) {
	payload := directPayload()
	a, err := BuildMessages(payload)
	if err != nil {
		t.Fatalf("BuildMessages() error = %v", err)
	}
	b, err := BuildMessages(payload)
	if err != nil {
		t.Fatalf("BuildMessages() error = %v", err)
	}
	if a[0].Content != b[0].Content || a[1].Content != b[1].Content {
		t.Error("identical payloads produced different prompts")
	}
}
