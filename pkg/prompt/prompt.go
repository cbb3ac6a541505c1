// Package prompt assembles the two-message request sent to a provider.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/debumedia/schema-generator/models"
	"github.com/debumedia/schema-generator/pkg/schemaref"
)

// BuildMessages builds the [system, user] pair for a payload. The payload
// variants are mutually exclusive: a direct payload must not carry analyzed
// content and an analyzed payload must carry it.
func BuildMessages(payload models.PromptPayload) ([]models.Message, error) {
	system, err := systemMessage(payload)
	if err != nil {
		return nil, err
	}
	return []models.Message{
		{Role: models.RoleSystem, Content: system},
		{Role: models.RoleUser, Content: userMessage(payload)},
	}, nil
}

func systemMessage(payload models.PromptPayload) (string, error) {
	vocabulary := strings.Join(schemaref.Vocabulary, ", ")

	switch payload.Mode {
	case models.ModeDirect:
		if payload.Analyzed != nil {
			return "", fmt.Errorf("direct payload must not carry analyzed content")
		}
		return fmt.Sprintf(directSystemTemplate, payload.SchemaReference, payload.Page.Content.Text, vocabulary), nil

	case models.ModeAnalyzed:
		if payload.Analyzed == nil {
			return "", fmt.Errorf("analyzed payload carries no analyzed content")
		}
		if payload.SchemaReference != "" {
			return "", fmt.Errorf("analyzed payload must not carry a schema reference")
		}
		analyzed, err := json.MarshalIndent(payload.Analyzed, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode analyzed content: %w", err)
		}
		return fmt.Sprintf(analyzedSystemTemplate, string(analyzed), vocabulary), nil
	}

	return "", fmt.Errorf("unknown prompt mode %d", payload.Mode)
}

// userMessage concatenates the payload facts in a fixed order so identical
// payloads always produce byte-identical prompts.
func userMessage(payload models.PromptPayload) string {
	var sb strings.Builder

	sb.WriteString("PAGE:\n")
	writeFact(&sb, "Title", payload.Page.Title)
	writeFact(&sb, "URL", payload.Page.URL)
	writeFact(&sb, "Excerpt", payload.Page.Excerpt)
	writeFact(&sb, "Last modified", payload.Page.Modified)
	if payload.Page.Content.Language != "" {
		writeFact(&sb, "Content language", payload.Page.Content.Language)
	}

	if payload.Site != (models.SiteData{}) {
		sb.WriteString("\nSITE:\n")
		writeFact(&sb, "Name", payload.Site.Name)
		writeFact(&sb, "URL", payload.Site.URL)
		writeFact(&sb, "Tagline", payload.Site.Tagline)
	}

	if payload.Business != nil && !payload.Business.Empty() {
		sb.WriteString("\nBUSINESS (authoritative, overrides anything derived from page content):\n")
		b := payload.Business
		writeFact(&sb, "Name", b.Name)
		writeFact(&sb, "Type", b.Type)
		writeFact(&sb, "Description", b.Description)
		writeFact(&sb, "Street", b.Street)
		writeFact(&sb, "Locality", b.Locality)
		writeFact(&sb, "Region", b.Region)
		writeFact(&sb, "Postal code", b.PostalCode)
		writeFact(&sb, "Country", b.Country)
		writeFact(&sb, "Phone", b.Phone)
		writeFact(&sb, "Email", b.Email)
		writeFact(&sb, "Opening hours", b.Hours)
	}

	if payload.Page.Content.Truncated {
		sb.WriteString(fmt.Sprintf("\nNOTE: the page content was truncated (%d characters originally); prefer facts near the top of the page.\n",
			payload.Page.Content.OriginalLength))
	}

	if hint := models.CoerceTypeHint(string(payload.TypeHint)); hint != models.TypeHintAuto {
		sb.WriteString(fmt.Sprintf("\nPreferred root type: %s. Use it unless the content clearly demands another type.\n", hint))
	}

	sb.WriteString("\n")
	sb.WriteString(generationDirective)
	return sb.String()
}

func writeFact(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString(label)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteString("\n")
}
