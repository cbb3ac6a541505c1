package inspect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/debumedia/schema-generator/internal/generate"
	"github.com/debumedia/schema-generator/models"
	"github.com/debumedia/schema-generator/pkg/caching"
	"github.com/debumedia/schema-generator/pkg/fetcher"
	"github.com/debumedia/schema-generator/pkg/prompt"
	"github.com/debumedia/schema-generator/pkg/schemaref"
	"github.com/debumedia/schema-generator/pkg/structurer"
	"github.com/debumedia/schema-generator/pkg/tokens"
	"github.com/urfave/cli/v2"
)

// Report is the JSON document the structure command prints.
type Report struct {
	URL                string  `json:"url,omitempty"`
	File               string  `json:"file,omitempty"`
	Segments           int     `json:"segments"`
	Truncated          bool    `json:"truncated"`
	OriginalLength     int     `json:"original_length"`
	Language           string  `json:"language,omitempty"`
	LanguageConfidence float64 `json:"language_confidence,omitempty"`
	MaxContentChars    int     `json:"max_content_chars"`
	EstimatedTokens    int     `json:"estimated_tokens"`
	SafeOutputTokens   int     `json:"safe_output_tokens"`
	Content            string  `json:"content"`
}

// StructureAction runs the content pipeline up to the prompt boundary and
// reports what would be sent, without calling any provider.
func StructureAction(c *cli.Context) error {
	logger := generate.NewLogger(c.Bool("quiet"))
	settings := generate.LoadSettings(c.String("settings"), logger)

	var rawHTML []byte
	var err error
	report := Report{}

	switch {
	case c.String("file") != "":
		report.File = c.String("file")
		rawHTML, err = os.ReadFile(filepath.Clean(report.File))
		if err != nil {
			return fmt.Errorf("failed to read HTML file: %w", err)
		}
	case c.String("url") != "":
		report.URL = c.String("url")
		rawHTML, err = loadHTML(c, report.URL)
		if err != nil {
			return fmt.Errorf("failed to load page: %w", err)
		}
	default:
		return fmt.Errorf("provide --url or --file\nExample: schemagen structure --url https://example.com/about")
	}

	registry := generate.NewRegistry(logger)
	maxChars := c.Int("max-chars")
	if !c.IsSet("max-chars") {
		if active := registry.Active(settings); active != nil {
			maxChars = active.ActiveModel(settings).MaxContentChars
		}
	}
	report.MaxContentChars = maxChars

	content := structurer.New().Transform(string(rawHTML), maxChars)
	report.Segments = len(content.Segments)
	report.Truncated = content.Truncated
	report.OriginalLength = content.OriginalLength
	report.Language = content.Language
	report.LanguageConfidence = content.LanguageConfidence
	report.Content = content.Text

	hint := models.CoerceTypeHint(c.String("type-hint"))
	payload := models.PromptPayload{
		Mode:            models.ModeDirect,
		Page:            models.PageData{Title: "(preview)", URL: report.URL, Content: content},
		Site:            settings.Site(),
		Business:        settings.Business(),
		TypeHint:        hint,
		SchemaReference: schemaref.NewStatic().Reference(hint),
	}
	messages, err := prompt.BuildMessages(payload)
	if err != nil {
		return fmt.Errorf("failed to assemble preview prompt: %w", err)
	}
	report.EstimatedTokens = tokens.Estimate(messages)

	modelCfg := models.ModelConfig{ContextWindow: 128000, MaxOutput: settings.MaxTokens()}
	if active := registry.Active(settings); active != nil {
		modelCfg = active.ActiveModel(settings)
	}
	report.SafeOutputTokens = tokens.SafeMax(messages, settings.MaxTokens(), modelCfg, logger)

	if c.Bool("text") {
		fmt.Println(content.Text)
		return nil
	}

	outputData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(outputData))
	return nil
}

// loadHTML serves the page from the raw HTML cache when fresh, falling back
// to the network.
func loadHTML(c *cli.Context, url string) ([]byte, error) {
	maxAge, err := time.ParseDuration(c.String("max-age"))
	if err != nil {
		return nil, fmt.Errorf("invalid max-age duration: %w", err)
	}

	htmlCache, err := caching.NewCache(c.String("cache-dir"), maxAge)
	if err != nil {
		return nil, err
	}

	if data, ok := htmlCache.Get(url); ok {
		return data, nil
	}

	page, err := fetcher.NewFetcher().FetchPage(url)
	if err != nil {
		return nil, err
	}
	if err := htmlCache.Set(url, page.HTML); err != nil {
		return nil, err
	}
	return page.HTML, nil
}
