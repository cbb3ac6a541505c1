package generate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/debumedia/schema-generator/internal/common"
	"github.com/debumedia/schema-generator/models"
	"github.com/debumedia/schema-generator/pkg/cache"
	"github.com/debumedia/schema-generator/pkg/caching"
	"github.com/debumedia/schema-generator/pkg/db"
	"github.com/debumedia/schema-generator/pkg/fetcher"
	"github.com/debumedia/schema-generator/pkg/provider"
	"github.com/debumedia/schema-generator/pkg/provider/openai"
	"github.com/debumedia/schema-generator/pkg/storage"
	"github.com/debumedia/schema-generator/pkg/transport"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// NewLogger builds the shared JSON logger. Quiet mode drops everything
// below error.
func NewLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// NewRegistry wires the HTTP transport, shared rate-limit state and every
// known provider into a registry.
func NewRegistry(logger *slog.Logger) *provider.Registry {
	registry := provider.NewRegistry(logger)
	exchange := provider.NewExchange(transport.NewClient(), provider.NewRateLimit(nil), logger)
	registry.Register(openai.New(exchange, logger))
	return registry
}

// LoadSettings reads the settings file, tolerating a missing file by
// returning empty settings so key checks fail downstream with a clear error.
func LoadSettings(path string, logger *slog.Logger) models.Settings {
	settings, err := models.LoadSettings(path)
	if err != nil {
		logger.Warn("failed to load settings, continuing with empty settings", "path", path, "error", err)
		return models.NewSettings(nil)
	}
	return settings
}

func GenerateAction(c *cli.Context) error {
	logger := NewLogger(c.Bool("quiet"))
	startTime := time.Now()

	settings := LoadSettings(c.String("settings"), logger)

	var maxAge time.Duration
	var err error
	if c.Bool("force-fetch") {
		maxAge = 0
	} else {
		maxAge, err = time.ParseDuration(c.String("max-age"))
		if err != nil {
			logger.Error("invalid max-age duration", "error", err)
			os.Exit(2)
		}
	}

	htmlCache, err := caching.NewCache(c.String("cache-dir"), maxAge)
	if err != nil {
		logger.Error("failed to initialize HTML cache", "error", err)
		os.Exit(2)
	}

	store, err := storage.NewStorage(c.String("output-dir"))
	if err != nil {
		logger.Error("failed to initialize output storage", "error", err)
		os.Exit(2)
	}

	database, err := db.Open(c.String("db"))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	urls := splitURLs(c.String("urls"))
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No URLs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  schemagen generate --urls "https://example.com,https://example.com/about"`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: schemagen generate --help")
		os.Exit(1)
	}

	sanitizedURLs, invalidURLs := common.SanitizeAndValidateURLs(urls)
	if len(invalidURLs) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d URL(s) are malformed (even after cleanup):\n", len(invalidURLs))
		for _, badURL := range invalidURLs {
			fmt.Fprintf(os.Stderr, "  - %s\n", badURL)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Note: URLs are auto-cleaned (whitespace trimmed, trailing punctuation removed, markdown links extracted)")
		os.Exit(1)
	}

	registry := NewRegistry(logger)
	resolver := cache.NewResolver(database, logger)
	orchestrator := NewOrchestrator(registry, resolver, logger)
	orchestrator.OnStructured = func(entityID int64, content models.StructuredContent) {
		if content.Language == "" {
			return
		}
		if err := database.UpdateEntityLanguage(entityID, content.Language); err != nil {
			logger.Warn("Failed to store detected language", "entity_id", entityID, "error", err)
		}
	}

	env := &Env{
		Logger:       logger,
		Fetcher:      fetcher.NewFetcher(),
		HTMLCache:    htmlCache,
		Database:     database,
		Orchestrator: orchestrator,
		Store:        store,
		Settings:     settings,
		TypeHint:     c.String("type-hint"),
		Force:        c.Bool("force"),
		ForceFetch:   c.Bool("force-fetch"),
	}

	if analyzedPath := c.String("analyzed"); analyzedPath != "" {
		analyzed, err := loadAnalyzed(analyzedPath)
		if err != nil {
			logger.Error("failed to load analyzed content", "path", analyzedPath, "error", err)
			os.Exit(2)
		}
		env.Mode = models.ModeAnalyzed
		env.Analyzed = analyzed
	}

	allResults, runErr := run(env, sanitizedURLs, c.Int("workers"))

	stats := Stats{
		TotalURLs:        len(sanitizedURLs),
		TotalTimeSeconds: time.Since(startTime).Seconds(),
	}
	for _, r := range allResults {
		switch {
		case r.Status == "failed":
			stats.Failed++
		case r.Cached:
			stats.Successful++
			stats.Cached++
		default:
			stats.Successful++
		}
	}

	finalOutput := &FinalOutput{Results: allResults, Stats: stats}
	if runErr != nil {
		finalOutput.Status = "partial_failure"
	} else {
		finalOutput.Status = "success"
	}

	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "yaml" {
		outputData, marshalErr = yaml.Marshal(finalOutput)
	} else {
		outputData, marshalErr = json.MarshalIndent(finalOutput, "", "  ")
	}
	if marshalErr != nil {
		logger.Error("failed to marshal final output", "error", marshalErr)
		os.Exit(2)
	}
	fmt.Println(string(outputData))

	if stats.Failed == stats.TotalURLs {
		os.Exit(2)
	}
	if stats.Failed > 0 {
		os.Exit(1)
	}

	return nil
}

func TestConnectionAction(c *cli.Context) error {
	logger := NewLogger(c.Bool("quiet"))
	settings := LoadSettings(c.String("settings"), logger)

	registry := NewRegistry(logger)
	active := registry.Active(settings)
	if active == nil {
		fmt.Fprintf(os.Stderr, "Error: no provider registered for %q\n", settings.Provider())
		fmt.Fprintf(os.Stderr, "Known providers: %s\n", strings.Join(registry.Slugs(), ", "))
		os.Exit(1)
	}

	result := active.TestConnection(settings)
	if !result.Success {
		fmt.Printf("%s: connection failed (%s): %s\n", active.Name(), result.ErrorKind, result.Error)
		os.Exit(1)
	}

	fmt.Printf("%s: connection OK (model %s)\n", active.Name(), active.ActiveModel(settings).Name)
	return nil
}

func splitURLs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}

func loadAnalyzed(path string) (*models.AnalyzedContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analyzed content: %w", err)
	}
	var analyzed models.AnalyzedContent
	if err := json.Unmarshal(data, &analyzed); err != nil {
		return nil, fmt.Errorf("failed to parse analyzed content: %w", err)
	}
	return &analyzed, nil
}
