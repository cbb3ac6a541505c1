package generate

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/debumedia/schema-generator/models"
	"github.com/debumedia/schema-generator/pkg/cache"
	"github.com/debumedia/schema-generator/pkg/provider"
	"github.com/debumedia/schema-generator/pkg/schemaref"
	"github.com/debumedia/schema-generator/pkg/structurer"
)

// resubmissionCooldown is how long a failed entity is held back before the
// provider may be asked about it again. Independent of the provider-wide
// rate limit; a cache hit is never affected.
const resubmissionCooldown = 30 * time.Second

// entityCooldown tracks per-entity blocked-until times under a mutex.
type entityCooldown struct {
	mu    sync.Mutex
	until map[int64]time.Time
}

func newEntityCooldown() *entityCooldown {
	return &entityCooldown{until: map[int64]time.Time{}}
}

// block arms the cool-down; it only ever extends an existing one.
func (c *entityCooldown) block(entityID int64, now time.Time, d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	until := now.Add(d)
	if until.After(c.until[entityID]) {
		c.until[entityID] = until
	}
}

// blocked reports the remaining cool-down, clearing expired entries.
func (c *entityCooldown) blocked(entityID int64, now time.Time) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	until, ok := c.until[entityID]
	if !ok {
		return 0, false
	}
	remaining := until.Sub(now)
	if remaining <= 0 {
		delete(c.until, entityID)
		return 0, false
	}
	return remaining, true
}

// Request is one page to generate a schema for.
type Request struct {
	EntityID int64
	RawHTML  string
	Title    string
	URL      string
	Excerpt  string
	Modified string // ISO-8601

	Mode     models.PromptMode
	TypeHint string
	Analyzed *models.AnalyzedContent
	Force    bool
}

// Orchestrator runs the full pipeline for one page: fingerprint, cache
// lookup, content structuring, payload assembly, provider call, cache write.
type Orchestrator struct {
	Registry   *provider.Registry
	Structurer *structurer.Structurer
	Catalog    schemaref.Catalog
	Resolver   *cache.Resolver
	Logger     *slog.Logger

	// OnStructured, when set, receives the structured content before the
	// provider call. The CLI uses it to persist detected language.
	OnStructured func(entityID int64, content models.StructuredContent)

	// Now is replaceable in tests.
	Now func() time.Time

	cooldown *entityCooldown
}

func NewOrchestrator(registry *provider.Registry, resolver *cache.Resolver, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		Registry:   registry,
		Structurer: structurer.New(),
		Catalog:    schemaref.NewStatic(),
		Resolver:   resolver,
		Logger:     logger,
		Now:        time.Now,
		cooldown:   newEntityCooldown(),
	}
}

// Generate produces a JSON-LD schema for the request, serving from cache
// when the page fingerprint is unchanged. The cache is written only on
// success; failures leave any previous entry intact.
func (o *Orchestrator) Generate(req Request, settings models.Settings) models.GenerationResult {
	fingerprint := cache.Fingerprint(req.RawHTML, req.Title, req.Excerpt, req.Modified, settings.Version())

	if entry, ok := o.Resolver.Lookup(req.EntityID, fingerprint, req.Force); ok {
		o.Logger.Info("serving cached schema", "entity_id", req.EntityID)
		return models.GenerationResult{Success: true, Schema: entry.Schema, Cached: true}
	}

	if remaining, ok := o.cooldown.blocked(req.EntityID, o.Now()); ok {
		return models.Failure(models.ErrorRateLimited, http.StatusTooManyRequests,
			fmt.Sprintf("entity resubmitted too soon, retry in %s", remaining.Round(time.Second)))
	}

	active := o.Registry.Active(settings)
	if active == nil {
		return models.Failure(models.ErrorTransport, 0,
			fmt.Sprintf("no provider registered for %q", settings.Provider()))
	}

	cfg := active.ActiveModel(settings)
	content := o.Structurer.Transform(req.RawHTML, cfg.MaxContentChars)
	if o.OnStructured != nil {
		o.OnStructured(req.EntityID, content)
	}

	payload := models.PromptPayload{
		Mode: req.Mode,
		Page: models.PageData{
			Title:    req.Title,
			URL:      req.URL,
			Excerpt:  req.Excerpt,
			Modified: req.Modified,
			Content:  content,
		},
		Site:     settings.Site(),
		Business: settings.Business(),
		TypeHint: models.CoerceTypeHint(req.TypeHint),
	}
	switch req.Mode {
	case models.ModeAnalyzed:
		payload.Analyzed = req.Analyzed
	default:
		payload.SchemaReference = o.Catalog.Reference(payload.TypeHint)
	}

	result := active.GenerateSchema(payload, settings)
	if !result.Success {
		o.cooldown.block(req.EntityID, o.Now(), resubmissionCooldown)
		o.Logger.Warn("generation failed",
			"entity_id", req.EntityID,
			"error_kind", result.ErrorKind,
			"status_code", result.StatusCode,
			"error", result.Error)
		return result
	}

	entry := models.CacheEntry{
		Fingerprint:     fingerprint,
		Schema:          result.Schema,
		GeneratedAt:     o.Now().UTC(),
		SettingsVersion: settings.Version(),
	}
	if err := o.Resolver.Save(req.EntityID, entry); err != nil {
		// The schema is still good; the next run just regenerates.
		o.Logger.Warn("failed to cache schema", "entity_id", req.EntityID, "error", err)
	}

	return result
}
