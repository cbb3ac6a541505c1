package provider

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/debumedia/schema-generator/models"
)

// Registry is the slug-keyed provider lookup.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	logger    *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		logger:    logger,
	}
}

// Register adds a provider under its slug. A duplicate slug is rejected and
// logged rather than silently overwritten.
func (r *Registry) Register(p Provider) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	slug := p.Slug()
	if _, exists := r.providers[slug]; exists {
		if r.logger != nil {
			r.logger.Error("provider slug already registered", "slug", slug)
		}
		return false
	}
	r.providers[slug] = p
	return true
}

// Get returns the provider registered under slug.
func (r *Registry) Get(slug string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[slug]
	return p, ok
}

// Active resolves the provider the settings select, falling back to the
// default slug when settings name none. Unknown slugs return nil.
func (r *Registry) Active(settings models.Settings) Provider {
	slug := settings.Provider()
	if slug == "" {
		slug = DefaultSlug
	}
	p, ok := r.Get(slug)
	if !ok {
		return nil
	}
	return p
}

// Slugs lists the registered slugs in stable order.
func (r *Registry) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slugs := make([]string, 0, len(r.providers))
	for slug := range r.providers {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
