// Package cache decides when a stored generation result can be reused. The
// key is a fingerprint over everything that shapes the output; storage itself
// belongs to the host's persistence layer.
package cache

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/debumedia/schema-generator/models"
)

// Fingerprint hashes the five inputs that determine a generation result.
// Any change to one input changes the hash; holding all five fixed
// reproduces it exactly. Inputs are length-prefixed so no two tuples can
// collide by concatenation.
func Fingerprint(content, title, excerpt, modifiedAt string, settingsVersion int) string {
	h := sha256.New()
	for _, part := range []string{content, title, excerpt, modifiedAt, strconv.Itoa(settingsVersion)} {
		fmt.Fprintf(h, "%d:", len(part))
		h.Write([]byte(part))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Store is the persistence collaborator holding one CacheEntry per entity.
type Store interface {
	GetEntry(entityID int64) (models.CacheEntry, bool, error)
	PutEntry(entityID int64, entry models.CacheEntry) error
	DeleteEntry(entityID int64) error
}

// Resolver applies the hit rule on top of a Store.
type Resolver struct {
	store  Store
	logger *slog.Logger
}

func NewResolver(store Store, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Lookup returns the stored entry when it matches the fresh fingerprint and
// force is off. Store read errors degrade to a miss: worst case we
// regenerate, never serve stale data.
func (r *Resolver) Lookup(entityID int64, fingerprint string, force bool) (models.CacheEntry, bool) {
	if force {
		return models.CacheEntry{}, false
	}

	entry, ok, err := r.store.GetEntry(entityID)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("cache read failed, treating as miss", "entity_id", entityID, "error", err)
		}
		return models.CacheEntry{}, false
	}
	if !ok || entry.Fingerprint != fingerprint {
		return models.CacheEntry{}, false
	}
	return entry, true
}

// Save overwrites the entity's entry. Called only after a successful
// generation; the store writes the whole entry or nothing.
func (r *Resolver) Save(entityID int64, entry models.CacheEntry) error {
	if err := r.store.PutEntry(entityID, entry); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Invalidate removes the entity's entry.
func (r *Resolver) Invalidate(entityID int64) error {
	if err := r.store.DeleteEntry(entityID); err != nil {
		return fmt.Errorf("failed to invalidate cache entry: %w", err)
	}
	return nil
}
