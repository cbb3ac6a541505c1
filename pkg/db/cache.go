package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/debumedia/schema-generator/models"
)

// GetEntry returns the cached generation for an entity, if any.
func (db *DB) GetEntry(entityID int64) (models.CacheEntry, bool, error) {
	var entry models.CacheEntry
	var generatedAt string
	err := db.QueryRow(`
		SELECT fingerprint, schema, generated_at, settings_version
		FROM schema_cache WHERE entity_id = ?
	`, entityID).Scan(&entry.Fingerprint, &entry.Schema, &generatedAt, &entry.SettingsVersion)
	if err == sql.ErrNoRows {
		return models.CacheEntry{}, false, nil
	}
	if err != nil {
		return models.CacheEntry{}, false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, generatedAt)
	if err != nil {
		return models.CacheEntry{}, false, fmt.Errorf("failed to parse generated_at: %w", err)
	}
	entry.GeneratedAt = ts

	return entry, true, nil
}

// PutEntry writes the cached generation for an entity, replacing any
// previous entry in a single statement.
func (db *DB) PutEntry(entityID int64, entry models.CacheEntry) error {
	_, err := db.Exec(`
		INSERT INTO schema_cache (entity_id, fingerprint, schema, generated_at, settings_version)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(entity_id) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			schema = excluded.schema,
			generated_at = excluded.generated_at,
			settings_version = excluded.settings_version
	`, entityID, entry.Fingerprint, entry.Schema, entry.GeneratedAt.UTC().Format(time.RFC3339), entry.SettingsVersion)
	if err != nil {
		return fmt.Errorf("failed to put cache entry: %w", err)
	}
	return nil
}

// DeleteEntry removes the cached generation for an entity. Deleting a
// missing entry is not an error.
func (db *DB) DeleteEntry(entityID int64) error {
	_, err := db.Exec("DELETE FROM schema_cache WHERE entity_id = ?", entityID)
	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// CachedEntry pairs an entity with its cache row for listing.
type CachedEntry struct {
	Entity Entity
	Entry  models.CacheEntry
}

// ListEntries returns all cache entries joined with their entities.
func (db *DB) ListEntries() ([]CachedEntry, error) {
	rows, err := db.Query(`
		SELECT e.entity_id, e.url, e.title, e.excerpt, e.modified_at, e.language,
		       c.fingerprint, c.schema, c.generated_at, c.settings_version
		FROM schema_cache c
		JOIN entities e ON e.entity_id = c.entity_id
		ORDER BY e.entity_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []CachedEntry
	for rows.Next() {
		var ce CachedEntry
		var generatedAt string
		err := rows.Scan(
			&ce.Entity.EntityID, &ce.Entity.URL, &ce.Entity.Title, &ce.Entity.Excerpt,
			&ce.Entity.ModifiedAt, &ce.Entity.Language,
			&ce.Entry.Fingerprint, &ce.Entry.Schema, &generatedAt, &ce.Entry.SettingsVersion,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, generatedAt); err == nil {
			ce.Entry.GeneratedAt = ts
		}
		entries = append(entries, ce)
	}

	return entries, rows.Err()
}
