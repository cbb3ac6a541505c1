package db

import (
	"database/sql"
	"fmt"
)

// Entity is a tracked page with the metadata that feeds generation.
type Entity struct {
	EntityID   int64
	URL        string
	Title      string
	Excerpt    string
	ModifiedAt string
	Language   string
}

// UpsertEntity inserts or updates an entity keyed by URL and returns its id.
func (db *DB) UpsertEntity(url, title, excerpt, modifiedAt, language string) (int64, error) {
	if url == "" {
		return 0, fmt.Errorf("url cannot be empty")
	}

	_, err := db.Exec(`
		INSERT INTO entities (url, title, excerpt, modified_at, language)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			excerpt = excluded.excerpt,
			modified_at = excluded.modified_at,
			language = excluded.language,
			updated_at = CURRENT_TIMESTAMP
	`, url, title, excerpt, modifiedAt, language)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert entity: %w", err)
	}

	var id int64
	err = db.QueryRow("SELECT entity_id FROM entities WHERE url = ?", url).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to read entity id: %w", err)
	}

	return id, nil
}

// UpdateEntityLanguage stores the detected content language.
func (db *DB) UpdateEntityLanguage(entityID int64, language string) error {
	_, err := db.Exec(`
		UPDATE entities SET language = ?, updated_at = CURRENT_TIMESTAMP
		WHERE entity_id = ?
	`, language, entityID)
	if err != nil {
		return fmt.Errorf("failed to update entity language: %w", err)
	}
	return nil
}

// GetEntity returns the entity with the given id.
func (db *DB) GetEntity(entityID int64) (*Entity, error) {
	var e Entity
	err := db.QueryRow(`
		SELECT entity_id, url, title, excerpt, modified_at, language
		FROM entities WHERE entity_id = ?
	`, entityID).Scan(&e.EntityID, &e.URL, &e.Title, &e.Excerpt, &e.ModifiedAt, &e.Language)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("entity %d not found", entityID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return &e, nil
}

// GetEntityByURL returns the entity for the given URL, or nil when untracked.
func (db *DB) GetEntityByURL(url string) (*Entity, error) {
	var e Entity
	err := db.QueryRow(`
		SELECT entity_id, url, title, excerpt, modified_at, language
		FROM entities WHERE url = ?
	`, url).Scan(&e.EntityID, &e.URL, &e.Title, &e.Excerpt, &e.ModifiedAt, &e.Language)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entity by url: %w", err)
	}
	return &e, nil
}

// ListEntities returns all entities ordered by id.
func (db *DB) ListEntities() ([]Entity, error) {
	rows, err := db.Query(`
		SELECT entity_id, url, title, excerpt, modified_at, language
		FROM entities ORDER BY entity_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	var entities []Entity
	for rows.Next() {
		var e Entity
		if err := rows.Scan(&e.EntityID, &e.URL, &e.Title, &e.Excerpt, &e.ModifiedAt, &e.Language); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, e)
	}

	return entities, rows.Err()
}
