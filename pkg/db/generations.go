package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Generation records one provider call for an entity.
type Generation struct {
	GenerationID string
	EntityID     int64
	Status       string
	StatusCode   int
	ErrorType    string
	DurationMS   int64
	CreatedAt    time.Time
}

// RecordGeneration stores the outcome of a provider call and returns the
// generated run id.
func (db *DB) RecordGeneration(entityID int64, status string, statusCode int, errorType string, duration time.Duration) (string, error) {
	id := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO generations (generation_id, entity_id, status, status_code, error_type, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, entityID, status, statusCode, errorType, duration.Milliseconds())
	if err != nil {
		return "", fmt.Errorf("failed to record generation: %w", err)
	}
	return id, nil
}

// ListGenerations returns generation records for an entity, newest first.
func (db *DB) ListGenerations(entityID int64) ([]Generation, error) {
	rows, err := db.Query(`
		SELECT generation_id, entity_id, status, status_code, error_type, duration_ms, created_at
		FROM generations WHERE entity_id = ? ORDER BY created_at DESC
	`, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var generations []Generation
	for rows.Next() {
		var g Generation
		var createdAt string
		if err := rows.Scan(&g.GenerationID, &g.EntityID, &g.Status, &g.StatusCode, &g.ErrorType, &g.DurationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		if ts, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			g.CreatedAt = ts
		}
		generations = append(generations, g)
	}

	return generations, rows.Err()
}
