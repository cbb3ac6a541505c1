package models

import "time"

// CacheEntry is one cached generation result, keyed by entity id in the
// persistence layer. It is created or overwritten only on a successful
// generation and never partially written on failure.
type CacheEntry struct {
	Fingerprint     string    `json:"fingerprint"`
	Schema          string    `json:"schema"`
	GeneratedAt     time.Time `json:"generated_at"`
	SettingsVersion int       `json:"settings_version"`
}
