package models

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Settings is the read-only settings mapping the host supplies. Provider
// selection, per-provider keys and models, sampling knobs and business facts
// all come from here; the pipeline never mutates it.
type Settings struct {
	values map[string]any
}

// NewSettings wraps an already-parsed mapping.
func NewSettings(values map[string]any) Settings {
	if values == nil {
		values = map[string]any{}
	}
	return Settings{values: values}
}

// LoadSettings reads a yaml settings file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return NewSettings(values), nil
}

// String returns a string-valued setting, or "" when absent.
func (s Settings) String(key string) string {
	v, ok := s.values[key]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprintf("%v", v)
}

// Int returns an integer setting, or fallback when absent or malformed.
func (s Settings) Int(key string, fallback int) int {
	v, ok := s.values[key]
	if !ok {
		return fallback
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return fallback
}

// Float returns a float setting, or fallback when absent or malformed.
func (s Settings) Float(key string, fallback float64) float64 {
	v, ok := s.values[key]
	if !ok {
		return fallback
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return fallback
}

// Provider returns the configured provider slug, "" when unset.
func (s Settings) Provider() string { return s.String("provider") }

// APIKey returns the API key configured for a provider slug.
func (s Settings) APIKey(slug string) string { return s.String(slug + "_api_key") }

// Model returns the model name configured for a provider slug.
func (s Settings) Model(slug string) string { return s.String(slug + "_model") }

// Temperature returns the sampling temperature, defaulting to 0.3.
func (s Settings) Temperature() float64 { return s.Float("temperature", 0.3) }

// MaxTokens returns the requested output token ceiling, defaulting to 4096.
// The effective ceiling is still subject to the token budget calculation.
func (s Settings) MaxTokens() int { return s.Int("max_tokens", 4096) }

// Version returns the settings version used to bust stale cache entries.
// The host bumps it whenever a prompt-affecting setting changes.
func (s Settings) Version() int { return s.Int("settings_version", 0) }

// Site returns site-wide facts from the settings mapping.
func (s Settings) Site() SiteData {
	return SiteData{
		Name:    s.String("site_name"),
		URL:     s.String("site_url"),
		Tagline: s.String("site_tagline"),
	}
}

// Business decodes the nested business block, nil when absent or empty.
func (s Settings) Business() *BusinessInfo {
	raw, ok := s.values["business"]
	if !ok {
		return nil
	}

	// Round-trip through yaml so both map[string]any and typed nodes decode.
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil
	}
	var info BusinessInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil
	}
	if info.Empty() {
		return nil
	}
	return &info
}
