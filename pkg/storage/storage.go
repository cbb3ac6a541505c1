package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Storage writes generated JSON-LD documents to an output directory, one
// file per page, named after the page URL.
type Storage struct {
	outputDir string
}

func NewStorage(outputDir string) (*Storage, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Storage{outputDir: outputDir}, nil
}

// SaveSchema writes one JSON-LD document and returns the file path.
func (s *Storage) SaveSchema(pageURL, schema string) (string, error) {
	filePath := filepath.Join(s.outputDir, SlugForURL(pageURL)+".jsonld")
	if err := os.WriteFile(filePath, []byte(schema), 0644); err != nil {
		return "", fmt.Errorf("error saving schema file: %w", err)
	}
	return filePath, nil
}

// ReadSchema reads a previously saved document back.
func (s *Storage) ReadSchema(pageURL string) ([]byte, error) {
	filePath := filepath.Join(s.outputDir, SlugForURL(pageURL)+".jsonld")
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading schema file: %w", err)
	}
	return data, nil
}

// HasSchema reports whether a document exists for the URL.
func (s *Storage) HasSchema(pageURL string) bool {
	filePath := filepath.Join(s.outputDir, SlugForURL(pageURL)+".jsonld")
	_, err := os.Stat(filePath)
	return err == nil || !os.IsNotExist(err)
}

// SlugForURL turns a page URL into a filesystem-safe file stem, e.g.
// "https://example.com/about-us/" becomes "example.com-about-us".
func SlugForURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return sanitizeSlug(pageURL)
	}

	stem := parsed.Host + parsed.Path
	return sanitizeSlug(stem)
}

func sanitizeSlug(s string) string {
	s = strings.Trim(s, "/")
	if s == "" {
		return "index"
	}

	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r + ('a' - 'A'))
		default:
			sb.WriteRune('-')
		}
	}

	out := sb.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	out = strings.Trim(out, "-")
	if out == "" {
		return "index"
	}
	return out
}
