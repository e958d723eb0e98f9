package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Source describes one registered historical demand dataset.
type Source struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	Resolution  string `json:"resolution,omitempty"` // e.g. "hourly"
}

// SourceList is the registry file shape.
type SourceList struct {
	UpdatedAt string   `json:"updated_at"`
	Sources   []Source `json:"sources"`
}

// LoadSources loads the dataset registry from a JSON file.
func LoadSources(filePath string) (*SourceList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}
	var list SourceList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}
	return &list, nil
}

// SaveSources writes the registry, creating the directory if needed.
func SaveSources(list *SourceList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sources: %w", err)
	}
	if err := os.WriteFile(filePath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write sources file: %w", err)
	}
	return nil
}

// ResolveSource maps a config data_source value to a CSV path: a registry
// ID when the registry resolves it, otherwise the value is treated as a
// path directly.
func ResolveSource(dataSource, registryPath string) string {
	if registryPath != "" {
		if list, err := LoadSources(registryPath); err == nil {
			for _, s := range list.Sources {
				if s.ID == dataSource {
					return s.Path
				}
			}
		}
	}
	return dataSource
}

// GetDefaultSourcesPath returns the registry location, honoring the
// SOURCES_FILE environment variable.
func GetDefaultSourcesPath() string {
	if path := os.Getenv("SOURCES_FILE"); path != "" {
		return path
	}
	return "./data/sources.json"
}
