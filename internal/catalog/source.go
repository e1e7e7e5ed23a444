package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source is one named catalog: a CSV resource selectable by id.
type Source struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Path     string `json:"path"`
	Images   string `json:"images,omitempty"`
	ImageExt string `json:"ext,omitempty"`
}

// LoadSources reads the catalog registry from catalogs.json in the data
// directory.
func LoadSources(dataDir string) ([]Source, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, "catalogs.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog registry: %w", err)
	}
	var sources []Source
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("invalid catalog registry: %w", err)
	}
	for i := range sources {
		if !filepath.IsAbs(sources[i].Path) && !isURL(sources[i].Path) {
			sources[i].Path = filepath.Join(dataDir, sources[i].Path)
		}
	}
	return sources, nil
}

// FindSource resolves a catalog id against the registry. A bare .csv path
// is accepted as an ad-hoc source.
func FindSource(sources []Source, id string) (Source, bool) {
	for _, s := range sources {
		if s.ID == id {
			return s, true
		}
	}
	if strings.HasSuffix(id, ".csv") {
		return Source{ID: id, Label: filepath.Base(id), Path: id}, true
	}
	return Source{}, false
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
