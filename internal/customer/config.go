package customer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Settings controls what a customer is allowed to see.
type Settings struct {
	ShowPrices bool `json:"showPrices"`
	ShowStock  bool `json:"showStock"`
}

// DefaultSettings shows everything.
var DefaultSettings = Settings{ShowPrices: true, ShowStock: true}

// Config is a customer's restricted view of a catalog. It is built once
// per session, either from a link token or a named config resource, and
// not modified afterwards.
type Config struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Password      string   `json:"password"`
	Catalog       string   `json:"catalog"`
	AllowedStyles []string `json:"allowedStyles,omitempty"`
	Settings      Settings `json:"settings"`
}

// ErrNotFound reports a named customer config that does not exist.
var ErrNotFound = fmt.Errorf("customer config not found")

// LoadConfig fetches the named config resource customers/<code>.json under
// the data root, which may be a directory or an http(s) base URL. Settings
// omitted from the resource default to showing everything.
func LoadConfig(dataRoot, code string) (*Config, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(dataRoot, "http://") || strings.HasPrefix(dataRoot, "https://") {
		data, err = fetchConfig(strings.TrimSuffix(dataRoot, "/") + "/customers/" + code + ".json")
	} else {
		data, err = os.ReadFile(filepath.Join(dataRoot, "customers", code+".json"))
		if os.IsNotExist(err) {
			err = ErrNotFound
		}
	}
	if err != nil {
		return nil, fmt.Errorf("customer %q: %w", code, err)
	}

	raw := struct {
		Code          string    `json:"code"`
		Name          string    `json:"name"`
		Password      string    `json:"password"`
		Catalog       string    `json:"catalog"`
		AllowedStyles []string  `json:"allowedStyles"`
		Settings      *Settings `json:"settings"`
	}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("customer %q: invalid config: %w", code, err)
	}

	cfg := &Config{
		Code:          raw.Code,
		Name:          raw.Name,
		Password:      raw.Password,
		Catalog:       raw.Catalog,
		AllowedStyles: raw.AllowedStyles,
		Settings:      DefaultSettings,
	}
	if raw.Settings != nil {
		cfg.Settings = *raw.Settings
	}
	if cfg.Code == "" {
		cfg.Code = code
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Code
	}
	return cfg, nil
}

func fetchConfig(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
