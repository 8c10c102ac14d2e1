// Package tools loads the tool catalog the translator advertises to language models.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ashureev/heartx/internal/domain"
	"gopkg.in/yaml.v3"
)

// Default returns the catalog written on first run.
func Default() domain.ToolCatalog {
	return domain.ToolCatalog{
		"recon": {
			"nmap": {
				Name:        "Nmap Network Scanner",
				Command:     "nmap",
				Args:        "-sS -O",
				Category:    "recon",
				Description: "Network discovery and security auditing",
			},
			"nikto": {
				Name:        "Nikto Web Scanner",
				Command:     "nikto",
				Args:        "-h",
				Category:    "recon",
				Description: "Web server scanner",
			},
		},
		"exploit": {
			"hydra": {
				Name:        "Hydra Brute Force",
				Command:     "hydra",
				Args:        "-l root -P /usr/share/wordlists/rockyou.txt",
				Category:    "exploit",
				Description: "Login cracker",
			},
			"sqlmap": {
				Name:        "SQLMap",
				Command:     "sqlmap",
				Args:        "-u --batch",
				Category:    "exploit",
				Description: "SQL injection tool",
			},
		},
		"defense": {
			"netstat": {
				Name:        "Netstat",
				Command:     "netstat",
				Args:        "-tulpn",
				Category:    "defense",
				Description: "Network connections",
			},
			"tcpdump": {
				Name:        "Tcpdump",
				Command:     "tcpdump",
				Args:        "-i any -n",
				Category:    "defense",
				Description: "Packet analyzer",
			},
		},
	}
}

// Load reads and validates the catalog at path. When the file does not exist
// the default catalog is written there and returned.
func Load(path string) (domain.ToolCatalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		catalog := Default()
		if err := Save(path, catalog); err != nil {
			return nil, err
		}
		slog.Info("Wrote default tool catalog", "path", path)
		return catalog, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tool catalog: %w", err)
	}

	var catalog domain.ToolCatalog
	if isYAML(path) {
		err = yaml.Unmarshal(data, &catalog)
	} else {
		err = json.Unmarshal(data, &catalog)
	}
	if err != nil {
		return nil, fmt.Errorf("decode tool catalog %s: %w", path, err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tool catalog %s: %w", path, err)
	}
	return catalog, nil
}

// Save writes the catalog to path, creating parent directories as needed.
func Save(path string, catalog domain.ToolCatalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create tool catalog directory: %w", err)
	}

	data, err := Encode(catalog, isYAML(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write tool catalog: %w", err)
	}
	return nil
}

// Encode renders the catalog as indented JSON, or YAML when asYAML is set.
func Encode(catalog domain.ToolCatalog, asYAML bool) ([]byte, error) {
	if asYAML {
		data, err := yaml.Marshal(catalog)
		if err != nil {
			return nil, fmt.Errorf("encode tool catalog: %w", err)
		}
		return data, nil
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tool catalog: %w", err)
	}
	return append(data, '\n'), nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
