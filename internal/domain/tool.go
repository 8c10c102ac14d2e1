package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ToolDefinition describes a command-line utility the translator may target.
type ToolDefinition struct {
	Name        string `json:"name" yaml:"name"`
	Command     string `json:"command" yaml:"command"`
	Args        string `json:"args" yaml:"args"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
}

// ToolCatalog maps category -> tool key -> definition.
type ToolCatalog map[string]map[string]ToolDefinition

// ErrEmptyCatalog is returned when a catalog has no tools at all.
var ErrEmptyCatalog = errors.New("tool catalog is empty")

// Validate rejects catalogs with missing fields or mismatched categories.
// A definition with an empty category inherits the key it is filed under.
func (c ToolCatalog) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}
	for category, tools := range c {
		if strings.TrimSpace(category) == "" {
			return fmt.Errorf("category name cannot be empty")
		}
		if len(tools) == 0 {
			return fmt.Errorf("category %q has no tools", category)
		}
		for key, tool := range tools {
			if strings.TrimSpace(key) == "" {
				return fmt.Errorf("category %q: tool key cannot be empty", category)
			}
			if strings.TrimSpace(tool.Name) == "" {
				return fmt.Errorf("tool %s/%s: name is required", category, key)
			}
			if strings.TrimSpace(tool.Command) == "" {
				return fmt.Errorf("tool %s/%s: command is required", category, key)
			}
			if tool.Category == "" {
				tool.Category = category
				tools[key] = tool
			} else if tool.Category != category {
				return fmt.Errorf("tool %s/%s: category %q does not match section", category, key, tool.Category)
			}
		}
	}
	return nil
}

// Names returns every tool key in the catalog, sorted by category then key.
func (c ToolCatalog) Names() []string {
	categories := make([]string, 0, len(c))
	for category := range c {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var names []string
	for _, category := range categories {
		keys := make([]string, 0, len(c[category]))
		for key := range c[category] {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		names = append(names, keys...)
	}
	return names
}
