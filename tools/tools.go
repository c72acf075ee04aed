// Package tools holds resolved cutting tool records and the external
// tool library they can be looked up from. Library files are JSON or
// YAML, keyed by tool ID:
//
//	{"1": {"id": 1, "name": "3/8 EM", "dia": 0.375, "flutes": 4, "material": "carbide"}}
package tools

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/FuturePresentLabs/swarf/blackbook"
)

// Tool is one resolved tool record. Diameter, stickout and length are in
// the program's units.
type Tool struct {
	ID       int     `mapstructure:"id"`
	Name     string  `mapstructure:"name"`
	Type     string  `mapstructure:"type"`
	Diameter float64 `mapstructure:"dia"`
	Flutes   int     `mapstructure:"flutes"`
	Material string  `mapstructure:"material"`

	Coating              string   `mapstructure:"coating"`
	MaxRPM               float64  `mapstructure:"max_rpm"`
	Stickout             float64  `mapstructure:"stickout"`
	Length               float64  `mapstructure:"length"`
	FeedPerTooth         float64  `mapstructure:"feed_per_tooth"`
	PlungeFeed           float64  `mapstructure:"plunge_feed"`
	Coolant              string   `mapstructure:"coolant"`
	RecommendedMaterials []string `mapstructure:"recommended_materials"`
}

// ToolMaterial resolves the record's material field against the Black
// Book substrate names.
func (t Tool) ToolMaterial() (blackbook.ToolMaterial, error) {
	return blackbook.ParseToolMaterial(t.Material)
}

func (t Tool) validate() error {
	if t.Name == "" {
		return fmt.Errorf("tool %d: missing name", t.ID)
	}
	if t.Diameter <= 0 {
		return fmt.Errorf("tool %q: missing or non-positive diameter", t.Name)
	}
	if t.Flutes <= 0 {
		return fmt.Errorf("tool %q: missing or non-positive flute count", t.Name)
	}
	if _, err := t.ToolMaterial(); err != nil {
		return fmt.Errorf("tool %q: %w", t.Name, err)
	}
	return nil
}

// NotFoundError means neither a tool ID nor a tool name matched.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool not found in library: %s", e.Ref)
}

// Library is an immutable set of tool records.
type Library struct {
	byID map[int]Tool
	list []Tool
}

// Load reads a tool library file (JSON or YAML by extension). Records
// missing required fields fail the load; there are no silent defaults.
func Load(path string) (*Library, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read tool library: %w", err)
	}

	var records map[string]Tool
	if err := vp.Unmarshal(&records); err != nil {
		return nil, fmt.Errorf("failed to parse tool library: %w", err)
	}
	return New(records)
}

// New builds a Library from parsed records, validating each one.
func New(records map[string]Tool) (*Library, error) {
	library := &Library{byID: map[int]Tool{}}
	for key, tool := range records {
		if tool.ID == 0 {
			if id, err := strconv.Atoi(key); err == nil {
				tool.ID = id
			}
		}
		if err := tool.validate(); err != nil {
			return nil, err
		}
		if _, ok := library.byID[tool.ID]; ok {
			return nil, fmt.Errorf("duplicate tool id %d", tool.ID)
		}
		library.byID[tool.ID] = tool
		library.list = append(library.list, tool)
	}
	sort.Slice(library.list, func(i, j int) bool {
		return library.list[i].ID < library.list[j].ID
	})
	return library, nil
}

// Get resolves a reference as a tool ID first, then as a
// case-insensitive name, then as a name substring.
func (l *Library) Get(ref string) (Tool, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		if tool, ok := l.byID[id]; ok {
			return tool, nil
		}
	}

	lower := strings.ToLower(ref)
	for _, tool := range l.list {
		if strings.ToLower(tool.Name) == lower {
			return tool, nil
		}
	}
	for _, tool := range l.list {
		if strings.Contains(strings.ToLower(tool.Name), lower) {
			return tool, nil
		}
	}
	return Tool{}, &NotFoundError{Ref: ref}
}

// List returns all tools sorted by ID.
func (l *Library) List() []Tool {
	return l.list
}

// Empty is a library with no tools; lookups always fail.
func Empty() *Library {
	return &Library{byID: map[int]Tool{}}
}
