// Package blackbook is the feeds and speeds knowledge base: per-material
// surface speed ranges, diameter-indexed chip load tables and the
// derivation formulas that turn a (material, tool) pair into cutting
// parameters. Data is compiled from Harvey Tool guidelines and
// Machinery's Handbook.
//
// A BlackBook is immutable after New and safe to share across
// concurrent compilations.
package blackbook

import (
	"fmt"
	"sort"
	"strings"
)

// ToolMaterial is the cutting tool substrate.
type ToolMaterial int

const (
	HSS ToolMaterial = iota
	Cobalt
	Carbide
	CoatedCarbide
	Ceramic
)

var toolMaterialNames = map[ToolMaterial]string{
	HSS:           "HSS",
	Cobalt:        "Cobalt",
	Carbide:       "Carbide",
	CoatedCarbide: "Coated Carbide",
	Ceramic:       "Ceramic",
}

func (tm ToolMaterial) String() string {
	if name, ok := toolMaterialNames[tm]; ok {
		return name
	}
	panic(fmt.Sprintf("unexpected ToolMaterial: %d", tm))
}

// ParseToolMaterial resolves the names accepted by the DSL and the tool
// library.
func ParseToolMaterial(name string) (ToolMaterial, error) {
	switch strings.ToLower(name) {
	case "hss":
		return HSS, nil
	case "cobalt":
		return Cobalt, nil
	case "carbide":
		return Carbide, nil
	case "coated", "coated carbide", "coated-carbide":
		return CoatedCarbide, nil
	case "ceramic":
		return Ceramic, nil
	}
	return 0, &UnknownToolMaterialError{Name: name}
}

// Category groups materials by machining behavior.
type Category int

const (
	NonFerrous Category = iota
	SteelLowAlloy
	SteelHighAlloy
	StainlessAustenitic
	StainlessMartensitic
	StainlessPrecipitation
	CastIron
	Titanium
	HighTempAlloy
)

var categoryNames = map[Category]string{
	NonFerrous:             "non-ferrous",
	SteelLowAlloy:          "low alloy steel",
	SteelHighAlloy:         "high alloy steel",
	StainlessAustenitic:    "austenitic stainless",
	StainlessMartensitic:   "martensitic stainless",
	StainlessPrecipitation: "precipitation hardening stainless",
	CastIron:               "cast iron",
	Titanium:               "titanium",
	HighTempAlloy:          "high temperature alloy",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	panic(fmt.Sprintf("unexpected Category: %d", c))
}

// SFM is a surface speed range in surface feet per minute.
type SFM struct {
	Min float64
	Max float64
	Rec float64
}

// MaterialData is one Black Book entry. Chip load tables are indexed by
// ToolDiameters.
type MaterialData struct {
	Name          string
	Category      Category
	Grades        []string
	Description   string
	HardnessHB    int
	Machinability float64 // percent relative to 1212 steel

	SFMHSS     SFM
	SFMCobalt  SFM
	SFMCarbide SFM
	SFMCoated  SFM
	SFMCeramic *SFM

	ChipLoadsCarbide [8]float64
	ChipLoadsHSS     [8]float64

	MaxDOCRatio   float64 // axial DOC limit as a fraction of diameter
	EngagementPct float64 // recommended radial engagement
	Coolant       bool
	HighFeed      bool // work hardening or heat buildup: stay ahead with feed
}

// UnknownMaterialError means neither a material name nor a grade alias
// matched.
type UnknownMaterialError struct {
	Name string
}

func (e *UnknownMaterialError) Error() string {
	return fmt.Sprintf("unknown material: %s", e.Name)
}

type UnknownToolMaterialError struct {
	Name string
}

func (e *UnknownToolMaterialError) Error() string {
	return fmt.Sprintf("unknown tool material: %s", e.Name)
}

type InvalidDiameterError struct {
	Diameter float64
}

func (e *InvalidDiameterError) Error() string {
	return fmt.Sprintf("invalid tool diameter: %v", e.Diameter)
}

// BlackBook resolves material names and grade aliases to entries.
type BlackBook struct {
	byKey   map[string]*MaterialData
	ordered []*MaterialData
}

// New builds the Black Book from the built-in material database.
func New() *BlackBook {
	bb := &BlackBook{byKey: map[string]*MaterialData{}}
	for i := range materialDatabase {
		m := &materialDatabase[i]
		bb.ordered = append(bb.ordered, m)
		bb.byKey[strings.ToLower(m.Name)] = m
		for _, grade := range m.Grades {
			key := strings.ToLower(grade)
			if _, ok := bb.byKey[key]; !ok {
				bb.byKey[key] = m
			}
		}
	}
	sort.Slice(bb.ordered, func(i, j int) bool {
		return bb.ordered[i].Name < bb.ordered[j].Name
	})
	return bb
}

// Lookup resolves a material by full name or grade alias, case
// insensitively.
func (bb *BlackBook) Lookup(name string) (*MaterialData, error) {
	if m, ok := bb.byKey[strings.ToLower(name)]; ok {
		return m, nil
	}
	return nil, &UnknownMaterialError{Name: name}
}

// Materials lists all entries sorted by name.
func (bb *BlackBook) Materials() []*MaterialData {
	return bb.ordered
}
