// Package post renders a compiled program as G-code text for a
// concrete controller dialect. It only formats: geometry and parameters
// arrive final from the compiler and are never altered here.
package post

import (
	"fmt"
	"sort"
	"strings"
)

type CannedCycles int

const (
	// ExpandCycles writes drill ladders as explicit G00/G01 moves.
	ExpandCycles CannedCycles = iota
	// RetainCycles collapses drill ladders into G81/G83 blocks.
	RetainCycles
)

type CommentStyle int

const (
	CommentSemicolon CommentStyle = iota
	CommentParens
)

// Profile describes one output dialect.
type Profile struct {
	Name          string
	LineNumbering bool
	CannedCycles  CannedCycles
	CommentStyle  CommentStyle
	// HeaderLines and FooterLines are written verbatim, outside line
	// numbering.
	HeaderLines []string
	FooterLines []string
}

func (p *Profile) comment(text string) string {
	if p.CommentStyle == CommentParens {
		text = strings.NewReplacer("(", "[", ")", "]").Replace(text)
		return "(" + text + ")"
	}
	return "; " + text
}

var builtins = map[string]Profile{
	"generic": {
		Name:          "generic",
		LineNumbering: true,
		CannedCycles:  RetainCycles,
		CommentStyle:  CommentSemicolon,
	},
	"linuxcnc": {
		Name:          "linuxcnc",
		LineNumbering: false,
		CannedCycles:  RetainCycles,
		CommentStyle:  CommentSemicolon,
	},
	"mach3": {
		Name:          "mach3",
		LineNumbering: true,
		CannedCycles:  ExpandCycles,
		CommentStyle:  CommentParens,
	},
	"haas": {
		Name:          "haas",
		LineNumbering: true,
		CannedCycles:  RetainCycles,
		CommentStyle:  CommentParens,
		HeaderLines:   []string{"%", "O00001 (SWARF)"},
		FooterLines:   []string{"%"},
	},
}

// Builtin returns a copy of a named builtin profile.
func Builtin(name string) (*Profile, error) {
	profile, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown post profile: %s (have %s)", name, strings.Join(Names(), ", "))
	}
	return &profile, nil
}

// Names lists the builtin profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
