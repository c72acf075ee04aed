// Package compile turns a parsed DSL program into a canonical machine
// program: symbolic positions are resolved against the stock coordinate
// frame, cutting parameters are derived from the Black Book or explicit
// overrides, and each operation is expanded into canonical moves. The
// result is consumed by the validator and the post-processor; neither
// may alter its geometry.
package compile

import (
	"fmt"

	"github.com/FuturePresentLabs/swarf/dsl"
	"github.com/FuturePresentLabs/swarf/tools"
)

type MoveKind int

const (
	Rapid MoveKind = iota
	Linear
	ArcCW
	ArcCCW
	Dwell
)

var moveKindNames = map[MoveKind]string{
	Rapid:  "Rapid",
	Linear: "Linear",
	ArcCW:  "ArcCW",
	ArcCCW: "ArcCCW",
	Dwell:  "Dwell",
}

func (mk MoveKind) String() string {
	if name, ok := moveKindNames[mk]; ok {
		return name
	}
	panic(fmt.Sprintf("unexpected MoveKind: %d", mk))
}

// Move is one canonical unit of machine motion. X, Y, Z are absolute
// program coordinates; Feed applies to cutting moves; I, J are arc
// center offsets from the current position; P is dwell seconds.
type Move struct {
	Kind MoveKind
	X    float64
	Y    float64
	Z    float64
	Feed float64
	I    float64
	J    float64
	P    float64
}

// CuttingParams is the derived parameter set attached to one tool
// activation, in program units (feed per minute, chip load per tooth).
type CuttingParams struct {
	RPM      float64
	Feed     float64
	ChipLoad float64
	SFM      float64
	DOC      float64
	WOC      float64
	Passes   int
}

// Activation is one operation's tool use: the tool, its derived
// parameters and the moves it produced. Immutable once emitted. TopZ is
// the Z of the work surface the operation cuts from.
type Activation struct {
	Tool    tools.Tool
	Params  CuttingParams
	Comment string
	TopZ    float64
	Moves   []Move
}

// Program is the canonical compiled program handed from codegen through
// the validator to the post-processor.
type Program struct {
	Units       dsl.Units
	Material    string
	Coolant     bool
	Activations []Activation
}

// MinZ is the deepest Z any move in the activation reaches.
func (a *Activation) MinZ() float64 {
	minZ := a.TopZ
	for _, m := range a.Moves {
		if m.Kind == Dwell {
			continue
		}
		if m.Z < minZ {
			minZ = m.Z
		}
	}
	return minZ
}

// MaxDepth is the deepest cut below the work surface in the activation.
func (a *Activation) MaxDepth() float64 {
	return a.TopZ - a.MinZ()
}
