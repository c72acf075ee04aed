package dsl

// Units for all dimensions in a program. Never mixed within one program.
type Units int

const (
	UnitsInch Units = iota
	UnitsMM
)

func (u Units) String() string {
	if u == UnitsMM {
		return "mm"
	}
	return "inch"
}

type XRef int

const (
	XLeft XRef = iota
	XRight
	XCenter
)

type YRef int

const (
	YFront YRef = iota
	YBack
	YCenter
)

type ZRef int

const (
	ZTop ZRef = iota
	ZBottom
)

// ZeroRef declares where the programmed zero sits on the stock.
type ZeroRef struct {
	X XRef
	Y YRef
	Z ZRef
}

// StockDef gives the stock extents: 0..Width in X, 0..Height in Y, and
// Thickness in Z.
type StockDef struct {
	Width     float64
	Height    float64
	Thickness float64
}

// SetupBlock is the mandatory program preamble. Zero is required; all
// other fields are optional with documented fallbacks.
type SetupBlock struct {
	Zero     ZeroRef
	Material string // empty: explicit-parameter-only mode
	Stock    *StockDef
	Units    Units
	ZMin     *float64
	YLimit   *float64
}

// Program is the parsed form of one DSL source file. Immutable once
// parsed.
type Program struct {
	Setup SetupBlock
	Stmts []Stmt
}

// Stmt is either a tool statement or an operation, in program order.
type Stmt interface {
	stmt()
}

// ToolStmt activates a tool for subsequent operations, either by library
// reference or with inline geometry.
type ToolStmt struct {
	Ref    string      // library id or name; empty for inline tools
	Inline *InlineTool // nil for library references
}

func (*ToolStmt) stmt() {}

// InlineTool carries tool geometry declared directly in the DSL.
type InlineTool struct {
	ID       string
	Diameter float64
	Flutes   int
	Material string // hss, carbide, cobalt, ceramic
	Length   *float64
	Stickout *float64
	MaxRPM   *float64
}

type PositionKind int

const (
	PositionZero PositionKind = iota
	PositionStock
	PositionExplicit
)

// Position is a symbolic or explicit XY position, resolved once against
// the coordinate frame and never mutated afterwards.
type Position struct {
	Kind PositionKind
	X    float64
	Y    float64
}

// DepthSpec is either "thru" (resolved later against stock thickness) or
// an explicit depth.
type DepthSpec struct {
	Thru  bool
	Value float64
}

// Overrides are optional trailing per-operation cutting parameters. When
// set they take precedence over Black Book derivation.
type Overrides struct {
	Feed     *float64
	RPM      *float64
	Stepdown *float64
	Stepover *float64
}

type Operation interface {
	Stmt
	operation()
}

// FaceOp rasters the top of the stock down to Depth.
type FaceOp struct {
	Width  float64
	Height float64
	Depth  float64
	At     *Position // nil: stock boundary
	Overrides
}

func (*FaceOp) stmt()      {}
func (*FaceOp) operation() {}

// DrillOp drills one hole, pecking when Peck is set or auto-derived from
// the depth/diameter ratio.
type DrillOp struct {
	Diameter float64
	At       Position
	Depth    DepthSpec
	Peck     *float64
	Overrides
}

func (*DrillOp) stmt()      {}
func (*DrillOp) operation() {}

// PocketRectOp clears a rectangular pocket centered at At.
type PocketRectOp struct {
	Width  float64
	Height float64
	Depth  float64
	At     Position
	Finish *float64 // finish allowance
	Overrides
}

func (*PocketRectOp) stmt()      {}
func (*PocketRectOp) operation() {}

// PocketCircleOp clears a circular pocket centered at At.
type PocketCircleOp struct {
	Diameter float64
	Depth    float64
	At       Position
	Finish   *float64
	Overrides
}

func (*PocketCircleOp) stmt()      {}
func (*PocketCircleOp) operation() {}

type ProfileSide int

const (
	ProfileInside ProfileSide = iota
	ProfileOutside
	ProfileOn
)

func (s ProfileSide) String() string {
	switch s {
	case ProfileInside:
		return "inside"
	case ProfileOutside:
		return "outside"
	default:
		return "on"
	}
}

type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapeHole
	ShapeProfile
)

// Shape is a target outline for profile, chamfer and deburr operations.
type Shape struct {
	Kind     ShapeKind
	Width    float64
	Height   float64
	Diameter float64
}

// ProfileOp cuts along a shape boundary. A nil Shape means the stock
// outline. Offset extends the boundary outward before cutting and is
// only valid for outside profiles.
type ProfileOp struct {
	Side   ProfileSide
	Shape  *Shape
	At     Position
	Offset *float64
	Depth  *float64 // nil: full stock thickness
	Overrides
}

func (*ProfileOp) stmt()      {}
func (*ProfileOp) operation() {}

type Direction int

const (
	DirXPlus Direction = iota
	DirXMinus
	DirYPlus
	DirYMinus
)

func (d Direction) String() string {
	switch d {
	case DirXPlus:
		return "X+"
	case DirXMinus:
		return "X-"
	case DirYPlus:
		return "Y+"
	default:
		return "Y-"
	}
}

type ZConstraint int

const (
	ZFree ZConstraint = iota
	ZPlusOnly
	ZMinusOnly
)

// CutOp sweeps material along a declared axis direction. Depth is the
// travel along the direction, Sweep the lateral width, Height the
// vertical extent of the feature.
type CutOp struct {
	Direction   Direction
	Sweep       float64
	Depth       float64
	Height      float64
	ZConstraint ZConstraint
	At          *Position // nil: zero
	Overrides
}

func (*CutOp) stmt()      {}
func (*CutOp) operation() {}

// ChamferOp follows a target perimeter with a single light pass at a
// fixed conservative feed.
type ChamferOp struct {
	Width  float64
	Target Shape
	At     Position
	Overrides
}

func (*ChamferOp) stmt()      {}
func (*ChamferOp) operation() {}

// DeburrOp follows a target perimeter at PassDepth. It never consults
// chip-load tables.
type DeburrOp struct {
	PassDepth float64
	Target    Shape
	At        Position
	Overrides
}

func (*DeburrOp) stmt()      {}
func (*DeburrOp) operation() {}
