package compile

import (
	"fmt"

	"github.com/FuturePresentLabs/swarf/dsl"
)

// ResolutionError reports an unresolvable symbolic reference: a
// position that needs stock the setup never declared, a tool or
// material reference that does not resolve, or geometry that escapes a
// declared travel limit.
type ResolutionError struct {
	Msg string
}

func (e *ResolutionError) Error() string {
	return "resolution error: " + e.Msg
}

func resolutionErrorf(format string, args ...any) *ResolutionError {
	return &ResolutionError{Msg: fmt.Sprintf(format, args...)}
}

// InvariantError means generated geometry violated a hard constraint.
// It is raised at emit time, never deferred to validation.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "codegen invariant violated: " + e.Msg
}

func invariantErrorf(format string, args ...any) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

// stockMode is how an operation kind interprets "at stock": the stock
// boundary (face, profile) or the stock center (pocket, drill, chamfer,
// deburr, cut).
type stockMode int

const (
	stockBoundary stockMode = iota
	stockCenter
)

// Frame is the absolute coordinate frame a program resolves against:
// stock extents 0..W x 0..H with thickness T, with the programmed zero
// placed at the declared corner or face.
type Frame struct {
	Units  dsl.Units
	Stock  *dsl.StockDef
	ZMin   *float64
	YLimit *float64

	// stock-frame coordinates of the programmed zero
	originX float64
	originY float64
	// Z of the stock top in program coordinates
	zTop float64
}

// NewFrame builds the frame from a setup block.
func NewFrame(setup dsl.SetupBlock) *Frame {
	f := &Frame{
		Units:  setup.Units,
		Stock:  setup.Stock,
		ZMin:   setup.ZMin,
		YLimit: setup.YLimit,
	}

	var w, h, t float64
	if setup.Stock != nil {
		w, h, t = setup.Stock.Width, setup.Stock.Height, setup.Stock.Thickness
	}

	switch setup.Zero.X {
	case dsl.XLeft:
		f.originX = 0
	case dsl.XRight:
		f.originX = w
	case dsl.XCenter:
		f.originX = w / 2
	}
	switch setup.Zero.Y {
	case dsl.YFront:
		f.originY = 0
	case dsl.YBack:
		f.originY = h
	case dsl.YCenter:
		f.originY = h / 2
	}
	switch setup.Zero.Z {
	case dsl.ZTop:
		f.zTop = 0
	case dsl.ZBottom:
		f.zTop = t
	}
	return f
}

// TopZ is the Z of the stock top in program coordinates.
func (f *Frame) TopZ() float64 {
	return f.zTop
}

// Thickness is the stock thickness, or an error when no stock was
// declared.
func (f *Frame) Thickness() (float64, error) {
	if f.Stock == nil {
		return 0, resolutionErrorf(`"thru" requires a stock declaration in setup`)
	}
	return f.Stock.Thickness, nil
}

// StockRect is the stock outline in program coordinates: min corner and
// extents.
func (f *Frame) StockRect() (x, y, w, h float64, err error) {
	if f.Stock == nil {
		return 0, 0, 0, 0, resolutionErrorf(`"at stock" requires a stock declaration in setup`)
	}
	return -f.originX, -f.originY, f.Stock.Width, f.Stock.Height, nil
}

// StockCenter is the stock center in program coordinates.
func (f *Frame) StockCenter() (x, y float64, err error) {
	sx, sy, w, h, err := f.StockRect()
	if err != nil {
		return 0, 0, err
	}
	return sx + w/2, sy + h/2, nil
}

// Resolve maps a position expression to absolute program coordinates.
// "stock" resolution depends on the operation kind via mode.
func (f *Frame) Resolve(pos dsl.Position, mode stockMode) (x, y float64, err error) {
	switch pos.Kind {
	case dsl.PositionZero:
		return 0, 0, nil
	case dsl.PositionExplicit:
		return pos.X, pos.Y, nil
	case dsl.PositionStock:
		if mode == stockCenter {
			return f.StockCenter()
		}
		sx, sy, _, _, err := f.StockRect()
		return sx, sy, err
	}
	return 0, 0, resolutionErrorf("unresolvable position kind %d", pos.Kind)
}

// CheckY verifies an operation's farthest Y extent against the declared
// y-limit.
func (f *Frame) CheckY(maxY float64) error {
	if f.YLimit == nil {
		return nil
	}
	if maxY > *f.YLimit+geomEps {
		return resolutionErrorf("operation reaches Y%.4f beyond y-limit %.4f", maxY, *f.YLimit)
	}
	return nil
}

// unitScale converts an inch quantity to program units.
func (f *Frame) unitScale() float64 {
	if f.Units == dsl.UnitsMM {
		return 25.4
	}
	return 1
}

// Clearance is the retract plane above the stock top (R0.1 in inch
// programs).
func (f *Frame) Clearance() float64 {
	return f.zTop + 0.1*f.unitScale()
}

const geomEps = 1e-9
