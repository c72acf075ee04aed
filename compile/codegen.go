package compile

import (
	"fmt"
	"math"

	"github.com/FuturePresentLabs/swarf/blackbook"
	"github.com/FuturePresentLabs/swarf/dsl"
	"github.com/FuturePresentLabs/swarf/tools"
)

const (
	// plunge moves run at this fraction of the lateral feed unless the
	// tool record carries an explicit plunge feed
	plungeFactor = 0.5
	// holes deeper than this many diameters peck automatically
	autoPeckRatio = 4.0
	// fixed conservative feed for chamfer and deburr perimeter passes
	perimeterFeedIPM = 10.0
	// breakthrough for "thru" drilling: 10% of diameter plus 0.02"
	breakthroughDiaPct = 0.10
	breakthroughFixed  = 0.02
)

// Compiler compiles parsed programs against a shared Black Book and
// tool library. Both are read-only; one Compiler may serve concurrent
// compilations.
type Compiler struct {
	book    *blackbook.BlackBook
	library *tools.Library
}

func NewCompiler(book *blackbook.BlackBook, library *tools.Library) *Compiler {
	return &Compiler{book: book, library: library}
}

// run is the per-compilation state.
type run struct {
	c     *Compiler
	frame *Frame

	materialName string
	material     *blackbook.MaterialData
	materialErr  error // deferred until an operation needs the Black Book

	tool *tools.Tool
}

// Compile resolves positions and parameters and expands every operation
// into canonical moves. It aborts on the first error with no partial
// output.
func (c *Compiler) Compile(src *dsl.Program) (*Program, error) {
	r := &run{
		c:            c,
		frame:        NewFrame(src.Setup),
		materialName: src.Setup.Material,
	}
	if r.materialName != "" {
		material, err := c.book.Lookup(r.materialName)
		if err != nil {
			// Only fatal if an operation actually needs derived
			// parameters.
			r.materialErr = err
		} else {
			r.material = material
		}
	}

	out := &Program{
		Units:    src.Setup.Units,
		Material: r.materialName,
		Coolant:  r.material != nil && r.material.Coolant,
	}

	for _, stmt := range src.Stmts {
		switch s := stmt.(type) {
		case *dsl.ToolStmt:
			if err := r.setTool(s); err != nil {
				return nil, err
			}
		case dsl.Operation:
			activation, err := r.generate(s)
			if err != nil {
				return nil, err
			}
			out.Activations = append(out.Activations, *activation)
		default:
			return nil, invariantErrorf("unhandled statement %T", stmt)
		}
	}
	return out, nil
}

func (r *run) setTool(stmt *dsl.ToolStmt) error {
	if stmt.Inline != nil {
		tool := tools.Tool{
			Name:     stmt.Inline.ID,
			Diameter: stmt.Inline.Diameter,
			Flutes:   stmt.Inline.Flutes,
			Material: stmt.Inline.Material,
		}
		if stmt.Inline.MaxRPM != nil {
			tool.MaxRPM = *stmt.Inline.MaxRPM
		}
		if stmt.Inline.Stickout != nil {
			tool.Stickout = *stmt.Inline.Stickout
		}
		if stmt.Inline.Length != nil {
			tool.Length = *stmt.Inline.Length
		}
		r.tool = &tool
		return nil
	}

	tool, err := r.c.library.Get(stmt.Ref)
	if err != nil {
		return fmt.Errorf("resolution error: %w", err)
	}
	r.tool = &tool
	return nil
}

func (r *run) generate(op dsl.Operation) (*Activation, error) {
	if r.tool == nil {
		return nil, resolutionErrorf("operation before any tool statement")
	}
	switch o := op.(type) {
	case *dsl.FaceOp:
		return r.genFace(o)
	case *dsl.DrillOp:
		return r.genDrill(o)
	case *dsl.PocketRectOp:
		return r.genPocketRect(o)
	case *dsl.PocketCircleOp:
		return r.genPocketCircle(o)
	case *dsl.ProfileOp:
		return r.genProfile(o)
	case *dsl.CutOp:
		return r.genCut(o)
	case *dsl.ChamferOp:
		return r.genChamfer(o)
	case *dsl.DeburrOp:
		return r.genDeburr(o)
	}
	return nil, invariantErrorf("unhandled operation %T", op)
}

// params derives cutting parameters for the active tool at the given
// cutting diameter, then applies explicit overrides. Without a
// resolvable material every parameter an operation needs must be
// overridden explicitly.
func (r *run) params(ov dsl.Overrides, diameter float64, needDOC, needWOC bool) (CuttingParams, error) {
	var p CuttingParams
	scale := r.frame.unitScale()

	if r.material != nil {
		toolMaterial, err := blackbook.ParseToolMaterial(r.tool.Material)
		if err != nil {
			return p, fmt.Errorf("resolution error: %w", err)
		}
		derived, err := r.c.book.Compute(r.materialName, blackbook.Tool{
			DiameterIn: diameter / scale,
			Flutes:     r.tool.Flutes,
			Material:   toolMaterial,
			MaxRPM:     r.tool.MaxRPM,
		})
		if err != nil {
			return p, fmt.Errorf("resolution error: %w", err)
		}
		p = CuttingParams{
			RPM:      derived.RPM,
			Feed:     derived.FeedIPM * scale,
			ChipLoad: derived.ChipLoadIPT * scale,
			SFM:      derived.SFM,
			DOC:      derived.DOC * scale,
			WOC:      derived.WOC * scale,
		}
	}

	if ov.Feed != nil {
		p.Feed = *ov.Feed
	}
	if ov.RPM != nil {
		p.RPM = *ov.RPM
	}
	if ov.Stepdown != nil {
		p.DOC = *ov.Stepdown
	}
	if ov.Stepover != nil {
		p.WOC = *ov.Stepover
	}

	if p.Feed <= 0 || p.RPM <= 0 || (needDOC && p.DOC <= 0) || (needWOC && p.WOC <= 0) {
		if r.materialErr != nil {
			return p, fmt.Errorf("resolution error: %w", r.materialErr)
		}
		return p, resolutionErrorf(
			"no material declared in setup and operation lacks explicit feed/rpm/stepdown/stepover")
	}
	return p, nil
}

func (r *run) plungeFeed(p CuttingParams) float64 {
	if r.tool.PlungeFeed > 0 {
		return r.tool.PlungeFeed
	}
	return p.Feed * plungeFactor
}

func (r *run) activation(comment string, p CuttingParams, moves []Move) *Activation {
	return &Activation{
		Tool:    *r.tool,
		Params:  p,
		Comment: comment,
		TopZ:    r.frame.TopZ(),
		Moves:   moves,
	}
}

// emitter collects moves, enforcing the z-min floor on every target at
// emit time.
type emitter struct {
	frame *Frame
	moves []Move
}

func (e *emitter) checkZ(z float64) error {
	if e.frame.ZMin != nil && z < *e.frame.ZMin-geomEps {
		return invariantErrorf("move targets Z%.4f below z-min %.4f", z, *e.frame.ZMin)
	}
	return nil
}

func (e *emitter) rapid(x, y, z float64) error {
	if err := e.checkZ(z); err != nil {
		return err
	}
	e.moves = append(e.moves, Move{Kind: Rapid, X: x, Y: y, Z: z})
	return nil
}

func (e *emitter) linear(x, y, z, feed float64) error {
	if err := e.checkZ(z); err != nil {
		return err
	}
	e.moves = append(e.moves, Move{Kind: Linear, X: x, Y: y, Z: z, Feed: feed})
	return nil
}

func (e *emitter) arcCCW(x, y, z, i, j, feed float64) error {
	if err := e.checkZ(z); err != nil {
		return err
	}
	e.moves = append(e.moves, Move{Kind: ArcCCW, X: x, Y: y, Z: z, Feed: feed, I: i, J: j})
	return nil
}

// rectLoop cuts one full rectangular perimeter centered on (cx, cy)
// with half extents hx, hy, starting and ending at the min corner.
func (e *emitter) rectLoop(cx, cy, hx, hy, z, feed float64) error {
	corners := [][2]float64{
		{cx - hx, cy - hy},
		{cx + hx, cy - hy},
		{cx + hx, cy + hy},
		{cx - hx, cy + hy},
		{cx - hx, cy - hy},
	}
	for _, corner := range corners {
		if err := e.linear(corner[0], corner[1], z, feed); err != nil {
			return err
		}
	}
	return nil
}

// circleLoop cuts one full circle of the given radius around (cx, cy),
// entering at the 3 o'clock point.
func (e *emitter) circleLoop(cx, cy, radius, z, feed float64) error {
	if err := e.linear(cx+radius, cy, z, feed); err != nil {
		return err
	}
	return e.arcCCW(cx+radius, cy, z, -radius, 0, feed)
}

func depthLevels(top, depth, doc float64) []float64 {
	if doc <= 0 || doc >= depth {
		return []float64{top - depth}
	}
	n := int(math.Ceil(depth / doc))
	levels := make([]float64, 0, n)
	for k := 1; k <= n; k++ {
		levels = append(levels, top-math.Min(float64(k)*doc, depth))
	}
	return levels
}
