package compile

import (
	"fmt"
	"math"

	"github.com/FuturePresentLabs/swarf/dsl"
)

func (r *run) genFace(o *dsl.FaceOp) (*Activation, error) {
	p, err := r.params(o.Overrides, r.tool.Diameter, false, true)
	if err != nil {
		return nil, err
	}

	var minX, minY float64
	if o.At == nil || o.At.Kind == dsl.PositionStock {
		sx, sy, _, _, err := r.frame.StockRect()
		if err != nil {
			return nil, err
		}
		minX, minY = sx, sy
	} else {
		x, y, err := r.frame.Resolve(*o.At, stockBoundary)
		if err != nil {
			return nil, err
		}
		minX, minY = x-o.Width/2, y-o.Height/2
	}
	maxX, maxY := minX+o.Width, minY+o.Height
	if err := r.frame.CheckY(maxY); err != nil {
		return nil, err
	}

	rT := r.tool.Diameter / 2
	clear := r.frame.Clearance()
	levels := depthLevels(r.frame.TopZ(), o.Depth, p.DOC)
	p.Passes = len(levels)
	plunge := r.plungeFeed(p)

	e := &emitter{frame: r.frame}
	if err := e.rapid(minX-rT, minY, clear); err != nil {
		return nil, err
	}
	for i, z := range levels {
		if i > 0 {
			if err := e.rapid(minX-rT, minY, clear); err != nil {
				return nil, err
			}
		}
		if err := e.linear(minX-rT, minY, z, plunge); err != nil {
			return nil, err
		}
		row := 0
		for {
			y := minY + float64(row)*p.WOC
			last := y >= maxY-geomEps
			if last {
				y = maxY
			}
			xs, xe := minX-rT, maxX+rT
			if row%2 == 1 {
				xs, xe = xe, xs
			}
			if err := e.rapid(xs, y, z); err != nil {
				return nil, err
			}
			if err := e.linear(xe, y, z, p.Feed); err != nil {
				return nil, err
			}
			if last {
				break
			}
			row++
		}
		if err := e.rapid(e.moves[len(e.moves)-1].X, maxY, clear); err != nil {
			return nil, err
		}
	}

	comment := fmt.Sprintf("FACE %gx%g depth %g", o.Width, o.Height, o.Depth)
	return r.activation(comment, p, e.moves), nil
}

func (r *run) genDrill(o *dsl.DrillOp) (*Activation, error) {
	p, err := r.params(o.Overrides, o.Diameter, false, false)
	if err != nil {
		return nil, err
	}
	x, y, err := r.frame.Resolve(o.At, stockCenter)
	if err != nil {
		return nil, err
	}
	if err := r.frame.CheckY(y + o.Diameter/2); err != nil {
		return nil, err
	}

	var depth float64
	if o.Depth.Thru {
		thickness, err := r.frame.Thickness()
		if err != nil {
			return nil, err
		}
		depth = thickness + breakthroughDiaPct*o.Diameter + breakthroughFixed*r.frame.unitScale()
	} else {
		depth = o.Depth.Value
	}

	peck := 0.0
	if o.Peck != nil {
		peck = *o.Peck
	} else if depth/o.Diameter > autoPeckRatio {
		peck = o.Diameter
	}

	top := r.frame.TopZ()
	clear := r.frame.Clearance()
	plunge := r.plungeFeed(p)

	e := &emitter{frame: r.frame}
	if err := e.rapid(x, y, clear); err != nil {
		return nil, err
	}
	p.Passes = 1
	if peck > 0 {
		n := int(math.Ceil(depth / peck))
		p.Passes = n
		for i := 1; i <= n; i++ {
			d := math.Min(float64(i)*peck, depth)
			if err := e.linear(x, y, top-d, plunge); err != nil {
				return nil, err
			}
			if err := e.rapid(x, y, clear); err != nil {
				return nil, err
			}
		}
	} else {
		if err := e.linear(x, y, top-depth, plunge); err != nil {
			return nil, err
		}
		if err := e.rapid(x, y, clear); err != nil {
			return nil, err
		}
	}

	comment := fmt.Sprintf("DRILL %g at X%.4f Y%.4f depth %.4f", o.Diameter, x, y, depth)
	return r.activation(comment, p, e.moves), nil
}

func (r *run) genPocketRect(o *dsl.PocketRectOp) (*Activation, error) {
	p, err := r.params(o.Overrides, r.tool.Diameter, true, true)
	if err != nil {
		return nil, err
	}
	cx, cy, err := r.frame.Resolve(o.At, stockCenter)
	if err != nil {
		return nil, err
	}
	if err := r.frame.CheckY(cy + o.Height/2); err != nil {
		return nil, err
	}

	rT := r.tool.Diameter / 2
	tx, ty := o.Width/2-rT, o.Height/2-rT
	if tx <= geomEps || ty <= geomEps {
		return nil, resolutionErrorf("tool diameter %g too large for %gx%g pocket",
			r.tool.Diameter, o.Width, o.Height)
	}
	allowance := 0.0
	if o.Finish != nil {
		allowance = *o.Finish
	}
	rtx, rty := tx-allowance, ty-allowance
	if rtx <= geomEps || rty <= geomEps {
		return nil, resolutionErrorf("finish allowance %g leaves no roughing stock", allowance)
	}

	clear := r.frame.Clearance()
	levels := depthLevels(r.frame.TopZ(), o.Depth, p.DOC)
	p.Passes = len(levels)
	plunge := r.plungeFeed(p)

	e := &emitter{frame: r.frame}
	if err := e.rapid(cx, cy, clear); err != nil {
		return nil, err
	}
	for i, z := range levels {
		if i > 0 {
			if err := e.rapid(cx, cy, levels[i-1]); err != nil {
				return nil, err
			}
		}
		if err := e.linear(cx, cy, z, plunge); err != nil {
			return nil, err
		}
		rings := int(math.Ceil(math.Max(rtx, rty) / p.WOC))
		for j := 1; j <= rings; j++ {
			hx := math.Min(float64(j)*p.WOC, rtx)
			hy := math.Min(float64(j)*p.WOC, rty)
			if err := e.rectLoop(cx, cy, hx, hy, z, p.Feed); err != nil {
				return nil, err
			}
		}
	}
	fx, fy := cx-rtx, cy-rty
	if allowance > 0 {
		if err := e.rectLoop(cx, cy, tx, ty, levels[len(levels)-1], p.Feed); err != nil {
			return nil, err
		}
		fx, fy = cx-tx, cy-ty
	}
	if err := e.rapid(fx, fy, clear); err != nil {
		return nil, err
	}

	comment := fmt.Sprintf("POCKET RECT %gx%g depth %g at X%.4f Y%.4f",
		o.Width, o.Height, o.Depth, cx, cy)
	return r.activation(comment, p, e.moves), nil
}

func (r *run) genPocketCircle(o *dsl.PocketCircleOp) (*Activation, error) {
	p, err := r.params(o.Overrides, r.tool.Diameter, true, true)
	if err != nil {
		return nil, err
	}
	cx, cy, err := r.frame.Resolve(o.At, stockCenter)
	if err != nil {
		return nil, err
	}
	if err := r.frame.CheckY(cy + o.Diameter/2); err != nil {
		return nil, err
	}

	rT := r.tool.Diameter / 2
	radius := o.Diameter/2 - rT
	if radius <= geomEps {
		return nil, resolutionErrorf("tool diameter %g too large for %g pocket",
			r.tool.Diameter, o.Diameter)
	}
	allowance := 0.0
	if o.Finish != nil {
		allowance = *o.Finish
	}
	roughRadius := radius - allowance
	if roughRadius <= geomEps {
		return nil, resolutionErrorf("finish allowance %g leaves no roughing stock", allowance)
	}

	clear := r.frame.Clearance()
	levels := depthLevels(r.frame.TopZ(), o.Depth, p.DOC)
	p.Passes = len(levels)
	plunge := r.plungeFeed(p)

	e := &emitter{frame: r.frame}
	if err := e.rapid(cx, cy, clear); err != nil {
		return nil, err
	}
	for i, z := range levels {
		if i > 0 {
			if err := e.rapid(cx, cy, levels[i-1]); err != nil {
				return nil, err
			}
		}
		if err := e.linear(cx, cy, z, plunge); err != nil {
			return nil, err
		}
		rings := int(math.Ceil(roughRadius / p.WOC))
		for j := 1; j <= rings; j++ {
			ringRadius := math.Min(float64(j)*p.WOC, roughRadius)
			if err := e.circleLoop(cx, cy, ringRadius, z, p.Feed); err != nil {
				return nil, err
			}
		}
	}
	fx := cx + roughRadius
	if allowance > 0 {
		if err := e.circleLoop(cx, cy, radius, levels[len(levels)-1], p.Feed); err != nil {
			return nil, err
		}
		fx = cx + radius
	}
	if err := e.rapid(fx, cy, clear); err != nil {
		return nil, err
	}

	comment := fmt.Sprintf("POCKET CIRCLE %g depth %g at X%.4f Y%.4f",
		o.Diameter, o.Depth, cx, cy)
	return r.activation(comment, p, e.moves), nil
}

func (r *run) genProfile(o *dsl.ProfileOp) (*Activation, error) {
	p, err := r.params(o.Overrides, r.tool.Diameter, false, false)
	if err != nil {
		return nil, err
	}
	if o.Offset != nil && o.Side != dsl.ProfileOutside {
		return nil, resolutionErrorf(`"offset" is only valid for outside profiles`)
	}

	var depth float64
	if o.Depth != nil {
		depth = *o.Depth
	} else {
		thickness, err := r.frame.Thickness()
		if err != nil {
			return nil, resolutionErrorf("full-depth profile requires a stock declaration in setup")
		}
		depth = thickness
	}

	rT := r.tool.Diameter / 2
	sideOffset := 0.0
	switch o.Side {
	case dsl.ProfileOutside:
		sideOffset = rT
		if o.Offset != nil {
			sideOffset += *o.Offset
		}
	case dsl.ProfileInside:
		sideOffset = -rT
	}

	// target outline: a shape centered at the position, or the stock
	// outline when no shape is given
	var cx, cy float64
	circle := false
	var hw, hh, radius float64
	if o.Shape == nil {
		sx, sy, w, h, err := r.frame.StockRect()
		if err != nil {
			return nil, err
		}
		cx, cy, hw, hh = sx+w/2, sy+h/2, w/2, h/2
	} else {
		cx, cy, err = r.frame.Resolve(o.At, stockCenter)
		if err != nil {
			return nil, err
		}
		switch o.Shape.Kind {
		case dsl.ShapeRect:
			hw, hh = o.Shape.Width/2, o.Shape.Height/2
		case dsl.ShapeCircle:
			circle = true
			radius = o.Shape.Diameter / 2
		default:
			return nil, resolutionErrorf("unsupported profile shape")
		}
	}

	clear := r.frame.Clearance()
	levels := depthLevels(r.frame.TopZ(), depth, p.DOC)
	p.Passes = len(levels)
	plunge := r.plungeFeed(p)
	e := &emitter{frame: r.frame}

	if circle {
		cutRadius := radius + sideOffset
		if cutRadius <= geomEps {
			return nil, resolutionErrorf("tool diameter %g too large for inside profile of %g circle",
				r.tool.Diameter, radius*2)
		}
		if err := r.frame.CheckY(cy + cutRadius); err != nil {
			return nil, err
		}
		if err := e.rapid(cx+cutRadius, cy, clear); err != nil {
			return nil, err
		}
		for _, z := range levels {
			if err := e.linear(cx+cutRadius, cy, z, plunge); err != nil {
				return nil, err
			}
			if err := e.arcCCW(cx+cutRadius, cy, z, -cutRadius, 0, p.Feed); err != nil {
				return nil, err
			}
		}
		if err := e.rapid(cx+cutRadius, cy, clear); err != nil {
			return nil, err
		}
	} else {
		hx, hy := hw+sideOffset, hh+sideOffset
		if hx <= geomEps || hy <= geomEps {
			return nil, resolutionErrorf("tool diameter %g too large for inside profile of %gx%g rect",
				r.tool.Diameter, hw*2, hh*2)
		}
		if err := r.frame.CheckY(cy + hy); err != nil {
			return nil, err
		}
		if err := e.rapid(cx-hx, cy-hy, clear); err != nil {
			return nil, err
		}
		for _, z := range levels {
			if err := e.linear(cx-hx, cy-hy, z, plunge); err != nil {
				return nil, err
			}
			if err := e.rectLoop(cx, cy, hx, hy, z, p.Feed); err != nil {
				return nil, err
			}
		}
		if err := e.rapid(cx-hx, cy-hy, clear); err != nil {
			return nil, err
		}
	}

	comment := fmt.Sprintf("PROFILE %s depth %g", o.Side, depth)
	return r.activation(comment, p, e.moves), nil
}

func (r *run) genCut(o *dsl.CutOp) (*Activation, error) {
	p, err := r.params(o.Overrides, r.tool.Diameter, true, true)
	if err != nil {
		return nil, err
	}

	ex, ey := 0.0, 0.0
	if o.At != nil {
		ex, ey, err = r.frame.Resolve(*o.At, stockCenter)
		if err != nil {
			return nil, err
		}
	}

	var dx, dy, lx, ly float64
	switch o.Direction {
	case dsl.DirXPlus:
		dx, lx, ly = 1, 0, 1
	case dsl.DirXMinus:
		dx, lx, ly = -1, 0, 1
	case dsl.DirYPlus:
		dy, lx, ly = 1, 1, 0
	case dsl.DirYMinus:
		dy, lx, ly = -1, 1, 0
	}

	half := o.Sweep / 2
	maxY := ey + math.Abs(ly)*half
	if dy > 0 {
		maxY = ey + o.Depth
	}
	if err := r.frame.CheckY(maxY); err != nil {
		return nil, err
	}

	// lateral row offsets across the sweep
	var rows []float64
	for i := 0; ; i++ {
		l := -half + float64(i)*p.WOC
		if l >= half-geomEps {
			rows = append(rows, half)
			break
		}
		rows = append(rows, l)
	}

	levels := depthLevels(r.frame.TopZ(), o.Height, p.DOC)
	if o.ZConstraint == dsl.ZPlusOnly {
		// entry at the deepest level, rising pass by pass
		for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
			levels[i], levels[j] = levels[j], levels[i]
		}
	}
	entryZ := levels[0]
	p.Passes = len(levels)
	plunge := r.plungeFeed(p)

	point := func(l, t float64) (float64, float64) {
		return ex + lx*l + dx*t, ey + ly*l + dy*t
	}

	e := &emitter{frame: r.frame}
	startX, startY := point(rows[0], 0)
	if err := e.rapid(startX, startY, r.frame.Clearance()); err != nil {
		return nil, err
	}
	for i, z := range levels {
		switch o.ZConstraint {
		case dsl.ZPlusOnly:
			if z < entryZ-geomEps {
				return nil, invariantErrorf("Z+ cut pass at Z%.4f below entry Z%.4f", z, entryZ)
			}
		case dsl.ZMinusOnly:
			if z > entryZ+geomEps {
				return nil, invariantErrorf("Z- cut pass at Z%.4f above entry Z%.4f", z, entryZ)
			}
		}
		if i > 0 {
			if err := e.rapid(startX, startY, r.frame.Clearance()); err != nil {
				return nil, err
			}
		}
		if err := e.linear(startX, startY, z, plunge); err != nil {
			return nil, err
		}
		curT := 0.0
		for j, l := range rows {
			if j > 0 {
				x, y := point(l, curT)
				if err := e.linear(x, y, z, p.Feed); err != nil {
					return nil, err
				}
			}
			endT := o.Depth
			if j%2 == 1 {
				endT = 0
			}
			x, y := point(l, endT)
			if err := e.linear(x, y, z, p.Feed); err != nil {
				return nil, err
			}
			curT = endT
		}
		x, y := point(rows[len(rows)-1], curT)
		if err := e.rapid(x, y, r.frame.Clearance()); err != nil {
			return nil, err
		}
	}

	comment := fmt.Sprintf("CUT %s sweep %g depth %g height %g",
		o.Direction, o.Sweep, o.Depth, o.Height)
	return r.activation(comment, p, e.moves), nil
}

func (r *run) genChamfer(o *dsl.ChamferOp) (*Activation, error) {
	comment := fmt.Sprintf("CHAMFER %g", o.Width)
	return r.genPerimeter(comment, o.Width, o.Target, o.At, o.Overrides)
}

func (r *run) genDeburr(o *dsl.DeburrOp) (*Activation, error) {
	comment := fmt.Sprintf("DEBURR %g", o.PassDepth)
	return r.genPerimeter(comment, o.PassDepth, o.Target, o.At, o.Overrides)
}

// genPerimeter is the shared chamfer/deburr path: one light pass along
// the target outline at a fixed conservative feed. It never consults
// the chip load tables.
func (r *run) genPerimeter(comment string, passDepth float64, target dsl.Shape, at dsl.Position, ov dsl.Overrides) (*Activation, error) {
	p, err := r.perimeterParams(ov, passDepth)
	if err != nil {
		return nil, err
	}

	z := r.frame.TopZ() - passDepth
	clear := r.frame.Clearance()
	e := &emitter{frame: r.frame}

	switch target.Kind {
	case dsl.ShapeCircle, dsl.ShapeHole:
		cx, cy, err := r.frame.Resolve(at, stockCenter)
		if err != nil {
			return nil, err
		}
		radius := target.Diameter / 2
		if err := r.frame.CheckY(cy + radius); err != nil {
			return nil, err
		}
		if err := e.rapid(cx+radius, cy, clear); err != nil {
			return nil, err
		}
		if err := e.linear(cx+radius, cy, z, p.Feed); err != nil {
			return nil, err
		}
		if err := e.arcCCW(cx+radius, cy, z, -radius, 0, p.Feed); err != nil {
			return nil, err
		}
		if err := e.rapid(cx+radius, cy, clear); err != nil {
			return nil, err
		}
	default:
		var cx, cy, hx, hy float64
		if target.Kind == dsl.ShapeProfile {
			sx, sy, w, h, err := r.frame.StockRect()
			if err != nil {
				return nil, err
			}
			cx, cy, hx, hy = sx+w/2, sy+h/2, w/2, h/2
		} else {
			cx, cy, err = r.frame.Resolve(at, stockCenter)
			if err != nil {
				return nil, err
			}
			hx, hy = target.Width/2, target.Height/2
		}
		if err := r.frame.CheckY(cy + hy); err != nil {
			return nil, err
		}
		if err := e.rapid(cx-hx, cy-hy, clear); err != nil {
			return nil, err
		}
		if err := e.linear(cx-hx, cy-hy, z, p.Feed); err != nil {
			return nil, err
		}
		if err := e.rectLoop(cx, cy, hx, hy, z, p.Feed); err != nil {
			return nil, err
		}
		if err := e.rapid(cx-hx, cy-hy, clear); err != nil {
			return nil, err
		}
	}

	return r.activation(comment, p, e.moves), nil
}

// perimeterParams derives the RPM from the Black Book (or an override)
// and pins the feed to the fixed conservative perimeter value.
func (r *run) perimeterParams(ov dsl.Overrides, passDepth float64) (CuttingParams, error) {
	var p CuttingParams
	if r.material != nil {
		derived, err := r.params(dsl.Overrides{}, r.tool.Diameter, false, false)
		if err == nil {
			p.RPM = derived.RPM
			p.SFM = derived.SFM
		}
	}
	if ov.RPM != nil {
		p.RPM = *ov.RPM
	}
	p.Feed = perimeterFeedIPM * r.frame.unitScale()
	if ov.Feed != nil {
		p.Feed = *ov.Feed
	}
	p.DOC = passDepth
	p.Passes = 1

	if p.RPM <= 0 {
		if r.materialErr != nil {
			return p, fmt.Errorf("resolution error: %w", r.materialErr)
		}
		return p, resolutionErrorf("no material declared in setup and operation lacks an explicit rpm")
	}
	return p, nil
}
