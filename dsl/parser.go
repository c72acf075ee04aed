package dsl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError reports a grammar violation at a source position.
type ParseError struct {
	Expected string
	Found    *Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(
		"line %d:%d: expected %s, found %s",
		e.Found.Line, e.Found.Col, e.Expected, e.Found,
	)
}

// Parser builds a Program from DSL source via recursive descent with one
// token of lookahead.
type Parser struct {
	lx  *Lexer
	tok *Token
}

func NewParser(input string) *Parser {
	return &Parser{lx: NewLexer(input)}
}

// Parse consumes the whole source and returns the Program, or the first
// *LexError or *ParseError encountered.
func Parse(input string) (*Program, error) {
	return NewParser(input).Parse()
}

func (p *Parser) Parse() (*Program, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	setup, err := p.parseSetup()
	if err != nil {
		return nil, err
	}

	program := &Program{Setup: setup}
	for p.tok.Type != TokenTypeEOF {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		program.Stmts = append(program.Stmts, stmt)
	}
	return program, nil
}

func (p *Parser) next() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) errExpected(what string) error {
	return &ParseError{Expected: what, Found: p.tok}
}

func (p *Parser) isKeyword(name string) bool {
	return p.tok.Type == TokenTypeKeyword && p.tok.Value == name
}

// acceptKeyword consumes the keyword when it is the lookahead and reports
// whether it did.
func (p *Parser) acceptKeyword(name string) (bool, error) {
	if !p.isKeyword(name) {
		return false, nil
	}
	return true, p.next()
}

func (p *Parser) expectKeyword(name string) error {
	if !p.isKeyword(name) {
		return p.errExpected(fmt.Sprintf("%q", name))
	}
	return p.next()
}

// number consumes a decimal or fraction token. Fractions resolve to
// numerator/denominator here, so "5/8" yields 0.625.
func (p *Parser) number() (float64, error) {
	switch p.tok.Type {
	case TokenTypeNumber:
		value, err := strconv.ParseFloat(p.tok.Value, 64)
		if err != nil {
			return 0, p.errExpected("a number")
		}
		return value, p.next()
	case TokenTypeFraction:
		numStr, denStr, _ := strings.Cut(p.tok.Value, "/")
		num, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return 0, p.errExpected("a fraction")
		}
		den, err := strconv.ParseFloat(denStr, 64)
		if err != nil {
			return 0, p.errExpected("a fraction")
		}
		if den == 0 {
			return 0, p.errExpected("a fraction with a nonzero denominator")
		}
		return num / den, p.next()
	}
	return 0, p.errExpected("a number")
}

// dimension is a number that must be strictly positive. Dimensions,
// diameters and depths are rejected here, at the earliest stage that can
// detect them.
func (p *Parser) dimension() (float64, error) {
	tok := p.tok
	value, err := p.number()
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, &ParseError{Expected: "a positive dimension", Found: tok}
	}
	return value, nil
}

func (p *Parser) str() (string, error) {
	if p.tok.Type != TokenTypeString {
		return "", p.errExpected("a string")
	}
	value := p.tok.Value
	return value, p.next()
}

func (p *Parser) parseSetup() (SetupBlock, error) {
	setup := SetupBlock{Units: UnitsInch}

	if err := p.expectKeyword("setup"); err != nil {
		return setup, err
	}
	if p.tok.Type != TokenTypeLBrace {
		return setup, p.errExpected(`"{"`)
	}
	if err := p.next(); err != nil {
		return setup, err
	}

	zeroSeen := false
	for p.tok.Type != TokenTypeRBrace {
		if p.tok.Type != TokenTypeKeyword {
			return setup, p.errExpected("a setup statement")
		}
		var err error
		switch p.tok.Value {
		case "zero":
			zeroSeen = true
			err = p.parseZero(&setup)
		case "material":
			if err = p.next(); err == nil {
				setup.Material, err = p.str()
			}
		case "stock":
			err = p.parseStock(&setup)
		case "units":
			err = p.parseUnits(&setup)
		case "z-min":
			var value float64
			if err = p.next(); err == nil {
				if value, err = p.number(); err == nil {
					setup.ZMin = &value
				}
			}
		case "y-limit":
			var value float64
			if err = p.next(); err == nil {
				if value, err = p.number(); err == nil {
					setup.YLimit = &value
				}
			}
		default:
			return setup, p.errExpected("a setup statement")
		}
		if err != nil {
			return setup, err
		}
	}
	if !zeroSeen {
		return setup, p.errExpected(`a "zero" declaration`)
	}
	return setup, p.next()
}

func (p *Parser) parseZero(setup *SetupBlock) error {
	if err := p.next(); err != nil {
		return err
	}

	switch {
	case p.isKeyword("left"):
		setup.Zero.X = XLeft
	case p.isKeyword("right"):
		setup.Zero.X = XRight
	case p.isKeyword("center"):
		setup.Zero.X = XCenter
	default:
		return p.errExpected(`"left", "right" or "center"`)
	}
	if err := p.next(); err != nil {
		return err
	}

	switch {
	case p.isKeyword("front"):
		setup.Zero.Y = YFront
	case p.isKeyword("back"):
		setup.Zero.Y = YBack
	case p.isKeyword("center"):
		setup.Zero.Y = YCenter
	default:
		return p.errExpected(`"front", "back" or "center"`)
	}
	if err := p.next(); err != nil {
		return err
	}

	switch {
	case p.isKeyword("top"):
		setup.Zero.Z = ZTop
	case p.isKeyword("bottom"):
		setup.Zero.Z = ZBottom
	default:
		return p.errExpected(`"top" or "bottom"`)
	}
	return p.next()
}

func (p *Parser) parseStock(setup *SetupBlock) error {
	if err := p.next(); err != nil {
		return err
	}
	var stock StockDef
	var err error
	if stock.Width, err = p.dimension(); err != nil {
		return err
	}
	if stock.Height, err = p.dimension(); err != nil {
		return err
	}
	if stock.Thickness, err = p.dimension(); err != nil {
		return err
	}
	setup.Stock = &stock
	return nil
}

func (p *Parser) parseUnits(setup *SetupBlock) error {
	if err := p.next(); err != nil {
		return err
	}
	switch {
	case p.isKeyword("inch"):
		setup.Units = UnitsInch
	case p.isKeyword("mm"):
		setup.Units = UnitsMM
	default:
		return p.errExpected(`"inch" or "mm"`)
	}
	return p.next()
}

func (p *Parser) parseStmt() (Stmt, error) {
	if p.tok.Type != TokenTypeKeyword {
		return nil, p.errExpected("an operation")
	}
	switch p.tok.Value {
	case "tool":
		return p.parseTool()
	case "face":
		return p.parseFace()
	case "drill":
		return p.parseDrill()
	case "pocket":
		return p.parsePocket()
	case "profile":
		return p.parseProfile()
	case "cut":
		return p.parseCut()
	case "chamfer":
		return p.parseChamfer()
	case "deburr":
		return p.parseDeburr()
	}
	return nil, p.errExpected("an operation")
}

// parseTool handles both library references (tool "1/4 endmill") and
// inline declarations (tool "em-250" dia 1/4 flutes 3 carbide ...).
func (p *Parser) parseTool() (Stmt, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	name, err := p.str()
	if err != nil {
		return nil, err
	}

	if !p.isKeyword("dia") {
		return &ToolStmt{Ref: name}, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}

	inline := &InlineTool{ID: name}
	if inline.Diameter, err = p.dimension(); err != nil {
		return nil, err
	}

	if err := p.expectKeyword("flutes"); err != nil {
		return nil, err
	}
	flutesTok := p.tok
	flutes, err := p.number()
	if err != nil {
		return nil, err
	}
	if flutes < 1 || flutes != math.Trunc(flutes) {
		return nil, &ParseError{Expected: "a whole flute count", Found: flutesTok}
	}
	inline.Flutes = int(flutes)

	switch {
	case p.isKeyword("hss"), p.isKeyword("carbide"), p.isKeyword("cobalt"), p.isKeyword("ceramic"):
		inline.Material = p.tok.Value
	default:
		return nil, p.errExpected(`"hss", "carbide", "cobalt" or "ceramic"`)
	}
	if err := p.next(); err != nil {
		return nil, err
	}

	for {
		var dst **float64
		switch {
		case p.isKeyword("length"):
			dst = &inline.Length
		case p.isKeyword("stickout"):
			dst = &inline.Stickout
		case p.isKeyword("max-rpm"):
			dst = &inline.MaxRPM
		default:
			return &ToolStmt{Inline: inline}, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		value, err := p.dimension()
		if err != nil {
			return nil, err
		}
		*dst = &value
	}
}

// parseAt consumes a mandatory at-clause. A bare numeric pair without
// "at" is ambiguous with dimensions and is always a grammar error.
func (p *Parser) parseAt() (Position, error) {
	var pos Position
	if err := p.expectKeyword("at"); err != nil {
		return pos, err
	}

	switch {
	case p.isKeyword("zero"):
		pos.Kind = PositionZero
		return pos, p.next()
	case p.isKeyword("stock"):
		pos.Kind = PositionStock
		return pos, p.next()
	}

	pos.Kind = PositionExplicit
	var err error
	if pos.X, err = p.number(); err != nil {
		return pos, err
	}
	pos.Y, err = p.number()
	return pos, err
}

func (p *Parser) parseDepthSpec() (DepthSpec, error) {
	if ok, err := p.acceptKeyword("thru"); err != nil {
		return DepthSpec{}, err
	} else if ok {
		return DepthSpec{Thru: true}, nil
	}
	if ok, err := p.acceptKeyword("depth"); err != nil {
		return DepthSpec{}, err
	} else if ok {
		value, err := p.dimension()
		return DepthSpec{Value: value}, err
	}
	if p.tok.Type != TokenTypeNumber && p.tok.Type != TokenTypeFraction {
		return DepthSpec{}, p.errExpected(`"thru", "depth" or a depth`)
	}
	value, err := p.dimension()
	return DepthSpec{Value: value}, err
}

func (p *Parser) parseOverrides(o *Overrides) error {
	for {
		var dst **float64
		switch {
		case p.isKeyword("feed"):
			dst = &o.Feed
		case p.isKeyword("rpm"):
			dst = &o.RPM
		case p.isKeyword("stepdown"):
			dst = &o.Stepdown
		case p.isKeyword("stepover"):
			dst = &o.Stepover
		default:
			return nil
		}
		if err := p.next(); err != nil {
			return err
		}
		value, err := p.dimension()
		if err != nil {
			return err
		}
		*dst = &value
	}
}

func (p *Parser) parseFace() (Stmt, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	op := &FaceOp{}
	var err error
	if op.Width, err = p.dimension(); err != nil {
		return nil, err
	}
	if op.Height, err = p.dimension(); err != nil {
		return nil, err
	}
	if op.Depth, err = p.dimension(); err != nil {
		return nil, err
	}
	if p.isKeyword("at") {
		pos, err := p.parseAt()
		if err != nil {
			return nil, err
		}
		op.At = &pos
	}
	return op, p.parseOverrides(&op.Overrides)
}

func (p *Parser) parseDrill() (Stmt, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	op := &DrillOp{}
	var err error
	if op.Diameter, err = p.dimension(); err != nil {
		return nil, err
	}
	if op.At, err = p.parseAt(); err != nil {
		return nil, err
	}
	if op.Depth, err = p.parseDepthSpec(); err != nil {
		return nil, err
	}
	if ok, err := p.acceptKeyword("peck"); err != nil {
		return nil, err
	} else if ok {
		value, err := p.dimension()
		if err != nil {
			return nil, err
		}
		op.Peck = &value
	}
	return op, p.parseOverrides(&op.Overrides)
}

// parsePocket accepts "rect w h", "circle dia", or the original bare
// "w h" pair, which means rect.
func (p *Parser) parsePocket() (Stmt, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	if ok, err := p.acceptKeyword("circle"); err != nil {
		return nil, err
	} else if ok {
		op := &PocketCircleOp{}
		if op.Diameter, err = p.dimension(); err != nil {
			return nil, err
		}
		if op.Depth, err = p.dimension(); err != nil {
			return nil, err
		}
		if op.At, err = p.parseAt(); err != nil {
			return nil, err
		}
		if err = p.parsePocketFinish(&op.Finish); err != nil {
			return nil, err
		}
		return op, p.parseOverrides(&op.Overrides)
	}

	if _, err := p.acceptKeyword("rect"); err != nil {
		return nil, err
	}
	op := &PocketRectOp{}
	var err error
	if op.Width, err = p.dimension(); err != nil {
		return nil, err
	}
	if op.Height, err = p.dimension(); err != nil {
		return nil, err
	}
	if op.Depth, err = p.dimension(); err != nil {
		return nil, err
	}
	if op.At, err = p.parseAt(); err != nil {
		return nil, err
	}
	if err = p.parsePocketFinish(&op.Finish); err != nil {
		return nil, err
	}
	return op, p.parseOverrides(&op.Overrides)
}

func (p *Parser) parsePocketFinish(dst **float64) error {
	ok, err := p.acceptKeyword("finish")
	if err != nil || !ok {
		return err
	}
	value, err := p.dimension()
	if err != nil {
		return err
	}
	*dst = &value
	return nil
}

func (p *Parser) parseProfile() (Stmt, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	op := &ProfileOp{}
	switch {
	case p.isKeyword("inside"):
		op.Side = ProfileInside
	case p.isKeyword("outside"):
		op.Side = ProfileOutside
	case p.isKeyword("on"):
		op.Side = ProfileOn
	default:
		return nil, p.errExpected(`"inside", "outside" or "on"`)
	}
	if err := p.next(); err != nil {
		return nil, err
	}

	if ok, err := p.acceptKeyword("rect"); err != nil {
		return nil, err
	} else if ok {
		shape := Shape{Kind: ShapeRect}
		if shape.Width, err = p.dimension(); err != nil {
			return nil, err
		}
		if shape.Height, err = p.dimension(); err != nil {
			return nil, err
		}
		op.Shape = &shape
	} else if ok, err := p.acceptKeyword("circle"); err != nil {
		return nil, err
	} else if ok {
		shape := Shape{Kind: ShapeCircle}
		if shape.Diameter, err = p.dimension(); err != nil {
			return nil, err
		}
		op.Shape = &shape
	}

	var err error
	if op.At, err = p.parseAt(); err != nil {
		return nil, err
	}

	if ok, err := p.acceptKeyword("offset"); err != nil {
		return nil, err
	} else if ok {
		value, err := p.dimension()
		if err != nil {
			return nil, err
		}
		op.Offset = &value
	}

	if ok, err := p.acceptKeyword("depth"); err != nil {
		return nil, err
	} else if ok {
		value, err := p.dimension()
		if err != nil {
			return nil, err
		}
		op.Depth = &value
	}
	return op, p.parseOverrides(&op.Overrides)
}

func (p *Parser) parseCut() (Stmt, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	op := &CutOp{}
	if p.tok.Type != TokenTypeDirection {
		return nil, p.errExpected(`a direction ("X+", "X-", "Y+" or "Y-")`)
	}
	switch p.tok.Value {
	case "X+":
		op.Direction = DirXPlus
	case "X-":
		op.Direction = DirXMinus
	case "Y+":
		op.Direction = DirYPlus
	case "Y-":
		op.Direction = DirYMinus
	default:
		return nil, p.errExpected(`a lateral direction ("X+", "X-", "Y+" or "Y-")`)
	}
	if err := p.next(); err != nil {
		return nil, err
	}

	var err error
	if op.Sweep, err = p.dimension(); err != nil {
		return nil, err
	}
	if op.Depth, err = p.dimension(); err != nil {
		return nil, err
	}
	if op.Height, err = p.dimension(); err != nil {
		return nil, err
	}

	if p.tok.Type == TokenTypeDirection {
		switch p.tok.Value {
		case "Z+":
			op.ZConstraint = ZPlusOnly
		case "Z-":
			op.ZConstraint = ZMinusOnly
		default:
			return nil, p.errExpected(`"Z+" or "Z-"`)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if p.isKeyword("at") {
		pos, err := p.parseAt()
		if err != nil {
			return nil, err
		}
		op.At = &pos
	}
	return op, p.parseOverrides(&op.Overrides)
}

func (p *Parser) parseShape(allowHole, allowProfile bool) (Shape, error) {
	var shape Shape
	var err error
	switch {
	case p.isKeyword("rect"):
		shape.Kind = ShapeRect
		if err = p.next(); err != nil {
			return shape, err
		}
		if shape.Width, err = p.dimension(); err != nil {
			return shape, err
		}
		shape.Height, err = p.dimension()
		return shape, err
	case p.isKeyword("circle"):
		shape.Kind = ShapeCircle
		if err = p.next(); err != nil {
			return shape, err
		}
		shape.Diameter, err = p.dimension()
		return shape, err
	case allowHole && p.isKeyword("hole"):
		shape.Kind = ShapeHole
		if err = p.next(); err != nil {
			return shape, err
		}
		shape.Diameter, err = p.dimension()
		return shape, err
	case allowProfile && p.isKeyword("profile"):
		shape.Kind = ShapeProfile
		return shape, p.next()
	}
	if allowHole {
		return shape, p.errExpected(`"rect", "circle" or "hole"`)
	}
	return shape, p.errExpected(`"rect", "circle" or "profile"`)
}

func (p *Parser) parseChamfer() (Stmt, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	op := &ChamferOp{}
	var err error
	if op.Width, err = p.dimension(); err != nil {
		return nil, err
	}
	if op.Target, err = p.parseShape(true, false); err != nil {
		return nil, err
	}
	if op.At, err = p.parseAt(); err != nil {
		return nil, err
	}
	return op, p.parseOverrides(&op.Overrides)
}

func (p *Parser) parseDeburr() (Stmt, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	op := &DeburrOp{}
	var err error
	if op.PassDepth, err = p.dimension(); err != nil {
		return nil, err
	}
	if op.Target, err = p.parseShape(false, true); err != nil {
		return nil, err
	}
	if op.At, err = p.parseAt(); err != nil {
		return nil, err
	}
	return op, p.parseOverrides(&op.Overrides)
}
