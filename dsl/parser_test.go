package dsl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSetup(t *testing.T) {
	program, err := Parse(`
		setup {
			zero left front top
			material "6061-T6"
			stock 4 3 0.75
			z-min -0.8
			y-limit 2.5
		}
	`)
	require.NoError(t, err)
	require.Equal(t, ZeroRef{X: XLeft, Y: YFront, Z: ZTop}, program.Setup.Zero)
	require.Equal(t, "6061-T6", program.Setup.Material)
	require.Equal(t, &StockDef{Width: 4, Height: 3, Thickness: 0.75}, program.Setup.Stock)
	require.Equal(t, UnitsInch, program.Setup.Units)
	require.NotNil(t, program.Setup.ZMin)
	require.Equal(t, -0.8, *program.Setup.ZMin)
	require.NotNil(t, program.Setup.YLimit)
	require.Equal(t, 2.5, *program.Setup.YLimit)
	require.Empty(t, program.Stmts)
}

func TestParseSetupMissingZero(t *testing.T) {
	_, err := Parse(`setup { material "6061-T6" }`)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, parseErr.Error(), `"zero"`)
}

func TestParseUnits(t *testing.T) {
	program, err := Parse(`setup { zero left front top units mm }`)
	require.NoError(t, err)
	require.Equal(t, UnitsMM, program.Setup.Units)
}

func TestParseFractionValues(t *testing.T) {
	program, err := Parse(`
		setup { zero left front top material "6061-T6" }
		drill 5/8 at 1/2 1/4 thru
	`)
	require.NoError(t, err)
	require.Len(t, program.Stmts, 1)
	drill := program.Stmts[0].(*DrillOp)
	require.Equal(t, 0.625, drill.Diameter)
	require.Equal(t, Position{Kind: PositionExplicit, X: 0.5, Y: 0.25}, drill.At)
	require.True(t, drill.Depth.Thru)
}

func TestParseZeroDenominatorFraction(t *testing.T) {
	_, err := Parse(`
		setup { zero left front top }
		drill 1/0 at zero thru
	`)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, parseErr.Error(), "denominator")
}

func TestParseDrill(t *testing.T) {
	program, err := Parse(`
		setup { zero left front top material "6061-T6" stock 4 3 0.75 }
		drill 0.25 at 1.0 0.5 thru
		drill 0.201 at zero depth 0.6 peck 0.1
		drill 0.5 at stock 0.25
	`)
	require.NoError(t, err)
	require.Len(t, program.Stmts, 3)

	first := program.Stmts[0].(*DrillOp)
	require.Equal(t, 0.25, first.Diameter)
	require.True(t, first.Depth.Thru)
	require.Nil(t, first.Peck)

	second := program.Stmts[1].(*DrillOp)
	require.Equal(t, PositionZero, second.At.Kind)
	require.Equal(t, DepthSpec{Value: 0.6}, second.Depth)
	require.NotNil(t, second.Peck)
	require.Equal(t, 0.1, *second.Peck)

	third := program.Stmts[2].(*DrillOp)
	require.Equal(t, PositionStock, third.At.Kind)
	require.Equal(t, DepthSpec{Value: 0.25}, third.Depth)
}

func TestParseBarePositionWithoutAt(t *testing.T) {
	// A bare numeric pair is ambiguous with dimensions; "at" is
	// mandatory before every position.
	_, err := Parse(`
		setup { zero left front top }
		drill 0.25 1.0 0.5 thru
	`)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, parseErr.Error(), `"at"`)
}

func TestParseNonPositiveDimension(t *testing.T) {
	for _, src := range []string{
		`setup { zero left front top } drill 0 at zero thru`,
		`setup { zero left front top } drill -0.25 at zero thru`,
		`setup { zero left front top } pocket 2 -1.5 0.25 at zero`,
		`setup { zero left front top stock 0 3 0.75 }`,
	} {
		_, err := Parse(src)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, "source: %s", src)
		require.Contains(t, parseErr.Error(), "positive dimension")
	}
}

func TestParsePocketForms(t *testing.T) {
	program, err := Parse(`
		setup { zero left front top material "6061-T6" }
		pocket 2.0 1.5 0.25 at 0.5 0.5
		pocket rect 2.0 1.5 0.25 at 0.5 0.5 finish 0.01
		pocket circle 1.25 0.5 at zero
	`)
	require.NoError(t, err)
	require.Len(t, program.Stmts, 3)

	bare := program.Stmts[0].(*PocketRectOp)
	require.Equal(t, 2.0, bare.Width)
	require.Equal(t, 1.5, bare.Height)
	require.Equal(t, 0.25, bare.Depth)
	require.Nil(t, bare.Finish)

	rect := program.Stmts[1].(*PocketRectOp)
	require.NotNil(t, rect.Finish)
	require.Equal(t, 0.01, *rect.Finish)

	circle := program.Stmts[2].(*PocketCircleOp)
	require.Equal(t, 1.25, circle.Diameter)
	require.Equal(t, 0.5, circle.Depth)
}

func TestParseProfile(t *testing.T) {
	program, err := Parse(`
		setup { zero left front top stock 4 3 0.5 }
		profile outside at stock offset 0.1
		profile inside rect 2 1 at 1.0 1.0 depth 0.25
		profile on circle 1.5 at zero
	`)
	require.NoError(t, err)
	require.Len(t, program.Stmts, 3)

	outside := program.Stmts[0].(*ProfileOp)
	require.Equal(t, ProfileOutside, outside.Side)
	require.Nil(t, outside.Shape)
	require.NotNil(t, outside.Offset)
	require.Equal(t, 0.1, *outside.Offset)
	require.Nil(t, outside.Depth)

	inside := program.Stmts[1].(*ProfileOp)
	require.Equal(t, ProfileInside, inside.Side)
	require.Equal(t, &Shape{Kind: ShapeRect, Width: 2, Height: 1}, inside.Shape)
	require.NotNil(t, inside.Depth)
	require.Equal(t, 0.25, *inside.Depth)

	on := program.Stmts[2].(*ProfileOp)
	require.Equal(t, ProfileOn, on.Side)
	require.Equal(t, &Shape{Kind: ShapeCircle, Diameter: 1.5}, on.Shape)
}

func TestParseCut(t *testing.T) {
	program, err := Parse(`
		setup { zero left front top material "6061-T6" }
		cut X+ 2.0 0.5 0.25
		cut Y- 1.0 0.25 0.5 Z- at 0.5 0.5
	`)
	require.NoError(t, err)

	free := program.Stmts[0].(*CutOp)
	require.Equal(t, DirXPlus, free.Direction)
	require.Equal(t, 2.0, free.Sweep)
	require.Equal(t, 0.5, free.Depth)
	require.Equal(t, 0.25, free.Height)
	require.Equal(t, ZFree, free.ZConstraint)
	require.Nil(t, free.At)

	bound := program.Stmts[1].(*CutOp)
	require.Equal(t, DirYMinus, bound.Direction)
	require.Equal(t, ZMinusOnly, bound.ZConstraint)
	require.NotNil(t, bound.At)
	require.Equal(t, Position{Kind: PositionExplicit, X: 0.5, Y: 0.5}, *bound.At)
}

func TestParseFace(t *testing.T) {
	program, err := Parse(`
		setup { zero left front top stock 4 3 0.75 material "6061-T6" }
		face 4 3 0.05
		face 2 1 0.1 at 1.0 1.0
	`)
	require.NoError(t, err)

	boundary := program.Stmts[0].(*FaceOp)
	require.Nil(t, boundary.At)
	require.Equal(t, 0.05, boundary.Depth)

	placed := program.Stmts[1].(*FaceOp)
	require.NotNil(t, placed.At)
}

func TestParseChamferDeburr(t *testing.T) {
	program, err := Parse(`
		setup { zero left front top material "6061-T6" }
		chamfer 0.02 hole 0.25 at 1.0 0.5
		chamfer 0.03 rect 2 1 at zero
		deburr 0.01 profile at stock
	`)
	require.NoError(t, err)

	hole := program.Stmts[0].(*ChamferOp)
	require.Equal(t, 0.02, hole.Width)
	require.Equal(t, Shape{Kind: ShapeHole, Diameter: 0.25}, hole.Target)

	rect := program.Stmts[1].(*ChamferOp)
	require.Equal(t, Shape{Kind: ShapeRect, Width: 2, Height: 1}, rect.Target)

	deburr := program.Stmts[2].(*DeburrOp)
	require.Equal(t, 0.01, deburr.PassDepth)
	require.Equal(t, ShapeProfile, deburr.Target.Kind)
	require.Equal(t, PositionStock, deburr.At.Kind)
}

func TestParseToolStatements(t *testing.T) {
	program, err := Parse(`
		setup { zero left front top material "6061-T6" }
		tool "1/4 3FL carbide"
		tool "em-250" dia 1/4 flutes 3 carbide stickout 1.25 max-rpm 20000
	`)
	require.NoError(t, err)
	require.Len(t, program.Stmts, 2)

	ref := program.Stmts[0].(*ToolStmt)
	require.Equal(t, "1/4 3FL carbide", ref.Ref)
	require.Nil(t, ref.Inline)

	inline := program.Stmts[1].(*ToolStmt)
	require.NotNil(t, inline.Inline)
	require.Equal(t, "em-250", inline.Inline.ID)
	require.Equal(t, 0.25, inline.Inline.Diameter)
	require.Equal(t, 3, inline.Inline.Flutes)
	require.Equal(t, "carbide", inline.Inline.Material)
	require.NotNil(t, inline.Inline.Stickout)
	require.Equal(t, 1.25, *inline.Inline.Stickout)
	require.NotNil(t, inline.Inline.MaxRPM)
	require.Equal(t, 20000.0, *inline.Inline.MaxRPM)
	require.Nil(t, inline.Inline.Length)
}

func TestParseOverrides(t *testing.T) {
	program, err := Parse(`
		setup { zero left front top }
		pocket 2 1 0.25 at zero feed 12.5 rpm 8000 stepdown 0.05 stepover 0.1
	`)
	require.NoError(t, err)
	pocket := program.Stmts[0].(*PocketRectOp)
	require.Equal(t, 12.5, *pocket.Feed)
	require.Equal(t, 8000.0, *pocket.RPM)
	require.Equal(t, 0.05, *pocket.Stepdown)
	require.Equal(t, 0.1, *pocket.Stepover)
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("setup { zero left front sideways }")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 1, parseErr.Found.Line)
	require.Equal(t, 25, parseErr.Found.Col)
	require.Contains(t, parseErr.Error(), `"top"`)
}
