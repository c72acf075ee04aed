package compile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FuturePresentLabs/swarf/blackbook"
	"github.com/FuturePresentLabs/swarf/dsl"
	"github.com/FuturePresentLabs/swarf/tools"
)

func compileSource(t *testing.T, src string) (*Program, error) {
	t.Helper()
	parsed, err := dsl.Parse(src)
	require.NoError(t, err)
	return NewCompiler(blackbook.New(), tools.Empty()).Compile(parsed)
}

func mustCompile(t *testing.T, src string) *Program {
	t.Helper()
	program, err := compileSource(t, src)
	require.NoError(t, err)
	return program
}

// cuttingMoves returns all non-rapid moves of the activation.
func cuttingMoves(a Activation) []Move {
	var out []Move
	for _, m := range a.Moves {
		if m.Kind != Rapid {
			out = append(out, m)
		}
	}
	return out
}

func TestDrillThruBreakthrough(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 4 0.75
			material "6061-T6"
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 1 thru
	`)
	require.Len(t, program.Activations, 1)
	a := program.Activations[0]

	// 0.75 thick plus 10% of diameter plus a fixed 0.02" margin
	require.InDelta(t, 0.795, a.MaxDepth(), 1e-9)
	require.Equal(t, 1, a.Params.Passes)

	require.Equal(t, Rapid, a.Moves[0].Kind)
	require.InDelta(t, 1.0, a.Moves[0].X, 1e-9)
	require.InDelta(t, 1.0, a.Moves[0].Y, 1e-9)
	require.InDelta(t, 0.1, a.Moves[0].Z, 1e-9)

	last := a.Moves[len(a.Moves)-1]
	require.Equal(t, Rapid, last.Kind)
	require.InDelta(t, 0.1, last.Z, 1e-9)
}

func TestDrillAutoPeck(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 4 2
			material "6061-T6"
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 1 depth 1.25
	`)
	a := program.Activations[0]

	// depth/diameter = 5 > 4, so pecking kicks in at one diameter
	require.Equal(t, 5, a.Params.Passes)

	var plunges []float64
	for _, m := range a.Moves {
		if m.Kind == Linear {
			plunges = append(plunges, m.Z)
		} else {
			require.InDelta(t, 0.1, m.Z, 1e-9)
		}
	}
	require.Len(t, plunges, 5)
	for i := 1; i < len(plunges); i++ {
		require.Less(t, plunges[i], plunges[i-1])
	}
	require.InDelta(t, -1.25, plunges[len(plunges)-1], 1e-9)
}

func TestDrillExplicitPeck(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 4 1
			material "6061-T6"
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 1 depth 0.75 peck 0.3
	`)
	a := program.Activations[0]
	require.Equal(t, 3, a.Params.Passes)

	var plunges []float64
	for _, m := range a.Moves {
		if m.Kind == Linear {
			plunges = append(plunges, m.Z)
		}
	}
	require.InDeltaSlice(t, []float64{-0.3, -0.6, -0.75}, plunges, 1e-9)
}

func TestPocketDepthPasses(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 2 0.5
			material "6061-T6"
		}
		tool "em375" dia 0.375 flutes 4 carbide
		pocket rect 2 1 0.25 at 1.5 1 stepdown 0.1
	`)
	a := program.Activations[0]
	require.Equal(t, 3, a.Params.Passes)

	// one plunge at the pocket center per level
	var plunges []float64
	for _, m := range a.Moves {
		if m.Kind == Linear && near(m.X, 1.5) && near(m.Y, 1.0) && m.Z < 0 {
			plunges = append(plunges, m.Z)
		}
	}
	require.InDeltaSlice(t, []float64{-0.1, -0.2, -0.25}, plunges, 1e-9)
	require.InDelta(t, 0.25, a.MaxDepth(), 1e-9)
}

func TestPocketFinishPass(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 2 0.5
			material "6061-T6"
		}
		tool "em375" dia 0.375 flutes 4 carbide
		pocket rect 2 1 0.25 at 1.5 1 finish 0.02 stepdown 0.25
	`)
	a := program.Activations[0]

	// the last cutting move is the finish perimeter closing at the full
	// pocket extent
	cuts := cuttingMoves(a)
	last := cuts[len(cuts)-1]
	require.InDelta(t, 1.5-(1.0-0.1875), last.X, 1e-9)
	require.InDelta(t, 1.0-(0.5-0.1875), last.Y, 1e-9)
	require.InDelta(t, -0.25, last.Z, 1e-9)
}

func TestPocketToolTooLarge(t *testing.T) {
	_, err := compileSource(t, `
		setup {
			zero left front top
			stock 4 2 0.5
			material "6061-T6"
		}
		tool "em500" dia 0.5 flutes 4 carbide
		pocket circle 0.375 0.1 at 1 1
	`)
	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	require.ErrorContains(t, err, "too large")
}

func TestZMinFloor(t *testing.T) {
	_, err := compileSource(t, `
		setup {
			zero left front top
			stock 4 4 1
			material "6061-T6"
			z-min -0.5
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 1 depth 0.6
	`)
	var invariant *InvariantError
	require.ErrorAs(t, err, &invariant)
	require.ErrorContains(t, err, "z-min")
}

func TestYLimit(t *testing.T) {
	_, err := compileSource(t, `
		setup {
			zero left front top
			stock 4 4 1
			material "6061-T6"
			y-limit 2
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 2.5 depth 0.25
	`)
	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	require.ErrorContains(t, err, "y-limit")
}

func TestUnknownMaterialDeferred(t *testing.T) {
	// with full explicit parameters the unknown material never matters
	mustCompile(t, `
		setup {
			zero left front top
			stock 4 4 1
			material "unobtanium"
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 1 depth 0.25 feed 3 rpm 3000
	`)

	// without them the deferred lookup error surfaces
	_, err := compileSource(t, `
		setup {
			zero left front top
			stock 4 4 1
			material "unobtanium"
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 1 depth 0.25
	`)
	require.ErrorContains(t, err, "unknown material: unobtanium")
	var unknown *blackbook.UnknownMaterialError
	require.ErrorAs(t, err, &unknown)
}

func TestNoMaterialExplicitOnly(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 2 0.5
		}
		tool "em375" dia 0.375 flutes 4 carbide
		pocket rect 2 1 0.2 at 1.5 1 feed 12 rpm 6000 stepdown 0.1 stepover 0.15
	`)
	a := program.Activations[0]
	require.Equal(t, 12.0, a.Params.Feed)
	require.Equal(t, 6000.0, a.Params.RPM)

	_, err := compileSource(t, `
		setup {
			zero left front top
			stock 4 2 0.5
		}
		tool "em375" dia 0.375 flutes 4 carbide
		pocket rect 2 1 0.2 at 1.5 1 feed 12 rpm 6000
	`)
	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
}

func TestCutZMinusNeverRises(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 4 1
		}
		tool "em250" dia 0.25 flutes 3 carbide
		cut X+ 1 2 0.3 Z- at 1 1 feed 10 rpm 5000 stepdown 0.1 stepover 0.1
	`)
	a := program.Activations[0]
	require.Equal(t, 3, a.Params.Passes)

	cuts := cuttingMoves(a)
	entryZ := cuts[0].Z
	require.InDelta(t, -0.1, entryZ, 1e-9)
	for _, m := range cuts {
		require.LessOrEqual(t, m.Z, entryZ+1e-9)
	}
	require.InDelta(t, -0.3, a.MinZ(), 1e-9)
}

func TestCutZPlusNeverDives(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 4 1
		}
		tool "em250" dia 0.25 flutes 3 carbide
		cut X+ 1 2 0.3 Z+ at 1 1 feed 10 rpm 5000 stepdown 0.1 stepover 0.1
	`)
	a := program.Activations[0]

	cuts := cuttingMoves(a)
	entryZ := cuts[0].Z
	require.InDelta(t, -0.3, entryZ, 1e-9)
	for _, m := range cuts {
		require.GreaterOrEqual(t, m.Z, entryZ-1e-9)
	}
}

func TestFrameCenterZero(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero center center top
			stock 4 2 0.5
			material "6061-T6"
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at stock depth 0.25
	`)
	a := program.Activations[0]
	require.InDelta(t, 0.0, a.Moves[0].X, 1e-9)
	require.InDelta(t, 0.0, a.Moves[0].Y, 1e-9)
}

func TestFrameBottomZero(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front bottom
			stock 4 2 0.5
			material "6061-T6"
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 1 depth 0.25
	`)
	a := program.Activations[0]
	// stock top sits at Z0.5, so the hole bottom is at Z0.25
	require.InDelta(t, 0.5, a.TopZ, 1e-9)
	require.InDelta(t, 0.25, a.MinZ(), 1e-9)
	require.InDelta(t, 0.6, a.Moves[0].Z, 1e-9)
}

func TestProfileOutsideStock(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 2 0.5
			material "6061-T6"
		}
		tool "em250" dia 0.25 flutes 3 carbide
		profile outside at stock
	`)
	a := program.Activations[0]

	// full stock thickness, tool center offset outward by the radius
	require.InDelta(t, 0.5, a.MaxDepth(), 1e-9)
	found := false
	for _, m := range a.Moves {
		if m.Kind == Linear && near(m.X, 4.125) && near(m.Y, 2.125) {
			found = true
		}
	}
	require.True(t, found, "expected perimeter corner at (4.125, 2.125)")
}

func TestProfileOffsetOnlyOutside(t *testing.T) {
	_, err := compileSource(t, `
		setup {
			zero left front top
			stock 4 2 0.5
			material "6061-T6"
		}
		tool "em250" dia 0.25 flutes 3 carbide
		profile inside rect 2 1 at 1.5 1 offset 0.05 depth 0.25
	`)
	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	require.ErrorContains(t, err, "offset")
}

func TestFaceRaster(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 2 0.5
			material "6061-T6"
		}
		tool "em750" dia 0.75 flutes 4 carbide
		face 4 2 0.05 feed 20 rpm 5000 stepover 0.5
	`)
	a := program.Activations[0]
	require.Equal(t, 1, a.Params.Passes)

	// first row runs off both edges by the tool radius
	cuts := cuttingMoves(a)
	firstRow := cuts[1]
	require.InDelta(t, 4.375, firstRow.X, 1e-9)
	require.InDelta(t, 0.0, firstRow.Y, 1e-9)
	require.InDelta(t, -0.05, firstRow.Z, 1e-9)

	// final row lands exactly on the far edge
	lastRow := cuts[len(cuts)-1]
	require.InDelta(t, 2.0, lastRow.Y, 1e-9)
}

func TestChamferHole(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 4 0.5
		}
		tool "ch500" dia 0.5 flutes 4 carbide
		chamfer 0.02 hole 0.5 at 1 1 rpm 6000
	`)
	a := program.Activations[0]
	require.Equal(t, 6000.0, a.Params.RPM)
	require.Equal(t, 10.0, a.Params.Feed)

	var arc *Move
	for i, m := range a.Moves {
		if m.Kind == ArcCCW {
			arc = &a.Moves[i]
		}
	}
	require.NotNil(t, arc)
	require.InDelta(t, 1.25, arc.X, 1e-9)
	require.InDelta(t, 1.0, arc.Y, 1e-9)
	require.InDelta(t, -0.02, arc.Z, 1e-9)
	require.InDelta(t, -0.25, arc.I, 1e-9)
	require.InDelta(t, 0.0, arc.J, 1e-9)
}

func TestChamferRequiresRPM(t *testing.T) {
	_, err := compileSource(t, `
		setup {
			zero left front top
			stock 4 4 0.5
		}
		tool "ch500" dia 0.5 flutes 4 carbide
		chamfer 0.02 hole 0.5 at 1 1
	`)
	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	require.ErrorContains(t, err, "rpm")
}

func TestDeburrStockProfile(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 2 0.5
			material "6061-T6"
		}
		tool "db250" dia 0.25 flutes 2 carbide
		deburr 0.01 profile at stock
	`)
	a := program.Activations[0]
	require.Equal(t, 1, a.Params.Passes)
	require.InDelta(t, 0.01, a.MaxDepth(), 1e-9)

	// perimeter follows the stock outline itself
	found := false
	for _, m := range a.Moves {
		if m.Kind == Linear && near(m.X, 4.0) && near(m.Y, 2.0) {
			found = true
		}
	}
	require.True(t, found)
}

func TestOperationBeforeTool(t *testing.T) {
	_, err := compileSource(t, `
		setup {
			zero left front top
			stock 4 4 1
			material "6061-T6"
		}
		drill 0.25 at 1 1 depth 0.25
	`)
	require.ErrorContains(t, err, "before any tool")
}

func TestLibraryToolReference(t *testing.T) {
	parsed, err := dsl.Parse(`
		setup {
			zero left front top
			stock 4 4 1
			material "6061-T6"
		}
		tool "1"
		drill 0.25 at 1 1 depth 0.25
	`)
	require.NoError(t, err)

	library, err := tools.New(map[string]tools.Tool{
		"1": {ID: 1, Name: "1/4 Drill", Diameter: 0.25, Flutes: 2, Material: "hss"},
	})
	require.NoError(t, err)

	program, err := NewCompiler(blackbook.New(), library).Compile(parsed)
	require.NoError(t, err)
	require.Equal(t, "1/4 Drill", program.Activations[0].Tool.Name)
}

func TestUnknownToolReference(t *testing.T) {
	_, err := compileSource(t, `
		setup {
			zero left front top
			stock 4 4 1
			material "6061-T6"
		}
		tool "7"
		drill 0.25 at 1 1 depth 0.25
	`)
	var notFound *tools.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestMMProgram(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 100 50 12
			material "6061-T6"
			units mm
		}
		tool "d6" dia 6 flutes 2 carbide
		drill 6 at 10 10 thru
	`)
	a := program.Activations[0]

	// clearance plane is 0.1" above the top, scaled to mm
	require.InDelta(t, 2.54, a.Moves[0].Z, 1e-9)
	// 12 thick plus 10% of 6mm plus 0.02" of breakthrough
	require.InDelta(t, 12+0.6+0.508, a.MaxDepth(), 1e-9)
}

func TestThruRequiresStock(t *testing.T) {
	_, err := compileSource(t, `
		setup {
			zero left front top
			material "6061-T6"
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 1 thru
	`)
	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	require.ErrorContains(t, err, "stock")
}

func TestCoolantFromMaterial(t *testing.T) {
	program := mustCompile(t, `
		setup {
			zero left front top
			stock 4 4 1
			material "1018"
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 1 depth 0.25
	`)
	require.True(t, program.Coolant)

	dry := mustCompile(t, `
		setup {
			zero left front top
			stock 4 4 1
			material "6061-T6"
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 1 depth 0.25
	`)
	require.False(t, dry.Coolant)
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
