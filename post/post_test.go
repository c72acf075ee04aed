package post

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FuturePresentLabs/swarf/blackbook"
	"github.com/FuturePresentLabs/swarf/compile"
	"github.com/FuturePresentLabs/swarf/dsl"
	"github.com/FuturePresentLabs/swarf/gcode"
	"github.com/FuturePresentLabs/swarf/tools"
	"github.com/FuturePresentLabs/swarf/validate"
)

func compileSrc(t *testing.T, src string) *compile.Program {
	t.Helper()
	parsed, err := dsl.Parse(src)
	require.NoError(t, err)
	program, err := compile.NewCompiler(blackbook.New(), tools.Empty()).Compile(parsed)
	require.NoError(t, err)
	return program
}

const peckDrillSrc = `
	setup {
		zero left front top
		stock 4 4 2
		material "6061-T6"
	}
	tool "d250" dia 0.25 flutes 2 carbide
	drill 0.25 at 1 1 depth 1.25
`

const plainDrillSrc = `
	setup {
		zero left front top
		stock 4 4 1
		material "6061-T6"
	}
	tool "d250" dia 0.25 flutes 2 carbide
	drill 0.25 at 1 1 depth 0.5
`

func generate(t *testing.T, profileName, src string) string {
	t.Helper()
	profile, err := Builtin(profileName)
	require.NoError(t, err)
	return NewGenerator(profile).Generate(compileSrc(t, src), nil)
}

func TestGenericRetainsPeckCycle(t *testing.T) {
	out := generate(t, "generic", peckDrillSrc)

	require.Contains(t, out, "G83 X1.0000 Y1.0000 Z-1.2500 R0.1000 Q0.2500")
	require.Contains(t, out, "G80")
	require.NotContains(t, out, "G01 X1.0000 Y1.0000 Z-0.2500")
}

func TestGenericRetainsPlainDrillAsG81(t *testing.T) {
	out := generate(t, "generic", plainDrillSrc)
	require.Contains(t, out, "G81 X1.0000 Y1.0000 Z-0.5000 R0.1000")
	require.NotContains(t, out, "G83")
}

func TestMach3ExpandsCycles(t *testing.T) {
	out := generate(t, "mach3", peckDrillSrc)
	require.NotContains(t, out, "G83")
	require.NotContains(t, out, "G81")
	require.Contains(t, out, "G01 X1.0000 Y1.0000 Z-0.2500")
	// parens comment style
	require.Contains(t, out, "(units: inch)")
	require.NotContains(t, out, "; units")
}

func TestLineNumbering(t *testing.T) {
	out := generate(t, "generic", plainDrillSrc)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	var numbered []string
	for _, l := range lines {
		if strings.HasPrefix(l, ";") {
			continue
		}
		require.Regexp(t, `^N\d{4} `, l)
		numbered = append(numbered, l[:5])
	}
	// N numbers step by 10 and skip comment lines
	for i, n := range numbered {
		require.Equal(t, fmt.Sprintf("N%04d", (i+1)*10), n)
	}
	require.Contains(t, out, "N0010 G90 G17 G40 G49 G80\n")
}

func TestLinuxCNCNoNumbering(t *testing.T) {
	out := generate(t, "linuxcnc", plainDrillSrc)
	require.NotContains(t, out, "N0010")
	require.Contains(t, out, "G90 G17 G40 G49 G80\n")
}

func TestHaasWrapper(t *testing.T) {
	out := generate(t, "haas", plainDrillSrc)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, "%", lines[0])
	require.Equal(t, "O00001 (SWARF)", lines[1])
	require.Equal(t, "%", lines[len(lines)-1])
	require.Equal(t, "N0010 G90 G17 G40 G49 G80", lines[6])
}

func TestSafetyBlockAndUnits(t *testing.T) {
	out := generate(t, "generic", plainDrillSrc)
	require.Contains(t, out, "G90 G17 G40 G49 G80")
	require.Contains(t, out, "G20")
	require.Contains(t, out, "G54")
	require.NotContains(t, out, "G21")

	mm := generate(t, "generic", `
		setup {
			zero left front top
			stock 100 50 12
			material "6061-T6"
			units mm
		}
		tool "d6" dia 6 flutes 2 carbide
		drill 6 at 10 10 depth 5
	`)
	require.Contains(t, mm, "G21")
}

func TestCoolant(t *testing.T) {
	out := generate(t, "generic", `
		setup {
			zero left front top
			stock 4 4 1
			material "304"
		}
		tool "d250" dia 0.25 flutes 2 carbide
		drill 0.25 at 1 1 depth 0.25 feed 6 rpm 3000
	`)
	require.Contains(t, out, "M08")
	require.Contains(t, out, "M09")

	dry := generate(t, "generic", plainDrillSrc)
	require.NotContains(t, dry, "M08")
}

func TestWarningsEmbedded(t *testing.T) {
	profile, err := Builtin("generic")
	require.NoError(t, err)
	program := compileSrc(t, plainDrillSrc)
	diags := []validate.Diagnostic{
		{Severity: validate.SeverityWarning, Activation: 0, Tool: "d250", Msg: "expect chatter"},
	}
	out := NewGenerator(profile).Generate(program, diags)
	require.Contains(t, out, "; warning: expect chatter")
}

func TestNoSummary(t *testing.T) {
	profile, err := Builtin("generic")
	require.NoError(t, err)
	program := compileSrc(t, plainDrillSrc)

	g := NewGenerator(profile)
	g.Summary = false
	out := g.Generate(program, nil)
	require.NotContains(t, out, "swarf post")
	require.NotContains(t, out, "; tool:")
	require.NotContains(t, out, "; rpm")
	// operation markers stay
	require.Contains(t, out, "; --- op 1:")
}

func TestDeterministicOutput(t *testing.T) {
	program := compileSrc(t, peckDrillSrc)
	profile, err := Builtin("generic")
	require.NoError(t, err)
	g := NewGenerator(profile)
	first := g.Generate(program, nil)
	second := g.Generate(program, nil)
	require.Equal(t, first, second)
}

func TestOutputParsesAsGcode(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			out := generate(t, name, peckDrillSrc)
			// haas % wrapper lines are tape markers, not G-code
			out = strings.ReplaceAll(out, "%\n", "")
			parser := gcode.NewParser(strings.NewReader(out))
			blocks, err := parser.Blocks()
			require.NoError(t, err)
			require.NotEmpty(t, blocks)
		})
	}
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("fanuc")
	require.ErrorContains(t, err, "unknown post profile")
	require.Equal(t, []string{"generic", "haas", "linuxcnc", "mach3"}, Names())
}

func TestDrillLadderRejectsMixedMoves(t *testing.T) {
	a := compile.Activation{Moves: []compile.Move{
		{Kind: compile.Rapid, X: 1, Y: 1, Z: 0.1},
		{Kind: compile.Linear, X: 1, Y: 1, Z: -0.2, Feed: 5},
		{Kind: compile.Rapid, X: 1, Y: 1, Z: 0.1},
		{Kind: compile.Linear, X: 2, Y: 1, Z: -0.4, Feed: 5},
		{Kind: compile.Rapid, X: 1, Y: 1, Z: 0.1},
	}}
	_, ok := drillLadder(a)
	require.False(t, ok)
}
