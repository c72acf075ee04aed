package post

import (
	"fmt"
	"strings"

	"github.com/FuturePresentLabs/swarf/compile"
	"github.com/FuturePresentLabs/swarf/dsl"
	swarffmt "github.com/FuturePresentLabs/swarf/internal/fmt"
	"github.com/FuturePresentLabs/swarf/validate"
)

const numberStep = 10

// Generator renders compiled programs for one profile. Stateless across
// calls; the same input always yields the same text. Summary controls
// the cutting parameter comment blocks; warnings are always embedded.
type Generator struct {
	profile *Profile
	Summary bool
}

func NewGenerator(profile *Profile) *Generator {
	return &Generator{profile: profile, Summary: true}
}

// line is one output line. Raw lines (comments, header, footer) never
// receive N numbers.
type line struct {
	text string
	raw  bool
}

type writer struct {
	profile *Profile
	lines   []line
}

func (w *writer) code(format string, args ...any) {
	w.lines = append(w.lines, line{text: fmt.Sprintf(format, args...)})
}

func (w *writer) comment(format string, args ...any) {
	w.lines = append(w.lines, line{text: w.profile.comment(fmt.Sprintf(format, args...)), raw: true})
}

func (w *writer) verbatim(text string) {
	w.lines = append(w.lines, line{text: text, raw: true})
}

// Generate renders the program. Warnings, when given, are embedded as
// comments next to the operation they concern.
func (g *Generator) Generate(program *compile.Program, diags []validate.Diagnostic) string {
	w := &writer{profile: g.profile}

	for _, header := range g.profile.HeaderLines {
		w.verbatim(header)
	}

	if g.Summary {
		g.summary(w, program)
	}

	w.code("G90 G17 G40 G49 G80")
	if program.Units == dsl.UnitsMM {
		w.code("G21")
	} else {
		w.code("G20")
	}
	w.code("G54")

	coolantOn := false
	for i, a := range program.Activations {
		w.comment("--- op %d: %s ---", i+1, a.Comment)
		if g.Summary {
			w.comment("tool: %s dia %s %dFL %s",
				a.Tool.Name,
				swarffmt.SprintFloat(a.Tool.Diameter, 4),
				a.Tool.Flutes,
				a.Tool.Material)
			w.comment("rpm %s feed %s doc %s woc %s passes %d",
				swarffmt.SprintFloat(a.Params.RPM, 0),
				swarffmt.SprintFloat(a.Params.Feed, 1),
				swarffmt.SprintFloat(a.Params.DOC, 4),
				swarffmt.SprintFloat(a.Params.WOC, 4),
				a.Params.Passes)
		}
		for _, d := range diags {
			if d.Activation == i {
				w.comment("%s: %s", d.Severity, d.Msg)
			}
		}

		w.code("S%.0f M03", a.Params.RPM)
		if program.Coolant && !coolantOn {
			w.code("M08")
			coolantOn = true
		}

		if ladder, ok := drillLadder(a); ok && g.profile.CannedCycles == RetainCycles {
			g.cycle(w, ladder)
		} else {
			g.moves(w, a.Moves)
		}
	}

	if coolantOn {
		w.code("M09")
	}
	w.code("M05")
	w.code("M30")

	for _, footer := range g.profile.FooterLines {
		w.verbatim(footer)
	}

	return g.render(w.lines)
}

func (g *Generator) render(lines []line) string {
	var sb strings.Builder
	n := numberStep
	for _, l := range lines {
		if g.profile.LineNumbering && !l.raw {
			fmt.Fprintf(&sb, "N%04d ", n)
			n += numberStep
		}
		sb.WriteString(l.text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Generator) moves(w *writer, moves []compile.Move) {
	for _, m := range moves {
		switch m.Kind {
		case compile.Rapid:
			w.code("G00 X%.4f Y%.4f Z%.4f", m.X, m.Y, m.Z)
		case compile.Linear:
			w.code("G01 X%.4f Y%.4f Z%.4f F%.1f", m.X, m.Y, m.Z, m.Feed)
		case compile.ArcCW:
			w.code("G02 X%.4f Y%.4f Z%.4f I%.4f J%.4f F%.1f", m.X, m.Y, m.Z, m.I, m.J, m.Feed)
		case compile.ArcCCW:
			w.code("G03 X%.4f Y%.4f Z%.4f I%.4f J%.4f F%.1f", m.X, m.Y, m.Z, m.I, m.J, m.Feed)
		case compile.Dwell:
			w.code("G04 P%.1f", m.P)
		}
	}
}

func (g *Generator) cycle(w *writer, ladder drillMoves) {
	w.code("G00 X%.4f Y%.4f Z%.4f", ladder.x, ladder.y, ladder.retract)
	if len(ladder.depths) == 1 {
		w.code("G81 X%.4f Y%.4f Z%.4f R%.4f F%.1f",
			ladder.x, ladder.y, ladder.depths[0], ladder.retract, ladder.feed)
	} else {
		w.code("G83 X%.4f Y%.4f Z%.4f R%.4f Q%.4f F%.1f",
			ladder.x, ladder.y, ladder.depths[len(ladder.depths)-1],
			ladder.retract, ladder.firstIncrement, ladder.feed)
	}
	w.code("G80")
}

func (g *Generator) summary(w *writer, program *compile.Program) {
	w.comment("swarf post: %s", g.profile.Name)
	if program.Material != "" {
		w.comment("material: %s", program.Material)
	}
	w.comment("units: %s", program.Units)
	w.comment("operations: %d", len(program.Activations))
}

// drillMoves is a recognized plunge/retract ladder: every move at one
// XY position, alternating plunges and retracts to a fixed plane.
type drillMoves struct {
	x, y           float64
	retract        float64
	depths         []float64
	firstIncrement float64
	feed           float64
}

const ladderEps = 1e-9

// drillLadder recognizes activations whose moves are structurally a
// drill cycle so profiles that retain canned cycles can re-collapse
// them. Recognition is structural only: nothing about the originating
// operation survives to this stage.
func drillLadder(a compile.Activation) (drillMoves, bool) {
	var ladder drillMoves
	if len(a.Moves) < 3 || len(a.Moves)%2 == 0 {
		return ladder, false
	}
	first := a.Moves[0]
	if first.Kind != compile.Rapid {
		return ladder, false
	}
	ladder.x, ladder.y, ladder.retract = first.X, first.Y, first.Z

	for i := 1; i < len(a.Moves); i += 2 {
		plunge, retract := a.Moves[i], a.Moves[i+1]
		if plunge.Kind != compile.Linear || retract.Kind != compile.Rapid {
			return ladder, false
		}
		if !sameXY(plunge, first) || !sameXY(retract, first) {
			return ladder, false
		}
		if retract.Z != ladder.retract {
			return ladder, false
		}
		if len(ladder.depths) > 0 && plunge.Z >= ladder.depths[len(ladder.depths)-1]-ladderEps {
			return ladder, false
		}
		ladder.depths = append(ladder.depths, plunge.Z)
		ladder.feed = plunge.Feed
	}
	ladder.firstIncrement = a.TopZ - ladder.depths[0]
	return ladder, true
}

func sameXY(a, b compile.Move) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx < ladderEps && dx > -ladderEps && dy < ladderEps && dy > -ladderEps
}
