// Package validate inspects a compiled program for physics problems the
// compiler cannot reject outright: rubbing feeds in work-hardening
// materials, excessive tool deflection, reach shortfalls and spindle or
// feed limits. Warnings annotate the output; errors block it.
package validate

import (
	"fmt"

	"github.com/FuturePresentLabs/swarf/blackbook"
	"github.com/FuturePresentLabs/swarf/compile"
	"github.com/FuturePresentLabs/swarf/dsl"
)

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one finding against one tool activation.
type Diagnostic struct {
	Severity   Severity
	Activation int
	Tool       string
	Msg        string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: op %d (%s): %s", d.Severity, d.Activation+1, d.Tool, d.Msg)
}

// Limits are the machine envelope the program must fit. Zero values
// leave the built-in spindle table and no feed ceiling in effect.
type Limits struct {
	MaxRPM  float64
	MaxFeed float64
}

const (
	// feeds below this many diameters per minute rub instead of cutting
	// in work-hardening materials
	workHardenFeedPerDia = 20.0
	// stickout-to-diameter ratios beyond these deflect too much
	deflectionWarnRatio  = 4.0
	deflectionErrorRatio = 6.0
	// default stickout assumption when the tool record has none
	defaultStickoutRatio = 3.0
	// flute length must exceed the cut depth by this much (inches)
	reachMargin = 0.1
)

// spindleCeiling is the default spindle limit by tool diameter in
// inches. Small tools tolerate high RPM, large ones do not.
func spindleCeiling(diameterIn float64) float64 {
	switch {
	case diameterIn <= 0.0625:
		return 40000
	case diameterIn <= 0.125:
		return 30000
	case diameterIn <= 0.25:
		return 20000
	case diameterIn <= 0.375:
		return 15000
	case diameterIn <= 0.5:
		return 12000
	case diameterIn <= 0.75:
		return 8000
	case diameterIn <= 1.0:
		return 6000
	}
	return 4000
}

// Check runs every rule against every activation and returns all
// findings in program order.
func Check(book *blackbook.BlackBook, program *compile.Program, limits Limits) []Diagnostic {
	var material *blackbook.MaterialData
	if program.Material != "" {
		if m, err := book.Lookup(program.Material); err == nil {
			material = m
		}
	}

	scale := 1.0
	if program.Units == dsl.UnitsMM {
		scale = 25.4
	}

	var diags []Diagnostic
	for i, a := range program.Activations {
		add := func(severity Severity, format string, args ...any) {
			diags = append(diags, Diagnostic{
				Severity:   severity,
				Activation: i,
				Tool:       a.Tool.Name,
				Msg:        fmt.Sprintf(format, args...),
			})
		}

		dia := a.Tool.Diameter
		diaIn := dia / scale

		if material != nil && material.WorkHardening() && a.Params.Feed > 0 {
			if a.Params.Feed < workHardenFeedPerDia*dia {
				add(SeverityWarning,
					"feed %.1f is below %.1f for %s: risks work hardening, keep the tool moving",
					a.Params.Feed, workHardenFeedPerDia*dia, material.Name)
			}
		}

		stickout := a.Tool.Stickout
		if stickout <= 0 {
			stickout = defaultStickoutRatio * dia
		}
		ratio := stickout / dia
		switch {
		case ratio > deflectionErrorRatio:
			add(SeverityError,
				"stickout %.3f is %.1f diameters: deflection makes this cut unsafe", stickout, ratio)
		case ratio > deflectionWarnRatio:
			add(SeverityWarning,
				"stickout %.3f is %.1f diameters: expect deflection and chatter", stickout, ratio)
		}

		depth := a.MaxDepth()
		if a.Tool.Length > 0 && a.Tool.Length < depth+reachMargin*scale {
			add(SeverityError,
				"flute length %.3f cannot reach depth %.3f", a.Tool.Length, depth)
		}

		if a.Tool.MaxRPM > 0 && a.Params.RPM > a.Tool.MaxRPM {
			add(SeverityError,
				"%.0f RPM exceeds the tool's rated %.0f", a.Params.RPM, a.Tool.MaxRPM)
		}
		maxRPM := limits.MaxRPM
		if maxRPM <= 0 {
			maxRPM = spindleCeiling(diaIn)
		}
		if a.Params.RPM > maxRPM {
			add(SeverityError,
				"%.0f RPM exceeds the %.0f spindle limit for a %.4f tool", a.Params.RPM, maxRPM, dia)
		}

		if limits.MaxFeed > 0 && a.Params.Feed > limits.MaxFeed {
			add(SeverityError,
				"feed %.1f exceeds the machine limit %.1f", a.Params.Feed, limits.MaxFeed)
		}
	}
	return diags
}

// HasErrors reports whether any finding is severe enough to block
// G-code output.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
