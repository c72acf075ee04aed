package blackbook

import "math"

// rpmConstant converts surface feet per minute to spindle RPM for a
// diameter in inches (12/pi, rounded as machinists do).
const rpmConstant = 3.82

// Tool is the geometry the derivation formulas need. Diameter is always
// in inches here; unit conversion happens in the caller.
type Tool struct {
	DiameterIn float64
	Flutes     int
	Material   ToolMaterial
	MaxRPM     float64 // 0 means no spindle limit
}

// CuttingParameters is the derived result for one tool activation.
// Passes is filled in by the toolpath generator once the total depth is
// known.
type CuttingParameters struct {
	RPM         float64
	FeedIPM     float64
	ChipLoadIPT float64
	SFM         float64
	DOC         float64
	WOC         float64
	Passes      int
}

// SFMFor selects the surface speed range for a tool substrate. Ceramic
// falls back to carbide numbers for materials without ceramic data.
func (m *MaterialData) SFMFor(tm ToolMaterial) SFM {
	switch tm {
	case HSS:
		return m.SFMHSS
	case Cobalt:
		return m.SFMCobalt
	case CoatedCarbide:
		return m.SFMCoated
	case Ceramic:
		if m.SFMCeramic != nil {
			return *m.SFMCeramic
		}
	}
	return m.SFMCarbide
}

// ChipLoad reads the diameter-indexed chip load table, interpolating
// linearly between the standard sizes. Diameters beyond the table clamp
// to the nearest entry.
func (m *MaterialData) ChipLoad(diameterIn float64, tm ToolMaterial) float64 {
	var table *[8]float64
	switch tm {
	case HSS, Cobalt:
		table = &m.ChipLoadsHSS
	default:
		table = &m.ChipLoadsCarbide
	}

	closest := 0
	closestDiff := math.Inf(1)
	for i, dia := range ToolDiameters {
		diff := math.Abs(dia - diameterIn)
		if diff < closestDiff {
			closestDiff = diff
			closest = i
		}
	}

	if closest < len(ToolDiameters)-1 && diameterIn > ToolDiameters[closest] {
		low, high := ToolDiameters[closest], ToolDiameters[closest+1]
		pct := (diameterIn - low) / (high - low)
		return table[closest] + (table[closest+1]-table[closest])*pct
	}
	return table[closest]
}

// ThinningFactor is the chip thinning compensation applied when radial
// engagement drops below 50%: effective chip thickness falls with
// sqrt(engagement), so the programmed chip load rises by the inverse,
// capped at 3x below 10% engagement.
func ThinningFactor(engagementPct float64) float64 {
	switch {
	case engagementPct >= 50:
		return 1.0
	case engagementPct >= 10:
		return 1.0 / math.Sqrt(engagementPct/100.0)
	default:
		return 3.0
	}
}

// roughing derate applied to the handbook DOC ceiling; halved again for
// materials that punish dwelling (work hardening, heat buildup).
const roughFactor = 0.5

func (m *MaterialData) hazardous() bool {
	switch m.Category {
	case StainlessAustenitic, Titanium, HighTempAlloy:
		return true
	}
	return false
}

// WorkHardening reports whether the material hardens under a rubbing
// tool, which makes slow feeds actively dangerous.
func (m *MaterialData) WorkHardening() bool {
	return m.hazardous()
}

// Compute derives cutting parameters for a material/tool pair at the
// material's recommended radial engagement.
//
//	rpm  = clamp(3.82 * sfm_rec / dia, 0, tool max)
//	feed = rpm * flutes * ipt * thinning
//	doc  = dia * max_doc_ratio * rough_factor
//	woc  = dia * engagement / 100
func (bb *BlackBook) Compute(materialName string, tool Tool) (CuttingParameters, error) {
	var params CuttingParameters

	if tool.DiameterIn <= 0 {
		return params, &InvalidDiameterError{Diameter: tool.DiameterIn}
	}
	material, err := bb.Lookup(materialName)
	if err != nil {
		return params, err
	}

	sfm := material.SFMFor(tool.Material)
	rpm := rpmConstant * sfm.Rec / tool.DiameterIn
	if tool.MaxRPM > 0 && rpm > tool.MaxRPM {
		rpm = tool.MaxRPM
	}

	thinning := ThinningFactor(material.EngagementPct)
	ipt := material.ChipLoad(tool.DiameterIn, tool.Material) * thinning

	doc := tool.DiameterIn * material.MaxDOCRatio * roughFactor
	if material.hazardous() {
		doc /= 2
	}

	params.RPM = rpm
	params.FeedIPM = rpm * float64(tool.Flutes) * ipt
	params.ChipLoadIPT = ipt
	params.SFM = rpm * tool.DiameterIn / rpmConstant
	params.DOC = doc
	params.WOC = tool.DiameterIn * material.EngagementPct / 100.0
	return params, nil
}

// PassCount is ceil(depth/doc), never less than one for positive depth.
func PassCount(depth, doc float64) int {
	if depth <= 0 || doc <= 0 {
		return 0
	}
	return int(math.Ceil(depth / doc))
}
