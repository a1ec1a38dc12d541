package grade

import(
	"github.com/scanlight/filmdev/pkg/cube"
	"github.com/scanlight/filmdev/pkg/fmath"
)

// The parameter model for one graded frame. Each sub-struct is an
// independent group of sliders; the Developer diffs sub-structs
// between renders to decide which lookup tables need a rebuild, so
// nothing in here may be mutated mid-render.
//
// Every field has a documented range and an identity default. A
// bundle with every field at its default leaves pixels unchanged.

// ToneParams feed the tone curve LUT. All six are slider values,
// nominally [-100,100] (Exposure is allowed to exceed that), 0 = no-op.
type ToneParams struct {
	Exposure   float64
	Contrast   float64
	Highlights float64
	Shadows    float64
	Whites     float64
	Blacks     float64
}

// WBParams hold the white balance controls: base per-channel gains
// (default 1.0), plus a Temp/Tint adjustment in [-100,100] on top.
// Model picks the gain model, "kelvin" (physical) or "legacy" (the
// old linear one, still used by stored presets and the auto-WB
// solver).
type WBParams struct {
	Red   float64
	Green float64
	Blue  float64
	Temp  float64
	Tint  float64
	Model string

	// KelvinPerUnit is how many Kelvin one Temp slider unit is worth.
	// Zero means the default (30K/unit, so the slider spans 3500K-9500K).
	KelvinPerUnit float64 `yaml:"kelvinperunit,omitempty"`
}

// A Point is one curve control point, both axes in the [0,255] level domain.
type Point struct {
	X float64
	Y float64
}

// CurveParams hold the four control point lists. RGB is the master
// curve, applied to all channels before each channel's own curve.
type CurveParams struct {
	RGB   []Point `yaml:"rgb,omitempty"`
	Red   []Point `yaml:"red,omitempty"`
	Green []Point `yaml:"green,omitempty"`
	Blue  []Point `yaml:"blue,omitempty"`
}

// SectorAdjust is the hue/sat/lum correction for one hue sector.
// Hue is a shift in degrees [-180,180]; Saturation and Luminance are
// slider values [-100,100]. All default 0.
type SectorAdjust struct {
	Hue        float64
	Saturation float64
	Luminance  float64
}

// HSLParams carry one SectorAdjust per canonical hue sector.
type HSLParams struct {
	Red     SectorAdjust
	Orange  SectorAdjust
	Yellow  SectorAdjust
	Green   SectorAdjust
	Cyan    SectorAdjust
	Blue    SectorAdjust
	Purple  SectorAdjust
	Magenta SectorAdjust
}

// A Look is one externally authored 3D cube plus its blend weight.
// Intensity is in [0,1], default 1. A nil Cube is an absent look.
type Look struct {
	Cube      *cube.Cube `yaml:"-"`
	File      string     // where the cube came from; presets reference by filename
	Intensity float64
}

// LookParams hold up to two stacked looks.
type LookParams struct {
	Looks []Look `yaml:"looks,omitempty"`
}

// Adjustments is the complete parameter bundle for one frame.
type Adjustments struct {
	Tone   ToneParams
	WB     WBParams
	Curves CurveParams
	HSL    HSLParams
	Look   LookParams
}

func NewAdjustments() Adjustments {
	return Adjustments{
		WB: WBParams{Red: 1.0, Green: 1.0, Blue: 1.0, Model: WBModelKelvin},
	}
}

// --- identity predicates, used by the Developer to elide whole stages

func (t ToneParams)IsIdentity() bool {
	return t == ToneParams{}
}

func (w WBParams)IsIdentity() bool {
	return w.Red == 1.0 && w.Green == 1.0 && w.Blue == 1.0 && w.Temp == 0.0 && w.Tint == 0.0
}

func (c CurveParams)IsIdentity() bool {
	// A curve with fewer than 2 points bakes to the identity table
	return len(c.RGB) < 2 && len(c.Red) < 2 && len(c.Green) < 2 && len(c.Blue) < 2
}

func (h HSLParams)IsIdentity() bool {
	return h == HSLParams{}
}

func (l LookParams)IsIdentity() bool {
	for _, lk := range l.Looks {
		if lk.Cube != nil && lk.Intensity > 0.0 {
			return false
		}
	}
	return true
}

func (a Adjustments)IsIdentity() bool {
	return a.Tone.IsIdentity() && a.WB.IsIdentity() && a.Curves.IsIdentity() &&
		a.HSL.IsIdentity() && a.Look.IsIdentity()
}

// --- coercion: out-of-range or non-finite values become the default.
// This is an interactive editing surface; a broken slider value must
// degrade, never crash or NaN-fill the render.

func (t *ToneParams)Coerce() {
	t.Exposure = fmath.BoundedOr(t.Exposure, -400.0, 400.0, 0.0)
	t.Contrast = fmath.BoundedOr(t.Contrast, -100.0, 100.0, 0.0)
	t.Highlights = fmath.BoundedOr(t.Highlights, -100.0, 100.0, 0.0)
	t.Shadows = fmath.BoundedOr(t.Shadows, -100.0, 100.0, 0.0)
	t.Whites = fmath.BoundedOr(t.Whites, -100.0, 100.0, 0.0)
	t.Blacks = fmath.BoundedOr(t.Blacks, -100.0, 100.0, 0.0)
}

func (w *WBParams)Coerce() {
	w.Red = fmath.BoundedOr(w.Red, GainMin, GainMax, 1.0)
	w.Green = fmath.BoundedOr(w.Green, GainMin, GainMax, 1.0)
	w.Blue = fmath.BoundedOr(w.Blue, GainMin, GainMax, 1.0)
	w.Temp = fmath.BoundedOr(w.Temp, -100.0, 100.0, 0.0)
	w.Tint = fmath.BoundedOr(w.Tint, -100.0, 100.0, 0.0)
	w.KelvinPerUnit = fmath.BoundedOr(w.KelvinPerUnit, 0.0, 300.0, 0.0)
	if w.Model != WBModelLegacy {
		w.Model = WBModelKelvin
	}
}

func coercePoints(pts []Point) []Point {
	out := pts[:0]
	for _, p := range pts {
		p.X = fmath.BoundedOr(p.X, 0.0, 255.0, 0.0)
		p.Y = fmath.BoundedOr(p.Y, 0.0, 255.0, 0.0)
		out = append(out, p)
	}
	return out
}

func (c *CurveParams)Coerce() {
	c.RGB = coercePoints(c.RGB)
	c.Red = coercePoints(c.Red)
	c.Green = coercePoints(c.Green)
	c.Blue = coercePoints(c.Blue)
}

func (s *SectorAdjust)Coerce() {
	s.Hue = fmath.BoundedOr(s.Hue, -180.0, 180.0, 0.0)
	s.Saturation = fmath.BoundedOr(s.Saturation, -100.0, 100.0, 0.0)
	s.Luminance = fmath.BoundedOr(s.Luminance, -100.0, 100.0, 0.0)
}

func (h *HSLParams)Coerce() {
	h.Red.Coerce()
	h.Orange.Coerce()
	h.Yellow.Coerce()
	h.Green.Coerce()
	h.Cyan.Coerce()
	h.Blue.Coerce()
	h.Purple.Coerce()
	h.Magenta.Coerce()
}

func (l *LookParams)Coerce() {
	for i := range l.Looks {
		l.Looks[i].Intensity = fmath.BoundedOr(l.Looks[i].Intensity, 0.0, 1.0, 1.0)
	}
}

func (a *Adjustments)Coerce() {
	a.Tone.Coerce()
	a.WB.Coerce()
	a.Curves.Coerce()
	a.HSL.Coerce()
	a.Look.Coerce()
}

// sectors returns the per-sector adjustments in the same order as the
// canonical sector table in hsl.go.
func (h HSLParams)sectors() [8]SectorAdjust {
	return [8]SectorAdjust{
		h.Red, h.Orange, h.Yellow, h.Green, h.Cyan, h.Blue, h.Purple, h.Magenta,
	}
}
