package grade

import(
	"math"

	"github.com/scanlight/filmdev/pkg/fmath"
)

// White balance. Two gain models coexist: the physical Kelvin model
// (the default) and the old "legacy" linear model, kept so stored
// presets keep rendering the same and because the auto-WB solver
// inverts it algebraically.

const (
	WBModelKelvin = "kelvin"
	WBModelLegacy = "legacy"

	// Final gains are clamped here, whatever the model says
	GainMin = 0.05
	GainMax = 50.0

	kelvinReference   = 6500.0 // D65
	kelvinPerUnitDflt = 30.0   // Temp slider unit -> Kelvin
)

// Gains are multiplicative per-channel white balance corrections.
type Gains struct {
	R float64
	G float64
	B float64
}

func (g Gains)IsNeutral() bool {
	return g.R == 1.0 && g.G == 1.0 && g.B == 1.0
}

// Gains computes the final per-channel gains for these parameters:
// the selected temp/tint model's output, multiplied by the base gains.
func (w WBParams)Gains() Gains {
	w.Coerce()

	var g Gains
	switch w.Model {
	case WBModelLegacy:
		g = legacyGains(w.Temp, w.Tint)
	default:
		g = kelvinGains(w.Temp, w.Tint, w.kelvinPerUnit())
	}

	g.R = clampGain(g.R * w.Red)
	g.G = clampGain(g.G * w.Green)
	g.B = clampGain(g.B * w.Blue)
	return g
}

func (w WBParams)kelvinPerUnit() float64 {
	if w.KelvinPerUnit > 0 {
		return w.KelvinPerUnit
	}
	return kelvinPerUnitDflt
}

func clampGain(v float64) float64 {
	return fmath.Clamp(fmath.FiniteOr(v, 1.0), GainMin, GainMax)
}

// kelvinGains corrects the image toward the D65 reference: the target
// temperature's blackbody color is divided out, channel by channel.
// A positive Temp slider raises the target Kelvin, which boosts red
// relative to blue - the image warms, matching slider convention.
func kelvinGains(temp, tint, kPerUnit float64) Gains {
	target := kelvinReference + temp*kPerUnit
	refR, refG, refB := kelvinToRGB(kelvinReference)
	tgtR, tgtG, tgtB := kelvinToRGB(target)

	g := Gains{R: refR / tgtR, G: refG / tgtG, B: refB / tgtB}

	t := tint / 100.0
	g.R *= 1.0 + 0.15*t
	g.G *= 1.0 - 0.30*t
	g.B *= 1.0 + 0.15*t
	return g
}

// kelvinToRGB approximates the color of a blackbody radiator as unit
// RGB, valid over [1000K, 40000K]. This is the well known piecewise
// polynomial/log fit to the Planckian locus (Tanner Helland's
// coefficients), computed in the 0-255 domain it was fitted in and
// scaled down at the end.
func kelvinToRGB(kelvin float64) (r, g, b float64) {
	k := fmath.Clamp(kelvin, 1000.0, 40000.0) / 100.0

	if k <= 66.0 {
		r = 255.0
	} else {
		r = 329.698727446 * math.Pow(k-60.0, -0.1332047592)
	}

	if k <= 66.0 {
		g = 99.4708025861*math.Log(k) - 161.1195681661
	} else {
		g = 288.1221695283 * math.Pow(k-60.0, -0.0755148492)
	}

	if k >= 66.0 {
		b = 255.0
	} else if k <= 19.0 {
		b = 0.0
	} else {
		b = 138.5177312231*math.Log(k-10.0) - 305.0447927307
	}

	r = fmath.Clamp(r, 0.0, 255.0) / 255.0
	g = fmath.Clamp(g, 0.0, 255.0) / 255.0
	b = fmath.Clamp(b, 0.0, 255.0) / 255.0
	return
}

// Legacy model coefficients. Red and blue move against each other
// with temp; tint trades green against red+blue, same weights the
// kelvin model uses for its tint trim.
const (
	legacyTempCoef = 0.4
	legacyTintCoef = 0.15
)

// legacyGains is the old direct linear model: gains are a linear
// combination of the normalized sliders. It is deliberately trivial
// to invert - see SolveNeutral.
func legacyGains(temp, tint float64) Gains {
	tN := temp / 100.0
	tiN := tint / 100.0

	return Gains{
		R: 1.0 + legacyTempCoef*tN + legacyTintCoef*tiN,
		G: 1.0 - 2.0*legacyTintCoef*tiN,
		B: 1.0 - legacyTempCoef*tN + legacyTintCoef*tiN,
	}
}
