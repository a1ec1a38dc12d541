package grade

import(
	"math"

	"github.com/scanlight/filmdev/pkg/fmath"
)

// Auto white balance: the user clicks a pixel they know is neutral,
// and we estimate the Temp/Tint cast present in it by algebraically
// inverting the legacy gain model. The result feeds back into
// WBParams (with Model = legacy, so the forward pass reproduces the
// estimate exactly).

// neutralTolerance is how far a channel ratio may sit from 1.0 before
// we bother solving. Inside this band the pixel already reads as
// neutral and we return a zero adjustment.
const neutralTolerance = 0.02

// SolveNeutral estimates the temp/tint cast in a sampled pixel
// assumed to be neutral. Channel values are in the [0,255] domain
// (floats, so callers may average a patch). Existing base gains are
// divided out first so the estimate only covers what they don't.
//
// If the solved values imply extreme gains (any channel under 0.1 or
// over 10) the correction is halved and accepted rather than refused:
// a too-small correction on a wild sample beats no correction.
func SolveNeutral(r, g, b float64, base Gains) (temp, tint float64) {
	r = fmath.FiniteOr(r, 0.0)
	g = fmath.FiniteOr(g, 0.0)
	b = fmath.FiniteOr(b, 0.0)
	if r <= 0 || g <= 0 || b <= 0 {
		return 0, 0
	}
	if base.R <= 0 || base.G <= 0 || base.B <= 0 {
		base = Gains{R: 1, G: 1, B: 1}
	}

	// ratios vs green, with the base gains' contribution removed
	dr := (r / base.R) / (g / base.G)
	db := (b / base.B) / (g / base.G)

	if math.Abs(dr-1.0) < neutralTolerance && math.Abs(db-1.0) < neutralTolerance {
		return 0, 0
	}

	// Invert the legacy model. With u = tempCoef*tN, v = tintCoef*tiN
	// the model's channel ratios are
	//	dr = (1+u+v)/(1-2v),  db = (1-u+v)/(1-2v)
	// whose sum and difference separate v and u cleanly.
	s := dr + db
	v := (s - 2.0) / (2.0*s + 2.0)
	u := (dr - db) * (1.0 - 2.0*v) / 2.0

	temp = fmath.Clamp(100.0*u/legacyTempCoef, -100.0, 100.0)
	tint = fmath.Clamp(100.0*v/legacyTintCoef, -100.0, 100.0)

	// Sanity check against the forward model; halve rather than fail
	if gains := legacyGains(temp, tint); extremeGain(gains) {
		temp /= 2.0
		tint /= 2.0
	}

	return temp, tint
}

func extremeGain(g Gains) bool {
	for _, v := range []float64{g.R, g.G, g.B} {
		if v < 0.1 || v > 10.0 {
			return true
		}
	}
	return false
}
