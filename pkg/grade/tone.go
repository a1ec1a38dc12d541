package grade

import(
	"math"

	"github.com/scanlight/filmdev/pkg/fmath"
)

// BuildToneLUT bakes the six tone sliders into a single 256-entry
// table. All the math runs in a normalized [0,1] domain, per input
// level, in a fixed order:
//
//	exposure gain -> contrast pivot -> black/white point remap ->
//	shadow lift -> highlight recovery -> clamp/round
//
// Exposure is stop-based: +50 on the slider is one stop. Contrast
// pivots about mid-gray using the standard 259-factor curve. Shadow
// and highlight corrections are cubic bumps weighted toward their end
// of the range, so they fade to nothing at both extremes and can't
// push a level past its neighbors hard enough to posterize.
func BuildToneLUT(t ToneParams) LUT {
	t.Coerce()

	gain := math.Exp2(t.Exposure / 50.0)
	factor := 259.0 * (t.Contrast + 255.0) / (255.0 * (259.0 - t.Contrast))
	black := -t.Blacks * 0.002
	white := 1.0 - t.Whites*0.002

	var lut LUT
	for i := 0; i < 256; i++ {
		v := float64(i) / 255.0

		v *= gain
		v = (v-0.5)*factor + 0.5

		if white != black {
			v = (v - black) / (white - black)
		}

		v += (t.Shadows * 0.005) * (1.0 - v) * (1.0 - v) * v * 4.0
		v += (t.Highlights * 0.005) * v * v * (1.0 - v) * 4.0

		lut[i] = fmath.RoundByte(v)
	}
	return lut
}
