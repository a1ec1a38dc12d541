package grade

import(
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/scanlight/filmdev/pkg/fmath"
)

// Hue-sector HSL adjustment. The hue wheel is carved into eight named
// sectors; each has its own hue/saturation/luminance sliders, and a
// pixel is influenced by a sector in proportion to how close its hue
// sits to the sector center. The falloff is a raised cosine, so there
// is no hard edge anywhere on the wheel - a pixel drifting across a
// sector boundary picks up the neighboring sector's influence
// smoothly, which is what prevents banding.

type hueSector struct {
	name      string
	center    float64 // degrees
	halfWidth float64 // degrees; weight is zero at and beyond this distance
}

// The canonical sector table. Constructed once; nothing mutates it.
// Order must match HSLParams.sectors().
var hueSectors = [8]hueSector{
	{"red", 0, 45},
	{"orange", 30, 45},
	{"yellow", 60, 45},
	{"green", 120, 45},
	{"cyan", 180, 45},
	{"blue", 240, 45},
	{"purple", 285, 45},
	{"magenta", 330, 45},
}

// SectorNames lists the canonical sector names in wheel order.
func SectorNames() []string {
	names := make([]string, len(hueSectors))
	for i, s := range hueSectors {
		names[i] = s.name
	}
	return names
}

// hueDistance is circular: 350 and 10 degrees are 20 apart, not 340.
func hueDistance(h1, h2 float64) float64 {
	d := math.Abs(h1 - h2)
	if d > 180.0 {
		d = 360.0 - d
	}
	return d
}

// sectorWeight is the raised-cosine falloff: 1 at the center, 0 at
// the half-width, smooth everywhere between.
func sectorWeight(dist, halfWidth float64) float64 {
	if dist >= halfWidth {
		return 0.0
	}
	return 0.5 * (1.0 + math.Cos(math.Pi*dist/halfWidth))
}

// grayThreshold: below this saturation a pixel has no meaningful hue,
// so hue/sat adjustments are skipped and only luminance (at half its
// usual strength) applies.
const grayThreshold = 0.05

// ApplyHSL applies the sector adjustments to one 8-bit RGB pixel.
func ApplyHSL(r, g, b uint8, p HSLParams) (uint8, uint8, uint8) {
	if p.IsIdentity() {
		return r, g, b
	}

	c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	h, s, l := c.Hsl()

	adj := p.sectors()

	// Accumulate each sector's weighted contribution. If the total
	// weight tops 1.0 (overlapping sectors), normalize: a pixel can
	// never be corrected harder than "fully inside one sector".
	var hueAcc, satAcc, lumAcc, wTotal float64
	for i, sec := range hueSectors {
		w := sectorWeight(hueDistance(h, sec.center), sec.halfWidth)
		if w == 0.0 {
			continue
		}
		hueAcc += w * adj[i].Hue
		satAcc += w * adj[i].Saturation / 100.0
		lumAcc += w * adj[i].Luminance / 100.0
		wTotal += w
	}
	if wTotal == 0.0 {
		return r, g, b
	}
	if wTotal > 1.0 {
		hueAcc /= wTotal
		satAcc /= wTotal
		lumAcc /= wTotal
	}

	if s < grayThreshold {
		// Near-gray: hue is meaningless and a saturation push would
		// invent color from noise. Luminance still applies.
		l = blendDelta(l, lumAcc*0.5)
		return splitRGB(colorful.Hsl(h, s, l))
	}

	h = math.Mod(h+hueAcc+360.0, 360.0)
	s = fmath.Clamp01(blendDelta(s, satAcc))
	l = fmath.Clamp01(blendDelta(l, lumAcc*0.5))

	return splitRGB(colorful.Hsl(h, s, l))
}

// blendDelta pushes a unit value by a signed delta: screen-like
// toward 1 for positive deltas (so it saturates gently instead of
// clipping), multiply-like toward 0 for negative ones.
func blendDelta(v, delta float64) float64 {
	if delta > 0.0 {
		return v + (1.0-v)*delta
	}
	return v * (1.0 + delta)
}

func splitRGB(c colorful.Color) (uint8, uint8, uint8) {
	return fmath.RoundByte(c.R), fmath.RoundByte(c.G), fmath.RoundByte(c.B)
}
