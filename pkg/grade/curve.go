package grade

import(
	"sort"

	"github.com/scanlight/filmdev/pkg/fmath"
)

// The curve engine fits a monotone cubic Hermite spline (the
// Fritsch-Carlson construction) through the user's control points and
// bakes it to a 256-entry table. Monotone matters: a plain cubic
// spline overshoots between close points, which shows up as banding
// and halos in a graded image. Fritsch-Carlson zeroes the tangent at
// any local extremum and harmonically blends secants elsewhere, so
// monotone control points always give a monotone table.

// BuildCurveLUT bakes one control point list into a table. Fewer than
// two points means "no curve" and yields the identity table. Levels
// outside the control domain clamp to the boundary point's y value -
// deliberate, since the spline has no business extrapolating.
func BuildCurveLUT(pts []Point) LUT {
	if len(pts) < 2 {
		return IdentityLUT()
	}

	sorted := make([]Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	n := len(sorted)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range sorted {
		xs[i] = p.X
		ys[i] = p.Y
	}

	tangents := fritschCarlsonTangents(xs, ys)

	var lut LUT
	for i := 0; i < 256; i++ {
		x := float64(i)
		lut[i] = fmath.RoundLevel(evalHermite(xs, ys, tangents, x))
	}
	return lut
}

// fritschCarlsonTangents computes one tangent per control point.
// Interior tangents are zero where the adjacent secants change sign
// (or either is zero), otherwise a weighted harmonic mean of the two
// secants; the endpoints take the adjacent secant.
func fritschCarlsonTangents(xs, ys []float64) []float64 {
	n := len(xs)

	h := make([]float64, n-1) // interval widths
	s := make([]float64, n-1) // secant slopes
	for i := 0; i < n-1; i++ {
		h[i] = xs[i+1] - xs[i]
		if h[i] == 0 {
			// duplicate x; treat as flat rather than divide by zero
			s[i] = 0
		} else {
			s[i] = (ys[i+1] - ys[i]) / h[i]
		}
	}

	m := make([]float64, n)
	m[0] = s[0]
	m[n-1] = s[n-2]

	for i := 1; i < n-1; i++ {
		if s[i-1]*s[i] <= 0 {
			m[i] = 0
			continue
		}
		w1 := 2.0*h[i] + h[i-1]
		w2 := h[i] + 2.0*h[i-1]
		m[i] = (w1 + w2) / (w1/s[i-1] + w2/s[i])
	}

	return m
}

// evalHermite evaluates the spline at x, with flat extrapolation
// outside [xs[0], xs[n-1]].
func evalHermite(xs, ys, m []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}

	// find the containing segment
	seg := sort.SearchFloat64s(xs, x) - 1
	if seg < 0 {
		seg = 0
	}
	if seg > n-2 {
		seg = n - 2
	}

	h := xs[seg+1] - xs[seg]
	if h == 0 {
		return ys[seg]
	}
	t := (x - xs[seg]) / h

	t2 := t * t
	t3 := t2 * t
	h00 := 2.0*t3 - 3.0*t2 + 1.0
	h10 := t3 - 2.0*t2 + t
	h01 := -2.0*t3 + 3.0*t2
	h11 := t3 - t2

	return h00*ys[seg] + h10*h*m[seg] + h01*ys[seg+1] + h11*h*m[seg+1]
}

// channelLUTs holds the three baked per-channel tables.
type channelLUTs struct {
	r LUT
	g LUT
	b LUT
}

// BuildChannelLUTs bakes the four curves down to three tables. The
// master (RGB) curve shapes global contrast and applies to every
// channel first; each channel's own curve then corrects on top of the
// already-master-corrected value. Folding master into each channel
// table keeps the per-pixel cost at one lookup per channel.
func buildChannelLUTs(c CurveParams) channelLUTs {
	c.Coerce()
	master := BuildCurveLUT(c.RGB)
	return channelLUTs{
		r: BuildCurveLUT(c.Red).Compose(master),
		g: BuildCurveLUT(c.Green).Compose(master),
		b: BuildCurveLUT(c.Blue).Compose(master),
	}
}
