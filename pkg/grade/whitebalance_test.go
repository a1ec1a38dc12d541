package grade

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGainsDefaultIsNeutral(t *testing.T) {
	for _, model := range []string{WBModelKelvin, WBModelLegacy} {
		w := WBParams{Red: 1, Green: 1, Blue: 1, Model: model}
		assert.Equal(t, Gains{R: 1, G: 1, B: 1}, w.Gains(), model)
		assert.True(t, w.IsIdentity())
	}
}

func TestGainsAlwaysBoundedAndFinite(t *testing.T) {
	for _, model := range []string{WBModelKelvin, WBModelLegacy} {
		for temp := -100.0; temp <= 100.0; temp += 20.0 {
			for tint := -100.0; tint <= 100.0; tint += 20.0 {
				g := WBParams{Red: 1, Green: 1, Blue: 1, Temp: temp, Tint: tint, Model: model}.Gains()
				for _, v := range []float64{g.R, g.G, g.B} {
					assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
					assert.GreaterOrEqual(t, v, GainMin)
					assert.LessOrEqual(t, v, GainMax)
				}
			}
		}
	}
}

func TestKelvinWarmDirection(t *testing.T) {
	warm := WBParams{Red: 1, Green: 1, Blue: 1, Temp: 50, Model: WBModelKelvin}.Gains()
	cool := WBParams{Red: 1, Green: 1, Blue: 1, Temp: -50, Model: WBModelKelvin}.Gains()

	assert.Greater(t, warm.R, warm.B, "positive temp warms the image")
	assert.Less(t, cool.R, cool.B, "negative temp cools it")
}

func TestTintTradesGreenAgainstMagenta(t *testing.T) {
	g := WBParams{Red: 1, Green: 1, Blue: 1, Tint: 50, Model: WBModelKelvin}.Gains()

	assert.Less(t, g.G, 1.0)
	assert.Greater(t, g.R, 1.0)
	assert.Greater(t, g.B, 1.0)
}

func TestBaseGainsMultiplyOnTop(t *testing.T) {
	g := WBParams{Red: 2, Green: 1, Blue: 0.5, Model: WBModelKelvin}.Gains()
	assert.InDelta(t, 2.0, g.R, 1e-12)
	assert.InDelta(t, 1.0, g.G, 1e-12)
	assert.InDelta(t, 0.5, g.B, 1e-12)
}

func TestKelvinToRGBEndpoints(t *testing.T) {
	r, g, b := kelvinToRGB(2000)
	assert.Equal(t, 1.0, r, "candlelight is full red")
	assert.Greater(t, r, b, "and very little blue")
	assert.Greater(t, g, 0.0)

	r, _, b = kelvinToRGB(20000)
	assert.Equal(t, 1.0, b, "deep shade is full blue")
	assert.Less(t, r, 1.0)
}

func TestSolveNeutralRoundTrip(t *testing.T) {
	// A gray card imaged under a known legacy cast should solve back
	// to that cast - the inverse model agrees with the forward one.
	cases := []struct{ temp, tint float64 }{
		{30, 10},
		{-40, 0},
		{0, 25},
		{60, -35},
	}

	for _, c := range cases {
		g := legacyGains(c.temp, c.tint)
		r, gg, b := 128.0*g.R, 128.0*g.G, 128.0*g.B

		temp, tint := SolveNeutral(r, gg, b, Gains{R: 1, G: 1, B: 1})
		assert.InDelta(t, c.temp, temp, 0.5, "temp for %+v", c)
		assert.InDelta(t, c.tint, tint, 0.5, "tint for %+v", c)
	}
}

func TestSolveNeutralNearNeutralShortCircuits(t *testing.T) {
	temp, tint := SolveNeutral(128, 128, 128, Gains{R: 1, G: 1, B: 1})
	assert.Zero(t, temp)
	assert.Zero(t, tint)

	// within the 2% ratio band still counts as neutral
	temp, tint = SolveNeutral(129, 128, 127.5, Gains{R: 1, G: 1, B: 1})
	assert.Zero(t, temp)
	assert.Zero(t, tint)
}

func TestSolveNeutralDividesOutBaseGains(t *testing.T) {
	// the cast explained by the base gains should not be re-solved
	base := Gains{R: 1.2, G: 1.0, B: 0.9}
	temp, tint := SolveNeutral(128*1.2, 128, 128*0.9, base)
	assert.Zero(t, temp)
	assert.Zero(t, tint)
}

func TestSolveNeutralClampsWildSamples(t *testing.T) {
	temp, tint := SolveNeutral(255, 10, 5, Gains{R: 1, G: 1, B: 1})
	assert.LessOrEqual(t, math.Abs(temp), 100.0)
	assert.LessOrEqual(t, math.Abs(tint), 100.0)

	temp, tint = SolveNeutral(0, 0, 0, Gains{R: 1, G: 1, B: 1})
	assert.Zero(t, temp)
	assert.Zero(t, tint)
}
