package grade

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToneLUTDefaultIsIdentity(t *testing.T) {
	lut := BuildToneLUT(ToneParams{})

	assert.Equal(t, uint8(0), lut[0])
	assert.Equal(t, uint8(128), lut[128])
	assert.Equal(t, uint8(255), lut[255])
	assert.True(t, lut.IsIdentity())
}

func TestToneContrastPivotsAboutMidGray(t *testing.T) {
	lut := BuildToneLUT(ToneParams{Contrast: 50})

	assert.Less(t, lut[64], uint8(64), "positive contrast should push shadows down")
	assert.Greater(t, lut[192], uint8(192), "positive contrast should push highlights up")
}

func TestToneExposure(t *testing.T) {
	brighter := BuildToneLUT(ToneParams{Exposure: 50}) // +1 stop
	darker := BuildToneLUT(ToneParams{Exposure: -50})

	// one stop up doubles mid-gray (and clips the top half)
	assert.Equal(t, uint8(255), brighter[128])
	assert.Equal(t, uint8(64), darker[128])
	assert.Equal(t, uint8(0), brighter[0])
}

func TestToneBlackWhitePoints(t *testing.T) {
	lut := BuildToneLUT(ToneParams{Blacks: 50, Whites: 50})

	// blacks=50 lifts the remap floor to -0.1, whites=50 drops the
	// ceiling to 0.9; levels near the ends move inward
	assert.Greater(t, lut[0], uint8(0))
	assert.Equal(t, uint8(255), lut[255])
}

func TestToneShadowsAndHighlights(t *testing.T) {
	shadows := BuildToneLUT(ToneParams{Shadows: 100})
	highlights := BuildToneLUT(ToneParams{Highlights: -100})

	assert.Greater(t, shadows[64], uint8(64), "shadow lift brightens the low quarter")
	assert.Equal(t, uint8(0), shadows[0], "lift fades to nothing at black")
	assert.Equal(t, uint8(255), shadows[255], "lift fades to nothing at white")

	assert.Less(t, highlights[192], uint8(192), "highlight recovery darkens the high quarter")
	assert.Equal(t, uint8(255), highlights[255], "recovery fades to nothing at white")
}

func TestToneCoercesBrokenParams(t *testing.T) {
	lut := BuildToneLUT(ToneParams{
		Exposure: math.NaN(),
		Contrast: math.Inf(1),
		Shadows:  9999,
	})

	assert.True(t, lut.IsIdentity(), "non-finite and out-of-range sliders fall back to defaults")
}
