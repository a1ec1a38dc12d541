package cube

import(
	"github.com/chewxy/math32"
)

// The sampling core. Preview renders sample the packed texture on the
// GPU; exports sample the cube on the CPU. Users flip between the two
// constantly and must not see a shift, so both paths run the exact
// same float32 interpolation below - the only difference is where the
// eight corner values come from. float32 because that is what a
// shader computes in; doing the CPU side in float64 would "improve"
// it right out of parity.

// fetchFunc returns one grid cell's triple. Indices are already
// clamped to [0, size-1] by the caller.
type fetchFunc func(r, g, b int) (float32, float32, float32)

func lerp32(a, b, t float32) float32 {
	return a + t*(b-a)
}

// trilinear samples the grid at a unit RGB coordinate by blending the
// eight surrounding cells, r axis first, then g, then b.
func trilinear(size int, fetch fetchFunc, r, g, b float32) (float32, float32, float32) {
	scale := float32(size - 1)
	rp := math32.Min(math32.Max(r, 0), 1) * scale
	gp := math32.Min(math32.Max(g, 0), 1) * scale
	bp := math32.Min(math32.Max(b, 0), 1) * scale

	ri := int(math32.Floor(rp))
	gi := int(math32.Floor(gp))
	bi := int(math32.Floor(bp))
	if ri > size-2 {
		ri = size - 2
	}
	if gi > size-2 {
		gi = size - 2
	}
	if bi > size-2 {
		bi = size - 2
	}

	fr := math32.Min(math32.Max(rp-float32(ri), 0), 1)
	fg := math32.Min(math32.Max(gp-float32(gi), 0), 1)
	fb := math32.Min(math32.Max(bp-float32(bi), 0), 1)

	r000, g000, b000 := fetch(ri, gi, bi)
	r100, g100, b100 := fetch(ri+1, gi, bi)
	r010, g010, b010 := fetch(ri, gi+1, bi)
	r110, g110, b110 := fetch(ri+1, gi+1, bi)
	r001, g001, b001 := fetch(ri, gi, bi+1)
	r101, g101, b101 := fetch(ri+1, gi, bi+1)
	r011, g011, b011 := fetch(ri, gi+1, bi+1)
	r111, g111, b111 := fetch(ri+1, gi+1, bi+1)

	// collapse the r axis
	r00, g00, b00 := lerp32(r000, r100, fr), lerp32(g000, g100, fr), lerp32(b000, b100, fr)
	r10, g10, b10 := lerp32(r010, r110, fr), lerp32(g010, g110, fr), lerp32(b010, b110, fr)
	r01, g01, b01 := lerp32(r001, r101, fr), lerp32(g001, g101, fr), lerp32(b001, b101, fr)
	r11, g11, b11 := lerp32(r011, r111, fr), lerp32(g011, g111, fr), lerp32(b011, b111, fr)

	// then g
	r0, g0, b0 := lerp32(r00, r10, fg), lerp32(g00, g10, fg), lerp32(b00, b10, fg)
	r1, g1, b1 := lerp32(r01, r11, fg), lerp32(g01, g11, fg), lerp32(b01, b11, fg)

	// then b
	return lerp32(r0, r1, fb), lerp32(g0, g1, fb), lerp32(b0, b1, fb)
}

// Sample is the CPU (export) path: trilinear over the float grid.
func (c *Cube)Sample(r, g, b float32) (float32, float32, float32) {
	if c == nil || c.Size < 2 {
		return r, g, b
	}
	return trilinear(c.Size, func(ri, gi, bi int) (float32, float32, float32) {
		fr, fg, fb := c.at(ri, gi, bi)
		return float32(fr), float32(fg), float32(fb)
	}, r, g, b)
}

// Sample is the GPU-equivalent path: the same trilinear core, but the
// corners come from the packed 2D texture's 8-bit texels, exactly as
// the preview shader fetches them.
func (t *Texture)Sample(r, g, b float32) (float32, float32, float32) {
	if t == nil || t.Size < 2 {
		return r, g, b
	}
	return trilinear(t.Size, func(ri, gi, bi int) (float32, float32, float32) {
		i := t.texelOffset(ri, gi, bi)
		return float32(t.Pix[i]) / 255.0, float32(t.Pix[i+1]) / 255.0, float32(t.Pix[i+2]) / 255.0
	}, r, g, b)
}
