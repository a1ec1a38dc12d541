package cube

import(
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gammaCube is a deliberately non-linear cube, so parity failures
// can't hide behind identity mappings.
func gammaCube(size int) *Cube {
	c := Identity(size)
	for i := range c.Data {
		c.Data[i] = math.Pow(c.Data[i], 1.0/2.2)
	}
	return c
}

func TestTexelLayout(t *testing.T) {
	tex := Identity(2).PackTexture()

	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 4, tex.Height)
	require.Len(t, tex.Pix, 4*2*4)

	// cell (1,0,1): column 1, row 0 + 1*2 = 2
	assert.Equal(t, 4*(2*2+1), tex.texelOffset(1, 0, 1))

	// that cell's identity color is (1,0,1), alpha opaque
	i := tex.texelOffset(1, 0, 1)
	assert.Equal(t, []uint8{255, 0, 255, 255}, tex.Pix[i:i+4])
}

// The CPU path samples the float grid; the GPU-equivalent path samples
// the packed 8-bit texture. The only divergence allowed between them is
// the texture's quantization, which is at most half a level per corner.
func TestCpuGpuSampleParity(t *testing.T) {
	c := gammaCube(17)
	tex := c.PackTexture()

	inputs := [][3]float32{
		{0, 0, 0}, {1, 1, 1}, {0.5, 0.5, 0.5},
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		inputs = append(inputs, [3]float32{rng.Float32(), rng.Float32(), rng.Float32()})
	}

	for _, in := range inputs {
		cr, cg, cb := c.Sample(in[0], in[1], in[2])
		tr, tg, tb := tex.Sample(in[0], in[1], in[2])
		assert.InDelta(t, cr, tr, 1.0/255.0, "r at %v", in)
		assert.InDelta(t, cg, tg, 1.0/255.0, "g at %v", in)
		assert.InDelta(t, cb, tb, 1.0/255.0, "b at %v", in)
	}
}

func TestNilSamplePassesThrough(t *testing.T) {
	var c *Cube
	r, g, b := c.Sample(0.2, 0.4, 0.6)
	assert.Equal(t, float32(0.2), r)
	assert.Equal(t, float32(0.4), g)
	assert.Equal(t, float32(0.6), b)

	var tex *Texture
	r, g, b = tex.Sample(0.2, 0.4, 0.6)
	assert.Equal(t, float32(0.2), r)
	assert.Equal(t, float32(0.4), g)
	assert.Equal(t, float32(0.6), b)
}
