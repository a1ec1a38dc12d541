package cube

import "github.com/scanlight/filmdev/pkg/fmath"

// A Texture is a cube re-laid-out as a 2D RGBA8 atlas a GPU can
// sample as an ordinary texture: width = Size, height = Size^2, with
// cell (r,g,b) at column r, row g + b*Size. Alpha is always opaque.
type Texture struct {
	Size   int
	Width  int
	Height int
	Pix    []uint8 // RGBA, row-major
}

// texelOffset is the byte offset of cell (r,g,b)'s texel.
func (t *Texture)texelOffset(r, g, b int) int {
	x := r
	y := g + b*t.Size
	return 4 * (y*t.Width + x)
}

// PackTexture quantizes the cube's unit floats to 8 bits and lays
// them out for texture sampling.
func (c *Cube)PackTexture() *Texture {
	t := &Texture{
		Size:   c.Size,
		Width:  c.Size,
		Height: c.Size * c.Size,
	}
	t.Pix = make([]uint8, 4*t.Width*t.Height)

	for b := 0; b < c.Size; b++ {
		for g := 0; g < c.Size; g++ {
			for r := 0; r < c.Size; r++ {
				cr, cg, cb := c.at(r, g, b)
				i := t.texelOffset(r, g, b)
				t.Pix[i] = fmath.RoundByte(cr)
				t.Pix[i+1] = fmath.RoundByte(cg)
				t.Pix[i+2] = fmath.RoundByte(cb)
				t.Pix[i+3] = 0xFF
			}
		}
	}
	return t
}
