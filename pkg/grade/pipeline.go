package grade

import(
	"fmt"
	"runtime"
	"sync"

	"github.com/scanlight/filmdev/pkg/cube"
	"github.com/scanlight/filmdev/pkg/fmath"
)

// The Developer is the pipeline compositor: it owns the baked lookup
// tables for one Adjustments bundle and applies the stages to pixels
// in a fixed order:
//
//	1. white balance gain multiply
//	2. tone table lookup
//	3. curve table lookups (master folded into each channel)
//	4. hue-sector HSL adjustment
//	5. 3D look sampling
//	6. final clamp/round to 8 bits
//
// Each stage whose parameters are at their defaults is elided
// entirely - an all-default bundle copies bytes through untouched.
//
// Applying pixels is pure and lock-free; the only mutable state is
// the table cache, which SetAdjustments rebuilds between renders.
type Developer struct {
	adj    Adjustments
	primed bool

	wb      Gains
	tone    LUT
	curves  channelLUTs
	look    *cube.Cube
	lookTex *cube.Texture

	useWB     bool
	useTone   bool
	useCurves bool
	useHSL    bool
	useLook   bool
}

func NewDeveloper(a Adjustments) *Developer {
	d := &Developer{}
	d.SetAdjustments(a)
	return d
}

// SetAdjustments installs a new bundle, rebuilding only the tables
// whose sub-struct actually changed. Dragging a curve point must not
// recompute white balance or repack the look texture; this diff is
// what keeps the interactive loop cheap.
func (d *Developer)SetAdjustments(a Adjustments) {
	a = a.clone()
	a.Coerce()

	if !d.primed || a.WB != d.adj.WB {
		d.wb = a.WB.Gains()
		d.useWB = !a.WB.IsIdentity()
	}
	if !d.primed || a.Tone != d.adj.Tone {
		d.tone = BuildToneLUT(a.Tone)
		d.useTone = !a.Tone.IsIdentity()
	}
	if !d.primed || !curveParamsEqual(a.Curves, d.adj.Curves) {
		d.curves = buildChannelLUTs(a.Curves)
		d.useCurves = !a.Curves.IsIdentity()
	}
	if !d.primed || !lookParamsEqual(a.Look, d.adj.Look) {
		d.look = cube.Combine(lookList(a.Look)...)
		d.lookTex = nil // repacked lazily; preview may never ask
		d.useLook = d.look != nil
	}
	d.useHSL = !a.HSL.IsIdentity()

	d.adj = a
	d.primed = true
}

func (d *Developer)Adjustments() Adjustments { return d.adj }

// LookTexture returns the combined look packed for GPU sampling, or
// nil when no look is active. Packed on first use, cached until the
// look parameters change.
func (d *Developer)LookTexture() *cube.Texture {
	if !d.useLook {
		return nil
	}
	if d.lookTex == nil {
		d.lookTex = d.look.PackTexture()
	}
	return d.lookTex
}

// DevelopPixel runs the full stage chain on one RGB triple. This is
// also the point-sampling entry used when probing single pixels.
func (d *Developer)DevelopPixel(r, g, b uint8) (uint8, uint8, uint8) {
	if d.useWB {
		r = fmath.RoundLevel(float64(r) * d.wb.R)
		g = fmath.RoundLevel(float64(g) * d.wb.G)
		b = fmath.RoundLevel(float64(b) * d.wb.B)
	}
	if d.useTone {
		r, g, b = d.tone[r], d.tone[g], d.tone[b]
	}
	if d.useCurves {
		r, g, b = d.curves.r[r], d.curves.g[g], d.curves.b[b]
	}
	if d.useHSL {
		r, g, b = ApplyHSL(r, g, b, d.adj.HSL)
	}
	if d.useLook {
		lr, lg, lb := d.look.Sample(float32(r)/255.0, float32(g)/255.0, float32(b)/255.0)
		r = fmath.RoundByte(float64(lr))
		g = fmath.RoundByte(float64(lg))
		b = fmath.RoundByte(float64(lb))
	}
	return r, g, b
}

// Develop transforms a whole interleaved 8-bit buffer in place.
// channels is 3 (RGB) or 4 (RGBA); alpha bytes pass through
// untouched. Rows are partitioned across workers - every pixel is
// independent, so there is nothing to synchronize beyond completion.
func (d *Developer)Develop(buf []uint8, w, h, channels int) error {
	if channels != 3 && channels != 4 {
		return fmt.Errorf("develop: channels must be 3 or 4, got %d", channels)
	}
	if len(buf) < w*h*channels {
		return fmt.Errorf("develop: buffer %d too small for %dx%dx%d", len(buf), w, h, channels)
	}
	if d.adj.IsIdentity() {
		return nil
	}

	workers := runtime.NumCPU()
	if workers > h {
		workers = h
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for wk := 0; wk < workers; wk++ {
		wg.Add(1)
		go func(firstRow int) {
			defer wg.Done()
			for y := firstRow; y < h; y += workers {
				o := y * w * channels
				for x := 0; x < w; x++ {
					buf[o], buf[o+1], buf[o+2] = d.DevelopPixel(buf[o], buf[o+1], buf[o+2])
					o += channels
				}
			}
		}(wk)
	}
	wg.Wait()
	return nil
}

func lookList(p LookParams) []cube.Look {
	out := make([]cube.Look, 0, len(p.Looks))
	for _, l := range p.Looks {
		out = append(out, cube.Look{Cube: l.Cube, Intensity: l.Intensity})
	}
	return out
}
