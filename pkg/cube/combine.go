package cube

import "github.com/scanlight/filmdev/pkg/fmath"

// A Look is one cube plus how strongly to blend it in. A nil cube or
// zero intensity is an absent look.
type Look struct {
	Cube      *Cube
	Intensity float64
}

func (l Look)active() bool {
	return l.Cube != nil && l.Cube.Size >= 2 && l.Intensity > 0.0
}

// Combine flattens up to two stacked looks into a single cube. Every
// cell starts from its own identity color; then each look's color at
// that cell coordinate is blended in by its intensity, in order
// (v = v*(1-i) + look*i). Stacked looks therefore compose
// predictably, and everything degrades to identity as intensities
// head to zero. With no active looks the result is nil: the pipeline
// has nothing to sample.
//
// The combined grid takes the largest look's resolution; a look of a
// different size is resampled trilinearly at each cell coordinate, so
// mixing a 17 and a 33 cube behaves.
func Combine(looks ...Look) *Cube {
	size := 0
	for _, l := range looks {
		if l.active() && l.Cube.Size > size {
			size = l.Cube.Size
		}
	}
	if size == 0 {
		return nil
	}

	out := Identity(size)
	scale := 1.0 / float64(size-1)

	for _, l := range looks {
		if !l.active() {
			continue
		}
		w := fmath.Clamp01(l.Intensity)
		i := 0
		for b := 0; b < size; b++ {
			for g := 0; g < size; g++ {
				for r := 0; r < size; r++ {
					lr, lg, lb := l.Cube.Sample(
						float32(float64(r)*scale),
						float32(float64(g)*scale),
						float32(float64(b)*scale),
					)
					out.Data[i] = fmath.Lerp(out.Data[i], float64(lr), w)
					out.Data[i+1] = fmath.Lerp(out.Data[i+1], float64(lg), w)
					out.Data[i+2] = fmath.Lerp(out.Data[i+2], float64(lb), w)
					i += 3
				}
			}
		}
	}
	return out
}
