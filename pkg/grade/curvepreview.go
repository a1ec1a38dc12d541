package grade

import(
	"github.com/fogleman/gg"
)

// WriteCurvePreview renders a baked table as a 256x256 plot - the
// faint diagonal is the identity reference. Handy when eyeballing
// what a preset's tone/curve stack actually does to the levels.
func WriteCurvePreview(lut LUT, filename string) error {
	const n = 256

	dc := gg.NewContext(n, n)
	dc.SetRGB(0.12, 0.12, 0.12)
	dc.Clear()

	// quarter-level grid
	dc.SetRGB(0.25, 0.25, 0.25)
	dc.SetLineWidth(1)
	for i := 64; i < n; i += 64 {
		dc.DrawLine(float64(i), 0, float64(i), n)
		dc.DrawLine(0, float64(i), n, float64(i))
	}
	dc.Stroke()

	// identity diagonal
	dc.SetRGB(0.4, 0.4, 0.4)
	dc.DrawLine(0, n-1, n-1, 0)
	dc.Stroke()

	// the curve itself; y axis flipped so bright is up
	dc.SetRGB(0.95, 0.95, 0.95)
	dc.SetLineWidth(2)
	dc.MoveTo(0, float64(n-1-int(lut[0])))
	for i := 1; i < n; i++ {
		dc.LineTo(float64(i), float64(n-1-int(lut[i])))
	}
	dc.Stroke()

	return dc.SavePNG(filename)
}
