package main

import(
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/skypies/util/histogram"
	"golang.org/x/image/tiff"

	"github.com/scanlight/filmdev/pkg/grade"
	"github.com/scanlight/filmdev/pkg/scan"
)

var(
	fVerbosity int
	fPreset string
	fOutput string
	fPreview uint
	fCube string
	fCubeIntensity float64
	fCube2 string
	fCube2Intensity float64
	fAutoWB string
	fCurvePreview string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fPreset, "preset", "", "YAML adjustment preset to apply")
	flag.StringVar(&fOutput, "out", "out.png", "output filename (.png or .tif)")
	flag.UintVar(&fPreview, "preview", 0, "render a preview no larger than this (0 = full resolution)")
	flag.StringVar(&fCube, "cube", "", "3D look cube file")
	flag.Float64Var(&fCubeIntensity, "intensity", 1.0, "blend weight for -cube (0.0->1.0)")
	flag.StringVar(&fCube2, "cube2", "", "second 3D look cube file, stacked on the first")
	flag.Float64Var(&fCube2Intensity, "intensity2", 1.0, "blend weight for -cube2 (0.0->1.0)")
	flag.StringVar(&fAutoWB, "autowb", "", "x,y of a neutral pixel; solve temp/tint from it")
	flag.StringVar(&fCurvePreview, "curvepreview", "", "write a plot of the baked tone curve here")
	flag.Parse()

	log.Printf("filmdev starting\n")
}

func main() {
	if flag.NArg() != 1 {
		log.Fatalf("usage: filmdev [flags] <scan.tif|png|jpg>")
	}

	frame, err := scan.Load(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if fVerbosity > 0 {
		log.Printf("Loaded %s %v (%s)", frame.Filename, frame.Image.Bounds().Size(), frame.Meta)
	}

	adj := grade.NewAdjustments()
	if fPreset != "" {
		if adj, err = grade.LoadPreset(fPreset); err != nil {
			log.Fatal(err)
		}
	}
	addLook(&adj, fCube, fCubeIntensity)
	addLook(&adj, fCube2, fCube2Intensity)
	adj.LoadLookCubes()

	var img *image.RGBA
	if fPreview > 0 {
		img = frame.Preview(fPreview)
	} else {
		img = frame.RGBA()
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	if fAutoWB != "" {
		solveAutoWB(&adj, img)
	}

	if fVerbosity > 0 {
		log.Printf("Final adjustments:-\n\n%s\n", adj.AsYaml())
	}

	dev := grade.NewDeveloper(adj)

	if fCurvePreview != "" {
		if err := grade.WriteCurvePreview(grade.BuildToneLUT(adj.Tone), fCurvePreview); err != nil {
			log.Printf("WARNING: curve preview: %v", err)
		}
	}

	log.Printf("Developing %dx%d", w, h)
	if err := dev.Develop(img.Pix, w, h, 4); err != nil {
		log.Fatal(err)
	}

	if fVerbosity > 0 {
		logLuminanceHistogram(img)
	}

	if err := writeImage(img, fOutput); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s", fOutput)
}

func addLook(adj *grade.Adjustments, file string, intensity float64) {
	if file == "" {
		return
	}
	adj.Look.Looks = append(adj.Look.Looks, grade.Look{File: file, Intensity: intensity})
}

// solveAutoWB samples a 3x3 patch around the user's point, estimates
// the temp/tint cast in it, and negates the estimate into the WB
// params (legacy model, so the correction is exact for the solver).
func solveAutoWB(adj *grade.Adjustments, img *image.RGBA) {
	var px, py int
	if _, err := fmt.Sscanf(fAutoWB, "%d,%d", &px, &py); err != nil {
		log.Fatalf("bad -autowb '%s', want x,y: %v", fAutoWB, err)
	}

	var rSum, gSum, bSum, n float64
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := px+dx, py+dy
			if !(image.Point{x, y}).In(img.Bounds()) {
				continue
			}
			c := img.RGBAAt(x, y)
			rSum += float64(c.R)
			gSum += float64(c.G)
			bSum += float64(c.B)
			n++
		}
	}
	if n == 0 {
		log.Fatalf("-autowb point %d,%d outside image", px, py)
	}

	base := grade.Gains{R: adj.WB.Red, G: adj.WB.Green, B: adj.WB.Blue}
	temp, tint := grade.SolveNeutral(rSum/n, gSum/n, bSum/n, base)

	adj.WB.Model = grade.WBModelLegacy
	adj.WB.Temp = -temp
	adj.WB.Tint = -tint
	log.Printf("Auto-WB: cast temp=%.1f tint=%.1f, correcting with %.1f/%.1f", temp, tint, -temp, -tint)
}

// logLuminanceHistogram summarizes where the output levels ended up.
func logLuminanceHistogram(img *image.RGBA) {
	hist := histogram.Histogram{NumBuckets: 256, ValMin: 0, ValMax: 256}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
			hist.Add(histogram.ScalarVal(int(lum)))
		}
	}

	log.Printf("Output luminance: %s", hist)
}

func writeImage(img image.Image, filename string) error {
	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	}
	defer writer.Close()

	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".tif") || strings.HasSuffix(lower, ".tiff") {
		return tiff.Encode(writer, img, nil)
	}
	return png.Encode(writer, img)
}
