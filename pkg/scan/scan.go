// Package scan is the seam between the grading core and whatever
// decoded the film scan. RAW decoding itself lives outside this
// repo; what arrives here is an already-decoded image file plus the
// capture metadata riding in its EXIF, and what leaves is the 8-bit
// working buffer the pipeline consumes.
package scan

import(
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/nfnt/resize"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"
)

// CaptureMeta is the exposure triple from the scan's EXIF. It feeds
// the companion exposure tooling, not the pixel pipeline, so all of
// it is optional - a scan with no EXIF just carries zeros.
type CaptureMeta struct {
	ISO          int64
	ApertureX10  int64 // f-number x10, e.g. f/2.8 -> 28
	ShutterNum   int64
	ShutterDenom int64
}

func (m CaptureMeta)String() string {
	return fmt.Sprintf("ISO %d, f/%.1f, %d/%ds", m.ISO, float64(m.ApertureX10)/10.0, m.ShutterNum, m.ShutterDenom)
}

// A Frame is one decoded scan.
type Frame struct {
	Filename string
	Image    image.Image
	Meta     CaptureMeta
}

// Load decodes a scanned frame (TIFF, PNG or JPEG) and whatever EXIF
// it carries. Missing or unreadable EXIF is not an error.
func Load(filename string) (Frame, error) {
	f := Frame{Filename: filename}

	// First pass over the file for the EXIF metadata
	if reader, err := os.Open(filename); err != nil {
		return f, fmt.Errorf("open+r exif '%s': %v", filename, err)
	} else {
		if ex, err := exif.Decode(reader); err == nil {
			f.Meta = readMeta(ex)
		}
		reader.Close()
	}

	// Re-open the file, now for the image data
	reader, err := os.Open(filename)
	if err != nil {
		return f, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".tif") || strings.HasSuffix(lower, ".tiff") {
		if f.Image, err = tiff.Decode(reader); err != nil {
			return f, fmt.Errorf("tiff loading '%s': %v", filename, err)
		}
	} else {
		if f.Image, _, err = image.Decode(reader); err != nil {
			return f, fmt.Errorf("image loading '%s': %v", filename, err)
		}
	}

	return f, nil
}

// readMeta pulls what it can; each tag is independent and optional.
func readMeta(ex *exif.Exif) CaptureMeta {
	m := CaptureMeta{}

	if tag, err := ex.Get(exif.ISOSpeedRatings); err == nil {
		if val, err := tag.Int64(0); err == nil {
			m.ISO = val
		}
	}

	if tag, err := ex.Get(exif.FNumber); err == nil {
		if num, denom, err := tag.Rat2(0); err == nil {
			switch denom {
			case 10: m.ApertureX10 = num
			case  5: m.ApertureX10 = num * 2
			case  1: m.ApertureX10 = num * 10
			}
		}
	}

	if tag, err := ex.Get(exif.ExposureTime); err == nil {
		if num, denom, err := tag.Rat2(0); err == nil {
			m.ShutterNum, m.ShutterDenom = num, denom
		}
	}

	return m
}

// RGBA materializes the full-resolution 8-bit working buffer.
func (f Frame)RGBA() *image.RGBA {
	return toRGBA(f.Image)
}

// Preview materializes a downscaled working buffer whose longest
// edge is maxDim - the cheap buffer the interactive path grades.
func (f Frame)Preview(maxDim uint) *image.RGBA {
	small := resize.Thumbnail(maxDim, maxDim, f.Image, resize.Bilinear)
	return toRGBA(small)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(image.Rectangle{Max: image.Point{img.Bounds().Dx(), img.Bounds().Dy()}})
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
