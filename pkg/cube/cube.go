// Package cube implements the 3D look LUT subsystem: parsing the
// plain-text .cube format, combining stacked looks, packing a cube
// into a 2D texture for GPU sampling, and a single trilinear sampling
// core shared by the CPU and GPU-equivalent paths.
package cube

import(
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// A Cube is a cubic grid of side Size; each cell holds a unit RGB
// triple. Data is flattened r-fastest: cell (r,g,b) lives at
// 3*(r + g*Size + b*Size*Size).
type Cube struct {
	Size int
	Data []float64
}

// Identity builds the cube that maps every color to itself: each
// cell's value is its own coordinate, normalized.
func Identity(size int) *Cube {
	c := &Cube{Size: size, Data: make([]float64, 3*size*size*size)}
	scale := 1.0 / float64(size-1)
	i := 0
	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				c.Data[i] = float64(r) * scale
				c.Data[i+1] = float64(g) * scale
				c.Data[i+2] = float64(b) * scale
				i += 3
			}
		}
	}
	return c
}

// at returns one cell's triple, with indices clamped to the grid.
func (c *Cube)at(r, g, b int) (float64, float64, float64) {
	clampIdx := func(i int) int {
		if i < 0 {
			return 0
		}
		if i >= c.Size {
			return c.Size - 1
		}
		return i
	}
	i := 3 * (clampIdx(r) + clampIdx(g)*c.Size + clampIdx(b)*c.Size*c.Size)
	return c.Data[i], c.Data[i+1], c.Data[i+2]
}

// Parse reads the plain-text .cube format: a `LUT_3D_SIZE <n>` header
// followed by size^3 whitespace-separated RGB float triples, r
// varying fastest. Comment (#) and blank lines are skipped; TITLE and
// DOMAIN_MIN/DOMAIN_MAX headers are tolerated and ignored (we assume
// the unit domain).
//
// Any structural problem is a parse error; the caller decides whether
// to surface it or fall back to an identity cube.
func Parse(rd io.Reader) (*Cube, error) {
	c := &Cube{}
	scanner := bufio.NewScanner(rd)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "LUT_3D_SIZE":
			if len(fields) != 2 {
				return nil, fmt.Errorf("cube: bad LUT_3D_SIZE line %q", line)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 2 || n > 256 {
				return nil, fmt.Errorf("cube: bad LUT_3D_SIZE %q", fields[1])
			}
			c.Size = n
			c.Data = make([]float64, 0, 3*n*n*n)

		case "TITLE", "DOMAIN_MIN", "DOMAIN_MAX", "LUT_1D_SIZE":
			// ignored headers

		default:
			if len(fields) != 3 {
				return nil, fmt.Errorf("cube: unrecognised line %q", line)
			}
			for _, f := range fields {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					return nil, fmt.Errorf("cube: bad value %q: %v", f, err)
				}
				c.Data = append(c.Data, v)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cube: read: %v", err)
	}

	if c.Size == 0 {
		return nil, fmt.Errorf("cube: missing LUT_3D_SIZE header")
	}
	if want := 3 * c.Size * c.Size * c.Size; len(c.Data) != want {
		return nil, fmt.Errorf("cube: size %d needs %d values, got %d", c.Size, want, len(c.Data))
	}

	return c, nil
}

func ParseFile(filename string) (*Cube, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cube: open+r '%s': %v", filename, err)
	}
	defer f.Close()
	return Parse(f)
}
