package grade

import(
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/scanlight/filmdev/pkg/cube"
)

/* A preset is an Adjustments bundle as YAML, e.g.

tone:
  exposure: 12
  contrast: 25
  shadows: 30

wb:
  temp: -15
  tint: 5

curves:
  rgb:
    - {x: 0, y: 10}
    - {x: 128, y: 140}
    - {x: 255, y: 250}

hsl:
  orange:
    saturation: -20
    luminance: 10

look:
  looks:
    - file: portra400.cube
      intensity: 0.8
*/

// LoadPreset reads a YAML preset. Fields absent from the file keep
// their identity defaults; present-but-broken numeric values are
// coerced to defaults rather than rejected.
func LoadPreset(filename string) (Adjustments, error) {
	a := NewAdjustments()

	contents, err := os.ReadFile(filename)
	if err != nil {
		return a, fmt.Errorf("read '%s': %v", filename, err)
	}
	if err := yaml.Unmarshal(contents, &a); err != nil {
		return a, fmt.Errorf("parse '%s': %v", filename, err)
	}

	a.Coerce()
	return a, nil
}

func (a Adjustments)AsYaml() string {
	b, err := yaml.Marshal(a)
	if err != nil {
		log.Fatalf("can't marshal adjustments yaml: %v", err)
	}
	return string(b)
}

// LoadLookCubes parses the cube file behind each look that hasn't
// been loaded yet. A cube that fails to parse becomes an identity
// cube with a logged warning - a bad look file must never block the
// rest of the pipeline.
func (a *Adjustments)LoadLookCubes() {
	for i := range a.Look.Looks {
		l := &a.Look.Looks[i]
		if l.Cube != nil || l.File == "" {
			continue
		}
		c, err := cube.ParseFile(l.File)
		if err != nil {
			log.Printf("WARNING: look '%s' unusable, substituting identity: %v", l.File, err)
			c = cube.Identity(17)
		}
		l.Cube = c
	}
}
