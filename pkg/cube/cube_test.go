package cube

import(
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyCube = `# a comment
TITLE "tiny"
LUT_3D_SIZE 2
DOMAIN_MIN 0.0 0.0 0.0
DOMAIN_MAX 1.0 1.0 1.0

0.0 0.0 0.0
1.0 0.0 0.0
0.0 1.0 0.0
1.0 1.0 0.0
0.0 0.0 1.0
1.0 0.0 1.0
0.0 1.0 1.0
1.0 1.0 1.0
`

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(tinyCube))
	require.NoError(t, err)

	assert.Equal(t, 2, c.Size)
	require.Len(t, c.Data, 24)

	// r varies fastest: cell (1,0,0) is the second triple
	r, g, b := c.at(1, 0, 0)
	assert.Equal(t, []float64{1, 0, 0}, []float64{r, g, b})

	// cell (0,1,1) is triple index 0 + 1*2 + 1*4 = 6
	r, g, b = c.at(0, 1, 1)
	assert.Equal(t, []float64{0, 1, 1}, []float64{r, g, b})
}

func TestParseRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"missing header":    "0.0 0.0 0.0\n",
		"short data":        "LUT_3D_SIZE 2\n0 0 0\n",
		"bad size":          "LUT_3D_SIZE 1\n0 0 0\n",
		"bad value":         "LUT_3D_SIZE 2\n" + strings.Repeat("0 0 x\n", 8),
		"wrong field count": "LUT_3D_SIZE 2\n0 0\n",
	}

	for name, text := range cases {
		_, err := Parse(strings.NewReader(text))
		assert.Error(t, err, name)
	}
}

func TestIdentityCubeSamplesToInput(t *testing.T) {
	c := Identity(17)

	inputs := [][3]float32{
		{0, 0, 0}, {1, 1, 1}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{0.5, 0.5, 0.5}, {0.123, 0.77, 0.31}, {0.9, 0.05, 0.66},
	}
	for _, in := range inputs {
		r, g, b := c.Sample(in[0], in[1], in[2])
		assert.InDelta(t, in[0], r, 1.0/255.0)
		assert.InDelta(t, in[1], g, 1.0/255.0)
		assert.InDelta(t, in[2], b, 1.0/255.0)
	}
}

func TestSampleClampsOutOfDomain(t *testing.T) {
	c := Identity(5)
	r, g, b := c.Sample(-0.5, 1.5, 0.5)
	assert.Equal(t, float32(0), r)
	assert.Equal(t, float32(1), g)
	assert.InDelta(t, 0.5, b, 1e-6)
}

func TestCombineNoLooksIsNil(t *testing.T) {
	assert.Nil(t, Combine())
	assert.Nil(t, Combine(Look{Cube: nil, Intensity: 1}))
	assert.Nil(t, Combine(Look{Cube: Identity(5), Intensity: 0}))
}

// constantCube maps every input to one fixed color.
func constantCube(size int, r, g, b float64) *Cube {
	c := Identity(size)
	for i := 0; i < len(c.Data); i += 3 {
		c.Data[i], c.Data[i+1], c.Data[i+2] = r, g, b
	}
	return c
}

func TestCombineBlendsAgainstIdentity(t *testing.T) {
	white := constantCube(3, 1, 1, 1)

	half := Combine(Look{Cube: white, Intensity: 0.5})
	require.NotNil(t, half)

	// every cell is halfway between its own coordinate and white
	id := Identity(3)
	for i := range half.Data {
		assert.InDelta(t, 0.5*id.Data[i]+0.5, half.Data[i], 1e-6)
	}
}

func TestCombineStacksTwoLooks(t *testing.T) {
	white := constantCube(3, 1, 1, 1)
	black := constantCube(3, 0, 0, 0)

	c := Combine(
		Look{Cube: white, Intensity: 1.0},
		Look{Cube: black, Intensity: 0.5},
	)
	require.NotNil(t, c)

	// identity -> all white -> halfway back toward black
	for i := range c.Data {
		assert.InDelta(t, 0.5, c.Data[i], 1e-6)
	}
}

func TestCombineMismatchedSizesResamples(t *testing.T) {
	big := Identity(17)
	small := constantCube(3, 0.25, 0.5, 0.75)

	c := Combine(
		Look{Cube: big, Intensity: 1.0},
		Look{Cube: small, Intensity: 1.0},
	)
	require.NotNil(t, c)
	assert.Equal(t, 17, c.Size, "combined grid takes the larger resolution")

	r, g, b := c.Sample(0.3, 0.6, 0.9)
	assert.InDelta(t, 0.25, r, 1.0/255.0)
	assert.InDelta(t, 0.5, g, 1.0/255.0)
	assert.InDelta(t, 0.75, b, 1.0/255.0)
}
