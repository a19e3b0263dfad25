package decolor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeights_Space(t *testing.T) {
	assert := assert.New(t)

	space := WeightSpace()
	assert.Len(space, 66)

	seen := make(map[Weight]bool)
	for _, w := range space {
		assert.InDelta(1.0, w.R+w.G+w.B, 1e-6)
		for _, c := range []float64{w.R, w.G, w.B} {
			assert.GreaterOrEqual(c, 0.0)
			assert.InDelta(math.Round(c*10), c*10, 1e-9, "%v is not a multiple of 0.1", c)
		}
		assert.False(seen[w], "duplicated weight %v", w)
		seen[w] = true
	}
}

func TestWeights_Order(t *testing.T) {
	assert := assert.New(t)

	space := WeightSpace()
	assert.Equal(Weight{R: 0, G: 0, B: 1}, space[0])
	assert.Equal(Weight{R: 0, G: 0.1, B: 0.9}, space[1])
	assert.Equal(Weight{R: 0, G: 1, B: 0}, space[10])
	assert.Equal(Weight{R: 0.1, G: 0, B: 0.9}, space[11])
	assert.Equal(Weight{R: 1, G: 0, B: 0}, space[65])

	assert.Equal(space, WeightSpace())
}
