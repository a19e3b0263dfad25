package decolor

import "fmt"

// levels is the number of discrete steps each channel weight is divided into.
const levels = 10

// Weight holds the coefficients of a linear channel combination.
// The components are never negative and always sum up to one.
type Weight struct {
	R, G, B float64
}

// EqualWeight is used when no pixel pair carries enough contrast to pick a weight.
var EqualWeight = Weight{R: 1.0 / 3, G: 1.0 / 3, B: 1.0 / 3}

// String returns the weight in a short human readable form.
func (w Weight) String() string {
	return fmt.Sprintf("(r: %.2f, g: %.2f, b: %.2f)", w.R, w.G, w.B)
}

// project returns the dot product of a channel difference vector and the weight.
func (w Weight) project(d [3]float64) float64 {
	return d[0]*w.R + d[1]*w.G + d[2]*w.B
}

// WeightSpace enumerates every weight whose components are multiples of 1/10.
// The order is stable: the red level is increased in the outer loop, the green
// level in the inner one and the blue level takes up the remainder.
// The position inside the returned slice is used as tie-breaker on scoring.
func WeightSpace() []Weight {
	space := make([]Weight, 0, (levels+1)*(levels+2)/2)

	for i := 0; i <= levels; i++ {
		for j := 0; j <= levels-i; j++ {
			k := levels - (i + j)
			space = append(space, Weight{
				R: float64(i) / levels,
				G: float64(j) / levels,
				B: float64(k) / levels,
			})
		}
	}
	return space
}
