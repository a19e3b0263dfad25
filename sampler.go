package decolor

import (
	"math"
	"math/rand"
)

// gridSize is the side length of the logical sampling grid. The number of
// sampled points stays close to gridSize*gridSize whatever the image resolution is.
const gridSize = 64

// Point is a pixel coordinate.
type Point struct {
	X int
	Y int
}

// PairFamily tells how the two points of a pair have been chosen.
type PairFamily int

const (
	// Random pairs a grid point with a point of the shuffled grid.
	Random PairFamily = iota
	// Horizontal pairs two neighboring columns of the coarse grid.
	Horizontal
	// Vertical pairs two neighboring rows of the coarse grid.
	Vertical
)

// Pair holds the two pixel locations whose colors are compared.
type Pair struct {
	P0, P1 Point
	Family PairFamily
}

// Sampler selects the pixel pairs used for estimating the color contrast.
// The random source is owned by the sampler, so a seeded source gives back
// the same pairs on every run.
type Sampler struct {
	rnd *rand.Rand
}

// NewSampler returns a new sampler using rnd for shuffling the grid points.
func NewSampler(rnd *rand.Rand) *Sampler {
	return &Sampler{rnd: rnd}
}

// Grid returns the logical grid dimensions for an image of the given size.
func Grid(width, height int) (cols, rows int) {
	s := gridSize / math.Sqrt(float64(width)*float64(height))
	cols = int(s*float64(width) + 0.5)
	rows = int(s*float64(height) + 0.5)

	return cols, rows
}

// Pairs returns the random pairs followed by the horizontal, then the vertical neighbor pairs.
func (s *Sampler) Pairs(width, height int) []Pair {
	if width <= 0 || height <= 0 {
		return nil
	}
	cols, rows := Grid(width, height)

	pairs := s.RandomPairs(width, height, cols, rows)
	return append(pairs, NeighborPairs(width, height, cols/2, rows/2)...)
}

// RandomPairs pairs every point of the cols x rows grid with a point of a
// random permutation of the same grid. It captures the long range contrast.
func (s *Sampler) RandomPairs(width, height, cols, rows int) []Pair {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	pos0 := make([]Point, 0, cols*rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			pos0 = append(pos0, Point{
				X: cell(i, cols, width),
				Y: cell(j, rows, height),
			})
		}
	}

	pos1 := make([]Point, len(pos0))
	copy(pos1, pos0)
	s.rnd.Shuffle(len(pos1), func(i, j int) {
		pos1[i], pos1[j] = pos1[j], pos1[i]
	})

	pairs := make([]Pair, len(pos0))
	for i := range pos0 {
		pairs[i] = Pair{P0: pos0[i], P1: pos1[i], Family: Random}
	}
	return pairs
}

// NeighborPairs pairs the adjacent columns and the adjacent rows of a cols x rows grid.
// A grid narrower than two cells in one direction yields no pairs in that direction.
func NeighborPairs(width, height, cols, rows int) []Pair {
	var pairs []Pair

	for i := 0; i < cols-1; i++ {
		x0 := cell(i, cols, width)
		x1 := cell(i+1, cols, width)
		for j := 0; j < rows; j++ {
			y := cell(j, rows, height)
			pairs = append(pairs, Pair{
				P0:     Point{X: x0, Y: y},
				P1:     Point{X: x1, Y: y},
				Family: Horizontal,
			})
		}
	}

	for i := 0; i < cols; i++ {
		x := cell(i, cols, width)
		for j := 0; j < rows-1; j++ {
			pairs = append(pairs, Pair{
				P0:     Point{X: x, Y: cell(j, rows, height)},
				P1:     Point{X: x, Y: cell(j+1, rows, height)},
				Family: Vertical,
			})
		}
	}
	return pairs
}

// cell maps the center of the i-th of n grid cells to a pixel coordinate in [0, size).
func cell(i, n, size int) int {
	return int((float64(i) + 0.5) * float64(size) / float64(n))
}
