package decolor

import "math"

const (
	// minContrast is the smallest normalized color distance a pair must have to be scored.
	minContrast = 0.05
	// distNorm normalizes the euclidean distance of two colors.
	// It approximates sqrt(2) and it's kept as is, since it tunes which pairs are retained.
	distNorm = 1.41
)

// Contrast is the color difference of a retained pixel pair.
type Contrast struct {
	// Diff is the per channel difference in R, G, B order, each value in [-1, 1].
	Diff [3]float64
	// Dist is the normalized euclidean distance of the two colors.
	Dist float64
}

// Contrasts accumulates the color differences of the pairs
// having a distance at least equal with minContrast.
type Contrasts []Contrast

// Add computes the color difference between c0 and c1 and retains it
// if the two colors are distinct enough. It reports whether the pair was kept.
func (cs *Contrasts) Add(c0, c1 RGB) bool {
	d := [3]float64{
		float64(c0.R)/255 - float64(c1.R)/255,
		float64(c0.G)/255 - float64(c1.G)/255,
		float64(c0.B)/255 - float64(c1.B)/255,
	}
	dist := math.Sqrt(d[0]*d[0]+d[1]*d[1]+d[2]*d[2]) / distNorm

	if dist < minContrast {
		return false
	}
	*cs = append(*cs, Contrast{Diff: d, Dist: dist})
	return true
}

// Accumulate looks up the colors of every pair and collects the ones with enough contrast.
func Accumulate(img *Image, pairs []Pair) Contrasts {
	cs := make(Contrasts, 0, len(pairs))
	for _, p := range pairs {
		cs.Add(img.At(p.P0.X, p.P0.Y), img.At(p.P1.X, p.P1.Y))
	}
	return cs
}
