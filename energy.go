package decolor

import (
	"math"
	"sync"
)

// DefaultSigma is the width of the smoothed step applied on the projected contrast.
const DefaultSigma = 0.05

// Result describes the weight chosen for an image.
type Result struct {
	Weight Weight
	// Score is the mean contrast energy of the weight. It is zero on fallback.
	Score float64
	// Pairs is the number of retained pixel pairs the weight was scored on.
	Pairs int
	// Fallback is set when no pair was retained and EqualWeight was used.
	Fallback bool
}

// Evaluator scores channel weights by how well they preserve the sampled color contrast.
type Evaluator struct {
	// Sigma defaults to DefaultSigma when not positive.
	Sigma float64
	// Workers sets the number of goroutines scoring the weights. Values below 2 score sequentially.
	Workers int
}

// NewEvaluator returns an evaluator using the default sigma.
func NewEvaluator() *Evaluator {
	return &Evaluator{Sigma: DefaultSigma}
}

// Energy returns the mean contrast energy of w over the retained pairs.
// The result is undefined for an empty set, in which case it returns -Inf.
func (e *Evaluator) Energy(w Weight, cs Contrasts) float64 {
	if len(cs) == 0 {
		return math.Inf(-1)
	}
	sigma := e.Sigma
	if sigma <= 0 {
		sigma = DefaultSigma
	}

	var sum float64
	for _, c := range cs {
		l := w.project(c.Diff)
		a := (l + c.Dist) / sigma
		b := (l - c.Dist) / sigma

		sum += logSumExp(-a*a, -b*b)
	}
	return sum / float64(len(cs))
}

// Scores returns the energy of every weight, in the order of the weight space.
func (e *Evaluator) Scores(space []Weight, cs Contrasts) []float64 {
	scores := make([]float64, len(space))

	if e.Workers < 2 {
		for i, w := range space {
			scores[i] = e.Energy(w, cs)
		}
		return scores
	}

	var wg sync.WaitGroup
	idx := make(chan int)

	wg.Add(e.Workers)
	for n := 0; n < e.Workers; n++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				scores[i] = e.Energy(space[i], cs)
			}
		}()
	}
	for i := range space {
		idx <- i
	}
	close(idx)
	wg.Wait()

	return scores
}

// Best returns the weight with the highest energy. On equal scores the one
// coming first in the weight space wins. Without any retained pair, or with
// an empty weight space, it falls back to EqualWeight.
func (e *Evaluator) Best(space []Weight, cs Contrasts) Result {
	res := Result{Weight: EqualWeight, Pairs: len(cs), Fallback: true}
	if len(cs) == 0 || len(space) == 0 {
		return res
	}

	maxEs := math.Inf(-1)
	for i, es := range e.Scores(space, cs) {
		if es > maxEs || res.Fallback {
			maxEs = es
			res.Weight = space[i]
			res.Score = es
			res.Fallback = false
		}
	}
	return res
}

// logSumExp computes log(exp(x) + exp(y)) without underflowing to -Inf
// when both exponentials are too small to be represented.
func logSumExp(x, y float64) float64 {
	if x < y {
		x, y = y, x
	}
	return x + math.Log1p(math.Exp(y-x))
}
