// Package evolve turns a finished generation of snakes into the next one by
// fitness-proportionate selection and mutation.
package evolve

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/snakevo/snake"
)

// NormalizeFitness shifts scores by the magnitude of the population minimum so
// none is negative, then divides by their sum. The returned slice is also
// stored on each agent via SetFitness.
//
// If every shifted score is zero the population gets uniform fitness.
func NormalizeFitness(agents []*snake.Agent) []float64 {
	scores := make([]int, len(agents))
	for i, a := range agents {
		scores[i] = a.Score()
	}
	fitness := FitnessFromScores(scores)
	for i, a := range agents {
		a.SetFitness(fitness[i])
	}
	return fitness
}

// FitnessFromScores is NormalizeFitness over raw scores.
func FitnessFromScores(scores []int) []float64 {
	n := len(scores)
	fitness := make([]float64, n)
	if n == 0 {
		return fitness
	}

	minScore := scores[0]
	for _, s := range scores[1:] {
		if s < minScore {
			minScore = s
		}
	}
	offset := math.Abs(float64(minScore))

	var sum float64
	for i, s := range scores {
		fitness[i] = float64(s) + offset
		sum += fitness[i]
	}

	if sum == 0 {
		for i := range fitness {
			fitness[i] = 1 / float64(n)
		}
		return fitness
	}
	for i := range fitness {
		fitness[i] /= sum
	}
	return fitness
}

// PickIndex draws r uniformly from [0,1) and walks the population subtracting
// each fitness until r drops to zero or below. Rounding can leave r positive
// after the last agent, so the result is clamped to the final index.
// A draw of exactly 0 returns index 0 even when its fitness is 0.
func PickIndex(rng *rand.Rand, fitness []float64) int {
	if len(fitness) == 0 {
		return -1
	}
	r := rng.Float64()
	for i, f := range fitness {
		r -= f
		if r <= 0 {
			return i
		}
	}
	return len(fitness) - 1
}
