// Package neural provides the controller capability agents decide with and
// the feedforward network brain that backs it.
package neural

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// FFNN is a two-layer feedforward network: sigmoid hidden layer, softmax output.
type FFNN struct {
	W1 *mat.Dense    // hidden x inputs
	B1 *mat.VecDense // hidden biases
	W2 *mat.Dense    // outputs x hidden
	B2 *mat.VecDense // output biases
}

// NewFFNN creates a randomly initialized network.
func NewFFNN(rng *rand.Rand, inputs, hidden, outputs int) *FFNN {
	// Xavier initialization
	scale1 := math.Sqrt(2.0 / float64(inputs))
	scale2 := math.Sqrt(2.0 / float64(hidden))

	w1 := make([]float64, hidden*inputs)
	for i := range w1 {
		w1[i] = rng.NormFloat64() * scale1
	}
	w2 := make([]float64, outputs*hidden)
	for i := range w2 {
		w2[i] = rng.NormFloat64() * scale2
	}

	return &FFNN{
		W1: mat.NewDense(hidden, inputs, w1),
		B1: mat.NewVecDense(hidden, nil),
		W2: mat.NewDense(outputs, hidden, w2),
		B2: mat.NewVecDense(outputs, nil),
	}
}

// Dims returns the input, hidden and output layer sizes.
func (nn *FFNN) Dims() (inputs, hidden, outputs int) {
	hidden, inputs = nn.W1.Dims()
	outputs, _ = nn.W2.Dims()
	return inputs, hidden, outputs
}

// Forward computes the network output. The result sums to 1.
// Panics if len(inputs) does not match the input layer.
func (nn *FFNN) Forward(inputs []float64) []float64 {
	nIn, _, _ := nn.Dims()
	if len(inputs) != nIn {
		panic(fmt.Sprintf("neural: expected %d inputs, got %d", nIn, len(inputs)))
	}
	x := mat.NewVecDense(len(inputs), inputs)

	var hidden mat.VecDense
	hidden.MulVec(nn.W1, x)
	hidden.AddVec(&hidden, nn.B1)
	h := hidden.RawVector().Data
	for i := range h {
		h[i] = sigmoid(h[i])
	}

	var out mat.VecDense
	out.MulVec(nn.W2, &hidden)
	out.AddVec(&out, nn.B2)

	return softmax(out.RawVector().Data)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// softmax returns a new slice; the max is subtracted for stability.
func softmax(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	var sum float64
	for i, x := range xs {
		out[i] = math.Exp(x - m)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Mutate perturbs each weight and bias with probability rate by gaussian
// noise of the given sigma. Returns the number of parameters changed.
func (nn *FFNN) Mutate(rng *rand.Rand, rate, sigma float64) int {
	changed := 0
	for _, data := range nn.params() {
		for i := range data {
			if rng.Float64() < rate {
				data[i] += rng.NormFloat64() * sigma
				changed++
			}
		}
	}
	return changed
}

// params returns the backing slices of all parameters.
// Matrices built by NewDense are contiguous so Data covers every element.
func (nn *FFNN) params() [][]float64 {
	return [][]float64{
		nn.W1.RawMatrix().Data,
		nn.B1.RawVector().Data,
		nn.W2.RawMatrix().Data,
		nn.B2.RawVector().Data,
	}
}

// Clone creates a deep copy of the network.
func (nn *FFNN) Clone() *FFNN {
	return &FFNN{
		W1: mat.DenseCopyOf(nn.W1),
		B1: mat.VecDenseCopyOf(nn.B1),
		W2: mat.DenseCopyOf(nn.W2),
		B2: mat.VecDenseCopyOf(nn.B2),
	}
}

// BrainWeights holds flattened network weights for serialization.
type BrainWeights struct {
	Inputs  int       `json:"inputs"`
	Hidden  int       `json:"hidden"`
	Outputs int       `json:"outputs"`
	W1      []float64 `json:"w1"` // [Hidden * Inputs], row-major
	B1      []float64 `json:"b1"` // [Hidden]
	W2      []float64 `json:"w2"` // [Outputs * Hidden], row-major
	B2      []float64 `json:"b2"` // [Outputs]
}

// MarshalWeights flattens the network weights for JSON serialization.
func (nn *FFNN) MarshalWeights() BrainWeights {
	inputs, hidden, outputs := nn.Dims()
	bw := BrainWeights{Inputs: inputs, Hidden: hidden, Outputs: outputs}
	p := nn.params()
	bw.W1 = append([]float64(nil), p[0]...)
	bw.B1 = append([]float64(nil), p[1]...)
	bw.W2 = append([]float64(nil), p[2]...)
	bw.B2 = append([]float64(nil), p[3]...)
	return bw
}

// Validate checks that the slices match the declared layer sizes.
func (bw BrainWeights) Validate() error {
	if bw.Inputs <= 0 || bw.Hidden <= 0 || bw.Outputs <= 0 {
		return fmt.Errorf("invalid layer sizes %d-%d-%d", bw.Inputs, bw.Hidden, bw.Outputs)
	}
	checks := []struct {
		name      string
		got, want int
	}{
		{"w1", len(bw.W1), bw.Hidden * bw.Inputs},
		{"b1", len(bw.B1), bw.Hidden},
		{"w2", len(bw.W2), bw.Outputs * bw.Hidden},
		{"b2", len(bw.B2), bw.Outputs},
	}
	for _, c := range checks {
		if c.got != c.want {
			return fmt.Errorf("%s has %d values, want %d", c.name, c.got, c.want)
		}
	}
	return nil
}

// NewFFNNFromWeights restores a network from flattened form.
func NewFFNNFromWeights(bw BrainWeights) (*FFNN, error) {
	if err := bw.Validate(); err != nil {
		return nil, err
	}
	return &FFNN{
		W1: mat.NewDense(bw.Hidden, bw.Inputs, append([]float64(nil), bw.W1...)),
		B1: mat.NewVecDense(bw.Hidden, append([]float64(nil), bw.B1...)),
		W2: mat.NewDense(bw.Outputs, bw.Hidden, append([]float64(nil), bw.W2...)),
		B2: mat.NewVecDense(bw.Outputs, append([]float64(nil), bw.B2...)),
	}, nil
}
