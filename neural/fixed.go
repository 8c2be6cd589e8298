package neural

import (
	"context"
	"sync"
)

// Fixed is a Controller that always predicts the same output. It records the
// calls made on it, which makes it the stand-in for Brain in simulation tests
// and a do-nothing baseline ("always go straight") otherwise.
type Fixed struct {
	Output []float64

	Parent   *Fixed    // set on duplicates
	Mutated  []float64 // rates passed to Mutate, in order
	Released bool
	Inputs   int // length of the last input vector

	mu    sync.Mutex
	Saved []string
}

// NewFixed returns a Fixed controller with the given output.
func NewFixed(output ...float64) *Fixed {
	return &Fixed{Output: output}
}

// Straight, Left and Right are the outputs that make an agent go straight,
// turn left or turn right.
var (
	Straight = []float64{1, 0, 0}
	Left     = []float64{0, 1, 0}
	Right    = []float64{0, 0, 1}
)

func (f *Fixed) Predict(inputs []float64) []float64 {
	f.Inputs = len(inputs)
	return append([]float64(nil), f.Output...)
}

func (f *Fixed) Mutate(rate float64) {
	f.Mutated = append(f.Mutated, rate)
}

func (f *Fixed) Duplicate() Controller {
	return &Fixed{Output: append([]float64(nil), f.Output...), Parent: f}
}

func (f *Fixed) Release() {
	f.Released = true
}

func (f *Fixed) Save(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saved = append(f.Saved, key)
	return nil
}

// Root follows Parent links back to the original controller.
func (f *Fixed) Root() *Fixed {
	for f.Parent != nil {
		f = f.Parent
	}
	return f
}

// Scripted cycles through a table of outputs, one per Predict call.
// Duplicates restart the script.
type Scripted struct {
	Outputs [][]float64
	next    int

	Mutated  []float64
	Released bool
}

func (s *Scripted) Predict([]float64) []float64 {
	if len(s.Outputs) == 0 {
		return append([]float64(nil), Straight...)
	}
	out := s.Outputs[s.next%len(s.Outputs)]
	s.next++
	return append([]float64(nil), out...)
}

func (s *Scripted) Mutate(rate float64) {
	s.Mutated = append(s.Mutated, rate)
}

func (s *Scripted) Duplicate() Controller {
	return &Scripted{Outputs: s.Outputs}
}

func (s *Scripted) Release() {
	s.Released = true
}

func (s *Scripted) Save(context.Context, string) error { return nil }

// Func is a Controller whose prediction is a plain function of the input.
type Func func(inputs []float64) []float64

func (fn Func) Predict(inputs []float64) []float64 { return fn(inputs) }
func (fn Func) Mutate(float64) {}
func (fn Func) Duplicate() Controller { return fn }
func (fn Func) Release() {}
func (fn Func) Save(context.Context, string) error { return nil }

// FixedFactory creates Fixed controllers. Loaded maps keys to outputs that
// Load should report as persisted.
type FixedFactory struct {
	Output []float64
	Loaded map[string][]float64

	Created []*Fixed
}

func (f *FixedFactory) New() Controller {
	c := NewFixed(append([]float64(nil), f.Output...)...)
	f.Created = append(f.Created, c)
	return c
}

func (f *FixedFactory) Load(_ context.Context, key string) (Controller, bool, error) {
	out, ok := f.Loaded[key]
	if !ok {
		return nil, false, nil
	}
	return NewFixed(out...), true, nil
}
