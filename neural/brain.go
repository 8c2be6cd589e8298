package neural

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/snakevo/storage"
)

// Brain is the production Controller: an FFNN whose parameters persist to a
// storage.Store as JSON BrainWeights.
type Brain struct {
	net   *FFNN
	rng   *rand.Rand
	sigma float64
	store storage.Store
}

// Predict runs the network forward.
func (b *Brain) Predict(inputs []float64) []float64 {
	if b.net == nil {
		panic("neural: Predict called on a released brain")
	}
	return b.net.Forward(inputs)
}

// Mutate applies per-weight gaussian mutation with probability rate.
func (b *Brain) Mutate(rate float64) {
	if b.net == nil {
		panic("neural: Mutate called on a released brain")
	}
	b.net.Mutate(b.rng, rate, b.sigma)
}

// Duplicate deep-copies the network. The random source and store are shared.
func (b *Brain) Duplicate() Controller {
	if b.net == nil {
		panic("neural: Duplicate called on a released brain")
	}
	return &Brain{net: b.net.Clone(), rng: b.rng, sigma: b.sigma, store: b.store}
}

// Release drops the network matrices.
func (b *Brain) Release() {
	b.net = nil
}

// Released reports whether Release has been called.
func (b *Brain) Released() bool {
	return b.net == nil
}

// Weights returns a copy of the network parameters.
func (b *Brain) Weights() BrainWeights {
	return b.net.MarshalWeights()
}

// Save writes the weights under key.
func (b *Brain) Save(ctx context.Context, key string) error {
	if b.store == nil {
		return errors.New("brain has no store")
	}
	if b.net == nil {
		return fmt.Errorf("saving %s: brain released", key)
	}
	payload, err := json.Marshal(b.net.MarshalWeights())
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}
	if err := b.store.Put(ctx, key, payload); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// BrainFactory builds Brains of a fixed shape.
type BrainFactory struct {
	Inputs  int
	Hidden  int
	Outputs int
	Sigma   float64 // mutation perturbation std dev
	Rng     *rand.Rand
	Store   storage.Store
}

// New returns a randomly initialized brain.
func (f *BrainFactory) New() Controller {
	return &Brain{
		net:   NewFFNN(f.Rng, f.Inputs, f.Hidden, f.Outputs),
		rng:   f.Rng,
		sigma: f.Sigma,
		store: f.Store,
	}
}

// FromWeights restores a brain from weights that must match the factory shape.
func (f *BrainFactory) FromWeights(bw BrainWeights) (*Brain, error) {
	if bw.Inputs != f.Inputs || bw.Hidden != f.Hidden || bw.Outputs != f.Outputs {
		return nil, fmt.Errorf("shape %d-%d-%d does not match %d-%d-%d",
			bw.Inputs, bw.Hidden, bw.Outputs, f.Inputs, f.Hidden, f.Outputs)
	}
	net, err := NewFFNNFromWeights(bw)
	if err != nil {
		return nil, err
	}
	return &Brain{net: net, rng: f.Rng, sigma: f.Sigma, store: f.Store}, nil
}

// Load restores the brain stored under key.
func (f *BrainFactory) Load(ctx context.Context, key string) (Controller, bool, error) {
	if f.Store == nil {
		return nil, false, nil
	}
	payload, ok, err := f.Store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	var bw BrainWeights
	if err := json.Unmarshal(payload, &bw); err != nil {
		return nil, false, fmt.Errorf("decoding %s: %w", key, err)
	}
	brain, err := f.FromWeights(bw)
	if err != nil {
		return nil, false, fmt.Errorf("restoring %s: %w", key, err)
	}
	return brain, true, nil
}
