package neural

import "context"

// Controller maps a sensory vector to an action-preference vector.
// Predict must be a pure function of its input and the current parameters.
// A Controller is owned by exactly one agent; reproduction duplicates it.
type Controller interface {
	Predict(inputs []float64) []float64
	// Mutate perturbs the parameters in place.
	Mutate(rate float64)
	// Duplicate returns a deep, independent copy.
	Duplicate() Controller
	// Release frees backing resources. The controller must not be used after.
	Release()
	Save(ctx context.Context, key string) error
}

// Factory creates fresh controllers and restores persisted ones.
type Factory interface {
	New() Controller
	// Load returns ok=false when nothing is stored under key.
	Load(ctx context.Context, key string) (c Controller, ok bool, err error)
}
