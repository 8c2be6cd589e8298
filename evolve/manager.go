package evolve

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/snakevo/snake"
)

// DefaultMutationRate is applied to every child's duplicated controller.
const DefaultMutationRate = 0.1

// Manager owns the generation counter. It must not be used concurrently.
type Manager struct {
	rng          *rand.Rand
	world        snake.World
	mutationRate float64
	generation   int

	// Parents records, for the last call to Next, the index of each child's
	// parent in the previous population.
	Parents []int
}

// NewManager creates a manager starting at generation 0.
func NewManager(rng *rand.Rand, world snake.World, mutationRate float64) *Manager {
	return &Manager{rng: rng, world: world, mutationRate: mutationRate}
}

// Generation returns the number of completed transitions.
func (m *Manager) Generation() int { return m.generation }

// SetGeneration resumes counting from g.
func (m *Manager) SetGeneration(g int) { m.generation = g }

// Next breeds a population of the same size from agents and releases every
// old controller. It returns the new population and the incremented
// generation counter.
func (m *Manager) Next(agents []*snake.Agent) ([]*snake.Agent, int) {
	fitness := NormalizeFitness(agents)

	next := make([]*snake.Agent, len(agents))
	m.Parents = m.Parents[:0]
	for i := range next {
		p := PickIndex(m.rng, fitness)
		m.Parents = append(m.Parents, p)

		brain := agents[p].Controller().Duplicate()
		brain.Mutate(m.mutationRate)
		next[i] = snake.New(m.world, brain, m.rng)
	}

	for _, a := range agents {
		a.Release()
	}

	m.generation++
	slog.Debug("generation bred", "generation", m.generation, "population", len(next))
	return next, m.generation
}

// Leader returns the agent to show when only one is drawn: the first agent,
// replaced by any later agent that is alive and scores strictly higher than
// the current pick.
func Leader(agents []*snake.Agent) *snake.Agent {
	i := LeaderIndex(agents)
	if i < 0 {
		return nil
	}
	return agents[i]
}

// LeaderIndex is Leader returning a position, or -1 for an empty population.
func LeaderIndex(agents []*snake.Agent) int {
	best := -1
	for i, a := range agents {
		if best < 0 || (a.Score() > agents[best].Score() && !a.Dead()) {
			best = i
		}
	}
	return best
}
