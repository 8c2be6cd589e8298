package evolve

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/snakevo/components"
	"github.com/pthm-cable/snakevo/neural"
	"github.com/pthm-cable/snakevo/snake"
)

var testWorld = snake.World{Width: 200, Height: 200, Cell: 20, TopMargin: 1}

func population(rng *rand.Rand, scores ...int) ([]*snake.Agent, []*neural.Fixed) {
	agents := make([]*snake.Agent, len(scores))
	brains := make([]*neural.Fixed, len(scores))
	for i, s := range scores {
		brains[i] = neural.NewFixed(neural.Straight...)
		agents[i] = snake.New(testWorld, brains[i], rng)
		agents[i].Restore(snake.State{Heading: components.HeadingRight, Score: s})
	}
	return agents, brains
}

func TestManagerNext(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	agents, brains := population(rng, -5, 0, 5, 10)

	m := NewManager(rng, testWorld, DefaultMutationRate)
	m.SetGeneration(7)

	next, gen := m.Next(agents)

	if gen != 8 || m.Generation() != 8 {
		t.Errorf("generation = %d, want 8", gen)
	}
	if len(next) != len(agents) {
		t.Fatalf("next population has %d agents, want %d", len(next), len(agents))
	}

	for i, b := range brains {
		if !b.Released {
			t.Errorf("old controller %d not released", i)
		}
	}

	for i, child := range next {
		c, ok := child.Controller().(*neural.Fixed)
		if !ok {
			t.Fatalf("child %d controller is %T", i, child.Controller())
		}
		if c.Parent == nil {
			t.Fatalf("child %d controller was not duplicated", i)
		}
		if c.Parent != brains[m.Parents[i]] {
			t.Errorf("child %d descends from the wrong parent", i)
		}
		if m.Parents[i] == 0 {
			t.Errorf("child %d selected the zero-fitness agent", i)
		}
		if len(c.Mutated) != 1 || c.Mutated[0] != DefaultMutationRate {
			t.Errorf("child %d mutations = %v, want [%v]", i, c.Mutated, DefaultMutationRate)
		}
		if c.Released {
			t.Errorf("child %d controller released", i)
		}
		if child.Score() != 0 || child.Dead() || child.Total() != 0 {
			t.Errorf("child %d does not start fresh: %+v", i, child.View())
		}
	}

	for i, a := range agents {
		if a.Fitness() < 0 || a.Fitness() > 1 {
			t.Errorf("agent %d fitness %v out of range", i, a.Fitness())
		}
	}
}

func TestManagerCountsGenerations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m := NewManager(rng, testWorld, DefaultMutationRate)
	agents, _ := population(rng, 1)

	for want := 1; want <= 3; want++ {
		var gen int
		agents, gen = m.Next(agents)
		if gen != want {
			t.Fatalf("generation = %d, want %d", gen, want)
		}
		if len(agents) != 1 {
			t.Fatalf("population size changed to %d", len(agents))
		}
	}
}

func TestLeader(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	t.Run("highest alive", func(t *testing.T) {
		agents, _ := population(rng, 3, 9, 5)
		if got := LeaderIndex(agents); got != 1 {
			t.Errorf("LeaderIndex = %d, want 1", got)
		}
		if Leader(agents) != agents[1] {
			t.Error("Leader disagrees with LeaderIndex")
		}
	})

	t.Run("dead never replaces", func(t *testing.T) {
		agents, _ := population(rng, 3, 9, 5)
		agents[1].Restore(snake.State{Heading: agents[1].Heading(), Score: 9, Dead: true})
		if got := LeaderIndex(agents); got != 2 {
			t.Errorf("LeaderIndex = %d, want 2", got)
		}
	})

	t.Run("dead first agent kept", func(t *testing.T) {
		agents, _ := population(rng, 9, 3)
		agents[0].Restore(snake.State{Heading: agents[0].Heading(), Score: 9, Dead: true})
		if got := LeaderIndex(agents); got != 0 {
			t.Errorf("LeaderIndex = %d, want 0", got)
		}
	})

	t.Run("ties keep earlier", func(t *testing.T) {
		agents, _ := population(rng, 4, 4)
		if got := LeaderIndex(agents); got != 0 {
			t.Errorf("LeaderIndex = %d, want 0", got)
		}
	})

	if Leader(nil) != nil {
		t.Error("Leader(nil) should be nil")
	}
}
