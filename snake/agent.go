// Package snake simulates a single grid agent: movement, self-collision,
// foraging and incremental scoring, driven by a neural.Controller.
package snake

import (
	"math/rand"

	"github.com/pthm-cable/snakevo/components"
	"github.com/pthm-cable/snakevo/neural"
)

// EatBonus is added to the score each time food is reached.
const EatBonus = 50

// noDistance marks lastDist as not yet measured.
const noDistance = -1

// World describes the playfield in pixels.
type World struct {
	Width     int
	Height    int
	Cell      int
	TopMargin int // rows at the top where food never spawns
}

// Cols returns the number of grid columns.
func (w World) Cols() int { return w.Width / w.Cell }

// Rows returns the number of grid rows.
func (w World) Rows() int { return w.Height / w.Cell }

// NumInputs is the length of the vector passed to the controller by Think.
func (w World) NumInputs() int { return 3*w.Cols()*w.Rows() + 4 }

// Agent is one snake. It exclusively owns its controller and tail.
type Agent struct {
	world World
	rng   *rand.Rand
	brain neural.Controller

	pos     components.Position
	heading components.Heading
	tail    []components.Position
	total   int
	food    components.Position

	score    int
	lastDist float64
	dead     bool
	locked   bool // a direction change was already applied this tick

	fitness float64
}

// New creates an agent at the origin heading right, with a freshly picked
// food location. rng is used for food placement only.
func New(world World, brain neural.Controller, rng *rand.Rand) *Agent {
	a := &Agent{
		world:    world,
		rng:      rng,
		brain:    brain,
		heading:  components.HeadingRight,
		lastDist: noDistance,
	}
	a.pickFood()
	return a
}

// Update moves the agent one cell along its heading, dragging the tail.
func (a *Agent) Update() {
	if a.dead {
		return
	}

	for i := 0; i < len(a.tail)-1; i++ {
		a.tail[i] = a.tail[i+1]
	}
	if a.total >= 1 {
		// A freshly grown agent has one slot fewer than total; append into it.
		if a.total > len(a.tail) {
			a.tail = append(a.tail, a.pos)
		} else {
			a.tail[a.total-1] = a.pos
		}
	}

	a.pos = a.pos.Add(a.heading.X*a.world.Cell, a.heading.Y*a.world.Cell).
		Clamp(a.world.Width-a.world.Cell, a.world.Height-a.world.Cell)

	a.locked = false
}

// Death reports whether the agent is dead, killing it first if its score
// went negative or its head overlaps its tail.
func (a *Agent) Death() bool {
	if a.dead {
		return true
	}
	if a.score < 0 {
		a.dead = true
		return true
	}
	for _, seg := range a.tail {
		if a.pos.Dist(seg) < 1 {
			a.total = 0
			a.tail = nil
			a.dead = true
			return true
		}
	}
	return false
}

// Eat consumes the food if the head is on it and relocates the food.
func (a *Agent) Eat() bool {
	if a.pos.Dist(a.food) >= 1 {
		return false
	}
	a.total++
	a.score += EatBonus
	a.lastDist = noDistance
	a.pickFood()
	return true
}

// CalculateScore rewards moving toward the food by 1 and penalizes anything
// else by 2. The first measurement after food is placed only records the
// distance.
func (a *Agent) CalculateScore() int {
	if a.dead {
		return a.score
	}

	d := a.pos.Dist(a.food)
	if a.lastDist == noDistance {
		a.lastDist = d
		return a.score
	}

	if d < a.lastDist {
		a.score++
	} else {
		a.score -= 2
	}
	a.lastDist = d
	return a.score
}

// Dir requests a heading change. Only the first request per tick is honored,
// and an axis is never reversed.
func (a *Agent) Dir(dx, dy int) {
	if a.locked {
		return
	}
	if (a.heading.X <= 0 && dx <= 0) || (a.heading.X >= 0 && dx >= 0) {
		a.heading.X = dx
	}
	if (a.heading.Y <= 0 && dy <= 0) || (a.heading.Y >= 0 && dy >= 0) {
		a.heading.Y = dy
	}
	a.locked = true
}

func (a *Agent) pickFood() {
	cols := a.world.Cols()
	rows := a.world.Rows() - a.world.TopMargin
	col := a.rng.Intn(cols)
	row := a.rng.Intn(rows)
	a.food = components.Position{X: col, Y: row}.
		Scale(a.world.Cell).
		Add(0, a.world.TopMargin*a.world.Cell)
}

// Release frees the controller. The agent must not Think afterwards.
func (a *Agent) Release() {
	a.brain.Release()
}

func (a *Agent) Position() components.Position { return a.pos }
func (a *Agent) Heading() components.Heading   { return a.heading }
func (a *Agent) Food() components.Position     { return a.food }
func (a *Agent) Score() int                    { return a.score }
func (a *Agent) Total() int                    { return a.total }
func (a *Agent) Dead() bool                    { return a.dead }
func (a *Agent) Locked() bool                  { return a.locked }
func (a *Agent) Controller() neural.Controller { return a.brain }
func (a *Agent) Fitness() float64              { return a.fitness }

// LastDistance is the head-to-food distance recorded by the last score
// update, or -1 if the current food has not been measured yet.
func (a *Agent) LastDistance() float64 { return a.lastDist }

// SetFitness is called by selection; the value is only meaningful within one
// generation transition.
func (a *Agent) SetFitness(f float64) { a.fitness = f }

// Tail returns a copy of the tail segments, oldest first.
func (a *Agent) Tail() []components.Position {
	return append([]components.Position(nil), a.tail...)
}

// AgentView is what renderers and spectators see of an agent.
type AgentView struct {
	Head  components.Position   `json:"head"`
	Tail  []components.Position `json:"tail"`
	Food  components.Position   `json:"food"`
	Dead  bool                  `json:"dead"`
	Score int                   `json:"score"`
	Total int                   `json:"total"`
}

// View snapshots the agent for drawing.
func (a *Agent) View() AgentView {
	return AgentView{
		Head:  a.pos,
		Tail:  a.Tail(),
		Food:  a.food,
		Dead:  a.dead,
		Score: a.score,
		Total: a.total,
	}
}

// State is the restorable part of an agent. It lets scenarios and replays
// start an agent mid-game.
type State struct {
	Pos     components.Position
	Heading components.Heading
	Tail    []components.Position
	Food    components.Position
	Score   int
	Dead    bool
}

// Restore overwrites the agent's state. Total follows the tail length and
// the food distance is marked unmeasured.
func (a *Agent) Restore(s State) {
	a.pos = s.Pos
	a.heading = s.Heading
	a.tail = append([]components.Position(nil), s.Tail...)
	a.total = len(s.Tail)
	a.food = s.Food
	a.score = s.Score
	a.dead = s.Dead
	a.lastDist = noDistance
	a.locked = false
}
