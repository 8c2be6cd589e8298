package snake

// Action is the decoded controller preference.
type Action int

const (
	Straight Action = iota
	TurnLeft
	TurnRight
)

func (a Action) String() string {
	switch a {
	case Straight:
		return "straight"
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	}
	return "unknown"
}

// Decide returns the index of the largest output. Ties go to the first index.
func Decide(outputs []float64) Action {
	best := 0
	for i := 1; i < len(outputs); i++ {
		if outputs[i] > outputs[best] {
			best = i
		}
	}
	return Action(best)
}

// Think feeds the sensory vector to the controller and turns relative to the
// current heading according to its preference.
//
// The last four inputs are x/width, y/height and the x heading mapped to
// [0,1] twice. The y heading is not encoded.
func (a *Agent) Think() Action {
	inputs := a.Inputs()
	hx := float64(a.heading.X+1) / 2
	inputs = append(inputs,
		float64(a.pos.X)/float64(a.world.Width),
		float64(a.pos.Y)/float64(a.world.Height),
		hx,
		hx,
	)

	action := Decide(a.brain.Predict(inputs))
	a.turn(action)
	return action
}

func (a *Agent) turn(action Action) {
	h := a.heading
	switch action {
	case TurnLeft:
		switch {
		case h.Y < 0:
			a.Dir(-1, 0)
		case h.Y > 0:
			a.Dir(1, 0)
		case h.X < 0:
			a.Dir(0, 1)
		case h.X > 0:
			a.Dir(0, -1)
		}
	case TurnRight:
		switch {
		case h.Y < 0:
			a.Dir(1, 0)
		case h.Y > 0:
			a.Dir(-1, 0)
		case h.X < 0:
			a.Dir(0, -1)
		case h.X > 0:
			a.Dir(0, 1)
		}
	}
}
