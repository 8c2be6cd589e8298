package snake

import (
	"testing"

	"github.com/pthm-cable/snakevo/components"
	"github.com/pthm-cable/snakevo/neural"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		outputs []float64
		want    Action
	}{
		{"straight", []float64{0.8, 0.1, 0.1}, Straight},
		{"left", []float64{0.1, 0.8, 0.1}, TurnLeft},
		{"right", []float64{0.1, 0.1, 0.8}, TurnRight},
		{"tie goes to first", []float64{0.2, 0.4, 0.4}, TurnLeft},
		{"all equal", []float64{1, 1, 1}, Straight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.outputs); got != tt.want {
				t.Errorf("Decide(%v) = %v, want %v", tt.outputs, got, tt.want)
			}
		})
	}
}

func TestThinkTurnsRelativeToHeading(t *testing.T) {
	tests := []struct {
		from   components.Heading
		output []float64
		want   components.Heading
	}{
		{components.HeadingRight, neural.Straight, components.HeadingRight},
		{components.HeadingRight, neural.Left, components.HeadingUp},
		{components.HeadingRight, neural.Right, components.HeadingDown},
		{components.HeadingLeft, neural.Left, components.HeadingDown},
		{components.HeadingLeft, neural.Right, components.HeadingUp},
		{components.HeadingUp, neural.Left, components.HeadingLeft},
		{components.HeadingUp, neural.Right, components.HeadingRight},
		{components.HeadingDown, neural.Left, components.HeadingRight},
		{components.HeadingDown, neural.Right, components.HeadingLeft},
	}
	for _, tt := range tests {
		a := newTestAgent(t, neural.NewFixed(tt.output...))
		a.pos = components.Position{X: 300, Y: 300}
		a.heading = tt.from
		a.Think()
		if a.Heading() != tt.want {
			t.Errorf("heading %v with output %v: got %v, want %v", tt.from, tt.output, a.Heading(), tt.want)
		}
	}
}

func TestThinkStraightDoesNotLock(t *testing.T) {
	a := newTestAgent(t, neural.NewFixed(neural.Straight...))
	a.Think()
	if a.Locked() {
		t.Error("going straight should not consume the direction change")
	}
}

func TestThinkInputVector(t *testing.T) {
	var got []float64
	capture := neural.Func(func(in []float64) []float64 {
		got = append([]float64(nil), in...)
		return neural.Straight
	})
	a := newTestAgent(t, capture)
	a.pos = components.Position{X: 300, Y: 120}
	a.heading = components.HeadingUp
	a.food = components.Position{X: 20, Y: 40}
	a.total = 1
	a.tail = []components.Position{{X: 300, Y: 140}}

	a.Think()

	if len(got) != 2704 || len(got) != testWorld.NumInputs() {
		t.Fatalf("input length = %d, want 2704", len(got))
	}

	idx := func(p components.Position) int {
		return 3 * ((p.Y/20)*testWorld.Cols() + p.X/20)
	}
	if got[idx(a.pos)] != 1 {
		t.Error("head flag not set")
	}
	if got[idx(components.Position{X: 300, Y: 140})+1] != 1 {
		t.Error("tail flag not set")
	}
	if got[idx(a.food)+2] != 1 {
		t.Error("food flag not set")
	}

	var ones int
	for _, v := range got[:2700] {
		if v == 1 {
			ones++
		}
	}
	if ones != 3 {
		t.Errorf("%d grid flags set, want 3", ones)
	}

	// Position is normalized by the playfield; the x heading is encoded
	// twice and the y heading never.
	tail := got[2700:]
	want := []float64{0.5, 0.2, 0.5, 0.5}
	for i := range want {
		if tail[i] != want[i] {
			t.Errorf("trailing inputs = %v, want %v", tail, want)
			break
		}
	}
}
