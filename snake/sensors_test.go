package snake

import (
	"testing"

	"github.com/pthm-cable/snakevo/components"
)

func TestClearSensors(t *testing.T) {
	tests := []struct {
		name               string
		pos                components.Position
		heading            components.Heading
		tail               []components.Position
		ahead, left, right bool
	}{
		{
			name:    "open field",
			pos:     components.Position{X: 300, Y: 300},
			heading: components.HeadingRight,
			ahead:   true, left: true, right: true,
		},
		{
			name:    "facing right wall",
			pos:     components.Position{X: 580, Y: 300},
			heading: components.HeadingRight,
			ahead:   false, left: true, right: true,
		},
		{
			name:    "top left corner heading up",
			pos:     components.Position{X: 0, Y: 0},
			heading: components.HeadingUp,
			ahead:   false, left: false, right: true,
		},
		{
			name:    "tail on the left going down",
			pos:     components.Position{X: 300, Y: 300},
			heading: components.HeadingDown,
			tail:    []components.Position{{X: 320, Y: 300}},
			ahead:   true, left: false, right: true,
		},
		{
			name:    "tail on the right going left",
			pos:     components.Position{X: 300, Y: 300},
			heading: components.HeadingLeft,
			tail:    []components.Position{{X: 300, Y: 280}},
			ahead:   true, left: true, right: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAgent(t, nil)
			a.pos, a.heading, a.tail = tt.pos, tt.heading, tt.tail
			a.total = len(tt.tail)

			if got := a.ClearAhead(); got != tt.ahead {
				t.Errorf("ClearAhead = %v, want %v", got, tt.ahead)
			}
			if got := a.ClearLeft(); got != tt.left {
				t.Errorf("ClearLeft = %v, want %v", got, tt.left)
			}
			if got := a.ClearRight(); got != tt.right {
				t.Errorf("ClearRight = %v, want %v", got, tt.right)
			}
		})
	}
}

func TestFoodSensors(t *testing.T) {
	tests := []struct {
		name               string
		heading            components.Heading
		food               components.Position
		ahead, left, right bool
		dx, dy             int
	}{
		{"ahead moving right", components.HeadingRight, components.Position{X: 400, Y: 300}, true, false, false, 1, 0},
		{"behind moving right", components.HeadingRight, components.Position{X: 200, Y: 300}, false, false, false, -1, 0},
		{"left moving right", components.HeadingRight, components.Position{X: 300, Y: 100}, false, true, false, 0, -1},
		{"right moving right", components.HeadingRight, components.Position{X: 300, Y: 500}, false, false, true, 0, 1},
		{"left moving up", components.HeadingUp, components.Position{X: 100, Y: 300}, false, true, false, -1, 0},
		{"right moving down", components.HeadingDown, components.Position{X: 100, Y: 300}, false, false, true, -1, 0},
		{"ahead moving up", components.HeadingUp, components.Position{X: 300, Y: 40}, true, false, false, 0, -1},
		{"diagonal", components.HeadingRight, components.Position{X: 400, Y: 100}, false, false, false, 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAgent(t, nil)
			a.pos = components.Position{X: 300, Y: 300}
			a.heading = tt.heading
			a.food = tt.food

			if got := a.FoodAhead(); got != tt.ahead {
				t.Errorf("FoodAhead = %v, want %v", got, tt.ahead)
			}
			if got := a.FoodLeft(); got != tt.left {
				t.Errorf("FoodLeft = %v, want %v", got, tt.left)
			}
			if got := a.FoodRight(); got != tt.right {
				t.Errorf("FoodRight = %v, want %v", got, tt.right)
			}
			if a.FoodDirectionX() != tt.dx || a.FoodDirectionY() != tt.dy {
				t.Errorf("food direction = (%d,%d), want (%d,%d)",
					a.FoodDirectionX(), a.FoodDirectionY(), tt.dx, tt.dy)
			}
		})
	}
}

func TestSensorsArePure(t *testing.T) {
	a := newTestAgent(t, nil)
	a.pos = components.Position{X: 300, Y: 300}
	before := a.View()

	a.ClearAhead()
	a.ClearLeft()
	a.ClearRight()
	a.FoodAhead()
	a.FoodLeft()
	a.FoodRight()
	a.Inputs()

	after := a.View()
	if before.Head != after.Head || before.Food != after.Food || before.Score != after.Score || a.Locked() {
		t.Error("sensors mutated agent state")
	}
}
