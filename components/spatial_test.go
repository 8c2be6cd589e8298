package components

import (
	"math"
	"testing"
)

func TestPositionDist(t *testing.T) {
	tests := []struct {
		a, b Position
		want float64
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{3, 4}, 5},
		{Position{20, 40}, Position{20, 0}, 40},
	}
	for _, tt := range tests {
		if got := tt.a.Dist(tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%v.Dist(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPositionIsValueType(t *testing.T) {
	p := Position{X: 20, Y: 20}
	q := p.Add(20, 0)

	if p.X != 20 {
		t.Errorf("Add mutated receiver: %v", p)
	}
	if q != (Position{X: 40, Y: 20}) {
		t.Errorf("Add = %v, want {40 20}", q)
	}
	if s := (Position{X: 2, Y: 3}).Scale(20); s != (Position{X: 40, Y: 60}) {
		t.Errorf("Scale = %v, want {40 60}", s)
	}
}

func TestPositionClamp(t *testing.T) {
	tests := []struct {
		in, want Position
	}{
		{Position{-20, 100}, Position{0, 100}},
		{Position{600, 600}, Position{580, 580}},
		{Position{40, -20}, Position{40, 0}},
	}
	for _, tt := range tests {
		if got := tt.in.Clamp(580, 580); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
