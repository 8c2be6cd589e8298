package components

import "math"

// Position is a grid-aligned pixel coordinate. It is a value type; moving
// an agent produces a new Position rather than mutating one in place.
type Position struct {
	X, Y int
}

// Add returns p offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Scale returns p with both coordinates multiplied by s.
func (p Position) Scale(s int) Position {
	return Position{X: p.X * s, Y: p.Y * s}
}

// Dist returns the Euclidean distance between p and q.
func (p Position) Dist(q Position) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Clamp constrains p to the rectangle [0,maxX]x[0,maxY].
func (p Position) Clamp(maxX, maxY int) Position {
	return Position{X: clampInt(p.X, 0, maxX), Y: clampInt(p.Y, 0, maxY)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Heading is a unit velocity with components in {-1, 0, 1}.
// At most one component is nonzero.
type Heading struct {
	X, Y int
}

// Common headings.
var (
	HeadingRight = Heading{X: 1}
	HeadingLeft  = Heading{X: -1}
	HeadingDown  = Heading{Y: 1}
	HeadingUp    = Heading{Y: -1}
)
