package snake

import "github.com/pthm-cable/snakevo/components"

// Inputs encodes the whole grid row-major, three flags per cell:
// head here, tail here, food here.
func (a *Agent) Inputs() []float64 {
	cols, rows, cell := a.world.Cols(), a.world.Rows(), a.world.Cell
	inputs := make([]float64, 0, 3*cols*rows+4)

	occupied := make(map[components.Position]bool, len(a.tail))
	for _, seg := range a.tail {
		occupied[seg] = true
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p := components.Position{X: x * cell, Y: y * cell}
			inputs = append(inputs,
				flag(a.pos == p),
				flag(occupied[p]),
				flag(a.food == p),
			)
		}
	}
	return inputs
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// isClear reports whether p is inside the playfield and off the tail.
func (a *Agent) isClear(p components.Position) bool {
	maxX := a.world.Width - a.world.Cell
	maxY := a.world.Height - a.world.Cell
	if p.X < 0 || p.X > maxX || p.Y < 0 || p.Y > maxY {
		return false
	}
	for _, seg := range a.tail {
		if p.Dist(seg) < 1 {
			return false
		}
	}
	return true
}

func (a *Agent) nextAhead() components.Position {
	return a.pos.Add(a.heading.X*a.world.Cell, a.heading.Y*a.world.Cell)
}

func (a *Agent) nextLeft() components.Position {
	c := a.world.Cell
	p := a.pos
	switch {
	case a.heading.Y < 0:
		p = p.Add(-c, 0)
	case a.heading.Y > 0:
		p = p.Add(c, 0)
	}
	switch {
	case a.heading.X > 0:
		p = p.Add(0, -c)
	case a.heading.X < 0:
		p = p.Add(0, c)
	}
	return p
}

func (a *Agent) nextRight() components.Position {
	c := a.world.Cell
	p := a.pos
	switch {
	case a.heading.Y < 0:
		p = p.Add(c, 0)
	case a.heading.Y > 0:
		p = p.Add(-c, 0)
	}
	switch {
	case a.heading.X > 0:
		p = p.Add(0, c)
	case a.heading.X < 0:
		p = p.Add(0, -c)
	}
	return p
}

// ClearAhead reports whether the next cell straight ahead is free.
func (a *Agent) ClearAhead() bool { return a.isClear(a.nextAhead()) }

// ClearLeft reports whether the cell to the left of the head is free.
func (a *Agent) ClearLeft() bool { return a.isClear(a.nextLeft()) }

// ClearRight reports whether the cell to the right of the head is free.
func (a *Agent) ClearRight() bool { return a.isClear(a.nextRight()) }

// FoodDirectionX returns the sign of food.X - head.X.
func (a *Agent) FoodDirectionX() int { return sign(a.food.X - a.pos.X) }

// FoodDirectionY returns the sign of food.Y - head.Y.
func (a *Agent) FoodDirectionY() int { return sign(a.food.Y - a.pos.Y) }

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// FoodAhead reports whether the food lies on the heading's line, in front.
func (a *Agent) FoodAhead() bool {
	h, p, f := a.heading, a.pos, a.food
	switch {
	case h.X > 0 && p.Y == f.Y && f.X > p.X:
		return true
	case h.X < 0 && p.Y == f.Y && f.X < p.X:
		return true
	case h.Y > 0 && p.X == f.X && f.Y > p.Y:
		return true
	case h.Y < 0 && p.X == f.X && f.Y < p.Y:
		return true
	}
	return false
}

// FoodLeft reports whether the food lies in line with the head on its left.
// Only the first matching heading case is consulted.
func (a *Agent) FoodLeft() bool {
	h, p, f := a.heading, a.pos, a.food
	switch {
	case h.X > 0 && f.Y < p.Y:
		return f.X == p.X
	case h.X < 0 && f.Y > p.Y:
		return f.X == p.X
	case h.Y > 0 && f.X > p.X:
		return f.Y == p.Y
	case h.Y < 0 && f.X < p.X:
		return f.Y == p.Y
	}
	return false
}

// FoodRight mirrors FoodLeft.
func (a *Agent) FoodRight() bool {
	h, p, f := a.heading, a.pos, a.food
	switch {
	case h.X > 0 && f.Y > p.Y:
		return f.X == p.X
	case h.X < 0 && f.Y < p.Y:
		return f.X == p.X
	case h.Y > 0 && f.X < p.X:
		return f.Y == p.Y
	case h.Y < 0 && f.X > p.X:
		return f.Y == p.Y
	}
	return false
}
