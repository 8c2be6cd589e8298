// Package renderer draws the board: every cell in a scene as a filled
// square, colored by what it represents.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakevo/components"
	"github.com/pthm-cable/snakevo/scene"
)

// Cell colors.
var (
	BoardBackground = rl.Color{R: 51, G: 51, B: 51, A: 255}
	HeadColor       = rl.Color{R: 255, G: 255, B: 255, A: 255}
	TailColor       = rl.Color{R: 255, G: 255, B: 255, A: 200}
	CorpseColor     = rl.Color{R: 0, G: 0, B: 200, A: 255}
	FoodColor       = rl.Color{R: 255, G: 0, B: 50, A: 255}
)

// SpriteColor returns the fill color for a cell of the given kind.
func SpriteColor(kind components.SpriteKind) rl.Color {
	switch kind {
	case components.SpriteHead:
		return HeadColor
	case components.SpriteTail:
		return TailColor
	case components.SpriteCorpse:
		return CorpseColor
	case components.SpriteFood:
		return FoodColor
	default:
		return rl.Magenta
	}
}

// drawOrder puts food under tails and heads on top.
var drawOrder = []components.SpriteKind{
	components.SpriteFood,
	components.SpriteTail,
	components.SpriteHead,
	components.SpriteCorpse,
}

// Board draws a scene onto the playfield.
type Board struct {
	width, height int32
	cell          int32

	// reused between frames
	layers map[components.SpriteKind][]components.Cell
}

// NewBoard creates a board of the given pixel size and cell size.
func NewBoard(width, height, cell int32) *Board {
	return &Board{
		width:  width,
		height: height,
		cell:   cell,
		layers: make(map[components.SpriteKind][]components.Cell, len(drawOrder)),
	}
}

// Draw fills the playfield background and every cell of s.
func (b *Board) Draw(s *scene.Scene) {
	rl.DrawRectangle(0, 0, b.width, b.height, BoardBackground)

	for k := range b.layers {
		b.layers[k] = b.layers[k][:0]
	}
	s.Each(func(c components.Cell, sp components.Sprite) {
		b.layers[sp.Kind] = append(b.layers[sp.Kind], c)
	})

	for _, kind := range drawOrder {
		color := SpriteColor(kind)
		for _, c := range b.layers[kind] {
			rl.DrawRectangle(c.X, c.Y, b.cell, b.cell, color)
		}
	}
}

// Size returns the playfield size in pixels.
func (b *Board) Size() (width, height int32) {
	return b.width, b.height
}
