// Package scene holds the drawable cells of the visible agents in an ark
// world, rebuilt from agent views every frame.
package scene

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakevo/components"
	"github.com/pthm-cable/snakevo/snake"
)

// Scene is an ECS world of Cell+Sprite entities.
type Scene struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Cell, components.Sprite]
	filter *ecs.Filter2[components.Cell, components.Sprite]

	entities []ecs.Entity
}

// New creates an empty scene.
func New() *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:  world,
		mapper: ecs.NewMap2[components.Cell, components.Sprite](world),
		filter: ecs.NewFilter2[components.Cell, components.Sprite](world),
	}
}

// Rebuild replaces the scene content with the cells of views. A live agent
// contributes its food, tail segments and head, in that order; a dead agent
// only leaves a corpse where its head was.
func (s *Scene) Rebuild(views []snake.AgentView) {
	for _, e := range s.entities {
		s.world.RemoveEntity(e)
	}
	s.entities = s.entities[:0]

	for owner, v := range views {
		if v.Dead {
			s.add(v.Head, components.SpriteCorpse, owner)
			continue
		}
		s.add(v.Food, components.SpriteFood, owner)
		for _, seg := range v.Tail {
			s.add(seg, components.SpriteTail, owner)
		}
		s.add(v.Head, components.SpriteHead, owner)
	}
}

func (s *Scene) add(p components.Position, kind components.SpriteKind, owner int) {
	cell := components.Cell{X: int32(p.X), Y: int32(p.Y)}
	sprite := components.Sprite{Kind: kind, Owner: owner}
	s.entities = append(s.entities, s.mapper.NewEntity(&cell, &sprite))
}

// Each calls fn for every cell in the scene. Order is unspecified.
func (s *Scene) Each(fn func(cell components.Cell, sprite components.Sprite)) {
	query := s.filter.Query()
	for query.Next() {
		cell, sprite := query.Get()
		fn(*cell, *sprite)
	}
}

// Len returns the number of cells in the scene.
func (s *Scene) Len() int {
	return len(s.entities)
}

// Count returns the number of cells of the given kind.
func (s *Scene) Count(kind components.SpriteKind) int {
	n := 0
	s.Each(func(_ components.Cell, sprite components.Sprite) {
		if sprite.Kind == kind {
			n++
		}
	})
	return n
}
