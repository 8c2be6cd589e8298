package components

// SpriteKind identifies what a drawn cell represents.
type SpriteKind uint8

const (
	SpriteHead SpriteKind = iota
	SpriteTail
	SpriteFood
	SpriteCorpse // head of a dead agent
)

// String returns the sprite kind name.
func (k SpriteKind) String() string {
	switch k {
	case SpriteHead:
		return "head"
	case SpriteTail:
		return "tail"
	case SpriteFood:
		return "food"
	case SpriteCorpse:
		return "corpse"
	default:
		return "unknown"
	}
}

// Cell is the ECS component holding a drawable cell's pixel position.
type Cell struct {
	X, Y int32
}

// Sprite is the ECS component describing how a cell is drawn.
type Sprite struct {
	Kind  SpriteKind
	Owner int // population index of the agent the cell belongs to
}
