package renderer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakevo/components"
)

func TestSpriteColor(t *testing.T) {
	tests := []struct {
		kind components.SpriteKind
		want rl.Color
	}{
		{components.SpriteHead, rl.Color{R: 255, G: 255, B: 255, A: 255}},
		{components.SpriteTail, rl.Color{R: 255, G: 255, B: 255, A: 200}},
		{components.SpriteCorpse, rl.Color{R: 0, G: 0, B: 200, A: 255}},
		{components.SpriteFood, rl.Color{R: 255, G: 0, B: 50, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := SpriteColor(tt.kind); got != tt.want {
				t.Errorf("SpriteColor(%s) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestDrawOrderCoversEveryKind(t *testing.T) {
	seen := map[components.SpriteKind]bool{}
	for _, k := range drawOrder {
		seen[k] = true
	}
	for _, k := range []components.SpriteKind{
		components.SpriteHead, components.SpriteTail,
		components.SpriteFood, components.SpriteCorpse,
	} {
		if !seen[k] {
			t.Errorf("%s missing from drawOrder", k)
		}
	}
}
