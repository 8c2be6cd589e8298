package ui

import "testing"

func TestAliveFraction(t *testing.T) {
	tests := []struct {
		name string
		data HUDData
		want float32
	}{
		{"empty population", HUDData{}, 0},
		{"all alive", HUDData{Alive: 55, Population: 55}, 1},
		{"some alive", HUDData{Alive: 11, Population: 55}, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.AliveFraction(); got != tt.want {
				t.Errorf("AliveFraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestControlsActionAny(t *testing.T) {
	if (ControlsAction{}).Any() {
		t.Error("zero action reports a click")
	}
	if !(ControlsAction{ClearBrains: true}).Any() {
		t.Error("ClearBrains not reported")
	}
}

func TestClamp01(t *testing.T) {
	for in, want := range map[float32]float32{-1: 0, 0.5: 0.5, 3: 1} {
		if got := clamp01(in); got != want {
			t.Errorf("clamp01(%v) = %v, want %v", in, got, want)
		}
	}
}
