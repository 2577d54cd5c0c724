package swarm

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"
)

func TestPositionHistory_EvictsOldest(t *testing.T) {
	h := NewPositionHistory(3)
	for i := 0; i < 5; i++ {
		h.Push(geometry.Vector2D{X: float64(i)})
	}
	if h.Len() != 3 || !h.Full() {
		t.Fatalf("Len = %d Full = %t, want 3 true", h.Len(), h.Full())
	}
	for i, want := range []float64{2, 3, 4} {
		if got := h.At(i).X; got != want {
			t.Errorf("At(%d).X = %v, want %v", i, got, want)
		}
	}

	h.Reset()
	if h.Len() != 0 || h.Cap() != 3 {
		t.Errorf("after Reset Len = %d Cap = %d", h.Len(), h.Cap())
	}
}

func TestPositionHistory_Converged(t *testing.T) {
	tests := []struct {
		name   string
		points []geometry.Vector2D
		radius float64
		want   bool
	}{
		{
			name:   "not full",
			points: []geometry.Vector2D{{X: 1, Y: 1}, {X: 1, Y: 1}},
			radius: 10,
			want:   false,
		},
		{
			name:   "full and stationary",
			points: []geometry.Vector2D{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}},
			radius: 0,
			want:   true,
		},
		{
			name:   "max pairwise distance equals radius",
			points: []geometry.Vector2D{{X: 0}, {X: 1}, {X: 3}},
			radius: 3,
			want:   true,
		},
		{
			name:   "spread too wide",
			points: []geometry.Vector2D{{X: 0}, {X: 1}, {X: 3.5}},
			radius: 3,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPositionHistory(3)
			for _, p := range tt.points {
				h.Push(p)
			}
			if got := h.Converged(tt.radius); got != tt.want {
				t.Errorf("Converged(%v) = %t, want %t", tt.radius, got, tt.want)
			}
		})
	}
}

func TestNewPositionHistory_MinimumCapacity(t *testing.T) {
	h := NewPositionHistory(0)
	if h.Cap() != 1 {
		t.Errorf("Cap = %d, want 1", h.Cap())
	}
}
