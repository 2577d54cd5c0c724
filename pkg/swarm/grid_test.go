package swarm

import (
	"slices"
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"
)

func gridConfig() *Config {
	cfg := DefaultConfig()
	cfg.WorldWidth, cfg.WorldHeight = 1000, 1000
	cfg.ScentRange = 100
	cfg.SocialRange = 50
	return cfg
}

func TestSpatialGrid_rebuild(t *testing.T) {
	// cell size = max(scent, social, 2*radius, 10) = 100
	agents := []*Agent{
		{Pos: geometry.Vector2D{X: 50, Y: 50}, Radius: 5},   // 0,0
		{Pos: geometry.Vector2D{X: 150, Y: 50}, Radius: 5},  // 1,0
		{Pos: geometry.Vector2D{X: 50, Y: 150}, Radius: 5},  // 0,1
		{Pos: geometry.Vector2D{X: 250, Y: 250}, Radius: 5}, // 2,2
	}
	g := newSpatialGrid(gridConfig(), agents)

	if g.cellSize != 100 {
		t.Fatalf("cellSize = %v, want 100", g.cellSize)
	}
	tests := []struct {
		key  gridKey
		want []int
	}{
		{gridKey{0, 0}, []int{0}},
		{gridKey{1, 0}, []int{1}},
		{gridKey{0, 1}, []int{2}},
		{gridKey{2, 2}, []int{3}},
		{gridKey{1, 1}, nil},
	}
	for _, tt := range tests {
		if got := g.cells[tt.key]; !slices.Equal(got, tt.want) {
			t.Errorf("cell %v = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestSpatialGrid_cellSizeFloors(t *testing.T) {
	cfg := gridConfig()
	cfg.ScentRange, cfg.SocialRange = 0, 0
	g := newSpatialGrid(cfg, []*Agent{{Radius: 2}})
	if g.cellSize != minCellSize {
		t.Errorf("cellSize = %v, want %v", g.cellSize, minCellSize)
	}
	g = newSpatialGrid(cfg, []*Agent{{Radius: 30}})
	if g.cellSize != 60 {
		t.Errorf("cellSize = %v, want twice the largest radius", g.cellSize)
	}
}

func TestSpatialGrid_nearby(t *testing.T) {
	agents := []*Agent{
		{Pos: geometry.Vector2D{X: 550, Y: 550}, Radius: 5}, // centre cell 5,5
		{Pos: geometry.Vector2D{X: 450, Y: 450}, Radius: 5}, // diagonal neighbour 4,4
		{Pos: geometry.Vector2D{X: 650, Y: 550}, Radius: 5}, // right neighbour 6,5
		{Pos: geometry.Vector2D{X: 750, Y: 550}, Radius: 5}, // two cells away 7,5
		{Pos: geometry.Vector2D{X: 10, Y: 10}, Radius: 5},   // far away
	}
	g := newSpatialGrid(gridConfig(), agents)

	got := g.nearby(geometry.Vector2D{X: 550, Y: 550})
	if want := []int{0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("nearby = %v, want %v", got, want)
	}
}

func TestSpatialGrid_move(t *testing.T) {
	agents := []*Agent{
		{Pos: geometry.Vector2D{X: 50, Y: 50}, Radius: 5},
		{Pos: geometry.Vector2D{X: 60, Y: 60}, Radius: 5},
	}
	g := newSpatialGrid(gridConfig(), agents)

	// same cell: no change
	g.move(0, agents[0].Pos, geometry.Vector2D{X: 70, Y: 70})
	if got := g.cells[gridKey{0, 0}]; !slices.Equal(got, []int{0, 1}) {
		t.Fatalf("cell 0,0 = %v after an in-cell move", got)
	}

	to := geometry.Vector2D{X: 120, Y: 50}
	g.move(0, agents[0].Pos, to)
	if got := g.cells[gridKey{0, 0}]; !slices.Equal(got, []int{1}) {
		t.Errorf("cell 0,0 = %v, want [1]", got)
	}
	if got := g.cells[gridKey{1, 0}]; !slices.Equal(got, []int{0}) {
		t.Errorf("cell 1,0 = %v, want [0]", got)
	}
	if got := g.nearby(geometry.Vector2D{X: 350, Y: 50}); len(got) != 0 {
		t.Errorf("nearby far from both = %v", got)
	}
}

func BenchmarkSpatialGrid_rebuild(b *testing.B) {
	agents := make([]*Agent, 1000)
	for i := range agents {
		agents[i] = &Agent{Pos: geometry.Vector2D{X: float64(i), Y: float64(i)}, Radius: 5}
	}
	g := newSpatialGrid(gridConfig(), agents)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.rebuild(agents)
	}
}

func BenchmarkSpatialGrid_nearby(b *testing.B) {
	agents := make([]*Agent, 1000)
	for i := range agents {
		agents[i] = &Agent{Pos: geometry.Vector2D{X: float64(i % 1000), Y: float64(i % 1000)}, Radius: 5}
	}
	g := newSpatialGrid(gridConfig(), agents)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.nearby(geometry.Vector2D{X: 500, Y: 500})
	}
}
