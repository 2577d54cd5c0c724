package swarm

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"
)

type gridKey struct {
	x, y int
}

// spatialGrid is a uniform hash grid over agent indices. The cell size is at
// least the longest sensing distance, so a 3x3 block around an agent holds
// every agent it can interact with.
type spatialGrid struct {
	cellSize float64
	cells    map[gridKey][]int
	scratch  []int
}

// minCellSize avoids tiny cells or a division by zero when every range is 0.
const minCellSize = 10.0

func newSpatialGrid(cfg *Config, agents []*Agent) *spatialGrid {
	maxRadius := 0.0
	for _, a := range agents {
		maxRadius = math.Max(maxRadius, a.Radius)
	}
	cellSize := math.Max(cfg.ScentRange, cfg.SocialRange)
	cellSize = math.Max(cellSize, 2*maxRadius)
	cellSize = math.Max(cellSize, minCellSize)

	g := &spatialGrid{
		cellSize: cellSize,
		cells:    make(map[gridKey][]int),
	}
	g.rebuild(agents)
	return g
}

func (g *spatialGrid) key(p geometry.Vector2D) gridKey {
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// rebuild re-buckets every agent, reusing the slices already allocated.
func (g *spatialGrid) rebuild(agents []*Agent) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	for i, a := range agents {
		k := g.key(a.Pos)
		g.cells[k] = append(g.cells[k], i)
	}
}

// move re-buckets agent idx when it crossed a cell border.
func (g *spatialGrid) move(idx int, from, to geometry.Vector2D) {
	oldKey, newKey := g.key(from), g.key(to)
	if oldKey == newKey {
		return
	}
	cell := g.cells[oldKey]
	if i := slices.Index(cell, idx); i >= 0 {
		g.cells[oldKey] = slices.Delete(cell, i, i+1)
	}
	g.cells[newKey] = append(g.cells[newKey], idx)
}

// nearby returns the indices stored in the 3x3 block around p in ascending
// order, matching the order of a full scan. The slice is reused by the next
// call.
func (g *spatialGrid) nearby(p geometry.Vector2D) []int {
	g.scratch = g.scratch[:0]
	c := g.key(p)
	for i := c.x - 1; i <= c.x+1; i++ {
		for j := c.y - 1; j <= c.y+1; j++ {
			if ids, ok := g.cells[gridKey{x: i, y: j}]; ok {
				g.scratch = append(g.scratch, ids...)
			}
		}
	}
	slices.Sort(g.scratch)
	return g.scratch
}
