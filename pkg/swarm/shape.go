package swarm

import (
	"errors"
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"
)

// ErrPlacement is returned when members cannot be spawned without
// overlapping.
var ErrPlacement = errors.New("cannot place swarm members without overlap")

// maxPlacementAttempts bounds the random draws for a single member.
const maxPlacementAttempts = 10000

// Silhouette returns the target positions for the configured shape,
// centred in the world.
func Silhouette(cfg *Config) []geometry.Vector2D {
	center := geometry.Vector2D{X: cfg.WorldWidth / 2, Y: cfg.WorldHeight / 2}
	switch cfg.Shape {
	case ShapeSquare:
		return squareOutline(center, cfg.ShapeRadius, cfg.ParticleRadius)
	default:
		return circleOutline(center, cfg.ShapeRadius, cfg.ParticleRadius)
	}
}

// circleOutline spaces targets evenly so that neighbours just touch.
func circleOutline(center geometry.Vector2D, radius, r float64) []geometry.Vector2D {
	n := int(math.Floor(2 * math.Pi * radius / (2 * r)))
	if n < 1 {
		n = 1
	}
	step := 2 * math.Pi / float64(n)
	out := make([]geometry.Vector2D, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, center.Add(geometry.NewVectorPolar(radius, float64(i)*step)))
	}
	return out
}

// squareOutline lays targets along the four edges of a square of half side
// radius, top and bottom edges first, then the sides without their corners.
func squareOutline(center geometry.Vector2D, radius, r float64) []geometry.Vector2D {
	left, right := center.X-radius, center.X+radius
	top, bottom := center.Y-radius, center.Y+radius

	var out []geometry.Vector2D
	for x := left; x < right+r; x += 2 * r {
		out = append(out, geometry.Vector2D{X: x, Y: top}, geometry.Vector2D{X: x, Y: bottom})
	}
	for y := top + 2*r; y < bottom; y += 2 * r {
		out = append(out, geometry.Vector2D{X: left, Y: y}, geometry.Vector2D{X: right, Y: y})
	}
	return out
}

// buildAgents creates the targets followed by randomly placed members.
// Members never overlap a target or a previously placed member.
func buildAgents(cfg *Config, rng Source) ([]*Agent, error) {
	outline := Silhouette(cfg)
	agents := make([]*Agent, 0, len(outline)+cfg.NumSwarmMembers)
	for _, p := range outline {
		agents = append(agents, NewTarget(p, cfg.ParticleRadius))
	}

	r := cfg.ParticleRadius
	for i := 0; i < cfg.NumSwarmMembers; i++ {
		pos, ok := freeSpot(agents, cfg, rng)
		if !ok {
			return nil, fmt.Errorf("%w: member %d after %d attempts", ErrPlacement, i, maxPlacementAttempts)
		}
		vel := geometry.Vector2D{X: randomSign(rng), Y: randomSign(rng)}.Mul(cfg.InitialSpeed)
		agents = append(agents, NewMember(i, pos, vel, r, cfg.Mass, cfg.RecentPositionsCapacity))
	}
	return agents, nil
}

func freeSpot(placed []*Agent, cfg *Config, rng Source) (geometry.Vector2D, bool) {
	r := cfg.ParticleRadius
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		p := geometry.Vector2D{
			X: r + rng.Float64()*(cfg.WorldWidth-2*r),
			Y: r + rng.Float64()*(cfg.WorldHeight-2*r),
		}
		if !overlapsAny(p, r, placed) {
			return p, true
		}
	}
	return geometry.Vector2D{}, false
}

func overlapsAny(p geometry.Vector2D, r float64, placed []*Agent) bool {
	for _, a := range placed {
		if p.DistanceTo(a.Pos)-(r+a.Radius) < 0 {
			return true
		}
	}
	return false
}

func randomSign(rng Source) float64 {
	if rng.Float64() < 0.5 {
		return -1
	}
	return 1
}
