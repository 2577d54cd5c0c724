package swarm

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"
)

// Kind tells targets and swarm members apart.
type Kind uint8

const (
	// KindTarget is an immobile agent forming the silhouette.
	KindTarget Kind = iota
	// KindMember is a mobile agent running the full update.
	KindMember
)

func (k Kind) String() string {
	switch k {
	case KindTarget:
		return "target"
	case KindMember:
		return "member"
	default:
		return "unknown"
	}
}

// Best is an attraction point and its score. Lower is better.
type Best struct {
	Pos   geometry.Vector2D
	Score float64
}

// Found reports whether the score is finite, i.e. something was sensed.
func (b Best) Found() bool {
	return !math.IsInf(b.Score, 1)
}

// unsensed is the starting value of every best.
func unsensed(pos geometry.Vector2D) Best {
	return Best{Pos: pos, Score: math.Inf(1)}
}

// MemberState is the part of an agent only swarm members carry.
type MemberState struct {
	Index        int
	PersonalBest Best
	Stagnation   int
	Recent       *PositionHistory
	Stopped      bool
}

// Agent is either a target or a swarm member. Member is nil for targets.
type Agent struct {
	Kind   Kind
	Pos    geometry.Vector2D
	Vel    geometry.Vector2D
	Radius float64
	Mass   float64
	Member *MemberState
}

// NewTarget creates an immobile target.
func NewTarget(pos geometry.Vector2D, radius float64) *Agent {
	return &Agent{Kind: KindTarget, Pos: pos, Radius: radius}
}

// NewMember creates a swarm member with an empty personal best and a
// position history of the given capacity.
func NewMember(index int, pos, vel geometry.Vector2D, radius, mass float64, capacity int) *Agent {
	return &Agent{
		Kind:   KindMember,
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Mass:   mass,
		Member: &MemberState{
			Index:        index,
			PersonalBest: unsensed(pos),
			Recent:       NewPositionHistory(capacity),
		},
	}
}

// IsTarget reports whether the agent is part of the silhouette.
func (a *Agent) IsTarget() bool { return a.Kind == KindTarget }

// integrate moves the agent by one tick of velocity.
func (a *Agent) integrate() {
	a.Pos = a.Pos.Add(a.Vel)
}

// reflect keeps the agent inside [radius, bound-radius] on both axes and
// turns the offending velocity component back inward.
func (a *Agent) reflect(width, height float64) {
	a.Pos.X, a.Vel.X = reflectAxis(a.Pos.X, a.Vel.X, a.Radius, width)
	a.Pos.Y, a.Vel.Y = reflectAxis(a.Pos.Y, a.Vel.Y, a.Radius, height)
}

func reflectAxis(p, v, r, bound float64) (float64, float64) {
	if p+r > bound {
		return bound - r, -math.Abs(v)
	}
	if p-r < 0 {
		return r, math.Abs(v)
	}
	return p, v
}

// finite reports whether position and velocity are usable numbers.
func (a *Agent) finite() bool {
	return a.Pos.IsFinite() && a.Vel.IsFinite()
}
