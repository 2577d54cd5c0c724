package swarm

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"
)

// approaching reports whether a and b close in on each other: the velocity
// of a relative to b has a non-negative component along the a->b axis.
func approaching(a, b *Agent) bool {
	return a.Vel.Sub(b.Vel).Dot(b.Pos.Sub(a.Pos)) >= 0
}

// ResolveCollision bounces two overlapping members off each other and pushes
// them apart. Velocities are exchanged only when the pair is approaching;
// the positional correction is always applied. It reports whether the
// velocities changed.
func ResolveCollision(a, b *Agent, energyLossFactor, correctionSupplement float64) bool {
	bounced := false
	if approaching(a, b) {
		exchangeVelocities(a, b, energyLossFactor)
		bounced = true
	}
	separate(a, b, correctionSupplement)
	return bounced
}

// exchangeVelocities applies the 1-D elastic collision formula along the
// line of centers. The tangential components are untouched.
func exchangeVelocities(a, b *Agent, energyLossFactor float64) {
	delta := b.Pos.Sub(a.Pos)
	angle := -math.Atan2(delta.Y, delta.X)

	m1, m2 := a.Mass, b.Mass
	total := m1 + m2

	u1 := a.Vel.Rotate(angle)
	u2 := b.Vel.Rotate(angle)

	v1 := geometry.Vector2D{X: (u1.X*(m1-m2) + 2*m2*u2.X) / total, Y: u1.Y}
	v2 := geometry.Vector2D{X: (u2.X*(m2-m1) + 2*m1*u1.X) / total, Y: u2.Y}

	a.Vel = v1.Rotate(-angle).Mul(energyLossFactor)
	b.Vel = v2.Rotate(-angle).Mul(energyLossFactor)
}

// separate moves the pair apart along the line of centers. The overlap is
// split inversely to mass, then both are pushed by supplement as well.
// Coincident centers are split along the X axis.
func separate(a, b *Agent, supplement float64) {
	delta := b.Pos.Sub(a.Pos)
	d := delta.Len()
	overlap := a.Radius + b.Radius - d
	if overlap <= 0 {
		return
	}

	normal, err := delta.Div(d)
	if err != nil || d <= geometry.Epsilon {
		normal = geometry.Vector2D{X: 1}
	}

	total := a.Mass + b.Mass
	shareA, shareB := 0.5, 0.5
	if total > 0 {
		shareA = b.Mass / total
		shareB = a.Mass / total
	}

	a.Pos = a.Pos.Sub(normal.Mul(overlap*shareA + supplement))
	b.Pos = b.Pos.Add(normal.Mul(overlap*shareB + supplement))
}
