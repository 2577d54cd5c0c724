package swarm

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"
)

// Source provides uniform draws in [0, 1). *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	Float64() float64
}

// UpdateVelocity blends inertia, cognition and social pull into a new
// velocity for member a. Nothing happens until both the personal and the
// global best have been sensed; it reports whether the velocity changed.
//
// The four uniform draws are taken in the order cognitive x, cognitive y,
// social x, social y.
func UpdateVelocity(a *Agent, global Best, cfg *Config, rng Source) bool {
	pb := a.Member.PersonalBest
	if !pb.Found() || !global.Found() {
		return false
	}

	r1 := geometry.Vector2D{X: rng.Float64(), Y: rng.Float64()}
	r2 := geometry.Vector2D{X: rng.Float64(), Y: rng.Float64()}

	cognitive := pb.Pos.Sub(a.Pos).Hadamard(r1).Mul(cfg.Cognition)
	social := global.Pos.Sub(a.Pos).Hadamard(r2).Mul(cfg.Social)
	desired := a.Vel.Mul(cfg.Inertia).Add(cognitive).Add(social)

	if cfg.MaxTurningRadius != nil {
		a.Vel = turnLimited(a.Vel, desired, geometry.DegToRad(*cfg.MaxTurningRadius), cfg.MaxSpeed)
	} else {
		a.Vel = desired.ClampLen(cfg.MaxSpeed)
	}
	return true
}

// turnLimited rotates the current heading towards desired by at most
// maxTurn radians and moves at min(|desired|, maxSpeed). A member at rest
// has no heading and takes the desired direction directly.
func turnLimited(current, desired geometry.Vector2D, maxTurn, maxSpeed float64) geometry.Vector2D {
	if current.IsZero() {
		return desired.ClampLen(maxSpeed)
	}
	speed := math.Min(desired.Len(), maxSpeed)
	heading := current.Angle()
	delta := geometry.WrapAngle(desired.Angle() - heading)
	delta = math.Max(-maxTurn, math.Min(maxTurn, delta))
	return geometry.NewVectorPolar(speed, heading+delta)
}
