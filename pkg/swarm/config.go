package swarm

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// Shape names the silhouette the targets are laid out on.
type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeSquare Shape = "square"
)

// Default swarm coefficients. Inertia is the constriction coefficient for
// c1 = c2 = 2.05 and cognition/social are 2.05 multiplied by it.
const (
	DefaultCognition = 1.496179765663133
	DefaultSocial    = 1.496179765663133
	DefaultInertia   = 0.7298437881283576
)

// ErrInvalidConfig wraps every configuration violation reported by Validate.
var ErrInvalidConfig = errors.New("invalid swarm configuration")

// Config holds every parameter of a run. It is never mutated by the engine.
type Config struct {
	// World
	WorldWidth  float64 `json:"world_width" yaml:"world_width"`
	WorldHeight float64 `json:"world_height" yaml:"world_height"`

	// Population and silhouette
	NumSwarmMembers int     `json:"num_swarm_members" yaml:"num_swarm_members"`
	Shape           Shape   `json:"shape" yaml:"shape"`
	ShapeRadius     float64 `json:"shape_radius" yaml:"shape_radius"`
	ParticleRadius  float64 `json:"particle_radius" yaml:"particle_radius"`
	Mass            float64 `json:"mass" yaml:"mass"`
	InitialSpeed    float64 `json:"initial_speed" yaml:"initial_speed"`

	// Sensing
	ScentRange                float64 `json:"scent_range" yaml:"scent_range"`
	SocialRange               float64 `json:"social_range" yaml:"social_range"`
	SocialScentIncreaseFactor float64 `json:"social_scent_increase_factor" yaml:"social_scent_increase_factor"`

	// Velocity blending
	Cognition        float64  `json:"cognition" yaml:"cognition"`
	Social           float64  `json:"social" yaml:"social"`
	Inertia          float64  `json:"inertia" yaml:"inertia"`
	MaxSpeed         float64  `json:"max_speed" yaml:"max_speed"`
	MaxTurningRadius *float64 `json:"max_turning_radius,omitempty" yaml:"max_turning_radius,omitempty"` // degrees per tick, nil disables
	StagnationLimit  *int     `json:"stagnation_limit,omitempty" yaml:"stagnation_limit,omitempty"`     // nil means never reset

	// Collisions
	CollisionEnergyLossFactor     float64 `json:"collision_energy_loss_factor" yaml:"collision_energy_loss_factor"`
	CollisionCorrectionSupplement float64 `json:"collision_correction_supplement" yaml:"collision_correction_supplement"`
	ResolveAllCollisions          bool    `json:"resolve_all_collisions" yaml:"resolve_all_collisions"`

	// Convergence
	RecentPositionsCapacity   int     `json:"recent_positions_capacity" yaml:"recent_positions_capacity"`
	StoppingRadius            float64 `json:"stopping_radius" yaml:"stopping_radius"`
	StoppedParticlesThreshold float64 `json:"stopped_particles_threshold" yaml:"stopped_particles_threshold"`
	MaxStepsBeforeStopping    int     `json:"max_steps_before_stopping" yaml:"max_steps_before_stopping"`

	// Engine
	SpatialIndex bool   `json:"spatial_index" yaml:"spatial_index"`
	Seed         uint64 `json:"seed" yaml:"seed"` // 0 picks a random seed
}

// DefaultConfig returns a configuration that converges on a circle in a few
// thousand ticks.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:                    900,
		WorldHeight:                   900,
		NumSwarmMembers:               100,
		Shape:                         ShapeCircle,
		ShapeRadius:                   300,
		ParticleRadius:                5,
		Mass:                          5,
		InitialSpeed:                  1,
		ScentRange:                    150,
		SocialRange:                   60,
		SocialScentIncreaseFactor:     1.2,
		Cognition:                     DefaultCognition,
		Social:                        DefaultSocial,
		Inertia:                       DefaultInertia,
		MaxSpeed:                      4,
		CollisionEnergyLossFactor:     0.9,
		CollisionCorrectionSupplement: 0.5,
		RecentPositionsCapacity:       30,
		StoppingRadius:                3,
		StoppedParticlesThreshold:     0.9,
		MaxStepsBeforeStopping:        5000,
	}
}

// Clone returns a deep copy, including the optional fields.
func (c *Config) Clone() *Config {
	cp := *c
	if c.MaxTurningRadius != nil {
		v := *c.MaxTurningRadius
		cp.MaxTurningRadius = &v
	}
	if c.StagnationLimit != nil {
		v := *c.StagnationLimit
		cp.StagnationLimit = &v
	}
	return &cp
}

// Validate reports every violated constraint at once. Values are never
// clamped.
func (c *Config) Validate() error {
	var err error
	fail := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	for _, f := range c.floatFields() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			fail("%s must be a finite number, got %v", f.name, f.value)
		}
	}

	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		fail("world dimensions must be positive, got %vx%v", c.WorldWidth, c.WorldHeight)
	}
	if c.NumSwarmMembers <= 0 {
		fail("num_swarm_members must be at least 1, got %d", c.NumSwarmMembers)
	}
	if c.Shape != ShapeCircle && c.Shape != ShapeSquare {
		fail("shape must be %q or %q, got %q", ShapeCircle, ShapeSquare, c.Shape)
	}
	if c.ShapeRadius <= 0 {
		fail("shape_radius must be positive, got %v", c.ShapeRadius)
	}
	if c.ParticleRadius <= 0 {
		fail("particle_radius must be positive, got %v", c.ParticleRadius)
	}
	if c.Mass <= 0 {
		fail("mass must be positive, got %v", c.Mass)
	}
	if c.InitialSpeed < 0 {
		fail("initial_speed must not be negative, got %v", c.InitialSpeed)
	}
	if c.ScentRange < 0 {
		fail("scent_range must not be negative, got %v", c.ScentRange)
	}
	if c.SocialRange < 0 {
		fail("social_range must not be negative, got %v", c.SocialRange)
	}
	if c.SocialScentIncreaseFactor < 0 {
		fail("social_scent_increase_factor must not be negative, got %v", c.SocialScentIncreaseFactor)
	}
	if c.Cognition < 0 || c.Social < 0 || c.Inertia < 0 {
		fail("cognition, social and inertia must not be negative, got %v, %v, %v", c.Cognition, c.Social, c.Inertia)
	}
	if c.MaxSpeed <= 0 {
		fail("max_speed must be positive, got %v", c.MaxSpeed)
	}
	if c.MaxTurningRadius != nil && *c.MaxTurningRadius < 0 {
		fail("max_turning_radius must not be negative, got %v", *c.MaxTurningRadius)
	}
	if c.StagnationLimit != nil && *c.StagnationLimit < 0 {
		fail("stagnation_limit must not be negative, got %d", *c.StagnationLimit)
	}
	if c.CollisionEnergyLossFactor < 0 || c.CollisionEnergyLossFactor > 1 {
		fail("collision_energy_loss_factor must be in [0,1], got %v", c.CollisionEnergyLossFactor)
	}
	if c.CollisionCorrectionSupplement < 0 {
		fail("collision_correction_supplement must not be negative, got %v", c.CollisionCorrectionSupplement)
	}
	if c.RecentPositionsCapacity < 1 {
		fail("recent_positions_capacity must be at least 1, got %d", c.RecentPositionsCapacity)
	}
	if c.StoppingRadius < 0 {
		fail("stopping_radius must not be negative, got %v", c.StoppingRadius)
	}
	if c.StoppedParticlesThreshold < 0 || c.StoppedParticlesThreshold > 1 {
		fail("stopped_particles_threshold must be in [0,1], got %v", c.StoppedParticlesThreshold)
	}
	if c.MaxStepsBeforeStopping < 1 {
		fail("max_steps_before_stopping must be at least 1, got %d", c.MaxStepsBeforeStopping)
	}
	if c.WorldWidth > 0 && c.WorldHeight > 0 && c.ParticleRadius > 0 &&
		(2*c.ParticleRadius > c.WorldWidth || 2*c.ParticleRadius > c.WorldHeight) {
		fail("particle_radius %v does not fit in a %vx%v world", c.ParticleRadius, c.WorldWidth, c.WorldHeight)
	}
	return err
}

type namedFloat struct {
	name  string
	value float64
}

// floatFields lists every float parameter, optional ones only when set.
func (c *Config) floatFields() []namedFloat {
	fields := []namedFloat{
		{"world_width", c.WorldWidth},
		{"world_height", c.WorldHeight},
		{"shape_radius", c.ShapeRadius},
		{"particle_radius", c.ParticleRadius},
		{"mass", c.Mass},
		{"initial_speed", c.InitialSpeed},
		{"scent_range", c.ScentRange},
		{"social_range", c.SocialRange},
		{"social_scent_increase_factor", c.SocialScentIncreaseFactor},
		{"cognition", c.Cognition},
		{"social", c.Social},
		{"inertia", c.Inertia},
		{"max_speed", c.MaxSpeed},
		{"collision_energy_loss_factor", c.CollisionEnergyLossFactor},
		{"collision_correction_supplement", c.CollisionCorrectionSupplement},
		{"stopping_radius", c.StoppingRadius},
		{"stopped_particles_threshold", c.StoppedParticlesThreshold},
	}
	if c.MaxTurningRadius != nil {
		fields = append(fields, namedFloat{"max_turning_radius", *c.MaxTurningRadius})
	}
	return fields
}

// Float64Ptr is a helper for the optional float fields.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr is a helper for the optional int fields.
func IntPtr(v int) *int { return &v }
