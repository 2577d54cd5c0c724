package swarm

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"
)

// scripted replays fixed draws, then repeats the last one.
type scripted struct {
	values []float64
	next   int
}

func (s *scripted) Float64() float64 {
	v := s.values[min(s.next, len(s.values)-1)]
	s.next++
	return v
}

func velocityConfig() *Config {
	cfg := DefaultConfig()
	cfg.Inertia = 0.5
	cfg.Cognition = 1
	cfg.Social = 1
	cfg.MaxSpeed = 100
	return cfg
}

func TestUpdateVelocity_Blend(t *testing.T) {
	a := member(geometry.Vector2D{}, geometry.Vector2D{X: 2, Y: -2}, 1, 1)
	a.Member.PersonalBest = Best{Pos: geometry.Vector2D{X: 10}, Score: 10}
	global := Best{Pos: geometry.Vector2D{Y: 10}, Score: 5}

	if !UpdateVelocity(a, global, velocityConfig(), &scripted{values: []float64{0.5}}) {
		t.Fatal("expected the velocity to change")
	}
	// inertia (1,-1) + cognitive (5,0) + social (0,5)
	if !a.Vel.Eq(geometry.Vector2D{X: 6, Y: 4}) {
		t.Errorf("Vel = %s, want (6, 4)", a.Vel)
	}
}

func TestUpdateVelocity_DrawOrder(t *testing.T) {
	a := member(geometry.Vector2D{}, geometry.Vector2D{}, 1, 1)
	a.Member.PersonalBest = Best{Pos: geometry.Vector2D{X: 10, Y: 10}, Score: 1}
	global := Best{Pos: geometry.Vector2D{X: 10, Y: 10}, Score: 1}

	// cognitive x, cognitive y, social x, social y
	rng := &scripted{values: []float64{1, 0, 0, 0.5}}
	UpdateVelocity(a, global, velocityConfig(), rng)

	if !a.Vel.Eq(geometry.Vector2D{X: 10, Y: 5}) {
		t.Errorf("Vel = %s, want (10, 5)", a.Vel)
	}
	if rng.next != 4 {
		t.Errorf("consumed %d draws, want 4", rng.next)
	}
}

func TestUpdateVelocity_NeedsBothBests(t *testing.T) {
	a := member(geometry.Vector2D{}, geometry.Vector2D{X: 1}, 1, 1)
	rng := &scripted{values: []float64{0.5}}

	if UpdateVelocity(a, Best{Pos: geometry.Vector2D{X: 5}, Score: 3}, velocityConfig(), rng) {
		t.Error("an unsensed personal best must leave the velocity alone")
	}
	a.Member.PersonalBest = Best{Pos: geometry.Vector2D{X: 5}, Score: 3}
	if UpdateVelocity(a, Best{Score: math.Inf(1)}, velocityConfig(), rng) {
		t.Error("an unsensed global best must leave the velocity alone")
	}
	if !a.Vel.Eq(geometry.Vector2D{X: 1}) || rng.next != 0 {
		t.Errorf("Vel = %s draws = %d, want untouched", a.Vel, rng.next)
	}
}

func TestUpdateVelocity_ClampsSpeed(t *testing.T) {
	cfg := velocityConfig()
	cfg.MaxSpeed = 2
	a := member(geometry.Vector2D{}, geometry.Vector2D{}, 1, 1)
	a.Member.PersonalBest = Best{Pos: geometry.Vector2D{X: 100}, Score: 1}

	UpdateVelocity(a, Best{Pos: geometry.Vector2D{X: 100}, Score: 1}, cfg, &scripted{values: []float64{1}})

	if math.Abs(a.Vel.Len()-2) > 1e-9 || a.Vel.X <= 0 {
		t.Errorf("Vel = %s, want length 2 along +x", a.Vel)
	}
}

func TestTurnLimited(t *testing.T) {
	maxTurn := geometry.DegToRad(10)
	tests := []struct {
		name      string
		current   geometry.Vector2D
		desired   geometry.Vector2D
		wantAngle float64
		wantLen   float64
	}{
		{"small turn passes", geometry.Vector2D{X: 1}, geometry.NewVectorPolar(3, geometry.DegToRad(5)), geometry.DegToRad(5), 3},
		{"left turn clamped", geometry.Vector2D{X: 1}, geometry.Vector2D{Y: 2}, maxTurn, 2},
		{"right turn clamped", geometry.Vector2D{X: 1}, geometry.Vector2D{Y: -2}, -maxTurn, 2},
		{"speed capped", geometry.Vector2D{X: 1}, geometry.Vector2D{X: 50}, 0, 4},
		{"at rest takes desired heading", geometry.Vector2D{}, geometry.Vector2D{Y: 3}, math.Pi / 2, 3},
		{"wraps across pi", geometry.NewVectorPolar(1, geometry.DegToRad(175)), geometry.NewVectorPolar(1, geometry.DegToRad(-175)), geometry.DegToRad(-175), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := turnLimited(tt.current, tt.desired, maxTurn, 4)
			if math.Abs(got.Len()-tt.wantLen) > 1e-9 {
				t.Errorf("len = %v, want %v", got.Len(), tt.wantLen)
			}
			if d := geometry.WrapAngle(got.Angle() - tt.wantAngle); math.Abs(d) > 1e-9 {
				t.Errorf("angle = %v, want %v", got.Angle(), tt.wantAngle)
			}
		})
	}
}
