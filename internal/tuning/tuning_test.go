package tuning

import (
	"context"
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
)

func smallConfig() *swarm.Config {
	cfg := swarm.DefaultConfig()
	cfg.NumSwarmMembers = 8
	cfg.MaxStepsBeforeStopping = 25
	return cfg
}

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector(swarm.DefaultConfig())
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(raw[i]-back[i]) > 1e-12 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
	lo := pv.Denormalize(make([]float64, pv.Dim()))
	for i, spec := range pv.Specs {
		if lo[i] != spec.Min {
			t.Errorf("%s: 0 maps to %v, want %v", spec.Name, lo[i], spec.Min)
		}
	}
}

func TestParamVector_DefaultsClamped(t *testing.T) {
	base := swarm.DefaultConfig()
	base.Inertia = 5
	pv := NewParamVector(base)
	if pv.Specs[0].Default != pv.Specs[0].Max {
		t.Errorf("inertia default = %v, want the upper bound %v", pv.Specs[0].Default, pv.Specs[0].Max)
	}
}

func TestParamVector_Apply(t *testing.T) {
	base := swarm.DefaultConfig()
	pv := NewParamVector(base)

	cfg := pv.Apply(base, []float64{0.5, 10, -1, 1.5})
	if cfg.Inertia != 0.5 || cfg.Cognition != 3 || cfg.Social != 0.1 || cfg.SocialScentIncreaseFactor != 1.5 {
		t.Errorf("applied %+v", cfg)
	}
	if base.Inertia != swarm.DefaultInertia {
		t.Errorf("Apply mutated the base config")
	}
}

func TestEvaluator(t *testing.T) {
	base := smallConfig()
	pv := NewParamVector(base)
	ev := NewEvaluator(pv, base, []uint64{1, 2})

	f1 := ev.Evaluate(context.Background(), pv.DefaultVector())
	f2 := ev.Evaluate(context.Background(), pv.DefaultVector())
	if f1 != f2 {
		t.Errorf("same seeds gave %v and %v", f1, f2)
	}
	if f1 < 1 || f1 >= invalidFitness {
		t.Errorf("fitness = %v out of range", f1)
	}
}

func TestEvaluator_InvalidBase(t *testing.T) {
	base := smallConfig()
	base.MaxSpeed = 0
	pv := NewParamVector(base)
	if f := NewEvaluator(pv, base, []uint64{1}).Evaluate(context.Background(), pv.DefaultVector()); f != invalidFitness {
		t.Errorf("fitness = %v, want the invalid marker", f)
	}
}

func TestEvaluator_Score(t *testing.T) {
	ev := &Evaluator{TimeoutPenalty: 10}
	if s := ev.score(swarm.Summary{TotalSteps: 40}); s != 40 {
		t.Errorf("score = %v, want 40", s)
	}
	if s := ev.score(swarm.Summary{TotalSteps: 40, TimedOut: true, AverageDistanceToTarget: 2.5}); s != 65 {
		t.Errorf("score = %v, want 65", s)
	}
}

func TestOptimize(t *testing.T) {
	var evals []Evaluation
	res, err := Optimize(context.Background(), Options{
		Base:       smallConfig(),
		Seeds:      []uint64{7},
		MaxEvals:   6,
		Population: 4,
		OnEval:     func(e Evaluation) { evals = append(evals, e) },
	})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if res.Evaluations < 1 || res.Evaluations > 6 || len(evals) != res.Evaluations {
		t.Fatalf("evaluations = %d, logged %d", res.Evaluations, len(evals))
	}
	if res.Fitness >= invalidFitness {
		t.Errorf("no valid evaluation, best %v", res.Fitness)
	}
	for _, e := range evals {
		if e.Fitness < res.Fitness {
			t.Errorf("eval %d has fitness %v below the reported best %v", e.Eval, e.Fitness, res.Fitness)
		}
	}
	if err := res.Config.Validate(); err != nil {
		t.Errorf("best config invalid: %v", err)
	}
}

func TestOptimize_RejectsBadOptions(t *testing.T) {
	if _, err := Optimize(context.Background(), Options{MaxEvals: 3}); err == nil {
		t.Error("expected an error without a base config")
	}
	if _, err := Optimize(context.Background(), Options{Base: smallConfig()}); err == nil {
		t.Error("expected an error without evaluations")
	}
}
