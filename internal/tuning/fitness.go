package tuning

import (
	"context"
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
	"golang.org/x/sync/errgroup"
)

// invalidFitness is returned for parameter sets that cannot run.
const invalidFitness = 1e12

// Evaluator scores a parameter set by running one seeded engine per seed.
// Lower is better.
type Evaluator struct {
	params *ParamVector
	base   *swarm.Config
	seeds  []uint64

	// TimeoutPenalty multiplies the final average distance of a run that
	// hit max_steps_before_stopping and adds it to its step count.
	TimeoutPenalty float64
}

func NewEvaluator(params *ParamVector, base *swarm.Config, seeds []uint64) *Evaluator {
	return &Evaluator{
		params:         params,
		base:           base.Clone(),
		seeds:          seeds,
		TimeoutPenalty: 10,
	}
}

// Evaluate runs every seed concurrently and returns the mean score.
func (e *Evaluator) Evaluate(ctx context.Context, raw []float64) float64 {
	cfg := e.params.Apply(e.base, raw)
	if cfg.Validate() != nil || len(e.seeds) == 0 {
		return invalidFitness
	}

	scores := make([]float64, len(e.seeds))
	g, ctx := errgroup.WithContext(ctx)
	for i, seed := range e.seeds {
		g.Go(func() error {
			run := cfg.Clone()
			run.Seed = seed
			engine, err := swarm.New(run)
			if err != nil {
				return err
			}
			s, err := engine.Run(ctx)
			if err != nil {
				return err
			}
			scores[i] = e.score(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return invalidFitness
	}

	var total float64
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}

func (e *Evaluator) score(s swarm.Summary) float64 {
	score := float64(s.TotalSteps)
	if s.TimedOut {
		score += e.TimeoutPenalty * s.AverageDistanceToTarget
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return invalidFitness
	}
	return score
}
