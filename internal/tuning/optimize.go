package tuning

import (
	"context"
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
	golog "github.com/tochemey/goakt/v3/log"
	"gonum.org/v1/gonum/optimize"
)

// Evaluation is one row of the optimizer log.
type Evaluation struct {
	Eval         int     `csv:"eval"`
	Fitness      float64 `csv:"fitness"`
	Inertia      float64 `csv:"inertia"`
	Cognition    float64 `csv:"cognition"`
	Social       float64 `csv:"social"`
	SocialFactor float64 `csv:"social_scent_increase_factor"`
}

// Options drives Optimize.
type Options struct {
	Base        *swarm.Config
	Seeds       []uint64
	MaxEvals    int
	Population  int // 0 picks 4 + 3*dim/2
	InitialStep float64
	Logger      golog.Logger
	// OnEval is called after every evaluation, in order.
	OnEval func(Evaluation)
}

// Result is the best parameter set found.
type Result struct {
	Config      *swarm.Config
	Fitness     float64
	Evaluations int
}

// Optimize minimizes the evaluator score with CMA-ES over the normalized
// parameter space. Cancelling ctx makes the remaining evaluations fail
// fast; the best set seen so far is still returned.
func Optimize(ctx context.Context, opts Options) (Result, error) {
	if opts.Base == nil {
		return Result{}, errors.New("tuning needs a base configuration")
	}
	if opts.MaxEvals <= 0 {
		return Result{}, fmt.Errorf("max evaluations must be positive, got %d", opts.MaxEvals)
	}
	logger := opts.Logger
	if logger == nil {
		logger = golog.DiscardLogger
	}
	step := opts.InitialStep
	if step <= 0 {
		step = 0.3
	}

	params := NewParamVector(opts.Base)
	evaluator := NewEvaluator(params, opts.Base, opts.Seeds)
	dim := params.Dim()
	popSize := opts.Population
	if popSize <= 0 {
		popSize = 4 + 3*dim/2
	}

	best := Result{Fitness: invalidFitness, Config: opts.Base.Clone()}
	evalCount := 0
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if ctx.Err() != nil {
				return invalidFitness
			}
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(ctx, raw)
			evalCount++

			cfg := params.Apply(opts.Base, raw)
			if fitness < best.Fitness {
				best.Fitness = fitness
				best.Config = cfg
			}
			logger.Infof("eval %d/%d: fitness=%.1f inertia=%.4f cognition=%.4f social=%.4f factor=%.4f (best %.1f)",
				evalCount, opts.MaxEvals, fitness, cfg.Inertia, cfg.Cognition, cfg.Social, cfg.SocialScentIncreaseFactor, best.Fitness)
			if opts.OnEval != nil {
				opts.OnEval(Evaluation{
					Eval:         evalCount,
					Fitness:      fitness,
					Inertia:      cfg.Inertia,
					Cognition:    cfg.Cognition,
					Social:       cfg.Social,
					SocialFactor: cfg.SocialScentIncreaseFactor,
				})
			}
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: opts.MaxEvals,
		Concurrent:      0,
	}
	method := &optimize.CmaEsChol{
		InitStepSize: step,
		Population:   popSize,
	}

	initX := params.Normalize(params.DefaultVector())
	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		logger.Warnf("optimization ended: %v", err)
	}
	best.Evaluations = evalCount
	if err := ctx.Err(); err != nil {
		return best, err
	}
	return best, nil
}
