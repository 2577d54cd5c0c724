package sweep

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-swarm-shape/internal/summary"
	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// DefaultRunTimeout bounds a single Ask.
const DefaultRunTimeout = 5 * time.Minute

// Result pairs a run with its outcome.
type Result struct {
	RunID   string
	Run     Run
	Summary swarm.Summary
}

// Record converts the result for the summary sink.
func (r Result) Record() summary.Record {
	rec := summary.FromSummary(r.Run.Iteration, r.Run.Config, r.Summary)
	rec.RunID = r.RunID
	return rec
}

type Option func(*Sweeper)

// WithLogger sets the actor system logger.
func WithLogger(l golog.Logger) Option {
	return func(s *Sweeper) { s.logger = l }
}

// WithConcurrency caps the number of runs in flight. Zero means GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(s *Sweeper) { s.concurrency = n }
}

// WithRunTimeout sets the Ask timeout of a single run.
func WithRunTimeout(d time.Duration) Option {
	return func(s *Sweeper) { s.timeout = d }
}

// WithSink receives every finished run as soon as it completes.
func WithSink(sink summary.Appender) Option {
	return func(s *Sweeper) { s.sink = sink }
}

// Sweeper runs engines inside a goakt actor system. Each run gets its own
// actor, so runs never share a global best.
type Sweeper struct {
	system      actor.ActorSystem
	logger      golog.Logger
	concurrency int
	timeout     time.Duration
	sink        summary.Appender
}

// New starts the actor system.
func New(ctx context.Context, opts ...Option) (*Sweeper, error) {
	s := &Sweeper{
		logger:  golog.DiscardLogger,
		timeout: DefaultRunTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.concurrency <= 0 {
		s.concurrency = runtime.GOMAXPROCS(0)
	}

	system, err := actor.NewActorSystem("swarm-sweep", actor.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("creating actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting actor system: %w", err)
	}
	s.system = system
	return s, nil
}

// Stop shuts the actor system down.
func (s *Sweeper) Stop(ctx context.Context) error {
	return s.system.Stop(ctx)
}

// Execute runs every run and returns the results in run order. The first
// failing run cancels the ones not yet started.
func (s *Sweeper) Execute(ctx context.Context, runs []Run) ([]Result, error) {
	results := make([]Result, len(runs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, run := range runs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.execute(ctx, run)
			if err != nil {
				return err
			}
			results[i] = res
			if s.sink != nil {
				if err := s.sink.Append(res.Record()); err != nil {
					s.logger.Warnf("run %d: summary not delivered: %v", run.Iteration, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Sweeper) execute(ctx context.Context, run Run) (Result, error) {
	id := uuid.NewString()
	pid, err := s.system.Spawn(ctx, "run-"+id, NewRunActor(run))
	if err != nil {
		return Result{}, fmt.Errorf("spawning run %d: %w", run.Iteration, err)
	}
	defer func() {
		if err := pid.Shutdown(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warnf("run %d: actor shutdown: %v", run.Iteration, err)
		}
	}()

	reply, err := actor.Ask(ctx, pid, &emptypb.Empty{}, s.timeout)
	if err != nil {
		return Result{}, fmt.Errorf("run %d: %w", run.Iteration, err)
	}
	st, ok := reply.(*structpb.Struct)
	if !ok {
		return Result{}, fmt.Errorf("run %d: unexpected reply %T", run.Iteration, reply)
	}
	sum, err := summaryFromStruct(st)
	if err != nil {
		return Result{}, fmt.Errorf("run %d: %w", run.Iteration, err)
	}

	s.logger.Infof("run %d done in %d steps (average distance %.3f, timed out %t)",
		run.Iteration, sum.TotalSteps, sum.AverageDistanceToTarget, sum.TimedOut)
	return Result{RunID: id, Run: run, Summary: sum}, nil
}
