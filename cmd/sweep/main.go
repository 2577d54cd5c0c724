package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lao-tseu-is-alive/go-swarm-shape/internal/summary"
	"github.com/lao-tseu-is-alive/go-swarm-shape/internal/sweep"
	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configPath := flag.String("config", "", "base config file, .json or .yaml (empty = defaults)")
	planPath := flag.String("plan", "", "sweep plan YAML (overrides the value flags)")
	inertia := flag.String("inertia", "", "inertia values: list a,b,c or range start:stop:step")
	cognition := flag.String("cognition", "", "cognition values")
	social := flag.String("social", "", "social values")
	repeats := flag.Int("repeats", 1, "runs per combination")
	concurrency := flag.Int("concurrency", 0, "runs in flight (0 = GOMAXPROCS)")
	seed := flag.Uint64("seed", 0, "base seed, run i uses seed+i")
	timeout := flag.Duration("run-timeout", sweep.DefaultRunTimeout, "timeout of a single run")
	outputDir := flag.String("output", "sweep-out", "directory for runs.csv and stats.csv")
	sinkURL := flag.String("sink", "", "also post every run to this summary server")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	level := golog.InfoLevel
	if *debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stdout)

	base := swarm.DefaultConfig()
	if *configPath != "" {
		var err error
		if base, err = swarm.LoadConfig(*configPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	plan, err := buildPlan(*planPath, *inertia, *cognition, *social, *repeats, *concurrency, *seed)
	if err != nil {
		log.Fatal(err)
	}
	runs, err := plan.Expand(base)
	if err != nil {
		log.Fatalf("invalid plan: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	store, err := summary.OpenStore(filepath.Join(*outputDir, "runs.csv"))
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []sweep.Option{
		sweep.WithLogger(logger),
		sweep.WithConcurrency(plan.Concurrency),
		sweep.WithRunTimeout(*timeout),
	}
	if *sinkURL != "" {
		opts = append(opts, sweep.WithSink(summary.NewClient(*sinkURL, nil)))
	}
	sweeper, err := sweep.New(ctx, opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer sweeper.Stop(context.Background())

	started := time.Now()
	logger.Infof("sweeping %d runs", len(runs))
	results, err := sweeper.Execute(ctx, runs)
	if err != nil {
		logger.Errorf("sweep failed: %v", err)
		return
	}

	records := make([]summary.Record, len(results))
	for i, r := range results {
		records[i] = r.Record()
	}
	if err := store.AppendAll(records); err != nil {
		logger.Errorf("%v", err)
	}

	stats := sweep.Aggregate(results)
	if err := sweep.WriteStats(filepath.Join(*outputDir, "stats.csv"), stats); err != nil {
		logger.Errorf("%v", err)
	}

	fmt.Printf("\n%d runs in %s\n", len(results), time.Since(started).Round(time.Millisecond))
	fmt.Printf("%8s %9s %8s %5s %10s %9s %9s\n", "inertia", "cognition", "social", "runs", "mean steps", "std", "timeouts")
	for _, s := range stats {
		fmt.Printf("%8.3f %9.3f %8.3f %5d %10.1f %9.1f %9d\n",
			s.Inertia, s.Cognition, s.Social, s.Runs, s.MeanSteps, s.StdSteps, s.TimedOut)
	}
}

func buildPlan(path, inertia, cognition, social string, repeats, concurrency int, seed uint64) (sweep.Plan, error) {
	if path != "" {
		return sweep.LoadPlan(path)
	}
	p := sweep.Plan{Repeats: repeats, Concurrency: concurrency, BaseSeed: seed}
	var err error
	if p.Inertia, err = sweep.ParseValues(inertia); err != nil {
		return p, err
	}
	if p.Cognition, err = sweep.ParseValues(cognition); err != nil {
		return p, err
	}
	if p.Social, err = sweep.ParseValues(social); err != nil {
		return p, err
	}
	return p, nil
}
