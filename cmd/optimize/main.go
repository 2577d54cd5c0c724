// Command optimize searches inertia, cognition and social coefficients with
// CMA-ES and saves the best configuration found.
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

	"github.com/gocarina/gocsv"
	"github.com/lao-tseu-is-alive/go-swarm-shape/internal/tuning"
	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configPath := flag.String("config", "", "base config file, .json or .yaml (empty = defaults)")
	seeds := flag.Int("seeds", 3, "seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	base := swarm.DefaultConfig()
	if *configPath != "" {
		var err error
		if base, err = swarm.LoadConfig(*configPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	evalSeeds := make([]uint64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = uint64(i*1000 + 42)
	}

	logFile, err := os.Create(filepath.Join(*outputDir, "optimize_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	headerWritten := false
	onEval := func(e tuning.Evaluation) {
		rows := []tuning.Evaluation{e}
		write := gocsv.MarshalWithoutHeaders
		if !headerWritten {
			write = gocsv.Marshal
			headerWritten = true
		}
		if err := write(rows, logFile); err != nil {
			log.Printf("failed to log evaluation %d: %v", e.Eval, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	fmt.Printf("Starting CMA-ES with max_evals=%d, seeds=%d\n", *maxEvals, *seeds)
	res, err := tuning.Optimize(ctx, tuning.Options{
		Base:       base,
		Seeds:      evalSeeds,
		MaxEvals:   *maxEvals,
		Population: *population,
		Logger:     golog.New(golog.InfoLevel, os.Stdout),
		OnEval:     onEval,
	})
	if err != nil {
		log.Printf("optimization interrupted: %v", err)
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", res.Evaluations, time.Since(started).Round(time.Second))
	fmt.Printf("Best fitness: %.1f\n", res.Fitness)
	fmt.Printf("  inertia: %.6f\n  cognition: %.6f\n  social: %.6f\n  social_scent_increase_factor: %.6f\n",
		res.Config.Inertia, res.Config.Cognition, res.Config.Social, res.Config.SocialScentIncreaseFactor)

	out := filepath.Join(*outputDir, "best_config.yaml")
	if err := res.Config.WriteYAML(out); err != nil {
		log.Printf("failed to write best config: %v", err)
		return
	}
	fmt.Printf("\nBest config saved to: %s\n", out)
}
