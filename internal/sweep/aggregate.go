package sweep

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the repeats of one coefficient triple.
type Stats struct {
	Inertia      float64 `csv:"inertia"`
	Cognition    float64 `csv:"cognition"`
	Social       float64 `csv:"social"`
	Runs         int     `csv:"runs"`
	TimedOut     int     `csv:"timed_out"`
	MeanSteps    float64 `csv:"mean_steps"`
	StdSteps     float64 `csv:"std_steps"`
	MeanDistance float64 `csv:"mean_distance"`
	StdDistance  float64 `csv:"std_distance"`
}

type triple struct {
	inertia, cognition, social float64
}

// Aggregate groups results by coefficients, in order of first appearance.
func Aggregate(results []Result) []Stats {
	var order []triple
	groups := make(map[triple][]Result)
	for _, r := range results {
		k := triple{r.Run.Config.Inertia, r.Run.Config.Cognition, r.Run.Config.Social}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]Stats, 0, len(order))
	for _, k := range order {
		group := groups[k]
		steps := make([]float64, len(group))
		dists := make([]float64, len(group))
		s := Stats{Inertia: k.inertia, Cognition: k.cognition, Social: k.social, Runs: len(group)}
		for i, r := range group {
			steps[i] = float64(r.Summary.TotalSteps)
			dists[i] = r.Summary.AverageDistanceToTarget
			if r.Summary.TimedOut {
				s.TimedOut++
			}
		}
		s.MeanSteps, s.StdSteps = meanStdDev(steps)
		s.MeanDistance, s.StdDistance = meanStdDev(dists)
		out = append(out, s)
	}
	return out
}

// meanStdDev is stat.MeanStdDev with a zero deviation for a single sample.
func meanStdDev(x []float64) (float64, float64) {
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

// WriteStats saves the aggregated table as CSV.
func WriteStats(path string, stats []Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating stats csv: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(stats, f); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}
