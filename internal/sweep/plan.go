// Package sweep runs a grid of swarm parameter combinations, one actor per
// run, and aggregates how fast each combination converges.
package sweep

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPlan is wrapped by every plan error.
var ErrInvalidPlan = errors.New("invalid sweep plan")

// Plan is the cartesian product of the listed coefficients, each repeated
// Repeats times with its own seed. An empty list keeps the base value.
type Plan struct {
	Inertia     []float64 `yaml:"inertia" json:"inertia"`
	Cognition   []float64 `yaml:"cognition" json:"cognition"`
	Social      []float64 `yaml:"social" json:"social"`
	Repeats     int       `yaml:"repeats" json:"repeats"`
	Concurrency int       `yaml:"concurrency" json:"concurrency"`
	BaseSeed    uint64    `yaml:"base_seed" json:"base_seed"`
}

// Run is one engine run of a sweep.
type Run struct {
	Iteration int
	Config    *swarm.Config
}

// LoadPlan reads a YAML plan file.
func LoadPlan(path string) (Plan, error) {
	var p Plan
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to open plan file: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("failed to decode plan: %w", err)
	}
	return p, nil
}

// Expand lists every run of the plan over base. Iterations are numbered
// from 1 and seeds are BaseSeed+iteration, so a plan always expands to the
// same runs.
func (p Plan) Expand(base *swarm.Config) ([]Run, error) {
	repeats := p.Repeats
	if repeats == 0 {
		repeats = 1
	}
	if repeats < 0 {
		return nil, fmt.Errorf("%w: repeats must not be negative, got %d", ErrInvalidPlan, p.Repeats)
	}
	inertia := orDefault(p.Inertia, base.Inertia)
	cognition := orDefault(p.Cognition, base.Cognition)
	social := orDefault(p.Social, base.Social)

	runs := make([]Run, 0, len(inertia)*len(cognition)*len(social)*repeats)
	for _, w := range inertia {
		for _, c1 := range cognition {
			for _, c2 := range social {
				for r := 0; r < repeats; r++ {
					cfg := base.Clone()
					cfg.Inertia, cfg.Cognition, cfg.Social = w, c1, c2
					iteration := len(runs) + 1
					cfg.Seed = p.BaseSeed + uint64(iteration)
					if err := cfg.Validate(); err != nil {
						return nil, fmt.Errorf("run %d: %w", iteration, err)
					}
					runs = append(runs, Run{Iteration: iteration, Config: cfg})
				}
			}
		}
	}
	return runs, nil
}

func orDefault(values []float64, def float64) []float64 {
	if len(values) == 0 {
		return []float64{def}
	}
	return values
}

// ParseValues reads either a comma separated list ("0.5,0.7,0.9") or an
// inclusive range "start:stop:step". An empty string yields nil.
func ParseValues(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.Contains(s, ":") {
		return parseRange(s)
	}
	var out []float64
	for _, field := range strings.Split(s, ",") {
		v, err := parseFinite(field)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// parseFinite rejects NaN and infinities, which strconv accepts.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrInvalidPlan, s)
	}
	return v, nil
}

func parseRange(s string) ([]float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: range %q must be start:stop:step", ErrInvalidPlan, s)
	}
	var bounds [3]float64
	for i, part := range parts {
		v, err := parseFinite(part)
		if err != nil {
			return nil, err
		}
		bounds[i] = v
	}
	start, stop, step := bounds[0], bounds[1], bounds[2]
	if step <= 0 || stop < start {
		return nil, fmt.Errorf("%w: range %q needs start <= stop and step > 0", ErrInvalidPlan, s)
	}

	// stop is included even when (stop-start)/step lands just below an integer
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}
