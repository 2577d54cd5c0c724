// Package summary records one line per finished swarm run, the way the
// browser version of the simulation posted its results to a small server.
package summary

import (
	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
)

// Record is one finished run. JSON names match what the browser client sent.
type Record struct {
	RunID           string  `json:"run_id,omitempty" csv:"run_id"`
	Iteration       int     `json:"iteration" csv:"iteration"`
	Inertia         float64 `json:"inertia" csv:"inertia"`
	Cognition       float64 `json:"cognition" csv:"cognition"`
	Social          float64 `json:"social" csv:"social"`
	AverageDistance float64 `json:"average_distance_to_shape" csv:"average_distance_to_shape"`
	Timeout         bool    `json:"timeout" csv:"timeout"`
	TotalSteps      int     `json:"total_steps" csv:"total_steps"`
}

// FromSummary builds a record for a run of cfg with a fresh run id.
func FromSummary(iteration int, cfg *swarm.Config, s swarm.Summary) Record {
	return Record{
		RunID:           uuid.NewString(),
		Iteration:       iteration,
		Inertia:         cfg.Inertia,
		Cognition:       cfg.Cognition,
		Social:          cfg.Social,
		AverageDistance: s.AverageDistanceToTarget,
		Timeout:         s.TimedOut,
		TotalSteps:      s.TotalSteps,
	}
}
