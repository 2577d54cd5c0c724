// Package tuning searches swarm coefficients that make the swarm settle on
// its silhouette in as few ticks as possible.
package tuning

import (
	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
)

// ParamSpec is one tunable coefficient.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
	set     func(cfg *swarm.Config, v float64)
}

// ParamVector is the ordered set of tunable coefficients. The optimizer
// works on values normalized to [0,1].
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector tunes inertia, cognition, social and the social scent
// increase factor, starting from the values of base.
func NewParamVector(base *swarm.Config) *ParamVector {
	pv := &ParamVector{
		Specs: []ParamSpec{
			{Name: "inertia", Min: 0.1, Max: 1.0, Default: base.Inertia,
				set: func(c *swarm.Config, v float64) { c.Inertia = v }},
			{Name: "cognition", Min: 0.1, Max: 3.0, Default: base.Cognition,
				set: func(c *swarm.Config, v float64) { c.Cognition = v }},
			{Name: "social", Min: 0.1, Max: 3.0, Default: base.Social,
				set: func(c *swarm.Config, v float64) { c.Social = v }},
			{Name: "social_scent_increase_factor", Min: 1.0, Max: 3.0, Default: base.SocialScentIncreaseFactor,
				set: func(c *swarm.Config, v float64) { c.SocialScentIncreaseFactor = v }},
		},
	}
	// a base value outside the search box starts on its edge
	for i, v := range pv.Clamp(pv.DefaultVector()) {
		pv.Specs[i].Default = v
	}
	return pv
}

func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the starting values in raw units.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw values to the [0,1] search space.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts search space values back to raw units.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds every raw value to its spec.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// Apply returns a copy of base with the clamped raw values set.
func (pv *ParamVector) Apply(base *swarm.Config, raw []float64) *swarm.Config {
	cfg := base.Clone()
	for i, v := range pv.Clamp(raw) {
		pv.Specs[i].set(cfg, v)
	}
	return cfg
}
