package swarm

import (
	"math"
)

// ScanResult is what one member senses during a tick.
type ScanResult struct {
	// Scent is the nearest target within scent range, scored by distance.
	Scent Best
	// Social is the best neighbour within social range, scored by its
	// personal best times the social scent increase factor.
	Social Best
	// Partners lists overlapping members in scan order. Unless all
	// collisions are resolved it holds at most one entry.
	Partners []*Agent
	// NearestTarget is the distance to the closest target regardless of
	// scent range, +Inf when there are no targets.
	NearestTarget float64
}

// Partner returns the first overlapping member, or nil.
func (r *ScanResult) Partner() *Agent {
	if len(r.Partners) == 0 {
		return nil
	}
	return r.Partners[0]
}

type scanParams struct {
	scentRange   float64
	socialRange  float64
	socialFactor float64
	collectAll   bool
}

func newScanParams(cfg *Config) scanParams {
	return scanParams{
		scentRange:   cfg.ScentRange,
		socialRange:  cfg.SocialRange,
		socialFactor: cfg.SocialScentIncreaseFactor,
		collectAll:   cfg.ResolveAllCollisions,
	}
}

// reset prepares res for a new scan, keeping the Partners storage.
func (p scanParams) reset(res *ScanResult) {
	res.Scent = Best{Score: math.Inf(1)}
	res.Social = Best{Score: math.Inf(1)}
	res.Partners = res.Partners[:0]
	res.NearestTarget = math.Inf(1)
}

// observe folds agent b into the scan of member a. Comparisons are strict so
// the first agent found wins a tie.
func (p scanParams) observe(a, b *Agent, res *ScanResult) {
	d := a.Pos.DistanceTo(b.Pos)

	switch b.Kind {
	case KindTarget:
		if d < res.NearestTarget {
			res.NearestTarget = d
		}
		if d <= p.scentRange && d < res.Scent.Score {
			res.Scent = Best{Pos: b.Pos, Score: d}
		}

	case KindMember:
		switch {
		case d-(a.Radius+b.Radius) < 0:
			if p.collectAll || len(res.Partners) == 0 {
				res.Partners = append(res.Partners, b)
			}
		case d < p.socialRange:
			score := b.Member.PersonalBest.Score * p.socialFactor
			if score < res.Social.Score {
				res.Social = Best{Pos: b.Pos, Score: score}
			}
		}
	}
}

// Scan runs the neighbour scan of member a over every other agent in
// slice order.
func Scan(a *Agent, agents []*Agent, cfg *Config) ScanResult {
	p := newScanParams(cfg)
	var res ScanResult
	p.reset(&res)
	for _, b := range agents {
		if b == a {
			continue
		}
		p.observe(a, b, &res)
	}
	return res
}
