package swarm

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"
)

// GlobalBest is the best attraction point known to any member of one run.
// Each Engine owns exactly one; its score never increases.
type GlobalBest struct {
	best Best
}

// NewGlobalBest returns an empty global best with an infinite score.
func NewGlobalBest() *GlobalBest {
	return &GlobalBest{best: Best{Score: math.Inf(1)}}
}

// Get returns a copy of the current value.
func (g *GlobalBest) Get() Best { return g.best }

// Offer replaces the global best when score is strictly lower and reports
// whether it did.
func (g *GlobalBest) Offer(pos geometry.Vector2D, score float64) bool {
	if score < g.best.Score {
		g.best = Best{Pos: pos, Score: score}
		return true
	}
	return false
}

// bestUpdate is what updateBests changed, used for logging and tests.
type bestUpdate struct {
	improved    bool
	globalMoved bool
	reset       bool
}

// updateBests applies the personal and global best rules for member a
// after a scan. stagnationLimit < 0 disables the forced reset.
func updateBests(a *Agent, res *ScanResult, global *GlobalBest, stagnationLimit int) bestUpdate {
	var u bestUpdate
	m := a.Member

	candidate := res.Scent
	if res.Social.Score < candidate.Score {
		candidate = res.Social
	}

	if candidate.Score < m.PersonalBest.Score {
		m.PersonalBest = candidate
		m.Stagnation = 0
		u.improved = true
	} else {
		m.Stagnation++
	}

	// the member itself becomes the beacon, not the point it sensed
	if m.PersonalBest.Found() {
		u.globalMoved = global.Offer(a.Pos, m.PersonalBest.Score)
	}

	if stagnationLimit >= 0 && m.Stagnation > stagnationLimit {
		m.PersonalBest = unsensed(a.Pos)
		m.Stagnation = 0
		u.reset = true
	}
	return u
}
