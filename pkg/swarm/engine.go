package swarm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"
	golog "github.com/tochemey/goakt/v3/log"
)

var (
	// ErrStopped is returned by Step once the run has finished.
	ErrStopped = errors.New("swarm run already stopped")
	// ErrNonFinite reports a position or velocity that became NaN or infinite.
	ErrNonFinite = errors.New("non-finite agent state")
)

// State is the run state machine: Running, then Stopped or Failed.
type State uint8

const (
	StateRunning State = iota
	StateStopped
	// StateFailed is entered when a tick hits a defect such as a
	// non-finite member. The run is halted and emits no summary.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "running"
	}
}

// Summary is emitted exactly once, when the run stops.
type Summary struct {
	TotalSteps              int     `json:"total_steps"`
	AverageDistanceToTarget float64 `json:"average_distance_to_target"`
	TimedOut                bool    `json:"timed_out"`
}

// TickReport describes one completed tick.
type TickReport struct {
	Step            int
	StoppedCount    int
	StoppedFraction float64
	AverageDistance float64
	Collisions      int
	StagnationReset int
	GlobalBest      Best
	Finished        bool
}

// AgentSnapshot is a read-only copy of one agent for renderers.
type AgentSnapshot struct {
	Kind    Kind
	Index   int // member index, -1 for targets
	Pos     geometry.Vector2D
	Vel     geometry.Vector2D
	Radius  float64
	Stopped bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l golog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithSource injects the random source used for spawning and velocity
// blending. It overrides Config.Seed.
func WithSource(src Source) Option {
	return func(e *Engine) {
		e.rng = src
	}
}

// WithOnStop registers a callback receiving the summary when the run stops.
func WithOnStop(fn func(Summary)) Option {
	return func(e *Engine) {
		e.onStop = fn
	}
}

// Engine runs ticks for one isolated run. It is not safe for concurrent
// use; independent runs use independent engines.
type Engine struct {
	cfg     *Config
	agents  []*Agent
	members []int // indices into agents, ascending
	targets []int
	global  *GlobalBest
	grid    *spatialGrid
	params  scanParams
	scratch ScanResult
	rng     Source
	logger  golog.Logger
	onStop  func(Summary)

	stagnationLimit int
	steps           int
	state           State
	summary         Summary
	err             error
}

// New validates cfg, lays out the silhouette and spawns the members.
func New(cfg *Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := newEngine(cfg, opts)
	agents, err := buildAgents(e.cfg, e.rng)
	if err != nil {
		return nil, err
	}
	if err := e.attach(agents); err != nil {
		return nil, err
	}
	e.logger.Infof("swarm run started: %d targets, %d members, shape=%s",
		len(e.targets), len(e.members), e.cfg.Shape)
	return e, nil
}

// NewFromAgents builds an engine over an explicit agent set, in the given
// order. Members are re-indexed in slice order and their histories sized
// from cfg. NumSwarmMembers, Shape and ShapeRadius are not used.
func NewFromAgents(cfg *Config, agents []*Agent, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := newEngine(cfg, opts)
	if err := e.attach(agents); err != nil {
		return nil, err
	}
	return e, nil
}

func newEngine(cfg *Config, opts []Option) *Engine {
	e := &Engine{
		cfg:             cfg.Clone(),
		global:          NewGlobalBest(),
		logger:          golog.DiscardLogger,
		stagnationLimit: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := e.cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if e.cfg.StagnationLimit != nil {
		e.stagnationLimit = *e.cfg.StagnationLimit
	}
	e.params = newScanParams(e.cfg)
	return e
}

func (e *Engine) attach(agents []*Agent) error {
	e.agents = agents
	for i, a := range agents {
		switch a.Kind {
		case KindTarget:
			e.targets = append(e.targets, i)
		case KindMember:
			if a.Member == nil {
				a.Member = &MemberState{PersonalBest: unsensed(a.Pos)}
			}
			a.Member.Index = len(e.members)
			if a.Member.Recent == nil || a.Member.Recent.Cap() != e.cfg.RecentPositionsCapacity {
				a.Member.Recent = NewPositionHistory(e.cfg.RecentPositionsCapacity)
			}
			e.members = append(e.members, i)
		default:
			return fmt.Errorf("%w: agent %d has unknown kind %d", ErrInvalidConfig, i, a.Kind)
		}
	}
	if len(e.members) == 0 {
		return fmt.Errorf("%w: a run needs at least one swarm member", ErrInvalidConfig)
	}
	if e.cfg.SpatialIndex {
		e.grid = newSpatialGrid(e.cfg, agents)
	}
	return nil
}

// Step runs one tick over every member in index order. Updates made by a
// member are visible to the members processed after it in the same tick.
func (e *Engine) Step() (TickReport, error) {
	switch e.state {
	case StateStopped:
		return TickReport{}, ErrStopped
	case StateFailed:
		return TickReport{}, e.err
	}

	var (
		rep     TickReport
		distSum float64
	)
	for _, idx := range e.members {
		a := e.agents[idx]
		if err := e.updateMember(idx, a, &rep); err != nil {
			e.fail(err)
			return rep, err
		}
		if a.Member.Stopped {
			rep.StoppedCount++
		}
		if !math.IsInf(e.scratch.NearestTarget, 1) {
			distSum += e.scratch.NearestTarget
		}
	}
	e.steps++

	n := float64(len(e.members))
	rep.Step = e.steps
	rep.StoppedFraction = float64(rep.StoppedCount) / n
	rep.AverageDistance = distSum / n
	rep.GlobalBest = e.global.Get()

	timedOut := e.steps >= e.cfg.MaxStepsBeforeStopping
	if rep.StoppedFraction >= e.cfg.StoppedParticlesThreshold || timedOut {
		e.finish(Summary{
			TotalSteps:              e.steps,
			AverageDistanceToTarget: rep.AverageDistance,
			TimedOut:                timedOut,
		})
		rep.Finished = true
	}
	return rep, nil
}

func (e *Engine) finish(s Summary) {
	e.state = StateStopped
	e.summary = s
	e.logger.Infof("swarm run stopped after %d steps: average distance %.3f, timed out %t",
		s.TotalSteps, s.AverageDistanceToTarget, s.TimedOut)
	if e.onStop != nil {
		e.onStop(s)
	}
}

// fail halts the run on a tick that could not complete. Members updated
// earlier in that tick keep their new state, but no further tick runs.
func (e *Engine) fail(err error) {
	e.state = StateFailed
	e.err = err
	e.logger.Errorf("swarm run halted at step %d: %v", e.steps, err)
}

// updateMember runs scan, best tracking, collision or velocity blending,
// integration, reflection and convergence for one member.
func (e *Engine) updateMember(idx int, a *Agent, rep *TickReport) error {
	res := &e.scratch
	e.scan(idx, a, res)

	u := updateBests(a, res, e.global, e.stagnationLimit)
	if u.reset {
		rep.StagnationReset++
		e.logger.Debugf("member %d stagnated, personal best reset at %s", a.Member.Index, a.Pos)
	}

	if len(res.Partners) > 0 {
		for _, b := range res.Partners {
			from := b.Pos
			ResolveCollision(a, b, e.cfg.CollisionEnergyLossFactor, e.cfg.CollisionCorrectionSupplement)
			b.reflect(e.cfg.WorldWidth, e.cfg.WorldHeight)
			e.moved(b, from)
			rep.Collisions++
			e.logger.Debugf("member %d collided with member %d at %s", a.Member.Index, b.Member.Index, a.Pos)
			if !b.finite() {
				return fmt.Errorf("%w: member %d after collision with member %d", ErrNonFinite, b.Member.Index, a.Member.Index)
			}
		}
	} else {
		UpdateVelocity(a, e.global.Get(), e.cfg, e.rng)
	}

	from := a.Pos
	a.integrate()
	a.reflect(e.cfg.WorldWidth, e.cfg.WorldHeight)
	e.moved(a, from)
	if !a.finite() {
		return fmt.Errorf("%w: member %d at %s moving %s", ErrNonFinite, a.Member.Index, a.Pos, a.Vel)
	}

	a.Member.Recent.Push(a.Pos)
	a.Member.Stopped = a.Member.Recent.Converged(e.cfg.StoppingRadius)
	return nil
}

// scan fills res for the member at idx, through the grid when enabled.
func (e *Engine) scan(idx int, a *Agent, res *ScanResult) {
	e.params.reset(res)
	if e.grid == nil {
		for i, b := range e.agents {
			if i != idx {
				e.params.observe(a, b, res)
			}
		}
		return
	}

	for _, i := range e.grid.nearby(a.Pos) {
		if i != idx {
			e.params.observe(a, e.agents[i], res)
		}
	}
	// targets outside the grid block still count for the distance metric
	for _, i := range e.targets {
		if d := a.Pos.DistanceTo(e.agents[i].Pos); d < res.NearestTarget {
			res.NearestTarget = d
		}
	}
}

func (e *Engine) moved(a *Agent, from geometry.Vector2D) {
	if e.grid == nil {
		return
	}
	e.grid.move(e.indexOf(a), from, a.Pos)
}

// indexOf maps a member back to its slot in agents.
func (e *Engine) indexOf(a *Agent) int {
	return e.members[a.Member.Index]
}

// Run steps until the run stops or ctx is done. Cancellation is only
// observed between ticks.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	for e.state == StateRunning {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		if _, err := e.Step(); err != nil {
			return Summary{}, err
		}
	}
	return e.summary, nil
}

// Summary returns the run summary and whether the run has stopped.
func (e *Engine) Summary() (Summary, bool) {
	return e.summary, e.state == StateStopped
}

func (e *Engine) State() State { return e.state }

// Err returns the defect that halted the run, nil unless State is
// StateFailed.
func (e *Engine) Err() error { return e.err }

func (e *Engine) Steps() int { return e.steps }

func (e *Engine) GlobalBest() Best { return e.global.Get() }

// Config returns a copy of the run configuration.
func (e *Engine) Config() *Config { return e.cfg.Clone() }

// NumMembers returns the number of swarm members.
func (e *Engine) NumMembers() int { return len(e.members) }

// Snapshot copies every agent, targets included, in slice order.
func (e *Engine) Snapshot() []AgentSnapshot {
	out := make([]AgentSnapshot, len(e.agents))
	for i, a := range e.agents {
		s := AgentSnapshot{
			Kind:   a.Kind,
			Index:  -1,
			Pos:    a.Pos,
			Vel:    a.Vel,
			Radius: a.Radius,
		}
		if a.Member != nil {
			s.Index = a.Member.Index
			s.Stopped = a.Member.Stopped
		}
		out[i] = s
	}
	return out
}
