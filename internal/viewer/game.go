// Package viewer draws a running swarm with ebiten and lets the user tune
// it between runs.
package viewer

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lao-tseu-is-alive/go-swarm-shape/internal/summary"
	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/ui"
	golog "github.com/tochemey/goakt/v3/log"
)

const (
	panelWidth     = 270.0
	minScreenH     = 640.0
	maxTicksPerFrm = 50
)

type Option func(*Game)

func WithLogger(l golog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithSink receives the summary of every run that finishes on screen.
func WithSink(s summary.Appender) Option {
	return func(g *Game) { g.sink = s }
}

// WithTicksPerFrame runs several engine ticks per ebiten update.
func WithTicksPerFrame(n int) Option {
	return func(g *Game) { g.ticksPerFrame = min(max(n, 1), maxTicksPerFrm) }
}

// Game implements ebiten.Game. Every Update advances the engine, so a
// frame boundary is always a tick boundary.
type Game struct {
	cfg    *swarm.Config
	engine *swarm.Engine
	logger golog.Logger
	sink   summary.Appender

	ticksPerFrame int
	paused        bool
	iteration     int
	last          swarm.TickReport
	lastSummary   *swarm.Summary

	panel    *ui.Panel
	controls *controls
	restart  bool

	updateAvg float64
	drawAvg   float64
}

// NewGame starts a first run from cfg.
func NewGame(cfg *swarm.Config, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:           cfg.Clone(),
		logger:        golog.DiscardLogger,
		ticksPerFrame: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.panel = ui.NewPanel(g.cfg.WorldWidth, 0, panelWidth, g.screenHeight(), "Configuration")
	g.controls = newControls(g.panel, g.cfg, func() { g.restart = true })

	if err := g.start(g.cfg); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) start(cfg *swarm.Config) error {
	engine, err := swarm.New(cfg, swarm.WithLogger(g.logger))
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.engine = engine
	g.iteration++
	g.last = swarm.TickReport{}
	g.lastSummary = nil
	return nil
}

// Restart begins a new run with the values currently on the panel. An
// invalid combination keeps the current run going.
func (g *Game) Restart() error {
	cfg := g.controls.config(g.cfg)
	if err := g.start(cfg); err != nil {
		g.logger.Warnf("restart rejected: %v", err)
		return err
	}
	g.logger.Infof("run %d started with %d members (%s, radius %.0f)",
		g.iteration, cfg.NumSwarmMembers, cfg.Shape, cfg.ShapeRadius)
	return nil
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update(ui.ReadPointer())
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart = true
	}
	if g.restart {
		g.restart = false
		_ = g.Restart()
	}
	if g.paused {
		return nil
	}
	return g.advance()
}

// advance runs up to ticksPerFrame ticks and reports a finished run once.
func (g *Game) advance() error {
	for i := 0; i < g.ticksPerFrame && g.engine.State() == swarm.StateRunning; i++ {
		rep, err := g.engine.Step()
		if err != nil {
			return fmt.Errorf("run %d: %w", g.iteration, err)
		}
		g.last = rep
		if rep.Finished {
			g.finished()
		}
	}
	return nil
}

func (g *Game) finished() {
	s, _ := g.engine.Summary()
	g.lastSummary = &s
	if g.sink == nil {
		return
	}
	if err := g.sink.Append(summary.FromSummary(g.iteration, g.cfg, s)); err != nil {
		g.logger.Warnf("run %d: summary not delivered: %v", g.iteration, err)
	}
}

func (g *Game) screenHeight() float64 {
	return max(g.cfg.WorldHeight, minScreenH)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.cfg.WorldWidth + panelWidth), int(g.screenHeight())
}
