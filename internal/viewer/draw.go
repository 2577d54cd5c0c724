package viewer

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
)

const gridSpacing = 50

var (
	colorBackground = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	colorGrid       = color.RGBA{R: 45, G: 45, B: 55, A: 255}
	colorTarget     = color.RGBA{R: 240, G: 200, B: 60, A: 255}
	colorMember     = color.RGBA{R: 70, G: 140, B: 255, A: 255}
	colorStopped    = color.RGBA{R: 90, G: 220, B: 120, A: 255}
	colorBest       = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	colorScent      = color.RGBA{R: 240, G: 200, B: 60, A: 40}
	colorSocial     = color.RGBA{R: 70, G: 140, B: 255, A: 40}
)

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(colorBackground)
	g.drawGrid(screen)
	g.drawAgents(screen)
	g.panel.Draw(screen)
	g.drawStatus(screen)
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	w, h := float32(g.cfg.WorldWidth), float32(g.cfg.WorldHeight)
	for x := float32(0); x <= w; x += gridSpacing {
		vector.StrokeLine(screen, x, 0, x, h, 1, colorGrid, false)
	}
	for y := float32(0); y <= h; y += gridSpacing {
		vector.StrokeLine(screen, 0, y, w, y, 1, colorGrid, false)
	}
}

func (g *Game) drawAgents(screen *ebiten.Image) {
	showRanges := g.controls.showRanges.Value
	for _, a := range g.engine.Snapshot() {
		x, y, r := float32(a.Pos.X), float32(a.Pos.Y), float32(a.Radius)
		if a.Kind == swarm.KindTarget {
			vector.StrokeCircle(screen, x, y, r, 1.5, colorTarget, true)
			continue
		}
		if showRanges {
			vector.StrokeCircle(screen, x, y, float32(g.cfg.ScentRange), 1, colorScent, true)
			vector.StrokeCircle(screen, x, y, float32(g.cfg.SocialRange), 1, colorSocial, true)
		}
		clr := colorMember
		if a.Stopped {
			clr = colorStopped
		}
		vector.FillCircle(screen, x, y, r, clr, true)
	}

	if best := g.engine.GlobalBest(); best.Found() {
		vector.StrokeCircle(screen, float32(best.Pos.X), float32(best.Pos.Y),
			float32(g.cfg.ParticleRadius*2), 2, colorBest, true)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	best := "none"
	if b := g.engine.GlobalBest(); b.Found() {
		best = fmt.Sprintf("%.2f at %s", b.Score, b.Pos)
	}
	msg := fmt.Sprintf("run %d  step %d  stopped %d/%d (%.0f%%)\navg distance %.2f  collisions %d  global best %s",
		g.iteration, g.last.Step, g.last.StoppedCount, g.engine.NumMembers(), g.last.StoppedFraction*100,
		g.last.AverageDistance, g.last.Collisions, best)
	if g.paused {
		msg += "\nPAUSED (space)"
	}
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)

	if s := g.lastSummary; s != nil {
		outcome := "converged"
		if s.TimedOut {
			outcome = "timed out"
		}
		done := fmt.Sprintf("%s after %d steps\naverage distance to shape %.2f\npress R or Restart for a new run",
			outcome, s.TotalSteps, s.AverageDistanceToTarget)
		ebitenutil.DebugPrintAt(screen, done, int(g.cfg.WorldWidth/2-110), int(g.cfg.WorldHeight/2-20))
	}

	perf := fmt.Sprintf("FPS: %.1f  TPS: %.1f  update %.2fms  draw %.2fms",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg)
	ebitenutil.DebugPrintAt(screen, perf, 10, int(g.cfg.WorldHeight)-20)
}
