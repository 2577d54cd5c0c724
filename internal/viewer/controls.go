package viewer

import (
	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/swarm"
	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/ui"
)

// controls are the panel widgets bound to configuration fields. Values
// only reach the engine on restart, a run never sees its config change.
type controls struct {
	members     *ui.Slider
	shapeRadius *ui.Slider
	square      *ui.Checkbox

	scent        *ui.Slider
	social       *ui.Slider
	socialFactor *ui.Slider

	inertia   *ui.Slider
	cognition *ui.Slider
	socialW   *ui.Slider
	maxSpeed  *ui.Slider
	limitTurn *ui.Checkbox
	maxTurn   *ui.Slider

	stopRadius *ui.Slider
	capacity   *ui.Slider

	spatialIndex *ui.Checkbox
	resolveAll   *ui.Checkbox
	showRanges   *ui.Checkbox
}

func newControls(p *ui.Panel, cfg *swarm.Config, onRestart func()) *controls {
	c := &controls{}
	maxShape := min(cfg.WorldWidth, cfg.WorldHeight)/2 - cfg.ParticleRadius

	p.AddSection("Swarm (restart)")
	c.members = p.AddIntSlider("Members", 1, 500, float64(cfg.NumSwarmMembers))
	c.shapeRadius = p.AddIntSlider("Shape radius", 20, maxShape, cfg.ShapeRadius)
	c.square = p.AddCheckbox("Square silhouette", cfg.Shape == swarm.ShapeSquare)

	p.AddSection("Sensing")
	c.scent = p.AddSlider("Scent range", 0, 400, cfg.ScentRange)
	c.social = p.AddSlider("Social range", 0, 200, cfg.SocialRange)
	c.socialFactor = p.AddSlider("Social factor", 1, 3, cfg.SocialScentIncreaseFactor)

	p.AddSection("Velocity")
	c.inertia = p.AddSlider("Inertia", 0, 1.2, cfg.Inertia)
	c.cognition = p.AddSlider("Cognition", 0, 3, cfg.Cognition)
	c.socialW = p.AddSlider("Social", 0, 3, cfg.Social)
	c.maxSpeed = p.AddSlider("Max speed", 0.5, 10, cfg.MaxSpeed)
	turn := 30.0
	if cfg.MaxTurningRadius != nil {
		turn = *cfg.MaxTurningRadius
	}
	c.limitTurn = p.AddCheckbox("Limit turning", cfg.MaxTurningRadius != nil)
	c.maxTurn = p.AddIntSlider("Max turn (deg)", 1, 180, turn)

	p.AddSection("Convergence")
	c.stopRadius = p.AddSlider("Stopping radius", 0, 20, cfg.StoppingRadius)
	c.capacity = p.AddIntSlider("Recent positions", 1, 100, float64(cfg.RecentPositionsCapacity))

	p.AddSection("Engine")
	c.spatialIndex = p.AddCheckbox("Spatial index", cfg.SpatialIndex)
	c.resolveAll = p.AddCheckbox("Resolve all collisions", cfg.ResolveAllCollisions)
	c.showRanges = p.AddCheckbox("Show ranges", false)
	p.AddButton("Restart", onRestart)
	return c
}

// config returns base with the panel values applied.
func (c *controls) config(base *swarm.Config) *swarm.Config {
	cfg := base.Clone()
	cfg.NumSwarmMembers = int(c.members.Value)
	cfg.ShapeRadius = c.shapeRadius.Value
	cfg.Shape = swarm.ShapeCircle
	if c.square.Value {
		cfg.Shape = swarm.ShapeSquare
	}
	cfg.ScentRange = c.scent.Value
	cfg.SocialRange = c.social.Value
	cfg.SocialScentIncreaseFactor = c.socialFactor.Value
	cfg.Inertia = c.inertia.Value
	cfg.Cognition = c.cognition.Value
	cfg.Social = c.socialW.Value
	cfg.MaxSpeed = c.maxSpeed.Value
	cfg.MaxTurningRadius = nil
	if c.limitTurn.Value {
		cfg.MaxTurningRadius = swarm.Float64Ptr(c.maxTurn.Value)
	}
	cfg.StoppingRadius = c.stopRadius.Value
	cfg.RecentPositionsCapacity = int(c.capacity.Value)
	cfg.SpatialIndex = c.spatialIndex.Value
	cfg.ResolveAllCollisions = c.resolveAll.Value
	// a fresh seed per restart unless one was pinned
	if base.Seed != 0 {
		cfg.Seed = base.Seed + 1
	}
	return cfg
}
