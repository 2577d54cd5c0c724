package swarm

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-shape/pkg/geometry"
)

func scanConfig() *Config {
	cfg := DefaultConfig()
	cfg.ScentRange = 50
	cfg.SocialRange = 30
	cfg.SocialScentIncreaseFactor = 2
	return cfg
}

func TestScan_NearestTargetInScentRange(t *testing.T) {
	cfg := scanConfig()
	a := member(geometry.Vector2D{X: 100, Y: 100}, geometry.Vector2D{}, 1, 1)
	agents := []*Agent{
		NewTarget(geometry.Vector2D{X: 140, Y: 100}, 1), // 40
		NewTarget(geometry.Vector2D{X: 100, Y: 120}, 1), // 20
		NewTarget(geometry.Vector2D{X: 80, Y: 100}, 1),  // 20, found later
		NewTarget(geometry.Vector2D{X: 100, Y: 300}, 1), // out of range
		a,
	}

	res := Scan(a, agents, cfg)

	if !res.Scent.Found() || res.Scent.Score != 20 {
		t.Fatalf("scent = %+v, want score 20", res.Scent)
	}
	if !res.Scent.Pos.Eq(geometry.Vector2D{X: 100, Y: 120}) {
		t.Errorf("scent tie should keep the first found target, got %s", res.Scent.Pos)
	}
	if res.NearestTarget != 20 {
		t.Errorf("NearestTarget = %v, want 20", res.NearestTarget)
	}
	if res.Partner() != nil {
		t.Errorf("unexpected collision partner")
	}
}

func TestScan_ZeroScentRangeNeverSenses(t *testing.T) {
	cfg := scanConfig()
	cfg.ScentRange = 0
	a := member(geometry.Vector2D{X: 100, Y: 100}, geometry.Vector2D{}, 1, 1)
	agents := []*Agent{NewTarget(geometry.Vector2D{X: 103, Y: 100}, 1), a}

	res := Scan(a, agents, cfg)

	if res.Scent.Found() {
		t.Errorf("scent = %+v, want nothing sensed", res.Scent)
	}
	if res.NearestTarget != 3 {
		t.Errorf("NearestTarget = %v, want 3 even out of scent range", res.NearestTarget)
	}
}

func TestScan_SocialUsesNeighbourPersonalBest(t *testing.T) {
	cfg := scanConfig()
	a := member(geometry.Vector2D{X: 100, Y: 100}, geometry.Vector2D{}, 1, 1)
	far := member(geometry.Vector2D{X: 200, Y: 100}, geometry.Vector2D{}, 1, 1)
	far.Member.PersonalBest = Best{Score: 1}
	good := member(geometry.Vector2D{X: 120, Y: 100}, geometry.Vector2D{}, 1, 1)
	good.Member.PersonalBest = Best{Score: 7}
	better := member(geometry.Vector2D{X: 100, Y: 110}, geometry.Vector2D{}, 1, 1)
	better.Member.PersonalBest = Best{Score: 4}
	unsensedNeighbour := member(geometry.Vector2D{X: 90, Y: 100}, geometry.Vector2D{}, 1, 1)

	res := Scan(a, []*Agent{a, far, good, unsensedNeighbour, better}, cfg)

	if res.Social.Score != 8 {
		t.Errorf("social score = %v, want 4 * 2", res.Social.Score)
	}
	if !res.Social.Pos.Eq(better.Pos) {
		t.Errorf("social pos = %s, want the neighbour position %s", res.Social.Pos, better.Pos)
	}
}

func TestScan_OverlapTakesPrecedenceOverSocial(t *testing.T) {
	cfg := scanConfig()
	a := member(geometry.Vector2D{X: 100, Y: 100}, geometry.Vector2D{}, 2, 1)
	b := member(geometry.Vector2D{X: 103, Y: 100}, geometry.Vector2D{}, 2, 1)
	b.Member.PersonalBest = Best{Score: 1}
	c := member(geometry.Vector2D{X: 97, Y: 100}, geometry.Vector2D{}, 2, 1)

	res := Scan(a, []*Agent{a, b, c}, cfg)
	if res.Partner() != b {
		t.Fatalf("partner = %v, want the first overlapping member", res.Partner())
	}
	if len(res.Partners) != 1 {
		t.Errorf("len(Partners) = %d, want 1", len(res.Partners))
	}
	if res.Social.Found() {
		t.Errorf("an overlapping member must not contribute a social score")
	}

	cfg.ResolveAllCollisions = true
	res = Scan(a, []*Agent{a, b, c}, cfg)
	if len(res.Partners) != 2 {
		t.Errorf("len(Partners) = %d, want 2 with resolve_all_collisions", len(res.Partners))
	}
}

func TestScan_TouchingIsNotOverlap(t *testing.T) {
	cfg := scanConfig()
	a := member(geometry.Vector2D{X: 100, Y: 100}, geometry.Vector2D{}, 2, 1)
	b := member(geometry.Vector2D{X: 104, Y: 100}, geometry.Vector2D{}, 2, 1)

	res := Scan(a, []*Agent{a, b}, cfg)
	if res.Partner() != nil {
		t.Errorf("members exactly touching must not collide")
	}
}

func TestScan_NoTargets(t *testing.T) {
	a := member(geometry.Vector2D{X: 1, Y: 1}, geometry.Vector2D{}, 1, 1)
	res := Scan(a, []*Agent{a}, scanConfig())
	if !math.IsInf(res.NearestTarget, 1) {
		t.Errorf("NearestTarget = %v, want +Inf", res.NearestTarget)
	}
}

func TestUpdateBests(t *testing.T) {
	global := NewGlobalBest()
	a := member(geometry.Vector2D{X: 10, Y: 10}, geometry.Vector2D{}, 1, 1)

	res := &ScanResult{
		Scent:  Best{Pos: geometry.Vector2D{X: 20, Y: 10}, Score: 10},
		Social: Best{Score: math.Inf(1)},
	}
	u := updateBests(a, res, global, -1)
	if !u.improved || !u.globalMoved {
		t.Fatalf("first sensing should improve both bests, got %+v", u)
	}
	if !global.Get().Pos.Eq(a.Pos) {
		t.Errorf("global best must sit at the member position, got %s", global.Get().Pos)
	}

	// social wins only when strictly lower
	res.Social = Best{Pos: geometry.Vector2D{X: 5, Y: 5}, Score: 10}
	res.Scent.Score = 10
	u = updateBests(a, res, global, -1)
	if u.improved || a.Member.Stagnation != 1 {
		t.Errorf("equal score must count as stagnation, got %+v stagnation %d", u, a.Member.Stagnation)
	}

	res.Social.Score = 3
	updateBests(a, res, global, -1)
	if a.Member.PersonalBest.Score != 3 || !a.Member.PersonalBest.Pos.Eq(geometry.Vector2D{X: 5, Y: 5}) {
		t.Errorf("personal best = %+v, want the social candidate", a.Member.PersonalBest)
	}
	if global.Get().Score != 3 {
		t.Errorf("global score = %v, want 3", global.Get().Score)
	}
}

func TestUpdateBests_StagnationReset(t *testing.T) {
	global := NewGlobalBest()
	a := member(geometry.Vector2D{X: 10, Y: 10}, geometry.Vector2D{}, 1, 1)
	res := &ScanResult{
		Scent:  Best{Pos: geometry.Vector2D{X: 12, Y: 10}, Score: 2},
		Social: Best{Score: math.Inf(1)},
	}
	updateBests(a, res, global, 2)

	var reset bool
	for i := 0; i < 3; i++ {
		reset = updateBests(a, res, global, 2).reset
	}
	if !reset {
		t.Fatalf("expected a reset once stagnation exceeds the limit")
	}
	if a.Member.PersonalBest.Found() || a.Member.Stagnation != 0 {
		t.Errorf("personal best = %+v stagnation %d, want unsensed and 0", a.Member.PersonalBest, a.Member.Stagnation)
	}
	if global.Get().Score != 2 {
		t.Errorf("a reset must not touch the global best, got %v", global.Get().Score)
	}
}

func BenchmarkScan(b *testing.B) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	e, err := New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	a := e.agents[e.members[0]]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Scan(a, e.agents, cfg)
	}
}
