package blahaj

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/blahaj-tide/internal/config"
	"github.com/vovakirdan/blahaj-tide/internal/core"
)

func newTestPool(seed int64) *PreyPool {
	cfg := config.DefaultBlahajConfig()
	return NewPreyPool(cfg.Prey, cfg.Wave.Extent, 7, rand.New(rand.NewSource(seed)))
}

func TestSpawnScattersWithinPond(t *testing.T) {
	pp := newTestPool(1)
	pp.Spawn(200)

	if pp.Live() != 200 || pp.Initial() != 200 || pp.Len() != 200 {
		t.Fatalf("live=%d initial=%d len=%d, expected 200", pp.Live(), pp.Initial(), pp.Len())
	}
	pp.Each(func(p *Prey) {
		if p.Position.X < -30 || p.Position.X > 30 || p.Position.Z < -30 || p.Position.Z > 30 {
			t.Errorf("prey spawned outside the pond at %+v", p.Position)
		}
		if !p.Alive || p.Scale != 1 || p.Mesh != 7 {
			t.Errorf("unexpected fresh prey %+v", p.Actor)
		}
	})

	// Respawning replaces the swarm
	pp.Spawn(3)
	if pp.Live() != 3 || pp.Len() != 3 {
		t.Errorf("after respawn live=%d len=%d, expected 3", pp.Live(), pp.Len())
	}
}

func TestPreyStayInBounds(t *testing.T) {
	pp := newTestPool(2)
	pp.Spawn(50)

	far := core.V3(1e6, 0, 1e6)
	for tick := 0; tick < 2000; tick++ {
		pp.Update(1.0/60, far, 1)
		pp.Compact()
	}

	if pp.Live() != 50 {
		t.Errorf("no prey should be eaten by a distant player, live = %d", pp.Live())
	}
	pp.Each(func(p *Prey) {
		if p.Position.X < -30 || p.Position.X > 30 || p.Position.Z < -30 || p.Position.Z > 30 {
			t.Errorf("prey escaped the pond: %+v", p.Position)
		}
	})
}

func TestCompactSwapsLastIntoHoles(t *testing.T) {
	pp := newTestPool(3)
	pp.Spawn(5)
	last := pp.prey[4].Position

	pp.prey[1].Alive = false
	pp.prey[4].Alive = false
	pp.live -= 2

	if removed := pp.Compact(); removed != 2 {
		t.Fatalf("Compact() removed %d, expected 2", removed)
	}
	if pp.Len() != 3 || pp.Live() != 3 {
		t.Fatalf("len=%d live=%d, expected 3", pp.Len(), pp.Live())
	}
	for i := range pp.prey {
		if !pp.prey[i].Alive {
			t.Errorf("dead prey left at index %d", i)
		}
		if pp.prey[i].Position == last {
			t.Error("the eaten last prey should have been dropped")
		}
	}

	if removed := pp.Compact(); removed != 0 {
		t.Errorf("second Compact() removed %d, expected 0", removed)
	}
}

func TestCaptureUsesScaledRadius(t *testing.T) {
	pp := newTestPool(4)
	pp.Spawn(1)
	p := &pp.prey[0]
	p.Speed = 0
	p.Position = core.V3(2, 0, 0)

	// 1.2 * 1 = 1.2 does not reach 2 units
	if eaten := pp.Update(1.0/60, core.V3(0, 0, 0), 1); eaten != 0 {
		t.Fatalf("eaten = %d at distance 2 with scale 1", eaten)
	}
	// 1.2 * 2 = 2.4 does
	if eaten := pp.Update(1.0/60, core.V3(0, 0, 0), 2); eaten != 1 {
		t.Fatalf("eaten = %d at distance 2 with scale 2", eaten)
	}
	if pp.Live() != 0 || pp.Eaten() != 1 {
		t.Errorf("live=%d eaten=%d after capture", pp.Live(), pp.Eaten())
	}

	// Dead prey are skipped until compacted
	if eaten := pp.Update(1.0/60, core.V3(0, 0, 0), 2); eaten != 0 {
		t.Errorf("a dead fish was eaten twice")
	}
}

func TestStationaryPlayerEatsSwarm(t *testing.T) {
	pp := newTestPool(5)
	pp.Spawn(100)

	origin := core.V3(0, 0, 0)
	prev := pp.Live()
	decreased := false
	for tick := 0; tick < 10000; tick++ {
		pp.Update(1.0/60, origin, 5)
		pp.Compact()

		live := pp.Live()
		if live > prev {
			t.Fatalf("tick %d: live count grew from %d to %d", tick, prev, live)
		}
		if live < prev {
			decreased = true
		}
		if pp.Len() != live {
			t.Fatalf("tick %d: %d slots for %d live prey after Compact", tick, pp.Len(), live)
		}
		prev = live
	}

	if !decreased {
		t.Error("live count never decreased")
	}
	if score := 100 - pp.Live(); score != pp.Eaten() {
		t.Errorf("score %d != eaten %d", score, pp.Eaten())
	}
}
