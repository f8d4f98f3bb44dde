package blahaj

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot is a compact summary of the game used for determinism checks
// and run reports.
type Snapshot struct {
	Tick     uint64
	State    string
	Timer    int
	Score    int
	PreyLeft int

	PlayerX       float64
	PlayerZ       float64
	PlayerHeading float64
	PlayerScale   float64

	// Each live fish is 3 values: X, Z, Heading
	PreyData []float64

	WaveEnergy float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	preyData := make([]float64, 0, 3*g.prey.Live())
	g.prey.Each(func(p *Prey) {
		preyData = append(preyData, p.Position.X, p.Position.Z, p.Heading)
	})

	return Snapshot{
		Tick:     g.clock.Frame(),
		State:    g.state.String(),
		Timer:    g.timer,
		Score:    g.Score(),
		PreyLeft: g.prey.Live(),

		PlayerX:       g.player.Position.X,
		PlayerZ:       g.player.Position.Z,
		PlayerHeading: g.player.Heading,
		PlayerScale:   g.player.Scale,

		PreyData:   preyData,
		WaveEnergy: g.field.Energy(),
	}
}

// Hash returns an FNV-1a digest over the exact bit patterns of the
// snapshot, so any divergence between two runs changes it.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}

	put(snap.Tick)
	_, _ = h.Write([]byte(snap.State))
	put(uint64(snap.Timer))    //#nosec G115 -- hash computation
	put(uint64(snap.Score))    //#nosec G115 -- hash computation
	put(uint64(snap.PreyLeft)) //#nosec G115 -- hash computation
	for _, f := range []float64{snap.PlayerX, snap.PlayerZ, snap.PlayerHeading, snap.PlayerScale, snap.WaveEnergy} {
		put(math.Float64bits(f))
	}
	for _, f := range snap.PreyData {
		put(math.Float64bits(f))
	}
	return h.Sum64()
}
