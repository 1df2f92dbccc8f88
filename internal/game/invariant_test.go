package game

import (
	"testing"
)

// --- Invariant helpers ---

// checkWorldInvariants verifies the clamped ranges and bookkeeping that must
// hold after every tick, whatever happened during it.
func checkWorldInvariants(t *testing.T, ts *TestSim) {
	t.Helper()
	s := ts.Sim
	tick := s.Tick()

	if p := s.player; p != nil {
		if p.HP < 0 || p.HP > p.MaxHP {
			t.Fatalf("T=%d player hp %d outside [0,%d]", tick, p.HP, p.MaxHP)
		}
		if p.Fuel < 0 || p.Fuel > p.FuelCapacity {
			t.Fatalf("T=%d player fuel %.3f outside [0,%.0f]", tick, p.Fuel, p.FuelCapacity)
		}
		switch p.State {
		case PlayerRegular, PlayerOverdrive:
		case PlayerDamaged:
			if p.InvulnerableLeft() <= 0 {
				t.Fatalf("T=%d player damaged without an invulnerability countdown", tick)
			}
		default:
			t.Fatalf("T=%d player in unknown state %d", tick, p.State)
		}
		if p.Heat < 0 || p.Heat > s.cfg.Heat.Limit {
			t.Fatalf("T=%d heat %.2f outside [0,%.0f]", tick, p.Heat, s.cfg.Heat.Limit)
		}
	} else if s.Mode() != ModeGameOver {
		t.Fatalf("T=%d no player but mode is %s", tick, s.Mode())
	}

	s.enemies.Each(func(_ Handle, e *Enemy) bool {
		if e.HP < 0 || e.HP > e.MaxHP {
			t.Fatalf("T=%d %s hp %.3f outside [0,%.0f]", tick, e.Label, e.HP, e.MaxHP)
		}
		if e.Speed() < 0 {
			t.Fatalf("T=%d %s negative speed %.3f", tick, e.Label, e.Speed())
		}
		if e.State != EnemySpawned {
			hs := half(e.Collider)
			if e.Pos[0] < hs[0]-1e-9 || e.Pos[0] > s.cfg.World.Width-hs[0]+1e-9 ||
				e.Pos[1] < hs[1]-1e-9 || e.Pos[1] > s.cfg.World.Height-hs[1]+1e-9 {
				t.Fatalf("T=%d %s (%s) escaped the arena at (%.1f,%.1f)",
					tick, e.Label, e.State, e.Pos[0], e.Pos[1])
			}
		}
		return true
	})

	if s.population != s.enemies.Len() {
		t.Fatalf("T=%d population %d but %d live enemies", tick, s.population, s.enemies.Len())
	}
	if s.population > s.cfg.Spawn.MaxEnemies {
		t.Fatalf("T=%d population %d over cap %d", tick, s.population, s.cfg.Spawn.MaxEnemies)
	}
	if s.ChallengeActive() != (s.Mode() == ModeChallenge) {
		t.Fatalf("T=%d challenge=%v but mode %s", tick, s.ChallengeActive(), s.Mode())
	}
	if s.bus.Pending() != 0 {
		t.Fatalf("T=%d %d events left on the bus after the tick", tick, s.bus.Pending())
	}
}

// runAutopilot drives ts with an Autopilot, checking invariants every tick,
// until the run ends or maxTicks pass.
func runAutopilot(t *testing.T, ts *TestSim, ap *Autopilot, maxTicks int) {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		ts.Sim.Step(ts.DT, ap.Decide(ts.Sim.Snapshot()))
		checkWorldInvariants(t, ts)
		if m := ts.Sim.Mode(); m == ModeGameOver || m == ModeCleared {
			return
		}
	}
}

// --- Invariant tests ---

func TestInvariant_BoundsHold_AutopilotRuns(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1234} {
		for _, acc := range []float64{0.3, 0.95} {
			ts := NewTestSim(WithSeed(seed), WithConfig(func(c *Config) {
				c.Spawn.ShooterDepth = 600
				c.Spawn.BossDepth = 2400
				c.World.MaxDepth = 2400
			}))
			runAutopilot(t, ts, NewAutopilot(seed, acc), 3000)
			t.Logf("seed=%d acc=%.2f T=%d mode=%s kills=%d counters=%d/%d",
				seed, acc, ts.CurrentTick(), ts.Sim.Mode(), ts.Sim.Stats().TotalKills(),
				ts.Sim.Stats().CounterWins, ts.Sim.Stats().CounterLosses)
		}
	}
}

func TestInvariant_BoundsHold_RandomDamageAndHeals(t *testing.T) {
	ts := NewTestSim(WithSeed(3), WithConfig(func(c *Config) { c.Spawn.MaxEnemies = 3 }),
		WithEnemy(ArchetypePursuer, 100, 100, EnemyEngaging),
		WithEnemy(ArchetypeRanged, 400, 200, EnemyEngaging),
		WithEnemy(ArchetypeBoss, 260, 500, EnemyEngaging),
	)
	rng := ts.Sim.rng
	for i := 0; i < 400; i++ {
		switch rng.Intn(4) {
		case 0:
			deliver(ts, damageEnemy(ts.Enemies[rng.Intn(len(ts.Enemies))]))
		case 1:
			if e, ok := ts.Enemy(rng.Intn(len(ts.Enemies))); ok {
				e.HP = clampf(e.HP+e.CounterHeal, 0, e.MaxHP)
			}
		case 2:
			if p := ts.Player(); p != nil && p.State == PlayerRegular && p.Fuel >= p.FuelCapacity {
				ts.Press(TokenPrimary)
			}
		case 3:
			if c := ts.Sim.challenge; c != nil && len(c.Sequence) > 0 {
				ts.Press(Token(1 + rng.Intn(2)))
			}
		}
		ts.Step()
		checkWorldInvariants(t, ts)
		if ts.Sim.Mode() == ModeGameOver || ts.Sim.Mode() == ModeCleared {
			break
		}
	}
}

func TestInvariant_StaleHandlesAreHarmless(t *testing.T) {
	ts := NewTestSim(WithoutSpawns(), WithEnemy(ArchetypePursuer, 100, 100, EnemyEngaging))
	h := ts.Enemies[0]
	ts.Sim.enterOverdrive(ts.Player())
	ts.Sim.destroyEnemy(h, "test")
	ts.Sim.bus.Dispatch()

	before := ts.Snapshot()
	statsBefore := ts.Sim.Stats()
	deliver(ts, damageEnemy(h), damageEnemy(h), damageEnemy(Handle{}))
	after := ts.Snapshot()

	if before.Population != after.Population || before.Player.Heat != after.Player.Heat ||
		before.Mode != after.Mode || len(after.Enemies) != 0 {
		t.Fatalf("stale damage changed the world:\nbefore %+v\nafter  %+v", before, after)
	}
	if ts.Sim.Stats() != statsBefore {
		t.Fatalf("stale damage changed stats: %+v → %+v", statsBefore, ts.Sim.Stats())
	}
	if ts.CountEvents(EventEnemyDied) != 1 {
		t.Fatalf("expected exactly one death, got %d", ts.CountEvents(EventEnemyDied))
	}
}
