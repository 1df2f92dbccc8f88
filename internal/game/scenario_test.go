package game

import (
	"math"
	"testing"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// dumpSummary prints the scenario summary block.
func dumpSummary(t *testing.T, ts *TestSim) {
	t.Helper()
	t.Log(ts.SimLog.Summary(ts.Snapshot(), ts.Sim.Stats()))
}

// --- Scenario: Pursuit ---

func TestScenario_Pursuit(t *testing.T) {
	t.Log("=== TestScenario_Pursuit ===")
	t.Log("--- Setup: one engaging pursuer at speed 100, player 200 units to its right ---")

	ts := NewTestSim(
		WithSeed(1),
		WithoutSpawns(),
		WithConfig(func(c *Config) { c.Enemies.Pursuer.Speed = 100 }),
		WithPlayerAt(300, 300),
		WithEnemy(ArchetypePursuer, 100, 300, EnemyEngaging),
	)
	ts.Step()

	e, ok := ts.Enemy(0)
	if !ok {
		t.Fatal("pursuer vanished")
	}
	if math.Abs(e.Pos[0]-110) > 1e-9 || math.Abs(e.Pos[1]-300) > 1e-9 {
		t.Fatalf("pursuer at (%.6f,%.6f), want (110,300)", e.Pos[0], e.Pos[1])
	}
	if e.Destination != ts.Player().Pos {
		t.Errorf("destination %v, want player position %v", e.Destination, ts.Player().Pos)
	}

	t.Log("--- Player enters overdrive: the pursuer must now flee ---")
	ts.Press(TokenPrimary)
	ts.Step()
	e, _ = ts.Enemy(0)
	if math.Abs(e.Pos[0]-100) > 1e-9 {
		t.Fatalf("fleeing pursuer at x=%.6f, want 100", e.Pos[0])
	}
	dumpSummary(t, ts)
}

// --- Scenario: Damage to death ---

func TestScenario_DamageToDeath(t *testing.T) {
	t.Log("=== TestScenario_DamageToDeath ===")
	t.Log("--- Setup: pursuer with hp=10 and no counter window, another bystander ---")

	ts := NewTestSim(
		WithSeed(2),
		WithoutSpawns(),
		WithConfig(func(c *Config) { c.Enemies.Pursuer.CounterThreshold = 0 }),
		WithEnemy(ArchetypePursuer, 100, 100, EnemyEngaging),
		WithEnemy(ArchetypePursuer, 400, 100, EnemyEngaging),
	)
	target := ts.Enemies[0]
	if pop := ts.Sim.Population(); pop != 2 {
		t.Fatalf("population %d, want 2", pop)
	}

	// 6 hits of 3 hp each: 18 effective damage against 10 hp.
	for i := 0; i < 6; i++ {
		deliver(ts, damageEnemy(target))
	}

	if ts.Sim.enemies.Valid(target) {
		t.Fatal("target still alive after lethal damage")
	}
	if n := ts.CountEvents(EventEnemyDied); n != 1 {
		t.Fatalf("EnemyDied published %d times, want exactly 1", n)
	}
	if pop := ts.Sim.Population(); pop != 1 {
		t.Fatalf("population %d after one death, want 1", pop)
	}
	if n := ts.SimLog.CountCategory("despawn", "died"); n != 1 {
		t.Fatalf("died logged %d times", n)
	}
	if ts.CountEvents(EventChallengeStarted) != 0 {
		t.Error("no challenge should open with a zero threshold")
	}
}

// --- Scenario: Invulnerability window ---

func TestScenario_InvulnerabilityWindow(t *testing.T) {
	t.Log("=== TestScenario_InvulnerabilityWindow ===")

	ts := NewTestSim(WithSeed(3), WithoutSpawns())
	p := ts.Player()
	if ts.Sim.cfg.Player.Invulnerability != 2 {
		t.Fatalf("default invulnerability changed: %v", ts.Sim.cfg.Player.Invulnerability)
	}

	deliver(ts, hitPlayer())
	if p.State != PlayerDamaged || p.HP != p.MaxHP-1 {
		t.Fatalf("after first hit: state=%s hp=%d", p.State, p.HP)
	}
	hp := p.HP

	ts.RunTicks(10) // t = 1s
	deliver(ts, hitPlayer())
	if p.HP != hp {
		t.Fatalf("second hit at t=1s changed hp %d → %d", hp, p.HP)
	}
	if p.State != PlayerDamaged {
		t.Fatalf("state at t=1s is %s", p.State)
	}

	ts.RunTicks(9) // t = 1.9s
	if p.State != PlayerDamaged {
		t.Fatalf("invulnerability ended early at t=1.9s")
	}
	ts.Step() // t = 2s
	if p.State != PlayerRegular {
		dumpLog(t, ts)
		t.Fatalf("state at t=2s is %s, want regular", p.State)
	}
}

// --- Scenario: Fuel exhaustion ---

func TestScenario_FuelExhaustion(t *testing.T) {
	t.Log("=== TestScenario_FuelExhaustion ===")

	ts := NewTestSim(WithSeed(4), WithoutSpawns())
	p := ts.Player()
	ts.Sim.enterOverdrive(p)
	p.Fuel = 1.0
	if ts.Sim.cfg.Player.FuelDrain != 10 {
		t.Fatalf("default drain changed: %v", ts.Sim.cfg.Player.FuelDrain)
	}

	ts.RunTicks(2) // 0.2s
	if p.Fuel >= 1.0 {
		t.Fatalf("fuel %.3f, want < 1", p.Fuel)
	}
	if n := ts.CountEvents(EventPlayerRegularForm); n != 1 {
		t.Fatalf("regular-form signal fired %d times, want exactly 1", n)
	}
	if p.State != PlayerRegular {
		t.Fatalf("state %s, want regular", p.State)
	}
	if p.Collider != ts.Sim.cfg.Player.Collider || p.Speed != ts.Sim.cfg.Player.Speed {
		t.Errorf("overdrive profile not restored: collider=%v speed=%v", p.Collider, p.Speed)
	}
}

// --- Scenario: Full descent ---

func TestScenario_FullDescent(t *testing.T) {
	t.Log("=== TestScenario_FullDescent ===")
	t.Log("--- Setup: shortened descent, accurate autopilot ---")

	ts := NewTestSim(WithSeed(42), WithConfig(func(c *Config) {
		c.Spawn.ShooterDepth = 400
		c.Spawn.BossDepth = 1200
		c.World.MaxDepth = 1200
	}))
	runAutopilot(t, ts, NewAutopilot(42, 1), 6000)
	dumpSummary(t, ts)

	sum := DetermineOutcome(ts.Snapshot(), ts.Sim.Stats())
	t.Logf("outcome=%s (%s) ticks=%d kills=%d", sum.Outcome, sum.Description, sum.Ticks, sum.TotalKills)

	if ts.Sim.Depth() < 1200 && sum.Outcome != OutcomeDefeated {
		t.Errorf("run ended at depth %.0f without a defeat", ts.Sim.Depth())
	}
	if sum.Spawned == 0 {
		t.Error("nothing spawned during a full descent")
	}
	if ts.SimLog.CountCategory("spawn", "enemy") != sum.Spawned {
		t.Errorf("spawn log (%d) disagrees with stats (%d)", ts.SimLog.CountCategory("spawn", "enemy"), sum.Spawned)
	}
	switch sum.Outcome {
	case OutcomeCleared:
		if sum.Kills[ArchetypeBoss] != 1 {
			t.Errorf("cleared without a boss kill: %+v", sum.Kills)
		}
	case OutcomeDefeated:
		if ts.Player() != nil {
			t.Error("defeated run still has a player")
		}
	}
}

func TestDetermineOutcome(t *testing.T) {
	snap := Snapshot{Mode: ModeCleared, Depth: 6000, MaxDepth: 6000, Player: &PlayerView{HP: 3}}
	var stats RunStats
	stats.Kills[ArchetypeBoss] = 1
	stats.Spawned[ArchetypeBoss] = 1
	stats.DamageTaken = 2

	sum := DetermineOutcome(snap, stats)
	if sum.Outcome != OutcomeCleared || sum.Description != "boss_defeated" || sum.PlayerHP != 3 {
		t.Fatalf("cleared run: %+v", sum)
	}

	snap = Snapshot{Mode: ModeGameOver, Depth: 1000, MaxDepth: 6000}
	sum = DetermineOutcome(snap, RunStats{})
	if sum.Outcome != OutcomeDefeated || sum.Description != "defeated_early_descent" {
		t.Fatalf("early defeat: %+v", sum)
	}

	snap = Snapshot{Mode: ModeRunning, Depth: 100, MaxDepth: 6000, Player: &PlayerView{HP: 5}}
	sum = DetermineOutcome(snap, RunStats{})
	if sum.Outcome != OutcomeInconclusive || sum.Description != "inconclusive_time_limit" {
		t.Fatalf("running: %+v", sum)
	}
}
