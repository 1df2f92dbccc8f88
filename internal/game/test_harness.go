package game

import (
	"fmt"

	"golang.org/x/image/math/f64"
)

// TestSim is a headless simulation harness used by tests and the headless
// report. It drives a Sim with a fixed step and records every event.
type TestSim struct {
	Sim     *Sim
	SimLog  *SimLog
	DT      float64
	Enemies []Handle // handles of enemies added with WithEnemy, in order
	Events  []Event  // every dispatched event, in dispatch order

	cfg      Config
	input    Input
	playerAt *f64.Vec2
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // config, seed, verbose; applied before the Sim exists
	simOptActor                      // player and enemy placement; applied after
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithArena sets the playfield dimensions.
func WithArena(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.World.Width = w
		ts.cfg.World.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithStep sets the fixed tick length in seconds.
func WithStep(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.DT = dt
	}}
}

// WithConfig lets a test tweak the configuration before the Sim is built.
func WithConfig(fn func(*Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		fn(&ts.cfg)
	}}
}

// WithoutSpawns stops the spawner and the pickup drops so only actors the
// test places exist.
func WithoutSpawns() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Spawn.MaxEnemies = 0
		ts.cfg.Pickups.Period = 1e9
	}}
}

// WithPlayerAt moves the player (and its pointer target) to (x,y).
func WithPlayerAt(x, y float64) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		p := vec(x, y)
		ts.playerAt = &p
		if pl := ts.Sim.player; pl != nil {
			pl.Pos = p
			pl.Destination = p
		}
		ts.Sim.pointer = p
	}}
}

// WithEnemy places an enemy of archetype a at (x,y) in state st. Its handle
// is appended to TestSim.Enemies.
func WithEnemy(a Archetype, x, y float64, st EnemyState) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.Enemies = append(ts.Enemies, ts.Sim.placeEnemy(a, vec(x, y), st))
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered passes:
//  1. Infrastructure (config, seed, verbose, step)
//  2. Actors (player position, enemies)
//
// It panics on an invalid configuration, which is always a test bug.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		DT:     0.1,
		cfg:    DefaultConfig(),
	}
	ts.cfg.Seed = 1
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	sim, err := NewSim(ts.cfg, WithSimLog(ts.SimLog))
	if err != nil {
		panic(fmt.Sprintf("NewTestSim: %v", err))
	}
	ts.Sim = sim
	for k := EventKind(0); k < eventKindCount; k++ {
		sim.Subscribe(k, func(ev Event) { ts.Events = append(ts.Events, ev) })
	}
	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(ts)
		}
	}
	return ts
}

// placeEnemy inserts an enemy directly, bypassing the scheduler.
func (s *Sim) placeEnemy(a Archetype, pos f64.Vec2, st EnemyState) Handle {
	e := newEnemy(a, s.cfg.Enemies.For(a), s.cfg.Ignite.Duration)
	e.Label = s.nextLabel("E")
	e.Pos = pos
	e.Destination = pos
	e.State = st
	if st == EnemyOnFire {
		e.fireBonus = s.cfg.Ignite.SpeedGain
	}
	if a == ArchetypeBoss {
		s.spawner.bossQueued = true
	}
	h := s.enemies.Insert(e)
	s.population++
	s.stats.Spawned[a]++
	s.publish(Event{Kind: EventActorSpawned, Actor: ActorEnemy, Target: h, Archetype: a})
	s.log.Add(s.tick, e.Label, a.String(), "spawn", "placed",
		fmt.Sprintf("(%.0f,%.0f) %s", pos[0], pos[1], st), 0)
	return h
}

// PointAt sets the pointer for every following tick.
func (ts *TestSim) PointAt(x, y float64) {
	ts.input.Pointer = vec(x, y)
	ts.input.HasPointer = true
}

// Press queues tokens as just-pressed for the next tick only.
func (ts *TestSim) Press(tokens ...Token) {
	ts.input.Pressed = append(ts.input.Pressed, tokens...)
}

// Step advances one tick with the queued input.
func (ts *TestSim) Step() {
	in := ts.input
	ts.input.Pressed = nil
	ts.Sim.Step(ts.DT, in)
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step()
		if predicate(ts) {
			return ts.Sim.Tick()
		}
	}
	return -1
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Sim.Tick()
}

// Snapshot returns the current world view.
func (ts *TestSim) Snapshot() Snapshot {
	return ts.Sim.Snapshot()
}

// Player returns the live player, or nil.
func (ts *TestSim) Player() *Player {
	return ts.Sim.player
}

// Enemy resolves the i-th enemy added with WithEnemy.
func (ts *TestSim) Enemy(i int) (*Enemy, bool) {
	if i < 0 || i >= len(ts.Enemies) {
		return nil, false
	}
	return ts.Sim.enemies.Get(ts.Enemies[i])
}

// CountEvents returns how many events of kind have been dispatched.
func (ts *TestSim) CountEvents(kind EventKind) int {
	n := 0
	for _, ev := range ts.Events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// LastEvent returns the most recent event of kind.
func (ts *TestSim) LastEvent(kind EventKind) (Event, bool) {
	for i := len(ts.Events) - 1; i >= 0; i-- {
		if ts.Events[i].Kind == kind {
			return ts.Events[i], true
		}
	}
	return Event{}, false
}
