package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/math/f64"
)

// Mode is the top-level simulation mode.
type Mode int

const (
	ModeRunning   Mode = iota // normal combat
	ModeChallenge             // counter-attack challenge active; combat suspended
	ModeGameOver              // the player is gone
	ModeCleared               // the boss is defeated
)

func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "running"
	case ModeChallenge:
		return "challenge"
	case ModeGameOver:
		return "game_over"
	case ModeCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// RunStats accumulates counters over a whole run.
type RunStats struct {
	Spawned          [archetypeCount]int
	Kills            [archetypeCount]int
	CounterWins      int
	CounterLosses    int
	DamageTaken      int
	PickupsCollected int
	Ignitions        int
	ShotsFired       int
	Reflections      int
	OverdriveEntries int
}

// TotalKills sums kills over all archetypes.
func (rs RunStats) TotalKills() int {
	n := 0
	for _, k := range rs.Kills {
		n += k
	}
	return n
}

// Sim is the simulation context. It exclusively owns the world and is
// advanced one tick at a time by Step. A Sim is not safe for concurrent use.
type Sim struct {
	cfg   Config
	RunID string

	rng *rand.Rand
	bus *Bus
	log *SimLog

	tick    int
	dt      float64
	elapsed float64
	mode    Mode
	depth   float64

	player      *Player
	pointer     f64.Vec2
	enemies     Arena[Enemy]
	projectiles Arena[Projectile]
	pickups     Arena[Pickup]

	spawner     Spawner
	pickupTimer Timer
	challenge   *Challenge
	population  int
	serial      int

	stats RunStats
}

// Option customises NewSim.
type Option func(*Sim)

// WithSimLog routes simulation log entries into l.
func WithSimLog(l *SimLog) Option {
	return func(s *Sim) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRand replaces the RNG derived from Config.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(s *Sim) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// NewSim validates cfg and builds a world with the player at the arena centre.
func NewSim(cfg Config, opts ...Option) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Sim{
		cfg:         cfg,
		RunID:       uuid.NewString(),
		rng:         rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay only
		bus:         NewBus(),
		log:         NewSimLog(false),
		spawner:     NewSpawner(cfg.Spawn),
		pickupTimer: NewTimer(cfg.Pickups.Period, TimerRepeating),
	}
	for _, o := range opts {
		o(s)
	}
	s.subscribeCore()
	s.spawnPlayer(s.center())
	return s, nil
}

// subscribeCore wires the core consumers. Order matters: for a shared
// event kind, handlers run in the order registered here, before any
// external subscriber.
func (s *Sim) subscribeCore() {
	s.bus.Subscribe(EventPlayerDamaged, s.handlePlayerDamaged)
	s.bus.Subscribe(EventPlayerRegularForm, s.handlePlayerRegularForm)
	s.bus.Subscribe(EventGameOver, s.handleGameOver)
	s.bus.Subscribe(EventEnemyDamaged, s.handleOverdriveHeat)
	s.bus.Subscribe(EventEnemyDamaged, s.handleEnemyDamaged)
	s.bus.Subscribe(EventIgnite, s.handleIgnite)
	s.bus.Subscribe(EventWorldCleared, s.handleWorldCleared)
}

// Subscribe registers an external observer. Observers must not hold the
// event's Target beyond the call.
func (s *Sim) Subscribe(kind EventKind, h Handler) {
	s.bus.Subscribe(kind, h)
}

// publish stamps ev with the current tick and queues it.
func (s *Sim) publish(ev Event) {
	ev.Tick = s.tick
	s.bus.Publish(ev)
}

// Step advances the simulation by dt seconds of elapsed time.
//
// Phases run in a fixed order: timers, scheduling, behaviour and movement,
// collision, event resolution. While a challenge is active only the
// challenge and event resolution run.
func (s *Sim) Step(dt float64, in Input) {
	if dt < 0 {
		dt = 0
	}
	s.tick++
	s.dt = dt
	s.elapsed += dt
	if in.HasPointer {
		s.pointer = in.Pointer
	}

	switch s.mode {
	case ModeChallenge:
		s.updateChallenge(dt, in)
	case ModeRunning:
		s.tickTimers(dt)
		s.advanceDepth(dt)
		s.scheduleSpawns()
		s.spawnPickups()
		s.updatePlayer(dt, in)
		s.updateEnemies(dt)
		s.updateProjectiles(dt)
		s.updatePickups(dt)
		s.resolveCollisions()
	default:
		// Terminal modes keep loose actors drifting for presentation.
		s.updateProjectiles(dt)
		s.updatePickups(dt)
	}

	s.bus.Dispatch()
	s.logVerbose()
}

// tickTimers advances every gameplay timer that is live in the current state.
func (s *Sim) tickTimers(dt float64) {
	s.spawner.timer.Tick(dt)
	s.pickupTimer.Tick(dt)
	if p := s.player; p != nil && p.State == PlayerDamaged {
		p.invulnerable.Tick(dt)
	}
	s.enemies.Each(func(_ Handle, e *Enemy) bool {
		switch e.State {
		case EnemyOnFire:
			e.fire.Tick(dt)
		case EnemyEngaging:
			if e.Archetype.Ranged() {
				e.ranged.reload.Tick(dt)
			}
		}
		return true
	})
}

func (s *Sim) advanceDepth(dt float64) {
	if s.depth >= s.cfg.World.MaxDepth {
		return
	}
	s.depth = clampf(s.depth+s.cfg.World.FallSpeed*dt, 0, s.cfg.World.MaxDepth)
}

func (s *Sim) center() f64.Vec2 {
	return vec(s.cfg.World.Width/2, s.cfg.World.Height/2)
}

// handleWorldCleared ends the run in victory.
func (s *Sim) handleWorldCleared(Event) {
	if s.mode == ModeGameOver {
		return
	}
	s.mode = ModeCleared
	s.challenge = nil
	s.log.Add(s.tick, "--", "--", "world", "cleared", fmt.Sprintf("depth %.0f", s.depth), s.depth)
}

// Accessors for frontends and reports.

func (s *Sim) Config() Config { return s.cfg }
func (s *Sim) Tick() int { return s.tick }
func (s *Sim) Elapsed() float64 { return s.elapsed }
func (s *Sim) Mode() Mode { return s.mode }
func (s *Sim) Depth() float64 { return s.depth }
func (s *Sim) Population() int { return s.population }
func (s *Sim) Stats() RunStats { return s.stats }
func (s *Sim) Log() *SimLog { return s.log }
func (s *Sim) Player() *Player { return s.player }
func (s *Sim) ChallengeActive() bool {
	return s.challenge != nil
}

// Enemy resolves h. ok is false when the enemy no longer exists.
func (s *Sim) Enemy(h Handle) (*Enemy, bool) {
	return s.enemies.Get(h)
}

// EnemyHandles lists live enemies in slot order.
func (s *Sim) EnemyHandles() []Handle {
	return s.enemies.Handles()
}

// nextLabel returns a short unique actor label such as "E7".
func (s *Sim) nextLabel(prefix string) string {
	s.serial++
	return fmt.Sprintf("%s%d", prefix, s.serial)
}

func (s *Sim) logVerbose() {
	if s.player == nil {
		return
	}
	p := s.player
	s.log.AddVerbose(s.tick, playerLabel, "player", "move", "position",
		fmt.Sprintf("(%.1f,%.1f)", p.Pos[0], p.Pos[1]), 0)
	s.log.AddVerbose(s.tick, playerLabel, "player", "stats", "fuel",
		fmt.Sprintf("%.2f", p.Fuel), p.Fuel)
}
