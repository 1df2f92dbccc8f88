package game

import (
	"fmt"
	"math"
	"math/rand"
)

// SpawnQueue is a FIFO of archetype tokens waiting to be instantiated.
type SpawnQueue struct {
	tokens []Archetype
}

// Push appends a token.
func (q *SpawnQueue) Push(a Archetype) { q.tokens = append(q.tokens, a) }

// Pop removes and returns the oldest token.
func (q *SpawnQueue) Pop() (Archetype, bool) {
	if len(q.tokens) == 0 {
		return 0, false
	}
	a := q.tokens[0]
	q.tokens = q.tokens[1:]
	return a, true
}

// Len returns the number of queued tokens.
func (q *SpawnQueue) Len() int { return len(q.tokens) }

// Spawner decides when and what enemy enters the world.
type Spawner struct {
	cfg   SpawnConfig
	timer Timer
	queue SpawnQueue

	bossQueued bool // a boss token was enqueued and the boss is not yet dead
	bossDone   bool // the boss has been defeated; spawning is over
}

// NewSpawner creates a spawner with a repeating timer of cfg.Period.
func NewSpawner(cfg SpawnConfig) Spawner {
	return Spawner{cfg: cfg, timer: NewTimer(cfg.Period, TimerRepeating)}
}

// Blocked reports whether this cycle must be skipped.
func (sp *Spawner) Blocked(population int) bool {
	return population >= sp.cfg.MaxEnemies || sp.bossQueued || sp.bossDone
}

// Select picks an archetype for the given world depth.
func (sp *Spawner) Select(depth float64, rng *rand.Rand) Archetype {
	switch {
	case depth < sp.cfg.ShooterDepth:
		return ArchetypePursuer
	case depth < sp.cfg.BossDepth:
		if rng.Float64() < sp.cfg.RangedWeight { // #nosec G404 -- gameplay only
			return ArchetypeRanged
		}
		return ArchetypePursuer
	default:
		return ArchetypeBoss
	}
}

// BossPending reports whether a boss has been enqueued and not yet defeated.
func (sp *Spawner) BossPending() bool { return sp.bossQueued }

// scheduleSpawns runs one scheduling cycle when the spawn timer completes:
// enqueue a token unless blocked, then instantiate exactly one.
func (s *Sim) scheduleSpawns() {
	sp := &s.spawner
	if !sp.timer.JustFinished() {
		return
	}
	if sp.Blocked(s.population) {
		s.log.AddVerbose(s.tick, "--", "--", "spawn", "skipped",
			fmt.Sprintf("pop %d boss %v", s.population, sp.bossQueued), float64(s.population))
		return
	}
	a := sp.Select(s.depth, s.rng)
	if a == ArchetypeBoss {
		sp.bossQueued = true
	}
	sp.queue.Push(a)
	if tok, ok := sp.queue.Pop(); ok {
		s.instantiateEnemy(tok)
	}
}

// instantiateEnemy creates an enemy just below the arena with a staging
// destination one collider-height inside it. The boss stages at the centre.
func (s *Sim) instantiateEnemy(a Archetype) Handle {
	ac := s.cfg.Enemies.For(a)
	hs := half(ac.Collider)
	span := math.Max(0, s.cfg.World.Width-ac.Collider[0])
	x := hs[0] + s.rng.Float64()*span // #nosec G404 -- gameplay only

	e := newEnemy(a, ac, s.cfg.Ignite.Duration)
	e.Label = s.nextLabel("E")
	e.Pos = vec(x, -hs[1])
	if a == ArchetypeBoss {
		e.Destination = s.center()
	} else {
		e.Destination = vec(x, hs[1]+s.rng.Float64()*ac.Collider[1]) // #nosec G404 -- gameplay only
	}
	e.Direction = normalize(sub(e.Destination, e.Pos))
	j := s.cfg.Spawn.SpeedJitter
	e.BaseSpeed = ac.Speed * (j[0] + s.rng.Float64()*(j[1]-j[0])) // #nosec G404 -- gameplay only

	h := s.enemies.Insert(e)
	s.population++
	s.stats.Spawned[a]++
	s.publish(Event{Kind: EventActorSpawned, Actor: ActorEnemy, Target: h, Archetype: a})
	s.log.Add(s.tick, e.Label, a.String(), "spawn", "enemy",
		fmt.Sprintf("x=%.0f depth %.0f pop %d", x, s.depth, s.population), s.depth)
	return h
}
