package game

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Archetype is the behavioural category of an enemy.
type Archetype int

const (
	ArchetypePursuer Archetype = iota
	ArchetypeRanged
	ArchetypeBoss

	archetypeCount
)

var allArchetypes = [archetypeCount]Archetype{ArchetypePursuer, ArchetypeRanged, ArchetypeBoss}

func (a Archetype) String() string {
	switch a {
	case ArchetypePursuer:
		return "pursuer"
	case ArchetypeRanged:
		return "ranged"
	case ArchetypeBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Ranged reports whether the archetype shoots projectiles.
func (a Archetype) Ranged() bool {
	return a == ArchetypeRanged || a == ArchetypeBoss
}

// EnemyState is the behavioural state of an enemy.
type EnemyState int

const (
	EnemySpawned  EnemyState = iota // moving to its staging point; not clamped
	EnemyEngaging                   // archetype AI active
	EnemyOnFire                     // ignited; bounces off the walls until the fire timer runs out
)

func (s EnemyState) String() string {
	switch s {
	case EnemySpawned:
		return "spawned"
	case EnemyEngaging:
		return "engaging"
	case EnemyOnFire:
		return "on_fire"
	default:
		return "unknown"
	}
}

// Actor is the spatial part shared by the player and enemies. Collider is
// the full box size, centred on Pos.
type Actor struct {
	Pos         f64.Vec2
	Collider    f64.Vec2
	Direction   f64.Vec2
	Destination f64.Vec2
}

// rangedAI holds the extra state of archetypes that shoot.
type rangedAI struct {
	reload             Timer
	maxRange           float64
	projectileSpeed    float64
	projectileCollider f64.Vec2
}

// Enemy is a hostile actor.
type Enemy struct {
	Actor
	Label      string
	Archetype  Archetype
	State      EnemyState
	HP         float64
	MaxHP      float64
	DepthLevel float64
	BaseSpeed  float64

	CounterThreshold float64
	CounterHeal      float64

	fireBonus float64
	slow      float64
	arrived   bool
	fire      Timer
	ranged    rangedAI
}

func newEnemy(a Archetype, ac ArchetypeConfig, fireDuration float64) Enemy {
	e := Enemy{
		Actor:            Actor{Collider: ac.Collider},
		Archetype:        a,
		State:            EnemySpawned,
		HP:               ac.HP,
		MaxHP:            ac.HP,
		DepthLevel:       ac.DepthLevel,
		BaseSpeed:        ac.Speed,
		CounterThreshold: ac.CounterThreshold,
		CounterHeal:      ac.CounterHeal,
		fire:             NewTimer(fireDuration, TimerOnce),
	}
	if a.Ranged() {
		e.ranged = rangedAI{
			reload:             NewTimer(ac.Reload, TimerRepeating),
			maxRange:           ac.MaxRange,
			projectileSpeed:    ac.ProjectileSpeed,
			projectileCollider: ac.ProjectileCollider,
		}
	}
	return e
}

// Speed is the base speed plus the fire bonus minus accumulated slow-down,
// never negative.
func (e *Enemy) Speed() float64 {
	return math.Max(0, e.BaseSpeed+e.fireBonus-e.slow)
}

// updateEnemies runs the behaviour and movement phase for every enemy.
func (s *Sim) updateEnemies(dt float64) {
	s.enemies.Each(func(h Handle, e *Enemy) bool {
		s.updateEnemy(h, e, dt)
		return true
	})
}

func (s *Sim) updateEnemy(h Handle, e *Enemy, dt float64) {
	if e.State == EnemyOnFire && e.fire.JustFinished() {
		e.State = EnemyEngaging
		e.fireBonus = 0
		if e.Archetype.Ranged() {
			// The reload clock is frozen while burning; start a fresh cycle.
			e.ranged.reload.Reset()
		}
		s.log.Add(s.tick, e.Label, e.Archetype.String(), "state", "transition", "on_fire → engaging", 0)
	}

	if e.State == EnemyEngaging {
		switch e.Archetype {
		case ArchetypePursuer:
			if s.player != nil {
				e.Destination = s.player.Pos
			}
		case ArchetypeRanged:
			if e.arrived {
				e.Destination = s.roamPoint(e)
			}
		case ArchetypeBoss:
			e.Destination = s.center()
		}
		if e.Archetype.Ranged() && e.ranged.reload.JustFinished() {
			s.fireProjectile(e)
		}
	}

	s.moveEnemy(e, dt)

	if e.State == EnemySpawned && e.arrived {
		e.State = EnemyEngaging
		if e.Archetype.Ranged() {
			e.ranged.reload.Reset()
		}
		s.log.Add(s.tick, e.Label, e.Archetype.String(), "state", "transition", "spawned → engaging", 0)
	}
	if e.State != EnemySpawned {
		s.clampEnemy(e)
	}
}

// moveEnemy steps e along its direction. Burning enemies keep their heading;
// pursuers flee an overdriven player; everyone else walks to Destination
// without overshooting it.
func (s *Sim) moveEnemy(e *Enemy, dt float64) {
	step := e.Speed() * dt

	if e.State == EnemyOnFire {
		e.Pos = add(e.Pos, scale(e.Direction, step))
		e.arrived = false
		return
	}

	to := sub(e.Destination, e.Pos)
	d := length(to)

	if e.State == EnemyEngaging && e.Archetype == ArchetypePursuer &&
		s.player != nil && s.player.State == PlayerOverdrive {
		if away := normalize(scale(to, -1)); away != (f64.Vec2{}) {
			e.Direction = away
		}
		e.Pos = add(e.Pos, scale(e.Direction, step))
		e.arrived = false
		return
	}

	eps := s.cfg.Spawn.ArriveEpsilon
	if d <= eps {
		e.arrived = true
		return
	}
	e.Direction = scale(to, 1/d)
	e.Pos = add(e.Pos, scale(e.Direction, math.Min(step, d)))
	e.arrived = dist(e.Pos, e.Destination) <= eps
}

// clampEnemy keeps e inside the arena inset by its half collider. Burning
// enemies reflect the offending axis of their heading.
func (s *Sim) clampEnemy(e *Enemy) {
	hs := half(e.Collider)
	hi := vec(s.cfg.World.Width-hs[0], s.cfg.World.Height-hs[1])
	bounce := e.State == EnemyOnFire
	for i := 0; i < 2; i++ {
		if e.Pos[i] < hs[i] {
			e.Pos[i] = hs[i]
			if bounce && e.Direction[i] < 0 {
				e.Direction[i] = -e.Direction[i]
			}
		} else if e.Pos[i] > hi[i] {
			e.Pos[i] = hi[i]
			if bounce && e.Direction[i] > 0 {
				e.Direction[i] = -e.Direction[i]
			}
		}
	}
}

// roamPoint picks a random destination for a ranged enemy inside the arena.
func (s *Sim) roamPoint(e *Enemy) f64.Vec2 {
	hs := half(e.Collider)
	w := math.Max(0, s.cfg.World.Width-e.Collider[0])
	h := math.Max(0, s.cfg.World.Height-e.Collider[1])
	return vec(hs[0]+s.rng.Float64()*w, hs[1]+s.rng.Float64()*h) // #nosec G404 -- gameplay only
}

// fireProjectile launches a shot from e at the player when the player is in
// range.
func (s *Sim) fireProjectile(e *Enemy) {
	p := s.player
	if p == nil || dist(e.Pos, p.Pos) > e.ranged.maxRange {
		return
	}
	dir := normalize(sub(p.Pos, e.Pos))
	if dir == (f64.Vec2{}) {
		return
	}
	h := s.projectiles.Insert(Projectile{
		Pos:       e.Pos,
		Direction: dir,
		Speed:     e.ranged.projectileSpeed,
		Collider:  e.ranged.projectileCollider,
		Owner:     e.Archetype,
	})
	s.stats.ShotsFired++
	s.publish(Event{Kind: EventActorSpawned, Actor: ActorProjectile, Target: h, Archetype: e.Archetype})
	s.log.AddVerbose(s.tick, e.Label, e.Archetype.String(), "combat", "fire",
		fmt.Sprintf("at (%.0f,%.0f)", p.Pos[0], p.Pos[1]), dist(e.Pos, p.Pos))
}

// handleEnemyDamaged applies one tick of overdrive contact damage.
func (s *Sim) handleEnemyDamaged(ev Event) {
	e, ok := s.enemies.Get(ev.Target)
	if !ok {
		return
	}
	dt := s.dt
	e.HP = clampf(e.HP-s.cfg.Damage.Rate*dt, 0, e.MaxHP)
	e.slow = clampf(e.slow+s.cfg.Damage.SlowFactor*dt, 0, e.BaseSpeed)
	s.log.AddVerbose(s.tick, e.Label, e.Archetype.String(), "damage", "hp", fmt.Sprintf("%.2f", e.HP), e.HP)

	if e.HP <= 0 {
		s.destroyEnemy(ev.Target, "overdrive")
		return
	}
	if e.HP <= e.CounterThreshold {
		s.startChallenge(ev.Target, e)
	}
}

// destroyEnemy removes the enemy behind h exactly once. It returns false for
// stale handles.
func (s *Sim) destroyEnemy(h Handle, cause string) bool {
	e, ok := s.enemies.Get(h)
	if !ok {
		return false
	}
	arch, label := e.Archetype, e.Label
	s.enemies.Remove(h)
	if s.population > 0 {
		s.population--
	}
	s.stats.Kills[arch]++

	s.publish(Event{Kind: EventEnemyDied, Actor: ActorEnemy, Target: h, Archetype: arch})
	s.publish(Event{Kind: EventActorDespawned, Actor: ActorEnemy, Target: h, Archetype: arch})
	s.log.Add(s.tick, label, arch.String(), "despawn", "died", cause, 0)

	if arch == ArchetypeBoss {
		s.spawner.bossQueued = false
		s.spawner.bossDone = true
		s.publish(Event{Kind: EventWorldCleared, Actor: ActorEnemy, Target: h, Archetype: arch})
	}
	return true
}

// handleIgnite sets every engaging enemy on fire.
func (s *Sim) handleIgnite(Event) {
	n := 0
	s.enemies.Each(func(_ Handle, e *Enemy) bool {
		if e.State != EnemyEngaging {
			return true
		}
		e.State = EnemyOnFire
		e.fireBonus = s.cfg.Ignite.SpeedGain
		e.fire.Reset()
		if e.Direction == (f64.Vec2{}) {
			a := s.rng.Float64() * 2 * math.Pi // #nosec G404 -- gameplay only
			e.Direction = vec(math.Cos(a), math.Sin(a))
		}
		n++
		return true
	})
	s.stats.Ignitions++
	s.log.Add(s.tick, "--", "--", "heat", "ignite", fmt.Sprintf("%d enemies", n), float64(n))
}
