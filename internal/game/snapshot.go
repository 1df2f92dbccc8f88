package game

import (
	"sort"

	"golang.org/x/image/math/f64"
)

// PlayerView is the read-only view of the player.
type PlayerView struct {
	State            PlayerState
	HP, MaxHP        int
	Fuel             float64
	FuelCapacity     float64
	Heat             float64
	HeatLimit        float64
	InvulnerableLeft float64
	Pos              f64.Vec2
	Collider         f64.Vec2
	Direction        f64.Vec2
}

// EnemyView is the read-only view of one enemy.
type EnemyView struct {
	Handle     Handle
	Label      string
	Archetype  Archetype
	State      EnemyState
	HP, MaxHP  float64
	Speed      float64
	DepthLevel float64
	Pos        f64.Vec2
	Collider   f64.Vec2
}

type ProjectileView struct {
	Pos       f64.Vec2
	Collider  f64.Vec2
	Owner     Archetype
	Reflected bool
}

type PickupView struct {
	Pos      f64.Vec2
	Collider f64.Vec2
	Kind     PickupKind
}

// ChallengeView describes the active counter-attack challenge.
type ChallengeView struct {
	Target      Handle
	TargetLabel string
	Remaining   []Token
	TimeLeft    float64
	Duration    float64
}

// Snapshot is a copy of everything a frontend may show. It shares no memory
// with the Sim.
type Snapshot struct {
	Tick       int
	Elapsed    float64
	Mode       Mode
	Depth      float64
	MaxDepth   float64
	Width      float64
	Height     float64
	Population int

	Player      *PlayerView // nil when there is no live player
	Enemies     []EnemyView // ascending DepthLevel, then slot order
	Projectiles []ProjectileView
	Pickups     []PickupView
	Challenge   *ChallengeView
}

// Snapshot captures the current world.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       s.tick,
		Elapsed:    s.elapsed,
		Mode:       s.mode,
		Depth:      s.depth,
		MaxDepth:   s.cfg.World.MaxDepth,
		Width:      s.cfg.World.Width,
		Height:     s.cfg.World.Height,
		Population: s.population,
	}
	if p := s.player; p != nil {
		snap.Player = &PlayerView{
			State:            p.State,
			HP:               p.HP,
			MaxHP:            p.MaxHP,
			Fuel:             p.Fuel,
			FuelCapacity:     p.FuelCapacity,
			Heat:             p.Heat,
			HeatLimit:        s.cfg.Heat.Limit,
			InvulnerableLeft: p.InvulnerableLeft(),
			Pos:              p.Pos,
			Collider:         p.Collider,
			Direction:        p.Direction,
		}
	}

	snap.Enemies = make([]EnemyView, 0, s.enemies.Len())
	s.enemies.Each(func(h Handle, e *Enemy) bool {
		snap.Enemies = append(snap.Enemies, EnemyView{
			Handle:     h,
			Label:      e.Label,
			Archetype:  e.Archetype,
			State:      e.State,
			HP:         e.HP,
			MaxHP:      e.MaxHP,
			Speed:      e.Speed(),
			DepthLevel: e.DepthLevel,
			Pos:        e.Pos,
			Collider:   e.Collider,
		})
		return true
	})
	sort.SliceStable(snap.Enemies, func(i, j int) bool {
		return snap.Enemies[i].DepthLevel < snap.Enemies[j].DepthLevel
	})

	snap.Projectiles = make([]ProjectileView, 0, s.projectiles.Len())
	s.projectiles.Each(func(_ Handle, p *Projectile) bool {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			Pos: p.Pos, Collider: p.Collider, Owner: p.Owner, Reflected: p.Reflected,
		})
		return true
	})

	snap.Pickups = make([]PickupView, 0, s.pickups.Len())
	s.pickups.Each(func(_ Handle, p *Pickup) bool {
		snap.Pickups = append(snap.Pickups, PickupView{Pos: p.Pos, Collider: p.Collider, Kind: p.Kind})
		return true
	})

	if c := s.challenge; c != nil {
		snap.Challenge = &ChallengeView{
			Target:      c.Target,
			TargetLabel: c.TargetLabel,
			Remaining:   append([]Token(nil), c.Sequence...),
			TimeLeft:    c.TimeLeft(),
			Duration:    c.timer.Duration(),
		}
	}
	return snap
}

// Enemy returns the view of h, if present.
func (snap Snapshot) Enemy(h Handle) (EnemyView, bool) {
	for _, e := range snap.Enemies {
		if e.Handle == h {
			return e, true
		}
	}
	return EnemyView{}, false
}
