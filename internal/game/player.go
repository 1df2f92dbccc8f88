package game

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// PlayerState is exactly one of Regular, Damaged or Overdrive.
type PlayerState int

const (
	PlayerRegular   PlayerState = iota
	PlayerDamaged               // invulnerable until the timer runs out
	PlayerOverdrive             // melee mode, draining fuel
)

func (s PlayerState) String() string {
	switch s {
	case PlayerRegular:
		return "regular"
	case PlayerDamaged:
		return "damaged"
	case PlayerOverdrive:
		return "overdrive"
	default:
		return "unknown"
	}
}

const playerLabel = "P"

// Player is the user-controlled actor. There is at most one.
type Player struct {
	Actor
	State        PlayerState
	HP           int
	MaxHP        int
	Fuel         float64
	FuelCapacity float64
	Heat         float64
	Speed        float64

	invulnerable Timer
}

// InvulnerableLeft returns the seconds of invulnerability remaining, or 0
// outside the Damaged state.
func (p *Player) InvulnerableLeft() float64 {
	if p.State != PlayerDamaged {
		return 0
	}
	return p.invulnerable.Remaining()
}

// spawnPlayer places a fresh player at pos and aims the pointer there.
func (s *Sim) spawnPlayer(pos f64.Vec2) {
	pc := s.cfg.Player
	s.player = &Player{
		Actor:        Actor{Pos: pos, Collider: pc.Collider, Destination: pos},
		State:        PlayerRegular,
		HP:           pc.MaxHP,
		MaxHP:        pc.MaxHP,
		Fuel:         pc.FuelCapacity,
		FuelCapacity: pc.FuelCapacity,
		Speed:        pc.Speed,
		invulnerable: NewTimer(pc.Invulnerability, TimerOnce),
	}
	s.pointer = pos
	s.publish(Event{Kind: EventActorSpawned, Actor: ActorPlayer})
	s.log.Add(s.tick, playerLabel, "player", "spawn", "player", fmt.Sprintf("(%.0f,%.0f)", pos[0], pos[1]), 0)
}

// updatePlayer runs the fuel rules, state timers and movement.
func (s *Sim) updatePlayer(dt float64, in Input) {
	p := s.player
	if p == nil {
		return
	}
	pc := s.cfg.Player

	switch p.State {
	case PlayerRegular:
		p.Fuel = clampf(p.Fuel+pc.FuelRegen*dt, 0, p.FuelCapacity)
		if in.JustPressed(TokenPrimary) && p.Fuel >= p.FuelCapacity {
			s.enterOverdrive(p)
		}
	case PlayerOverdrive:
		p.Fuel = clampf(p.Fuel-pc.FuelDrain*dt, 0, p.FuelCapacity)
		if p.Fuel < pc.OverdriveExitFuel {
			s.publish(Event{Kind: EventPlayerRegularForm, Actor: ActorPlayer})
		}
	case PlayerDamaged:
		if p.invulnerable.JustFinished() {
			p.State = PlayerRegular
			s.log.Add(s.tick, playerLabel, "player", "state", "transition", "damaged → regular", 0)
		}
	}

	s.movePlayer(p, dt)
}

// movePlayer walks toward the pointer at the active speed. Inside the arrive
// radius the player holds still.
func (s *Sim) movePlayer(p *Player, dt float64) {
	to := sub(s.pointer, p.Pos)
	d := length(to)
	p.Destination = s.pointer
	if d > s.cfg.Player.ArriveRadius {
		p.Direction = scale(to, 1/d)
		p.Pos = add(p.Pos, scale(p.Direction, math.Min(p.Speed*dt, d)))
	}
	w, h := s.cfg.World.Width, s.cfg.World.Height
	p.Pos[0] = clampf(p.Pos[0], p.Collider[0], math.Max(p.Collider[0], w-p.Collider[0]))
	p.Pos[1] = clampf(p.Pos[1], p.Collider[1], math.Max(p.Collider[1], h-p.Collider[1]))
}

func (s *Sim) enterOverdrive(p *Player) {
	p.State = PlayerOverdrive
	p.Collider = s.cfg.Player.OverdriveCollider
	p.Speed = s.cfg.Player.OverdriveSpeed
	s.stats.OverdriveEntries++
	s.log.Add(s.tick, playerLabel, "player", "state", "transition", "regular → overdrive", p.Fuel)
}

func (s *Sim) exitOverdrive(p *Player) {
	p.State = PlayerRegular
	p.Collider = s.cfg.Player.Collider
	p.Speed = s.cfg.Player.Speed
	p.Heat = 0
	s.log.Add(s.tick, playerLabel, "player", "state", "transition", "overdrive → regular", p.Fuel)
}

// handlePlayerDamaged applies one hit. Only a Regular player can be hurt.
func (s *Sim) handlePlayerDamaged(ev Event) {
	p := s.player
	if p == nil || p.State != PlayerRegular || p.HP <= 0 {
		return
	}
	s.stats.DamageTaken++
	if p.HP <= 1 {
		p.HP = 0
		s.log.Add(s.tick, playerLabel, "player", "damage", "fatal", ev.Actor.String(), 0)
		s.publish(Event{Kind: EventGameOver, Actor: ActorPlayer})
		return
	}
	p.HP--
	p.State = PlayerDamaged
	p.invulnerable.Reset()
	s.log.Add(s.tick, playerLabel, "player", "damage", "hit",
		fmt.Sprintf("%s  hp %d/%d", ev.Actor, p.HP, p.MaxHP), float64(p.HP))
}

func (s *Sim) handlePlayerRegularForm(Event) {
	p := s.player
	if p == nil || p.State != PlayerOverdrive {
		return
	}
	s.exitOverdrive(p)
}

func (s *Sim) handleGameOver(Event) {
	if s.player == nil {
		return
	}
	s.player = nil
	s.challenge = nil
	s.mode = ModeGameOver
	s.publish(Event{Kind: EventActorDespawned, Actor: ActorPlayer})
	s.log.Add(s.tick, playerLabel, "player", "world", "game_over", fmt.Sprintf("depth %.0f", s.depth), s.depth)
}

// handleOverdriveHeat accumulates heat from overdrive contact and ignites the
// engaging enemies when it overflows. Runs before the damage itself so the
// killing contact still counts.
func (s *Sim) handleOverdriveHeat(ev Event) {
	p := s.player
	if p == nil || p.State != PlayerOverdrive || !s.enemies.Valid(ev.Target) {
		return
	}
	hc := s.cfg.Heat
	p.Heat = clampf(p.Heat+hc.Gain*s.dt, 0, hc.Limit)
	if p.Heat >= hc.Limit {
		p.Heat = 0
		s.publish(Event{Kind: EventIgnite, Actor: ActorPlayer})
	}
}
