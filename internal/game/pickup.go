package game

import (
	"fmt"

	"golang.org/x/image/math/f64"
)

// PickupKind is the resource a pickup restores.
type PickupKind int

const (
	PickupFuel PickupKind = iota
	PickupHealth
)

func (k PickupKind) String() string {
	switch k {
	case PickupFuel:
		return "fuel"
	case PickupHealth:
		return "health"
	default:
		return "unknown"
	}
}

// Pickup drifts up through the arena until collected or gone.
type Pickup struct {
	Pos      f64.Vec2
	Collider f64.Vec2
	Kind     PickupKind
	Amount   float64
}

// spawnPickups drops a fuel or health pickup, evenly chosen, each time the
// pickup timer completes.
func (s *Sim) spawnPickups() {
	if !s.pickupTimer.JustFinished() {
		return
	}
	pc := s.cfg.Pickups
	kind, amount := PickupFuel, pc.FuelRestore
	if s.rng.Intn(2) == 1 { // #nosec G404 -- gameplay only
		kind, amount = PickupHealth, float64(pc.HealthRestore)
	}
	hs := half(pc.Collider)
	span := s.cfg.World.Width - pc.Collider[0]
	if span < 0 {
		span = 0
	}
	pos := vec(hs[0]+s.rng.Float64()*span, -hs[1]) // #nosec G404 -- gameplay only
	h := s.pickups.Insert(Pickup{Pos: pos, Collider: pc.Collider, Kind: kind, Amount: amount})
	s.publish(Event{Kind: EventActorSpawned, Actor: ActorPickup, Target: h, Pickup: kind})
	s.log.AddVerbose(s.tick, "--", "pickup", "spawn", kind.String(), fmt.Sprintf("x=%.0f", pos[0]), amount)
}

// updatePickups drifts pickups upward and drops those past the top edge.
func (s *Sim) updatePickups(dt float64) {
	top := s.cfg.World.Height
	speed := s.cfg.Pickups.Speed
	s.pickups.Each(func(h Handle, p *Pickup) bool {
		p.Pos[1] += speed * dt
		if p.Pos[1]-p.Collider[1]/2 > top {
			kind := p.Kind
			s.pickups.Remove(h)
			s.publish(Event{Kind: EventActorDespawned, Actor: ActorPickup, Target: h, Pickup: kind})
		}
		return true
	})
}

// collect applies p to the player, clamped to the maxima.
func (s *Sim) collect(pl *Player, p *Pickup) {
	switch p.Kind {
	case PickupFuel:
		pl.Fuel = clampf(pl.Fuel+p.Amount, 0, pl.FuelCapacity)
	case PickupHealth:
		pl.HP += int(p.Amount)
		if pl.HP > pl.MaxHP {
			pl.HP = pl.MaxHP
		}
	}
	s.stats.PickupsCollected++
	s.log.Add(s.tick, playerLabel, "player", "pickup", p.Kind.String(),
		fmt.Sprintf("hp %d fuel %.1f", pl.HP, pl.Fuel), p.Amount)
}
