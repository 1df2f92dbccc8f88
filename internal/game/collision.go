package game

import (
	"math"

	"golang.org/x/image/math/f64"
)

// overlaps is the axis-aligned box test between two centred boxes of full
// size sa and sb. Touching edges do not overlap.
func overlaps(pa, sa, pb, sb f64.Vec2) bool {
	return math.Abs(pa[0]-pb[0]) < (sa[0]+sb[0])/2 &&
		math.Abs(pa[1]-pb[1]) < (sa[1]+sb[1])/2
}

// resolveCollisions tests the player against every enemy, projectile and
// pickup. Each overlapping pair is handled on its own, in slot order; enemy
// and projectile contacts only publish events.
func (s *Sim) resolveCollisions() {
	p := s.player
	if p == nil {
		return
	}

	s.enemies.Each(func(h Handle, e *Enemy) bool {
		if !overlaps(p.Pos, p.Collider, e.Pos, e.Collider) {
			return true
		}
		switch p.State {
		case PlayerRegular:
			s.publish(Event{Kind: EventPlayerDamaged, Actor: ActorEnemy, Target: h, Archetype: e.Archetype})
		case PlayerOverdrive:
			s.publish(Event{Kind: EventEnemyDamaged, Actor: ActorEnemy, Target: h, Archetype: e.Archetype,
				Amount: s.cfg.Damage.Rate * s.dt})
		case PlayerDamaged:
			// invulnerable
		}
		return true
	})

	s.projectiles.Each(func(h Handle, pr *Projectile) bool {
		if pr.Reflected || !overlaps(p.Pos, p.Collider, pr.Pos, pr.Collider) {
			return true
		}
		switch p.State {
		case PlayerRegular:
			s.publish(Event{Kind: EventPlayerDamaged, Actor: ActorProjectile, Target: h, Archetype: pr.Owner})
			owner := pr.Owner
			s.projectiles.Remove(h)
			s.publish(Event{Kind: EventActorDespawned, Actor: ActorProjectile, Target: h, Archetype: owner})
		case PlayerOverdrive:
			// Only shots still closing on the player are turned around.
			if dot(pr.Direction, sub(p.Pos, pr.Pos)) > 0 {
				pr.reflect()
				s.stats.Reflections++
			}
		case PlayerDamaged:
			// invulnerable
		}
		return true
	})

	s.pickups.Each(func(h Handle, pk *Pickup) bool {
		if !overlaps(p.Pos, p.Collider, pk.Pos, pk.Collider) {
			return true
		}
		kind, amount := pk.Kind, pk.Amount
		s.collect(p, pk)
		s.pickups.Remove(h)
		s.publish(Event{Kind: EventPickupCollected, Actor: ActorPickup, Target: h, Pickup: kind, Amount: amount})
		s.publish(Event{Kind: EventActorDespawned, Actor: ActorPickup, Target: h, Pickup: kind})
		return true
	})
}
