package game

import "golang.org/x/image/math/f64"

// Projectile is a shot fired by a ranged enemy. A reflected projectile no
// longer threatens the player.
type Projectile struct {
	Pos       f64.Vec2
	Direction f64.Vec2
	Speed     float64
	Collider  f64.Vec2
	Owner     Archetype
	Reflected bool
}

// updateProjectiles moves every projectile and drops those that left the
// arena (plus a margin of their own size).
func (s *Sim) updateProjectiles(dt float64) {
	w, h := s.cfg.World.Width, s.cfg.World.Height
	s.projectiles.Each(func(hd Handle, p *Projectile) bool {
		p.Pos = add(p.Pos, scale(p.Direction, p.Speed*dt))
		m := p.Collider
		if p.Pos[0] < -m[0] || p.Pos[0] > w+m[0] || p.Pos[1] < -m[1] || p.Pos[1] > h+m[1] {
			owner := p.Owner
			s.projectiles.Remove(hd)
			s.publish(Event{Kind: EventActorDespawned, Actor: ActorProjectile, Target: hd, Archetype: owner})
		}
		return true
	})
}

// reflect sends p back the way it came.
func (p *Projectile) reflect() {
	p.Direction = scale(p.Direction, -1)
	p.Reflected = true
}
