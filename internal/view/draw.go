package view

import (
	"image/color"

	"github.com/Garsondee/descent/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/math/f64"
)

var archetypeColors = [...]color.RGBA{
	game.ArchetypePursuer: {R: 200, G: 70, B: 70, A: 255},
	game.ArchetypeRanged:  {R: 170, G: 90, B: 210, A: 255},
	game.ArchetypeBoss:    {R: 140, G: 20, B: 30, A: 255},
}

var (
	fireColor      = color.RGBA{R: 255, G: 140, B: 30, A: 255}
	playerColor    = color.RGBA{R: 90, G: 170, B: 255, A: 255}
	overdriveColor = color.RGBA{R: 255, G: 230, B: 90, A: 255}
	damagedColor   = color.RGBA{R: 255, G: 255, B: 255, A: 140}
)

// rectAt returns the screen-space top-left and size of a box centred on pos.
func (g *Game) rectAt(pos, size f64.Vec2) (x, y, w, h float32) {
	cx, cy := g.worldToScreen(pos)
	w, h = float32(size[0]), float32(size[1])
	return cx - w/2, cy - h/2, w, h
}

func (g *Game) drawWorld(screen *ebiten.Image, snap game.Snapshot) {
	ox, oy := float32(g.offX), float32(g.offY)
	aw, ah := float32(g.arenaW), float32(g.arenaH)

	vector.FillRect(screen, ox, oy, aw, ah, color.RGBA{R: 20, G: 22, B: 30, A: 255}, false)

	// Depth scroll lines give a sense of falling.
	const spacing = 64
	shift := float32(int(snap.Depth) % spacing)
	for y := -shift; y < ah; y += spacing {
		if y < 0 {
			continue
		}
		vector.StrokeLine(screen, ox, oy+y, ox+aw, oy+y, 1.0, color.RGBA{R: 34, G: 36, B: 48, A: 255}, false)
	}

	for _, p := range snap.Pickups {
		x, y, w, h := g.rectAt(p.Pos, p.Collider)
		c := color.RGBA{R: 80, G: 220, B: 120, A: 255}
		if p.Kind == game.PickupFuel {
			c = color.RGBA{R: 80, G: 200, B: 230, A: 255}
		}
		vector.FillRect(screen, x, y, w, h, c, false)
	}

	for _, e := range snap.Enemies {
		g.drawEnemy(screen, e)
	}

	for _, p := range snap.Projectiles {
		cx, cy := g.worldToScreen(p.Pos)
		c := color.RGBA{R: 255, G: 110, B: 200, A: 255}
		if p.Reflected {
			c = overdriveColor
		}
		vector.FillCircle(screen, cx, cy, float32(p.Collider[0]/2), c, true)
	}

	if p := snap.Player; p != nil {
		g.drawPlayer(screen, snap.Tick, p)
	}

	vector.StrokeRect(screen, ox-1, oy-1, aw+2, ah+2, 2.0, color.RGBA{R: 70, G: 80, B: 110, A: 255}, false)
}

func (g *Game) drawEnemy(screen *ebiten.Image, e game.EnemyView) {
	x, y, w, h := g.rectAt(e.Pos, e.Collider)
	c := archetypeColors[e.Archetype]
	if e.State == game.EnemyOnFire {
		c = fireColor
	}
	vector.FillRect(screen, x, y, w, h, c, false)
	if e.State == game.EnemySpawned {
		vector.StrokeRect(screen, x, y, w, h, 1.0, color.RGBA{R: 255, G: 255, B: 255, A: 90}, false)
	}

	// HP bar above the body.
	if e.MaxHP > 0 && e.HP < e.MaxHP {
		frac := float32(e.HP / e.MaxHP)
		vector.FillRect(screen, x, y-6, w, 3, color.RGBA{R: 40, G: 0, B: 0, A: 200}, false)
		vector.FillRect(screen, x, y-6, w*frac, 3, color.RGBA{R: 230, G: 60, B: 60, A: 255}, false)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, tick int, p *game.PlayerView) {
	x, y, w, h := g.rectAt(p.Pos, p.Collider)
	switch p.State {
	case game.PlayerOverdrive:
		vector.FillRect(screen, x, y, w, h, overdriveColor, false)
	case game.PlayerDamaged:
		// Blink while invulnerable.
		if (tick/4)%2 == 0 {
			vector.FillRect(screen, x, y, w, h, damagedColor, false)
		}
	default:
		vector.FillRect(screen, x, y, w, h, playerColor, false)
	}
}
