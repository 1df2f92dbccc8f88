package view

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/descent/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const hudLineH = 14

func drawText(dst *ebiten.Image, face text.Face, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// drawBar draws a labelled horizontal gauge filled to frac.
func drawBar(dst *ebiten.Image, x, y, w float32, frac float64, fill color.RGBA) {
	frac = max(0, min(1, frac))
	vector.FillRect(dst, x, y, w, 8, color.RGBA{R: 30, G: 30, B: 40, A: 220}, false)
	vector.FillRect(dst, x, y, w*float32(frac), 8, fill, false)
	vector.StrokeRect(dst, x, y, w, 8, 1.0, color.RGBA{R: 90, G: 90, B: 110, A: 200}, false)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	x := g.offX + 6
	y := g.offY + 6
	white := color.RGBA{R: 220, G: 220, B: 230, A: 255}

	vector.FillRect(screen, float32(x-4), float32(y-2), 200, 5*hudLineH+8, color.RGBA{R: 6, G: 6, B: 12, A: 190}, false)

	if p := snap.Player; p != nil {
		drawText(screen, g.face, fmt.Sprintf("HP %d/%d  %s", p.HP, p.MaxHP, p.State), x, y, white)
		y += hudLineH
		drawText(screen, g.face, "FUEL", x, y, white)
		drawBar(screen, float32(x+40), float32(y+3), 140, p.Fuel/p.FuelCapacity, color.RGBA{R: 80, G: 200, B: 230, A: 255})
		y += hudLineH
		drawText(screen, g.face, "HEAT", x, y, white)
		drawBar(screen, float32(x+40), float32(y+3), 140, p.Heat/p.HeatLimit, fireColor)
		y += hudLineH
	} else {
		y += 3 * hudLineH
	}

	drawText(screen, g.face, "DEPTH", x, y, white)
	frac := 0.0
	if snap.MaxDepth > 0 {
		frac = snap.Depth / snap.MaxDepth
	}
	drawBar(screen, float32(x+40), float32(y+3), 140, frac, color.RGBA{R: 150, G: 150, B: 170, A: 255})
	y += hudLineH
	drawText(screen, g.face, fmt.Sprintf("SIM %s  P ,/. C=copy H=hud", speedLabel(g.simSpeed)), x, y, white)

	if g.statusLeft > 0 {
		drawText(screen, g.face, g.status, g.offX+6, g.offY+g.arenaH-hudLineH-4, white)
	}
}

// drawChallenge shows the counter-attack sequence and its countdown.
func (g *Game) drawChallenge(screen *ebiten.Image, snap game.Snapshot) {
	c := snap.Challenge
	cx := g.offX + g.arenaW/2
	cy := g.offY + g.arenaH/2

	vector.FillRect(screen, float32(g.offX), float32(cy-40), float32(g.arenaW), 80, color.RGBA{R: 0, G: 0, B: 0, A: 170}, false)

	label := fmt.Sprintf("COUNTER %s: %s", c.TargetLabel, game.FormatTokens(c.Remaining))
	drawText(screen, g.face, label, cx-len(label)*7/2, cy-24, color.RGBA{R: 255, G: 230, B: 90, A: 255})
	drawText(screen, g.face, "left/Z = P   right/X = S", cx-84, cy-6, color.RGBA{R: 180, G: 180, B: 190, A: 255})

	frac := 0.0
	if c.Duration > 0 {
		frac = c.TimeLeft / c.Duration
	}
	drawBar(screen, float32(cx-100), float32(cy+16), 200, frac, color.RGBA{R: 230, G: 80, B: 80, A: 255})
}

func (g *Game) drawBanner(screen *ebiten.Image, snap game.Snapshot) {
	var msg string
	switch snap.Mode {
	case game.ModeGameOver:
		msg = "GAME OVER  R=restart  C=copy log"
	case game.ModeCleared:
		msg = "DESCENT CLEARED  R=restart  C=copy log"
	default:
		return
	}
	cx := g.offX + g.arenaW/2
	cy := g.offY + g.arenaH/3
	vector.FillRect(screen, float32(g.offX), float32(cy-6), float32(g.arenaW), 26, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	drawText(screen, g.face, msg, cx-len(msg)*7/2, cy, color.White)
}
