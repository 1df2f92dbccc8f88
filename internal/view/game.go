// Package view is the ebiten frontend for the simulation core. It turns
// mouse and keyboard state into game.Input, advances the Sim on a fixed
// step and draws Snapshots.
package view

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/Garsondee/descent/internal/game"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
)

// borderWidth is the pixel gap between the window edge and the arena.
const borderWidth = 24

// statusTicks is how long a status line (clipboard result, restart) stays up.
const statusTicks = 180

var speeds = []float64{0, 0.5, 1, 2, 4}

type Game struct {
	cfg   game.Config
	sim   *game.Sim
	feed  *Feed
	clock game.Clock
	face  text.Face

	width     int
	height    int
	arenaW    int
	arenaH    int
	offX      int
	offY      int
	showHUD   bool
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	// Tokens pressed since the last simulation tick. Carried across frames
	// so a press is not lost when the Sim runs slower than the display.
	pending []game.Token

	status     string
	statusLeft int
}

// New builds the frontend and its first Sim from cfg.
func New(cfg game.Config) (*Game, error) {
	w, h := int(cfg.World.Width), int(cfg.World.Height)
	g := &Game{
		cfg:      cfg,
		clock:    game.FixedClock{Step: 1.0 / float64(ebiten.DefaultTPS)},
		face:     text.NewGoXFace(basicfont.Face7x13),
		width:    borderWidth + w + borderWidth + feedPanelWidth,
		height:   borderWidth + h + borderWidth,
		arenaW:   w,
		arenaH:   h,
		offX:     borderWidth,
		offY:     borderWidth,
		showHUD:  true,
		simSpeed: 1,
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart replaces the Sim with a fresh run. A zero seed reseeds from time.
func (g *Game) restart() error {
	sim, err := game.NewSim(g.cfg)
	if err != nil {
		return err
	}
	g.sim = sim
	g.feed = NewFeed()
	g.feed.Attach(sim)
	g.pending = nil
	g.tickAccum = 0
	return nil
}

// Size returns the window size the frontend wants.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	// Handle input every frame regardless of sim speed.
	if err := g.handleInput(); err != nil {
		return err
	}
	if g.statusLeft > 0 {
		g.statusLeft--
	}
	if g.simSpeed <= 0 {
		g.pending = nil
		return nil
	}

	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.simTick()
	}
	return nil
}

// simTick runs one simulation tick with the current pointer and any tokens
// pressed since the previous tick.
func (g *Game) simTick() {
	in := game.Input{Pressed: g.pending}
	if p, ok := g.cursorWorld(); ok {
		in.Pointer = p
		in.HasPointer = true
	}
	g.pending = nil
	g.sim.Step(g.clock.Delta(), in)
}

// handleInput processes token presses and frontend keys (edge-triggered).
func (g *Game) handleInput() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeyZ) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.pending = append(g.pending, game.TokenPrimary)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) ||
		inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.pending = append(g.pending, game.TokenSecondary)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.simSpeed = slower(g.simSpeed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.simSpeed = faster(g.simSpeed)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if m := g.sim.Mode(); m == game.ModeGameOver || m == game.ModeCleared {
			if err := g.restart(); err != nil {
				return fmt.Errorf("restart: %w", err)
			}
			g.setStatus("new run " + g.sim.RunID[:8])
		}
	}
	return nil
}

// copyReport puts the run summary and the full SimLog on the clipboard.
func (g *Game) copyReport() {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s\n", g.sim.RunID)
	b.WriteString(g.sim.Log().Summary(g.sim.Snapshot(), g.sim.Stats()))
	b.WriteString("\n")
	b.WriteString(g.sim.Log().Format())
	if err := clipboard.WriteAll(b.String()); err != nil {
		g.setStatus("clipboard: " + err.Error())
		return
	}
	g.setStatus(fmt.Sprintf("copied %d log entries", g.sim.Log().Len()))
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusLeft = statusTicks
}

// cursorWorld maps the cursor into world coordinates. It reports false when
// the cursor is outside the arena so the last pointer is kept.
func (g *Game) cursorWorld() (f64.Vec2, bool) {
	mx, my := ebiten.CursorPosition()
	p := g.screenToWorld(mx, my)
	if p[0] < 0 || p[0] > float64(g.arenaW) || p[1] < 0 || p[1] > float64(g.arenaH) {
		return p, false
	}
	return p, true
}

// screenToWorld flips y: the world grows upward, the screen downward.
func (g *Game) screenToWorld(x, y int) f64.Vec2 {
	return f64.Vec2{float64(x - g.offX), float64(g.arenaH - (y - g.offY))}
}

func (g *Game) worldToScreen(p f64.Vec2) (float32, float32) {
	return float32(float64(g.offX) + p[0]), float32(float64(g.offY) + float64(g.arenaH) - p[1])
}

func slower(cur float64) float64 {
	for i, s := range speeds {
		if s >= cur && i > 0 {
			return speeds[i-1]
		}
	}
	return cur
}

func faster(cur float64) float64 {
	for i, s := range speeds {
		if s <= cur && i < len(speeds)-1 && speeds[i+1] > cur {
			return speeds[i+1]
		}
	}
	return cur
}

func speedLabel(s float64) string {
	switch s {
	case 0:
		return "PAUSED"
	case 1, 2, 4:
		return fmt.Sprintf("%.0fx", s)
	default:
		return fmt.Sprintf("%.1fx", s)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 12, B: 16, A: 255})

	snap := g.sim.Snapshot()
	g.drawWorld(screen, snap)
	if snap.Challenge != nil {
		g.drawChallenge(screen, snap)
	}
	g.feed.Draw(screen, g.face, g.offX+g.arenaW+g.offX, g.height)
	if g.showHUD {
		g.drawHUD(screen, snap)
	}
	g.drawBanner(screen, snap)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
