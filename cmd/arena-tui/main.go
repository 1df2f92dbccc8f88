// Command arena-tui plays the simulation in a terminal. The mouse steers,
// left/right click (or z/x) press the Primary/Secondary tokens.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Garsondee/descent/internal/game"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/math/f64"
)

const frameInterval = time.Second / 30

// grid maps terminal cells onto the world. Row 0 is the top of the arena;
// the world's y axis grows upward.
type grid struct {
	cols, rows int
	w, h       float64
}

func (g grid) cellToWorld(cx, cy int) f64.Vec2 {
	x := (float64(cx) + 0.5) / float64(g.cols) * g.w
	y := g.h - (float64(cy)+0.5)/float64(g.rows)*g.h
	return f64.Vec2{x, y}
}

func (g grid) worldToCell(p f64.Vec2) (int, int, bool) {
	cx := int(p[0] / g.w * float64(g.cols))
	cy := int((g.h - p[1]) / g.h * float64(g.rows))
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return cx, cy, false
	}
	return cx, cy, true
}

type app struct {
	screen tcell.Screen
	cfg    game.Config
	sim    *game.Sim
	clock  *game.WallClock
	grid   grid
	paused bool

	pointer    f64.Vec2
	hasPointer bool
	pending    []game.Token
	buttons    tcell.ButtonMask
}

func newApp(cfg game.Config) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	a := &app{screen: screen, cfg: cfg}
	a.resize()
	if err := a.restart(); err != nil {
		screen.Fini()
		return nil, err
	}
	return a, nil
}

func (a *app) restart() error {
	sim, err := game.NewSim(a.cfg)
	if err != nil {
		return err
	}
	a.sim = sim
	a.clock = game.NewWallClock(0.1)
	a.pending = nil
	a.hasPointer = false
	return nil
}

// resize reserves the bottom two rows for the status lines.
func (a *app) resize() {
	w, h := a.screen.Size()
	a.grid = grid{cols: max(1, w), rows: max(1, h-2), w: a.cfg.World.Width, h: a.cfg.World.Height}
}

func (a *app) run() {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			dt := a.clock.Delta()
			if a.paused {
				a.pending = nil
			} else {
				a.sim.Step(dt, game.Input{Pointer: a.pointer, HasPointer: a.hasPointer, Pressed: a.pending})
				a.pending = nil
			}
			a.draw()
		}
	}
}

// handleEvent returns false when the user asked to quit.
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'z', ' ':
			a.pending = append(a.pending, game.TokenPrimary)
		case 'x':
			a.pending = append(a.pending, game.TokenSecondary)
		case 'p':
			a.paused = !a.paused
		case 'r':
			if m := a.sim.Mode(); m == game.ModeGameOver || m == game.ModeCleared {
				if err := a.restart(); err != nil {
					log.Printf("restart: %v", err)
				}
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		if y < a.grid.rows {
			a.pointer = a.grid.cellToWorld(x, y)
			a.hasPointer = true
		}
		// Buttons are level-triggered; only fresh presses become tokens.
		btn := ev.Buttons()
		fresh := btn &^ a.buttons
		if fresh&tcell.Button1 != 0 {
			a.pending = append(a.pending, game.TokenPrimary)
		}
		if fresh&tcell.Button2 != 0 {
			a.pending = append(a.pending, game.TokenSecondary)
		}
		a.buttons = btn
	}
	return true
}

func (a *app) put(p f64.Vec2, r rune, style tcell.Style) {
	if cx, cy, ok := a.grid.worldToCell(p); ok {
		a.screen.SetContent(cx, cy, r, nil, style)
	}
}

func (a *app) draw() {
	a.screen.Clear()
	snap := a.sim.Snapshot()

	for _, pk := range snap.Pickups {
		r, c := '+', tcell.ColorGreen
		if pk.Kind == game.PickupFuel {
			r, c = 'f', tcell.ColorTeal
		}
		a.put(pk.Pos, r, tcell.StyleDefault.Foreground(c))
	}
	for _, e := range snap.Enemies {
		a.put(e.Pos, enemyRune(e), enemyStyle(e))
	}
	for _, pr := range snap.Projectiles {
		style := tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
		if pr.Reflected {
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
		}
		a.put(pr.Pos, '*', style)
	}
	if p := snap.Player; p != nil {
		style := tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
		switch p.State {
		case game.PlayerOverdrive:
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
		case game.PlayerDamaged:
			style = tcell.StyleDefault.Foreground(tcell.ColorWhite).Dim(true)
		}
		a.put(p.Pos, '@', style)
	}

	a.printLine(a.grid.rows, statusLine(snap, a.paused), tcell.StyleDefault.Reverse(true))
	if c := snap.Challenge; c != nil {
		a.printLine(a.grid.rows+1, fmt.Sprintf("COUNTER %s: %s  %.1fs  (z/left=P x/right=S)",
			c.TargetLabel, game.FormatTokens(c.Remaining), c.TimeLeft), tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	} else {
		a.printLine(a.grid.rows+1, "mouse=steer  z/left=P  x/right=S  p=pause  r=restart  q=quit", tcell.StyleDefault.Dim(true))
	}
	a.screen.Show()
}

func (a *app) printLine(y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		if i >= a.grid.cols {
			break
		}
		a.screen.SetContent(i, y, r, nil, style)
	}
}

func enemyRune(e game.EnemyView) rune {
	switch e.Archetype {
	case game.ArchetypeRanged:
		return 'r'
	case game.ArchetypeBoss:
		return 'B'
	default:
		return 'e'
	}
}

func enemyStyle(e game.EnemyView) tcell.Style {
	switch {
	case e.State == game.EnemyOnFire:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	case e.State == game.EnemySpawned:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case e.Archetype == game.ArchetypeBoss:
		return tcell.StyleDefault.Foreground(tcell.ColorMaroon).Bold(true)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
}

func statusLine(snap game.Snapshot, paused bool) string {
	hud := "player down"
	if p := snap.Player; p != nil {
		hud = fmt.Sprintf("HP %d/%d  %-9s fuel %3.0f/%3.0f  heat %3.0f/%3.0f",
			p.HP, p.MaxHP, p.State, p.Fuel, p.FuelCapacity, p.Heat, p.HeatLimit)
	}
	line := fmt.Sprintf(" %s  depth %.0f/%.0f  enemies %d  [%s]", hud, snap.Depth, snap.MaxDepth, snap.Population, snap.Mode)
	if paused {
		line += "  PAUSED"
	}
	return line
}

func main() {
	configPath := flag.String("config", "", "YAML tuning file (defaults when empty)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = from time)")
	flag.Parse()

	cfg := game.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = game.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	a, err := newApp(cfg)
	if err != nil {
		log.Fatal(err)
	}
	a.run()
	a.screen.Fini()

	snap := a.sim.Snapshot()
	sum := game.DetermineOutcome(snap, a.sim.Stats())
	fmt.Printf("run %s: %s (%s) depth=%.0f kills=%d\n", a.sim.RunID, sum.Outcome, sum.Description, sum.Depth, sum.TotalKills)
}
