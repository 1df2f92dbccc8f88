package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/descent/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

func TestGrid_CellRoundTrip(t *testing.T) {
	g := grid{cols: 80, rows: 40, w: 520, h: 640}
	for _, c := range [][2]int{{0, 0}, {79, 39}, {40, 20}, {3, 37}} {
		p := g.cellToWorld(c[0], c[1])
		cx, cy, ok := g.worldToCell(p)
		require.True(t, ok, "cell %v maps inside the arena", c)
		assert.Equal(t, c, [2]int{cx, cy})
	}
}

func TestGrid_TopRowIsHighY(t *testing.T) {
	g := grid{cols: 10, rows: 10, w: 100, h: 100}
	top := g.cellToWorld(0, 0)
	bottom := g.cellToWorld(0, 9)
	assert.Greater(t, top[1], bottom[1])

	_, _, ok := g.worldToCell(f64.Vec2{50, -10})
	assert.False(t, ok, "below the arena")
}

func TestStatusLine(t *testing.T) {
	snap := game.Snapshot{Mode: game.ModeRunning, Depth: 120, MaxDepth: 6000,
		Player: &game.PlayerView{HP: 4, MaxHP: 5, State: game.PlayerOverdrive, Fuel: 50, FuelCapacity: 100, HeatLimit: 100}}
	line := statusLine(snap, true)
	assert.True(t, strings.Contains(line, "HP 4/5"), line)
	assert.Contains(t, line, "overdrive")
	assert.Contains(t, line, "PAUSED")

	snap.Player = nil
	snap.Mode = game.ModeGameOver
	assert.Contains(t, statusLine(snap, false), "player down")
}
