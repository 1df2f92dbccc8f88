package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/f64"
)

func testGame() *Game {
	return &Game{offX: borderWidth, offY: borderWidth, arenaW: 520, arenaH: 640}
}

func TestScreenToWorld_FlipsY(t *testing.T) {
	g := testGame()
	assert.Equal(t, f64.Vec2{0, 640}, g.screenToWorld(borderWidth, borderWidth), "top-left of the arena")
	assert.Equal(t, f64.Vec2{520, 0}, g.screenToWorld(borderWidth+520, borderWidth+640), "bottom-right")
}

func TestWorldToScreen_InvertsScreenToWorld(t *testing.T) {
	g := testGame()
	for _, p := range []f64.Vec2{{0, 0}, {260, 320}, {13, 600}} {
		x, y := g.worldToScreen(p)
		assert.Equal(t, p, g.screenToWorld(int(x), int(y)))
	}
}

func TestSpeedSteps(t *testing.T) {
	assert.Equal(t, 0.5, slower(1))
	assert.Equal(t, 0.0, slower(0.5))
	assert.Equal(t, 0.0, slower(0), "already paused")
	assert.Equal(t, 2.0, faster(1))
	assert.Equal(t, 4.0, faster(4), "already at max")
	assert.Equal(t, "PAUSED", speedLabel(0))
	assert.Equal(t, "0.5x", speedLabel(0.5))
	assert.Equal(t, "2x", speedLabel(2))
}
