package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hitPlayer() Event {
	return Event{Kind: EventPlayerDamaged, Actor: ActorEnemy}
}

func TestPlayer_FuelRegeneratesAndClamps(t *testing.T) {
	ts := NewTestSim(WithoutSpawns())
	p := ts.Player()
	p.Fuel = 50

	ts.Step()
	assert.InDelta(t, 50+ts.Sim.cfg.Player.FuelRegen*ts.DT, p.Fuel, 1e-9)

	p.Fuel = p.FuelCapacity - 0.01
	ts.Step()
	assert.Equal(t, p.FuelCapacity, p.Fuel)
}

func TestPlayer_OverdriveNeedsFullFuelAndInput(t *testing.T) {
	ts := NewTestSim(WithoutSpawns())
	p := ts.Player()
	cfg := ts.Sim.cfg.Player

	ts.Step()
	require.Equal(t, PlayerRegular, p.State, "full fuel alone does not trigger overdrive")

	p.Fuel = cfg.FuelCapacity - 10
	ts.Press(TokenPrimary)
	ts.Step()
	require.Equal(t, PlayerRegular, p.State)

	p.Fuel = cfg.FuelCapacity
	ts.Press(TokenPrimary)
	ts.Step()
	require.Equal(t, PlayerOverdrive, p.State)
	assert.Equal(t, cfg.OverdriveCollider, p.Collider)
	assert.Equal(t, cfg.OverdriveSpeed, p.Speed)
	assert.InDelta(t, cfg.FuelCapacity, p.Fuel, 1e-9, "no drain on the activation tick")

	ts.Step()
	assert.InDelta(t, cfg.FuelCapacity-cfg.FuelDrain*ts.DT, p.Fuel, 1e-9)
}

func TestPlayer_MovesTowardPointerWithDeadZone(t *testing.T) {
	ts := NewTestSim(WithoutSpawns(), WithPlayerAt(200, 300))
	p := ts.Player()
	speed := ts.Sim.cfg.Player.Speed

	ts.PointAt(400, 300)
	ts.Step()
	assert.InDelta(t, 200+speed*ts.DT, p.Pos[0], 1e-9)
	assert.InDelta(t, 300, p.Pos[1], 1e-9)

	ts.PointAt(p.Pos[0]+5, p.Pos[1])
	before := p.Pos
	ts.Step()
	assert.Equal(t, before, p.Pos, "inside the arrive radius the player holds still")

	ts.PointAt(0, 0)
	ts.RunTicks(40)
	assert.Equal(t, p.Collider[0], p.Pos[0], "clamped to the inset arena")
	assert.Equal(t, p.Collider[1], p.Pos[1])
}

func TestPlayer_DamageOnlyWhileRegular(t *testing.T) {
	ts := NewTestSim(WithoutSpawns())
	p := ts.Player()

	deliver(ts, hitPlayer())
	require.Equal(t, PlayerDamaged, p.State)
	require.Equal(t, p.MaxHP-1, p.HP)

	deliver(ts, hitPlayer(), hitPlayer())
	assert.Equal(t, p.MaxHP-1, p.HP, "invulnerable while damaged")

	p.State = PlayerRegular
	ts.Sim.enterOverdrive(p)
	deliver(ts, hitPlayer())
	assert.Equal(t, p.MaxHP-1, p.HP, "overdrive is immune to contact damage")
}

func TestPlayer_LastHitIsGameOver(t *testing.T) {
	ts := NewTestSim(WithoutSpawns())
	ts.Player().HP = 1

	deliver(ts, hitPlayer(), hitPlayer())
	assert.Nil(t, ts.Player())
	assert.Equal(t, ModeGameOver, ts.Sim.Mode())
	assert.Equal(t, 1, ts.CountEvents(EventGameOver))

	ev, ok := ts.LastEvent(EventActorDespawned)
	require.True(t, ok)
	assert.Equal(t, ActorPlayer, ev.Actor)

	// Nothing that needs the player may fail once it is gone.
	ts.PointAt(10, 10)
	ts.RunTicks(5)
	deliver(ts, hitPlayer(), Event{Kind: EventPlayerRegularForm}, Event{Kind: EventGameOver})
	assert.Equal(t, 2, ts.CountEvents(EventGameOver), "the stray game over is delivered but changes nothing")
	assert.Equal(t, ModeGameOver, ts.Sim.Mode())
}

func TestPlayer_HeatOverflowIgnites(t *testing.T) {
	ts := NewTestSim(WithoutSpawns(), WithEnemy(ArchetypeBoss, 260, 500, EnemyEngaging))
	p := ts.Player()
	ts.Sim.enterOverdrive(p)

	for i := 0; i < 30; i++ {
		deliver(ts, damageEnemy(ts.Enemies[0]))
	}
	assert.Equal(t, 1, ts.CountEvents(EventIgnite))
	assert.Less(t, p.Heat, ts.Sim.cfg.Heat.Limit)
	assert.Greater(t, p.Heat, 0.0)

	boss, ok := ts.Enemy(0)
	require.True(t, ok)
	assert.Equal(t, EnemyOnFire, boss.State)

	deliver(ts, Event{Kind: EventPlayerRegularForm})
	assert.Equal(t, PlayerRegular, p.State)
	assert.Equal(t, 0.0, p.Heat, "leaving overdrive vents heat")
	assert.Equal(t, ts.Sim.cfg.Player.Collider, p.Collider)
}
