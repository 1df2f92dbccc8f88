package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newChallengeSim places an overdriven player and a pursuer one hit above
// its counter threshold, then lands that hit so a challenge opens.
func newChallengeSim(t *testing.T, seed int64) *TestSim {
	t.Helper()
	ts := NewTestSim(WithSeed(seed), WithoutSpawns(),
		WithPlayerAt(260, 320),
		WithEnemy(ArchetypePursuer, 100, 100, EnemyEngaging),
		WithEnemy(ArchetypePursuer, 400, 100, EnemyEngaging),
	)
	ts.Sim.enterOverdrive(ts.Player())
	e, _ := ts.Enemy(0)
	e.HP = e.CounterThreshold + 1

	deliver(ts, damageEnemy(ts.Enemies[0]))
	require.Equal(t, ModeChallenge, ts.Sim.Mode())
	require.NotNil(t, ts.Sim.challenge)
	require.Equal(t, 1, ts.CountEvents(EventChallengeStarted))
	return ts
}

func flip(tok Token) Token {
	if tok == TokenPrimary {
		return TokenSecondary
	}
	return TokenPrimary
}

func TestChallenge_SequenceIsDeterministicPerSeed(t *testing.T) {
	a := newChallengeSim(t, 21)
	b := newChallengeSim(t, 21)
	assert.Equal(t, a.Sim.challenge.Sequence, b.Sim.challenge.Sequence)
	assert.Len(t, a.Sim.challenge.Sequence, a.Sim.cfg.Challenge.Length)
	for _, tok := range a.Sim.challenge.Sequence {
		assert.True(t, tok.Valid())
	}
}

func TestChallenge_MatchingInputSucceeds(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 99} {
		ts := newChallengeSim(t, seed)
		target := ts.Enemies[0]
		seq := append([]Token(nil), ts.Sim.challenge.Sequence...)
		p := ts.Player()
		fuel := p.Fuel

		for _, tok := range seq {
			ts.Press(tok)
			ts.Step()
		}

		ev, ok := ts.LastEvent(EventChallengeResolved)
		require.Truef(t, ok, "seed %d: challenge never resolved\n%s", seed, ts.SimLog.Format())
		assert.True(t, ev.Success, "seed %d", seed)
		assert.Equal(t, ModeRunning, ts.Sim.Mode())
		assert.Nil(t, ts.Sim.challenge)
		assert.False(t, ts.Sim.enemies.Valid(target), "the target is destroyed")
		assert.Equal(t, 1, ts.CountEvents(EventEnemyDied))
		assert.InDelta(t, min(fuel+ts.Sim.cfg.Challenge.FuelReward, p.FuelCapacity), p.Fuel, 1e-9)
		assert.Equal(t, 1, ts.Sim.Stats().CounterWins)
	}
}

func TestChallenge_AllTokensInOneTick(t *testing.T) {
	ts := newChallengeSim(t, 5)
	ts.Press(ts.Sim.challenge.Sequence...)
	ts.Step()
	ev, ok := ts.LastEvent(EventChallengeResolved)
	require.True(t, ok)
	assert.True(t, ev.Success)
}

func TestChallenge_MismatchFails(t *testing.T) {
	ts := newChallengeSim(t, 7)
	p := ts.Player()
	target, _ := ts.Enemy(0)
	hpBefore := target.HP
	fuelBefore := p.Fuel
	seq := ts.Sim.challenge.Sequence

	ts.Press(seq[0])
	ts.Step()
	require.NotNil(t, ts.Sim.challenge, "a correct token keeps the challenge going")
	ts.Press(flip(seq[1]))
	ts.Step()

	ev, ok := ts.LastEvent(EventChallengeResolved)
	require.True(t, ok)
	assert.False(t, ev.Success)
	assert.Equal(t, ModeRunning, ts.Sim.Mode())

	assert.Equal(t, 1, ts.CountEvents(EventPlayerRegularForm), "failure forces the player out of overdrive")
	assert.Equal(t, PlayerDamaged, p.State)
	assert.Equal(t, p.MaxHP-1, p.HP)
	assert.InDelta(t, fuelBefore-ts.Sim.cfg.Challenge.FuelPenalty, p.Fuel, 1e-9)

	target, ok = ts.Enemy(0)
	require.True(t, ok, "the target survives a failed counter")
	assert.InDelta(t, min(hpBefore+target.CounterHeal, target.MaxHP), target.HP, 1e-9)
	assert.Equal(t, 1, ts.Sim.Stats().CounterLosses)
}

func TestChallenge_TimeoutFails(t *testing.T) {
	ts := newChallengeSim(t, 9)
	ticks := int(ts.Sim.cfg.Challenge.Duration/ts.DT + 0.5)

	ts.RunTicks(ticks - 1)
	require.NotNil(t, ts.Sim.challenge)
	require.Equal(t, 0, ts.CountEvents(EventChallengeResolved))

	ts.Step()
	ev, ok := ts.LastEvent(EventChallengeResolved)
	require.True(t, ok)
	assert.False(t, ev.Success)
	assert.False(t, ts.Sim.ChallengeActive())
	entry, ok := ts.SimLog.LastOf("challenge", "timeout")
	require.True(t, ok)
	assert.Equal(t, ts.CurrentTick(), entry.Tick)
}

func TestChallenge_SuspendsCombat(t *testing.T) {
	ts := newChallengeSim(t, 12)
	other, _ := ts.Enemy(1)
	pos := other.Pos
	depth := ts.Sim.Depth()
	ts.PointAt(0, 0)

	ts.RunTicks(5)
	assert.Equal(t, pos, other.Pos, "enemies are frozen during a challenge")
	assert.Equal(t, depth, ts.Sim.Depth())
	assert.Equal(t, vec(260, 320), ts.Player().Pos)
}

func TestChallenge_SecondTriggerIgnored(t *testing.T) {
	ts := newChallengeSim(t, 13)
	first := ts.Sim.challenge.Target
	e, _ := ts.Enemy(1)
	e.HP = e.CounterThreshold + 1

	deliver(ts, damageEnemy(ts.Enemies[1]))
	assert.Equal(t, 1, ts.CountEvents(EventChallengeStarted))
	assert.Equal(t, first, ts.Sim.challenge.Target)
}

func TestChallenge_StaleTargetTolerated(t *testing.T) {
	ts := newChallengeSim(t, 17)
	require.True(t, ts.Sim.destroyEnemy(ts.Enemies[0], "test"))
	ts.Sim.bus.Dispatch()

	ts.Press(ts.Sim.challenge.Sequence...)
	ts.Step()
	ev, ok := ts.LastEvent(EventChallengeResolved)
	require.True(t, ok)
	assert.True(t, ev.Success)
	assert.Equal(t, 1, ts.CountEvents(EventEnemyDied), "a dead target is not destroyed twice")
	assert.Equal(t, 1, ts.Sim.Population())
}
