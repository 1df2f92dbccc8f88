package game

import (
	"math"
	"math/rand"

	"golang.org/x/image/math/f64"
)

// Autopilot plays the game from snapshots. It is used by the headless report
// and by long-running tests; it only ever sees what a frontend sees.
type Autopilot struct {
	// Accuracy is the chance that a challenge token is answered correctly.
	Accuracy float64
	// ReactionTicks is the number of ticks between challenge presses.
	ReactionTicks int
	// EngageRange is how close the nearest enemy must be before the
	// autopilot enters overdrive.
	EngageRange float64

	rng  *rand.Rand
	wait int
}

// NewAutopilot creates an autopilot with its own deterministic RNG.
func NewAutopilot(seed int64, accuracy float64) *Autopilot {
	return &Autopilot{
		Accuracy:      accuracy,
		ReactionTicks: 6,
		EngageRange:   220,
		rng:           rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay only
	}
}

// Decide returns the input for the next tick.
func (ap *Autopilot) Decide(snap Snapshot) Input {
	p := snap.Player
	if p == nil {
		return Input{}
	}
	if c := snap.Challenge; c != nil {
		return ap.answer(c)
	}
	ap.wait = 0

	nearest, d, found := nearestEnemy(snap, p.Pos)
	switch p.State {
	case PlayerOverdrive:
		if found {
			return PointerInput(nearest.Pos)
		}
		return PointerInput(vec(snap.Width/2, snap.Height/2))
	case PlayerRegular:
		if found && d < ap.EngageRange && p.Fuel >= p.FuelCapacity {
			return PointerInput(nearest.Pos, TokenPrimary)
		}
	}

	if pk, ok := ap.wantedPickup(snap, p); ok {
		return PointerInput(pk)
	}
	if found {
		return PointerInput(ap.evade(snap, p.Pos, nearest.Pos))
	}
	return PointerInput(vec(snap.Width/2, snap.Height*0.75))
}

// answer presses the next challenge token after the reaction delay.
func (ap *Autopilot) answer(c *ChallengeView) Input {
	if len(c.Remaining) == 0 {
		return Input{}
	}
	ap.wait++
	if ap.wait < ap.ReactionTicks {
		return Input{}
	}
	ap.wait = 0
	tok := c.Remaining[0]
	if ap.rng.Float64() >= ap.Accuracy { // #nosec G404 -- gameplay only
		if tok == TokenPrimary {
			tok = TokenSecondary
		} else {
			tok = TokenPrimary
		}
	}
	return Input{Pressed: []Token{tok}}
}

// wantedPickup returns the nearest pickup the player currently benefits from.
func (ap *Autopilot) wantedPickup(snap Snapshot, p *PlayerView) (f64.Vec2, bool) {
	best, bestD := f64.Vec2{}, math.Inf(1)
	for _, pk := range snap.Pickups {
		if pk.Pos[1] < 0 {
			continue
		}
		if pk.Kind == PickupHealth && p.HP >= p.MaxHP {
			continue
		}
		if pk.Kind == PickupFuel && p.Fuel >= p.FuelCapacity {
			continue
		}
		if d := dist(pk.Pos, p.Pos); d < bestD {
			best, bestD = pk.Pos, d
		}
	}
	return best, !math.IsInf(bestD, 1)
}

// evade steers away from threat, pulled toward the arena centre so the
// player does not pin itself in a corner.
func (ap *Autopilot) evade(snap Snapshot, pos, threat f64.Vec2) f64.Vec2 {
	away := normalize(sub(pos, threat))
	centre := vec(snap.Width/2, snap.Height/2)
	pull := scale(normalize(sub(centre, pos)), 0.5)
	return add(pos, scale(normalize(add(away, pull)), 120))
}

func nearestEnemy(snap Snapshot, pos f64.Vec2) (EnemyView, float64, bool) {
	var best EnemyView
	bestD := math.Inf(1)
	for _, e := range snap.Enemies {
		if e.State == EnemySpawned {
			continue
		}
		if d := dist(e.Pos, pos); d < bestD {
			best, bestD = e, d
		}
	}
	return best, bestD, !math.IsInf(bestD, 1)
}
