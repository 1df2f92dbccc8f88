package view

import (
	"fmt"
	"testing"

	"github.com/Garsondee/descent/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_RecentIsChronological(t *testing.T) {
	f := NewFeed()
	for i := 0; i < 5; i++ {
		f.Add(i, game.EventIgnite, game.ActorNone, fmt.Sprintf("m%d", i))
	}
	got := f.Recent()
	require.Len(t, got, 5)
	for i, e := range got {
		assert.Equal(t, i, e.Tick)
	}
}

func TestFeed_WrapsAtCapacity(t *testing.T) {
	f := NewFeed()
	total := feedMaxEntries + 7
	for i := 0; i < total; i++ {
		f.Add(i, game.EventIgnite, game.ActorNone, "x")
	}
	got := f.Recent()
	require.Len(t, got, feedMaxEntries)
	assert.Equal(t, 7, got[0].Tick, "oldest surviving entry")
	assert.Equal(t, total-1, got[len(got)-1].Tick, "newest entry last")
}

func TestDescribe_FiltersNoise(t *testing.T) {
	_, ok := describe(game.Event{Kind: game.EventActorDespawned, Actor: game.ActorProjectile})
	assert.False(t, ok, "projectile despawns stay out of the feed")

	msg, ok := describe(game.Event{Kind: game.EventActorDespawned, Actor: game.ActorEnemy, Archetype: game.ArchetypeBoss})
	require.True(t, ok)
	assert.Contains(t, msg, "boss")

	msg, ok = describe(game.Event{Kind: game.EventChallengeResolved, Success: true})
	require.True(t, ok)
	assert.Equal(t, "counter broken", msg)

	_, ok = describe(game.Event{Kind: game.EventEnemyDamaged})
	assert.False(t, ok)
}

func TestFeed_AttachRecordsSimSignals(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 3
	cfg.Spawn.MaxEnemies = 0
	sim, err := game.NewSim(cfg)
	require.NoError(t, err)

	f := NewFeed()
	f.Attach(sim)

	// Stand still until the first pickup drifts past; nothing else can
	// happen in an empty arena.
	for i := 0; i < 600 && f.Len() == 0; i++ {
		sim.Step(0.1, game.Input{})
	}
	for _, e := range f.Recent() {
		assert.Contains(t, []game.EventKind{game.EventPickupCollected}, e.Kind)
	}
}
