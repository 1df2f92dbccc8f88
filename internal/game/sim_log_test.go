package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLog() *SimLog {
	sl := NewSimLog(false)
	sl.Add(1, "E1", "pursuer", "spawn", "enemy", "(10,-20)", 0)
	sl.Add(4, "E1", "pursuer", "state", "transition", "spawned → engaging", 0)
	sl.Add(6, "E2", "ranged", "spawn", "enemy", "(90,-20)", 0)
	sl.Add(9, "E1", "pursuer", "despawn", "died", "overdrive", 0)
	sl.AddVerbose(9, playerLabel, "player", "stats", "fuel", "40.00", 40)
	return sl
}

func TestSimLog_Queries(t *testing.T) {
	sl := sampleLog()
	require.Equal(t, 4, sl.Len(), "verbose entries are dropped")

	assert.Len(t, sl.FilterActor("E1"), 3)
	assert.Len(t, sl.Filter("spawn", ""), 2)
	assert.Equal(t, 2, sl.CountCategory("spawn", "enemy"))

	last, ok := sl.LastOf("spawn", "enemy")
	require.True(t, ok)
	assert.Equal(t, "E2", last.Actor)
	_, ok = sl.LastOf("challenge", "started")
	assert.False(t, ok)

	mid := sl.FilterTickRange(4, 6)
	require.Len(t, mid, 2)
	assert.Equal(t, 4, mid[0].Tick)
	assert.Equal(t, 6, mid[1].Tick)
}

func TestSimLog_FormatRange(t *testing.T) {
	sl := sampleLog()
	out := sl.FormatRange(5, 100)
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Contains(t, out, "[T=006] E2")
	assert.NotContains(t, out, "spawned → engaging")
	assert.Empty(t, sl.FormatRange(20, 30))
	assert.Equal(t, sl.Format(), sl.FormatRange(0, 9))
}
