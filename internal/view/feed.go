package view

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/descent/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 280
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the combat feed.
type FeedEntry struct {
	Tick    int
	Kind    game.EventKind
	Actor   game.ActorKind
	Message string
}

// Feed is a ring buffer of presentation events rendered in the side panel.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *Feed) Add(tick int, kind game.EventKind, actor game.ActorKind, msg string) {
	f.entries[f.head] = FeedEntry{
		Tick:    tick,
		Kind:    kind,
		Actor:   actor,
		Message: msg,
	}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Len returns the number of buffered entries.
func (f *Feed) Len() int { return f.count }

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Attach subscribes the feed to the signals a player cares about.
func (f *Feed) Attach(sim *game.Sim) {
	kinds := []game.EventKind{
		game.EventActorDespawned,
		game.EventPlayerDamaged,
		game.EventIgnite,
		game.EventChallengeStarted,
		game.EventChallengeResolved,
		game.EventPickupCollected,
		game.EventGameOver,
		game.EventWorldCleared,
	}
	for _, k := range kinds {
		sim.Subscribe(k, func(ev game.Event) {
			if msg, ok := describe(ev); ok {
				f.Add(ev.Tick, ev.Kind, ev.Actor, msg)
			}
		})
	}
}

// describe turns an event into a feed line. Events with no interest to the
// player (projectiles leaving the arena, pickups drifting away) are dropped.
func describe(ev game.Event) (string, bool) {
	switch ev.Kind {
	case game.EventActorDespawned:
		if ev.Actor != game.ActorEnemy {
			return "", false
		}
		return fmt.Sprintf("%s destroyed", ev.Archetype), true
	case game.EventPlayerDamaged:
		return fmt.Sprintf("hit by %s", ev.Actor), true
	case game.EventIgnite:
		return "heat overflow: ignition", true
	case game.EventChallengeStarted:
		return fmt.Sprintf("%s counters!", ev.Archetype), true
	case game.EventChallengeResolved:
		if ev.Success {
			return "counter broken", true
		}
		return "counter failed", true
	case game.EventPickupCollected:
		return "pickup collected", true
	case game.EventGameOver:
		return "GAME OVER", true
	case game.EventWorldCleared:
		return "boss down, descent cleared", true
	}
	return "", false
}

func feedColor(e FeedEntry) color.RGBA {
	switch e.Kind {
	case game.EventPlayerDamaged, game.EventGameOver:
		return color.RGBA{R: 230, G: 80, B: 80, A: 255}
	case game.EventIgnite:
		return color.RGBA{R: 255, G: 150, B: 40, A: 255}
	case game.EventChallengeStarted, game.EventChallengeResolved:
		return color.RGBA{R: 230, G: 210, B: 80, A: 255}
	case game.EventPickupCollected:
		return color.RGBA{R: 90, G: 200, B: 120, A: 255}
	case game.EventWorldCleared:
		return color.RGBA{R: 120, G: 180, B: 255, A: 255}
	default:
		return color.RGBA{R: 170, G: 175, B: 170, A: 255}
	}
}

// Draw renders the feed panel at panelX, newest entries at the bottom.
func (f *Feed) Draw(screen *ebiten.Image, face text.Face, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 10, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, 18, color.RGBA{R: 22, G: 22, B: 32, A: 255}, false)
	drawText(screen, face, "COMBAT FEED", panelX+8, 3, color.White)

	entries := f.Recent()
	maxVisible := (panelH - 26) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const recent = 3
	y := 24
	for i, e := range entries {
		if i >= len(entries)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 30, B: 44, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, feedColor(e), false)
		drawText(screen, face, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y, feedColor(e))
		y += feedLineHeight
	}
}
