package game

// EventKind identifies a combat notification carried by the Bus.
type EventKind int

const (
	// EventPlayerDamaged: something dealt damage to the player.
	EventPlayerDamaged EventKind = iota
	// EventEnemyDamaged: the player's overdrive contact is damaging Target.
	EventEnemyDamaged
	// EventEnemyDied: Target was destroyed (HP exhausted or counter-attack).
	EventEnemyDied
	// EventIgnite: heat overflow, every engaging enemy catches fire.
	EventIgnite
	// EventPlayerRegularForm: the player must leave overdrive.
	EventPlayerRegularForm
	// EventGameOver: the player has no health left.
	EventGameOver
	// EventChallengeStarted: a counter-attack challenge against Target began.
	EventChallengeStarted
	// EventChallengeResolved: the active challenge ended; see Success.
	EventChallengeResolved
	// EventActorSpawned: Actor (with Target for arena-owned actors) entered the world.
	EventActorSpawned
	// EventActorDespawned: Actor left the world.
	EventActorDespawned
	// EventPickupCollected: the player collected a pickup of PickupKind.
	EventPickupCollected
	// EventWorldCleared: the boss was defeated.
	EventWorldCleared

	eventKindCount
)

func (k EventKind) String() string {
	switch k {
	case EventPlayerDamaged:
		return "player_damaged"
	case EventEnemyDamaged:
		return "enemy_damaged"
	case EventEnemyDied:
		return "enemy_died"
	case EventIgnite:
		return "ignite"
	case EventPlayerRegularForm:
		return "player_regular_form"
	case EventGameOver:
		return "game_over"
	case EventChallengeStarted:
		return "challenge_started"
	case EventChallengeResolved:
		return "challenge_resolved"
	case EventActorSpawned:
		return "actor_spawned"
	case EventActorDespawned:
		return "actor_despawned"
	case EventPickupCollected:
		return "pickup_collected"
	case EventWorldCleared:
		return "world_cleared"
	default:
		return "unknown"
	}
}

// ActorKind tags which arena (if any) an event's Target refers to.
type ActorKind int

const (
	ActorNone ActorKind = iota
	ActorPlayer
	ActorEnemy
	ActorProjectile
	ActorPickup
)

func (a ActorKind) String() string {
	switch a {
	case ActorPlayer:
		return "player"
	case ActorEnemy:
		return "enemy"
	case ActorProjectile:
		return "projectile"
	case ActorPickup:
		return "pickup"
	default:
		return "--"
	}
}

// Event is a lightweight notification. It never owns actors; Target is a
// handle that consumers resolve against the live world and skip when stale.
type Event struct {
	Kind      EventKind
	Tick      int
	Actor     ActorKind
	Target    Handle
	Archetype Archetype
	Pickup    PickupKind
	Success   bool
	Amount    float64
}

// Handler consumes one event.
type Handler func(Event)

// maxEventsPerTick bounds cascades (handlers publishing from handlers).
const maxEventsPerTick = 4096

// Bus is a single-tick, drain-to-empty event queue. Handlers run in
// subscription order for each event, and events run in publish order,
// including events published by handlers during Dispatch. Anything left
// undispatched at Clear is discarded.
type Bus struct {
	handlers [eventKindCount][]Handler
	queue    []Event
	head     int
	dropped  int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{queue: make([]Event, 0, 64)}
}

// Subscribe registers h for kind.
func (b *Bus) Subscribe(kind EventKind, h Handler) {
	if kind < 0 || kind >= eventKindCount || h == nil {
		return
	}
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Publish appends ev to this tick's queue.
func (b *Bus) Publish(ev Event) {
	if len(b.queue) >= maxEventsPerTick {
		b.dropped++
		return
	}
	b.queue = append(b.queue, ev)
}

// Dispatch delivers every queued event, then empties the queue. It returns
// the number of events delivered.
func (b *Bus) Dispatch() int {
	n := 0
	for b.head < len(b.queue) {
		ev := b.queue[b.head]
		b.head++
		n++
		if ev.Kind < 0 || ev.Kind >= eventKindCount {
			continue
		}
		for _, h := range b.handlers[ev.Kind] {
			h(ev)
		}
	}
	b.Clear()
	return n
}

// Clear discards all pending events.
func (b *Bus) Clear() {
	b.queue = b.queue[:0]
	b.head = 0
}

// Pending returns the number of queued, undelivered events.
func (b *Bus) Pending() int { return len(b.queue) - b.head }

// Dropped returns how many events were rejected by the per-tick cap.
func (b *Bus) Dropped() int { return b.dropped }
