package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a simulation run.
type SimLogEntry struct {
	Tick     int
	Actor    string  // label e.g. "P", "E12", or "--" for global events
	Kind     string  // "player", "pursuer", "ranged", "boss", "projectile", "pickup" or "--"
	Category string  // state, damage, spawn, despawn, challenge, pickup, heat, world, move, stats
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] E7   state     transition       spawned → engaging
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a simulation run.
// Unlike the view's combat feed (a UI ring buffer), SimLog is unbounded and
// machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position and fuel
// entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, kind, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Kind:     kind,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, kind, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, kind, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific actor label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Len returns the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Summary returns a short human-readable summary of the simulation state.
func (sl *SimLog) Summary(snap Snapshot, stats RunStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%s, depth %.0f) ---\n", snap.Tick, snap.Mode, snap.Depth)

	if p := snap.Player; p != nil {
		fmt.Fprintf(&sb, "Player: %s  hp=%d/%d  fuel=%.1f/%.0f  heat=%.1f\n",
			p.State, p.HP, p.MaxHP, p.Fuel, p.FuelCapacity, p.Heat)
	} else {
		sb.WriteString("Player: none\n")
	}

	// Alive enemies by archetype and state.
	alive := map[Archetype]map[EnemyState]int{}
	for _, e := range snap.Enemies {
		if alive[e.Archetype] == nil {
			alive[e.Archetype] = map[EnemyState]int{}
		}
		alive[e.Archetype][e.State]++
	}
	for _, a := range allArchetypes {
		counts, ok := alive[a]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s: ", a)
		for _, st := range []EnemyState{EnemySpawned, EnemyEngaging, EnemyOnFire} {
			if n := counts[st]; n > 0 {
				fmt.Fprintf(&sb, "%s=%d  ", st, n)
			}
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "Kills: pursuer=%d  ranged=%d  boss=%d\n",
		stats.Kills[ArchetypePursuer], stats.Kills[ArchetypeRanged], stats.Kills[ArchetypeBoss])
	fmt.Fprintf(&sb, "Counters: won=%d  lost=%d  damage taken=%d  pickups=%d\n",
		stats.CounterWins, stats.CounterLosses, stats.DamageTaken, stats.PickupsCollected)

	if c := snap.Challenge; c != nil {
		fmt.Fprintf(&sb, "Challenge: %s  remaining=%s  %.2fs left\n",
			c.TargetLabel, FormatTokens(c.Remaining), c.TimeLeft)
	}
	return sb.String()
}
