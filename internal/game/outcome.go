package game

type Outcome int

const (
	OutcomeInconclusive Outcome = iota
	OutcomeCleared
	OutcomeDefeated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCleared:
		return "cleared"
	case OutcomeDefeated:
		return "defeated"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// RunSummary explains how a run ended.
type RunSummary struct {
	Outcome       Outcome
	Ticks         int
	Elapsed       float64
	Depth         float64
	DepthFraction float64
	PlayerHP      int
	Kills         [archetypeCount]int
	TotalKills    int
	Spawned       int
	CounterWins   int
	CounterLosses int
	DamageTaken   int
	Pickups       int
	Ignitions     int
	Description   string
}

func DetermineOutcome(snap Snapshot, stats RunStats) RunSummary {
	spawned := 0
	for _, n := range stats.Spawned {
		spawned += n
	}
	frac := 0.0
	if snap.MaxDepth > 0 {
		frac = snap.Depth / snap.MaxDepth
	}
	hp := 0
	if snap.Player != nil {
		hp = snap.Player.HP
	}

	sum := RunSummary{
		Ticks:         snap.Tick,
		Elapsed:       snap.Elapsed,
		Depth:         snap.Depth,
		DepthFraction: frac,
		PlayerHP:      hp,
		Kills:         stats.Kills,
		TotalKills:    stats.TotalKills(),
		Spawned:       spawned,
		CounterWins:   stats.CounterWins,
		CounterLosses: stats.CounterLosses,
		DamageTaken:   stats.DamageTaken,
		Pickups:       stats.PickupsCollected,
		Ignitions:     stats.Ignitions,
	}

	switch snap.Mode {
	case ModeCleared:
		sum.Outcome = OutcomeCleared
		if stats.DamageTaken == 0 {
			sum.Description = "flawless_boss_defeated"
		} else {
			sum.Description = "boss_defeated"
		}
	case ModeGameOver:
		sum.Outcome = OutcomeDefeated
		switch {
		case stats.Spawned[ArchetypeBoss] > 0:
			sum.Description = "defeated_by_boss_encounter"
		case frac >= 0.5:
			sum.Description = "defeated_deep_descent"
		default:
			sum.Description = "defeated_early_descent"
		}
	default:
		sum.Outcome = OutcomeInconclusive
		if stats.Spawned[ArchetypeBoss] > 0 {
			sum.Description = "inconclusive_boss_alive"
		} else {
			sum.Description = "inconclusive_time_limit"
		}
	}
	return sum
}
