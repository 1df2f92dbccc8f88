package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/descent/internal/game"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type runStats struct {
	runIndex int
	seed     int64
	runID    string

	firstKillTick      int
	firstIgniteTick    int
	firstChallengeTick int
	firstHitTick       int
	bossSpawnTick      int

	overdriveEntries int
	shotsFired       int
	reflections      int

	summary game.RunSummary
	grade   game.RunGrade
	tail    string // SimLog lines from the final ticks, when requested
}

type reportOptions struct {
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	accuracy float64
	step     float64
	tail     int
}

func main() {
	var opts reportOptions
	var configPath string
	var dumpConfig bool

	flag.IntVar(&opts.runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&opts.ticks, "ticks", 12000, "tick limit per run")
	flag.Int64Var(&opts.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&opts.seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&opts.accuracy, "accuracy", 0.85, "autopilot chance of answering a counter token correctly")
	flag.Float64Var(&opts.step, "step", 1.0/60, "fixed tick length in seconds")
	flag.IntVar(&opts.tail, "tail", 0, "print the SimLog of each run's last N ticks")
	flag.StringVar(&configPath, "config", "", "YAML tuning file (defaults when empty)")
	flag.BoolVar(&dumpConfig, "dump-config", false, "print the effective config as YAML and exit")
	flag.Parse()

	cfg := game.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = game.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if dumpConfig {
		out, err := cfg.Encode()
		if err != nil {
			log.Fatal(err)
		}
		if _, err := os.Stdout.Write(out); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := opts.validate(); err != nil {
		fmt.Println("error:", err)
		return
	}

	p := message.NewPrinter(language.English)
	p.Printf("=== Headless Descent Report ===\n")
	p.Printf("runs=%d ticks=%d step=%.4f accuracy=%.2f seed_base=%d seed_step=%d\n\n",
		opts.runs, opts.ticks, opts.step, opts.accuracy, opts.seedBase, opts.seedStep)

	all := make([]runStats, 0, opts.runs)
	for i := 0; i < opts.runs; i++ {
		seed := opts.seedBase + int64(i)*opts.seedStep
		rs := runOnce(cfg, i+1, seed, opts)
		all = append(all, rs)
		printRun(p, rs)
	}

	printAggregate(p, all)
}

func (o reportOptions) validate() error {
	switch {
	case o.runs <= 0:
		return fmt.Errorf("-runs must be > 0")
	case o.ticks <= 0:
		return fmt.Errorf("-ticks must be > 0")
	case o.step <= 0:
		return fmt.Errorf("-step must be > 0")
	case o.accuracy < 0 || o.accuracy > 1:
		return fmt.Errorf("-accuracy must be within [0,1]")
	case o.tail < 0:
		return fmt.Errorf("-tail must be >= 0")
	}
	return nil
}

// runOnce plays one seeded run with the autopilot until the world is cleared,
// the player dies, or the tick limit is reached.
func runOnce(cfg game.Config, runIndex int, seed int64, opts reportOptions) runStats {
	ts := game.NewTestSim(
		game.WithConfig(func(c *game.Config) { *c = cfg }),
		game.WithSeed(seed),
		game.WithStep(opts.step),
	)
	ap := game.NewAutopilot(seed, opts.accuracy)
	clock := game.FixedClock{Step: ts.DT}

	for i := 0; i < opts.ticks; i++ {
		ts.Sim.Step(clock.Delta(), ap.Decide(ts.Snapshot()))
		if m := ts.Sim.Mode(); m == game.ModeGameOver || m == game.ModeCleared {
			break
		}
	}

	entries := ts.SimLog.Entries()
	stats := ts.Sim.Stats()
	summary := game.DetermineOutcome(ts.Snapshot(), stats)
	tail := ""
	if opts.tail > 0 {
		last := ts.CurrentTick()
		tail = ts.SimLog.FormatRange(last-opts.tail+1, last)
	}
	return runStats{
		runIndex:           runIndex,
		seed:               seed,
		runID:              ts.Sim.RunID,
		firstKillTick:      firstTick(entries, "despawn", "died", ""),
		firstIgniteTick:    firstTick(entries, "heat", "ignite", ""),
		firstChallengeTick: firstTick(entries, "challenge", "started", ""),
		firstHitTick:       firstTick(entries, "damage", "hit", ""),
		bossSpawnTick:      firstTick(entries, "spawn", "enemy", "boss"),
		overdriveEntries:   stats.OverdriveEntries,
		shotsFired:         stats.ShotsFired,
		reflections:        stats.Reflections,
		summary:            summary,
		grade:              game.GradeRun(summary),
		tail:               tail,
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) || e.Kind == contains {
			return e.Tick
		}
	}
	return -1
}

func printRun(p *message.Printer, rs runStats) {
	s := rs.summary
	p.Printf("--- Run %d (seed=%d id=%s) ---\n", rs.runIndex, rs.seed, rs.runID)
	p.Printf("outcome=%s (%s) ticks=%d elapsed=%.1fs depth=%.0f (%.0f%%) hp=%d\n",
		s.Outcome, s.Description, s.Ticks, s.Elapsed, s.Depth, s.DepthFraction*100, s.PlayerHP)
	p.Printf("phase_markers: first_hit=%d first_kill=%d first_ignite=%d first_counter=%d boss_spawn=%d\n",
		rs.firstHitTick, rs.firstKillTick, rs.firstIgniteTick, rs.firstChallengeTick, rs.bossSpawnTick)
	p.Printf("combat: spawned=%d kills=%d [%s] damage_taken=%d overdrive_entries=%d ignitions=%d\n",
		s.Spawned, s.TotalKills, killBreakdown(s), s.DamageTaken, rs.overdriveEntries, s.Ignitions)
	p.Printf("counters: won=%d lost=%d  projectiles: fired=%d reflected=%d  pickups=%d\n",
		s.CounterWins, s.CounterLosses, rs.shotsFired, rs.reflections, s.Pickups)
	p.Print(game.FormatGrade(rs.grade))
	if rs.tail != "" {
		p.Println("log_tail:")
		p.Print(rs.tail)
	}
	p.Println()
}

func killBreakdown(s game.RunSummary) string {
	title := cases.Title(language.English)
	parts := make([]string, 0, len(s.Kills))
	for i, n := range s.Kills {
		parts = append(parts, fmt.Sprintf("%s=%d", title.String(game.Archetype(i).String()), n))
	}
	return strings.Join(parts, " ")
}

func printAggregate(p *message.Printer, all []runStats) {
	outcomes := map[string]int{}
	descriptions := map[string]int{}
	totalKills := 0
	totalWins := 0
	totalLosses := 0
	totalDamage := 0
	depthSum := 0.0
	scoreSum := 0.0
	good := map[string]int{}
	bad := map[string]int{}
	killTicks := make([]int, 0, len(all))
	hitTicks := make([]int, 0, len(all))

	for _, rs := range all {
		s := rs.summary
		outcomes[s.Outcome.String()]++
		descriptions[s.Description]++
		totalKills += s.TotalKills
		totalWins += s.CounterWins
		totalLosses += s.CounterLosses
		totalDamage += s.DamageTaken
		depthSum += s.DepthFraction
		scoreSum += rs.grade.Score
		for _, t := range rs.grade.GoodTraits {
			good[t]++
		}
		for _, t := range rs.grade.BadTraits {
			bad[t]++
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
	}

	p.Println("=== Aggregate ===")
	p.Printf("runs=%d outcomes: %s\n", len(all), joinCounts(outcomes))
	p.Printf("descriptions: %s\n", joinCounts(descriptions))
	p.Printf("avg_per_run: kills=%.1f damage_taken=%.1f depth=%.0f%%\n",
		avg(totalKills, len(all)), avg(totalDamage, len(all)), depthSum/float64(max(1, len(all)))*100)
	p.Printf("counter_win_rate=%s (%d/%d)\n", rate(totalWins, totalWins+totalLosses), totalWins, totalWins+totalLosses)
	p.Printf("phase_marker_avg_ticks: first_hit=%s first_kill=%s\n", avgTickString(hitTicks), avgTickString(killTicks))

	avgScore := scoreSum / float64(max(1, len(all)))
	p.Printf("avg_grade=%s (score=%.1f)\n", game.LetterGrade(avgScore), avgScore)
	if len(good) > 0 {
		p.Printf("  top good: %s\n", game.TopTraits(good, 4))
	}
	if len(bad) > 0 {
		p.Printf("  top bad:  %s\n", game.TopTraits(bad, 4))
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func rate(num, den int) string {
	if den <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", float64(num)/float64(den)*100)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ",")
}
