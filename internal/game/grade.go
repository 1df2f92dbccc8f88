package game

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Grading thresholds. Sub-scores below their sample minimum are not graded.
const (
	gradeMinEncounters = 3
	gradeMinCounters   = 1
	gradeSurvivalBonus = 5
)

// RunGrade is a 0-100 assessment of one run. Sub-scores are -1 when the run
// gave too little evidence to grade them.
type RunGrade struct {
	Score float64
	Grade string

	ProgressScore float64
	SurvivalScore float64
	CombatScore   float64
	CounterScore  float64

	GoodTraits []string
	BadTraits  []string
}

// GradeRun scores a finished (or time-limited) run.
func GradeRun(sum RunSummary) RunGrade {
	g := RunGrade{
		ProgressScore: -1,
		SurvivalScore: -1,
		CombatScore:   -1,
		CounterScore:  -1,
	}

	// --- Progress: how far the descent got ---
	g.ProgressScore = gradeClamp(100 * sum.DepthFraction)
	if sum.Outcome == OutcomeCleared {
		g.ProgressScore = 100
	}

	// --- Survival: hits absorbed against hits remaining ---
	if sum.Ticks > 0 {
		if total := sum.PlayerHP + sum.DamageTaken; total > 0 {
			g.SurvivalScore = gradeClamp(100 * float64(sum.PlayerHP) / float64(total))
		} else {
			g.SurvivalScore = 50
		}
	}

	// --- Combat: share of spawned enemies destroyed ---
	if sum.Spawned >= gradeMinEncounters {
		g.CombatScore = gradeClamp(40 + 60*gradeFrac(sum.TotalKills, sum.Spawned))
	}

	// --- Counters: share of challenges won ---
	if n := sum.CounterWins + sum.CounterLosses; n >= gradeMinCounters {
		g.CounterScore = gradeClamp(100 * gradeFrac(sum.CounterWins, n))
	}

	type scoredWeight struct {
		score  float64
		weight float64
	}
	var items []scoredWeight
	if g.ProgressScore >= 0 {
		items = append(items, scoredWeight{g.ProgressScore, 0.30})
	}
	if g.SurvivalScore >= 0 {
		items = append(items, scoredWeight{g.SurvivalScore, 0.25})
	}
	if g.CombatScore >= 0 {
		items = append(items, scoredWeight{g.CombatScore, 0.30})
	}
	if g.CounterScore >= 0 {
		items = append(items, scoredWeight{g.CounterScore, 0.15})
	}
	totalW, totalS := 0.0, 0.0
	for _, it := range items {
		totalW += it.weight
		totalS += it.score * it.weight
	}
	g.Score = totalS / totalW

	if sum.Outcome != OutcomeDefeated {
		g.Score = math.Min(100, g.Score+gradeSurvivalBonus)
	}

	g.Grade = LetterGrade(g.Score)
	g.GoodTraits, g.BadTraits = detectTraits(sum)
	return g
}

func detectTraits(sum RunSummary) (good, bad []string) {
	if sum.DamageTaken == 0 && sum.Spawned > 0 && sum.Outcome != OutcomeDefeated {
		good = append(good, "untouched")
	}
	if sum.Kills[ArchetypeBoss] > 0 {
		good = append(good, "boss_slayer")
	}
	if sum.CounterWins >= 3 && sum.CounterLosses == 0 {
		good = append(good, "counter_master")
	}
	if sum.Ignitions >= 3 {
		good = append(good, "pyromaniac")
	}
	if sum.Pickups >= 5 {
		good = append(good, "scavenger")
	}

	if sum.Outcome == OutcomeDefeated && sum.DepthFraction < 0.25 {
		bad = append(bad, "fell_early")
	}
	if sum.CounterLosses >= 2 && sum.CounterLosses > sum.CounterWins {
		bad = append(bad, "counter_fumbler")
	}
	if sum.Spawned >= 5 && sum.TotalKills == 0 {
		bad = append(bad, "passive")
	}
	if sum.DamageTaken >= 4 {
		bad = append(bad, "attrition")
	}
	return good, bad
}

// LetterGrade maps a 0-100 score to a letter grade.
func LetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

// FormatGrade renders a grade block for reports.
func FormatGrade(g RunGrade) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "grade: %-2s (score=%.1f)\n", g.Grade, g.Score)

	var scores []string
	if g.ProgressScore >= 0 {
		scores = append(scores, fmt.Sprintf("Progress=%.0f", g.ProgressScore))
	}
	if g.SurvivalScore >= 0 {
		scores = append(scores, fmt.Sprintf("Survival=%.0f", g.SurvivalScore))
	}
	if g.CombatScore >= 0 {
		scores = append(scores, fmt.Sprintf("Combat=%.0f", g.CombatScore))
	}
	if g.CounterScore >= 0 {
		scores = append(scores, fmt.Sprintf("Counter=%.0f", g.CounterScore))
	}
	if len(scores) > 0 {
		fmt.Fprintf(&sb, "  scores: %s\n", strings.Join(scores, "  "))
	}
	if len(g.GoodTraits) > 0 {
		fmt.Fprintf(&sb, "  good: %s\n", strings.Join(g.GoodTraits, ", "))
	}
	if len(g.BadTraits) > 0 {
		fmt.Fprintf(&sb, "  bad:  %s\n", strings.Join(g.BadTraits, ", "))
	}
	return sb.String()
}

// TopTraits renders the n most frequent traits as "name(count)", most
// frequent first, ties by name.
func TopTraits(counts map[string]int, n int) string {
	type kv struct {
		trait string
		count int
	}
	items := make([]kv, 0, len(counts))
	for k, v := range counts {
		items = append(items, kv{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].trait < items[j].trait
	})
	if len(items) > n {
		items = items[:n]
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s(%d)", it.trait, it.count)
	}
	return strings.Join(parts, ", ")
}

func gradeFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func gradeClamp(s float64) float64 {
	return clampf(s, 0, 100)
}
