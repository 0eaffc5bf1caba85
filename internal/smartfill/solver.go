// Package smartfill fits one training day into caller-supplied constraints:
// an optional time budget, the equipment actually available, and reported
// injuries. It is a deterministic heuristic, not an optimal solver.
package smartfill

import (
	"fmt"
	"strings"

	"github.com/myrjola/coachplan/internal/plan"
)

// Time estimation constants.
const (
	// DefaultRestSeconds is assumed when a set has no explicit rest.
	DefaultRestSeconds = 90
	// WorkSecondsPerSet is the fixed per-set work estimate.
	WorkSecondsPerSet = 45
	// ReductionMinutesPerSet is the flat per-set estimate used when deciding
	// how many sets of an oversized exercise still fit.
	ReductionMinutesPerSet = 2

	secondsPerMinute = 60
)

// Result is the outcome of resolving one day against constraints.
type Result struct {
	Day plan.Day `json:"day"`
	// Changes are human-readable descriptions of what was altered.
	Changes []string `json:"changes"`
	// EstimatedMinutes is the estimated total time of the returned day.
	EstimatedMinutes int `json:"estimatedMinutes"`
}

// Solver resolves days against constraints using a fixed keyword lexicon.
type Solver struct {
	lexicon Lexicon
}

// NewSolver constructs a solver. Pass DefaultLexicon() for the built-in
// keyword tables.
func NewSolver(lexicon Lexicon) *Solver {
	return &Solver{lexicon: lexicon}
}

// Resolve applies the three constraint passes in fixed order: time budget,
// equipment substitution, injury substitution. Each pass is a no-op when its
// constraint field is absent. The input day is never mutated; Resolve never
// fails, missing substitutes leave exercises untouched.
func (s *Solver) Resolve(day plan.Day, constraints plan.Constraints) Result {
	resolved := day.Clone()
	var changes []string

	if constraints.TimeBudgetMinutes != nil {
		resolved, changes = s.applyTimeBudget(resolved, *constraints.TimeBudgetMinutes, changes)
	}
	if len(constraints.AvailableEquipment) > 0 {
		resolved, changes = s.applyEquipment(resolved, constraints.AvailableEquipment, changes)
	}
	if len(constraints.Injuries) > 0 {
		resolved, changes = s.applyInjuries(resolved, constraints.Injuries, changes)
	}

	return Result{
		Day:              resolved,
		Changes:          changes,
		EstimatedMinutes: s.EstimateDayMinutes(resolved),
	}
}

// applyTimeBudget greedily keeps compounds before accessories per block,
// truncating or dropping exercises that no longer fit.
//
// The remaining budget can go negative when a truncation candidate turns out
// to fit all of its sets at the flat per-set estimate; later blocks are still
// attempted token by token. Early blocks are favored on purpose.
func (s *Solver) applyTimeBudget(day plan.Day, budget int, changes []string) (plan.Day, []string) {
	originalEstimate := s.EstimateDayMinutes(day)
	remaining := budget

	for i, block := range day.Blocks {
		if remaining <= 0 && !isWarmUpBlock(block) {
			day.Blocks[i].Exercises = []plan.Exercise{}
			continue
		}

		compounds, accessories := s.partitionByCompound(block.Exercises)
		kept := make([]plan.Exercise, 0, len(block.Exercises))
		for _, ex := range append(compounds, accessories...) {
			var keptEx *plan.Exercise
			keptEx, remaining, changes = s.fitExercise(ex, remaining, changes)
			if keptEx != nil {
				kept = append(kept, *keptEx)
			}
		}
		day.Blocks[i].Exercises = kept
	}

	if originalEstimate > budget {
		changes = append(changes, fmt.Sprintf(
			"Day adjusted to the time budget: %d min estimated, %d min available", originalEstimate, budget))
	}
	return day, changes
}

// fitExercise keeps, truncates, or drops a single exercise against the
// remaining minutes. A full drop records no change description.
func (s *Solver) fitExercise(ex plan.Exercise, remaining int, changes []string) (*plan.Exercise, int, []string) {
	estimate := EstimateExerciseMinutes(ex)
	if estimate <= remaining {
		return &ex, remaining - estimate, changes
	}

	maxSets := remaining / ReductionMinutesPerSet
	switch {
	case maxSets <= 0:
		return nil, remaining, changes
	case maxSets >= len(ex.Sets):
		// The flat estimate is cheaper than the full one; keep everything
		// and let the budget go negative.
		return &ex, remaining - estimate, changes
	default:
		ex.Sets = ex.Sets[:maxSets]
		changes = append(changes, fmt.Sprintf("%s: reduced to %d sets to fit the available time", ex.Name, maxSets))
		return &ex, remaining - maxSets*ReductionMinutesPerSet, changes
	}
}

// applyEquipment replaces exercises whose detected equipment is unavailable,
// when the lexicon knows a substitute whose equipment is available. The
// replacement keeps the original identifier.
func (s *Solver) applyEquipment(day plan.Day, available []string, changes []string) (plan.Day, []string) {
	for bi, block := range day.Blocks {
		for ei, ex := range block.Exercises {
			required := s.detectEquipment(ex.Name)
			if required == "" || required == EquipmentBodyweight || equipmentAvailable(required, available) {
				continue
			}
			substitute, ok := s.findEquipmentSubstitute(ex.Name, available)
			if !ok {
				continue
			}
			changes = append(changes, fmt.Sprintf("%s -> %s (material)", ex.Name, substitute))
			day.Blocks[bi].Exercises[ei].Name = substitute
		}
	}
	return day, changes
}

// applyInjuries replaces exercises contraindicated by any reported injury.
// It runs after the equipment pass and can override its result.
func (s *Solver) applyInjuries(day plan.Day, injuries []string, changes []string) (plan.Day, []string) {
	for bi, block := range day.Blocks {
		for ei, ex := range block.Exercises {
			substitute, ok := s.findInjurySubstitute(day.Blocks[bi].Exercises[ei].Name, injuries)
			if !ok {
				continue
			}
			changes = append(changes, fmt.Sprintf("%s -> %s (injury)", ex.Name, substitute))
			day.Blocks[bi].Exercises[ei].Name = substitute
		}
	}
	return day, changes
}

// findEquipmentSubstitute looks up a replacement by original-name pattern
// whose required equipment is actually available.
func (s *Solver) findEquipmentSubstitute(name string, available []string) (string, bool) {
	lowered := strings.ToLower(name)
	for _, sub := range s.lexicon.EquipmentSubstitutions {
		if !strings.Contains(lowered, sub.NamePattern) {
			continue
		}
		if sub.RequiredEquipment == EquipmentBodyweight || equipmentAvailable(sub.RequiredEquipment, available) {
			return sub.Substitute, true
		}
	}
	return "", false
}

// findInjurySubstitute returns the first substitute whose injury keyword
// matches a reported injury and whose name pattern matches the exercise.
func (s *Solver) findInjurySubstitute(name string, injuries []string) (string, bool) {
	lowered := strings.ToLower(name)
	for _, injury := range injuries {
		loweredInjury := strings.ToLower(injury)
		for _, rule := range s.lexicon.InjuryRules {
			if !strings.Contains(loweredInjury, rule.Keyword) {
				continue
			}
			for _, sub := range rule.Substitutions {
				if strings.Contains(lowered, sub.NamePattern) {
					return sub.Substitute, true
				}
			}
		}
	}
	return "", false
}

// detectEquipment derives the equipment requirement from the exercise name.
// Empty string means no requirement was detected.
func (s *Solver) detectEquipment(name string) string {
	lowered := strings.ToLower(name)
	for _, kw := range s.lexicon.EquipmentKeywords {
		if strings.Contains(lowered, kw.Keyword) {
			return kw.Equipment
		}
	}
	return ""
}

// partitionByCompound splits exercises into compounds and accessories,
// preserving relative order within each group.
func (s *Solver) partitionByCompound(exercises []plan.Exercise) (compounds, accessories []plan.Exercise) {
	for _, ex := range exercises {
		if s.isCompound(ex.Name) {
			compounds = append(compounds, ex)
		} else {
			accessories = append(accessories, ex)
		}
	}
	return compounds, accessories
}

// isCompound reports whether the exercise name matches the compound lexicon.
func (s *Solver) isCompound(name string) bool {
	lowered := strings.ToLower(name)
	for _, pattern := range s.lexicon.CompoundPatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

// EstimateExerciseMinutes estimates an exercise as the sum over its sets of
// the explicit rest (or the 90-second default) plus a fixed work estimate,
// rounded up to whole minutes.
func EstimateExerciseMinutes(ex plan.Exercise) int {
	seconds := 0
	for _, set := range ex.Sets {
		rest := DefaultRestSeconds
		if set.RestSeconds != nil {
			rest = *set.RestSeconds
		}
		seconds += rest + WorkSecondsPerSet
	}
	return (seconds + secondsPerMinute - 1) / secondsPerMinute
}

// EstimateDayMinutes sums the exercise estimates over all blocks.
func (s *Solver) EstimateDayMinutes(day plan.Day) int {
	total := 0
	for _, block := range day.Blocks {
		for _, ex := range block.Exercises {
			total += EstimateExerciseMinutes(ex)
		}
	}
	return total
}

// isWarmUpBlock reports whether a block is a warm-up type, which is exempt
// from the outright clear when the budget is already exhausted.
func isWarmUpBlock(block plan.Block) bool {
	lowered := strings.ToLower(block.Type)
	return strings.Contains(lowered, "warm") || strings.Contains(lowered, "calentamiento")
}

// equipmentAvailable reports whether the required equipment appears in the
// available list, case-insensitively.
func equipmentAvailable(required string, available []string) bool {
	for _, a := range available {
		if strings.EqualFold(a, required) {
			return true
		}
	}
	return false
}
