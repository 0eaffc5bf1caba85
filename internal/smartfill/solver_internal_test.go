package smartfill

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/coachplan/internal/plan"
	"github.com/myrjola/coachplan/internal/ptr"
)

// newTestExercise builds an exercise with the given number of identical sets.
func newTestExercise(id, name string, sets int, restSeconds int) plan.Exercise {
	ex := plan.Exercise{ID: id, Name: name, Sets: make([]plan.Set, sets)}
	for i := range ex.Sets {
		ex.Sets[i] = plan.Set{Reps: "8-12", RestSeconds: ptr.Ref(restSeconds)}
	}
	return ex
}

func TestEstimateExerciseMinutes(t *testing.T) {
	tests := []struct {
		name string
		ex   plan.Exercise
		want int
	}{
		{
			name: "three sets with 90s rest round up",
			ex:   newTestExercise("e1", "Sentadilla", 3, 90),
			want: 7, // 3 * (90 + 45) = 405s
		},
		{
			name: "default rest when unset",
			ex: plan.Exercise{ID: "e2", Name: "Curl", Sets: []plan.Set{
				{Reps: "10"}, {Reps: "10"},
			}},
			want: 5, // 2 * (90 + 45) = 270s
		},
		{
			name: "no sets",
			ex:   plan.Exercise{ID: "e3", Name: "Plancha"},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateExerciseMinutes(tt.ex); got != tt.want {
				t.Errorf("EstimateExerciseMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveTimeBudgetTruncatesSets(t *testing.T) {
	solver := NewSolver(DefaultLexicon())
	day := plan.Day{
		ID:   "d1",
		Name: "Lunes",
		Blocks: []plan.Block{
			{ID: "b1", Type: "strength", Exercises: []plan.Exercise{
				newTestExercise("e1", "Sentadilla con barra", 3, 90),
			}},
		},
	}

	// Full estimate is 7 min; at the flat 2 min/set reduction only 2 sets fit.
	result := solver.Resolve(day, plan.Constraints{TimeBudgetMinutes: ptr.Ref(5)})

	gotSets := len(result.Day.Blocks[0].Exercises[0].Sets)
	if gotSets != 2 {
		t.Errorf("expected truncation to 2 sets, got %d", gotSets)
	}
	if result.Day.Blocks[0].Exercises[0].ID != "e1" {
		t.Errorf("truncation must keep the original exercise id, got %q", result.Day.Blocks[0].Exercises[0].ID)
	}
	if len(result.Changes) != 2 {
		t.Fatalf("expected truncation change plus budget summary, got %v", result.Changes)
	}
	if result.EstimatedMinutes > 5 {
		t.Errorf("estimated minutes %d exceeds budget", result.EstimatedMinutes)
	}
}

func TestResolveTimeBudgetDropsUnaffordableExercise(t *testing.T) {
	solver := NewSolver(DefaultLexicon())
	day := plan.Day{
		ID: "d1",
		Blocks: []plan.Block{
			{ID: "b1", Type: "strength", Exercises: []plan.Exercise{
				newTestExercise("e1", "Peso muerto", 3, 90),
				newTestExercise("e2", "Curl de bíceps", 2, 60),
			}},
		},
	}

	// 1 minute affords zero sets of anything: the compound is dropped
	// silently and so is the accessory.
	result := solver.Resolve(day, plan.Constraints{TimeBudgetMinutes: ptr.Ref(1)})

	if got := len(result.Day.Blocks[0].Exercises); got != 0 {
		t.Errorf("expected all exercises dropped, got %d", got)
	}
	// Only the global budget summary is recorded for full drops.
	if len(result.Changes) != 1 {
		t.Errorf("expected only the budget summary change, got %v", result.Changes)
	}
}

func TestResolveTimeBudgetClearsLaterBlockWhenExhausted(t *testing.T) {
	solver := NewSolver(DefaultLexicon())
	day := plan.Day{
		ID: "d1",
		Blocks: []plan.Block{
			{ID: "b1", Type: "strength", Exercises: []plan.Exercise{
				newTestExercise("e1", "Press banca con barra", 3, 90),
			}},
			{ID: "b2", Type: "conditioning", Exercises: []plan.Exercise{
				newTestExercise("e2", "Burpees", 3, 60),
			}},
		},
	}

	// 7 minutes fits exactly the first exercise, leaving zero for the
	// conditioning block, which is cleared outright.
	result := solver.Resolve(day, plan.Constraints{TimeBudgetMinutes: ptr.Ref(7)})

	if got := len(result.Day.Blocks[0].Exercises); got != 1 {
		t.Errorf("expected the first block kept in full, got %d exercises", got)
	}
	if got := len(result.Day.Blocks[1].Exercises); got != 0 {
		t.Errorf("expected the exhausted conditioning block cleared, got %d exercises", got)
	}
}

func TestResolveTimeBudgetKeepsWarmUpWhenExhausted(t *testing.T) {
	solver := NewSolver(DefaultLexicon())
	day := plan.Day{
		ID: "d1",
		Blocks: []plan.Block{
			{ID: "b1", Type: "strength", Exercises: []plan.Exercise{
				newTestExercise("e1", "Press banca con barra", 3, 90),
			}},
			{ID: "b2", Type: "warm-up", Exercises: []plan.Exercise{
				newTestExercise("e2", "Movilidad de cadera", 1, 30),
			}},
		},
	}

	result := solver.Resolve(day, plan.Constraints{TimeBudgetMinutes: ptr.Ref(7)})

	// Warm-up blocks are exempt from the outright clear; their exercises
	// still go through the greedy loop and are dropped one by one.
	if got := len(result.Day.Blocks[1].Exercises); got != 0 {
		t.Errorf("expected warm-up exercises dropped by the greedy loop, got %d", got)
	}
}

func TestResolveCompoundsKeptBeforeAccessories(t *testing.T) {
	solver := NewSolver(DefaultLexicon())
	day := plan.Day{
		ID: "d1",
		Blocks: []plan.Block{
			{ID: "b1", Type: "strength", Exercises: []plan.Exercise{
				newTestExercise("e1", "Curl de bíceps", 2, 60), // accessory, listed first
				newTestExercise("e2", "Sentadilla", 2, 60),    // compound
			}},
		},
	}

	// 4 minutes fits exactly one two-set exercise (2 * (60+45) = 210s -> 4 min).
	result := solver.Resolve(day, plan.Constraints{TimeBudgetMinutes: ptr.Ref(4)})

	kept := result.Day.Blocks[0].Exercises
	if len(kept) != 1 || kept[0].ID != "e2" {
		t.Errorf("expected the compound kept in preference to the accessory, got %+v", kept)
	}
}

func TestResolveEquipmentSubstitution(t *testing.T) {
	solver := NewSolver(DefaultLexicon())
	day := plan.Day{
		ID: "d1",
		Blocks: []plan.Block{
			{ID: "b1", Type: "strength", Exercises: []plan.Exercise{
				newTestExercise("e1", "Barbell Bench Press", 3, 90),
			}},
		},
	}

	result := solver.Resolve(day, plan.Constraints{AvailableEquipment: []string{"bodyweight"}})

	got := result.Day.Blocks[0].Exercises[0]
	if got.Name != "Flexiones" {
		t.Errorf("expected substitution to Flexiones, got %q", got.Name)
	}
	if got.ID != "e1" {
		t.Errorf("equipment substitution must keep the exercise id, got %q", got.ID)
	}
	wantChanges := []string{"Barbell Bench Press -> Flexiones (material)"}
	if diff := cmp.Diff(wantChanges, result.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEquipmentWithoutSubstituteLeavesExercise(t *testing.T) {
	solver := NewSolver(DefaultLexicon())
	day := plan.Day{
		ID: "d1",
		Blocks: []plan.Block{
			{ID: "b1", Type: "strength", Exercises: []plan.Exercise{
				newTestExercise("e1", "Extensión de tríceps en polea", 3, 60),
			}},
		},
	}

	result := solver.Resolve(day, plan.Constraints{AvailableEquipment: []string{"dumbbell"}})

	if got := result.Day.Blocks[0].Exercises[0].Name; got != "Extensión de tríceps en polea" {
		t.Errorf("expected best-effort pass to leave the exercise untouched, got %q", got)
	}
	if len(result.Changes) != 0 {
		t.Errorf("expected no changes, got %v", result.Changes)
	}
}

func TestResolveInjurySubstitution(t *testing.T) {
	solver := NewSolver(DefaultLexicon())
	day := plan.Day{
		ID: "d1",
		Blocks: []plan.Block{
			{ID: "b1", Type: "strength", Exercises: []plan.Exercise{
				newTestExercise("e1", "Overhead Press", 3, 90),
			}},
		},
	}

	result := solver.Resolve(day, plan.Constraints{Injuries: []string{"rotator cuff, shoulder"}})

	if got := result.Day.Blocks[0].Exercises[0].Name; got != "Elevaciones laterales" {
		t.Errorf("expected shoulder-safe substitution, got %q", got)
	}
	wantChanges := []string{"Overhead Press -> Elevaciones laterales (injury)"}
	if diff := cmp.Diff(wantChanges, result.Changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveInjuryOverridesEquipmentSubstitution(t *testing.T) {
	solver := NewSolver(DefaultLexicon())
	day := plan.Day{
		ID: "d1",
		Blocks: []plan.Block{
			{ID: "b1", Type: "strength", Exercises: []plan.Exercise{
				newTestExercise("e1", "Barbell Bench Press", 3, 90),
			}},
		},
	}

	result := solver.Resolve(day, plan.Constraints{
		AvailableEquipment: []string{"bodyweight"},
		Injuries:           []string{"shoulder impingement"},
	})

	// The equipment pass renames to Flexiones first; the injury pass then
	// sees the new name, which no shoulder pattern matches.
	if got := result.Day.Blocks[0].Exercises[0].Name; got != "Flexiones" {
		t.Errorf("got %q", got)
	}
}

func TestResolveUnconstrainedIsIdempotent(t *testing.T) {
	solver := NewSolver(DefaultLexicon())
	day := plan.Day{
		ID:   "d1",
		Name: "Lunes",
		Tags: []plan.Tag{{ID: "t1", Label: "Fuerza", Color: "red", Category: "focus"}},
		Blocks: []plan.Block{
			{ID: "b1", Type: "strength", Exercises: []plan.Exercise{
				newTestExercise("e1", "Sentadilla", 3, 90),
				newTestExercise("e2", "Curl", 2, 60),
			}},
		},
	}

	once := solver.Resolve(day, plan.Constraints{})
	twice := solver.Resolve(once.Day, plan.Constraints{})

	if diff := cmp.Diff(once.Day, twice.Day); diff != "" {
		t.Errorf("resolve is not idempotent without constraints (-once +twice):\n%s", diff)
	}
	if len(once.Changes) != 0 {
		t.Errorf("expected no changes without constraints, got %v", once.Changes)
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	solver := NewSolver(DefaultLexicon())
	day := plan.Day{
		ID: "d1",
		Blocks: []plan.Block{
			{ID: "b1", Type: "strength", Exercises: []plan.Exercise{
				newTestExercise("e1", "Barbell Bench Press", 3, 90),
			}},
		},
	}
	snapshot := day.Clone()

	solver.Resolve(day, plan.Constraints{
		TimeBudgetMinutes:  ptr.Ref(5),
		AvailableEquipment: []string{"bodyweight"},
	})

	if diff := cmp.Diff(snapshot, day); diff != "" {
		t.Errorf("input day was mutated (-before +after):\n%s", diff)
	}
}
