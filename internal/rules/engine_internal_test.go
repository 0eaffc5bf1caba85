package rules

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/coachplan/internal/plan"
	"github.com/myrjola/coachplan/internal/ptr"
)

func testTime() time.Time {
	return time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func newTestSession() plan.Session {
	return plan.Session{
		ID:        "mon-1",
		Name:      "Overhead Press",
		Time:      "09:00",
		Duration:  "60 min",
		Modality:  "fuerza",
		Intensity: "alta",
		Notes:     "Técnica estricta",
		Tags:      []string{"fuerza", "empuje"},
	}
}

func TestEvaluate(t *testing.T) {
	session := newTestSession()
	ctx := Context{
		Injuries:  []string{"rotator cuff, shoulder"},
		Equipment: []string{"mancuernas", "banda"},
		Tags:      []string{"descarga"},
	}

	tests := []struct {
		name      string
		condition Condition
		want      bool
	}{
		{
			name:      "injury contains",
			condition: Condition{Kind: ConditionInjury, Value: "shoulder", Operator: OperatorContains},
			want:      true,
		},
		{
			name:      "injury contains misses",
			condition: Condition{Kind: ConditionInjury, Value: "knee", Operator: OperatorContains},
			want:      false,
		},
		{
			name:      "pattern is case-insensitive",
			condition: Condition{Kind: ConditionPattern, Value: "PRESS", Operator: OperatorContains},
			want:      true,
		},
		{
			name:      "empty operator defaults to contains",
			condition: Condition{Kind: ConditionPattern, Value: "press"},
			want:      true,
		},
		{
			name:      "modality equals",
			condition: Condition{Kind: ConditionModality, Value: "fuerza", Operator: OperatorEquals},
			want:      true,
		},
		{
			name:      "modality equals is not substring",
			condition: Condition{Kind: ConditionModality, Value: "fuer", Operator: OperatorEquals},
			want:      false,
		},
		{
			name:      "intensity not-contains",
			condition: Condition{Kind: ConditionIntensity, Value: "ligera", Operator: OperatorNotContains},
			want:      true,
		},
		{
			name:      "equipment contains",
			condition: Condition{Kind: ConditionEquipment, Value: "banda", Operator: OperatorContains},
			want:      true,
		},
		{
			name:      "has-tag matches session tag",
			condition: Condition{Kind: ConditionTag, Value: "Empuje", Operator: OperatorHasTag},
			want:      true,
		},
		{
			name:      "has-tag matches context tag",
			condition: Condition{Kind: ConditionTag, Value: "descarga", Operator: OperatorHasTag},
			want:      true,
		},
		{
			name:      "has-tag is exact per tag",
			condition: Condition{Kind: ConditionTag, Value: "empu", Operator: OperatorHasTag},
			want:      false,
		},
		{
			name:      "not-has-tag",
			condition: Condition{Kind: ConditionTag, Value: "cardio", Operator: OperatorNotHasTag},
			want:      true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, results := Evaluate([]Condition{tt.condition}, session, ctx)
			if matched != tt.want {
				t.Errorf("Evaluate() = %v, want %v", matched, tt.want)
			}
			if len(results) != 1 || results[0].Matched != tt.want {
				t.Errorf("condition results = %+v, want one result with Matched=%v", results, tt.want)
			}
		})
	}
}

func TestEvaluateRecordsFailedConditions(t *testing.T) {
	session := newTestSession()
	conditions := []Condition{
		{Kind: ConditionPattern, Value: "press", Operator: OperatorContains},
		{Kind: ConditionInjury, Value: "knee", Operator: OperatorContains},
	}

	matched, results := Evaluate(conditions, session, Context{Injuries: []string{"shoulder"}})

	if matched {
		t.Error("expected the rule not to match")
	}
	want := []ConditionResult{
		{Kind: ConditionPattern, Operator: OperatorContains, Value: "press", Matched: true},
		{Kind: ConditionInjury, Operator: OperatorContains, Value: "knee", Matched: false},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyReplaceAction(t *testing.T) {
	session := newTestSession()
	ruleset := []Rule{{
		ID:       "r1",
		Name:     "Sustitución de press por hombro",
		Active:   true,
		Priority: 8,
		Conditions: []Condition{
			{Kind: ConditionInjury, Value: "shoulder", Operator: OperatorContains},
			{Kind: ConditionPattern, Value: "press", Operator: OperatorContains},
		},
		Action: Action{
			Kind:     ActionReplace,
			Template: &Template{Name: "Press en máquina", Modality: "fuerza", Duration: "45 min"},
		},
	}}

	result := Apply(ruleset, session, Context{Injuries: []string{"rotator cuff, shoulder"}})

	if !result.Modified {
		t.Fatal("expected the rule to fire")
	}
	if result.AppliedRule == nil || result.AppliedRule.ID != "r1" {
		t.Fatalf("unexpected applied rule: %+v", result.AppliedRule)
	}
	got := result.Session
	if got.ID == session.ID || got.ID == "" {
		t.Errorf("replacement must assign a fresh identifier, got %q", got.ID)
	}
	if got.Name != "Press en máquina" || got.Modality != "fuerza" || got.Duration != "45 min" {
		t.Errorf("template fields not adopted: %+v", got)
	}
	if got.Intensity != "alta" {
		t.Errorf("expected fallback to the original intensity, got %q", got.Intensity)
	}
	wantNotes := "Técnica estricta\n[Applied rule: Sustitución de press por hombro]"
	if got.Notes != wantNotes {
		t.Errorf("notes = %q, want %q", got.Notes, wantNotes)
	}
	if diff := cmp.Diff(session.Tags, got.Tags); diff != "" {
		t.Errorf("tags must be preserved (-want +got):\n%s", diff)
	}
}

func TestApplyReplaceTemplateIntensityWins(t *testing.T) {
	session := newTestSession()
	ruleset := []Rule{{
		ID:       "r1",
		Name:     "Descarga",
		Active:   true,
		Priority: 1,
		Conditions: []Condition{
			{Kind: ConditionPattern, Value: "press"},
		},
		Action: Action{
			Kind:     ActionReplace,
			Template: &Template{Name: "Press ligero", Modality: "fuerza", Duration: "30 min", Intensity: "ligera"},
		},
	}}

	result := Apply(ruleset, session, Context{})

	if got := result.Session.Intensity; got != "ligera" {
		t.Errorf("expected the template intensity, got %q", got)
	}
}

func TestApplyModifyAction(t *testing.T) {
	session := newTestSession()
	ruleset := []Rule{{
		ID:       "r1",
		Name:     "Reducción de intensidad",
		Active:   true,
		Priority: 5,
		Conditions: []Condition{
			{Kind: ConditionIntensity, Value: "alta", Operator: OperatorEquals},
		},
		Action: Action{
			Kind:      ActionModify,
			Overrides: &Overrides{Intensity: ptr.Ref("moderada")},
		},
	}}

	result := Apply(ruleset, session, Context{})

	got := result.Session
	if got.ID != session.ID {
		t.Errorf("modify must keep the identifier, got %q", got.ID)
	}
	if got.Intensity != "moderada" {
		t.Errorf("intensity override not applied, got %q", got.Intensity)
	}
	if got.Name != session.Name || got.Duration != session.Duration {
		t.Errorf("unoverridden fields must be kept: %+v", got)
	}
	if !strings.HasSuffix(got.Notes, "[Applied rule: Reducción de intensidad]") {
		t.Errorf("missing provenance note, notes = %q", got.Notes)
	}
}

func TestApplyDeleteAction(t *testing.T) {
	session := newTestSession()
	ruleset := []Rule{{
		ID:         "r1",
		Name:       "Eliminar duplicados",
		Active:     true,
		Priority:   1,
		Conditions: []Condition{{Kind: ConditionPattern, Value: "press"}},
		Action:     Action{Kind: ActionDelete},
	}}

	result := Apply(ruleset, session, Context{})

	if !result.Modified || !result.Removed {
		t.Errorf("expected a removal, got %+v", result)
	}
}

func TestApplyHigherPriorityWins(t *testing.T) {
	session := newTestSession()
	low := Rule{
		ID: "low", Name: "low", Active: true, Priority: 3,
		Conditions: []Condition{{Kind: ConditionPattern, Value: "press"}},
		Action:     Action{Kind: ActionModify, Overrides: &Overrides{Intensity: ptr.Ref("ligera")}},
	}
	high := Rule{
		ID: "high", Name: "high", Active: true, Priority: 9,
		Conditions: []Condition{{Kind: ConditionPattern, Value: "press"}},
		Action:     Action{Kind: ActionModify, Overrides: &Overrides{Intensity: ptr.Ref("moderada")}},
	}

	// Store order lists the low-priority rule first.
	result := Apply([]Rule{low, high}, session, Context{})

	if result.AppliedRule == nil || result.AppliedRule.ID != "high" {
		t.Errorf("expected the higher-priority rule to fire, got %+v", result.AppliedRule)
	}
}

func TestApplyPriorityTieKeepsStoreOrder(t *testing.T) {
	session := newTestSession()
	first := Rule{
		ID: "first", Name: "first", Active: true, Priority: 5,
		Conditions: []Condition{{Kind: ConditionPattern, Value: "press"}},
		Action:     Action{Kind: ActionModify, Overrides: &Overrides{Intensity: ptr.Ref("ligera")}},
	}
	second := Rule{
		ID: "second", Name: "second", Active: true, Priority: 5,
		Conditions: []Condition{{Kind: ConditionPattern, Value: "press"}},
		Action:     Action{Kind: ActionModify, Overrides: &Overrides{Intensity: ptr.Ref("moderada")}},
	}

	result := Apply([]Rule{first, second}, session, Context{})

	if result.AppliedRule == nil || result.AppliedRule.ID != "first" {
		t.Errorf("expected the earlier stored rule to win the tie, got %+v", result.AppliedRule)
	}
}

func TestApplySkipsInactiveRules(t *testing.T) {
	session := newTestSession()
	inactive := Rule{
		ID: "inactive", Name: "inactive", Active: false, Priority: 9,
		Conditions: []Condition{{Kind: ConditionPattern, Value: "press"}},
		Action:     Action{Kind: ActionDelete},
	}

	result := Apply([]Rule{inactive}, session, Context{})

	if result.Modified {
		t.Errorf("inactive rule must not fire, got %+v", result)
	}
	if diff := cmp.Diff(session, result.Session); diff != "" {
		t.Errorf("session must be returned unmodified (-want +got):\n%s", diff)
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	session := newTestSession()

	// Re-resolving the same inputs returns the same applied rule.
	ctx := Context{Injuries: []string{"rotator cuff, shoulder"}}
	first := Apply(SeedRules(testTime()), session, ctx)
	second := Apply(SeedRules(testTime()), session, ctx)

	if first.AppliedRule == nil || second.AppliedRule == nil {
		t.Fatal("expected a rule to fire on both calls")
	}
	if first.AppliedRule.ID != second.AppliedRule.ID {
		t.Errorf("applied rule differs between calls: %q vs %q", first.AppliedRule.ID, second.AppliedRule.ID)
	}
}

func TestApplySeededShoulderRule(t *testing.T) {
	session := newTestSession()

	result := Apply(SeedRules(testTime()), session, Context{Injuries: []string{"rotator cuff, shoulder"}})

	if result.AppliedRule == nil || result.AppliedRule.ID != "seed-shoulder-press" {
		t.Fatalf("expected the seeded shoulder rule, got %+v", result.AppliedRule)
	}
	if result.AppliedRule.Priority != 8 {
		t.Errorf("seeded shoulder rule priority = %d, want 8", result.AppliedRule.Priority)
	}
	if result.Session.Name != "Press en máquina" {
		t.Errorf("expected the machine press template, got %q", result.Session.Name)
	}
}
