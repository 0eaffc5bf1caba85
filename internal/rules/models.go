// Package rules implements the substitution rule engine: stored rules with
// AND-combined conditions and a single action, resolved first-match-wins by
// descending priority against one training session at a time.
package rules

import (
	"time"

	"github.com/myrjola/coachplan/internal/plan"
)

// ConditionKind selects which part of the evaluation context a condition
// reads.
type ConditionKind string

const (
	ConditionInjury    ConditionKind = "injury"
	ConditionPattern   ConditionKind = "pattern"
	ConditionModality  ConditionKind = "modality"
	ConditionIntensity ConditionKind = "intensity"
	ConditionEquipment ConditionKind = "equipment"
	ConditionTag       ConditionKind = "tag"
)

// Operator compares a condition value against the context.
type Operator string

const (
	OperatorContains    Operator = "contains"
	OperatorEquals      Operator = "equals"
	OperatorNotContains Operator = "not-contains"
	OperatorHasTag      Operator = "has-tag"
	OperatorNotHasTag   Operator = "not-has-tag"
)

// Condition is one predicate of a rule. All conditions of a rule must hold
// for the rule to fire.
type Condition struct {
	Kind ConditionKind `json:"kind"`
	// Value is matched case-insensitively. Empty Operator means contains.
	Value    string   `json:"value"`
	Operator Operator `json:"operator,omitempty"`
}

// ActionKind classifies what a fired rule does to the session.
type ActionKind string

const (
	ActionReplace ActionKind = "replace"
	ActionModify  ActionKind = "modify"
	ActionDelete  ActionKind = "delete"
)

// Template is the replacement content of a replace action. An empty
// Intensity falls back to the original session's intensity.
type Template struct {
	Name      string `json:"name"`
	Modality  string `json:"modality"`
	Duration  string `json:"duration"`
	Intensity string `json:"intensity,omitempty"`
}

// Overrides are the partial field overrides of a modify action. Nil fields
// keep the original value.
type Overrides struct {
	Name      *string `json:"name,omitempty"`
	Time      *string `json:"time,omitempty"`
	Duration  *string `json:"duration,omitempty"`
	Modality  *string `json:"modality,omitempty"`
	Intensity *string `json:"intensity,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// Action is what a rule does when all of its conditions hold.
type Action struct {
	Kind      ActionKind `json:"kind"`
	Template  *Template  `json:"template,omitempty"`
	Overrides *Overrides `json:"overrides,omitempty"`
}

// Rule is one stored substitution rule.
type Rule struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Active      bool        `json:"active"`
	Priority    int         `json:"priority"`
	Conditions  []Condition `json:"conditions"`
	Action      Action      `json:"action"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Context carries the caller-supplied evaluation inputs that do not live on
// the session itself.
type Context struct {
	Injuries  []string `json:"injuries,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
	// Tags are unioned with the session's own tags for tag conditions.
	Tags []string `json:"tags,omitempty"`
}

// ConditionResult records one condition evaluation, kept even when the
// condition failed so a rejected rule attempt stays traceable.
type ConditionResult struct {
	Kind     ConditionKind `json:"kind"`
	Operator Operator      `json:"operator"`
	Value    string        `json:"value"`
	Matched  bool          `json:"matched"`
}

// ApplicationResult is the outcome of resolving the rule set against one
// session.
type ApplicationResult struct {
	// Modified is true when a rule fired and changed or removed the session.
	Modified bool `json:"modified"`
	// Removed is true when the fired rule's action was delete.
	Removed bool `json:"removed"`
	// Session is the resulting session. Meaningless when Removed is true.
	Session plan.Session `json:"session"`
	// AppliedRule is the rule that fired, nil when none matched.
	AppliedRule *Rule `json:"appliedRule,omitempty"`
	// Conditions are the evaluations of the fired rule's conditions.
	Conditions []ConditionResult `json:"conditions,omitempty"`
}
