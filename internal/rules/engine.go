package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/myrjola/coachplan/internal/plan"
)

// Evaluate reports whether every condition holds against the session and
// context, returning the per-condition outcomes alongside. Failed outcomes
// are included so callers can audit why a rule did not fire.
func Evaluate(conditions []Condition, session plan.Session, ctx Context) (bool, []ConditionResult) {
	matched := true
	results := make([]ConditionResult, 0, len(conditions))
	for _, cond := range conditions {
		op := cond.Operator
		if op == "" {
			op = OperatorContains
		}
		ok := evaluateCondition(cond.Kind, op, cond.Value, session, ctx)
		results = append(results, ConditionResult{
			Kind:     cond.Kind,
			Operator: op,
			Value:    cond.Value,
			Matched:  ok,
		})
		if !ok {
			matched = false
		}
	}
	return matched, results
}

// Apply resolves the rule set against one session: only active rules are
// considered, sorted by descending priority with ties keeping store order,
// and the first rule whose conditions all hold is applied. No match returns
// the session unmodified.
func Apply(ruleset []Rule, session plan.Session, ctx Context) ApplicationResult {
	active := make([]Rule, 0, len(ruleset))
	for _, rule := range ruleset {
		if rule.Active {
			active = append(active, rule)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority > active[j].Priority
	})

	for _, rule := range active {
		matched, results := Evaluate(rule.Conditions, session, ctx)
		if !matched {
			continue
		}
		applied := rule
		result := ApplicationResult{
			Modified:    true,
			AppliedRule: &applied,
			Conditions:  results,
		}
		switch rule.Action.Kind {
		case ActionDelete:
			result.Removed = true
		case ActionModify:
			result.Session = applyOverrides(session, rule.Action.Overrides, rule.Name)
		case ActionReplace:
			result.Session = applyTemplate(session, rule.Action.Template, rule.Name)
		default:
			result.Session = session.Clone()
		}
		return result
	}

	return ApplicationResult{Modified: false, Session: session.Clone()}
}

// applyTemplate builds the replacement session: fresh identifier, template
// name/modality/duration, the original intensity when the template omits
// one, the original time and tags, and a provenance note.
func applyTemplate(session plan.Session, template *Template, ruleName string) plan.Session {
	replaced := session.Clone()
	replaced.ID = uuid.NewString()
	if template != nil {
		replaced.Name = template.Name
		replaced.Modality = template.Modality
		replaced.Duration = template.Duration
		if template.Intensity != "" {
			replaced.Intensity = template.Intensity
		}
	}
	replaced.Notes = appendProvenance(session.Notes, ruleName)
	return replaced
}

// applyOverrides copies the session with the non-nil overrides applied and a
// provenance note. The identifier is kept.
func applyOverrides(session plan.Session, overrides *Overrides, ruleName string) plan.Session {
	modified := session.Clone()
	if overrides != nil {
		if overrides.Name != nil {
			modified.Name = *overrides.Name
		}
		if overrides.Time != nil {
			modified.Time = *overrides.Time
		}
		if overrides.Duration != nil {
			modified.Duration = *overrides.Duration
		}
		if overrides.Modality != nil {
			modified.Modality = *overrides.Modality
		}
		if overrides.Intensity != nil {
			modified.Intensity = *overrides.Intensity
		}
		if overrides.Notes != nil {
			modified.Notes = *overrides.Notes
		}
	}
	modified.Notes = appendProvenance(modified.Notes, ruleName)
	return modified
}

func appendProvenance(notes, ruleName string) string {
	note := fmt.Sprintf("[Applied rule: %s]", ruleName)
	if notes == "" {
		return note
	}
	return notes + "\n" + note
}

// evaluateCondition resolves one condition. String operators match against a
// context string derived from the condition kind; tag operators match
// against the tag collection directly.
func evaluateCondition(kind ConditionKind, op Operator, value string, session plan.Session, ctx Context) bool {
	switch op {
	case OperatorHasTag:
		return hasTag(sessionTags(session, ctx), value)
	case OperatorNotHasTag:
		return !hasTag(sessionTags(session, ctx), value)
	}

	haystack := strings.ToLower(contextString(kind, session, ctx))
	needle := strings.ToLower(value)
	switch op {
	case OperatorEquals:
		return haystack == needle
	case OperatorNotContains:
		return !strings.Contains(haystack, needle)
	case OperatorContains:
		return strings.Contains(haystack, needle)
	default:
		return false
	}
}

// contextString builds the haystack for string-valued operators.
func contextString(kind ConditionKind, session plan.Session, ctx Context) string {
	switch kind {
	case ConditionInjury:
		return strings.Join(ctx.Injuries, " ")
	case ConditionPattern:
		return session.Name
	case ConditionModality:
		return session.Modality
	case ConditionIntensity:
		return session.Intensity
	case ConditionEquipment:
		return strings.Join(ctx.Equipment, " ")
	case ConditionTag:
		return strings.Join(sessionTags(session, ctx), " ")
	default:
		return ""
	}
}

// sessionTags unions the session's tags with the caller-supplied ones.
func sessionTags(session plan.Session, ctx Context) []string {
	tags := make([]string, 0, len(session.Tags)+len(ctx.Tags))
	tags = append(tags, session.Tags...)
	tags = append(tags, ctx.Tags...)
	return tags
}

func hasTag(tags []string, value string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, value) {
			return true
		}
	}
	return false
}
