package audit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/myrjola/coachplan/internal/plan"
	"github.com/myrjola/coachplan/internal/plandiff"
	"github.com/myrjola/coachplan/internal/rules"
)

// RecordOptions carries the optional provenance shared by both record
// constructors.
type RecordOptions struct {
	ProgramID string
	ClientID  string
	Actor     string
	Context   *RecordContext
	Metadata  map[string]string
}

// NewRuleRecord builds the audit record for one fired rule: the rule's
// name, description and priority, the condition evaluations the caller
// supplies (failed ones included), and the change records produced.
func NewRuleRecord(rule rules.Rule, conditions []rules.ConditionResult, changes []plandiff.Change, opts RecordOptions) Record {
	metadata := make(map[string]string, len(opts.Metadata)+2)
	for k, v := range opts.Metadata {
		metadata[k] = v
	}
	metadata["ruleId"] = rule.ID
	metadata["rulePriority"] = strconv.Itoa(rule.Priority)

	return Record{
		Kind:        KindRule,
		Name:        rule.Name,
		Description: rule.Description,
		ProgramID:   opts.ProgramID,
		ClientID:    opts.ClientID,
		Actor:       opts.Actor,
		Conditions:  conditions,
		Changes:     changes,
		Context:     opts.Context,
		Result:      summarize(changes),
		Metadata:    metadata,
	}
}

// NewBulkRecord builds the audit record for a batch of bulk operations. The
// name and description are synthesized from the operation list, and every
// operation is recorded as an unconditionally-true applied condition.
func NewBulkRecord(ops []plan.BulkOperation, changes []plandiff.Change, opts RecordOptions) Record {
	conditions := make([]rules.ConditionResult, 0, len(ops))
	for _, op := range ops {
		conditions = append(conditions, rules.ConditionResult{
			Kind:     "applied",
			Operator: rules.OperatorEquals,
			Value:    describeOperation(op),
			Matched:  true,
		})
	}

	return Record{
		Kind:        KindBulkOperation,
		Name:        fmt.Sprintf("Bulk edit (%d operations)", len(ops)),
		Description: describeOperations(ops),
		ProgramID:   opts.ProgramID,
		ClientID:    opts.ClientID,
		Actor:       opts.Actor,
		Conditions:  conditions,
		Changes:     changes,
		Context:     opts.Context,
		Result:      summarize(changes),
		Metadata:    opts.Metadata,
	}
}

// summarize aggregates distinct session and day counts from the change
// records.
func summarize(changes []plandiff.Change) Summary {
	sessions := make(map[string]struct{})
	days := make(map[string]struct{})
	for _, change := range changes {
		if change.SessionID != "" {
			sessions[change.SessionID] = struct{}{}
		}
		if change.Day != "" {
			days[change.Day] = struct{}{}
		}
	}
	return Summary{
		SessionsAffected: len(sessions),
		DaysAffected:     len(days),
		Success:          true,
	}
}

func describeOperation(op plan.BulkOperation) string {
	if op.Description != "" {
		return op.Description
	}
	if op.Day == "" {
		return fmt.Sprintf("%s on the whole week", op.Type)
	}
	return fmt.Sprintf("%s on %s", op.Type, op.Day)
}

func describeOperations(ops []plan.BulkOperation) string {
	described := make([]string, 0, len(ops))
	for _, op := range ops {
		described = append(described, describeOperation(op))
	}
	return strings.Join(described, "; ")
}
