// Package audit persists the automation log: one append-only record per
// automation event, carrying the provenance (which rule or bulk operation),
// the condition evaluations, and the resulting change records.
package audit

import (
	"time"

	"github.com/myrjola/coachplan/internal/plandiff"
	"github.com/myrjola/coachplan/internal/rules"
)

// Kind classifies the automation that produced a record.
type Kind string

const (
	KindRule                Kind = "rule"
	KindBulkOperation       Kind = "bulk-operation"
	KindChainedRule         Kind = "chained-rule"
	KindRecurringAutomation Kind = "recurring-automation"
	KindManualSubstitution  Kind = "manual-substitution"
	KindBatchOperation      Kind = "batch-operation"
)

// Summary aggregates the outcome of one automation event.
type Summary struct {
	SessionsAffected int      `json:"sessionsAffected"`
	DaysAffected     int      `json:"daysAffected"`
	Success          bool     `json:"success"`
	Errors           []string `json:"errors,omitempty"`
}

// RecordContext captures the constraint inputs active when the automation
// ran.
type RecordContext struct {
	Injuries  []string `json:"injuries,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Record is one persisted automation log entry. Records are created once and
// never edited; only the retention policy removes them.
type Record struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProgramID   string `json:"programId,omitempty"`
	ClientID    string `json:"clientId,omitempty"`
	// Actor identifies who triggered the automation.
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	// Conditions include failed evaluations so rejected rule attempts stay
	// traceable.
	Conditions []rules.ConditionResult `json:"conditions,omitempty"`
	Changes    []plandiff.Change       `json:"changes,omitempty"`
	Context    *RecordContext          `json:"context,omitempty"`
	Result     Summary                 `json:"result"`
	Metadata   map[string]string       `json:"metadata,omitempty"`
}

// Filters narrow a List call. Zero values mean "any".
type Filters struct {
	ProgramID string
	ClientID  string
	Kind      Kind
	// From and To bound the record timestamp inclusively.
	From time.Time
	To   time.Time
}
