package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// BulkOperationType classifies one step of a bulk edit.
type BulkOperationType string

const (
	BulkAddSession       BulkOperationType = "add-session"
	BulkRemoveSession    BulkOperationType = "remove-session"
	BulkDuplicateSession BulkOperationType = "duplicate-session"
	BulkMoveSession      BulkOperationType = "move-session"
	BulkSetProperty      BulkOperationType = "set-property"
	BulkEditMatching     BulkOperationType = "edit-matching"
)

// SessionFilter selects sessions for edit-matching operations. Empty fields
// match everything.
type SessionFilter struct {
	// Modality must match exactly.
	Modality string `json:"modality,omitempty"`
	// Intensity is matched as a substring.
	Intensity string `json:"intensity,omitempty"`
	// Tags match when the session carries at least one of them.
	Tags []string `json:"tags,omitempty"`
}

// SessionPatch holds the partial overrides of an edit-matching operation.
// Nil fields keep the original value.
type SessionPatch struct {
	Name      *string `json:"name,omitempty"`
	Time      *string `json:"time,omitempty"`
	Duration  *string `json:"duration,omitempty"`
	Modality  *string `json:"modality,omitempty"`
	Intensity *string `json:"intensity,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// BulkOperation is one step of a bulk edit over a weekly plan.
type BulkOperation struct {
	Type BulkOperationType `json:"type"`
	Day  string            `json:"day"`
	// SessionID selects the target session for every type except add.
	SessionID string `json:"sessionId,omitempty"`
	// TargetDay is the destination for move operations.
	TargetDay string `json:"targetDay,omitempty"`
	// Session is the content for add operations.
	Session *Session `json:"session,omitempty"`
	// Property and Value drive set-property operations.
	Property string `json:"property,omitempty"`
	Value    string `json:"value,omitempty"`
	// Filter and Patch drive edit-matching operations.
	Filter *SessionFilter `json:"filter,omitempty"`
	Patch  *SessionPatch  `json:"patch,omitempty"`
	// Description labels the operation in the audit log.
	Description string `json:"description,omitempty"`
}

var (
	// ErrDayNotFound is returned when an operation names an unknown day.
	ErrDayNotFound = errors.New("plan: day not found")
	// ErrSessionNotFound is returned when an operation names an unknown
	// session.
	ErrSessionNotFound = errors.New("plan: session not found")
	// ErrUnknownOperation is returned for an unrecognized operation type.
	ErrUnknownOperation = errors.New("plan: unknown bulk operation")
	// ErrUnknownProperty is returned for an untracked set-property target.
	ErrUnknownProperty = errors.New("plan: unknown session property")
)

// ApplyBulk runs the operations in order against a copy of the plan. The
// input plan is never mutated. Operations are all-or-nothing: the first
// failing operation aborts the whole edit.
func ApplyBulk(week WeekPlan, ops []BulkOperation, now time.Time) (WeekPlan, error) {
	edited := week.Clone()
	for i, op := range ops {
		if err := applyBulkOperation(edited, op, now, i); err != nil {
			return nil, fmt.Errorf("bulk operation %d (%s): %w", i, op.Type, err)
		}
	}
	return edited, nil
}

func applyBulkOperation(week WeekPlan, op BulkOperation, now time.Time, index int) error {
	switch op.Type {
	case BulkAddSession:
		return addSession(week, op, now, index)
	case BulkRemoveSession:
		return removeSession(week, op)
	case BulkDuplicateSession:
		return duplicateSession(week, op, now, index)
	case BulkMoveSession:
		return moveSession(week, op)
	case BulkSetProperty:
		return setSessionProperty(week, op)
	case BulkEditMatching:
		return editMatchingSessions(week, op)
	default:
		return ErrUnknownOperation
	}
}

func addSession(week WeekPlan, op BulkOperation, now time.Time, index int) error {
	if op.Session == nil {
		return fmt.Errorf("add-session without session content: %w", ErrUnknownOperation)
	}
	// Adding to a day the plan does not mention yet creates it. Coaches
	// leave empty days out of the week entirely.
	day := week[op.Day]
	session := op.Session.Clone()
	if session.ID == "" {
		session.ID = GenerateSessionID(op.Day, now, index)
	}
	day.Sessions = append(day.Sessions, session)
	week[op.Day] = day
	return nil
}

func removeSession(week WeekPlan, op BulkOperation) error {
	day, ok := week[op.Day]
	if !ok {
		return ErrDayNotFound
	}
	for i, session := range day.Sessions {
		if session.ID != op.SessionID {
			continue
		}
		day.Sessions = append(day.Sessions[:i], day.Sessions[i+1:]...)
		week[op.Day] = day
		return nil
	}
	return ErrSessionNotFound
}

func duplicateSession(week WeekPlan, op BulkOperation, now time.Time, index int) error {
	day, ok := week[op.Day]
	if !ok {
		return ErrDayNotFound
	}
	for _, session := range day.Sessions {
		if session.ID != op.SessionID {
			continue
		}
		copied := session.Clone()
		copied.ID = GenerateSessionID(op.Day, now, index)
		day.Sessions = append(day.Sessions, copied)
		week[op.Day] = day
		return nil
	}
	return ErrSessionNotFound
}

func moveSession(week WeekPlan, op BulkOperation) error {
	day, ok := week[op.Day]
	if !ok {
		return ErrDayNotFound
	}
	for i, session := range day.Sessions {
		if session.ID != op.SessionID {
			continue
		}
		day.Sessions = append(day.Sessions[:i], day.Sessions[i+1:]...)
		week[op.Day] = day

		// The source day must exist, but the target is created on
		// demand, same as add-session. Empty days are absent from the
		// week map.
		target := week[op.TargetDay]
		target.Sessions = append(target.Sessions, session)
		week[op.TargetDay] = target
		return nil
	}
	return ErrSessionNotFound
}

func setSessionProperty(week WeekPlan, op BulkOperation) error {
	day, ok := week[op.Day]
	if !ok {
		return ErrDayNotFound
	}
	for i, session := range day.Sessions {
		if session.ID != op.SessionID {
			continue
		}
		switch op.Property {
		case "name":
			session.Name = op.Value
		case "time":
			session.Time = op.Value
		case "duration":
			session.Duration = op.Value
		case "modality":
			session.Modality = op.Value
		case "intensity":
			session.Intensity = op.Value
		case "notes":
			session.Notes = op.Value
		default:
			return fmt.Errorf("property %q: %w", op.Property, ErrUnknownProperty)
		}
		day.Sessions[i] = session
		week[op.Day] = day
		return nil
	}
	return ErrSessionNotFound
}

// editMatchingSessions patches every session the filter accepts. Naming a
// day scopes the edit to it; an empty day edits the whole week. Matching
// nothing is not an error.
func editMatchingSessions(week WeekPlan, op BulkOperation) error {
	dayKeys := make([]string, 0, len(week))
	if op.Day != "" {
		if _, ok := week[op.Day]; !ok {
			return ErrDayNotFound
		}
		dayKeys = append(dayKeys, op.Day)
	} else {
		for dayKey := range week {
			dayKeys = append(dayKeys, dayKey)
		}
	}
	for _, dayKey := range dayKeys {
		day := week[dayKey]
		for i, session := range day.Sessions {
			if !op.Filter.matches(session) {
				continue
			}
			day.Sessions[i] = op.Patch.apply(session)
		}
		week[dayKey] = day
	}
	return nil
}

func (f *SessionFilter) matches(session Session) bool {
	if f == nil {
		return true
	}
	if f.Modality != "" && session.Modality != f.Modality {
		return false
	}
	if f.Intensity != "" && !strings.Contains(session.Intensity, f.Intensity) {
		return false
	}
	if len(f.Tags) > 0 {
		found := false
		for _, want := range f.Tags {
			for _, tag := range session.Tags {
				if tag == want {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (p *SessionPatch) apply(session Session) Session {
	if p == nil {
		return session
	}
	if p.Name != nil {
		session.Name = *p.Name
	}
	if p.Time != nil {
		session.Time = *p.Time
	}
	if p.Duration != nil {
		session.Duration = *p.Duration
	}
	if p.Modality != nil {
		session.Modality = *p.Modality
	}
	if p.Intensity != nil {
		session.Intensity = *p.Intensity
	}
	if p.Notes != nil {
		session.Notes = *p.Notes
	}
	return session
}

// GenerateSessionID builds a fresh session identifier from the day key, the
// current time in milliseconds, and the operation index.
func GenerateSessionID(day string, now time.Time, index int) string {
	return fmt.Sprintf("%s-%d-%d", day, now.UnixMilli(), index)
}
