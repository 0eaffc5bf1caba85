// Package plandiff computes typed change records between two snapshots of a
// weekly plan. It is pure computation: the result depends only on the inputs
// and the order of the supplied day keys.
package plandiff

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/myrjola/coachplan/internal/plan"
)

// ChangeKind classifies one change record.
type ChangeKind string

const (
	ChangeSessionAdded      ChangeKind = "session-added"
	ChangeSessionRemoved    ChangeKind = "session-removed"
	ChangeSessionModified   ChangeKind = "session-modified"
	ChangeSessionMoved      ChangeKind = "session-moved"
	ChangeSessionDuplicated ChangeKind = "session-duplicated"
	ChangePropertyModified  ChangeKind = "property-modified"
	ChangeDayModified       ChangeKind = "day-modified"
)

// Change is one atomic difference between two plan snapshots.
type Change struct {
	Kind        ChangeKind `json:"kind"`
	Day         string     `json:"day"`
	SessionID   string     `json:"sessionId,omitempty"`
	SessionName string     `json:"sessionName,omitempty"`
	// Property names the differing field for property-modified records; a
	// property-modified record always carries both values, even when one is
	// empty.
	Property string `json:"property,omitempty"`
	OldValue string `json:"oldValue,omitempty"`
	NewValue string `json:"newValue,omitempty"`
	// Details carries free-form context, such as bulk-operation parameters.
	Details map[string]string `json:"details,omitempty"`
}

// ErrDayMissing is returned when a requested day key exists in neither plan.
var ErrDayMissing = errors.New("plandiff: day key missing from both plans")

// trackedProperty is one session field compared between snapshots.
type trackedProperty struct {
	name string
	get  func(plan.Session) string
}

// trackedProperties is the fixed comparison list. Tags are handled
// separately as a set.
var trackedProperties = []trackedProperty{
	{name: "name", get: func(s plan.Session) string { return s.Name }},
	{name: "time", get: func(s plan.Session) string { return s.Time }},
	{name: "duration", get: func(s plan.Session) string { return s.Duration }},
	{name: "modality", get: func(s plan.Session) string { return s.Modality }},
	{name: "intensity", get: func(s plan.Session) string { return s.Intensity }},
	{name: "notes", get: func(s plan.Session) string { return s.Notes }},
}

// Diff compares two weekly plans over the given day keys. Sessions are
// matched by identifier, so reordering sessions without other changes
// produces no records. A day key present in neither plan is a caller bug and
// returns ErrDayMissing.
func Diff(oldPlan, newPlan plan.WeekPlan, dayKeys []string) ([]Change, error) {
	changes := []Change{}
	for _, dayKey := range dayKeys {
		oldDay, inOld := oldPlan[dayKey]
		newDay, inNew := newPlan[dayKey]

		switch {
		case !inOld && !inNew:
			return nil, fmt.Errorf("diff day %s: %w", dayKey, ErrDayMissing)
		case !inOld:
			for _, session := range newDay.Sessions {
				changes = append(changes, sessionChange(ChangeSessionAdded, dayKey, session))
			}
		case !inNew:
			for _, session := range oldDay.Sessions {
				changes = append(changes, sessionChange(ChangeSessionRemoved, dayKey, session))
			}
		default:
			changes = append(changes, diffDay(dayKey, oldDay, newDay)...)
		}
	}
	return changes, nil
}

// diffDay matches sessions by identifier and compares the matched pairs.
func diffDay(dayKey string, oldDay, newDay plan.DayPlan) []Change {
	var changes []Change

	newByID := make(map[string]plan.Session, len(newDay.Sessions))
	for _, session := range newDay.Sessions {
		newByID[session.ID] = session
	}
	oldByID := make(map[string]plan.Session, len(oldDay.Sessions))
	for _, session := range oldDay.Sessions {
		oldByID[session.ID] = session
	}

	for _, oldSession := range oldDay.Sessions {
		newSession, ok := newByID[oldSession.ID]
		if !ok {
			changes = append(changes, sessionChange(ChangeSessionRemoved, dayKey, oldSession))
			continue
		}
		changes = append(changes, diffSession(dayKey, oldSession, newSession)...)
	}
	for _, newSession := range newDay.Sessions {
		if _, ok := oldByID[newSession.ID]; !ok {
			changes = append(changes, sessionChange(ChangeSessionAdded, dayKey, newSession))
		}
	}

	return changes
}

// diffSession compares one matched session pair field by field, emitting one
// record per differing tracked property plus one for a changed tag set.
func diffSession(dayKey string, oldSession, newSession plan.Session) []Change {
	var changes []Change

	for _, prop := range trackedProperties {
		oldValue := prop.get(oldSession)
		newValue := prop.get(newSession)
		if oldValue == newValue {
			continue
		}
		changes = append(changes, Change{
			Kind:        ChangePropertyModified,
			Day:         dayKey,
			SessionID:   oldSession.ID,
			SessionName: oldSession.Name,
			Property:    prop.name,
			OldValue:    oldValue,
			NewValue:    newValue,
		})
	}

	oldTags := joinedTagSet(oldSession.Tags)
	newTags := joinedTagSet(newSession.Tags)
	if oldTags != newTags {
		changes = append(changes, Change{
			Kind:        ChangeSessionModified,
			Day:         dayKey,
			SessionID:   oldSession.ID,
			SessionName: oldSession.Name,
			Property:    "tags",
			OldValue:    oldTags,
			NewValue:    newTags,
		})
	}

	return changes
}

func sessionChange(kind ChangeKind, dayKey string, session plan.Session) Change {
	return Change{
		Kind:        kind,
		Day:         dayKey,
		SessionID:   session.ID,
		SessionName: session.Name,
	}
}

// joinedTagSet normalizes a tag list into a comparable string. Order does
// not matter, duplicates do.
func joinedTagSet(tags []string) string {
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
