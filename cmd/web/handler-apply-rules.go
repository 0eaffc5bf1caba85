package main

import (
	"net/http"

	"github.com/myrjola/coachplan/internal/audit"
	"github.com/myrjola/coachplan/internal/contexthelpers"
	"github.com/myrjola/coachplan/internal/plan"
	"github.com/myrjola/coachplan/internal/plandiff"
	"github.com/myrjola/coachplan/internal/rules"
)

type applyRulesRequest struct {
	ProgramID string         `json:"programId,omitempty"`
	ClientID  string         `json:"clientId,omitempty"`
	DayKey    string         `json:"dayKey,omitempty"`
	Sessions  []plan.Session `json:"sessions"`
	Context   rules.Context  `json:"context"`
}

type applyRulesResponse struct {
	// Sessions is the resulting session list, deleted sessions omitted.
	Sessions []plan.Session            `json:"sessions"`
	Results  []rules.ApplicationResult `json:"results"`
	Changes  []plandiff.Change         `json:"changes"`
}

// applyRulesPOST resolves the stored rule set against each submitted session
// and appends one audit record per fired rule.
func (app *application) applyRulesPOST(w http.ResponseWriter, r *http.Request) {
	var req applyRulesRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	ruleset, err := app.ruleStore.List(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	dayKey := req.DayKey
	if dayKey == "" {
		dayKey = "monday"
	}
	recordCtx := &audit.RecordContext{
		Injuries:  req.Context.Injuries,
		Equipment: req.Context.Equipment,
		Tags:      req.Context.Tags,
	}
	opts := audit.RecordOptions{
		ProgramID: req.ProgramID,
		ClientID:  req.ClientID,
		Actor:     contexthelpers.ActorID(ctx),
		Context:   recordCtx,
	}

	results := make([]rules.ApplicationResult, 0, len(req.Sessions))
	after := make([]plan.Session, 0, len(req.Sessions))
	allChanges := make([]plandiff.Change, 0)

	for _, session := range req.Sessions {
		result := rules.Apply(ruleset, session, req.Context)
		results = append(results, result)

		newSessions := make([]plan.Session, 0, 1)
		if !result.Removed {
			newSessions = append(newSessions, result.Session)
			after = append(after, result.Session)
		}

		before := plan.WeekPlan{dayKey: {Sessions: []plan.Session{session}}}
		resolved := plan.WeekPlan{dayKey: {Sessions: newSessions}}
		changes, diffErr := plandiff.Diff(before, resolved, []string{dayKey})
		if diffErr != nil {
			app.serverError(w, r, diffErr)
			return
		}
		allChanges = append(allChanges, changes...)

		if result.AppliedRule != nil {
			record := audit.NewRuleRecord(*result.AppliedRule, result.Conditions, changes, opts)
			app.auditStore.Append(ctx, record)
		}
	}

	app.writeJSON(w, r, http.StatusOK, applyRulesResponse{
		Sessions: after,
		Results:  results,
		Changes:  allChanges,
	})
}
