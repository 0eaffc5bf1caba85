package main

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/myrjola/coachplan/internal/audit"
	"github.com/myrjola/coachplan/internal/contexthelpers"
	"github.com/myrjola/coachplan/internal/plan"
	"github.com/myrjola/coachplan/internal/plandiff"
)

type plansDiffRequest struct {
	Old     plan.WeekPlan `json:"old"`
	New     plan.WeekPlan `json:"new"`
	DayKeys []string      `json:"dayKeys"`
}

func (app *application) plansDiffPOST(w http.ResponseWriter, r *http.Request) {
	var req plansDiffRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	changes, err := plandiff.Diff(req.Old, req.New, req.DayKeys)
	if err != nil {
		if errors.Is(err, plandiff.ErrDayMissing) {
			app.clientError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, map[string][]plandiff.Change{"changes": changes})
}

type plansBulkRequest struct {
	ProgramID  string               `json:"programId,omitempty"`
	ClientID   string               `json:"clientId,omitempty"`
	Week       plan.WeekPlan        `json:"week"`
	Operations []plan.BulkOperation `json:"operations"`
}

type plansBulkResponse struct {
	Week    plan.WeekPlan     `json:"week"`
	Changes []plandiff.Change `json:"changes"`
}

// plansBulkPOST applies a batch of bulk operations to a weekly plan,
// diffs the outcome against the input and appends one audit record for
// the whole batch.
func (app *application) plansBulkPOST(w http.ResponseWriter, r *http.Request) {
	var req plansBulkRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	edited, err := plan.ApplyBulk(req.Week, req.Operations, time.Now())
	if err != nil {
		if errors.Is(err, plan.ErrDayNotFound) || errors.Is(err, plan.ErrSessionNotFound) ||
			errors.Is(err, plan.ErrUnknownOperation) || errors.Is(err, plan.ErrUnknownProperty) {
			app.clientError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}

	dayKeys := make([]string, 0, len(req.Week))
	for dayKey := range req.Week {
		dayKeys = append(dayKeys, dayKey)
	}
	for dayKey := range edited {
		if _, ok := req.Week[dayKey]; !ok {
			dayKeys = append(dayKeys, dayKey)
		}
	}
	// Map iteration order would leak into the response and the audit record.
	sort.Strings(dayKeys)

	changes, err := plandiff.Diff(req.Week, edited, dayKeys)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	record := audit.NewBulkRecord(req.Operations, changes, audit.RecordOptions{
		ProgramID: req.ProgramID,
		ClientID:  req.ClientID,
		Actor:     contexthelpers.ActorID(ctx),
	})
	app.auditStore.Append(ctx, record)

	app.writeJSON(w, r, http.StatusOK, plansBulkResponse{Week: edited, Changes: changes})
}
