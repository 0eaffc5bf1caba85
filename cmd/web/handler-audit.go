package main

import (
	"net/http"
	"time"

	"github.com/myrjola/coachplan/internal/audit"
)

func (app *application) auditGET(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := audit.Filters{
		ProgramID: query.Get("programId"),
		ClientID:  query.Get("clientId"),
		Kind:      audit.Kind(query.Get("kind")),
	}

	if from := query.Get("from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			app.clientError(w, r, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		filters.From = parsed
	}
	if to := query.Get("to"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			app.clientError(w, r, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		filters.To = parsed
	}

	records := app.auditStore.List(r.Context(), filters)
	app.writeJSON(w, r, http.StatusOK, map[string][]audit.Record{"records": records})
}

type auditTrimRequest struct {
	MaxAgeDays int `json:"maxAgeDays"`
}

func (app *application) auditTrimPOST(w http.ResponseWriter, r *http.Request) {
	var req auditTrimRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.MaxAgeDays <= 0 {
		app.clientError(w, r, http.StatusBadRequest, "maxAgeDays must be positive")
		return
	}

	removed := app.auditStore.Trim(r.Context(), req.MaxAgeDays)
	app.writeJSON(w, r, http.StatusOK, map[string]int{"removed": removed})
}
