package main

import (
	"net/http"

	"github.com/myrjola/coachplan/internal/plan"
)

type smartfillRequest struct {
	Day         plan.Day         `json:"day"`
	Constraints plan.Constraints `json:"constraints"`
}

func (app *application) smartfillPOST(w http.ResponseWriter, r *http.Request) {
	var req smartfillRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result := app.solver.Resolve(req.Day, req.Constraints)
	app.writeJSON(w, r, http.StatusOK, result)
}
