package main

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/myrjola/coachplan/internal/rules"
	"github.com/yuin/goldmark"
)

func (app *application) rulesGET(w http.ResponseWriter, r *http.Request) {
	ruleset, err := app.ruleStore.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, ruleset)
}

func (app *application) rulesPOST(w http.ResponseWriter, r *http.Request) {
	var rule rules.Rule
	if err := readJSON(r, &rule); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := app.ruleStore.Create(r.Context(), rule)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, created)
}

type ruleResponse struct {
	rules.Rule
	// DescriptionHTML is the rule description rendered from Markdown.
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
}

func (app *application) ruleGET(w http.ResponseWriter, r *http.Request) {
	ruleset, err := app.ruleStore.List(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	id := r.PathValue("id")
	for _, rule := range ruleset {
		if rule.ID != id {
			continue
		}

		resp := ruleResponse{Rule: rule}
		if rule.Description != "" {
			var buf bytes.Buffer
			if err = goldmark.Convert([]byte(rule.Description), &buf); err != nil {
				app.serverError(w, r, err)
				return
			}
			resp.DescriptionHTML = buf.String()
		}
		app.writeJSON(w, r, http.StatusOK, resp)
		return
	}

	app.clientError(w, r, http.StatusNotFound, "rule not found")
}

func (app *application) rulePUT(w http.ResponseWriter, r *http.Request) {
	var rule rules.Rule
	if err := readJSON(r, &rule); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	rule.ID = r.PathValue("id")

	updated, err := app.ruleStore.Update(r.Context(), rule)
	if err != nil {
		if errors.Is(err, rules.ErrRuleNotFound) {
			app.clientError(w, r, http.StatusNotFound, "rule not found")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, updated)
}

func (app *application) ruleDELETE(w http.ResponseWriter, r *http.Request) {
	err := app.ruleStore.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, rules.ErrRuleNotFound) {
			app.clientError(w, r, http.StatusNotFound, "rule not found")
			return
		}
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
