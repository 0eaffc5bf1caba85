package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/myrjola/coachplan/internal/e2etest"
	"github.com/myrjola/coachplan/internal/rules"
	"github.com/myrjola/coachplan/internal/testhelpers"
)

func Test_application_rules(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()
	var created rules.Rule

	t.Run("Listing seeds the default rules", func(t *testing.T) {
		var ruleset []rules.Rule
		resp, err := client.GetJSON(ctx, "/api/rules", &ruleset)
		if err != nil {
			t.Fatalf("Failed to list rules: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		if got, want := len(ruleset), 7; got != want {
			t.Errorf("Expected %d seeded rules, got %d", want, got)
		}
	})

	t.Run("Create assigns an ID and timestamps", func(t *testing.T) {
		rule := rules.Rule{
			Name:     "Evitar zancadas",
			Active:   true,
			Priority: 9,
			Conditions: []rules.Condition{
				{Kind: rules.ConditionPattern, Value: "zancada", Operator: rules.OperatorContains},
			},
			Action: rules.Action{Kind: rules.ActionDelete},
		}
		resp, err := client.PostJSON(ctx, "/api/rules", rule, &created)
		if err != nil {
			t.Fatalf("Failed to create rule: %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d", resp.StatusCode)
		}
		if created.ID == "" {
			t.Error("Expected created rule to have an ID")
		}
		if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
			t.Error("Expected created rule to have timestamps")
		}
	})

	t.Run("Get renders the description as HTML", func(t *testing.T) {
		var resp ruleResponse
		httpResp, err := client.GetJSON(ctx, "/api/rules/seed-shoulder-press", &resp)
		if err != nil {
			t.Fatalf("Failed to get rule: %v", err)
		}
		if httpResp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", httpResp.StatusCode)
		}
		if resp.Name != "Sustitución de press por hombro" {
			t.Errorf("Unexpected rule name %q", resp.Name)
		}
		if !strings.Contains(resp.DescriptionHTML, "<p>") {
			t.Errorf("Expected rendered description, got %q", resp.DescriptionHTML)
		}
	})

	t.Run("Update replaces the stored rule", func(t *testing.T) {
		created.Priority = 10
		var updated rules.Rule
		resp, err := client.PutJSON(ctx, "/api/rules/"+created.ID, created, &updated)
		if err != nil {
			t.Fatalf("Failed to update rule: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		if updated.Priority != 10 {
			t.Errorf("Expected priority 10, got %d", updated.Priority)
		}
		if !updated.UpdatedAt.After(updated.CreatedAt) {
			t.Error("Expected update to advance UpdatedAt")
		}
	})

	t.Run("Updating an unknown rule is a 404", func(t *testing.T) {
		resp, err := client.PutJSON(ctx, "/api/rules/no-such-rule", created, nil)
		if err != nil {
			t.Fatalf("Failed to put rule: %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", resp.StatusCode)
		}
	})

	t.Run("Delete removes the rule", func(t *testing.T) {
		resp, err := client.Delete(ctx, "/api/rules/"+created.ID)
		if err != nil {
			t.Fatalf("Failed to delete rule: %v", err)
		}
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected status 204, got %d", resp.StatusCode)
		}

		resp, err = client.GetJSON(ctx, "/api/rules/"+created.ID, nil)
		if err != nil {
			t.Fatalf("Failed to get rule: %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404 after delete, got %d", resp.StatusCode)
		}
	})
}
