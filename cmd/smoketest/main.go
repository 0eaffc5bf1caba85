package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/myrjola/coachplan/internal/e2etest"
	"github.com/myrjola/coachplan/internal/logging"
	"github.com/myrjola/coachplan/internal/plan"
	"github.com/myrjola/coachplan/internal/ptr"
	"github.com/myrjola/coachplan/internal/smartfill"
	"github.com/myrjola/coachplan/internal/testhelpers"
)

// testSmartfill submits a day that exceeds a tight time budget and checks
// that the solver trimmed it and reported the adjustment.
func testSmartfill(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	day := plan.Day{
		ID:   "smoke-day",
		Name: "Lunes",
		Blocks: []plan.Block{
			{
				ID:   "main",
				Type: "Fuerza",
				Exercises: []plan.Exercise{
					{ID: "ex-1", Name: "Sentadilla", Sets: []plan.Set{{Reps: "5"}, {Reps: "5"}, {Reps: "5"}}},
					{ID: "ex-2", Name: "Curl de bíceps", Sets: []plan.Set{{Reps: "12"}, {Reps: "12"}}},
				},
			},
		},
	}
	request := struct {
		Day         plan.Day         `json:"day"`
		Constraints plan.Constraints `json:"constraints"`
	}{
		Day:         day,
		Constraints: plan.Constraints{TimeBudgetMinutes: ptr.Ref(5)},
	}

	var result smartfill.Result
	resp, err := client.PostJSON(ctx, "/api/smartfill", request, &result)
	if err != nil {
		return fmt.Errorf("post smartfill: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected smartfill status %d", resp.StatusCode)
	}
	if len(result.Changes) == 0 {
		return fmt.Errorf("expected time budget changes, got none")
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = testSmartfill(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing smartfill", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
