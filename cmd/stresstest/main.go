package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/myrjola/coachplan/internal/e2etest"
	"github.com/myrjola/coachplan/internal/logging"
	"github.com/myrjola/coachplan/internal/plan"
	"github.com/myrjola/coachplan/internal/ptr"
	"github.com/myrjola/coachplan/internal/rules"
	"github.com/myrjola/coachplan/internal/smartfill"
	"github.com/myrjola/coachplan/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	scenarioTimeout         = 30 * time.Second
	maxConcurrentOperations = 20
	numCoaches              = 10
	scenariosPerCoach       = 5
	successRateThreshold    = 95.0
	expectedArgsCount       = 2
	percentageMultiplier    = 100
)

type smartfillPayload struct {
	Day         plan.Day         `json:"day"`
	Constraints plan.Constraints `json:"constraints"`
}

type applyRulesPayload struct {
	ProgramID string         `json:"programId,omitempty"`
	DayKey    string         `json:"dayKey,omitempty"`
	Sessions  []plan.Session `json:"sessions"`
	Context   rules.Context  `json:"context"`
}

func scenarioDay(coachIndex, scenarioIndex int) plan.Day {
	return plan.Day{
		ID:   fmt.Sprintf("day-%d-%d", coachIndex, scenarioIndex),
		Name: "Lunes",
		Blocks: []plan.Block{
			{
				ID:   "warmup",
				Type: "Calentamiento",
				Exercises: []plan.Exercise{
					{ID: "w-1", Name: "Movilidad articular", Sets: []plan.Set{{Reps: "10"}}},
				},
			},
			{
				ID:   "main",
				Type: "Fuerza",
				Exercises: []plan.Exercise{
					{ID: "m-1", Name: "Sentadilla con barra", Sets: []plan.Set{{Reps: "5"}, {Reps: "5"}, {Reps: "5"}}},
					{ID: "m-2", Name: "Press banca con barra", Sets: []plan.Set{{Reps: "8"}, {Reps: "8"}}},
					{ID: "m-3", Name: "Curl de bíceps", Sets: []plan.Set{{Reps: "12"}, {Reps: "12"}}},
				},
			},
		},
	}
}

// coachScenario exercises the two hot endpoints the dashboard hits when a
// coach edits a client's week: constraint resolution and rule application.
func coachScenario(ctx context.Context, client *e2etest.Client, coachIndex, scenarioIndex int) error {
	budget := 20 + int(time.Now().UnixNano()%40) //nolint:mnd // 20-60 minute spread

	var resolved smartfill.Result
	resp, err := client.PostJSON(ctx, "/api/smartfill", smartfillPayload{
		Day: scenarioDay(coachIndex, scenarioIndex),
		Constraints: plan.Constraints{
			TimeBudgetMinutes:  ptr.Ref(budget),
			AvailableEquipment: []string{"dumbbell", "band"},
			Injuries:           []string{"molestia de hombro"},
		},
	}, &resolved)
	if err != nil {
		return fmt.Errorf("post smartfill: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected smartfill status %d", resp.StatusCode)
	}

	payload := applyRulesPayload{
		ProgramID: fmt.Sprintf("stress-%d", coachIndex),
		DayKey:    "monday",
		Sessions: []plan.Session{
			{
				ID:        fmt.Sprintf("s-%d-%d", coachIndex, scenarioIndex),
				Name:      "Press militar",
				Duration:  "60 min",
				Modality:  "fuerza",
				Intensity: "alta",
			},
		},
		Context: rules.Context{Injuries: []string{"shoulder"}},
	}
	resp, err = client.PostJSON(ctx, "/api/sessions/apply-rules", payload, nil)
	if err != nil {
		return fmt.Errorf("post apply-rules: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected apply-rules status %d", resp.StatusCode)
	}
	return nil
}

// runLoadTest launches the coach scenarios with bounded concurrency and
// fails when the success rate drops below the threshold.
func runLoadTest(ctx context.Context, url string, logger *slog.Logger) error {
	total := numCoaches * scenariosPerCoach
	logger.LogAttrs(ctx, slog.LevelInfo, "Starting load test",
		slog.Int("coaches", numCoaches), slog.Int("scenarios", total))

	var successCount, failureCount int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)

	for coachIndex := range numCoaches {
		// Each coach keeps one session across its scenarios.
		client, err := e2etest.NewClient(url)
		if err != nil {
			return fmt.Errorf("create client for coach %d: %w", coachIndex, err)
		}
		for scenarioIndex := range scenariosPerCoach {
			g.Go(func() error {
				scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
				defer cancel()

				if err := coachScenario(scenarioCtx, client, coachIndex, scenarioIndex); err != nil {
					atomic.AddInt64(&failureCount, 1)
					logger.LogAttrs(scenarioCtx, slog.LevelWarn, "Scenario failed",
						slog.Int("coach", coachIndex),
						slog.Int("scenario", scenarioIndex),
						slog.Any("error", err))
					return nil // Don't propagate error to avoid stopping other scenarios
				}

				atomic.AddInt64(&successCount, 1)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("load test failed: %w", err)
	}

	successRate := float64(successCount) / float64(total) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed",
		slog.Int64("successful", successCount),
		slog.Int64("failed", failureCount),
		slog.Float64("success_rate", successRate))

	if successRate < successRateThreshold {
		return fmt.Errorf("load test failed: success rate %.1f%% below threshold", successRate)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))

	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	client, err := e2etest.NewClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}

	if err = runLoadTest(ctx, url, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed successfully 🙌",
		slog.Duration("total_duration", time.Since(start)))
}
