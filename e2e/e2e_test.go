package e2e

import (
	"context"
	"testing"

	"github.com/cucumber/godog"
)

// TestFeatures runs every scenario under features/ against in-process
// product, user and interaction servers started fresh per scenario.
func TestFeatures(t *testing.T) {
	status := godog.TestSuite{
		Name:                "recom",
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}.Run()
	if status != 0 {
		t.Fatalf("feature suite exited with status %d", status)
	}
}

func initializeScenario(sc *godog.ScenarioContext) {
	tc := NewTestContext()

	sc.After(func(ctx context.Context, scenario *godog.Scenario, err error) (context.Context, error) {
		if err != nil {
			tc.logf("scenario %q failed; last response: %s", scenario.Name, tc.LastResponseBody)
		}
		tc.Close()
		return ctx, nil
	})

	RegisterSteps(sc, tc)
}
