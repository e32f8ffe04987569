// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/iwvelando/landscape-calculator/internal/calculator"
	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/pkg/plans"
)

// FindPlan finds a plan by key in the plans slice.
// Returns a pointer to the plan if found, nil otherwise.
func FindPlan(results []plans.Plan, key string) *plans.Plan {
	for i := range results {
		if results[i].Key == key {
			return &results[i]
		}
	}
	return nil
}

// FindResult finds the result computed for a budget tier.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []calculator.Result, tier catalog.BudgetTier) *calculator.Result {
	for i := range results {
		if results[i].Input.Budget == tier {
			return &results[i]
		}
	}
	return nil
}

// AlmostEqual reports whether two amounts agree within tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
