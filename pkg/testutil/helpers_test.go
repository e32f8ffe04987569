package testutil

import (
	"testing"

	"github.com/iwvelando/landscape-calculator/internal/calculator"
	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/pkg/estimator"
	"github.com/iwvelando/landscape-calculator/pkg/plans"
)

func TestFindPlan(t *testing.T) {
	results := []plans.Plan{
		{Key: "3months", TotalCost: 1050},
		{Key: "6months", TotalCost: 1100},
		{Key: "12months", TotalCost: 1150},
	}

	tests := []struct {
		name          string
		key           string
		expectFound   bool
		expectedTotal float64
	}{
		{"Find first plan", "3months", true, 1050},
		{"Find last plan", "12months", true, 1150},
		{"Search for non-existent plan", "24months", false, 0},
		{"Empty key", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := FindPlan(results, tt.key)
			if !tt.expectFound {
				if found != nil {
					t.Errorf("FindPlan(%q) = %+v, expected nil", tt.key, found)
				}
				return
			}
			if found == nil {
				t.Fatalf("FindPlan(%q) returned nil", tt.key)
			}
			if found.TotalCost != tt.expectedTotal {
				t.Errorf("FindPlan(%q).TotalCost = %v, expected %v", tt.key, found.TotalCost, tt.expectedTotal)
			}
		})
	}
}

func TestFindPlanReturnsPointerIntoSlice(t *testing.T) {
	results := []plans.Plan{{Key: "6months"}}

	found := FindPlan(results, "6months")
	found.TotalCost = 42

	if results[0].TotalCost != 42 {
		t.Error("FindPlan should return a pointer into the original slice")
	}
}

func TestFindPlanEmptySlice(t *testing.T) {
	if FindPlan(nil, "3months") != nil {
		t.Error("FindPlan on nil slice should return nil")
	}
}

func TestFindResult(t *testing.T) {
	results := []calculator.Result{
		{Input: estimator.Input{Budget: catalog.Economic}, BaseCost: 800},
		{Input: estimator.Input{Budget: catalog.Standard}, BaseCost: 1000},
	}

	if r := FindResult(results, catalog.Standard); r == nil || r.BaseCost != 1000 {
		t.Errorf("FindResult(standard) = %+v, expected base cost 1000", r)
	}
	if r := FindResult(results, catalog.HighEnd); r != nil {
		t.Errorf("FindResult(highEnd) = %+v, expected nil", r)
	}
}

func TestAlmostEqual(t *testing.T) {
	tests := []struct {
		a, b, tolerance float64
		expected        bool
	}{
		{100, 100, 0, true},
		{100, 100.004, 0.01, true},
		{100, 100.02, 0.01, false},
		{-5, 5, 1, false},
	}

	for _, tt := range tests {
		if got := AlmostEqual(tt.a, tt.b, tt.tolerance); got != tt.expected {
			t.Errorf("AlmostEqual(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tolerance, got, tt.expected)
		}
	}
}
