// Package calculator runs a full calculation: it validates the input,
// estimates the base cost and derives the payment plans.
package calculator

import (
	"fmt"

	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/pkg/currency"
	"github.com/iwvelando/landscape-calculator/pkg/estimator"
	"github.com/iwvelando/landscape-calculator/pkg/plans"
	"github.com/iwvelando/landscape-calculator/pkg/validation"
	"go.uber.org/zap"
)

// Result holds everything computed for one input. Amounts are expressed in
// Currency; results are always computed in AED.
type Result struct {
	Input     estimator.Input      `json:"input"`
	Currency  currency.Code        `json:"currency"`
	BaseCost  float64              `json:"baseCost"`
	Breakdown []estimator.LineItem `json:"breakdown"`
	Plans     []plans.Plan         `json:"plans"`
}

// Calculate validates the input and computes the base cost and plans.
func Calculate(logger *zap.Logger, cat *catalog.Catalog, in estimator.Input) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := validation.ValidateInput(cat, in); err != nil {
		return Result{}, err
	}

	breakdown := estimator.Breakdown(cat, in)
	baseCost := estimator.Total(cat, breakdown, in.Budget)
	planResults := plans.Build(cat, baseCost)

	for _, p := range planResults {
		if !p.Balanced() {
			return Result{}, fmt.Errorf("plan %s does not balance: total %.2f", p.Key, p.TotalCost)
		}
	}

	logger.Debug(fmt.Sprintf("estimated base cost %.2f for %d features", baseCost, len(breakdown)),
		zap.String("op", "calculator.Calculate"),
		zap.Float64("size", in.AreaSize),
		zap.String("budget", string(in.Budget)),
		zap.Int("plans", len(planResults)),
	)

	return Result{
		Input:     in,
		Currency:  currency.AED,
		BaseCost:  baseCost,
		Breakdown: breakdown,
		Plans:     planResults,
	}, nil
}

// CompareBudgets calculates the same selection under every budget tier the
// catalog knows, from cheapest to most expensive.
func CompareBudgets(logger *zap.Logger, cat *catalog.Catalog, in estimator.Input) ([]Result, error) {
	var results []Result
	for _, tier := range catalog.AllBudgetTiers() {
		if _, ok := cat.Multiplier(tier); !ok {
			continue
		}
		variant := in
		variant.Budget = tier
		result, err := Calculate(logger, cat, variant)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// In returns a copy of the result with every amount expressed in code.
// The receiver is left untouched.
func (r Result) In(code currency.Code) Result {
	if code == r.Currency {
		return r
	}

	toAED := func(v float64) float64 { return v }
	if r.Currency == currency.USD {
		toAED = func(v float64) float64 { return currency.Convert(v, currency.USDToAED) }
	}
	convert := func(v float64) float64 { return currency.FromAED(toAED(v), code) }

	out := r
	out.Currency = code
	out.BaseCost = convert(r.BaseCost)

	out.Breakdown = make([]estimator.LineItem, len(r.Breakdown))
	for i, item := range r.Breakdown {
		item.UnitCost = convert(item.UnitCost)
		item.Subtotal = convert(item.Subtotal)
		out.Breakdown[i] = item
	}

	out.Plans = make([]plans.Plan, len(r.Plans))
	for i, p := range r.Plans {
		out.Plans[i] = p.Convert(convert)
	}
	return out
}

// Recommended returns the popular plan of the result.
func (r Result) Recommended() (plans.Plan, bool) {
	return plans.Recommended(r.Plans)
}
