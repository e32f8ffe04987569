// Package estimator turns a feature, size and budget selection into a base
// cost before any financing markup.
package estimator

import (
	"math"
	"sort"

	"github.com/iwvelando/landscape-calculator/internal/catalog"
)

// Input is a single calculation request.
type Input struct {
	AreaSize float64                  `json:"size"`
	Features map[catalog.Feature]bool `json:"features"`
	Budget   catalog.BudgetTier       `json:"budget"`
}

// Selected returns the selected features, known features first in catalog
// order followed by any other identifiers sorted by name.
func (in Input) Selected() []catalog.Feature {
	var selected []catalog.Feature
	known := make(map[catalog.Feature]struct{})
	for _, f := range catalog.AllFeatures() {
		known[f] = struct{}{}
		if in.Features[f] {
			selected = append(selected, f)
		}
	}

	var extra []catalog.Feature
	for f, on := range in.Features {
		if _, ok := known[f]; !ok && on {
			extra = append(extra, f)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(selected, extra...)
}

// LineItem is the contribution of one selected feature before the budget
// multiplier is applied.
type LineItem struct {
	Feature  catalog.Feature  `json:"feature"`
	Unit     catalog.UnitKind `json:"unit"`
	Quantity float64          `json:"quantity"`
	UnitCost float64          `json:"unitCost"`
	Subtotal float64          `json:"subtotal"`
}

// Breakdown returns the per-feature contributions of the selection. Features
// missing from the catalog contribute nothing and are left out.
//
// Area sizes are not clamped: a zero size zeroes area-billed features and a
// negative size flows through as a negative contribution.
func Breakdown(cat *catalog.Catalog, in Input) []LineItem {
	var items []LineItem
	for _, f := range in.Selected() {
		cost, ok := cat.Feature(f)
		if !ok {
			continue
		}

		var quantity float64
		switch {
		case cost.FixedQuantity > 0:
			quantity = float64(cost.FixedQuantity)
		case cost.Unit == catalog.UnitArea:
			quantity = in.AreaSize
		default:
			quantity = 1
		}

		items = append(items, LineItem{
			Feature:  f,
			Unit:     cost.Unit,
			Quantity: quantity,
			UnitCost: cost.UnitCost,
			Subtotal: cost.UnitCost * quantity,
		})
	}
	return items
}

// EstimateBaseCost sums the contributions of all selected features and scales
// the sum by the budget tier multiplier.
//
// An unknown budget tier yields NaN; callers validate tiers before calling.
func EstimateBaseCost(cat *catalog.Catalog, in Input) float64 {
	return Total(cat, Breakdown(cat, in), in.Budget)
}

// Total applies the budget multiplier to the sum of the line items.
func Total(cat *catalog.Catalog, items []LineItem, tier catalog.BudgetTier) float64 {
	multiplier, ok := cat.Multiplier(tier)
	if !ok {
		return math.NaN()
	}

	sum := 0.0
	for _, item := range items {
		sum += item.Subtotal
	}
	return sum * multiplier
}
