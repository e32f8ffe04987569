// Package plans derives financing plans from a base cost.
package plans

import (
	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/pkg/constants"
	"github.com/iwvelando/landscape-calculator/pkg/mathutil"
)

// Plan holds the amounts of one financing plan.
type Plan struct {
	Key                string  `json:"key"`
	TotalCost          float64 `json:"totalCost"`
	Downpayment        float64 `json:"downpayment"`
	MoveIn             float64 `json:"moveIn"`
	MonthlyInstallment float64 `json:"monthlyInstallment"`
	DurationMonths     int     `json:"months"`
}

// Build computes every plan of the catalog for the given base cost, in the
// catalog's display order. Plans are independent of one another.
func Build(cat *catalog.Catalog, baseCost float64) []Plan {
	definitions := cat.Plans()
	results := make([]Plan, 0, len(definitions))
	for _, def := range definitions {
		results = append(results, Calculate(def, baseCost))
	}
	return results
}

// Calculate computes a single plan. The catalog guarantees a positive duration.
func Calculate(def catalog.PlanDefinition, baseCost float64) Plan {
	totalCost := baseCost * (1 + def.MarkupRate)
	downpayment := mathutil.ApplyRate(totalCost, def.DownpaymentRate)
	moveIn := mathutil.ApplyRate(totalCost, def.MoveInRate)
	remaining := totalCost - downpayment - moveIn

	return Plan{
		Key:                def.Key,
		TotalCost:          totalCost,
		Downpayment:        downpayment,
		MoveIn:             moveIn,
		MonthlyInstallment: remaining / float64(def.DurationMonths),
		DurationMonths:     def.DurationMonths,
	}
}

// Recommended returns the plan highlighted as the popular choice, which is
// the second plan by position.
func Recommended(plans []Plan) (Plan, bool) {
	if len(plans) <= constants.PopularPlanIndex {
		return Plan{}, false
	}
	return plans[constants.PopularPlanIndex], true
}

// IsRecommended reports whether the plan at index i is the popular one.
func IsRecommended(i int) bool {
	return i == constants.PopularPlanIndex
}

// Convert returns a copy of the plan with every amount passed through fn.
func (p Plan) Convert(fn func(float64) float64) Plan {
	p.TotalCost = fn(p.TotalCost)
	p.Downpayment = fn(p.Downpayment)
	p.MoveIn = fn(p.MoveIn)
	p.MonthlyInstallment = fn(p.MonthlyInstallment)
	return p
}

// Balanced reports whether down payment, move-in and all installments add
// up to the total cost within the relative tolerance.
func (p Plan) Balanced() bool {
	sum := p.Downpayment + p.MoveIn + p.MonthlyInstallment*float64(p.DurationMonths)
	return mathutil.ApproxEqual(sum, p.TotalCost, constants.RelativeTolerance)
}
