package catalog

// Costs are quoted in AED.
var defaultFeatures = map[Feature]FeatureCost{
	Tiles:           {UnitCost: 300, Unit: UnitArea},
	Pool:            {UnitCost: 5250, Unit: UnitDiscrete, FixedQuantity: 6},
	Seating:         {UnitCost: 600, Unit: UnitDiscrete},
	Bar:             {UnitCost: 600, Unit: UnitDiscrete},
	PizzaOven:       {UnitCost: 9000, Unit: UnitDiscrete},
	Grill:           {UnitCost: 7500, Unit: UnitDiscrete},
	Fridge:          {UnitCost: 2250, Unit: UnitDiscrete},
	Pergola:         {UnitCost: 750, Unit: UnitArea},
	Trees:           {UnitCost: 195, Unit: UnitDiscrete},
	Lighting:        {UnitCost: 45, Unit: UnitArea},
	ArtificialGrass: {UnitCost: 75, Unit: UnitArea},
}

var defaultBudgets = map[BudgetTier]float64{
	Economic:     0.8,
	Standard:     1.0,
	HighEnd:      1.4,
	SuperHighEnd: 2.0,
}

var defaultPlans = []PlanDefinition{
	{Key: "3months", MarkupRate: 0.05, DownpaymentRate: 0.30, MoveInRate: 0.10, DurationMonths: 3},
	{Key: "6months", MarkupRate: 0.10, DownpaymentRate: 0.25, MoveInRate: 0.10, DurationMonths: 6},
	{Key: "12months", MarkupRate: 0.15, DownpaymentRate: 0.10, MoveInRate: 0.10, DurationMonths: 12},
}

// DefaultFeatures returns a copy of the built-in feature table.
func DefaultFeatures() map[Feature]FeatureCost {
	out := make(map[Feature]FeatureCost, len(defaultFeatures))
	for f, cost := range defaultFeatures {
		out[f] = cost
	}
	return out
}

// DefaultBudgets returns a copy of the built-in budget tier table.
func DefaultBudgets() map[BudgetTier]float64 {
	out := make(map[BudgetTier]float64, len(defaultBudgets))
	for t, m := range defaultBudgets {
		out[t] = m
	}
	return out
}

// DefaultPlans returns a copy of the built-in payment plans.
func DefaultPlans() []PlanDefinition {
	return append([]PlanDefinition(nil), defaultPlans...)
}

// Default returns the built-in catalog. The built-in tables are known to be
// valid, so a failure here is a programming error.
func Default() *Catalog {
	c, err := New(defaultFeatures, defaultBudgets, defaultPlans)
	if err != nil {
		panic(err)
	}
	return c
}
