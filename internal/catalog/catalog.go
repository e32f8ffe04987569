// Package catalog defines the immutable pricing tables used by the estimator
// and the payment plan builder: per-feature costs, budget tier multipliers and
// financing plan definitions.
package catalog

import (
	"errors"
	"fmt"

	"github.com/iwvelando/landscape-calculator/pkg/mathutil"
)

// ErrInvalidCatalog is returned when a catalog fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Feature identifies an optional landscaping feature.
type Feature string

// The closed set of features, in display order.
const (
	Tiles           Feature = "tiles"
	Pool            Feature = "pool"
	Seating         Feature = "seating"
	Bar             Feature = "bar"
	PizzaOven       Feature = "pizzaOven"
	Grill           Feature = "grill"
	Fridge          Feature = "fridge"
	Pergola         Feature = "pergola"
	Trees           Feature = "trees"
	Lighting        Feature = "lighting"
	ArtificialGrass Feature = "artificialGrass"
)

var allFeatures = []Feature{
	Tiles, Pool, Seating, Bar, PizzaOven, Grill, Fridge, Pergola, Trees, Lighting, ArtificialGrass,
}

// AllFeatures returns every known feature in canonical order.
func AllFeatures() []Feature {
	return append([]Feature(nil), allFeatures...)
}

// ParseFeature resolves a feature identifier.
func ParseFeature(s string) (Feature, bool) {
	for _, f := range allFeatures {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// UnitKind describes how a feature is billed.
type UnitKind string

const (
	// UnitArea features are billed per square meter.
	UnitArea UnitKind = "area"
	// UnitDiscrete features are billed once when selected.
	UnitDiscrete UnitKind = "discrete"
)

// FeatureCost is the cost descriptor of one feature. FixedQuantity is zero
// unless the feature is billed at a flat multiple regardless of area.
type FeatureCost struct {
	UnitCost      float64  `yaml:"unitCost" json:"unitCost"`
	Unit          UnitKind `yaml:"unit" json:"unit"`
	FixedQuantity int      `yaml:"fixedQuantity,omitempty" json:"fixedQuantity,omitempty"`
}

// BudgetTier is a material and finish quality level.
type BudgetTier string

// Known budget tiers.
const (
	Economic     BudgetTier = "economic"
	Standard     BudgetTier = "standard"
	HighEnd      BudgetTier = "highEnd"
	SuperHighEnd BudgetTier = "superHighEnd"
)

var allBudgetTiers = []BudgetTier{Economic, Standard, HighEnd, SuperHighEnd}

// AllBudgetTiers returns every known budget tier from cheapest to most expensive.
func AllBudgetTiers() []BudgetTier {
	return append([]BudgetTier(nil), allBudgetTiers...)
}

// ParseBudgetTier resolves a budget tier identifier.
func ParseBudgetTier(s string) (BudgetTier, bool) {
	for _, t := range allBudgetTiers {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// PlanDefinition holds the parameters of one financing plan. Rates are
// fractions of the plan total (0.10 == 10%), except MarkupRate which is a
// fraction of the base cost.
type PlanDefinition struct {
	Key             string  `yaml:"key" json:"key"`
	MarkupRate      float64 `yaml:"markupRate" json:"markupRate"`
	DownpaymentRate float64 `yaml:"downpaymentRate" json:"downpaymentRate"`
	MoveInRate      float64 `yaml:"moveInRate" json:"moveInRate"`
	DurationMonths  int     `yaml:"durationMonths" json:"durationMonths"`
}

// Catalog bundles the pricing tables. It is never mutated after New returns,
// so a single instance may be shared between goroutines.
type Catalog struct {
	features map[Feature]FeatureCost
	budgets  map[BudgetTier]float64
	plans    []PlanDefinition
}

// New validates the given tables and builds a Catalog from copies of them.
func New(features map[Feature]FeatureCost, budgets map[BudgetTier]float64, plans []PlanDefinition) (*Catalog, error) {
	c := &Catalog{
		features: make(map[Feature]FeatureCost, len(features)),
		budgets:  make(map[BudgetTier]float64, len(budgets)),
		plans:    append([]PlanDefinition(nil), plans...),
	}
	for f, cost := range features {
		c.features[f] = cost
	}
	for t, m := range budgets {
		c.budgets[t] = m
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	for f, cost := range c.features {
		if !mathutil.IsFinite(cost.UnitCost) || cost.UnitCost < 0 {
			return fmt.Errorf("%w: feature %s has invalid unit cost %v", ErrInvalidCatalog, f, cost.UnitCost)
		}
		if cost.Unit != UnitArea && cost.Unit != UnitDiscrete {
			return fmt.Errorf("%w: feature %s has unknown unit kind %q", ErrInvalidCatalog, f, cost.Unit)
		}
		if cost.FixedQuantity < 0 {
			return fmt.Errorf("%w: feature %s has negative fixed quantity %d", ErrInvalidCatalog, f, cost.FixedQuantity)
		}
	}

	for t, m := range c.budgets {
		if !mathutil.IsFinite(m) || m <= 0 {
			return fmt.Errorf("%w: budget tier %s has non-positive multiplier %v", ErrInvalidCatalog, t, m)
		}
	}

	if len(c.plans) == 0 {
		return fmt.Errorf("%w: no payment plans defined", ErrInvalidCatalog)
	}
	seen := make(map[string]struct{}, len(c.plans))
	for _, p := range c.plans {
		if p.Key == "" {
			return fmt.Errorf("%w: payment plan without a key", ErrInvalidCatalog)
		}
		if _, dup := seen[p.Key]; dup {
			return fmt.Errorf("%w: duplicate payment plan %s", ErrInvalidCatalog, p.Key)
		}
		seen[p.Key] = struct{}{}

		if p.DurationMonths <= 0 {
			return fmt.Errorf("%w: payment plan %s has non-positive duration %d", ErrInvalidCatalog, p.Key, p.DurationMonths)
		}
		if !mathutil.IsFinite(p.MarkupRate) || p.MarkupRate < 0 {
			return fmt.Errorf("%w: payment plan %s has invalid markup rate %v", ErrInvalidCatalog, p.Key, p.MarkupRate)
		}
		if !isRate(p.DownpaymentRate) || !isRate(p.MoveInRate) {
			return fmt.Errorf("%w: payment plan %s has rates outside [0, 1]", ErrInvalidCatalog, p.Key)
		}
		if p.DownpaymentRate+p.MoveInRate > 1 {
			return fmt.Errorf("%w: payment plan %s charges more than the total upfront", ErrInvalidCatalog, p.Key)
		}
	}

	return nil
}

// Feature looks up the cost descriptor of a feature.
func (c *Catalog) Feature(f Feature) (FeatureCost, bool) {
	cost, ok := c.features[f]
	return cost, ok
}

// Features returns a copy of the feature table.
func (c *Catalog) Features() map[Feature]FeatureCost {
	out := make(map[Feature]FeatureCost, len(c.features))
	for f, cost := range c.features {
		out[f] = cost
	}
	return out
}

// Multiplier looks up the multiplier of a budget tier.
func (c *Catalog) Multiplier(t BudgetTier) (float64, bool) {
	m, ok := c.budgets[t]
	return m, ok
}

// Budgets returns a copy of the budget tier table.
func (c *Catalog) Budgets() map[BudgetTier]float64 {
	out := make(map[BudgetTier]float64, len(c.budgets))
	for t, m := range c.budgets {
		out[t] = m
	}
	return out
}

// Plans returns the payment plan definitions in display order.
func (c *Catalog) Plans() []PlanDefinition {
	return append([]PlanDefinition(nil), c.plans...)
}

func isRate(v float64) bool {
	return mathutil.IsFinite(v) && v >= 0 && v <= 1
}
