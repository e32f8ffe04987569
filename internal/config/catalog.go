package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/pkg/currency"
	"github.com/iwvelando/landscape-calculator/pkg/validation"
)

// CatalogConfig holds optional overrides of the built-in pricing tables.
// Feature entries change only the fields they set; budget entries replace the
// matching multiplier; a non-empty plan list replaces the default plans entirely.
type CatalogConfig struct {
	Features map[string]FeatureOverride `yaml:"features,omitempty"`
	Budgets  map[string]float64             `yaml:"budgets,omitempty"`
	Plans    []catalog.PlanDefinition       `yaml:"plans,omitempty"`
}

// FeatureOverride changes selected fields of a built-in feature cost. Unset
// fields keep the default, so a price-only override of the pool keeps its
// fixed quantity.
type FeatureOverride struct {
	UnitCost      *float64          `yaml:"unitCost,omitempty"`
	Unit          *catalog.UnitKind `yaml:"unit,omitempty"`
	FixedQuantity *int              `yaml:"fixedQuantity,omitempty"`
}

// Apply returns base with the set fields replaced.
func (o FeatureOverride) Apply(base catalog.FeatureCost) catalog.FeatureCost {
	if o.UnitCost != nil {
		base.UnitCost = *o.UnitCost
	}
	if o.Unit != nil && *o.Unit != "" {
		base.Unit = *o.Unit
	}
	if o.FixedQuantity != nil {
		base.FixedQuantity = *o.FixedQuantity
	}
	return base
}

// BuildCatalog builds the pricing catalog from the defaults and the configured
// overrides. Invalid tables are reported as errors.
func (conf *Configuration) BuildCatalog() (*catalog.Catalog, error) {
	features := catalog.DefaultFeatures()
	for name, override := range conf.Catalog.Features {
		f, ok := lookupFeature(name)
		if !ok {
			continue
		}
		features[f] = override.Apply(features[f])
	}

	budgets := catalog.DefaultBudgets()
	for name, multiplier := range conf.Catalog.Budgets {
		if tier, ok := lookupBudgetTier(name); ok {
			budgets[tier] = multiplier
		}
	}

	plans := catalog.DefaultPlans()
	if len(conf.Catalog.Plans) > 0 {
		plans = conf.Catalog.Plans
	}

	cat, err := catalog.New(features, budgets, plans)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog from configuration: %w", err)
	}
	return cat, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	for name := range conf.Catalog.Features {
		if _, ok := lookupFeature(name); !ok {
			warnings = append(warnings, fmt.Sprintf("Catalog override for unknown feature '%s' is ignored", name))
		}
	}
	for name := range conf.Catalog.Budgets {
		if _, ok := lookupBudgetTier(name); !ok {
			warnings = append(warnings, fmt.Sprintf("Catalog override for unknown budget tier '%s' is ignored", name))
		}
	}

	if conf.Output.Format != "" {
		if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
			warnings = append(warnings, fmt.Sprintf("Output format: %v", err))
		}
	}
	if _, err := currency.ParseCode(conf.Output.Currency); err != nil {
		warnings = append(warnings, fmt.Sprintf("Output currency: %v, falling back to AED", err))
	}

	if strings.EqualFold(conf.Store.Backend, "redis") && conf.Store.RedisAddress == "" {
		warnings = append(warnings, "Redis store selected without redisAddress, using default address")
	}

	return warnings
}

// Viper lower-cases map keys, so identifiers are matched case-insensitively.
func lookupFeature(name string) (catalog.Feature, bool) {
	for _, f := range catalog.AllFeatures() {
		if strings.EqualFold(string(f), name) {
			return f, true
		}
	}
	return "", false
}

func lookupBudgetTier(name string) (catalog.BudgetTier, bool) {
	for _, t := range catalog.AllBudgetTiers() {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return "", false
}
