// Package share encodes calculation inputs as URL query strings so a result
// can be shared as a link and reconstructed later.
package share

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/pkg/constants"
	"github.com/iwvelando/landscape-calculator/pkg/estimator"
)

// Encode turns an input into query parameters. Selected features carry "1";
// unselected and unknown features are omitted.
func Encode(in estimator.Input) url.Values {
	values := url.Values{}
	values.Set(constants.QueryParamSize, strconv.FormatFloat(in.AreaSize, 'f', -1, 64))
	if in.Budget != "" {
		values.Set(constants.QueryParamBudget, string(in.Budget))
	}
	for _, f := range catalog.AllFeatures() {
		if in.Features[f] {
			values.Set(string(f), constants.QueryValueSelected)
		}
	}
	return values
}

// Decode reconstructs an input from query parameters. A missing size decodes
// as 0 and a missing budget as the standard tier. Only known features are
// read; any other parameter is ignored.
func Decode(values url.Values) (estimator.Input, error) {
	in := estimator.Input{
		Budget:   catalog.Standard,
		Features: make(map[catalog.Feature]bool),
	}

	if raw := strings.TrimSpace(values.Get(constants.QueryParamSize)); raw != "" {
		size, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return estimator.Input{}, fmt.Errorf("invalid size %q: %w", raw, err)
		}
		in.AreaSize = size
	}

	if raw := strings.TrimSpace(values.Get(constants.QueryParamBudget)); raw != "" {
		in.Budget = catalog.BudgetTier(raw)
	}

	for _, f := range catalog.AllFeatures() {
		in.Features[f] = values.Get(string(f)) == constants.QueryValueSelected
	}

	return in, nil
}

// HasState reports whether the query carries a shared calculation.
func HasState(values url.Values) bool {
	return values.Has(constants.QueryParamSize) || values.Has(constants.QueryParamBudget)
}

// BuildURL appends the encoded input to base, replacing any existing query.
func BuildURL(base string, in estimator.Input) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	u.RawQuery = Encode(in).Encode()
	return u.String(), nil
}
