package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/pkg/estimator"
	"github.com/iwvelando/landscape-calculator/pkg/mathutil"
)

// ErrInvalidInput is returned when a calculation input is rejected.
var ErrInvalidInput = errors.New("invalid input")

// ValidateInput performs the checks a form applies before calling the
// estimator: the area size must be a finite positive number, the budget tier
// must exist in the catalog and every selected feature must be priced.
func ValidateInput(cat *catalog.Catalog, in estimator.Input) error {
	var problems []string

	if !mathutil.IsFinite(in.AreaSize) {
		problems = append(problems, "size must be a finite number")
	} else if in.AreaSize <= 0 {
		problems = append(problems, fmt.Sprintf("size must be greater than zero, got %v", in.AreaSize))
	}

	if in.Budget == "" {
		problems = append(problems, "budget is required")
	} else if _, ok := cat.Multiplier(in.Budget); !ok {
		problems = append(problems, fmt.Sprintf("unknown budget tier %q", in.Budget))
	}

	for _, f := range in.Selected() {
		if _, ok := cat.Feature(f); !ok {
			problems = append(problems, fmt.Sprintf("unknown feature %q", f))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}
