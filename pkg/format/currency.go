// Package format renders amounts as display strings.
package format

import (
	"fmt"
	"math"

	"github.com/iwvelando/landscape-calculator/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a whole-unit currency string with thousands separators,
// e.g. "$1,234", "-$1,234" or "AED 1,234".
func Currency(amount float64, code string) string {
	formatted, negative := grouped(amount, constants.DisplayFractionDigits)

	prefix := code + " "
	if code == constants.CurrencyUSD {
		prefix = "$"
	}
	if negative {
		return "-" + prefix + formatted
	}
	return prefix + formatted
}

// NumericCurrency returns an amount with separators and the given number of
// fraction digits but no currency symbol (e.g., "-1,234.56").
func NumericCurrency(amount float64, digits int) string {
	formatted, negative := grouped(amount, digits)
	if negative {
		return "-" + formatted
	}
	return formatted
}

// grouped rounds half away from zero and formats the magnitude with
// separators. NaN and infinities are passed through fmt unchanged.
func grouped(amount float64, digits int) (string, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("%v", amount), false
	}

	rounded := decimal.NewFromFloat(amount).Round(int32(digits))
	magnitude := rounded.Abs().InexactFloat64()
	return printer.Sprintf(fmt.Sprintf("%%.%df", digits), magnitude), rounded.IsNegative()
}
