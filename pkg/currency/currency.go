// Package currency converts amounts between AED and USD at a fixed rate.
package currency

import (
	"fmt"
	"strings"

	"github.com/iwvelando/landscape-calculator/pkg/constants"
	xcurrency "golang.org/x/text/currency"
)

// Direction selects the conversion direction.
type Direction int

const (
	AEDToUSD Direction = iota
	USDToAED
)

// Code is a supported ISO 4217 currency code.
type Code string

const (
	AED Code = constants.CurrencyAED
	USD Code = constants.CurrencyUSD
)

// Convert converts an amount using the fixed AED to USD rate. It accepts any
// finite amount, including zero and negative values.
func Convert(amount float64, dir Direction) float64 {
	if dir == AEDToUSD {
		return amount * constants.AEDToUSDRate
	}
	return amount / constants.AEDToUSDRate
}

// FromAED converts an AED amount into the given display currency.
func FromAED(amount float64, code Code) float64 {
	if code == USD {
		return Convert(amount, AEDToUSD)
	}
	return amount
}

// Converter returns FromAED bound to a display currency.
func Converter(code Code) func(float64) float64 {
	return func(amount float64) float64 {
		return FromAED(amount, code)
	}
}

// ParseCode validates a currency code. The empty string selects AED.
func ParseCode(s string) (Code, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return AED, nil
	}

	unit, err := xcurrency.ParseISO(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid currency code %q: %w", s, err)
	}

	switch code := Code(unit.String()); code {
	case AED, USD:
		return code, nil
	default:
		return "", fmt.Errorf("unsupported currency %s, expected %s or %s", code, AED, USD)
	}
}
