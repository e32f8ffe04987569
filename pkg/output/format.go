// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/landscape-calculator/internal/calculator"
	"github.com/iwvelando/landscape-calculator/pkg/format"
	"github.com/iwvelando/landscape-calculator/pkg/plans"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, result calculator.Result) {
	code := string(result.Currency)

	fmt.Fprintf(w, "--- Estimate for %v m² (%s budget) ---\n", result.Input.AreaSize, result.Input.Budget)
	fmt.Fprintf(w, "Feature         | Qty    | Subtotal\n")
	fmt.Fprintf(w, "_______         | ___    | ________\n")
	for _, item := range result.Breakdown {
		fmt.Fprintf(w, "%-15s | %-6v | %s\n", item.Feature, item.Quantity, format.Currency(item.Subtotal, code))
	}
	fmt.Fprintf(w, "Base cost: %s\n\n", format.Currency(result.BaseCost, code))

	fmt.Fprintf(w, "Plan       | Total         | Down payment  | Move-in       | Monthly\n")
	fmt.Fprintf(w, "____       | _____         | ____________  | _______       | _______\n")
	for i, p := range result.Plans {
		title := plans.Title(p.Key)
		if plans.IsRecommended(i) {
			title += " *"
		}
		fmt.Fprintf(w, "%-10s | %-13s | %-13s | %-13s | %s x %d\n",
			title,
			format.Currency(p.TotalCost, code),
			format.Currency(p.Downpayment, code),
			format.Currency(p.MoveIn, code),
			format.Currency(p.MonthlyInstallment, code),
			p.DurationMonths,
		)
	}
	if _, ok := result.Recommended(); ok {
		fmt.Fprintf(w, "* Popular\n")
	}
}

// PrettySchedule outputs the payment schedule of one plan.
func PrettySchedule(w io.Writer, p plans.Plan, code string) {
	fmt.Fprintf(w, "--- %s Details ---\n", plans.Title(p.Key))
	for _, inst := range p.Schedule() {
		fmt.Fprintf(w, "%2d. %-12s %s\n", inst.Sequence, inst.Label, format.Currency(inst.Amount, code))
	}
}

// PrettyComparison outputs the base cost and monthly installments of the same
// selection under several budget tiers.
func PrettyComparison(w io.Writer, results []calculator.Result) {
	fmt.Fprintf(w, "Budget         | Base cost")
	if len(results) > 0 {
		for _, p := range results[0].Plans {
			fmt.Fprintf(w, "     | %s", plans.Title(p.Key))
		}
	}
	fmt.Fprintf(w, "\n")
	for _, r := range results {
		code := string(r.Currency)
		fmt.Fprintf(w, "%-14s | %s", r.Input.Budget, format.Currency(r.BaseCost, code))
		for _, p := range r.Plans {
			fmt.Fprintf(w, " | %s/mo", format.Currency(p.MonthlyInstallment, code))
		}
		fmt.Fprintf(w, "\n")
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, result calculator.Result) error {
	cw := csv.NewWriter(w)
	header := []string{"plan", "currency", "totalCost", "downpayment", "moveIn", "monthlyInstallment", "months", "popular"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, p := range result.Plans {
		record := []string{
			p.Key,
			string(result.Currency),
			format.NumericCurrency(p.TotalCost, 2),
			format.NumericCurrency(p.Downpayment, 2),
			format.NumericCurrency(p.MoveIn, 2),
			format.NumericCurrency(p.MonthlyInstallment, 2),
			strconv.Itoa(p.DurationMonths),
			strconv.FormatBool(plans.IsRecommended(i)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering of a result.
func CsvString(result calculator.Result) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, result); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat outputs the result as indented JSON.
func JSONFormat(w io.Writer, result calculator.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
