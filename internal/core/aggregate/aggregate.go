// Package aggregate reduces measured quantity entries into per-unit totals.
// This is part of the Functional Core - no I/O, only pure functions.
package aggregate

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Entry is one measured quantity as typed by the user.
type Entry struct {
	Quantity string
	Unit     string
}

// Total is the summed quantity for one unit of measurement.
type Total struct {
	Unit  string  `json:"measurement"`
	Total float64 `json:"total"`
}

// ParseQuantity parses a free-text quantity as a float64. Empty, non-numeric,
// out-of-range, NaN and infinite input is zero. The result is converted to a
// decimal through its shortest representation, so "0.1" stays 0.1 and the
// exponent stays within float64 range.
func ParseQuantity(s string) decimal.Decimal {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// ByUnit groups entries by exact unit string and sums each group.
// Output follows the order in which each unit first appears in entries.
// Entries whose quantity does not parse still open their unit's bucket.
func ByUnit(entries []Entry) []Total {
	sums := make(map[string]decimal.Decimal, len(entries))
	var order []string

	for _, e := range entries {
		sum, seen := sums[e.Unit]
		if !seen {
			order = append(order, e.Unit)
		}
		sums[e.Unit] = sum.Add(ParseQuantity(e.Quantity))
	}

	totals := make([]Total, 0, len(order))
	for _, unit := range order {
		totals = append(totals, Total{Unit: unit, Total: sums[unit].InexactFloat64()})
	}
	return totals
}

// Sum adds up quantities without grouping. Used for the category TOTAL line.
func Sum(quantities []string) float64 {
	sum := decimal.Zero
	for _, q := range quantities {
		sum = sum.Add(ParseQuantity(q))
	}
	return sum.InexactFloat64()
}
