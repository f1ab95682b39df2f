package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// amountRegex matches one amount as eBay prints it: digits with optional
// thousands separators and an optional decimal part ("1,079.00", "99", "12.5").
var amountRegex = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)

// PriceRange reads a display price such as "$45.99" or "$10.00 to $12.50".
// A single price gives low == high. ok is false when no amount is present,
// as for "N/A".
func PriceRange(display string) (low, high float64, ok bool) {
	amounts := amountRegex.FindAllString(display, 2)
	if len(amounts) == 0 {
		return 0, 0, false
	}

	low, err := strconv.ParseFloat(strings.ReplaceAll(amounts[0], ",", ""), 64)
	if err != nil {
		return 0, 0, false
	}
	high = low
	if len(amounts) == 2 && strings.Contains(strings.ToLower(display), " to ") {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(amounts[1], ",", ""), 64); err == nil && v >= low {
			high = v
		}
	}
	return low, high, true
}

