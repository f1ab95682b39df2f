package utils

import "testing"

func TestPriceRange(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		low    float64
		high   float64
		wantOK bool
	}{
		{"Single price", "$45.99", 45.99, 45.99, true},
		{"Thousands separator", "$1,079.00", 1079.00, 1079.00, true},
		{"Range", "$10.00 to $12.50", 10.00, 12.50, true},
		{"Range with separators", "$1,200.00 to $2,550.50", 1200.00, 2550.50, true},
		{"Currency code", "GBP 99", 99, 99, true},
		{"Two numbers without range", "$5.00 + $3.99 shipping", 5.00, 5.00, true},
		{"Inverted range keeps low", "$12.00 to $10.00", 12.00, 12.00, true},
		{"Not available", "N/A", 0, 0, false},
		{"Empty", "", 0, 0, false},
		{"Only punctuation", "$,", 0, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			low, high, ok := PriceRange(tc.input)
			if low != tc.low || high != tc.high || ok != tc.wantOK {
				t.Errorf("PriceRange(%q) = %v, %v, %v; want %v, %v, %v", tc.input, low, high, ok, tc.low, tc.high, tc.wantOK)
			}
		})
	}
}

func TestNormalizeQuery(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Already clean", "camera", "camera"},
		{"Outer spaces", "  camera  ", "camera"},
		{"Inner runs", "vintage \t  camera", "vintage camera"},
		{"Blank", "   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeQuery(tc.input); got != tc.expected {
				t.Errorf("NormalizeQuery(%q) = %q; want %q", tc.input, got, tc.expected)
			}
		})
	}
}
