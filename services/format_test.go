package services

import "testing"

func TestFormatUSD_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "$0"},
		{"small integer", 5, "$5"},
		{"rounds down", 42.49, "$42"},
		{"rounds up", 42.50, "$43"},
		{"hundreds", 850, "$850"},
		{"thousands", 1234.56, "$1,235"},
		{"ten thousands", 12345, "$12,345"},
		{"millions", 1234567, "$1,234,567"},
		{"negative", -1500, "-$1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatUSD(tt.input)
			if got != tt.expect {
				t.Errorf("FormatUSD(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatPriceRange(t *testing.T) {
	tests := []struct {
		name   string
		low    float64
		high   float64
		expect string
	}{
		{"single price", 150, 150, "$150"},
		{"range", 450, 850, "$450 - $850"},
		{"range with thousands", 1500, 4000, "$1,500 - $4,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPriceRange(tt.low, tt.high)
			if got != tt.expect {
				t.Errorf("FormatPriceRange(%v, %v) = %q, want %q", tt.low, tt.high, got, tt.expect)
			}
		})
	}
}
