package services

import "testing"

func TestFormatVND(t *testing.T) {
	tests := []struct {
		name   string
		input  int64
		expect string
	}{
		{"zero", 0, "0 ₫"},
		{"under one group", 500, "500 ₫"},
		{"thousands", 85000, "85.000 ₫"},
		{"flat service fee", 200000, "200.000 ₫"},
		{"millions", 5000000, "5.000.000 ₫"},
		{"fee cap threshold", 10000000, "10.000.000 ₫"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatVND(tt.input)
			if got != tt.expect {
				t.Errorf("FormatVND(%d) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestParseVND(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		expect  int64
		wantErr bool
	}{
		{"plain digits", "85000", 85000, false},
		{"grouped", "85.000", 85000, false},
		{"grouped with sign", "5.000.000 ₫", 5000000, false},
		{"comma separators", "1,234,567", 1234567, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, true},
		{"no digits", "abc ₫", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVND(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseVND(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVND(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expect {
				t.Errorf("ParseVND(%q) = %d, want %d", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	values := []int64{0, 1, 999, 1000, 85000, 999999, 1000000, 10000000, 10000001, 123456789012}

	for _, n := range values {
		got, err := ParseVND(FormatVND(n))
		if err != nil {
			t.Fatalf("ParseVND(FormatVND(%d)) error: %v", n, err)
		}
		if got != n {
			t.Errorf("round trip %d -> %q -> %d", n, FormatVND(n), got)
		}
	}
}
