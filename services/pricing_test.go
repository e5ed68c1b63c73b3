package services

import "testing"

func TestCalcServiceFee(t *testing.T) {
	tests := []struct {
		name        string
		price       int64
		serviceRate float64
		expect      int64
	}{
		{"rate applies below cap", 9_000_000, 0.02, 180_000},
		{"rate applies at cap", 10_000_000, 0.02, 200_000},
		{"flat fee just above cap", 10_000_001, 0.02, 200_000},
		{"flat fee ignores rate", 50_000_000, 0.5, 200_000},
		{"zero price", 0, 0.02, 0},
		{"absent rate treated as zero", 5_000_000, 0, 0},
		{"rounding up", 1_000_001, 0.02, 20_000},
		{"odd rate rounds", 333, 0.015, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcServiceFee(tt.price, tt.serviceRate)
			if got != tt.expect {
				t.Errorf("CalcServiceFee(%d, %v) = %d, want %d",
					tt.price, tt.serviceRate, got, tt.expect)
			}
		})
	}
}

func TestCalcPaymentAmount(t *testing.T) {
	tests := []struct {
		name        string
		price       int64
		fee         int64
		depositRate float64
		status      string
		expect      int64
	}{
		{"deposit on pending order", 5_000_000, 100_000, 50, "pending", 2_600_000},
		{"full payment when not pending", 5_000_000, 100_000, 50, "processing", 5_100_000},
		{"deposit rate defaults to 50", 5_000_000, 100_000, 0, "pending", 2_600_000},
		{"custom deposit rate", 4_000_000, 80_000, 30, "pending", 1_280_000},
		{"full fee on partial base, not prorated", 1_000_000, 200_000, 50, "pending", 700_000},
		{"completed pays in full", 2_000_000, 40_000, 50, "completed", 2_040_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcPaymentAmount(tt.price, tt.fee, tt.depositRate, tt.status)
			if got != tt.expect {
				t.Errorf("CalcPaymentAmount(%d, %d, %v, %q) = %d, want %d",
					tt.price, tt.fee, tt.depositRate, tt.status, got, tt.expect)
			}
		})
	}
}

func TestHasSufficientBalance(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		amount  int64
		expect  bool
	}{
		{"more than enough", 5_000_000, 2_600_000, true},
		{"exactly enough", 2_600_000, 2_600_000, true},
		{"one dong short", 2_599_999, 2_600_000, false},
		{"empty wallet", 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasSufficientBalance(tt.balance, tt.amount)
			if got != tt.expect {
				t.Errorf("HasSufficientBalance(%d, %d) = %v, want %v",
					tt.balance, tt.amount, got, tt.expect)
			}
		})
	}
}

func TestRateScalingRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		percent int
	}{
		{"two percent", 0.02, 2},
		{"ten percent", 0.1, 10},
		{"fifty percent", 0.5, 50},
		{"hundred percent", 1, 100},
		{"zero", 0, 0},
		{"seven percent survives float noise", 0.07, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentFromRate(tt.rate); got != tt.percent {
				t.Errorf("PercentFromRate(%v) = %d, want %d", tt.rate, got, tt.percent)
			}
			back := RateFromPercent(float64(tt.percent))
			if PercentFromRate(back) != tt.percent {
				t.Errorf("round trip for %d%% lost precision: rate %v", tt.percent, back)
			}
		})
	}
}
