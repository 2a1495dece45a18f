package workflow

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name           string
		expected       float64
		actual         float64
		wantVariance   float64
		wantPercent    float64
		wantNeedReason bool
	}{
		{"exact count", 100, 100, 0, 0, false},
		{"six percent short", 100, 94, -6, -6, true},
		{"six percent over", 100, 106, 6, 6, true},
		{"exactly five percent is tolerated", 100, 95, -5, -5, false},
		{"just past five percent", 100, 94.9, -5.1, -5.1, true},
		{"zero expected never needs reason", 0, 5, 5, 0, false},
		{"zero expected zero actual", 0, 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.expected, tt.actual)
			if !closeTo(got.Variance, tt.wantVariance) {
				t.Errorf("Variance = %v, want %v", got.Variance, tt.wantVariance)
			}
			if !closeTo(got.VariancePercent, tt.wantPercent) {
				t.Errorf("VariancePercent = %v, want %v", got.VariancePercent, tt.wantPercent)
			}
			if got.RequiresReason != tt.wantNeedReason {
				t.Errorf("RequiresReason = %v, want %v", got.RequiresReason, tt.wantNeedReason)
			}
		})
	}
}

func closeTo(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
