package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarizeScores(t *testing.T) {
	sum := SummarizeScores([]int{10, -2, 4, 0})

	if sum.Best != 10 {
		t.Errorf("Best = %d, want 10", sum.Best)
	}
	if math.Abs(sum.Mean-3) > 1e-9 {
		t.Errorf("Mean = %v, want 3", sum.Mean)
	}
	// population variance of {-2,0,4,10} around 3 is (25+9+1+49)/4 = 21
	if math.Abs(sum.Std-math.Sqrt(21)) > 1e-9 {
		t.Errorf("Std = %v, want sqrt(21)", sum.Std)
	}
	if math.Abs(sum.P50-2) > 1e-9 {
		t.Errorf("P50 = %v, want 2", sum.P50)
	}
}

func TestSummarizeScoresEmpty(t *testing.T) {
	if sum := SummarizeScores(nil); sum != (ScoreSummary{}) {
		t.Errorf("empty scores should summarize to zero, got %+v", sum)
	}
}
