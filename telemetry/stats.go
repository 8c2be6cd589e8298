package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes one finished generation.
type GenerationStats struct {
	RunID      string `csv:"run_id"`
	Generation int    `csv:"generation"`
	Ticks      int    `csv:"ticks"`
	DurationMS int64  `csv:"duration_ms"`
	Population int    `csv:"population"`
	AliveAtEnd int    `csv:"alive_at_end"`

	// Score distribution at the end of the generation
	BestScore  int     `csv:"best_score"`
	MeanScore  float64 `csv:"mean_score"`
	StdScore   float64 `csv:"std_score"`
	P50Score   float64 `csv:"p50_score"`
	P90Score   float64 `csv:"p90_score"`
	HighScore  int     `csv:"high_score_ever"`
	MaxTotal   int     `csv:"max_total"`
	FoodsEaten int     `csv:"foods_eaten"`

	// Deaths during the generation by cause
	CollisionDeaths int `csv:"collision_deaths"`
	ScoreDeaths     int `csv:"score_deaths"`

	// Process sample taken at the transition
	RSSMB  float64 `csv:"rss_mb"`
	CPUPct float64 `csv:"cpu_pct"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ScoreSummary is the distribution of final scores in a generation.
type ScoreSummary struct {
	Best     int
	Mean     float64
	Std      float64
	P50, P90 float64
}

// SummarizeScores computes mean, population std dev and percentiles.
func SummarizeScores(scores []int) ScoreSummary {
	if len(scores) == 0 {
		return ScoreSummary{}
	}

	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = float64(s)
	}
	mean, std := stat.PopMeanStdDev(values, nil)

	sort.Float64s(values)
	return ScoreSummary{
		Best: int(floats.Max(values)),
		Mean: mean,
		Std:  std,
		P50:  Percentile(values, 0.50),
		P90:  Percentile(values, 0.90),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", s.Ticks),
		slog.Int64("duration_ms", s.DurationMS),
		slog.Int("alive_at_end", s.AliveAtEnd),
		slog.Int("best_score", s.BestScore),
		slog.Float64("mean_score", s.MeanScore),
		slog.Float64("p90_score", s.P90Score),
		slog.Int("high_score_ever", s.HighScore),
		slog.Int("foods_eaten", s.FoodsEaten),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"run_id", s.RunID,
		"generation", s.Generation,
		"ticks", s.Ticks,
		"duration_ms", s.DurationMS,
		"population", s.Population,
		"alive_at_end", s.AliveAtEnd,
		"best_score", s.BestScore,
		"mean_score", s.MeanScore,
		"std_score", s.StdScore,
		"p50_score", s.P50Score,
		"p90_score", s.P90Score,
		"high_score_ever", s.HighScore,
		"max_total", s.MaxTotal,
		"foods_eaten", s.FoodsEaten,
		"collision_deaths", s.CollisionDeaths,
		"score_deaths", s.ScoreDeaths,
		"rss_mb", s.RSSMB,
		"cpu_pct", s.CPUPct,
	)
}
