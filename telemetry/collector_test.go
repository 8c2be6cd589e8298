package telemetry

import (
	"testing"
	"time"
)

func TestCollectorFlush(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCollector("run-1", start)

	c.RecordEat()
	c.RecordEat()
	c.RecordDeath(-1)
	c.RecordDeath(30)
	c.RecordDeath(0)

	stats := c.Flush(GenerationEnd{
		Generation: 4,
		Ticks:      201,
		Alive:      1,
		Scores:     []int{-1, 30, 0, 55},
		Totals:     []int{0, 1, 0, 3},
		HighScore:  80,
		Process:    ProcessSample{RSSMB: 12.5},
	}, start.Add(1500*time.Millisecond))

	want := GenerationStats{
		RunID:           "run-1",
		Generation:      4,
		Ticks:           201,
		DurationMS:      1500,
		Population:      4,
		AliveAtEnd:      1,
		BestScore:       55,
		HighScore:       80,
		MaxTotal:        3,
		FoodsEaten:      2,
		CollisionDeaths: 2,
		ScoreDeaths:     1,
		RSSMB:           12.5,
	}
	got := stats
	got.MeanScore, got.StdScore, got.P50Score, got.P90Score = 0, 0, 0, 0
	if got != want {
		t.Errorf("Flush =\n%+v\nwant\n%+v", got, want)
	}

	// Counters reset for the next generation.
	next := c.Flush(GenerationEnd{Generation: 5}, start.Add(2*time.Second))
	if next.FoodsEaten != 0 || next.CollisionDeaths != 0 || next.ScoreDeaths != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.DurationMS != 500 {
		t.Errorf("DurationMS = %d, want 500", next.DurationMS)
	}
}
