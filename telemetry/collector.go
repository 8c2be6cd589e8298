package telemetry

import "time"

// Collector accumulates events within one generation and produces
// GenerationStats when the generation ends.
type Collector struct {
	runID string

	start           time.Time
	foodsEaten      int
	collisionDeaths int
	scoreDeaths     int
}

// NewCollector creates a collector for the given run.
func NewCollector(runID string, now time.Time) *Collector {
	return &Collector{runID: runID, start: now}
}

// RecordEat records one food eaten.
func (c *Collector) RecordEat() {
	c.foodsEaten++
}

// FoodsEaten returns the number of foods eaten since the last Flush.
func (c *Collector) FoodsEaten() int { return c.foodsEaten }

// RecordDeath records an agent dying this tick. Agents whose score went
// negative starve; the rest ran into their own tail.
func (c *Collector) RecordDeath(score int) {
	if score < 0 {
		c.scoreDeaths++
	} else {
		c.collisionDeaths++
	}
}

// GenerationEnd describes the population at the transition.
type GenerationEnd struct {
	Generation int
	Ticks      int
	Alive      int
	Scores     []int
	Totals     []int
	HighScore  int
	Process    ProcessSample
}

// Flush builds the stats for the finished generation and resets the counters.
func (c *Collector) Flush(end GenerationEnd, now time.Time) GenerationStats {
	sum := SummarizeScores(end.Scores)

	maxTotal := 0
	for _, t := range end.Totals {
		if t > maxTotal {
			maxTotal = t
		}
	}

	stats := GenerationStats{
		RunID:           c.runID,
		Generation:      end.Generation,
		Ticks:           end.Ticks,
		DurationMS:      now.Sub(c.start).Milliseconds(),
		Population:      len(end.Scores),
		AliveAtEnd:      end.Alive,
		BestScore:       sum.Best,
		MeanScore:       sum.Mean,
		StdScore:        sum.Std,
		P50Score:        sum.P50,
		P90Score:        sum.P90,
		HighScore:       end.HighScore,
		MaxTotal:        maxTotal,
		FoodsEaten:      c.foodsEaten,
		CollisionDeaths: c.collisionDeaths,
		ScoreDeaths:     c.scoreDeaths,
		RSSMB:           end.Process.RSSMB,
		CPUPct:          end.Process.CPUPct,
	}

	c.start = now
	c.foodsEaten = 0
	c.collisionDeaths = 0
	c.scoreDeaths = 0
	return stats
}
