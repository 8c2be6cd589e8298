package telemetry

import (
	"testing"
	"time"
)

// manualClock only moves when told to.
type manualClock struct{ t time.Time }

func (c *manualClock) now() time.Time { return c.t }
func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPerf(window int) (*PerfCollector, *manualClock) {
	clock := &manualClock{t: time.Unix(1_700_000_000, 0)}
	p := NewPerfCollector(window)
	p.now = clock.now
	return p, clock
}

// tick times one tick with the given move and think durations.
func tick(p *PerfCollector, c *manualClock, move, think time.Duration) {
	p.StartTick()
	p.StartPhase(PhaseMove)
	c.advance(move)
	p.StartPhase(PhaseThink)
	c.advance(think)
	p.EndTick()
}

func TestPhasesString(t *testing.T) {
	want := []string{"move", "death", "eat", "score", "think", "telemetry"}
	if len(Phases) != len(want) {
		t.Fatalf("len(Phases) = %d, want %d", len(Phases), len(want))
	}
	for i, ph := range Phases {
		if ph.String() != want[i] {
			t.Errorf("Phases[%d] = %q, want %q", i, ph, want[i])
		}
	}
	if got := Phase(99).String(); got != "unknown" {
		t.Errorf("Phase(99) = %q", got)
	}
}

func TestPerfCollectorTiming(t *testing.T) {
	p, c := newTestPerf(10)
	tick(p, c, 100*time.Microsecond, 300*time.Microsecond)
	tick(p, c, 300*time.Microsecond, 500*time.Microsecond)

	st := p.Stats()
	if st.Ticks != 2 {
		t.Errorf("Ticks = %d, want 2", st.Ticks)
	}
	if st.AvgTickDuration != 600*time.Microsecond {
		t.Errorf("AvgTickDuration = %v, want 600µs", st.AvgTickDuration)
	}
	if st.MinTickDuration != 400*time.Microsecond || st.MaxTickDuration != 800*time.Microsecond {
		t.Errorf("min/max = %v/%v, want 400µs/800µs", st.MinTickDuration, st.MaxTickDuration)
	}
	if st.PhaseAvg[PhaseMove] != 200*time.Microsecond || st.PhaseAvg[PhaseThink] != 400*time.Microsecond {
		t.Errorf("PhaseAvg = %v", st.PhaseAvg)
	}
	if pct := st.PhasePct[PhaseThink]; pct < 66.6 || pct > 66.7 {
		t.Errorf("think pct = %v, want 66.7", pct)
	}
	if st.PhaseAvg[PhaseEat] != 0 {
		t.Errorf("untimed phase has %v", st.PhaseAvg[PhaseEat])
	}
}

func TestPerfCollectorWindow(t *testing.T) {
	p, c := newTestPerf(2)
	tick(p, c, time.Millisecond, 0)
	tick(p, c, 2*time.Millisecond, 0)
	tick(p, c, 4*time.Millisecond, 0)

	st := p.Stats()
	if st.Ticks != 2 {
		t.Fatalf("window holds %d ticks, want 2", st.Ticks)
	}
	if st.AvgTickDuration != 3*time.Millisecond {
		t.Errorf("AvgTickDuration = %v, want 3ms (oldest tick evicted)", st.AvgTickDuration)
	}
}

func TestPerfCollectorFlushIsPerGeneration(t *testing.T) {
	p, c := newTestPerf(200)

	for range 3 {
		tick(p, c, time.Millisecond, time.Millisecond)
	}
	first := p.Flush()
	if first.Ticks != 3 || first.AvgTickDuration != 2*time.Millisecond {
		t.Errorf("first generation = %d ticks avg %v, want 3 ticks avg 2ms", first.Ticks, first.AvgTickDuration)
	}

	for range 2 {
		tick(p, c, 5*time.Millisecond, 5*time.Millisecond)
	}
	second := p.Flush()
	if second.Ticks != 2 {
		t.Errorf("second generation ticks = %d, want 2", second.Ticks)
	}
	if second.AvgTickDuration != 10*time.Millisecond || second.MinTickDuration != 10*time.Millisecond {
		t.Errorf("second generation includes earlier ticks: avg %v min %v", second.AvgTickDuration, second.MinTickDuration)
	}

	if empty := p.Flush(); empty.Ticks != 0 || empty.AvgTickDuration != 0 {
		t.Errorf("flush with no ticks = %+v", empty)
	}
	// The live window is not cleared by Flush.
	if live := p.Stats(); live.Ticks != 5 {
		t.Errorf("live window ticks = %d, want 5", live.Ticks)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	p, _ := newTestPerf(10)
	st := p.Stats()
	if st.Ticks != 0 || st.AvgTickDuration != 0 || st.TicksPerSecond != 0 || st.FPS != 0 {
		t.Errorf("empty stats = %+v", st)
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	p, c := newTestPerf(10)
	p.RecordFrame()
	if p.Stats().FPS != 0 {
		t.Error("FPS reported after a single frame")
	}
	c.advance(20 * time.Millisecond)
	p.RecordFrame()

	st := p.Stats()
	if st.FrameDuration != 20*time.Millisecond {
		t.Errorf("FrameDuration = %v, want 20ms", st.FrameDuration)
	}
	if st.FPS != 50 {
		t.Errorf("FPS = %v, want 50", st.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var s PerfStats
	s.Ticks = 7
	s.AvgTickDuration = 1500 * time.Microsecond
	s.PhasePct[PhaseThink] = 80
	s.PhasePct[PhaseMove] = 5
	row := s.ToCSV(12)

	if row.Generation != 12 || row.Ticks != 7 || row.AvgTickUS != 1500 {
		t.Errorf("ToCSV = %+v", row)
	}
	if row.ThinkPct != 80 || row.MovePct != 5 || row.EatPct != 0 {
		t.Errorf("phase percentages not mapped: %+v", row)
	}
}
