package telemetry

import (
	"log/slog"
	"time"
)

// Phase is a timed section of a simulation tick.
type Phase int

const (
	PhaseMove Phase = iota
	PhaseDeath
	PhaseEat
	PhaseScore
	PhaseThink
	PhaseTelemetry

	numPhases
)

var phaseNames = [numPhases]string{"move", "death", "eat", "score", "think", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases lists the phases in the order a tick runs them.
var Phases = []Phase{PhaseMove, PhaseDeath, PhaseEat, PhaseScore, PhaseThink, PhaseTelemetry}

// PhaseTimes holds one duration per phase.
type PhaseTimes [numPhases]time.Duration

// tickTiming is the measurement of one tick.
type tickTiming struct {
	total  time.Duration
	phases PhaseTimes
}

// timingSum accumulates tick timings.
type timingSum struct {
	ticks    int
	total    time.Duration
	min, max time.Duration
	phases   PhaseTimes
}

func (s *timingSum) add(t tickTiming) {
	if s.ticks == 0 || t.total < s.min {
		s.min = t.total
	}
	if t.total > s.max {
		s.max = t.total
	}
	s.ticks++
	s.total += t.total
	for i, d := range t.phases {
		s.phases[i] += d
	}
}

func (s *timingSum) stats() PerfStats {
	st := PerfStats{Ticks: s.ticks}
	if s.ticks == 0 {
		return st
	}
	n := time.Duration(s.ticks)
	st.AvgTickDuration = s.total / n
	st.MinTickDuration = s.min
	st.MaxTickDuration = s.max
	for i, d := range s.phases {
		st.PhaseAvg[i] = d / n
		if s.total > 0 {
			st.PhasePct[i] = float64(d) / float64(s.total) * 100
		}
	}
	if st.AvgTickDuration > 0 {
		st.TicksPerSecond = float64(time.Second) / float64(st.AvgTickDuration)
	}
	return st
}

// PerfCollector times ticks phase by phase. It keeps the last few ticks for
// the live panel and a running sum for the current generation, which Flush
// reports and clears.
type PerfCollector struct {
	now func() time.Time

	window []tickTiming
	next   int
	filled int

	generation timingSum

	current    tickTiming
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector whose live view averages the last
// windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{now: time.Now, window: make([]tickTiming, windowSize)}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = tickTiming{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndTick records the tick in the live window and the generation sum.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)

	p.window[p.next] = p.current
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
	p.generation.add(p.current)
}

// RecordFrame measures the time since the previous frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// Stats summarizes the live window.
func (p *PerfCollector) Stats() PerfStats {
	var sum timingSum
	for _, t := range p.window[:p.filled] {
		sum.add(t)
	}
	st := sum.stats()
	st.FrameDuration = p.frame
	if p.frame > 0 {
		st.FPS = float64(time.Second) / float64(p.frame)
	}
	return st
}

// Flush returns the stats of every tick since the previous Flush and
// starts a new generation sum.
func (p *PerfCollector) Flush() PerfStats {
	st := p.generation.stats()
	p.generation = timingSum{}
	return st
}

// PerfStats aggregates tick timings.
type PerfStats struct {
	Ticks           int
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	PhaseAvg PhaseTimes
	PhasePct [numPhases]float64 // share of total tick time

	// Live view only
	FrameDuration time.Duration
	FPS           float64
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the stats of one generation.
func (s PerfStats) LogStats(generation int) {
	slog.Info("perf", "generation", generation, "stats", s)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Generation   int     `csv:"generation"`
	Ticks        int     `csv:"ticks"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	MovePct      float64 `csv:"move_pct"`
	DeathPct     float64 `csv:"death_pct"`
	EatPct       float64 `csv:"eat_pct"`
	ScorePct     float64 `csv:"score_pct"`
	ThinkPct     float64 `csv:"think_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats of generation into a perf.csv row.
func (s PerfStats) ToCSV(generation int) PerfStatsCSV {
	return PerfStatsCSV{
		Generation:   generation,
		Ticks:        s.Ticks,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		MovePct:      s.PhasePct[PhaseMove],
		DeathPct:     s.PhasePct[PhaseDeath],
		EatPct:       s.PhasePct[PhaseEat],
		ScorePct:     s.PhasePct[PhaseScore],
		ThinkPct:     s.PhasePct[PhaseThink],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
