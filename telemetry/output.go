package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/snakevo/config"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir             string
	generationsFile *os.File
	perfFile        *os.File

	// Track if headers have been written
	generationsHeaderWritten bool
	perfHeaderWritten        bool

	history ScoreHistory
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	// Create output directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	// Open generations.csv
	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}
	om.generationsFile = f

	// Open perf.csv
	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.generationsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGeneration appends a generation record to generations.csv and keeps
// it for the score plot.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}
	om.history.Add(stats)

	records := []GenerationStats{stats}

	if !om.generationsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.generationsFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
		om.generationsHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.generationsFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
	}

	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, generation int) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(generation)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// WriteHallOfFame saves the hall of fame as JSON.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}

	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}

	if err := os.WriteFile(filepath.Join(om.dir, "hall_of_fame.json"), data, 0644); err != nil {
		return fmt.Errorf("writing hall_of_fame.json: %w", err)
	}

	return nil
}

// WritePlot renders scores.png from every generation written so far.
func (om *OutputManager) WritePlot(title string) error {
	if om == nil || om.history.Len() == 0 {
		return nil
	}
	return PlotHistory(&om.history, title, filepath.Join(om.dir, "scores.png"))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.generationsFile != nil {
		if err := om.generationsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
