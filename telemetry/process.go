package telemetry

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessSample is a point-in-time reading of this process's resource use.
type ProcessSample struct {
	RSSMB  float64
	CPUPct float64
}

// ProcessSampler reads resource usage of the running process.
type ProcessSampler struct {
	proc *process.Process
}

// NewProcessSampler attaches to the current process.
func NewProcessSampler() (*ProcessSampler, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("attaching to process: %w", err)
	}
	return &ProcessSampler{proc: p}, nil
}

// Sample returns RSS in MiB and CPU percent since process start.
// A nil sampler returns a zero sample.
func (s *ProcessSampler) Sample() (ProcessSample, error) {
	if s == nil {
		return ProcessSample{}, nil
	}
	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return ProcessSample{}, fmt.Errorf("reading memory info: %w", err)
	}
	cpu, err := s.proc.CPUPercent()
	if err != nil {
		return ProcessSample{}, fmt.Errorf("reading cpu percent: %w", err)
	}
	return ProcessSample{
		RSSMB:  float64(mem.RSS) / (1 << 20),
		CPUPct: cpu,
	}, nil
}
