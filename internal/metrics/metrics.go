package metrics

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// StepResult holds resource measurements for one pipeline step
type StepResult struct {
	Step       string
	Duration   time.Duration
	MemoryMB   float64
	CPUPercent float64
}

// Tracker measures wall time, resident memory and CPU usage of the
// current process around a pipeline step
type Tracker struct {
	proc *process.Process
}

// NewTracker creates a tracker bound to the current process
func NewTracker() (*Tracker, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to open process handle: %w", err)
	}
	return &Tracker{proc: proc}, nil
}

// Measure runs fn and reports its wall time, the process RSS afterwards,
// and the CPU usage over the interval. The step's error is returned
// alongside whatever was measured.
func (t *Tracker) Measure(step string, fn func() error) (StepResult, error) {
	result := StepResult{Step: step}

	cpuBefore, cpuErr := t.proc.Times()
	start := time.Now()

	runErr := fn()

	result.Duration = time.Since(start)

	if memInfo, err := t.proc.MemoryInfo(); err == nil {
		result.MemoryMB = float64(memInfo.RSS) / (1024.0 * 1024.0)
	}

	if cpuErr == nil {
		if cpuAfter, err := t.proc.Times(); err == nil {
			elapsed := result.Duration.Seconds()
			if elapsed > 0 {
				used := (cpuAfter.User + cpuAfter.System) - (cpuBefore.User + cpuBefore.System)
				result.CPUPercent = used / elapsed * 100.0
				if result.CPUPercent > 100.0 {
					result.CPUPercent = 100.0
				}
			}
		}
	}

	return result, runErr
}
