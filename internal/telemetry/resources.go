// Package telemetry provides lightweight process resource introspection used
// to size parallel evaluation and to log resource pressure during long
// backtest runs.
package telemetry

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

// ResourceSnapshot captures the process environment at a point in time.
type ResourceSnapshot struct {
	CPUPercent     float64 `json:"cpu_percent"`
	MemUsedPercent float64 `json:"mem_used_percent"`
	MemAvailableMB uint64  `json:"mem_available_mb"`
	NumCPU         int     `json:"num_cpu"`
}

// Snapshot samples CPU and memory usage. Sampling failures degrade to a
// zero-valued reading rather than failing the caller.
func Snapshot(ctx context.Context) ResourceSnapshot {
	snap := ResourceSnapshot{NumCPU: runtime.NumCPU()}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		snap.MemUsedPercent = vm.UsedPercent
		snap.MemAvailableMB = vm.Available / (1024 * 1024)
	}
	return snap
}

// OptimalConcurrency sizes a worker pool for CPU-bound evaluation. The
// configured cap wins when positive.
func OptimalConcurrency(configured int) int {
	if configured > 0 {
		return configured
	}
	n := runtime.NumCPU() * 2
	if n < 2 {
		n = 2
	}
	return n
}

// LogResourceStats emits a resource reading tagged with a pipeline stage.
func LogResourceStats(ctx context.Context, logger *logrus.Logger, stage string) {
	if logger == nil {
		return
	}
	snap := Snapshot(ctx)
	logger.WithFields(logrus.Fields{
		"stage":            stage,
		"cpu_percent":      snap.CPUPercent,
		"mem_used_percent": snap.MemUsedPercent,
		"mem_available_mb": snap.MemAvailableMB,
	}).Debug("resource snapshot")
}
