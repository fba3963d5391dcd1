package telemetry

import (
	"context"
	"io"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestOptimalConcurrency(t *testing.T) {
	derived := runtime.NumCPU() * 2
	if derived < 2 {
		derived = 2
	}

	tests := []struct {
		name       string
		configured int
		want       int
	}{
		{name: "configured cap wins", configured: 4, want: 4},
		{name: "single worker honored", configured: 1, want: 1},
		{name: "zero derives from cpu count", configured: 0, want: derived},
		{name: "negative derives from cpu count", configured: -3, want: derived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OptimalConcurrency(tt.configured))
		})
	}

	assert.GreaterOrEqual(t, OptimalConcurrency(0), 2, "derived pool never drops below two workers")
}

func TestSnapshot_ReportsCPUCount(t *testing.T) {
	snap := Snapshot(context.Background())
	assert.Equal(t, runtime.NumCPU(), snap.NumCPU)
}

func TestLogResourceStats_NilLoggerIsNoOp(t *testing.T) {
	assert.NotPanics(t, func() {
		LogResourceStats(context.Background(), nil, "backtest_flush")
	})
}

func TestLogResourceStats_EmitsAtDebug(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)

	assert.NotPanics(t, func() {
		LogResourceStats(context.Background(), logger, "backtest_flush")
	})
}
