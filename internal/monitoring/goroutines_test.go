package monitoring

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGoroutineMonitorComponents(t *testing.T) {
	gm := NewGoroutineMonitor(zerolog.Nop(), time.Hour, 1000)

	gm.Add("read_pump", 1)
	gm.Add("read_pump", 1)
	gm.Add("write_pump", 1)
	assert.Equal(t, map[string]int{"read_pump": 2, "write_pump": 1}, gm.GetMetrics().ComponentCounts)

	gm.Add("write_pump", -1)
	_, ok := gm.GetMetrics().ComponentCounts["write_pump"]
	assert.False(t, ok, "components at zero are dropped")
}

func TestGoroutineMonitorCheck(t *testing.T) {
	gm := NewGoroutineMonitor(zerolog.Nop(), time.Hour, 0)

	done := make(chan struct{})
	defer close(done)
	for i := 0; i < 3; i++ {
		go func() { <-done }()
	}

	gm.checkGoroutines()
	m := gm.GetMetrics()
	assert.Greater(t, m.Current, 3)
	assert.GreaterOrEqual(t, m.Peak, m.Current)
	assert.False(t, gm.lastAlert.IsZero(), "threshold 0 alerts on the first check")
}

func TestGoroutineMonitorStartStop(t *testing.T) {
	gm := NewGoroutineMonitor(zerolog.Nop(), time.Millisecond, 1000)
	gm.Start()
	time.Sleep(10 * time.Millisecond)
	gm.Stop()
	gm.Stop()

	var nilMonitor *GoroutineMonitor
	nilMonitor.Add("read_pump", 1)
}
