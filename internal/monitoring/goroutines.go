// Package monitoring watches the process for goroutine leaks. Connection
// pumps report themselves so a leak can be traced to its component.
package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// GoroutineMonitor tracks goroutine metrics
type GoroutineMonitor struct {
	mu              sync.RWMutex
	baseline        int
	current         int
	peak            int
	checkInterval   time.Duration
	alertThreshold  int
	lastAlert       time.Time
	alertCooldown   time.Duration
	stopChan        chan struct{}
	stopOnce        sync.Once
	componentCounts map[string]int
	logger          zerolog.Logger
}

// NewGoroutineMonitor creates a monitor that samples every checkInterval and
// warns once the count passes alertThreshold
func NewGoroutineMonitor(logger zerolog.Logger, checkInterval time.Duration, alertThreshold int) *GoroutineMonitor {
	baseline := runtime.NumGoroutine()
	return &GoroutineMonitor{
		baseline:        baseline,
		current:         baseline,
		peak:            baseline,
		checkInterval:   checkInterval,
		alertThreshold:  alertThreshold,
		alertCooldown:   5 * time.Minute,
		stopChan:        make(chan struct{}),
		componentCounts: make(map[string]int),
		logger:          logger.With().Str("component", "GoroutineMonitor").Logger(),
	}
}

// Start begins monitoring goroutines
func (gm *GoroutineMonitor) Start() {
	go gm.monitor()
	gm.logger.Info().
		Int("baseline", gm.baseline).
		Dur("interval", gm.checkInterval).
		Msg("Started goroutine monitoring")
}

// Stop stops the monitor. Safe to call more than once.
func (gm *GoroutineMonitor) Stop() {
	gm.stopOnce.Do(func() { close(gm.stopChan) })
}

func (gm *GoroutineMonitor) monitor() {
	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.checkGoroutines()
		case <-gm.stopChan:
			return
		}
	}
}

func (gm *GoroutineMonitor) checkGoroutines() {
	current := runtime.NumGoroutine()

	gm.mu.Lock()
	gm.current = current
	if current > gm.peak {
		gm.peak = current
	}

	growth := current - gm.baseline
	shouldAlert := current > gm.alertThreshold &&
		time.Since(gm.lastAlert) > gm.alertCooldown
	if shouldAlert {
		gm.lastAlert = time.Now()
	}
	components := copyMap(gm.componentCounts)
	gm.mu.Unlock()

	level, msg := zerolog.DebugLevel, "Goroutine metrics"
	if shouldAlert {
		level, msg = zerolog.WarnLevel, "High goroutine count detected - possible leak"
	}

	dict := zerolog.Dict()
	for name, n := range components {
		dict = dict.Int(name, n)
	}
	gm.logger.WithLevel(level).
		Int("current", current).
		Int("baseline", gm.baseline).
		Int("growth", growth).
		Int("threshold", gm.alertThreshold).
		Dict("components", dict).
		Msg(msg)
}

// Add adjusts the number of goroutines a component reports as running
func (gm *GoroutineMonitor) Add(component string, delta int) {
	if gm == nil {
		return
	}
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gm.componentCounts[component] += delta
	if gm.componentCounts[component] <= 0 {
		delete(gm.componentCounts, component)
	}
}

// GetMetrics returns current goroutine metrics
func (gm *GoroutineMonitor) GetMetrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return GoroutineMetrics{
		Current:         gm.current,
		Baseline:        gm.baseline,
		Peak:            gm.peak,
		Growth:          gm.current - gm.baseline,
		ComponentCounts: copyMap(gm.componentCounts),
	}
}

// GoroutineMetrics contains goroutine statistics
type GoroutineMetrics struct {
	Current         int            `json:"current"`
	Baseline        int            `json:"baseline"`
	Peak            int            `json:"peak"`
	Growth          int            `json:"growth"`
	ComponentCounts map[string]int `json:"component_counts"`
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
